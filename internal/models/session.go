package models

import "time"

// Session represents one parking stay, from entry to exit.
type Session struct {
	ID      int64  `json:"id"`
	Plate   string `json:"plate"`
	// Vehicle is a weak reference: nil when the registry record was
	// deleted while the session was open or after it closed.
	Vehicle *Vehicle `json:"vehicle"`

	EntryAt time.Time  `json:"entry_at"`
	ExitAt  *time.Time `json:"exit_at"`

	// HourlyRate is captured at entry and never recalculated, even if
	// the lot's configured rate changes later.
	HourlyRate float64 `json:"hourly_rate"`
	// ChargedTotal is the amount actually billed at close. The operator
	// may override the computed amount, so it is authoritative and need
	// not match a recomputation.
	ChargedTotal *float64 `json:"charged_total"`
}

// Open reports whether the vehicle is still in the lot.
func (s Session) Open() bool {
	return s.ExitAt == nil
}

// Category resolves the vehicle's slot category, or CategoryUnknown
// when the vehicle record no longer exists.
func (s Session) Category() VehicleCategory {
	if s.Vehicle == nil {
		return CategoryUnknown
	}
	return s.Vehicle.Category
}

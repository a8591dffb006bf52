package lot

import "github.com/balkashynov/vaga/internal/models"

// Policy selects which sessions from the today feed count as occupying
// a slot.
type Policy int

const (
	// OpenOnly counts sessions without an exit instant. This is the
	// default: a vehicle that already left today does not hold a slot.
	OpenOnly Policy = iota
	// AllToday counts every session in the feed, closed ones included.
	AllToday
)

// Occupancy is the derived slot usage per category. It is recomputed
// from the session list on every refresh and never persisted.
type Occupancy struct {
	Cars  int
	Motos int
}

// Count derives occupancy from a session list under the given policy.
// Sessions whose vehicle no longer resolves have no known category and
// never count.
func Count(sessions []models.Session, policy Policy) Occupancy {
	var occ Occupancy
	for _, s := range sessions {
		if policy == OpenOnly && !s.Open() {
			continue
		}
		switch s.Category() {
		case models.CategoryCar:
			occ.Cars++
		case models.CategoryMoto:
			occ.Motos++
		}
	}
	return occ
}

// Remaining returns free slots per category. Values go negative when
// occupancy exceeds configured capacity; that signals a configuration
// or data problem upstream and is surfaced as-is.
func (o Occupancy) Remaining(cfg models.LotConfig) (cars, motos int) {
	return cfg.CarCapacity - o.Cars, cfg.MotoCapacity - o.Motos
}

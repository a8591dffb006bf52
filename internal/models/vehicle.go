package models

// VehicleCategory is the slot category a vehicle occupies.
type VehicleCategory string

const (
	CategoryCar     VehicleCategory = "CARRO"
	CategoryMoto    VehicleCategory = "MOTO"
	CategoryUnknown VehicleCategory = ""
)

// Vehicle is a registered vehicle. Plate is unique and stored
// uppercase; the remote registry is the system of record.
type Vehicle struct {
	Plate       string          `json:"plate"`
	Category    VehicleCategory `json:"category"`
	Owner       string          `json:"owner"`
	Phone       string          `json:"phone"`
	Model       string          `json:"model"`
	Brand       string          `json:"brand"`
	Color       string          `json:"color"`
	Year        int             `json:"year"`
	OwnerUserID int64           `json:"owner_user_id"`
}

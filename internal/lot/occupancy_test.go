package lot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/balkashynov/vaga/internal/models"
)

func stay(id int64, category models.VehicleCategory, open bool) models.Session {
	s := models.Session{
		ID:         id,
		Plate:      "ABC1D23",
		Vehicle:    &models.Vehicle{Plate: "ABC1D23", Category: category},
		EntryAt:    time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
		HourlyRate: 10,
	}
	if !open {
		exit := s.EntryAt.Add(time.Hour)
		s.ExitAt = &exit
	}
	return s
}

func TestCountPolicies(t *testing.T) {
	sessions := []models.Session{
		stay(1, models.CategoryCar, true),
		stay(2, models.CategoryCar, true),
		stay(3, models.CategoryCar, true),
		stay(4, models.CategoryCar, false),
		stay(5, models.CategoryMoto, true),
		stay(6, models.CategoryMoto, false),
	}

	open := Count(sessions, OpenOnly)
	assert.Equal(t, Occupancy{Cars: 3, Motos: 1}, open)

	all := Count(sessions, AllToday)
	assert.Equal(t, Occupancy{Cars: 4, Motos: 2}, all)
}

func TestCountSkipsUnresolvedVehicles(t *testing.T) {
	orphan := stay(9, models.CategoryCar, true)
	orphan.Vehicle = nil

	occ := Count([]models.Session{orphan, stay(1, models.CategoryMoto, true)}, AllToday)
	assert.Equal(t, Occupancy{Cars: 0, Motos: 1}, occ)
}

func TestRemaining(t *testing.T) {
	cfg := models.LotConfig{CarCapacity: 5, MotoCapacity: 2}

	cars, motos := (Occupancy{Cars: 3, Motos: 1}).Remaining(cfg)
	assert.Equal(t, 2, cars)
	assert.Equal(t, 1, motos)

	// Occupied plus free always reconstructs capacity.
	assert.Equal(t, cfg.CarCapacity, cars+3)
	assert.Equal(t, cfg.MotoCapacity, motos+1)
}

func TestRemainingGoesNegativeOnOverflow(t *testing.T) {
	cfg := models.LotConfig{CarCapacity: 2, MotoCapacity: 1}
	cars, motos := (Occupancy{Cars: 4, Motos: 1}).Remaining(cfg)
	assert.Equal(t, -2, cars)
	assert.Equal(t, 0, motos)
}

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/balkashynov/vaga/internal/models"
)

// Vehicles lists the registry (bearer required).
func (c *Client) Vehicles(ctx context.Context) ([]models.Vehicle, error) {
	var dtos []vehicleDTO
	if err := c.do(ctx, http.MethodGet, "/veiculos", nil, &dtos, http.StatusOK); err != nil {
		return nil, err
	}
	vehicles := make([]models.Vehicle, 0, len(dtos))
	for _, d := range dtos {
		vehicles = append(vehicles, *d.toModel())
	}
	return vehicles, nil
}

// CreateVehicle registers a vehicle. The plate must already be
// uppercase-normalized.
func (c *Client) CreateVehicle(ctx context.Context, v models.Vehicle) error {
	return c.do(ctx, http.MethodPost, "/veiculos", vehicleToDTO(v), nil, http.StatusCreated)
}

// UpdateVehicle edits a vehicle's registry record. The plate itself is
// immutable; it only addresses the record.
func (c *Client) UpdateVehicle(ctx context.Context, v models.Vehicle) error {
	path := "/veiculos/" + url.PathEscape(v.Plate)
	return c.do(ctx, http.MethodPatch, path, vehicleToDTO(v), nil, http.StatusAccepted)
}

// DeleteVehicle removes a vehicle from the registry. Sessions keep
// referencing the plate weakly and must keep rendering afterwards.
func (c *Client) DeleteVehicle(ctx context.Context, plate string) error {
	path := "/veiculos/" + url.PathEscape(plate)
	return c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}

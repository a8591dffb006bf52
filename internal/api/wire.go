package api

import (
	"fmt"
	"time"

	"github.com/balkashynov/vaga/internal/models"
)

// wireTime is how the API transmits instants: UTC with a Z suffix.
// Local wall-clock picks are converted to UTC before formatting.
const wireTime = "2006-01-02T15:04:05.000Z"

func formatInstant(t time.Time) string {
	return t.UTC().Format(wireTime)
}

func parseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse instant %q: %w", s, err)
	}
	return t, nil
}

// vehicleDTO mirrors the registry's wire shape (Portuguese field
// names, preserved as the server defines them).
type vehicleDTO struct {
	Tipo         string `json:"tipo"`
	Proprietario string `json:"proprietario"`
	Telefone     string `json:"telefone"`
	Placa        string `json:"placa"`
	Modelo       string `json:"modelo"`
	Marca        string `json:"marca"`
	Cor          string `json:"cor"`
	Ano          int    `json:"ano"`
	UsuarioID    int64  `json:"usuarioId"`
}

func (d vehicleDTO) toModel() *models.Vehicle {
	return &models.Vehicle{
		Plate:       d.Placa,
		Category:    models.VehicleCategory(d.Tipo),
		Owner:       d.Proprietario,
		Phone:       d.Telefone,
		Model:       d.Modelo,
		Brand:       d.Marca,
		Color:       d.Cor,
		Year:        d.Ano,
		OwnerUserID: d.UsuarioID,
	}
}

func vehicleToDTO(v models.Vehicle) vehicleDTO {
	return vehicleDTO{
		Tipo:         string(v.Category),
		Proprietario: v.Owner,
		Telefone:     v.Phone,
		Placa:        v.Plate,
		Modelo:       v.Model,
		Marca:        v.Brand,
		Cor:          v.Color,
		Ano:          v.Year,
		UsuarioID:    v.OwnerUserID,
	}
}

// sessionDTO mirrors the estadia wire shape. Automovel is absent when
// the vehicle record was deleted; the session must still decode.
type sessionDTO struct {
	ID         int64       `json:"id"`
	Placa      string      `json:"placa"`
	Entrada    string      `json:"entrada"`
	Saida      *string     `json:"saida"`
	ValorHora  float64     `json:"valorHora"`
	ValorTotal *float64    `json:"valorTotal"`
	Automovel  *vehicleDTO `json:"automovel"`
}

func (d sessionDTO) toModel() (models.Session, error) {
	entry, err := parseInstant(d.Entrada)
	if err != nil {
		return models.Session{}, fmt.Errorf("session %d: %w", d.ID, err)
	}

	s := models.Session{
		ID:           d.ID,
		Plate:        d.Placa,
		EntryAt:      entry,
		HourlyRate:   d.ValorHora,
		ChargedTotal: d.ValorTotal,
	}
	if d.Saida != nil && *d.Saida != "" {
		exit, err := parseInstant(*d.Saida)
		if err != nil {
			return models.Session{}, fmt.Errorf("session %d: %w", d.ID, err)
		}
		s.ExitAt = &exit
	}
	if d.Automovel != nil {
		s.Vehicle = d.Automovel.toModel()
		if s.Plate == "" {
			s.Plate = s.Vehicle.Plate
		}
	}
	return s, nil
}

func sessionsToModels(dtos []sessionDTO) ([]models.Session, error) {
	sessions := make([]models.Session, 0, len(dtos))
	for _, d := range dtos {
		s, err := d.toModel()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

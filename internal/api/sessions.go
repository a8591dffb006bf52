package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/balkashynov/vaga/internal/models"
)

// TodaySessions fetches today's feed. Works unauthenticated; the
// result is the authoritative snapshot callers derive occupancy from.
func (c *Client) TodaySessions(ctx context.Context) ([]models.Session, error) {
	var dtos []sessionDTO
	if err := c.do(ctx, http.MethodGet, "/hoje", nil, &dtos, http.StatusOK); err != nil {
		return nil, err
	}
	return sessionsToModels(dtos)
}

// AllSessions fetches the full history (bearer required). Used by the
// revenue report.
func (c *Client) AllSessions(ctx context.Context) ([]models.Session, error) {
	var dtos []sessionDTO
	if err := c.do(ctx, http.MethodGet, "/estadias", nil, &dtos, http.StatusOK); err != nil {
		return nil, err
	}
	return sessionsToModels(dtos)
}

type createSessionRequest struct {
	Placa     string  `json:"placa"`
	Entrada   string  `json:"entrada"`
	ValorHora float64 `json:"valorHora"`
	UsuarioID int64   `json:"usuarioId"`
}

// CreateSession registers a vehicle entry. The server rejects plates
// that are not registered vehicles; that surfaces as ErrValidation.
func (c *Client) CreateSession(ctx context.Context, plate string, entry time.Time, hourlyRate float64, userID int64) (models.Session, error) {
	req := createSessionRequest{
		Placa:     plate,
		Entrada:   formatInstant(entry),
		ValorHora: hourlyRate,
		UsuarioID: userID,
	}
	var dto sessionDTO
	if err := c.do(ctx, http.MethodPost, "/estadias", req, &dto, http.StatusCreated); err != nil {
		return models.Session{}, err
	}
	s, err := dto.toModel()
	if err != nil {
		return models.Session{}, err
	}
	if s.Plate == "" {
		s.Plate = plate
	}
	return s, nil
}

type closeSessionRequest struct {
	Saida      string  `json:"saida"`
	ValorTotal float64 `json:"valorTotal"`
}

// CloseSession writes the exit instant and the charged total. The
// server stores chargedTotal as given and does not recompute it; any
// correctness guarantee rests on the billing calculator being invoked
// first. Closing an already-closed or unknown session fails.
func (c *Client) CloseSession(ctx context.Context, id int64, exit time.Time, chargedTotal float64) error {
	req := closeSessionRequest{Saida: formatInstant(exit), ValorTotal: chargedTotal}
	path := fmt.Sprintf("/estadias/%d", id)
	return c.do(ctx, http.MethodPatch, path, req, nil, http.StatusOK, http.StatusAccepted)
}

// DeleteSession hard-deletes a session in any state, as a correction.
// No confirmation happens here; that is the calling command's job.
func (c *Client) DeleteSession(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/estadias/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}

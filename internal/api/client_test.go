package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, func() string { return token }, zap.NewNop())
}

func TestTodaySessionsParsesFeed(t *testing.T) {
	feed := `[
		{"id":1,"placa":"ABC1D23","entrada":"2026-08-31T09:00:00.000Z","saida":null,
		 "valorHora":10,"valorTotal":null,
		 "automovel":{"tipo":"CARRO","placa":"ABC1D23","proprietario":"Ana","modelo":"Uno"}},
		{"id":2,"placa":"XYZ9A87","entrada":"2026-08-31T08:30:00.000Z","saida":"2026-08-31T10:15:00.000Z",
		 "valorHora":10,"valorTotal":20,
		 "automovel":{"tipo":"MOTO","placa":"XYZ9A87"}},
		{"id":3,"placa":"","entrada":"2026-08-31T07:00:00.000Z","saida":null,
		 "valorHora":12,"valorTotal":null,"automovel":null}
	]`
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/hoje", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(feed))
	})

	sessions, err := c.TodaySessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	open := sessions[0]
	assert.True(t, open.Open())
	assert.Equal(t, "ABC1D23", open.Plate)
	require.NotNil(t, open.Vehicle)
	assert.Equal(t, "Ana", open.Vehicle.Owner)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC), open.EntryAt.UTC())

	closed := sessions[1]
	assert.False(t, closed.Open())
	require.NotNil(t, closed.ChargedTotal)
	assert.Equal(t, 20.0, *closed.ChargedTotal)

	// Deleted vehicle: the stay still decodes, with no category.
	orphan := sessions[2]
	assert.Nil(t, orphan.Vehicle)
	assert.True(t, orphan.Open())
}

func TestBearerHeaderAttached(t *testing.T) {
	c := newTestClient(t, "tok.en.value", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok.en.value", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})

	_, err := c.AllSessions(context.Background())
	require.NoError(t, err)
}

func TestStatusMapsToTaxonomy(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuth},
		{http.StatusForbidden, ErrAuth},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnprocessableEntity, ErrValidation},
		{http.StatusInternalServerError, ErrNetwork},
	}
	for _, tc := range cases {
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		_, err := c.TodaySessions(context.Background())
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestTransportFailureIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	c := New(srv.URL, nil, zap.NewNop())

	_, err := c.TodaySessions(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestCreateSessionRequestShape(t *testing.T) {
	entry := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/estadias", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ABC1D23", req["placa"])
		assert.Equal(t, "2026-08-31T09:30:00.000Z", req["entrada"])
		assert.Equal(t, 10.0, req["valorHora"])
		assert.Equal(t, 7.0, req["usuarioId"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":44,"placa":"ABC1D23","entrada":"2026-08-31T09:30:00.000Z","valorHora":10}`))
	})

	created, err := c.CreateSession(context.Background(), "ABC1D23", entry, 10, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(44), created.ID)
	assert.True(t, created.Open())
}

func TestCloseSession(t *testing.T) {
	exit := time.Date(2026, 8, 31, 12, 15, 0, 0, time.UTC)
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/estadias/44", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2026-08-31T12:15:00.000Z", req["saida"])
		assert.Equal(t, 30.0, req["valorTotal"])

		w.WriteHeader(http.StatusAccepted)
	})

	require.NoError(t, c.CloseSession(context.Background(), 44, exit, 30))
}

func TestDeleteSession(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/estadias/44", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteSession(context.Background(), 44))
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "op@lot.example", req["email"])
		assert.Equal(t, "s3cret", req["senha"])
		w.Write([]byte(`{"token":"tok.en.value"}`))
	})

	token, err := c.Login(context.Background(), "op@lot.example", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "tok.en.value", token)
}

func TestLoginEmptyTokenIsAuthError(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":""}`))
	})

	_, err := c.Login(context.Background(), "op@lot.example", "wrong")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestValidateToken(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logado", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tok.en.value", req["token"])
		w.Write([]byte(`{"valid":true}`))
	})

	valid, err := c.ValidateToken(context.Background(), "tok.en.value")
	require.NoError(t, err)
	assert.True(t, valid)
}

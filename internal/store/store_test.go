package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/vaga/internal/models"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "vaga.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestTokenLifecycle(t *testing.T) {
	st := openTemp(t)

	token, err := st.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, st.SaveToken("abc.def.ghi"))
	token, err = st.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// Save replaces, never accumulates.
	require.NoError(t, st.SaveToken("new.token.value"))
	token, err = st.Token()
	require.NoError(t, err)
	assert.Equal(t, "new.token.value", token)

	require.NoError(t, st.ClearToken())
	token, err = st.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSnapshotRoundTrip(t *testing.T) {
	st := openTemp(t)

	_, _, ok, err := st.LastSnapshot()
	require.NoError(t, err)
	assert.False(t, ok)

	exit := time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC)
	charged := 20.0
	sessions := []models.Session{
		{
			ID:         1,
			Plate:      "ABC1D23",
			Vehicle:    &models.Vehicle{Plate: "ABC1D23", Category: models.CategoryCar},
			EntryAt:    time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
			HourlyRate: 10,
		},
		{
			ID:           2,
			Plate:        "XYZ9A87",
			EntryAt:      time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC),
			ExitAt:       &exit,
			HourlyRate:   10,
			ChargedTotal: &charged,
		},
	}
	fetchedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.SaveSnapshot(fetchedAt, sessions))

	got, at, ok, err := st.LastSnapshot()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, at.Equal(fetchedAt))
	require.Len(t, got, 2)
	assert.Equal(t, models.CategoryCar, got[0].Category())
	assert.True(t, got[0].Open())
	assert.False(t, got[1].Open())
	require.NotNil(t, got[1].ChargedTotal)
	assert.Equal(t, 20.0, *got[1].ChargedTotal)
	assert.Nil(t, got[1].Vehicle)
}

func TestSnapshotReplaced(t *testing.T) {
	st := openTemp(t)

	require.NoError(t, st.SaveSnapshot(time.Now(), []models.Session{{ID: 1}}))
	require.NoError(t, st.SaveSnapshot(time.Now(), []models.Session{{ID: 2}, {ID: 3}}))

	got, _, ok, err := st.LastSnapshot()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
}

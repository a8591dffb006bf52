package auth

import (
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/balkashynov/vaga/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "vaga.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestGatewayLifecycle(t *testing.T) {
	st := openStore(t)

	g, err := NewGateway(st, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, g.Current())
	assert.Empty(t, g.Token())

	token := signedToken(t, jwt.MapClaims{"id": 7})
	require.NoError(t, g.SetToken(token))

	cred := g.Current()
	require.NotNil(t, cred)
	assert.Equal(t, int64(7), cred.UserID)
	assert.Equal(t, token, g.Token())

	require.NoError(t, g.Invalidate())
	assert.Nil(t, g.Current())
	assert.Empty(t, g.Token())
}

func TestGatewayReloadsPersistedCredential(t *testing.T) {
	st := openStore(t)
	token := signedToken(t, jwt.MapClaims{"id": 12})

	g, err := NewGateway(st, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, g.SetToken(token))

	// A new process picks the credential back up from disk.
	again, err := NewGateway(st, zap.NewNop())
	require.NoError(t, err)
	cred := again.Current()
	require.NotNil(t, cred)
	assert.Equal(t, int64(12), cred.UserID)
}

func TestGatewayDiscardsUnparseableStoredToken(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.SaveToken("corrupted"))

	g, err := NewGateway(st, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, g.Current())

	token, err := st.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSetTokenRejectsMalformed(t *testing.T) {
	st := openStore(t)
	g, err := NewGateway(st, zap.NewNop())
	require.NoError(t, err)

	assert.Error(t, g.SetToken("not-a-jwt"))
	assert.Nil(t, g.Current())
}

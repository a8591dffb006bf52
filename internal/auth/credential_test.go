package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	return token
}

func TestParseCredentialExtractsID(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"id": 7, "email": "op@lot.example"})

	cred, err := ParseCredential(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cred.UserID)
	assert.Equal(t, token, cred.Token)
}

// The signing key never leaves the server, so the id claim must come
// out without verification succeeding locally.
func TestParseCredentialIgnoresSignature(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"id": 42})
	tampered := token + "garbage"

	cred, err := ParseCredential(tampered)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cred.UserID)
}

func TestParseCredentialRejectsMalformed(t *testing.T) {
	_, err := ParseCredential("not-a-jwt")
	assert.Error(t, err)

	_, err = ParseCredential("")
	assert.Error(t, err)
}

func TestParseCredentialRequiresIDClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"email": "op@lot.example"})
	_, err := ParseCredential(token)
	assert.ErrorContains(t, err, "id claim")
}

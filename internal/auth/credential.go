package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Credential is the bearer token plus the identity claim embedded in
// it. The token payload is decoded client-side without signature
// verification: validity is the server's call (POST /logado), the id
// is only needed to stamp usuarioId on created sessions.
type Credential struct {
	Token  string
	UserID int64
}

// ParseCredential extracts the numeric "id" claim from a JWT without
// verifying it.
func ParseCredential(token string) (Credential, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Credential{}, fmt.Errorf("malformed token: %w", err)
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return Credential{}, fmt.Errorf("token has no id claim")
	}
	return Credential{Token: token, UserID: int64(id)}, nil
}

package session

import (
	"github.com/golang-jwt/jwt/v4"
)

// Claims is what we sniff out of the backend's JWT: enough to show the right
// navigation (admin links, greeting). The parse is deliberately UNVERIFIED:
// we do not hold the signing key and we are not the authorizer. The backend
// re-checks the token on every call, so a forged role claim here only changes
// which links render, never what the API allows.
type Claims struct {
	Email   string
	Role    string
	IsAdmin bool
}

func (c Claims) Admin() bool {
	return c.IsAdmin || c.Role == "admin"
}

type rawClaims struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// SniffClaims extracts display claims from a bearer token. An opaque
// (non-JWT) token yields zero claims, which is fine: the user is simply not
// shown admin navigation.
func SniffClaims(token string) Claims {
	var rc rawClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &rc); err != nil {
		return Claims{}
	}
	return Claims{
		Email:   rc.Email,
		Role:    rc.Role,
		IsAdmin: rc.IsAdmin,
	}
}

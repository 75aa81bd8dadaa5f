package authtoken

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload the backend puts in the bearer token's middle
// segment. The client never verifies the signature, that is the server's
// job on every request; it only needs exp and the identity fields.
type Claims struct {
	UserID  int64  `json:"user_id"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Accessor reads the bearer token from an injected source and derives
// auth state from it. The source is a func so callers can back it with
// config, a file, or a test fixture.
type Accessor struct {
	source func() string
	now    func() time.Time
}

func NewAccessor(source func() string) *Accessor {
	return &Accessor{source: source, now: time.Now}
}

// StaticToken wraps a fixed token string as a source.
func StaticToken(token string) func() string {
	return func() string { return token }
}

// Claims parses the current token without signature verification and
// reports whether it is present, well-formed, and unexpired.
func (a *Accessor) Claims() (*Claims, bool) {
	raw := strings.TrimSpace(a.source())
	if raw == "" {
		return nil, false
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, false
	}
	if claims.ExpiresAt == nil {
		return nil, false
	}
	if !claims.ExpiresAt.Time.After(a.now()) {
		return nil, false
	}
	return claims, true
}

// Valid reports whether a usable token is present.
func (a *Accessor) Valid() bool {
	_, ok := a.Claims()
	return ok
}

func (a *Accessor) UserID() (int64, bool) {
	claims, ok := a.Claims()
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// IsAdmin reports whether the token carries an admin role.
func (a *Accessor) IsAdmin() bool {
	claims, ok := a.Claims()
	if !ok {
		return false
	}
	if claims.IsAdmin {
		return true
	}
	switch strings.ToUpper(claims.Role) {
	case "ADMIN", "SUPER_ADMIN":
		return true
	}
	return false
}

// AuthHeader returns the Authorization header value for the current
// token, or false when no valid token is resolvable.
func (a *Accessor) AuthHeader() (string, bool) {
	if !a.Valid() {
		return "", false
	}
	return "Bearer " + strings.TrimSpace(a.source()), true
}

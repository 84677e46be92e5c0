// ABOUTME: Claim extraction from portal-issued JWTs
// ABOUTME: Reads sub, role and exp without verifying the signature

package session

import (
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the portal user role carried in the token.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleFaculty Role = "FACULTY"
)

// ParseRole maps a claim string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent:
		return RoleStudent, true
	case RoleFaculty:
		return RoleFaculty, true
	default:
		return "", false
	}
}

// Claims are the portal claims the client reads from a token.
type Claims struct {
	Username  string
	Role      Role
	ExpiresAt int64 // seconds since epoch
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Decode extracts claims from a portal token. The signature is NOT verified
// here: the gateway verifies it on every request, and decoded claims drive
// only display and routing. Decode is total — any malformed input returns
// (nil, false), never a panic or a partial claim set.
func Decode(token string) (*Claims, bool) {
	if token == "" {
		return nil, false
	}

	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		slog.Debug("token decode failed", "error", err)
		return nil, false
	}

	role, ok := ParseRole(tc.Role)
	if !ok || tc.Subject == "" {
		slog.Debug("token missing required claims", "sub", tc.Subject, "role", tc.Role)
		return nil, false
	}

	var exp int64
	if tc.ExpiresAt != nil {
		exp = tc.ExpiresAt.Unix()
	}

	return &Claims{
		Username:  tc.Subject,
		Role:      role,
		ExpiresAt: exp,
	}, true
}

package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired inspects a bearer token without verifying its signature and
// reports whether its exp claim has passed. Tokens that are not JWTs, or
// JWTs without an exp claim, are treated as non-expiring: the server is the
// authority, this check only exists to warn before issuing doomed requests.
func TokenExpired(token string, now time.Time) (bool, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false, fmt.Errorf("token is not a parseable JWT: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, nil
	}
	return exp.Before(now), nil
}

package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a backend-issued JWT. The portal does not
// hold the backend's signing key, so the token is parsed without verification
// and only used to bound the local session lifetime.
func TokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// SessionExpiry is the earlier of now+ttl and the token's own expiry, never
// before now. Tokens without an exp claim get now+ttl.
func SessionExpiry(token string, ttl time.Duration, now time.Time) time.Time {
	limit := now.Add(ttl)
	exp, ok := TokenExpiry(token)
	switch {
	case !ok || exp.After(limit):
		return limit
	case !exp.After(now):
		return now
	}
	return exp
}

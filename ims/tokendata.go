package ims

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenData decodes the claims of an IMS access token without verifying its
// signature. IMS issues JWTs, so the payload is readable client-side; use
// this for logging and diagnostics only, never for trust decisions.
func TokenData(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("ims: decode token: %w", err)
	}
	return claims, nil
}

// TokenExpiry returns the expiry time encoded in an IMS access token, again
// without signature verification.
func TokenExpiry(token string) (time.Time, error) {
	claims, err := TokenData(token)
	if err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("ims: read expiry claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, errors.New("ims: token carries no expiry claim")
	}

	return exp.Time, nil
}

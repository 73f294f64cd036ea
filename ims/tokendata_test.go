package ims

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestTokenData(t *testing.T) {
	signed := signedTestToken(t, jwt.MapClaims{
		"client_id": "c1",
		"scope":     "openid,AdobeID",
	})

	claims, err := TokenData(signed)
	if err != nil {
		t.Fatalf("TokenData failed: %v", err)
	}

	if claims["client_id"] != "c1" {
		t.Errorf("unexpected client_id claim: %v", claims["client_id"])
	}
	if claims["scope"] != "openid,AdobeID" {
		t.Errorf("unexpected scope claim: %v", claims["scope"])
	}
}

func TestTokenData_NotAJWT(t *testing.T) {
	if _, err := TokenData("opaque-token"); err == nil {
		t.Error("expected error for non-JWT token")
	}
}

func TestTokenExpiry(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	signed := signedTestToken(t, jwt.MapClaims{
		"exp": expiry.Unix(),
	})

	got, err := TokenExpiry(signed)
	if err != nil {
		t.Fatalf("TokenExpiry failed: %v", err)
	}

	if !got.Equal(expiry) {
		t.Errorf("expected expiry %v, got %v", expiry, got)
	}
}

func TestTokenExpiry_NoClaim(t *testing.T) {
	signed := signedTestToken(t, jwt.MapClaims{"client_id": "c1"})

	if _, err := TokenExpiry(signed); err == nil {
		t.Error("expected error for token without expiry claim")
	}
}

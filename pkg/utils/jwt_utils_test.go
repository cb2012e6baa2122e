package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret")
	before := time.Now()

	token, issued, err := m.Issue(42, "+15550001", "ADMIN")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 42 || claims.Phone != "+15550001" || claims.Role != "ADMIN" {
		t.Fatalf("claims did not round-trip: %+v", claims)
	}
	if claims.ID == "" || claims.ID != issued.ID {
		t.Fatalf("jti mismatch: %q vs %q", claims.ID, issued.ID)
	}
	minExpiry := before.Add(TokenTTL - time.Minute)
	if claims.ExpiresAt.Time.Before(minExpiry) {
		t.Fatalf("expiry %v earlier than %v", claims.ExpiresAt.Time, minExpiry)
	}
}

func TestVerifyRejects(t *testing.T) {
	m := NewTokenManager("test-secret")
	valid, _, err := m.Issue(7, "+15550002", "CONFIRMER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	past := time.Now().Add(-8 * 24 * time.Hour)
	expired, _, err := m.WithClock(func() time.Time { return past }).Issue(7, "+15550002", "CONFIRMER")
	if err != nil {
		t.Fatalf("Issue expired: %v", err)
	}

	otherKey, _, err := NewTokenManager("another-secret").Issue(7, "+15550002", "CONFIRMER")
	if err != nil {
		t.Fatalf("Issue other: %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.token"},
		{"garbage", "abc"},
		{"tampered", valid[:len(valid)-2] + "xx"},
		{"expired", expired},
		{"wrong secret", otherKey},
		{"unsigned", unsigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := m.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("want ErrInvalidToken, got %v", err)
			}
			if claims != nil {
				t.Fatalf("want nil claims, got %+v", claims)
			}
		})
	}
}

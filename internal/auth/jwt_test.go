package auth_test

import (
	"testing"
	"time"

	"github.com/ironhall/gymhub/internal/auth"
)

func newTestManager() *auth.Manager {
	return auth.NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "alice", true)

	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	claims, err := m.VerifyAccessToken(token)

	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Fatalf("got userID %q, want user-1", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Fatalf("got username %q, want alice", claims.Username)
	}
	if !claims.IsAdmin {
		t.Fatalf("isAdmin flag lost in round trip")
	}
}

func TestRefreshTokenNotAcceptedAsAccess(t *testing.T) {
	m := newTestManager()

	raw, jti, _, err := m.GenerateRefreshToken("user-1", "alice", false)

	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	if jti == "" {
		t.Fatalf("refresh token must carry a jti")
	}

	if _, err := m.VerifyAccessToken(raw); err == nil {
		t.Fatalf("refresh token must not verify as an access token")
	}

	if _, err := m.VerifyRefreshToken(raw); err != nil {
		t.Fatalf("refresh token should verify as refresh: %v", err)
	}
}

func TestAccessTokenNotAcceptedAsRefresh(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "alice", false)

	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	if _, err := m.VerifyRefreshToken(token); err == nil {
		t.Fatalf("access token must not verify as a refresh token")
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	m := newTestManager()
	other := auth.NewManager("other-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := other.GenerateAccessToken("user-1", "alice", false)

	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	if _, err := m.VerifyAccessToken(token); err == nil {
		t.Fatalf("token signed with a different secret must not verify")
	}
}

func TestHashRefreshTokenDeterministic(t *testing.T) {
	m := newTestManager()

	raw, _, _, err := m.GenerateRefreshToken("user-1", "alice", false)

	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	h1 := m.HashRefreshToken(raw)
	h2 := m.HashRefreshToken(raw)

	if h1 != h2 {
		t.Fatalf("hash should be deterministic for the same token")
	}

	if h1 == raw {
		t.Fatalf("stored hash must differ from the raw token")
	}
}

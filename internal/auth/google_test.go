package auth

import (
	"strings"
	"testing"
)

func TestNewStateIsUnique(t *testing.T) {
	t.Parallel()

	a, err := NewState()
	if err != nil {
		t.Fatalf("NewState error: %v", err)
	}
	b, err := NewState()
	if err != nil {
		t.Fatalf("NewState error: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct states")
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 hex chars, got %d", len(a))
	}
}

func TestAuthURLCarriesStateAndScopes(t *testing.T) {
	t.Parallel()

	v := NewGoogleVerifier("client-id", "client-secret", "http://localhost:5000/auth/google/callback")
	u := v.AuthURL("state-xyz")

	if !strings.Contains(u, "state=state-xyz") {
		t.Fatalf("auth URL missing state: %s", u)
	}
	if !strings.Contains(u, "client-id") {
		t.Fatalf("auth URL missing client id: %s", u)
	}
	if !strings.Contains(u, "scope=") {
		t.Fatalf("auth URL missing scopes: %s", u)
	}
}

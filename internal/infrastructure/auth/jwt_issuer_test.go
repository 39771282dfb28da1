package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTIssueAndVerify(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	subject, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if subject != "alice" {
		t.Errorf("expected subject alice, got %q", subject)
	}
}

func TestJWTVerifyRejectsGarbage(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)

	if _, err := issuer.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)
	other := NewJWTIssuer("other-secret", time.Hour)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTVerifyRejectsExpired(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

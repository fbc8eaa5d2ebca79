package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	signed, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected account 42, got %d", id)
	}
}

func TestVerifyMissingToken(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	if _, err := tokens.Verify(""); !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	other := NewTokens("other-secret", time.Hour)

	signed, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)

	signed, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tokens.Verify(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	if _, err := tokens.Verify("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

package auth

import (
	"testing"
	"time"

	"letterpal/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := GenerateToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotUserID, err := GetUserIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, secret)
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u1", []byte("right"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, []byte("wrong"))
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := GetUserIDFromToken("not-a-token", []byte("secret"))
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

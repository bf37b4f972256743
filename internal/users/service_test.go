package users

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, "Doctor@Example.com", "correct-horse", "Doctor")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "doctor@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "correct-horse" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}

	got, err := svc.Authenticate(ctx, "doctor@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("authenticated wrong user: %q != %q", got.ID, user.ID)
	}
}

func TestAuthenticateRejectsBadPassword(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "doctor@example.com", "correct-horse", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "doctor@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must look identical: %v", err)
	}
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "not-an-email", "long-enough", ""); err == nil {
		t.Fatal("expected error for invalid email")
	}
	if _, err := svc.Register(ctx, "doctor@example.com", "short", ""); err == nil {
		t.Fatal("expected error for short password")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "doctor@example.com", "correct-horse", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "DOCTOR@example.com", "another-pass", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpsertFromAuthKeepsPasswordAccount(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	registered, err := svc.Register(ctx, "doctor@example.com", "correct-horse", "Doctor")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	merged, err := svc.UpsertFromAuth(ctx, User{
		ID:          "google-oauth-sub",
		Email:       "doctor@example.com",
		DisplayName: "Doctor G",
		PictureURL:  "https://example.com/p.png",
	})
	if err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}
	if merged.ID != registered.ID {
		t.Fatalf("google sign-in must reuse the existing account, got id %q", merged.ID)
	}

	if _, err := svc.Authenticate(ctx, "doctor@example.com", "correct-horse"); err != nil {
		t.Fatalf("password login must survive google sign-in: %v", err)
	}
}

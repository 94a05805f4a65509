package accounts

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	sharedauth "jobportal/internal/shared/auth"
)

func newTestService() *Service {
	svc := NewService(NewMemoryRepo())
	svc.Cost = bcrypt.MinCost
	return svc
}

func TestValidateRegistration(t *testing.T) {
	cases := []struct {
		username string
		password string
		want     string
	}{
		{"", "password123", "Username and password are required"},
		{"alice", "", "Username and password are required"},
		{"12345", "password123", "Username cannot be only numbers"},
		{"bob", "password123", "Username must be at least 4 characters"},
		{"alice", "short", "Password must be at least 8 characters"},
		{"alice", "12345678", "Password cannot be only numbers"},
		{"123", "1", "Username cannot be only numbers"},
	}
	for _, tc := range cases {
		err := ValidateRegistration(tc.username, tc.password)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q/%q: expected validation error, got %v", tc.username, tc.password, err)
		}
		if verr.Message != tc.want {
			t.Fatalf("%q/%q: got %q, want %q", tc.username, tc.password, verr.Message, tc.want)
		}
	}
	if err := ValidateRegistration("alice", "secret-pass1"); err != nil {
		t.Fatalf("expected valid registration, got %v", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sess, err := svc.Register(ctx, "  alice  ", "alice@example.com", "secret-pass1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.Account.Username != "alice" {
		t.Fatalf("expected trimmed username, got %q", sess.Account.Username)
	}
	if sess.Account.PasswordHash == "secret-pass1" || sess.Account.PasswordHash == "" {
		t.Fatalf("expected hashed password")
	}
	claims, err := sharedauth.VerifyJWT(sess.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Sub != sess.Account.ID {
		t.Fatalf("expected sub %q, got %q", sess.Account.ID, claims.Sub)
	}

	login, err := svc.Login(ctx, "alice", "secret-pass1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Account.ID != sess.Account.ID {
		t.Fatalf("expected same account")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "", "secret-pass1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "", "another-pass"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "", "secret-pass1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.UpsertExternal(ctx, Account{ID: "google:42", Email: "g@example.com"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	cases := map[string][2]string{
		"wrong password": {"alice", "wrong-pass1"},
		"unknown user":   {"mallory", "secret-pass1"},
		"empty":          {"", ""},
	}
	for name, creds := range cases {
		if _, err := svc.Login(ctx, creds[0], creds[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
	}
}

func TestUpsertExternalKeepsCreatedAt(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.UpsertExternal(ctx, Account{ID: "google:7", FullName: "Old Name"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	first, err := svc.Get(ctx, "google:7")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.Provider != ProviderGoogle {
		t.Fatalf("expected google provider, got %q", first.Provider)
	}

	if err := svc.UpsertExternal(ctx, Account{ID: "google:7", FullName: "New Name"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := svc.Get(ctx, "google:7")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if second.FullName != "New Name" {
		t.Fatalf("expected refreshed name, got %q", second.FullName)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("expected created_at to be preserved")
	}

	if _, err := svc.Get(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty id, got %v", err)
	}
}

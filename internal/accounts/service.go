package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	sharedauth "jobportal/internal/shared/auth"
	"jobportal/internal/shared/telemetry"
)

const (
	minUsernameLen = 4
	minPasswordLen = 8
)

type Service struct {
	Repo Repo
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Session is a signed-in account and its bearer token.
type Session struct {
	Token   string
	Account Account
}

// ValidateRegistration applies the registration rules in order and returns
// the first violation.
func ValidateRegistration(username, password string) error {
	switch {
	case username == "" || password == "":
		return &ValidationError{Message: "Username and password are required"}
	case isDigits(username):
		return &ValidationError{Message: "Username cannot be only numbers"}
	case len([]rune(username)) < minUsernameLen:
		return &ValidationError{Message: "Username must be at least 4 characters"}
	case len([]rune(password)) < minPasswordLen:
		return &ValidationError{Message: "Password must be at least 8 characters"}
	case isDigits(password):
		return &ValidationError{Message: "Password cannot be only numbers"}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Register creates a password account and signs it in.
func (s *Service) Register(ctx context.Context, username, email, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if err := ValidateRegistration(username, password); err != nil {
		return Session{}, err
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.Now().UTC()
	acct := Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.TrimSpace(email),
		Provider:     ProviderPassword,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, acct); err != nil {
		return Session{}, err
	}
	telemetry.Info("accounts.registered", map[string]any{"account_id": acct.ID})
	return s.session(acct)
}

// Login checks a username and password. Unknown users and wrong passwords
// both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	acct, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if acct.PasswordHash == "" {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(acct)
}

// UpsertExternal records an identity from an external provider such as Google.
func (s *Service) UpsertExternal(ctx context.Context, acct Account) error {
	if strings.TrimSpace(acct.ID) == "" {
		return errors.New("account id is required")
	}
	if acct.Provider == "" {
		acct.Provider = ProviderGoogle
	}
	return s.Repo.UpsertExternal(ctx, acct)
}

func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	if strings.TrimSpace(id) == "" {
		return Account{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) session(acct Account) (Session, error) {
	name := acct.FullName
	if name == "" {
		name = acct.Username
	}
	token, err := sharedauth.SignJWT(sharedauth.Claims{
		Sub:   acct.ID,
		Email: acct.Email,
		Name:  name,
	})
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: token, Account: acct}, nil
}

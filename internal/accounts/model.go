package accounts

import "time"

// Providers an account can come from.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// Account is a registered (non-guest) identity. PasswordHash is empty for
// accounts created through an external provider.
type Account struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PictureURL   string
	Provider     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

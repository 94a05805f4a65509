package accounts

import "context"

type Repo interface {
	// Create inserts a new account and returns ErrDuplicate if the username is taken.
	Create(ctx context.Context, acct Account) error
	GetByID(ctx context.Context, id string) (Account, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
	// UpsertExternal creates or refreshes an account keyed by ID.
	UpsertExternal(ctx context.Context, acct Account) error
}

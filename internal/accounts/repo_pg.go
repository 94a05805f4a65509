package accounts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, acct Account) error {
	const query = `
INSERT INTO accounts (id, username, email, full_name, picture_url, provider, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		acct.ID,
		nullableString(acct.Username),
		nullableString(acct.Email),
		nullableString(acct.FullName),
		nullableString(acct.PictureURL),
		acct.Provider,
		nullableString(acct.PasswordHash),
		acct.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Account, error) {
	const query = `
SELECT id, username, email, full_name, picture_url, provider, password_hash, created_at, updated_at
FROM accounts
WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (Account, error) {
	const query = `
SELECT id, username, email, full_name, picture_url, provider, password_hash, created_at, updated_at
FROM accounts
WHERE username = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, username))
}

func (r *PGRepo) UpsertExternal(ctx context.Context, acct Account) error {
	const query = `
INSERT INTO accounts (id, email, full_name, picture_url, provider, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  picture_url = EXCLUDED.picture_url,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		acct.ID,
		nullableString(acct.Email),
		nullableString(acct.FullName),
		nullableString(acct.PictureURL),
		acct.Provider,
	)
	return err
}

func (r *PGRepo) scanOne(row *sql.Row) (Account, error) {
	var acct Account
	var username, email, fullName, picture, hash sql.NullString
	err := row.Scan(
		&acct.ID,
		&username,
		&email,
		&fullName,
		&picture,
		&acct.Provider,
		&hash,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	acct.Username = username.String
	acct.Email = email.String
	acct.FullName = fullName.String
	acct.PictureURL = picture.String
	acct.PasswordHash = hash.String
	return acct, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)

package applications

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, job_id, job_title, company, full_name, email, phone, cover_letter,
  linkedin, portfolio, resume_key, resume_file_name, resume_mime, status, ats_score,
  created_at, updated_at, screened_at`

func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, user_id, job_id, job_title, company, full_name, email, phone, cover_letter,
  linkedin, portfolio, resume_key, resume_file_name, resume_mime, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)`
	_, err := r.DB.ExecContext(ctx, query,
		app.ID,
		app.UserID,
		app.JobID,
		app.JobTitle,
		app.Company,
		app.FullName,
		app.Email,
		app.Phone,
		app.CoverLetter,
		app.LinkedIn,
		app.Portfolio,
		app.ResumeKey,
		app.ResumeFileName,
		app.ResumeMime,
		app.Status,
		app.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE id = $1`
	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateScreening(ctx context.Context, id, status string, score *int, at time.Time) error {
	const query = `
UPDATE applications
SET status = $2, ats_score = COALESCE($3, ats_score), screened_at = $4, updated_at = $4
WHERE id = $1`
	var nullScore sql.NullInt64
	if score != nil {
		nullScore = sql.NullInt64{Int64: int64(*score), Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, query, id, status, nullScore, at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var score sql.NullInt64
	var screenedAt sql.NullTime
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.JobID,
		&app.JobTitle,
		&app.Company,
		&app.FullName,
		&app.Email,
		&app.Phone,
		&app.CoverLetter,
		&app.LinkedIn,
		&app.Portfolio,
		&app.ResumeKey,
		&app.ResumeFileName,
		&app.ResumeMime,
		&app.Status,
		&score,
		&app.CreatedAt,
		&app.UpdatedAt,
		&screenedAt,
	)
	if err != nil {
		return Application{}, err
	}
	if score.Valid {
		v := int(score.Int64)
		app.ATSScore = &v
	}
	if screenedAt.Valid {
		t := screenedAt.Time
		app.ScreenedAt = &t
	}
	return app, nil
}

var _ Repo = (*PGRepo)(nil)

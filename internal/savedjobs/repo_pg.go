package savedjobs

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo on Postgres with a unique (user_id, job_id) index.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Save(ctx context.Context, job SavedJob) (bool, error) {
	const query = `
INSERT INTO saved_jobs (
    id,
    user_id,
    job_id,
    job_title,
    company,
    location,
    description,
    redirect_url,
    salary,
    posted_date,
    saved_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (user_id, job_id) DO NOTHING`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.UserID,
		job.JobID,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		job.RedirectURL,
		job.Salary,
		job.PostedDate,
		job.SavedAt,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, jobID string) (bool, error) {
	const query = `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, jobID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]SavedJob, error) {
	const query = `
SELECT id, user_id, job_id, job_title, company, location, description, redirect_url, salary, posted_date, saved_at
FROM saved_jobs
WHERE user_id = $1
ORDER BY saved_at DESC, job_id`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SavedJob{}
	for rows.Next() {
		var job SavedJob
		if err := rows.Scan(
			&job.ID,
			&job.UserID,
			&job.JobID,
			&job.Title,
			&job.Company,
			&job.Location,
			&job.Description,
			&job.RedirectURL,
			&job.Salary,
			&job.PostedDate,
			&job.SavedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo on Postgres. Skills and the breakdown are jsonb.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, p Profile) (Profile, error) {
	const query = `
INSERT INTO profiles (
    id,
    user_id,
    is_guest,
    resume_key,
    resume_file_name,
    skills,
    ats_score,
    ats_breakdown,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id) DO UPDATE SET
    is_guest = EXCLUDED.is_guest,
    resume_key = EXCLUDED.resume_key,
    resume_file_name = EXCLUDED.resume_file_name,
    skills = EXCLUDED.skills,
    ats_score = EXCLUDED.ats_score,
    ats_breakdown = EXCLUDED.ats_breakdown,
    updated_at = EXCLUDED.updated_at
RETURNING id, created_at`

	skillsJSON, err := json.Marshal(nonNil(p.Skills))
	if err != nil {
		return Profile{}, fmt.Errorf("encode skills: %w", err)
	}
	breakdownJSON, err := json.Marshal(p.Breakdown)
	if err != nil {
		return Profile{}, fmt.Errorf("encode breakdown: %w", err)
	}

	err = r.DB.QueryRowContext(
		ctx,
		query,
		p.ID,
		p.UserID,
		p.IsGuest,
		nullString(p.ResumeKey),
		nullString(p.ResumeFileName),
		string(skillsJSON),
		p.ATSScore,
		string(breakdownJSON),
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT id, user_id, is_guest, resume_key, resume_file_name, skills, ats_score, ats_breakdown, created_at, updated_at
FROM profiles
WHERE user_id = $1`

	var p Profile
	var resumeKey, resumeName sql.NullString
	var skillsJSON, breakdownJSON []byte
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.IsGuest,
		&resumeKey,
		&resumeName,
		&skillsJSON,
		&p.ATSScore,
		&breakdownJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	p.ResumeKey = resumeKey.String
	p.ResumeFileName = resumeName.String
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &p.Skills); err != nil {
			return Profile{}, fmt.Errorf("decode skills: %w", err)
		}
	}
	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &p.Breakdown); err != nil {
			return Profile{}, fmt.Errorf("decode breakdown: %w", err)
		}
	}
	p.Skills = nonNil(p.Skills)
	return p, nil
}

func (r *PGRepo) DeleteGuestsBefore(ctx context.Context, cutoff time.Time) ([]Profile, error) {
	const query = `
DELETE FROM profiles
WHERE is_guest AND updated_at < $1
RETURNING id, user_id, resume_key`

	rows, err := r.DB.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		var resumeKey sql.NullString
		if err := rows.Scan(&p.ID, &p.UserID, &resumeKey); err != nil {
			return nil, err
		}
		p.IsGuest = true
		p.ResumeKey = resumeKey.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ Repo = (*PGRepo)(nil)

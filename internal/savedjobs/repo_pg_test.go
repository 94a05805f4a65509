package savedjobs

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoSaveReportsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	job := SavedJob{ID: "id-1", UserID: "u1", JobID: "j1", Title: "Go Dev", Company: "Acme", SavedAt: time.Now().UTC()}

	mock.ExpectExec("INSERT INTO saved_jobs").
		WithArgs(job.ID, job.UserID, job.JobID, job.Title, job.Company, "", "", "", "", "", job.SavedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO saved_jobs").
		WithArgs(sqlmock.AnyArg(), job.UserID, job.JobID, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Save(context.Background(), job)
	if err != nil || !created {
		t.Fatalf("first Save = %v, %v", created, err)
	}
	created, err = repo.Save(context.Background(), job)
	if err != nil || created {
		t.Fatalf("second Save = %v, %v", created, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "user_id", "job_id", "job_title", "company", "location", "description", "redirect_url", "salary", "posted_date", "saved_at"}).
		AddRow("1", "u1", "j2", "Designer", "Globex", "Remote", "", "https://x", "", "", now).
		AddRow("2", "u1", "j1", "Engineer", "Acme", "Pune", "", "", "10L", "2026-01-01", now.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, user_id, job_id").WithArgs("u1").WillReturnRows(rows)

	jobs, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(jobs) != 2 || jobs[0].JobID != "j2" || jobs[1].Salary != "10L" {
		t.Fatalf("unexpected jobs %+v", jobs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM saved_jobs").WithArgs("u1", "j1").WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), "u1", "j1")
	if err != nil || !deleted {
		t.Fatalf("Delete = %v, %v", deleted, err)
	}
}

package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/ogurasousui/recruit-dashboard/internal/core/recruiter"
)

func TestScanRecruiter_NilJobsBecomeEmpty(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...any) error {
		*(dest[0].(*string)) = "rec-1"
		*(dest[4].(*string)) = string(recruiter.RoleManager)
		return nil
	}}

	rec, err := scanRecruiter(row)
	if err != nil {
		t.Fatalf("scanRecruiter returned error: %v", err)
	}
	if rec.Role != recruiter.RoleManager {
		t.Fatalf("expected manager role, got %s", rec.Role)
	}
	if rec.ActiveJobIDs == nil {
		t.Fatal("expected non-nil active job ids")
	}

	noRows := stubRow{scanFn: func(dest ...any) error { return pgx.ErrNoRows }}
	if _, err := scanRecruiter(noRows); !errors.Is(err, recruiter.ErrRecruiterNotFound) {
		t.Fatalf("expected ErrRecruiterNotFound, got %v", err)
	}
}

func TestTranslateRecruiterPgError(t *testing.T) {
	t.Parallel()

	if !errors.Is(translateRecruiterPgError(&pgconn.PgError{Code: uniqueViolationCode}), recruiter.ErrEmailAlreadyExists) {
		t.Fatalf("expected email already exists mapping")
	}
	if !errors.Is(translateRecruiterPgError(&pgconn.PgError{Code: invalidTextRepresentation}), recruiter.ErrRecruiterNotFound) {
		t.Fatalf("expected not found mapping")
	}
}

func TestRecruiterRepository_List_ByJob(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	query := regexp.QuoteMeta(`
        SELECT ` + recruiterColumns + `
          FROM recruiters WHERE $1 = ANY(active_job_ids)
         ORDER BY created_at, id
         LIMIT $2
        OFFSET $3
    `)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "name", "email", "phone", "role", "active_job_ids", "created_at", "updated_at"}).
		AddRow("rec-1", "Aiko", "aiko@example.com", "", "recruiter", []string{"job-1"}, now, now).
		AddRow("rec-2", "Ken", "ken@example.com", "", "manager", []string{"job-1", "job-2"}, now, now)

	mock.ExpectQuery(query).
		WithArgs("job-1", 2, 0).
		WillReturnRows(rows)

	repo := NewRecruiterRepository(mock)
	recruiters, nextToken, err := repo.List(context.Background(), recruiter.ListRecruitersFilter{JobID: "job-1", Limit: 1})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(recruiters) != 1 || recruiters[0].ID != "rec-1" || nextToken != "1" {
		t.Fatalf("unexpected page: %+v, token %q", recruiters, nextToken)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecruiterRepository_RemoveJobFromAll(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`array_remove(active_job_ids, $1)`)).
		WithArgs("job-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	repo := NewRecruiterRepository(mock)
	if err := repo.RemoveJobFromAll(context.Background(), "job-1"); err != nil {
		t.Fatalf("RemoveJobFromAll returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/ogurasousui/recruit-dashboard/internal/core/client"
)

func TestClientRepository_Create_DuplicateName(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO clients (name, created_at)`)).
		WithArgs("Acme", now).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	repo := NewClientRepository(mock)
	if _, err := repo.Create(context.Background(), &client.Client{Name: "Acme", CreatedAt: now}); !errors.Is(err, client.ErrNameAlreadyExists) {
		t.Fatalf("expected ErrNameAlreadyExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClientRepository_List_WithNextToken(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	query := regexp.QuoteMeta(`
        SELECT id, name, created_at
          FROM clients
         ORDER BY name
         LIMIT $1
        OFFSET $2
    `)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow("c-1", "Acme", now).
		AddRow("c-2", "Tech Corp", now).
		AddRow("c-3", "Zeta", now)

	mock.ExpectQuery(query).
		WithArgs(3, 2).
		WillReturnRows(rows)

	repo := NewClientRepository(mock)
	clients, nextToken, err := repo.List(context.Background(), client.ListClientsFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(clients) != 2 || nextToken != "4" {
		t.Fatalf("unexpected page: %d clients, token %q", len(clients), nextToken)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClientRepository_FindByName_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM clients`)).
		WithArgs("Nobody").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at"}))

	repo := NewClientRepository(mock)
	if _, err := repo.FindByName(context.Background(), "Nobody"); !errors.Is(err, client.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/recruit-dashboard/internal/core/client"
	pgdb "github.com/ogurasousui/recruit-dashboard/internal/platform/db/postgres"
)

// ClientRepository は PostgreSQL を利用したクライアント永続化の実装です。
type ClientRepository struct {
	pool pgdb.Queryer
}

// NewClientRepository は ClientRepository を生成します。
func NewClientRepository(pool pgdb.Queryer) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// Create はクライアントを新規作成します。
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) (*client.Client, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO clients (name, created_at)
        VALUES ($1, $2)
        RETURNING id, name, created_at
    `, c.Name, c.CreatedAt)

	created, err := scanClient(row)
	if err != nil {
		return nil, translateClientPgError(err)
	}
	return created, nil
}

// Delete はクライアントを削除します。
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return translateClientPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

// FindByName は名前でクライアントを取得します。
func (r *ClientRepository) FindByName(ctx context.Context, name string) (*client.Client, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, created_at
          FROM clients
         WHERE name = $1
         LIMIT 1
    `, name)

	found, err := scanClient(row)
	if err != nil {
		return nil, translateClientPgError(err)
	}
	return found, nil
}

// List はクライアントの一覧を名前順に取得します。
func (r *ClientRepository) List(ctx context.Context, filter client.ListClientsFilter) ([]*client.Client, string, error) {
	if filter.Limit <= 0 {
		return nil, "", client.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", client.ErrInvalidPageToken
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, name, created_at
          FROM clients
         ORDER BY name
         LIMIT $1
        OFFSET $2
    `, filter.Limit+1, filter.Offset)
	if err != nil {
		return nil, "", translateClientPgError(err)
	}
	defer rows.Close()

	var clients []*client.Client
	for rows.Next() {
		found, err := scanClient(rows)
		if err != nil {
			return nil, "", translateClientPgError(err)
		}
		clients = append(clients, found)
	}
	if err := rows.Err(); err != nil {
		return nil, "", translateClientPgError(err)
	}

	var nextToken string
	if len(clients) > filter.Limit {
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
		clients = clients[:filter.Limit]
	}

	return clients, nextToken, nil
}

func scanClient(row pgx.Row) (*client.Client, error) {
	var c client.Client
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, client.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func translateClientPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return client.ErrNameAlreadyExists
		case invalidTextRepresentation:
			return client.ErrClientNotFound
		}
	}
	return err
}

package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/recruit-dashboard/internal/core/joborder"
	pgdb "github.com/ogurasousui/recruit-dashboard/internal/platform/db/postgres"
)

const (
	checkViolationCode        = "23514"
	invalidTextRepresentation = "22P02"
)

const jobOrderColumns = `id, client_name, job_title, location, salary, status, priority,
               received_date, due_date, placement_date, potential_commission, earned_commission,
               created_at, updated_at`

// JobOrderRepository は PostgreSQL を利用した求人案件永続化の実装です。
type JobOrderRepository struct {
	pool pgdb.Queryer
}

// NewJobOrderRepository は JobOrderRepository を生成します。
func NewJobOrderRepository(pool pgdb.Queryer) *JobOrderRepository {
	return &JobOrderRepository{pool: pool}
}

// Create は求人案件を新規作成します。
func (r *JobOrderRepository) Create(ctx context.Context, j *joborder.JobOrder) (*joborder.JobOrder, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO job_orders (client_name, job_title, location, salary, status, priority,
                                received_date, due_date, placement_date, potential_commission, earned_commission,
                                created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING `+jobOrderColumns+`
    `, j.ClientName, j.JobTitle, j.Location, j.Salary, string(j.Status), string(j.Priority),
		nullableTime(j.ReceivedDate), nullableTime(j.DueDate), nullableTime(j.PlacementDate),
		j.PotentialCommission, j.EarnedCommission, j.CreatedAt, j.UpdatedAt)

	created, err := scanJobOrder(row)
	if err != nil {
		return nil, translateJobOrderPgError(err)
	}
	return created, nil
}

// Update は求人案件を更新します。
func (r *JobOrderRepository) Update(ctx context.Context, j *joborder.JobOrder) (*joborder.JobOrder, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE job_orders
           SET client_name = $1,
               job_title = $2,
               location = $3,
               salary = $4,
               status = $5,
               priority = $6,
               received_date = $7,
               due_date = $8,
               placement_date = $9,
               potential_commission = $10,
               earned_commission = $11,
               updated_at = $12
         WHERE id = $13
        RETURNING `+jobOrderColumns+`
    `, j.ClientName, j.JobTitle, j.Location, j.Salary, string(j.Status), string(j.Priority),
		nullableTime(j.ReceivedDate), nullableTime(j.DueDate), nullableTime(j.PlacementDate),
		j.PotentialCommission, j.EarnedCommission, j.UpdatedAt, j.ID)

	updated, err := scanJobOrder(row)
	if err != nil {
		return nil, translateJobOrderPgError(err)
	}
	return updated, nil
}

// Delete は求人案件を削除します。
func (r *JobOrderRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM job_orders WHERE id = $1`, id)
	if err != nil {
		return translateJobOrderPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return joborder.ErrJobOrderNotFound
	}
	return nil
}

// FindByID は ID で求人案件を取得します。
func (r *JobOrderRepository) FindByID(ctx context.Context, id string) (*joborder.JobOrder, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+jobOrderColumns+`
          FROM job_orders
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanJobOrder(row)
	if err != nil {
		return nil, translateJobOrderPgError(err)
	}
	return found, nil
}

// List は求人案件の一覧を取得します。
func (r *JobOrderRepository) List(ctx context.Context, filter joborder.ListJobOrdersFilter) ([]*joborder.JobOrder, string, error) {
	if filter.Limit <= 0 {
		return nil, "", joborder.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", joborder.ErrInvalidPageToken
	}

	args := make([]any, 0, 4)
	conditions := make([]string, 0, 2)

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.ClientName != "" {
		args = append(args, filter.ClientName)
		conditions = append(conditions, "client_name = $"+strconv.Itoa(len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, filter.Limit+1)
	limitPlaceholder := "$" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetPlaceholder := "$" + strconv.Itoa(len(args))

	query := `
        SELECT ` + jobOrderColumns + `
          FROM job_orders` + whereClause + `
         ORDER BY created_at, id
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	jobs, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}

	var nextToken string
	if len(jobs) > filter.Limit {
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
		jobs = jobs[:filter.Limit]
	}

	return jobs, nextToken, nil
}

// Snapshot は全求人案件を登録順に取得します。
func (r *JobOrderRepository) Snapshot(ctx context.Context) ([]joborder.JobOrder, error) {
	jobs, err := r.query(ctx, `
        SELECT `+jobOrderColumns+`
          FROM job_orders
         ORDER BY created_at, id
    `)
	if err != nil {
		return nil, err
	}

	out := make([]joborder.JobOrder, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, *j)
	}
	return out, nil
}

func (r *JobOrderRepository) query(ctx context.Context, query string, args ...any) ([]*joborder.JobOrder, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateJobOrderPgError(err)
	}
	defer rows.Close()

	var jobs []*joborder.JobOrder
	for rows.Next() {
		found, err := scanJobOrder(rows)
		if err != nil {
			return nil, translateJobOrderPgError(err)
		}
		jobs = append(jobs, found)
	}
	if err := rows.Err(); err != nil {
		return nil, translateJobOrderPgError(err)
	}

	return jobs, nil
}

func scanJobOrder(row pgx.Row) (*joborder.JobOrder, error) {
	var (
		j                        joborder.JobOrder
		status, priority         string
		received, due, placement *time.Time
	)

	if err := row.Scan(
		&j.ID, &j.ClientName, &j.JobTitle, &j.Location, &j.Salary, &status, &priority,
		&received, &due, &placement, &j.PotentialCommission, &j.EarnedCommission,
		&j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, joborder.ErrJobOrderNotFound
		}
		return nil, err
	}

	j.Status = joborder.Status(status)
	j.Priority = joborder.Priority(priority)
	j.ReceivedDate = received
	j.DueDate = due
	j.PlacementDate = placement
	return &j, nil
}

func translateJobOrderPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case checkViolationCode:
			switch pgErr.ConstraintName {
			case "job_orders_date_range":
				return joborder.ErrInvalidDateRange
			case "job_orders_status_check":
				return joborder.ErrInvalidStatus
			case "job_orders_priority_check":
				return joborder.ErrInvalidPriority
			}
		case invalidTextRepresentation:
			return joborder.ErrJobOrderNotFound
		}
	}
	return err
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}

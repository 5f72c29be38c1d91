package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/recruit-dashboard/internal/core/recruiter"
	pgdb "github.com/ogurasousui/recruit-dashboard/internal/platform/db/postgres"
)

const recruiterColumns = `id, name, email, phone, role, active_job_ids, created_at, updated_at`

// RecruiterRepository は PostgreSQL を利用したリクルーター永続化の実装です。
type RecruiterRepository struct {
	pool pgdb.Queryer
}

// NewRecruiterRepository は RecruiterRepository を生成します。
func NewRecruiterRepository(pool pgdb.Queryer) *RecruiterRepository {
	return &RecruiterRepository{pool: pool}
}

// Create はリクルーターを新規作成します。
func (r *RecruiterRepository) Create(ctx context.Context, rec *recruiter.Recruiter) (*recruiter.Recruiter, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO recruiters (name, email, phone, role, active_job_ids, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+recruiterColumns+`
    `, rec.Name, rec.Email, rec.Phone, string(rec.Role), jobIDs(rec.ActiveJobIDs), rec.CreatedAt, rec.UpdatedAt)

	created, err := scanRecruiter(row)
	if err != nil {
		return nil, translateRecruiterPgError(err)
	}
	return created, nil
}

// Update はリクルーターを更新します。
func (r *RecruiterRepository) Update(ctx context.Context, rec *recruiter.Recruiter) (*recruiter.Recruiter, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE recruiters
           SET name = $1,
               email = $2,
               phone = $3,
               role = $4,
               active_job_ids = $5,
               updated_at = $6
         WHERE id = $7
        RETURNING `+recruiterColumns+`
    `, rec.Name, rec.Email, rec.Phone, string(rec.Role), jobIDs(rec.ActiveJobIDs), rec.UpdatedAt, rec.ID)

	updated, err := scanRecruiter(row)
	if err != nil {
		return nil, translateRecruiterPgError(err)
	}
	return updated, nil
}

// Delete はリクルーターを削除します。
func (r *RecruiterRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM recruiters WHERE id = $1`, id)
	if err != nil {
		return translateRecruiterPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return recruiter.ErrRecruiterNotFound
	}
	return nil
}

// FindByID は ID でリクルーターを取得します。
func (r *RecruiterRepository) FindByID(ctx context.Context, id string) (*recruiter.Recruiter, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+recruiterColumns+`
          FROM recruiters
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanRecruiter(row)
	if err != nil {
		return nil, translateRecruiterPgError(err)
	}
	return found, nil
}

// FindByEmail はメールアドレスでリクルーターを取得します。
func (r *RecruiterRepository) FindByEmail(ctx context.Context, email string) (*recruiter.Recruiter, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+recruiterColumns+`
          FROM recruiters
         WHERE email = $1
         LIMIT 1
    `, email)

	found, err := scanRecruiter(row)
	if err != nil {
		return nil, translateRecruiterPgError(err)
	}
	return found, nil
}

// List はリクルーターの一覧を取得します。
func (r *RecruiterRepository) List(ctx context.Context, filter recruiter.ListRecruitersFilter) ([]*recruiter.Recruiter, string, error) {
	if filter.Limit <= 0 {
		return nil, "", recruiter.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", recruiter.ErrInvalidPageToken
	}

	args := make([]any, 0, 4)
	conditions := make([]string, 0, 2)

	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		conditions = append(conditions, "role = $"+strconv.Itoa(len(args)))
	}
	if filter.JobID != "" {
		args = append(args, filter.JobID)
		conditions = append(conditions, "$"+strconv.Itoa(len(args))+" = ANY(active_job_ids)")
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
        SELECT ` + recruiterColumns + `
          FROM recruiters` + whereClause + `
         ORDER BY created_at, id
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateRecruiterPgError(err)
	}
	defer rows.Close()

	var recruiters []*recruiter.Recruiter
	for rows.Next() {
		found, err := scanRecruiter(rows)
		if err != nil {
			return nil, "", translateRecruiterPgError(err)
		}
		recruiters = append(recruiters, found)
	}
	if err := rows.Err(); err != nil {
		return nil, "", translateRecruiterPgError(err)
	}

	var nextToken string
	if len(recruiters) > filter.Limit {
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
		recruiters = recruiters[:filter.Limit]
	}

	return recruiters, nextToken, nil
}

// RemoveJobFromAll は全リクルーターの担当案件から jobID を外します。
func (r *RecruiterRepository) RemoveJobFromAll(ctx context.Context, jobID string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, `
        UPDATE recruiters
           SET active_job_ids = array_remove(active_job_ids, $1),
               updated_at = NOW()
         WHERE $1 = ANY(active_job_ids)
    `, jobID)
	if err != nil {
		return translateRecruiterPgError(err)
	}
	return nil
}

func scanRecruiter(row pgx.Row) (*recruiter.Recruiter, error) {
	var (
		rec  recruiter.Recruiter
		role string
	)

	if err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Phone, &role, &rec.ActiveJobIDs, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, recruiter.ErrRecruiterNotFound
		}
		return nil, err
	}

	rec.Role = recruiter.Role(role)
	if rec.ActiveJobIDs == nil {
		rec.ActiveJobIDs = []string{}
	}
	return &rec, nil
}

func translateRecruiterPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return recruiter.ErrEmailAlreadyExists
		case checkViolationCode:
			return recruiter.ErrInvalidRole
		case invalidTextRepresentation:
			return recruiter.ErrRecruiterNotFound
		}
	}
	return err
}

func jobIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

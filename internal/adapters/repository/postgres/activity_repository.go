package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/recruit-dashboard/internal/core/activity"
	pgdb "github.com/ogurasousui/recruit-dashboard/internal/platform/db/postgres"
)

const uniqueViolationCode = "23505"

const activityColumns = `id, job_id, recruiter_id, recorded_at, week_key,
               cvs_sourced, screenings_conducted, submissions_to_clients, in_house_interviews,
               client_interviews, placements_made, time_to_fill, notes`

// ActivityRepository は PostgreSQL を利用した週次活動記録の実装です。
type ActivityRepository struct {
	pool pgdb.Queryer
}

// NewActivityRepository は ActivityRepository を生成します。
func NewActivityRepository(pool pgdb.Queryer) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Create は活動記録を新規作成します。
func (r *ActivityRepository) Create(ctx context.Context, e *activity.Entry) (*activity.Entry, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	c := e.Counters
	row := exec.QueryRow(ctx, `
        INSERT INTO activity_entries (job_id, recruiter_id, recorded_at, week_key,
                                      cvs_sourced, screenings_conducted, submissions_to_clients, in_house_interviews,
                                      client_interviews, placements_made, time_to_fill, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING `+activityColumns+`
    `, e.JobID, e.RecruiterID, e.Timestamp, e.WeekKey,
		c.CVsSourced, c.ScreeningsConducted, c.SubmissionsToClients, c.InHouseInterviews,
		c.ClientInterviews, c.PlacementsMade, c.TimeToFill, e.Notes)

	created, err := scanActivity(row)
	if err != nil {
		return nil, translateActivityPgError(err)
	}
	return created, nil
}

// Update は活動記録を更新します。記録日時と週キーは変更しません。
func (r *ActivityRepository) Update(ctx context.Context, e *activity.Entry) (*activity.Entry, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	c := e.Counters
	row := exec.QueryRow(ctx, `
        UPDATE activity_entries
           SET job_id = $1,
               recruiter_id = $2,
               cvs_sourced = $3,
               screenings_conducted = $4,
               submissions_to_clients = $5,
               in_house_interviews = $6,
               client_interviews = $7,
               placements_made = $8,
               time_to_fill = $9,
               notes = $10
         WHERE id = $11
        RETURNING `+activityColumns+`
    `, e.JobID, e.RecruiterID,
		c.CVsSourced, c.ScreeningsConducted, c.SubmissionsToClients, c.InHouseInterviews,
		c.ClientInterviews, c.PlacementsMade, c.TimeToFill, e.Notes, e.ID)

	updated, err := scanActivity(row)
	if err != nil {
		return nil, translateActivityPgError(err)
	}
	return updated, nil
}

// Delete は活動記録を削除します。
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM activity_entries WHERE id = $1`, id)
	if err != nil {
		return translateActivityPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return activity.ErrActivityNotFound
	}
	return nil
}

// FindByID は ID で活動記録を取得します。
func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*activity.Entry, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+activityColumns+`
          FROM activity_entries
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanActivity(row)
	if err != nil {
		return nil, translateActivityPgError(err)
	}
	return found, nil
}

// FindByJobAndWeek は案件と週キーで活動記録を取得します。
func (r *ActivityRepository) FindByJobAndWeek(ctx context.Context, jobID, weekKey string) (*activity.Entry, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+activityColumns+`
          FROM activity_entries
         WHERE job_id = $1 AND week_key = $2
         LIMIT 1
    `, jobID, weekKey)

	found, err := scanActivity(row)
	if err != nil {
		return nil, translateActivityPgError(err)
	}
	return found, nil
}

// List は活動記録の一覧を記録日時の昇順で取得します。
func (r *ActivityRepository) List(ctx context.Context, filter activity.ListActivitiesFilter) ([]*activity.Entry, string, error) {
	if filter.Limit <= 0 {
		return nil, "", activity.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", activity.ErrInvalidPageToken
	}

	args := make([]any, 0, 6)
	conditions := make([]string, 0, 4)

	if filter.JobID != "" {
		args = append(args, filter.JobID)
		conditions = append(conditions, "job_id = $"+strconv.Itoa(len(args)))
	}
	if filter.RecruiterID != "" {
		args = append(args, filter.RecruiterID)
		conditions = append(conditions, "recruiter_id = $"+strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, "recorded_at >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, "recorded_at <= $"+strconv.Itoa(len(args)))
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
        SELECT ` + activityColumns + `
          FROM activity_entries` + whereClause + `
         ORDER BY recorded_at, id
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	entries, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}

	var nextToken string
	if len(entries) > filter.Limit {
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
		entries = entries[:filter.Limit]
	}

	return entries, nextToken, nil
}

// Snapshot は全活動記録を取得します。
func (r *ActivityRepository) Snapshot(ctx context.Context) ([]activity.Entry, error) {
	entries, err := r.query(ctx, `
        SELECT `+activityColumns+`
          FROM activity_entries
         ORDER BY recorded_at, id
    `)
	if err != nil {
		return nil, err
	}

	out := make([]activity.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e)
	}
	return out, nil
}

func (r *ActivityRepository) query(ctx context.Context, query string, args ...any) ([]*activity.Entry, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateActivityPgError(err)
	}
	defer rows.Close()

	var entries []*activity.Entry
	for rows.Next() {
		found, err := scanActivity(rows)
		if err != nil {
			return nil, translateActivityPgError(err)
		}
		entries = append(entries, found)
	}
	if err := rows.Err(); err != nil {
		return nil, translateActivityPgError(err)
	}

	return entries, nil
}

func scanActivity(row pgx.Row) (*activity.Entry, error) {
	var e activity.Entry
	c := &e.Counters

	if err := row.Scan(
		&e.ID, &e.JobID, &e.RecruiterID, &e.Timestamp, &e.WeekKey,
		&c.CVsSourced, &c.ScreeningsConducted, &c.SubmissionsToClients, &c.InHouseInterviews,
		&c.ClientInterviews, &c.PlacementsMade, &c.TimeToFill, &e.Notes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, activity.ErrActivityNotFound
		}
		return nil, err
	}

	return &e, nil
}

func translateActivityPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return activity.ErrDuplicateWeeklyEntry
		case checkViolationCode:
			return activity.ErrInvalidCounter
		case invalidTextRepresentation:
			return activity.ErrActivityNotFound
		}
	}
	return err
}

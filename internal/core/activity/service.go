package activity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
)

// Service は週次活動記録に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// UseCase は週次活動記録ユースケースの公開インターフェースです。
type UseCase interface {
	RecordActivity(ctx context.Context, in RecordActivityInput) (*Entry, error)
	GetActivity(ctx context.Context, in GetActivityInput) (*Entry, error)
	ListActivities(ctx context.Context, in ListActivitiesInput) (*ListActivitiesResult, error)
	UpdateActivity(ctx context.Context, in UpdateActivityInput) (*Entry, error)
	DeleteActivity(ctx context.Context, in DeleteActivityInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// RecordActivityInput は活動記録作成時の入力です。
type RecordActivityInput struct {
	JobID       string
	RecruiterID string
	Counters    Counters
	Notes       string
}

// UpdateActivityInput は活動記録更新時の入力です。記録日時は変更されません。
type UpdateActivityInput struct {
	ID          string
	JobID       *string
	RecruiterID *string
	Counters    *Counters
	Notes       *string
}

// DeleteActivityInput は活動記録削除時の入力です。
type DeleteActivityInput struct {
	ID string
}

// GetActivityInput は活動記録取得時の入力です。
type GetActivityInput struct {
	ID string
}

// ListActivitiesInput は一覧取得時の入力です。WeekOf を指定するとその週の記録に絞り込みます。
type ListActivitiesInput struct {
	JobID       string
	RecruiterID string
	WeekOf      *time.Time
	PageSize    int
	PageToken   string
}

// ListActivitiesResult は一覧取得結果を表します。
type ListActivitiesResult struct {
	Entries       []*Entry
	NextPageToken string
}

// RecordActivity は週次活動を記録します。同一案件・同一週の記録は 1 件までです。
func (s *Service) RecordActivity(ctx context.Context, in RecordActivityInput) (*Entry, error) {
	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" {
		return nil, ErrInvalidJobID
	}
	if err := in.Counters.validate(); err != nil {
		return nil, err
	}

	var created *Entry
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		week := WeekKey(now)
		if err := s.ensureWeekFree(txCtx, jobID, week, ""); err != nil {
			return err
		}

		result, err := s.repo.Create(txCtx, &Entry{
			JobID:       jobID,
			RecruiterID: strings.TrimSpace(in.RecruiterID),
			Timestamp:   now,
			WeekKey:     week,
			Counters:    in.Counters,
			Notes:       strings.TrimSpace(in.Notes),
		})
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateActivity は活動記録を更新します。
func (s *Service) UpdateActivity(ctx context.Context, in UpdateActivityInput) (*Entry, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Entry
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if in.JobID != nil {
			jobID := strings.TrimSpace(*in.JobID)
			if jobID == "" {
				return ErrInvalidJobID
			}
			if jobID != existing.JobID {
				if err := s.ensureWeekFree(txCtx, jobID, existing.WeekKey, existing.ID); err != nil {
					return err
				}
				existing.JobID = jobID
			}
		}

		if in.RecruiterID != nil {
			existing.RecruiterID = strings.TrimSpace(*in.RecruiterID)
		}

		if in.Counters != nil {
			if err := in.Counters.validate(); err != nil {
				return err
			}
			existing.Counters = *in.Counters
		}

		if in.Notes != nil {
			existing.Notes = strings.TrimSpace(*in.Notes)
		}

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteActivity は活動記録を削除します。
func (s *Service) DeleteActivity(ctx context.Context, in DeleteActivityInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// GetActivity は活動記録を取得します。
func (s *Service) GetActivity(ctx context.Context, in GetActivityInput) (*Entry, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Entry
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListActivities は活動記録の一覧を取得します。
func (s *Service) ListActivities(ctx context.Context, in ListActivitiesInput) (*ListActivitiesResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	filter := ListActivitiesFilter{
		JobID:       strings.TrimSpace(in.JobID),
		RecruiterID: strings.TrimSpace(in.RecruiterID),
		Limit:       limit,
		Offset:      offset,
	}
	if in.WeekOf != nil {
		start, end := WeekBounds(*in.WeekOf)
		filter.From = &start
		filter.To = &end
	}

	var (
		entries   []*Entry
		nextToken string
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, token, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		entries = result
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListActivitiesResult{Entries: entries, NextPageToken: nextToken}, nil
}

func (s *Service) ensureWeekFree(ctx context.Context, jobID, week, selfID string) error {
	existing, err := s.repo.FindByJobAndWeek(ctx, jobID, week)
	if err != nil && !errors.Is(err, ErrActivityNotFound) {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrDuplicateWeeklyEntry
	}
	return nil
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}

package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/ogurasousui/recruit-dashboard/internal/core/activity"
	"github.com/ogurasousui/recruit-dashboard/internal/core/commission"
	"github.com/ogurasousui/recruit-dashboard/internal/core/joborder"
	"github.com/ogurasousui/recruit-dashboard/internal/core/kpi"
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
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// JobOrderSnapshotter は求人案件のスナップショットを提供します。
type JobOrderSnapshotter interface {
	Snapshot(ctx context.Context) ([]joborder.JobOrder, error)
}

// ActivitySnapshotter は活動記録のスナップショットを提供します。
type ActivitySnapshotter interface {
	Snapshot(ctx context.Context) ([]activity.Entry, error)
}

// UseCase はダッシュボード表示用ビューを組み立てるユースケースです。
type UseCase interface {
	CommissionSummary(ctx context.Context, in CommissionSummaryInput) (*CommissionView, error)
	Performance(ctx context.Context, in PerformanceInput) (*PerformanceView, error)
	JobProgress(ctx context.Context, in JobProgressInput) (*JobProgressView, error)
}

// Service はスナップショットから毎回ビューを再計算します。キャッシュは持ちません。
type Service struct {
	jobs       JobOrderSnapshotter
	activities ActivitySnapshotter
	clock      Clock
	tx         TransactionManager
}

// NewService は Service を生成します。
func NewService(jobs JobOrderSnapshotter, activities ActivitySnapshotter, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{jobs: jobs, activities: activities, clock: clock, tx: tx}
}

// CommissionSummaryInput は手数料ダッシュボードの入力です。
type CommissionSummaryInput struct {
	Filter FilterState
}

// CommissionView は手数料ダッシュボードのビューモデルです。
type CommissionView struct {
	Filter       FilterState
	GeneratedAt  time.Time
	Jobs         []joborder.JobOrder
	Summary      Summary
	Progress     float64
	Tier         commission.Tier
	TopPlacement *joborder.JobOrder
}

// PerformanceInput は KPI ダッシュボードの入力です。WeekOf が nil なら今週を対象にします。
type PerformanceInput struct {
	WeekOf      *time.Time
	RecruiterID string
}

// PerformanceView は週次 KPI のビューモデルです。
type PerformanceView struct {
	RecruiterID string
	Week        activity.WeeklySummary
	Score       kpi.Result
}

// JobProgressInput は案件別進捗の入力です。
type JobProgressInput struct {
	WeekOf *time.Time
}

// JobProgressRow は案件 1 件分の進捗です。
type JobProgressRow struct {
	JobTitle   string
	ClientName string
	Status     joborder.Status
	Progress   activity.JobProgress
}

// JobProgressView は週次の案件別進捗一覧です。
type JobProgressView struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Rows      []JobProgressRow
}

// CommissionSummary は絞り込み条件に従って手数料の集計ビューを組み立てます。
func (s *Service) CommissionSummary(ctx context.Context, in CommissionSummaryInput) (*CommissionView, error) {
	filter, err := validateFilter(in.Filter)
	if err != nil {
		return nil, err
	}

	var jobs []joborder.JobOrder
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		snapshot, err := s.jobs.Snapshot(txCtx)
		if err != nil {
			return err
		}
		jobs = snapshot
		return nil
	}); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	filtered := Filter(jobs, filter, now)
	summary := Aggregate(filtered, now)
	progress := commission.Progress(summary.TotalEarned, summary.TotalPotential)

	return &CommissionView{
		Filter:       filter,
		GeneratedAt:  now,
		Jobs:         filtered,
		Summary:      summary,
		Progress:     progress,
		Tier:         commission.TierFor(progress),
		TopPlacement: TopPlacement(filtered),
	}, nil
}

// Performance は指定週の活動を集計し KPI スコアを算出します。
func (s *Service) Performance(ctx context.Context, in PerformanceInput) (*PerformanceView, error) {
	entries, err := s.activitySnapshot(ctx)
	if err != nil {
		return nil, err
	}

	recruiterID := strings.TrimSpace(in.RecruiterID)
	week := activity.SummarizeWeek(entries, s.weekOf(in.WeekOf), recruiterID)

	return &PerformanceView{
		RecruiterID: recruiterID,
		Week:        week,
		Score:       kpi.Score(week.Totals.Actuals()),
	}, nil
}

// JobProgress は指定週の活動から全求人案件の進捗を算出します。
func (s *Service) JobProgress(ctx context.Context, in JobProgressInput) (*JobProgressView, error) {
	var (
		jobs    []joborder.JobOrder
		entries []activity.Entry
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		jobSnapshot, err := s.jobs.Snapshot(txCtx)
		if err != nil {
			return err
		}
		activitySnapshot, err := s.activities.Snapshot(txCtx)
		if err != nil {
			return err
		}
		jobs = jobSnapshot
		entries = activitySnapshot
		return nil
	}); err != nil {
		return nil, err
	}

	start, end := activity.WeekBounds(s.weekOf(in.WeekOf))
	inWeek := make([]activity.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		inWeek = append(inWeek, e)
	}

	view := &JobProgressView{WeekStart: start, WeekEnd: end, Rows: make([]JobProgressRow, 0, len(jobs))}
	for _, job := range jobs {
		view.Rows = append(view.Rows, JobProgressRow{
			JobTitle:   job.JobTitle,
			ClientName: job.ClientName,
			Status:     job.Status,
			Progress:   activity.ProgressForJob(inWeek, job.ID),
		})
	}

	return view, nil
}

func (s *Service) activitySnapshot(ctx context.Context) ([]activity.Entry, error) {
	var entries []activity.Entry
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		snapshot, err := s.activities.Snapshot(txCtx)
		if err != nil {
			return err
		}
		entries = snapshot
		return nil
	}); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) weekOf(in *time.Time) time.Time {
	if in == nil || in.IsZero() {
		return s.clock.Now()
	}
	return *in
}

func validateFilter(f FilterState) (FilterState, error) {
	f = f.Normalize()
	if f.Period != PeriodAll {
		period, err := ParsePeriod(string(f.Period))
		if err != nil {
			return FilterState{}, err
		}
		f.Period = period
	}
	if f.Status != All {
		status, err := joborder.ParseStatus(f.Status)
		if err != nil {
			return FilterState{}, ErrInvalidStatus
		}
		f.Status = string(status)
	}
	return f, nil
}

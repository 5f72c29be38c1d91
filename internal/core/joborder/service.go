package joborder

import (
	"context"
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

// CommissionCalculator は年収から見込み手数料を算出します。
type CommissionCalculator interface {
	Commission(salary float64) (float64, error)
}

// ClientRegistry は案件登録時に取引先を登録します。既存の取引先は無視されます。
type ClientRegistry interface {
	Ensure(ctx context.Context, name string) error
}

// AssignmentCleaner は削除された案件をリクルーターの担当一覧から外します。
type AssignmentCleaner interface {
	RemoveJob(ctx context.Context, jobID string) error
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
)

// Service は求人案件に関するユースケースをまとめます。
type Service struct {
	repo        Repository
	calc        CommissionCalculator
	clock       Clock
	tx          TransactionManager
	clients     ClientRegistry
	assignments AssignmentCleaner
}

// UseCase は求人案件ユースケースの公開インターフェースです。
type UseCase interface {
	CreateJobOrder(ctx context.Context, in CreateJobOrderInput) (*JobOrder, error)
	GetJobOrder(ctx context.Context, in GetJobOrderInput) (*JobOrder, error)
	ListJobOrders(ctx context.Context, in ListJobOrdersInput) (*ListJobOrdersResult, error)
	UpdateJobOrder(ctx context.Context, in UpdateJobOrderInput) (*JobOrder, error)
	DeleteJobOrder(ctx context.Context, in DeleteJobOrderInput) error
}

// Option は Service の任意依存を設定します。
type Option func(*Service)

// WithClientRegistry は取引先の自動登録先を設定します。
func WithClientRegistry(clients ClientRegistry) Option {
	return func(s *Service) { s.clients = clients }
}

// WithAssignmentCleaner は案件削除時の担当解除先を設定します。
func WithAssignmentCleaner(cleaner AssignmentCleaner) Option {
	return func(s *Service) { s.assignments = cleaner }
}

// NewService は Service を生成します。
func NewService(repo Repository, calc CommissionCalculator, clock Clock, tx TransactionManager, opts ...Option) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	s := &Service{repo: repo, calc: calc, clock: clock, tx: tx}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateJobOrderInput は案件作成時の入力です。
type CreateJobOrderInput struct {
	ClientName    string
	NewClientName string
	JobTitle      string
	Location      string
	Salary        float64
	Status        *Status
	Priority      *Priority
	ReceivedDate  *time.Time
	DueDate       *time.Time
}

// UpdateJobOrderInput は案件更新時の入力です。nil のフィールドは変更されません。
type UpdateJobOrderInput struct {
	ID            string
	ClientName    *string
	NewClientName *string
	JobTitle      *string
	Location      *string
	Salary        *float64
	Status        *Status
	Priority      *Priority
	ReceivedDate  *time.Time
	DueDate       *time.Time
}

// DeleteJobOrderInput は案件削除時の入力です。
type DeleteJobOrderInput struct {
	ID string
}

// GetJobOrderInput は案件取得時の入力です。
type GetJobOrderInput struct {
	ID string
}

// ListJobOrdersInput は一覧取得時の入力です。
type ListJobOrdersInput struct {
	PageSize   int
	PageToken  string
	Status     *Status
	ClientName string
}

// ListJobOrdersResult は一覧取得結果を表します。
type ListJobOrdersResult struct {
	JobOrders     []*JobOrder
	NextPageToken string
}

// CreateJobOrder は新しい求人案件を登録します。
func (s *Service) CreateJobOrder(ctx context.Context, in CreateJobOrderInput) (*JobOrder, error) {
	clientName := strings.TrimSpace(in.NewClientName)
	if clientName == "" {
		clientName = strings.TrimSpace(in.ClientName)
	}
	if clientName == "" {
		return nil, ErrInvalidClientName
	}

	title := strings.TrimSpace(in.JobTitle)
	if title == "" {
		return nil, ErrInvalidJobTitle
	}

	potential, err := s.calc.Commission(in.Salary)
	if err != nil {
		return nil, fmt.Errorf("salary: %w", err)
	}

	status := StatusOpen
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	priority := PriorityMedium
	if in.Priority != nil {
		if !isValidPriority(*in.Priority) {
			return nil, ErrInvalidPriority
		}
		priority = *in.Priority
	}

	received := normalizeDate(in.ReceivedDate)
	due := normalizeDate(in.DueDate)
	if err := validateDateRange(received, due); err != nil {
		return nil, err
	}

	var created *JobOrder
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureClient(txCtx, clientName); err != nil {
			return err
		}

		now := s.clock.Now()
		job := &JobOrder{
			ClientName:          clientName,
			JobTitle:            title,
			Location:            strings.TrimSpace(in.Location),
			Salary:              in.Salary,
			Status:              status,
			Priority:            priority,
			ReceivedDate:        received,
			DueDate:             due,
			PotentialCommission: potential,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if status == StatusPlaced {
			stampPlacement(job, now)
		}

		result, err := s.repo.Create(txCtx, job)
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

// UpdateJobOrder は求人案件を更新します。見込み手数料は現在の手数料率で再計算されます。
func (s *Service) UpdateJobOrder(ctx context.Context, in UpdateJobOrderInput) (*JobOrder, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *JobOrder
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if name := firstNonEmpty(in.NewClientName, in.ClientName); name != nil {
			trimmed := strings.TrimSpace(*name)
			if trimmed == "" {
				return ErrInvalidClientName
			}
			if err := s.ensureClient(txCtx, trimmed); err != nil {
				return err
			}
			existing.ClientName = trimmed
		}

		if in.JobTitle != nil {
			title := strings.TrimSpace(*in.JobTitle)
			if title == "" {
				return ErrInvalidJobTitle
			}
			existing.JobTitle = title
		}

		if in.Location != nil {
			existing.Location = strings.TrimSpace(*in.Location)
		}

		if in.Salary != nil {
			existing.Salary = *in.Salary
		}

		potential, err := s.calc.Commission(existing.Salary)
		if err != nil {
			return fmt.Errorf("salary: %w", err)
		}
		existing.PotentialCommission = potential

		if in.Priority != nil {
			if !isValidPriority(*in.Priority) {
				return ErrInvalidPriority
			}
			existing.Priority = *in.Priority
		}

		if in.ReceivedDate != nil {
			existing.ReceivedDate = normalizeDate(in.ReceivedDate)
		}
		if in.DueDate != nil {
			existing.DueDate = normalizeDate(in.DueDate)
		}
		if err := validateDateRange(existing.ReceivedDate, existing.DueDate); err != nil {
			return err
		}

		now := s.clock.Now()
		if in.Status != nil {
			if !isValidStatus(*in.Status) {
				return ErrInvalidStatus
			}
			if existing.Status != StatusPlaced && *in.Status == StatusPlaced {
				stampPlacement(existing, now)
			}
			existing.Status = *in.Status
		}

		if existing.IsPlaced() {
			existing.EarnedCommission = existing.PotentialCommission
		} else {
			existing.EarnedCommission = 0
		}
		existing.UpdatedAt = now

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

// DeleteJobOrder は求人案件を削除し、リクルーターの担当一覧からも外します。
func (s *Service) DeleteJobOrder(ctx context.Context, in DeleteJobOrderInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, in.ID); err != nil {
			return err
		}
		if s.assignments == nil {
			return nil
		}
		return s.assignments.RemoveJob(txCtx, in.ID)
	})
}

// GetJobOrder は求人案件を取得します。
func (s *Service) GetJobOrder(ctx context.Context, in GetJobOrderInput) (*JobOrder, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *JobOrder
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

// ListJobOrders は求人案件の一覧を取得します。
func (s *Service) ListJobOrders(ctx context.Context, in ListJobOrdersInput) (*ListJobOrdersResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	var statusPtr *Status
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status := *in.Status
		statusPtr = &status
	}

	var (
		jobs      []*JobOrder
		nextToken string
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, token, err := s.repo.List(txCtx, ListJobOrdersFilter{
			Status:     statusPtr,
			ClientName: strings.TrimSpace(in.ClientName),
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			return err
		}
		jobs = result
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListJobOrdersResult{JobOrders: jobs, NextPageToken: nextToken}, nil
}

func (s *Service) ensureClient(ctx context.Context, name string) error {
	if s.clients == nil {
		return nil
	}
	return s.clients.Ensure(ctx, name)
}

// stampPlacement は成約日を一度だけ記録します。既に記録済みの場合は変更しません。
func stampPlacement(job *JobOrder, now time.Time) {
	if job.PlacementDate == nil {
		placed := now
		job.PlacementDate = &placed
	}
	job.EarnedCommission = job.PotentialCommission
}

func firstNonEmpty(values ...*string) *string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return v
		}
	}
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	normalized := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &normalized
}

func validateDateRange(received, due *time.Time) error {
	if received == nil || due == nil {
		return nil
	}
	if due.Before(*received) {
		return ErrInvalidDateRange
	}
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
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

package recruiter

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
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

// Service はリクルーターに関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// UseCase はリクルーターユースケースの公開インターフェースです。
type UseCase interface {
	CreateRecruiter(ctx context.Context, in CreateRecruiterInput) (*Recruiter, error)
	GetRecruiter(ctx context.Context, in GetRecruiterInput) (*Recruiter, error)
	ListRecruiters(ctx context.Context, in ListRecruitersInput) (*ListRecruitersResult, error)
	UpdateRecruiter(ctx context.Context, in UpdateRecruiterInput) (*Recruiter, error)
	DeleteRecruiter(ctx context.Context, in DeleteRecruiterInput) error
	AssignJob(ctx context.Context, in AssignJobInput) ([]*Recruiter, error)
	UnassignJob(ctx context.Context, in AssignJobInput) ([]*Recruiter, error)
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

// CreateRecruiterInput はリクルーター作成時の入力です。
type CreateRecruiterInput struct {
	Name  string
	Email string
	Phone string
	Role  *Role
}

// UpdateRecruiterInput はリクルーター更新時の入力です。担当案件は AssignJob/UnassignJob で変更します。
type UpdateRecruiterInput struct {
	ID    string
	Name  *string
	Email *string
	Phone *string
	Role  *Role
}

// DeleteRecruiterInput はリクルーター削除時の入力です。
type DeleteRecruiterInput struct {
	ID string
}

// GetRecruiterInput はリクルーター取得時の入力です。
type GetRecruiterInput struct {
	ID string
}

// ListRecruitersInput は一覧取得時の入力です。
type ListRecruitersInput struct {
	Role      *Role
	JobID     string
	PageSize  int
	PageToken string
}

// ListRecruitersResult は一覧取得結果を表します。
type ListRecruitersResult struct {
	Recruiters    []*Recruiter
	NextPageToken string
}

// AssignJobInput は案件の割り当て・解除の入力です。
type AssignJobInput struct {
	JobID        string
	RecruiterIDs []string
}

// CreateRecruiter は新しいリクルーターを作成します。
func (s *Service) CreateRecruiter(ctx context.Context, in CreateRecruiterInput) (*Recruiter, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	role := RoleRecruiter
	if in.Role != nil {
		if !isValidRole(*in.Role) {
			return nil, ErrInvalidRole
		}
		role = *in.Role
	}

	var created *Recruiter
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmailNotExists(txCtx, email, ""); err != nil {
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Recruiter{
			Name:         name,
			Email:        email,
			Phone:        strings.TrimSpace(in.Phone),
			Role:         role,
			ActiveJobIDs: []string{},
			CreatedAt:    now,
			UpdatedAt:    now,
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

// UpdateRecruiter はリクルーター情報を更新します。
func (s *Service) UpdateRecruiter(ctx context.Context, in UpdateRecruiterInput) (*Recruiter, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Recruiter
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return ErrInvalidName
			}
			existing.Name = name
		}

		if in.Email != nil {
			email, err := normalizeEmail(*in.Email)
			if err != nil {
				return err
			}
			if email != existing.Email {
				if err := s.ensureEmailNotExists(txCtx, email, existing.ID); err != nil {
					return err
				}
				existing.Email = email
			}
		}

		if in.Phone != nil {
			existing.Phone = strings.TrimSpace(*in.Phone)
		}

		if in.Role != nil {
			if !isValidRole(*in.Role) {
				return ErrInvalidRole
			}
			existing.Role = *in.Role
		}

		existing.UpdatedAt = s.clock.Now()

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

// DeleteRecruiter はリクルーターを削除します。
func (s *Service) DeleteRecruiter(ctx context.Context, in DeleteRecruiterInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// GetRecruiter はリクルーターを取得します。
func (s *Service) GetRecruiter(ctx context.Context, in GetRecruiterInput) (*Recruiter, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Recruiter
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

// ListRecruiters はリクルーターの一覧を取得します。
func (s *Service) ListRecruiters(ctx context.Context, in ListRecruitersInput) (*ListRecruitersResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	var rolePtr *Role
	if in.Role != nil {
		if !isValidRole(*in.Role) {
			return nil, ErrInvalidRole
		}
		role := *in.Role
		rolePtr = &role
	}

	var (
		recruiters []*Recruiter
		nextToken  string
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, token, err := s.repo.List(txCtx, ListRecruitersFilter{
			Role:   rolePtr,
			JobID:  strings.TrimSpace(in.JobID),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return err
		}
		recruiters = result
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListRecruitersResult{Recruiters: recruiters, NextPageToken: nextToken}, nil
}

// AssignJob は案件を複数のリクルーターに割り当てます。既に担当中のリクルーターはそのままです。
func (s *Service) AssignJob(ctx context.Context, in AssignJobInput) ([]*Recruiter, error) {
	return s.applyJob(ctx, in, (*Recruiter).AddJob)
}

// UnassignJob は指定リクルーターの担当案件から案件を外します。
func (s *Service) UnassignJob(ctx context.Context, in AssignJobInput) ([]*Recruiter, error) {
	return s.applyJob(ctx, in, (*Recruiter).RemoveJob)
}

// RemoveJob は削除された案件を全リクルーターの担当案件から外します。
func (s *Service) RemoveJob(ctx context.Context, jobID string) error {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return ErrInvalidJobID
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.RemoveJobFromAll(txCtx, jobID)
	})
}

func (s *Service) applyJob(ctx context.Context, in AssignJobInput, apply func(*Recruiter, string) bool) ([]*Recruiter, error) {
	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" {
		return nil, ErrInvalidJobID
	}
	ids := dedupe(in.RecruiterIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("recruiter_ids: %w", ErrInvalidID)
	}

	var results []*Recruiter
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		results = make([]*Recruiter, 0, len(ids))
		for _, id := range ids {
			existing, err := s.repo.FindByID(txCtx, id)
			if err != nil {
				return fmt.Errorf("recruiter %s: %w", id, err)
			}
			if !apply(existing, jobID) {
				results = append(results, existing)
				continue
			}
			existing.UpdatedAt = s.clock.Now()
			updated, err := s.repo.Update(txCtx, existing)
			if err != nil {
				return err
			}
			results = append(results, updated)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *Service) ensureEmailNotExists(ctx context.Context, email, selfID string) error {
	found, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrRecruiterNotFound) {
		return err
	}
	if found != nil && found.ID != selfID {
		return ErrEmailAlreadyExists
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(addr.Address), nil
}

func isValidRole(role Role) bool {
	switch role {
	case RoleRecruiter, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
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

package leave

import (
	"context"
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

// UseCase は休暇申請ユースケースの公開インターフェースです。
type UseCase interface {
	RequestAbsence(ctx context.Context, in RequestAbsenceInput) (*Request, error)
	SkipApproval(ctx context.Context, in RequestAbsenceInput) (*Request, error)
	ListRequests(ctx context.Context, employeeID string) ([]*Request, error)
	LeaveOn(ctx context.Context, employeeID string, date time.Time) (Type, bool, error)
}

// Service は休暇申請を受け付けます。承認フローは持たず、状態は登録時に決まります。
type Service struct {
	repo  Repository
	ids   IDGenerator
	clock Clock
}

// NewService は Service を生成します。
func NewService(repo Repository, ids IDGenerator, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{repo: repo, ids: ids, clock: clock}
}

// RequestAbsenceInput は休暇申請の入力です。
type RequestAbsenceInput struct {
	EmployeeID string
	Type       string
	StartDate  time.Time
	EndDate    time.Time
	Comment    string
}

// RequestAbsence は承認待ちの休暇申請を登録します。
func (s *Service) RequestAbsence(ctx context.Context, in RequestAbsenceInput) (*Request, error) {
	return s.submit(ctx, in, StatusPending)
}

// SkipApproval は承認済みとして休暇申請を登録します。
func (s *Service) SkipApproval(ctx context.Context, in RequestAbsenceInput) (*Request, error) {
	return s.submit(ctx, in, StatusApproved)
}

// ListRequests は社員の休暇申請を登録順に返します。申請がなければ空のスライスです。
func (s *Service) ListRequests(ctx context.Context, employeeID string) ([]*Request, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, ErrInvalidEmployeeID
	}

	requests, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []*Request{}
	}
	return requests, nil
}

// LeaveOn は社員が date に取得している休暇種別を返します。
func (s *Service) LeaveOn(ctx context.Context, employeeID string, date time.Time) (Type, bool, error) {
	requests, err := s.ListRequests(ctx, employeeID)
	if err != nil {
		return "", false, err
	}

	values := make([]Request, 0, len(requests))
	for _, r := range requests {
		values = append(values, *r)
	}
	t, ok := TypeOn(date, values)
	return t, ok, nil
}

func (s *Service) submit(ctx context.Context, in RequestAbsenceInput, status Status) (*Request, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, ErrInvalidEmployeeID
	}

	leaveType, err := ParseType(in.Type)
	if err != nil {
		return nil, err
	}

	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, ErrInvalidDate
	}
	if truncateDay(in.EndDate).Before(truncateDay(in.StartDate)) {
		return nil, ErrInvalidDateRange
	}

	return s.repo.Create(ctx, &Request{
		ID:         s.ids.Generate(),
		EmployeeID: employeeID,
		Type:       leaveType,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Comment:    strings.TrimSpace(in.Comment),
		Status:     status,
		CreatedAt:  s.clock.Now(),
	})
}

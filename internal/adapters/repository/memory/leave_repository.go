package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/ogurasousui/recruit-dashboard/internal/core/leave"
)

// LeaveRepository は社員 ID ごとに休暇申請を保持します。再起動で消えます。
type LeaveRepository struct {
	notifier
	mu         sync.RWMutex
	byEmployee map[string][]leave.Request
}

// NewLeaveRepository は LeaveRepository を生成します。
func NewLeaveRepository() *LeaveRepository {
	return &LeaveRepository{byEmployee: make(map[string][]leave.Request)}
}

// Create は休暇申請を追加します。ID は呼び出し側で採番済みである必要があります。
func (r *LeaveRepository) Create(_ context.Context, req *leave.Request) (*leave.Request, error) {
	stored := *req

	r.mu.Lock()
	r.byEmployee[stored.EmployeeID] = append(r.byEmployee[stored.EmployeeID], stored)
	r.mu.Unlock()

	r.publish(Event{Entity: "leave_request", Op: OpCreated, ID: strconv.FormatInt(stored.ID, 10)})
	return &stored, nil
}

// ListByEmployee は社員の休暇申請を登録順に返します。
func (r *LeaveRepository) ListByEmployee(_ context.Context, employeeID string) ([]*leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := r.byEmployee[employeeID]
	out := make([]*leave.Request, 0, len(requests))
	for i := range requests {
		req := requests[i]
		out = append(out, &req)
	}
	return out, nil
}

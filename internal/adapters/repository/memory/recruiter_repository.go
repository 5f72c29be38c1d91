package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/ogurasousui/recruit-dashboard/internal/core/recruiter"
)

// RecruiterRepository はプロセス内メモリにリクルーターを保持します。
type RecruiterRepository struct {
	notifier
	mu    sync.RWMutex
	items map[string]*recruiter.Recruiter
	order []string
}

// NewRecruiterRepository は RecruiterRepository を生成します。
func NewRecruiterRepository() *RecruiterRepository {
	return &RecruiterRepository{items: make(map[string]*recruiter.Recruiter)}
}

// Create はリクルーターを保存します。
func (r *RecruiterRepository) Create(_ context.Context, rec *recruiter.Recruiter) (*recruiter.Recruiter, error) {
	stored := rec.Clone()
	stored.ID = uuid.NewString()

	r.mu.Lock()
	if r.findByEmailLocked(stored.Email) != nil {
		r.mu.Unlock()
		return nil, recruiter.ErrEmailAlreadyExists
	}
	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	r.mu.Unlock()

	r.publish(Event{Entity: "recruiter", Op: OpCreated, ID: stored.ID})
	return stored.Clone(), nil
}

// Update はリクルーターを更新します。
func (r *RecruiterRepository) Update(_ context.Context, rec *recruiter.Recruiter) (*recruiter.Recruiter, error) {
	r.mu.Lock()
	if _, ok := r.items[rec.ID]; !ok {
		r.mu.Unlock()
		return nil, recruiter.ErrRecruiterNotFound
	}
	if other := r.findByEmailLocked(rec.Email); other != nil && other.ID != rec.ID {
		r.mu.Unlock()
		return nil, recruiter.ErrEmailAlreadyExists
	}
	stored := rec.Clone()
	r.items[rec.ID] = stored
	r.mu.Unlock()

	r.publish(Event{Entity: "recruiter", Op: OpUpdated, ID: rec.ID})
	return stored.Clone(), nil
}

// Delete はリクルーターを削除します。
func (r *RecruiterRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.items[id]; !ok {
		r.mu.Unlock()
		return recruiter.ErrRecruiterNotFound
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	r.mu.Unlock()

	r.publish(Event{Entity: "recruiter", Op: OpDeleted, ID: id})
	return nil
}

// FindByID は ID でリクルーターを取得します。
func (r *RecruiterRepository) FindByID(_ context.Context, id string) (*recruiter.Recruiter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[id]
	if !ok {
		return nil, recruiter.ErrRecruiterNotFound
	}
	return rec.Clone(), nil
}

// FindByEmail はメールアドレスでリクルーターを取得します。
func (r *RecruiterRepository) FindByEmail(_ context.Context, email string) (*recruiter.Recruiter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec := r.findByEmailLocked(email)
	if rec == nil {
		return nil, recruiter.ErrRecruiterNotFound
	}
	return rec.Clone(), nil
}

// List は登録順にリクルーターを返します。
func (r *RecruiterRepository) List(_ context.Context, filter recruiter.ListRecruitersFilter) ([]*recruiter.Recruiter, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*recruiter.Recruiter, 0, len(r.order))
	for _, id := range r.order {
		rec := r.items[id]
		if filter.Role != nil && rec.Role != *filter.Role {
			continue
		}
		if filter.JobID != "" && !rec.HasJob(filter.JobID) {
			continue
		}
		matched = append(matched, rec.Clone())
	}

	page, next := paginate(matched, filter.Offset, filter.Limit)
	return page, next, nil
}

// RemoveJobFromAll は全リクルーターの担当案件から jobID を外します。
func (r *RecruiterRepository) RemoveJobFromAll(_ context.Context, jobID string) error {
	var touched []string

	r.mu.Lock()
	for _, id := range r.order {
		if r.items[id].RemoveJob(jobID) {
			touched = append(touched, id)
		}
	}
	r.mu.Unlock()

	for _, id := range touched {
		r.publish(Event{Entity: "recruiter", Op: OpUpdated, ID: id})
	}
	return nil
}

func (r *RecruiterRepository) findByEmailLocked(email string) *recruiter.Recruiter {
	for _, id := range r.order {
		if rec := r.items[id]; rec.Email == email {
			return rec
		}
	}
	return nil
}

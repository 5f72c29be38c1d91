package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ogurasousui/recruit-dashboard/internal/core/joborder"
)

// JobOrderRepository はプロセス内メモリに求人案件を保持します。
type JobOrderRepository struct {
	notifier
	mu    sync.RWMutex
	jobs  map[string]*joborder.JobOrder
	order []string
}

// NewJobOrderRepository は JobOrderRepository を生成します。
func NewJobOrderRepository() *JobOrderRepository {
	return &JobOrderRepository{jobs: make(map[string]*joborder.JobOrder)}
}

// Create は求人案件を保存します。
func (r *JobOrderRepository) Create(_ context.Context, job *joborder.JobOrder) (*joborder.JobOrder, error) {
	stored := job.Clone()
	stored.ID = uuid.NewString()

	r.mu.Lock()
	r.jobs[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	r.mu.Unlock()

	r.publish(Event{Entity: "job_order", Op: OpCreated, ID: stored.ID})
	return stored.Clone(), nil
}

// Update は求人案件を更新します。
func (r *JobOrderRepository) Update(_ context.Context, job *joborder.JobOrder) (*joborder.JobOrder, error) {
	r.mu.Lock()
	if _, ok := r.jobs[job.ID]; !ok {
		r.mu.Unlock()
		return nil, joborder.ErrJobOrderNotFound
	}
	stored := job.Clone()
	r.jobs[job.ID] = stored
	r.mu.Unlock()

	r.publish(Event{Entity: "job_order", Op: OpUpdated, ID: job.ID})
	return stored.Clone(), nil
}

// Delete は求人案件を削除します。
func (r *JobOrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.jobs[id]; !ok {
		r.mu.Unlock()
		return joborder.ErrJobOrderNotFound
	}
	delete(r.jobs, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	r.mu.Unlock()

	r.publish(Event{Entity: "job_order", Op: OpDeleted, ID: id})
	return nil
}

// FindByID は ID で求人案件を取得します。
func (r *JobOrderRepository) FindByID(_ context.Context, id string) (*joborder.JobOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, joborder.ErrJobOrderNotFound
	}
	return job.Clone(), nil
}

// List は登録順に求人案件を返します。
func (r *JobOrderRepository) List(_ context.Context, filter joborder.ListJobOrdersFilter) ([]*joborder.JobOrder, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*joborder.JobOrder, 0, len(r.order))
	for _, id := range r.order {
		job := r.jobs[id]
		if filter.Status != nil && !strings.EqualFold(string(job.Status), string(*filter.Status)) {
			continue
		}
		if filter.ClientName != "" && job.ClientName != filter.ClientName {
			continue
		}
		matched = append(matched, job.Clone())
	}

	page, next := paginate(matched, filter.Offset, filter.Limit)
	return page, next, nil
}

// Snapshot は全求人案件のコピーを登録順に返します。
func (r *JobOrderRepository) Snapshot(_ context.Context) ([]joborder.JobOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]joborder.JobOrder, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.jobs[id].Clone())
	}
	return out, nil
}

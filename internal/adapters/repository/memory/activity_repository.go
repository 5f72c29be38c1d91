package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/ogurasousui/recruit-dashboard/internal/core/activity"
)

// ActivityRepository はプロセス内メモリに週次活動記録を保持します。
type ActivityRepository struct {
	notifier
	mu      sync.RWMutex
	entries map[string]*activity.Entry
	order   []string
}

// NewActivityRepository は ActivityRepository を生成します。
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{entries: make(map[string]*activity.Entry)}
}

// Create は活動記録を保存します。同一案件・同一週の記録が既にあれば拒否します。
func (r *ActivityRepository) Create(_ context.Context, e *activity.Entry) (*activity.Entry, error) {
	stored := e.Clone()
	stored.ID = uuid.NewString()

	r.mu.Lock()
	if r.findByJobAndWeekLocked(stored.JobID, stored.WeekKey) != nil {
		r.mu.Unlock()
		return nil, activity.ErrDuplicateWeeklyEntry
	}
	r.entries[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	r.mu.Unlock()

	r.publish(Event{Entity: "activity", Op: OpCreated, ID: stored.ID})
	return stored.Clone(), nil
}

// Update は活動記録を更新します。
func (r *ActivityRepository) Update(_ context.Context, e *activity.Entry) (*activity.Entry, error) {
	r.mu.Lock()
	if _, ok := r.entries[e.ID]; !ok {
		r.mu.Unlock()
		return nil, activity.ErrActivityNotFound
	}
	if other := r.findByJobAndWeekLocked(e.JobID, e.WeekKey); other != nil && other.ID != e.ID {
		r.mu.Unlock()
		return nil, activity.ErrDuplicateWeeklyEntry
	}
	stored := e.Clone()
	r.entries[e.ID] = stored
	r.mu.Unlock()

	r.publish(Event{Entity: "activity", Op: OpUpdated, ID: e.ID})
	return stored.Clone(), nil
}

// Delete は活動記録を削除します。
func (r *ActivityRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.entries[id]; !ok {
		r.mu.Unlock()
		return activity.ErrActivityNotFound
	}
	delete(r.entries, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	r.mu.Unlock()

	r.publish(Event{Entity: "activity", Op: OpDeleted, ID: id})
	return nil
}

// FindByID は ID で活動記録を取得します。
func (r *ActivityRepository) FindByID(_ context.Context, id string) (*activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, activity.ErrActivityNotFound
	}
	return e.Clone(), nil
}

// FindByJobAndWeek は案件と週キーで活動記録を取得します。
func (r *ActivityRepository) FindByJobAndWeek(_ context.Context, jobID, weekKey string) (*activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e := r.findByJobAndWeekLocked(jobID, weekKey)
	if e == nil {
		return nil, activity.ErrActivityNotFound
	}
	return e.Clone(), nil
}

// List は記録日時の昇順 (同時刻は登録順) で活動記録を返します。
func (r *ActivityRepository) List(_ context.Context, filter activity.ListActivitiesFilter) ([]*activity.Entry, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*activity.Entry, 0, len(r.order))
	for _, id := range r.order {
		e := r.entries[id]
		if filter.JobID != "" && e.JobID != filter.JobID {
			continue
		}
		if filter.RecruiterID != "" && e.RecruiterID != filter.RecruiterID {
			continue
		}
		if filter.From != nil && e.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Timestamp.After(*filter.To) {
			continue
		}
		matched = append(matched, e.Clone())
	}
	slices.SortStableFunc(matched, func(a, b *activity.Entry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	page, next := paginate(matched, filter.Offset, filter.Limit)
	return page, next, nil
}

// Snapshot は全活動記録のコピーを登録順に返します。
func (r *ActivityRepository) Snapshot(_ context.Context) ([]activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]activity.Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.entries[id].Clone())
	}
	return out, nil
}

func (r *ActivityRepository) findByJobAndWeekLocked(jobID, weekKey string) *activity.Entry {
	for _, id := range r.order {
		if e := r.entries[id]; e.JobID == jobID && e.WeekKey == weekKey {
			return e
		}
	}
	return nil
}

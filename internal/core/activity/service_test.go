package activity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeActivityRepo struct {
	entries  map[string]*Entry
	order    []string
	sequence int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{entries: make(map[string]*Entry)}
}

func (r *fakeActivityRepo) Create(_ context.Context, e *Entry) (*Entry, error) {
	clone := e.Clone()
	r.sequence++
	clone.ID = fmt.Sprintf("act-%d", r.sequence)
	r.entries[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return clone.Clone(), nil
}

func (r *fakeActivityRepo) Update(_ context.Context, e *Entry) (*Entry, error) {
	if _, ok := r.entries[e.ID]; !ok {
		return nil, ErrActivityNotFound
	}
	r.entries[e.ID] = e.Clone()
	return e.Clone(), nil
}

func (r *fakeActivityRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.entries[id]; !ok {
		return ErrActivityNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeActivityRepo) FindByID(_ context.Context, id string) (*Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrActivityNotFound
	}
	return e.Clone(), nil
}

func (r *fakeActivityRepo) FindByJobAndWeek(_ context.Context, jobID, weekKey string) (*Entry, error) {
	for _, id := range r.order {
		e, ok := r.entries[id]
		if ok && e.JobID == jobID && e.WeekKey == weekKey {
			return e.Clone(), nil
		}
	}
	return nil, ErrActivityNotFound
}

func (r *fakeActivityRepo) List(_ context.Context, filter ListActivitiesFilter) ([]*Entry, string, error) {
	var filtered []*Entry
	for _, id := range r.order {
		e, ok := r.entries[id]
		if !ok {
			continue
		}
		if filter.JobID != "" && e.JobID != filter.JobID {
			continue
		}
		if filter.From != nil && e.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Timestamp.After(*filter.To) {
			continue
		}
		filtered = append(filtered, e.Clone())
	}
	if filter.Offset > len(filtered) {
		return []*Entry{}, "", nil
	}
	end := filter.Offset + filter.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	next := ""
	if end < len(filtered) {
		next = strconv.Itoa(end)
	}
	return filtered[filter.Offset:end], next, nil
}

func (r *fakeActivityRepo) Snapshot(_ context.Context) ([]Entry, error) {
	out := make([]Entry, 0, len(r.entries))
	for _, id := range r.order {
		if e, ok := r.entries[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func TestService_RecordActivity_Success(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)
	svc := NewService(newFakeActivityRepo(), &stubClock{now: now}, nil)

	created, err := svc.RecordActivity(context.Background(), RecordActivityInput{
		JobID:       " job-1 ",
		RecruiterID: "rec-1",
		Counters:    Counters{CVsSourced: 15, ScreeningsConducted: 8, TimeToFill: 14},
		Notes:       "  strong pipeline ",
	})
	if err != nil {
		t.Fatalf("RecordActivity returned error: %v", err)
	}

	if created.JobID != "job-1" {
		t.Fatalf("expected trimmed job id, got %q", created.JobID)
	}
	if !created.Timestamp.Equal(now) {
		t.Fatalf("expected timestamp from clock, got %v", created.Timestamp)
	}
	if created.WeekKey != "2024-W03" {
		t.Fatalf("expected ISO week 2024-W03, got %s", created.WeekKey)
	}
	if created.Notes != "strong pipeline" {
		t.Fatalf("expected trimmed notes, got %q", created.Notes)
	}
}

func TestService_RecordActivity_DuplicateWeek(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	svc := NewService(newFakeActivityRepo(), clk, nil)

	if _, err := svc.RecordActivity(context.Background(), RecordActivityInput{JobID: "job-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clk.now = time.Date(2024, 1, 21, 23, 0, 0, 0, time.UTC)
	if _, err := svc.RecordActivity(context.Background(), RecordActivityInput{JobID: "job-1"}); !errors.Is(err, ErrDuplicateWeeklyEntry) {
		t.Fatalf("expected ErrDuplicateWeeklyEntry in the same week, got %v", err)
	}

	if _, err := svc.RecordActivity(context.Background(), RecordActivityInput{JobID: "job-2"}); err != nil {
		t.Fatalf("another job in the same week must be accepted: %v", err)
	}

	clk.now = time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)
	if _, err := svc.RecordActivity(context.Background(), RecordActivityInput{JobID: "job-1"}); err != nil {
		t.Fatalf("next week must be accepted: %v", err)
	}
}

func TestService_RecordActivity_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeActivityRepo(), &stubClock{now: time.Now().UTC()}, nil)

	if _, err := svc.RecordActivity(context.Background(), RecordActivityInput{JobID: ""}); !errors.Is(err, ErrInvalidJobID) {
		t.Fatalf("expected ErrInvalidJobID, got %v", err)
	}
	_, err := svc.RecordActivity(context.Background(), RecordActivityInput{JobID: "job-1", Counters: Counters{ClientInterviews: -1}})
	if !errors.Is(err, ErrInvalidCounter) {
		t.Fatalf("expected ErrInvalidCounter, got %v", err)
	}
}

func TestService_UpdateActivity_KeepsTimestamp(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	svc := NewService(newFakeActivityRepo(), clk, nil)

	created, err := svc.RecordActivity(context.Background(), RecordActivityInput{JobID: "job-1"})
	if err != nil {
		t.Fatalf("RecordActivity returned error: %v", err)
	}

	clk.now = clk.now.Add(72 * time.Hour)
	counters := Counters{PlacementsMade: 1}
	updated, err := svc.UpdateActivity(context.Background(), UpdateActivityInput{ID: created.ID, Counters: &counters})
	if err != nil {
		t.Fatalf("UpdateActivity returned error: %v", err)
	}
	if !updated.Timestamp.Equal(created.Timestamp) {
		t.Fatalf("timestamp must be immutable, got %v", updated.Timestamp)
	}
	if updated.Counters.PlacementsMade != 1 {
		t.Fatalf("expected counters to update, got %+v", updated.Counters)
	}
}

func TestService_UpdateActivity_MoveToTakenJob(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeActivityRepo(), &stubClock{now: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}, nil)

	if _, err := svc.RecordActivity(context.Background(), RecordActivityInput{JobID: "job-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.RecordActivity(context.Background(), RecordActivityInput{JobID: "job-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	taken := "job-1"
	if _, err := svc.UpdateActivity(context.Background(), UpdateActivityInput{ID: second.ID, JobID: &taken}); !errors.Is(err, ErrDuplicateWeeklyEntry) {
		t.Fatalf("expected ErrDuplicateWeeklyEntry, got %v", err)
	}
}

func TestService_ListActivities_WeekFilter(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewService(newFakeActivityRepo(), clk, nil)

	if _, err := svc.RecordActivity(context.Background(), RecordActivityInput{JobID: "job-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clk.now = time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)
	if _, err := svc.RecordActivity(context.Background(), RecordActivityInput{JobID: "job-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	weekOf := time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC)
	result, err := svc.ListActivities(context.Background(), ListActivitiesInput{WeekOf: &weekOf})
	if err != nil {
		t.Fatalf("ListActivities returned error: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected one entry in the selected week, got %d", len(result.Entries))
	}
}

func TestService_DeleteActivity_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeActivityRepo(), nil, nil)
	if err := svc.DeleteActivity(context.Background(), DeleteActivityInput{ID: "missing"}); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("expected ErrActivityNotFound, got %v", err)
	}
}

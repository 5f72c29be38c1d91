package joborder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/ogurasousui/recruit-dashboard/internal/core/commission"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeJobRepo struct {
	jobs     map[string]*JobOrder
	order    []string
	sequence int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*JobOrder)}
}

func (r *fakeJobRepo) Create(_ context.Context, j *JobOrder) (*JobOrder, error) {
	clone := j.Clone()
	r.sequence++
	clone.ID = fmt.Sprintf("job-%d", r.sequence)
	r.jobs[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return clone.Clone(), nil
}

func (r *fakeJobRepo) Update(_ context.Context, j *JobOrder) (*JobOrder, error) {
	if _, ok := r.jobs[j.ID]; !ok {
		return nil, ErrJobOrderNotFound
	}
	r.jobs[j.ID] = j.Clone()
	return j.Clone(), nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return ErrJobOrderNotFound
	}
	delete(r.jobs, id)
	for idx, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:idx], r.order[idx+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id string) (*JobOrder, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobOrderNotFound
	}
	return j.Clone(), nil
}

func (r *fakeJobRepo) List(_ context.Context, filter ListJobOrdersFilter) ([]*JobOrder, string, error) {
	var filtered []*JobOrder
	for _, id := range r.order {
		j := r.jobs[id]
		if filter.Status != nil && j.Status != *filter.Status {
			continue
		}
		if filter.ClientName != "" && j.ClientName != filter.ClientName {
			continue
		}
		filtered = append(filtered, j.Clone())
	}

	if filter.Offset > len(filtered) {
		return []*JobOrder{}, "", nil
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

func (r *fakeJobRepo) Snapshot(_ context.Context) ([]JobOrder, error) {
	out := make([]JobOrder, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.jobs[id].Clone())
	}
	return out, nil
}

type recordingClients struct {
	names []string
}

func (r *recordingClients) Ensure(_ context.Context, name string) error {
	r.names = append(r.names, name)
	return nil
}

type recordingCleaner struct {
	removed []string
}

func (r *recordingCleaner) RemoveJob(_ context.Context, jobID string) error {
	r.removed = append(r.removed, jobID)
	return nil
}

func newTestService(t *testing.T, clk Clock, opts ...Option) (*Service, *fakeJobRepo) {
	t.Helper()

	calc, err := commission.NewCalculator(commission.DefaultRatePercent)
	if err != nil {
		t.Fatalf("NewCalculator returned error: %v", err)
	}
	repo := newFakeJobRepo()
	return NewService(repo, calc, clk, nil, opts...), repo
}

func TestService_CreateJobOrder_Success(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	clients := &recordingClients{}
	svc, _ := newTestService(t, &stubClock{now: now}, WithClientRegistry(clients))

	received := time.Date(2024, 1, 15, 13, 30, 0, 0, time.UTC)
	created, err := svc.CreateJobOrder(context.Background(), CreateJobOrderInput{
		ClientName:   " Tech Corp ",
		JobTitle:     " Senior Developer ",
		Location:     "New York, NY",
		Salary:       150000,
		ReceivedDate: &received,
	})
	if err != nil {
		t.Fatalf("CreateJobOrder returned error: %v", err)
	}

	if created.ClientName != "Tech Corp" || created.JobTitle != "Senior Developer" {
		t.Fatalf("expected trimmed names, got %q %q", created.ClientName, created.JobTitle)
	}
	if created.Status != StatusOpen {
		t.Fatalf("expected default status Open, got %s", created.Status)
	}
	if created.Priority != PriorityMedium {
		t.Fatalf("expected default priority Medium, got %s", created.Priority)
	}
	if created.PotentialCommission != 12000 {
		t.Fatalf("expected potential commission 12000, got %v", created.PotentialCommission)
	}
	if created.EarnedCommission != 0 || created.PlacementDate != nil {
		t.Fatalf("open job must not be placed: %+v", created)
	}
	if !created.ReceivedDate.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected normalized received date, got %v", created.ReceivedDate)
	}
	if len(clients.names) != 1 || clients.names[0] != "Tech Corp" {
		t.Fatalf("expected client to be registered, got %v", clients.names)
	}
}

func TestService_CreateJobOrder_NewClientNameWins(t *testing.T) {
	t.Parallel()

	clients := &recordingClients{}
	svc, _ := newTestService(t, &stubClock{now: time.Now().UTC()}, WithClientRegistry(clients))

	created, err := svc.CreateJobOrder(context.Background(), CreateJobOrderInput{
		ClientName:    "Tech Corp",
		NewClientName: "Innovate LLC",
		JobTitle:      "Designer",
		Salary:        90000,
	})
	if err != nil {
		t.Fatalf("CreateJobOrder returned error: %v", err)
	}
	if created.ClientName != "Innovate LLC" {
		t.Fatalf("expected new client name, got %s", created.ClientName)
	}
}

func TestService_CreateJobOrder_NegativeSalary(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &stubClock{now: time.Now().UTC()})

	_, err := svc.CreateJobOrder(context.Background(), CreateJobOrderInput{
		ClientName: "Tech Corp",
		JobTitle:   "Developer",
		Salary:     -1,
	})
	if !errors.Is(err, commission.ErrInvalidInput) {
		t.Fatalf("expected commission.ErrInvalidInput, got %v", err)
	}
}

func TestService_CreateJobOrder_InvalidDateRange(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &stubClock{now: time.Now().UTC()})
	received := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateJobOrder(context.Background(), CreateJobOrderInput{
		ClientName:   "Tech Corp",
		JobTitle:     "Developer",
		Salary:       100000,
		ReceivedDate: &received,
		DueDate:      &due,
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestService_UpdateJobOrder_StampsPlacementOnce(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc, _ := newTestService(t, clk)

	created, err := svc.CreateJobOrder(context.Background(), CreateJobOrderInput{
		ClientName: "Finance Inc",
		JobTitle:   "Project Manager",
		Salary:     120000,
	})
	if err != nil {
		t.Fatalf("CreateJobOrder returned error: %v", err)
	}

	placed := StatusPlaced
	clk.now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	first, err := svc.UpdateJobOrder(context.Background(), UpdateJobOrderInput{ID: created.ID, Status: &placed})
	if err != nil {
		t.Fatalf("UpdateJobOrder returned error: %v", err)
	}
	if first.PlacementDate == nil || !first.PlacementDate.Equal(clk.now) {
		t.Fatalf("expected placement date stamped at %v, got %v", clk.now, first.PlacementDate)
	}
	if first.EarnedCommission != 9600 {
		t.Fatalf("expected earned commission 9600, got %v", first.EarnedCommission)
	}
	stamped := *first.PlacementDate

	// 再保存では成約日は変わらない
	clk.now = clk.now.Add(48 * time.Hour)
	again, err := svc.UpdateJobOrder(context.Background(), UpdateJobOrderInput{ID: created.ID, Status: &placed})
	if err != nil {
		t.Fatalf("UpdateJobOrder returned error: %v", err)
	}
	if !again.PlacementDate.Equal(stamped) {
		t.Fatalf("placement date must not change on re-save, got %v", again.PlacementDate)
	}

	closed := StatusClosed
	clk.now = clk.now.Add(48 * time.Hour)
	afterClose, err := svc.UpdateJobOrder(context.Background(), UpdateJobOrderInput{ID: created.ID, Status: &closed})
	if err != nil {
		t.Fatalf("UpdateJobOrder returned error: %v", err)
	}
	if !afterClose.PlacementDate.Equal(stamped) {
		t.Fatalf("placement date must survive leaving Placed, got %v", afterClose.PlacementDate)
	}
	if afterClose.EarnedCommission != 9600 {
		t.Fatalf("earned commission follows the placement date, got %v", afterClose.EarnedCommission)
	}

	reopened := StatusOpen
	back, err := svc.UpdateJobOrder(context.Background(), UpdateJobOrderInput{ID: created.ID, Status: &reopened})
	if err != nil {
		t.Fatalf("UpdateJobOrder returned error: %v", err)
	}
	if back.Status != StatusOpen || back.EarnedCommission != 9600 {
		t.Fatalf("reopened job must keep earned commission, got status=%s earned=%v", back.Status, back.EarnedCommission)
	}

	clk.now = clk.now.Add(48 * time.Hour)
	replaced, err := svc.UpdateJobOrder(context.Background(), UpdateJobOrderInput{ID: created.ID, Status: &placed})
	if err != nil {
		t.Fatalf("UpdateJobOrder returned error: %v", err)
	}
	if !replaced.PlacementDate.Equal(stamped) {
		t.Fatalf("placement date must be stamped exactly once, got %v", replaced.PlacementDate)
	}
}

func TestService_UpdateJobOrder_RecomputesCommission(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &stubClock{now: time.Now().UTC()})

	created, err := svc.CreateJobOrder(context.Background(), CreateJobOrderInput{
		ClientName: "Tech Corp",
		JobTitle:   "Developer",
		Salary:     100000,
	})
	if err != nil {
		t.Fatalf("CreateJobOrder returned error: %v", err)
	}

	salary := 200000.0
	hold := StatusHold
	updated, err := svc.UpdateJobOrder(context.Background(), UpdateJobOrderInput{ID: created.ID, Salary: &salary, Status: &hold})
	if err != nil {
		t.Fatalf("UpdateJobOrder returned error: %v", err)
	}
	if updated.PotentialCommission != 16000 {
		t.Fatalf("expected potential commission 16000, got %v", updated.PotentialCommission)
	}
	if updated.Status != StatusHold {
		t.Fatalf("expected status Hold, got %s", updated.Status)
	}

	invalid := Status("Archived")
	if _, err := svc.UpdateJobOrder(context.Background(), UpdateJobOrderInput{ID: created.ID, Status: &invalid}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestService_UpdateJobOrder_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &stubClock{now: time.Now().UTC()})

	title := "x"
	if _, err := svc.UpdateJobOrder(context.Background(), UpdateJobOrderInput{ID: "missing", JobTitle: &title}); !errors.Is(err, ErrJobOrderNotFound) {
		t.Fatalf("expected ErrJobOrderNotFound, got %v", err)
	}
	if _, err := svc.UpdateJobOrder(context.Background(), UpdateJobOrderInput{ID: " "}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestService_DeleteJobOrder_RemovesAssignments(t *testing.T) {
	t.Parallel()

	cleaner := &recordingCleaner{}
	svc, repo := newTestService(t, &stubClock{now: time.Now().UTC()}, WithAssignmentCleaner(cleaner))

	created, err := svc.CreateJobOrder(context.Background(), CreateJobOrderInput{
		ClientName: "Tech Corp",
		JobTitle:   "Developer",
		Salary:     100000,
	})
	if err != nil {
		t.Fatalf("CreateJobOrder returned error: %v", err)
	}

	if err := svc.DeleteJobOrder(context.Background(), DeleteJobOrderInput{ID: created.ID}); err != nil {
		t.Fatalf("DeleteJobOrder returned error: %v", err)
	}
	if len(repo.jobs) != 0 {
		t.Fatalf("expected job to be removed from store")
	}
	if len(cleaner.removed) != 1 || cleaner.removed[0] != created.ID {
		t.Fatalf("expected assignment cleanup for %s, got %v", created.ID, cleaner.removed)
	}

	if err := svc.DeleteJobOrder(context.Background(), DeleteJobOrderInput{ID: created.ID}); !errors.Is(err, ErrJobOrderNotFound) {
		t.Fatalf("expected ErrJobOrderNotFound on second delete, got %v", err)
	}
}

func TestService_ListJobOrders_FilterAndPagination(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &stubClock{now: time.Now().UTC()})

	hold := StatusHold
	for i := 0; i < 3; i++ {
		in := CreateJobOrderInput{ClientName: "Tech Corp", JobTitle: fmt.Sprintf("Role %d", i), Salary: 1000}
		if i == 1 {
			in.Status = &hold
		}
		if _, err := svc.CreateJobOrder(context.Background(), in); err != nil {
			t.Fatalf("unexpected seed error: %v", err)
		}
	}

	open := StatusOpen
	page1, err := svc.ListJobOrders(context.Background(), ListJobOrdersInput{PageSize: 1, Status: &open})
	if err != nil {
		t.Fatalf("ListJobOrders returned error: %v", err)
	}
	if len(page1.JobOrders) != 1 || page1.NextPageToken == "" {
		t.Fatalf("expected one open job and a next token, got %d %q", len(page1.JobOrders), page1.NextPageToken)
	}

	page2, err := svc.ListJobOrders(context.Background(), ListJobOrdersInput{PageSize: 1, PageToken: page1.NextPageToken, Status: &open})
	if err != nil {
		t.Fatalf("ListJobOrders page2 returned error: %v", err)
	}
	if len(page2.JobOrders) != 1 || page2.NextPageToken != "" {
		t.Fatalf("expected last page with one job, got %d %q", len(page2.JobOrders), page2.NextPageToken)
	}

	if _, err := svc.ListJobOrders(context.Background(), ListJobOrdersInput{PageSize: 500}); !errors.Is(err, ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}
	if _, err := svc.ListJobOrders(context.Background(), ListJobOrdersInput{PageToken: "abc"}); !errors.Is(err, ErrInvalidPageToken) {
		t.Fatalf("expected ErrInvalidPageToken, got %v", err)
	}
}

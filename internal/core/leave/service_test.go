package leave

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeLeaveRepo struct {
	byEmployee map[string][]*Request
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{byEmployee: make(map[string][]*Request)}
}

func (r *fakeLeaveRepo) Create(_ context.Context, req *Request) (*Request, error) {
	clone := *req
	r.byEmployee[req.EmployeeID] = append(r.byEmployee[req.EmployeeID], &clone)
	out := clone
	return &out, nil
}

func (r *fakeLeaveRepo) ListByEmployee(_ context.Context, employeeID string) ([]*Request, error) {
	return r.byEmployee[employeeID], nil
}

type sequenceIDs struct {
	next int64
}

func (s *sequenceIDs) Generate() int64 {
	s.next++
	return s.next
}

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_RequestAbsence(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeLeaveRepo(), &sequenceIDs{}, fixedClock{})

	pending, err := svc.RequestAbsence(context.Background(), RequestAbsenceInput{
		EmployeeID: "emp-1",
		Type:       "Paid",
		StartDate:  day(2024, 2, 5),
		EndDate:    day(2024, 2, 7),
		Comment:    " family trip ",
	})
	if err != nil {
		t.Fatalf("RequestAbsence returned error: %v", err)
	}
	if pending.Status != StatusPending || pending.Type != TypePaid || pending.ID != 1 {
		t.Fatalf("unexpected request: %+v", pending)
	}
	if pending.Comment != "family trip" || !pending.CreatedAt.Equal(fixedClock{}.Now()) {
		t.Fatalf("unexpected request: %+v", pending)
	}

	approved, err := svc.SkipApproval(context.Background(), RequestAbsenceInput{
		EmployeeID: "emp-1",
		Type:       "sick",
		StartDate:  day(2024, 2, 9),
		EndDate:    day(2024, 2, 9),
	})
	if err != nil {
		t.Fatalf("SkipApproval returned error: %v", err)
	}
	if approved.Status != StatusApproved || approved.ID != 2 {
		t.Fatalf("unexpected request: %+v", approved)
	}

	list, err := svc.ListRequests(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("ListRequests returned error: %v", err)
	}
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("expected requests in submission order, got %+v", list)
	}
}

func TestService_RequestAbsence_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeLeaveRepo(), &sequenceIDs{}, fixedClock{})

	tests := []struct {
		name string
		in   RequestAbsenceInput
		want error
	}{
		{"MissingEmployee", RequestAbsenceInput{Type: "paid", StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 1)}, ErrInvalidEmployeeID},
		{"UnknownType", RequestAbsenceInput{EmployeeID: "e", Type: "vacation", StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 1)}, ErrInvalidType},
		{"MissingDate", RequestAbsenceInput{EmployeeID: "e", Type: "paid", StartDate: day(2024, 1, 1)}, ErrInvalidDate},
		{"EndBeforeStart", RequestAbsenceInput{EmployeeID: "e", Type: "paid", StartDate: day(2024, 1, 3), EndDate: day(2024, 1, 2)}, ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.RequestAbsence(context.Background(), tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestService_ListRequests_Empty(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeLeaveRepo(), &sequenceIDs{}, nil)

	list, err := svc.ListRequests(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListRequests returned error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
}

func TestService_LeaveOn(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeLeaveRepo(), &sequenceIDs{}, fixedClock{})
	if _, err := svc.RequestAbsence(context.Background(), RequestAbsenceInput{
		EmployeeID: "emp-1", Type: "maternity", StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 31),
	}); err != nil {
		t.Fatalf("RequestAbsence returned error: %v", err)
	}

	tests := []struct {
		date time.Time
		want Type
		ok   bool
	}{
		{day(2024, 3, 1), TypeMaternity, true},
		{time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC), TypeMaternity, true},
		{day(2024, 4, 1), "", false},
		{day(2024, 2, 29), "", false},
	}

	for _, tt := range tests {
		got, ok, err := svc.LeaveOn(context.Background(), "emp-1", tt.date)
		if err != nil {
			t.Fatalf("LeaveOn returned error: %v", err)
		}
		if got != tt.want || ok != tt.ok {
			t.Fatalf("LeaveOn(%v) = %q, %v; want %q, %v", tt.date, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	if got, err := ParseDate("2024-02-05"); err != nil || !got.Equal(day(2024, 2, 5)) {
		t.Fatalf("ParseDate(date) = %v, %v", got, err)
	}
	if got, err := ParseDate("2024-02-05T09:00:00+09:00"); err != nil || !got.Equal(time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("ParseDate(rfc3339) = %v, %v", got, err)
	}
	if _, err := ParseDate("05/02/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestTypeLabel(t *testing.T) {
	t.Parallel()

	if TypeSick.Label() != "Sick Leave" {
		t.Fatalf("unexpected label %q", TypeSick.Label())
	}
}

package handler

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ogurasousui/recruit-dashboard/internal/core/activity"
)

type stubActivityUseCase struct {
	recordInput activity.RecordActivityInput
	recordOut   *activity.Entry
	recordErr   error

	listInput activity.ListActivitiesInput
	listOut   *activity.ListActivitiesResult

	updateInput activity.UpdateActivityInput
	updateOut   *activity.Entry
}

func (s *stubActivityUseCase) RecordActivity(ctx context.Context, in activity.RecordActivityInput) (*activity.Entry, error) {
	s.recordInput = in
	return s.recordOut, s.recordErr
}

func (s *stubActivityUseCase) GetActivity(ctx context.Context, in activity.GetActivityInput) (*activity.Entry, error) {
	return nil, activity.ErrActivityNotFound
}

func (s *stubActivityUseCase) ListActivities(ctx context.Context, in activity.ListActivitiesInput) (*activity.ListActivitiesResult, error) {
	s.listInput = in
	return s.listOut, nil
}

func (s *stubActivityUseCase) UpdateActivity(ctx context.Context, in activity.UpdateActivityInput) (*activity.Entry, error) {
	s.updateInput = in
	return s.updateOut, nil
}

func (s *stubActivityUseCase) DeleteActivity(ctx context.Context, in activity.DeleteActivityInput) error {
	return nil
}

func TestActivityGrpcHandler_RecordActivity(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	stub := &stubActivityUseCase{
		recordOut: &activity.Entry{
			ID:        "act-1",
			JobID:     "job-1",
			WeekKey:   "2024-W03",
			Counters:  activity.Counters{CVsSourced: 12, PlacementsMade: 1},
			Timestamp: ts,
		},
	}
	handler := NewActivityGrpcHandler(stub)

	resp, err := handler.RecordActivity(context.Background(), mustStruct(t, map[string]any{
		"jobId":       "job-1",
		"recruiterId": "rec-1",
		"counters": map[string]any{
			"cvsSourced":     12,
			"placementsMade": 1,
		},
	}))
	if err != nil {
		t.Fatalf("RecordActivity returned error: %v", err)
	}

	if stub.recordInput.Counters.CVsSourced != 12 || stub.recordInput.Counters.PlacementsMade != 1 || stub.recordInput.RecruiterID != "rec-1" {
		t.Fatalf("unexpected input: %+v", stub.recordInput)
	}

	entry := resp.GetFields()["activity"].GetStructValue().GetFields()
	if entry["weekKey"].GetStringValue() != "2024-W03" {
		t.Fatalf("unexpected week key: %v", entry["weekKey"])
	}
	counters := entry["counters"].GetStructValue().GetFields()
	if counters["cvsSourced"].GetNumberValue() != 12 || counters["timeToFill"].GetNumberValue() != 0 {
		t.Fatalf("unexpected counters: %v", counters)
	}
}

func TestActivityGrpcHandler_RecordActivity_Errors(t *testing.T) {
	t.Parallel()

	stub := &stubActivityUseCase{recordErr: activity.ErrDuplicateWeeklyEntry}
	handler := NewActivityGrpcHandler(stub)

	_, err := handler.RecordActivity(context.Background(), mustStruct(t, map[string]any{"jobId": "job-1"}))
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("expected AlreadyExists, got %v", err)
	}

	_, err = handler.RecordActivity(context.Background(), mustStruct(t, map[string]any{
		"jobId":    "job-1",
		"counters": map[string]any{"cvsSourced": 1.5},
	}))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument for fractional counter, got %v", err)
	}
}

func TestActivityGrpcHandler_ListActivities_WeekOf(t *testing.T) {
	t.Parallel()

	stub := &stubActivityUseCase{listOut: &activity.ListActivitiesResult{}}
	handler := NewActivityGrpcHandler(stub)

	resp, err := handler.ListActivities(context.Background(), mustStruct(t, map[string]any{
		"jobId":  "job-1",
		"weekOf": "2024-01-17T10:00:00Z",
	}))
	if err != nil {
		t.Fatalf("ListActivities returned error: %v", err)
	}

	if stub.listInput.WeekOf == nil || stub.listInput.WeekOf.Day() != 17 {
		t.Fatalf("unexpected week: %v", stub.listInput.WeekOf)
	}
	if resp.GetFields()["activities"].GetListValue() == nil {
		t.Fatalf("expected empty list, got %v", resp.GetFields()["activities"])
	}
}

func TestActivityGrpcHandler_UpdateActivity_KeepsAbsentCounters(t *testing.T) {
	t.Parallel()

	stub := &stubActivityUseCase{updateOut: &activity.Entry{ID: "act-1"}}
	handler := NewActivityGrpcHandler(stub)

	if _, err := handler.UpdateActivity(context.Background(), mustStruct(t, map[string]any{"id": "act-1", "notes": "call back"})); err != nil {
		t.Fatalf("UpdateActivity returned error: %v", err)
	}
	if stub.updateInput.Counters != nil {
		t.Fatalf("counters must be nil when absent, got %+v", stub.updateInput.Counters)
	}
	if stub.updateInput.Notes == nil || *stub.updateInput.Notes != "call back" {
		t.Fatalf("unexpected notes: %v", stub.updateInput.Notes)
	}
}

func TestActivityGrpcHandler_GetActivity_NotFound(t *testing.T) {
	t.Parallel()

	handler := NewActivityGrpcHandler(&stubActivityUseCase{})
	if _, err := handler.GetActivity(context.Background(), mustStruct(t, map[string]any{"id": "x"})); status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

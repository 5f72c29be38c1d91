package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/recruit-dashboard/internal/core/activity"
	"github.com/ogurasousui/recruit-dashboard/internal/core/kpi"
)

// ActivityGrpcHandler は ActivityService の gRPC 実装です。
type ActivityGrpcHandler struct {
	svc activity.UseCase
}

// NewActivityGrpcHandler は ActivityGrpcHandler を生成します。
func NewActivityGrpcHandler(svc activity.UseCase) *ActivityGrpcHandler {
	return &ActivityGrpcHandler{svc: svc}
}

// RecordActivity は週次活動を記録します。
func (h *ActivityGrpcHandler) RecordActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  activity.RecordActivityInput
		err error
	)
	if in.JobID, err = stringField(req, "jobId"); err != nil {
		return nil, err
	}
	if in.RecruiterID, err = stringField(req, "recruiterId"); err != nil {
		return nil, err
	}
	if in.Notes, err = stringField(req, "notes"); err != nil {
		return nil, err
	}
	counters, err := countersField(req, "counters")
	if err != nil {
		return nil, err
	}
	if counters != nil {
		in.Counters = *counters
	}

	created, err := h.svc.RecordActivity(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"activity": activityValue(created)})
}

// GetActivity は活動記録を取得します。
func (h *ActivityGrpcHandler) GetActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := stringField(req, "id")
	if err != nil {
		return nil, err
	}

	found, err := h.svc.GetActivity(ctx, activity.GetActivityInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"activity": activityValue(found)})
}

// ListActivities は活動記録の一覧を取得します。
func (h *ActivityGrpcHandler) ListActivities(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  activity.ListActivitiesInput
		err error
	)
	if in.JobID, err = stringField(req, "jobId"); err != nil {
		return nil, err
	}
	if in.RecruiterID, err = stringField(req, "recruiterId"); err != nil {
		return nil, err
	}
	if in.WeekOf, err = timeField(req, "weekOf"); err != nil {
		return nil, err
	}
	if in.PageSize, err = intField(req, "pageSize"); err != nil {
		return nil, err
	}
	if in.PageToken, err = stringField(req, "pageToken"); err != nil {
		return nil, err
	}

	result, err := h.svc.ListActivities(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	entries := make([]any, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, activityValue(e))
	}

	return newStruct(map[string]any{
		"activities":    entries,
		"nextPageToken": result.NextPageToken,
	})
}

// UpdateActivity は活動記録を更新します。記録日時は変わりません。
func (h *ActivityGrpcHandler) UpdateActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  activity.UpdateActivityInput
		err error
	)
	if in.ID, err = stringField(req, "id"); err != nil {
		return nil, err
	}
	if in.JobID, err = optionalString(req, "jobId"); err != nil {
		return nil, err
	}
	if in.RecruiterID, err = optionalString(req, "recruiterId"); err != nil {
		return nil, err
	}
	if in.Notes, err = optionalString(req, "notes"); err != nil {
		return nil, err
	}
	if in.Counters, err = countersField(req, "counters"); err != nil {
		return nil, err
	}

	updated, err := h.svc.UpdateActivity(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"activity": activityValue(updated)})
}

// DeleteActivity は活動記録を削除します。
func (h *ActivityGrpcHandler) DeleteActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := stringField(req, "id")
	if err != nil {
		return nil, err
	}

	if err := h.svc.DeleteActivity(ctx, activity.DeleteActivityInput{ID: id}); err != nil {
		return nil, toStatusError(err)
	}

	return &structpb.Struct{}, nil
}

func countersField(req *structpb.Struct, key string) (*activity.Counters, error) {
	raw, err := structField(req, key)
	if err != nil || raw == nil {
		return nil, err
	}

	var c activity.Counters
	targets := []struct {
		kpi kpi.KPI
		dst *int
	}{
		{kpi.CVsSourced, &c.CVsSourced},
		{kpi.ScreeningsConducted, &c.ScreeningsConducted},
		{kpi.SubmissionsToClients, &c.SubmissionsToClients},
		{kpi.InHouseInterviews, &c.InHouseInterviews},
		{kpi.ClientInterviews, &c.ClientInterviews},
		{kpi.PlacementsMade, &c.PlacementsMade},
		{kpi.TimeToFill, &c.TimeToFill},
	}
	for _, t := range targets {
		v, err := intField(raw, string(t.kpi))
		if err != nil {
			return nil, err
		}
		*t.dst = v
	}
	return &c, nil
}

func countersValue(c activity.Counters) map[string]any {
	out := make(map[string]any, len(kpi.All))
	for k, v := range c.Actuals() {
		out[string(k)] = v
	}
	return out
}

func activityValue(e *activity.Entry) map[string]any {
	if e == nil {
		return nil
	}

	return map[string]any{
		"id":          e.ID,
		"jobId":       e.JobID,
		"recruiterId": e.RecruiterID,
		"timestamp":   timeValue(e.Timestamp),
		"weekKey":     e.WeekKey,
		"counters":    countersValue(e.Counters),
		"notes":       e.Notes,
	}
}

package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/recruit-dashboard/internal/core/joborder"
)

// JobOrderGrpcHandler は JobOrderService の gRPC 実装です。
type JobOrderGrpcHandler struct {
	svc joborder.UseCase
}

// NewJobOrderGrpcHandler は JobOrderGrpcHandler を生成します。
func NewJobOrderGrpcHandler(svc joborder.UseCase) *JobOrderGrpcHandler {
	return &JobOrderGrpcHandler{svc: svc}
}

// CreateJobOrder は求人案件を登録します。
func (h *JobOrderGrpcHandler) CreateJobOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  joborder.CreateJobOrderInput
		err error
	)
	if in.ClientName, err = stringField(req, "clientName"); err != nil {
		return nil, err
	}
	if in.NewClientName, err = stringField(req, "newClientName"); err != nil {
		return nil, err
	}
	if in.JobTitle, err = stringField(req, "jobTitle"); err != nil {
		return nil, err
	}
	if in.Location, err = stringField(req, "location"); err != nil {
		return nil, err
	}
	if in.Salary, err = numberField(req, "salary"); err != nil {
		return nil, err
	}
	if in.Status, err = jobStatusField(req, "status"); err != nil {
		return nil, err
	}
	if in.Priority, err = jobPriorityField(req, "priority"); err != nil {
		return nil, err
	}
	if in.ReceivedDate, err = timeField(req, "receivedDate"); err != nil {
		return nil, err
	}
	if in.DueDate, err = timeField(req, "dueDate"); err != nil {
		return nil, err
	}

	created, err := h.svc.CreateJobOrder(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"jobOrder": jobOrderValue(created)})
}

// GetJobOrder は求人案件を取得します。
func (h *JobOrderGrpcHandler) GetJobOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := stringField(req, "id")
	if err != nil {
		return nil, err
	}

	found, err := h.svc.GetJobOrder(ctx, joborder.GetJobOrderInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"jobOrder": jobOrderValue(found)})
}

// ListJobOrders は求人案件の一覧を取得します。
func (h *JobOrderGrpcHandler) ListJobOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  joborder.ListJobOrdersInput
		err error
	)
	if in.PageSize, err = intField(req, "pageSize"); err != nil {
		return nil, err
	}
	if in.PageToken, err = stringField(req, "pageToken"); err != nil {
		return nil, err
	}
	if in.Status, err = jobStatusField(req, "status"); err != nil {
		return nil, err
	}
	if in.ClientName, err = stringField(req, "clientName"); err != nil {
		return nil, err
	}

	result, err := h.svc.ListJobOrders(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	jobs := make([]any, 0, len(result.JobOrders))
	for _, j := range result.JobOrders {
		jobs = append(jobs, jobOrderValue(j))
	}

	return newStruct(map[string]any{
		"jobOrders":     jobs,
		"nextPageToken": result.NextPageToken,
	})
}

// UpdateJobOrder は求人案件を更新します。指定されたフィールドのみ変更します。
func (h *JobOrderGrpcHandler) UpdateJobOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  joborder.UpdateJobOrderInput
		err error
	)
	if in.ID, err = stringField(req, "id"); err != nil {
		return nil, err
	}
	if in.ClientName, err = optionalString(req, "clientName"); err != nil {
		return nil, err
	}
	if in.NewClientName, err = optionalString(req, "newClientName"); err != nil {
		return nil, err
	}
	if in.JobTitle, err = optionalString(req, "jobTitle"); err != nil {
		return nil, err
	}
	if in.Location, err = optionalString(req, "location"); err != nil {
		return nil, err
	}
	if in.Salary, err = optionalNumber(req, "salary"); err != nil {
		return nil, err
	}
	if in.Status, err = jobStatusField(req, "status"); err != nil {
		return nil, err
	}
	if in.Priority, err = jobPriorityField(req, "priority"); err != nil {
		return nil, err
	}
	if in.ReceivedDate, err = timeField(req, "receivedDate"); err != nil {
		return nil, err
	}
	if in.DueDate, err = timeField(req, "dueDate"); err != nil {
		return nil, err
	}

	updated, err := h.svc.UpdateJobOrder(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"jobOrder": jobOrderValue(updated)})
}

// DeleteJobOrder は求人案件を削除します。
func (h *JobOrderGrpcHandler) DeleteJobOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := stringField(req, "id")
	if err != nil {
		return nil, err
	}

	if err := h.svc.DeleteJobOrder(ctx, joborder.DeleteJobOrderInput{ID: id}); err != nil {
		return nil, toStatusError(err)
	}

	return &structpb.Struct{}, nil
}

func jobStatusField(req *structpb.Struct, key string) (*joborder.Status, error) {
	raw, err := stringField(req, key)
	if err != nil || raw == "" {
		return nil, err
	}
	s, err := joborder.ParseStatus(raw)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &s, nil
}

func jobPriorityField(req *structpb.Struct, key string) (*joborder.Priority, error) {
	raw, err := stringField(req, key)
	if err != nil || raw == "" {
		return nil, err
	}
	p, err := joborder.ParsePriority(raw)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &p, nil
}

func jobOrderValue(j *joborder.JobOrder) map[string]any {
	if j == nil {
		return nil
	}

	return map[string]any{
		"id":                  j.ID,
		"clientName":          j.ClientName,
		"jobTitle":            j.JobTitle,
		"location":            j.Location,
		"salary":              j.Salary,
		"status":              string(j.Status),
		"priority":            string(j.Priority),
		"receivedDate":        optionalTimeValue(j.ReceivedDate),
		"dueDate":             optionalTimeValue(j.DueDate),
		"placementDate":       optionalTimeValue(j.PlacementDate),
		"potentialCommission": j.PotentialCommission,
		"earnedCommission":    j.EarnedCommission,
		"createdAt":           timeValue(j.CreatedAt),
		"updatedAt":           timeValue(j.UpdatedAt),
	}
}

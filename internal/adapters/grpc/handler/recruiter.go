package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/recruit-dashboard/internal/core/recruiter"
)

// RecruiterGrpcHandler は RecruiterService の gRPC 実装です。
type RecruiterGrpcHandler struct {
	svc recruiter.UseCase
}

// NewRecruiterGrpcHandler は RecruiterGrpcHandler を生成します。
func NewRecruiterGrpcHandler(svc recruiter.UseCase) *RecruiterGrpcHandler {
	return &RecruiterGrpcHandler{svc: svc}
}

// CreateRecruiter はリクルーターを作成します。
func (h *RecruiterGrpcHandler) CreateRecruiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  recruiter.CreateRecruiterInput
		err error
	)
	if in.Name, err = stringField(req, "name"); err != nil {
		return nil, err
	}
	if in.Email, err = stringField(req, "email"); err != nil {
		return nil, err
	}
	if in.Phone, err = stringField(req, "phone"); err != nil {
		return nil, err
	}
	if in.Role, err = roleField(req, "role"); err != nil {
		return nil, err
	}

	created, err := h.svc.CreateRecruiter(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"recruiter": recruiterValue(created)})
}

// GetRecruiter はリクルーターを取得します。
func (h *RecruiterGrpcHandler) GetRecruiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := stringField(req, "id")
	if err != nil {
		return nil, err
	}

	found, err := h.svc.GetRecruiter(ctx, recruiter.GetRecruiterInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"recruiter": recruiterValue(found)})
}

// ListRecruiters はリクルーターの一覧を取得します。
func (h *RecruiterGrpcHandler) ListRecruiters(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  recruiter.ListRecruitersInput
		err error
	)
	if in.Role, err = roleField(req, "role"); err != nil {
		return nil, err
	}
	if in.JobID, err = stringField(req, "jobId"); err != nil {
		return nil, err
	}
	if in.PageSize, err = intField(req, "pageSize"); err != nil {
		return nil, err
	}
	if in.PageToken, err = stringField(req, "pageToken"); err != nil {
		return nil, err
	}

	result, err := h.svc.ListRecruiters(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{
		"recruiters":    recruitersValue(result.Recruiters),
		"nextPageToken": result.NextPageToken,
	})
}

// UpdateRecruiter はリクルーター情報を更新します。
func (h *RecruiterGrpcHandler) UpdateRecruiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  recruiter.UpdateRecruiterInput
		err error
	)
	if in.ID, err = stringField(req, "id"); err != nil {
		return nil, err
	}
	if in.Name, err = optionalString(req, "name"); err != nil {
		return nil, err
	}
	if in.Email, err = optionalString(req, "email"); err != nil {
		return nil, err
	}
	if in.Phone, err = optionalString(req, "phone"); err != nil {
		return nil, err
	}
	if in.Role, err = roleField(req, "role"); err != nil {
		return nil, err
	}

	updated, err := h.svc.UpdateRecruiter(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"recruiter": recruiterValue(updated)})
}

// DeleteRecruiter はリクルーターを削除します。
func (h *RecruiterGrpcHandler) DeleteRecruiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := stringField(req, "id")
	if err != nil {
		return nil, err
	}

	if err := h.svc.DeleteRecruiter(ctx, recruiter.DeleteRecruiterInput{ID: id}); err != nil {
		return nil, toStatusError(err)
	}

	return &structpb.Struct{}, nil
}

// AssignJob は案件を複数のリクルーターに割り当てます。
func (h *RecruiterGrpcHandler) AssignJob(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.applyJob(ctx, req, h.svc.AssignJob)
}

// UnassignJob は案件の割り当てを解除します。
func (h *RecruiterGrpcHandler) UnassignJob(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.applyJob(ctx, req, h.svc.UnassignJob)
}

func (h *RecruiterGrpcHandler) applyJob(ctx context.Context, req *structpb.Struct, apply func(context.Context, recruiter.AssignJobInput) ([]*recruiter.Recruiter, error)) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  recruiter.AssignJobInput
		err error
	)
	if in.JobID, err = stringField(req, "jobId"); err != nil {
		return nil, err
	}
	if in.RecruiterIDs, err = stringListField(req, "recruiterIds"); err != nil {
		return nil, err
	}

	updated, err := apply(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"recruiters": recruitersValue(updated)})
}

func roleField(req *structpb.Struct, key string) (*recruiter.Role, error) {
	raw, err := stringField(req, key)
	if err != nil || raw == "" {
		return nil, err
	}
	role, err := recruiter.ParseRole(raw)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &role, nil
}

func recruitersValue(recruiters []*recruiter.Recruiter) []any {
	out := make([]any, 0, len(recruiters))
	for _, r := range recruiters {
		out = append(out, recruiterValue(r))
	}
	return out
}

func recruiterValue(r *recruiter.Recruiter) map[string]any {
	if r == nil {
		return nil
	}

	return map[string]any{
		"id":           r.ID,
		"name":         r.Name,
		"email":        r.Email,
		"phone":        r.Phone,
		"role":         string(r.Role),
		"activeJobIds": stringsValue(r.ActiveJobIDs),
		"createdAt":    timeValue(r.CreatedAt),
		"updatedAt":    timeValue(r.UpdatedAt),
	}
}

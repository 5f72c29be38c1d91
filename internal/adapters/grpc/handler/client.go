package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/recruit-dashboard/internal/core/client"
)

// ClientGrpcHandler は ClientService の gRPC 実装です。
type ClientGrpcHandler struct {
	svc client.UseCase
}

// NewClientGrpcHandler は ClientGrpcHandler を生成します。
func NewClientGrpcHandler(svc client.UseCase) *ClientGrpcHandler {
	return &ClientGrpcHandler{svc: svc}
}

// CreateClient はクライアントを登録します。
func (h *ClientGrpcHandler) CreateClient(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	name, err := stringField(req, "name")
	if err != nil {
		return nil, err
	}

	created, err := h.svc.CreateClient(ctx, client.CreateClientInput{Name: name})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"client": clientValue(created)})
}

// ListClients はクライアントの一覧を取得します。
func (h *ClientGrpcHandler) ListClients(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  client.ListClientsInput
		err error
	)
	if in.PageSize, err = intField(req, "pageSize"); err != nil {
		return nil, err
	}
	if in.PageToken, err = stringField(req, "pageToken"); err != nil {
		return nil, err
	}

	result, err := h.svc.ListClients(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	clients := make([]any, 0, len(result.Clients))
	for _, c := range result.Clients {
		clients = append(clients, clientValue(c))
	}

	return newStruct(map[string]any{
		"clients":       clients,
		"nextPageToken": result.NextPageToken,
	})
}

// DeleteClient はクライアントを削除します。
func (h *ClientGrpcHandler) DeleteClient(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := stringField(req, "id")
	if err != nil {
		return nil, err
	}

	if err := h.svc.DeleteClient(ctx, client.DeleteClientInput{ID: id}); err != nil {
		return nil, toStatusError(err)
	}

	return &structpb.Struct{}, nil
}

func clientValue(c *client.Client) map[string]any {
	if c == nil {
		return nil
	}
	return map[string]any{
		"id":        c.ID,
		"name":      c.Name,
		"createdAt": timeValue(c.CreatedAt),
	}
}

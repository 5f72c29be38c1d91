// Package recruitv1 は recruit.v1 の gRPC サービス定義です。
// メッセージは google.protobuf.Struct で表現するため、コード生成を必要としません。
package recruitv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	JobOrderServiceName  = "recruit.v1.JobOrderService"
	ActivityServiceName  = "recruit.v1.ActivityService"
	RecruiterServiceName = "recruit.v1.RecruiterService"
	ClientServiceName    = "recruit.v1.ClientService"
	DashboardServiceName = "recruit.v1.DashboardService"
)

// JobOrderServiceServer は求人案件サービスのサーバー実装です。
type JobOrderServiceServer interface {
	CreateJobOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetJobOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListJobOrders(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateJobOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteJobOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ActivityServiceServer は週次活動サービスのサーバー実装です。
type ActivityServiceServer interface {
	RecordActivity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetActivity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListActivities(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateActivity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteActivity(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RecruiterServiceServer はリクルーターサービスのサーバー実装です。
type RecruiterServiceServer interface {
	CreateRecruiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRecruiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRecruiters(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateRecruiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteRecruiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AssignJob(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UnassignJob(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ClientServiceServer はクライアントサービスのサーバー実装です。
type ClientServiceServer interface {
	CreateClient(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListClients(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteClient(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// DashboardServiceServer はダッシュボードサービスのサーバー実装です。
type DashboardServiceServer interface {
	GetCommissionSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPerformance(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetJobProgress(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type call[S any] func(srv S, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unary[S any](service, name string, fn call[S]) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return fn(srv.(S), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// JobOrderService_ServiceDesc は JobOrderService の grpc.ServiceDesc です。
var JobOrderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: JobOrderServiceName,
	HandlerType: (*JobOrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(JobOrderServiceName, "CreateJobOrder", JobOrderServiceServer.CreateJobOrder),
		unary(JobOrderServiceName, "GetJobOrder", JobOrderServiceServer.GetJobOrder),
		unary(JobOrderServiceName, "ListJobOrders", JobOrderServiceServer.ListJobOrders),
		unary(JobOrderServiceName, "UpdateJobOrder", JobOrderServiceServer.UpdateJobOrder),
		unary(JobOrderServiceName, "DeleteJobOrder", JobOrderServiceServer.DeleteJobOrder),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "recruit/v1/recruit.proto",
}

// ActivityService_ServiceDesc は ActivityService の grpc.ServiceDesc です。
var ActivityService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ActivityServiceName,
	HandlerType: (*ActivityServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ActivityServiceName, "RecordActivity", ActivityServiceServer.RecordActivity),
		unary(ActivityServiceName, "GetActivity", ActivityServiceServer.GetActivity),
		unary(ActivityServiceName, "ListActivities", ActivityServiceServer.ListActivities),
		unary(ActivityServiceName, "UpdateActivity", ActivityServiceServer.UpdateActivity),
		unary(ActivityServiceName, "DeleteActivity", ActivityServiceServer.DeleteActivity),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "recruit/v1/recruit.proto",
}

// RecruiterService_ServiceDesc は RecruiterService の grpc.ServiceDesc です。
var RecruiterService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: RecruiterServiceName,
	HandlerType: (*RecruiterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(RecruiterServiceName, "CreateRecruiter", RecruiterServiceServer.CreateRecruiter),
		unary(RecruiterServiceName, "GetRecruiter", RecruiterServiceServer.GetRecruiter),
		unary(RecruiterServiceName, "ListRecruiters", RecruiterServiceServer.ListRecruiters),
		unary(RecruiterServiceName, "UpdateRecruiter", RecruiterServiceServer.UpdateRecruiter),
		unary(RecruiterServiceName, "DeleteRecruiter", RecruiterServiceServer.DeleteRecruiter),
		unary(RecruiterServiceName, "AssignJob", RecruiterServiceServer.AssignJob),
		unary(RecruiterServiceName, "UnassignJob", RecruiterServiceServer.UnassignJob),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "recruit/v1/recruit.proto",
}

// ClientService_ServiceDesc は ClientService の grpc.ServiceDesc です。
var ClientService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ClientServiceName,
	HandlerType: (*ClientServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ClientServiceName, "CreateClient", ClientServiceServer.CreateClient),
		unary(ClientServiceName, "ListClients", ClientServiceServer.ListClients),
		unary(ClientServiceName, "DeleteClient", ClientServiceServer.DeleteClient),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "recruit/v1/recruit.proto",
}

// DashboardService_ServiceDesc は DashboardService の grpc.ServiceDesc です。
var DashboardService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DashboardServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(DashboardServiceName, "GetCommissionSummary", DashboardServiceServer.GetCommissionSummary),
		unary(DashboardServiceName, "GetPerformance", DashboardServiceServer.GetPerformance),
		unary(DashboardServiceName, "GetJobProgress", DashboardServiceServer.GetJobProgress),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "recruit/v1/recruit.proto",
}

// RegisterJobOrderServiceServer は JobOrderService を登録します。
func RegisterJobOrderServiceServer(s grpc.ServiceRegistrar, srv JobOrderServiceServer) {
	s.RegisterService(&JobOrderService_ServiceDesc, srv)
}

// RegisterActivityServiceServer は ActivityService を登録します。
func RegisterActivityServiceServer(s grpc.ServiceRegistrar, srv ActivityServiceServer) {
	s.RegisterService(&ActivityService_ServiceDesc, srv)
}

// RegisterRecruiterServiceServer は RecruiterService を登録します。
func RegisterRecruiterServiceServer(s grpc.ServiceRegistrar, srv RecruiterServiceServer) {
	s.RegisterService(&RecruiterService_ServiceDesc, srv)
}

// RegisterClientServiceServer は ClientService を登録します。
func RegisterClientServiceServer(s grpc.ServiceRegistrar, srv ClientServiceServer) {
	s.RegisterService(&ClientService_ServiceDesc, srv)
}

// RegisterDashboardServiceServer は DashboardService を登録します。
func RegisterDashboardServiceServer(s grpc.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&DashboardService_ServiceDesc, srv)
}

// Invoke は Struct メッセージで unary RPC を呼び出します。
func Invoke(ctx context.Context, cc grpc.ClientConnInterface, service, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, "/"+service+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

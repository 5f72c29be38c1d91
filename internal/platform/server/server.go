package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/ogurasousui/recruit-dashboard/internal/adapters/grpc/handler"
	"github.com/ogurasousui/recruit-dashboard/internal/adapters/grpc/recruitv1"
	"github.com/ogurasousui/recruit-dashboard/internal/core/activity"
	"github.com/ogurasousui/recruit-dashboard/internal/core/client"
	"github.com/ogurasousui/recruit-dashboard/internal/core/dashboard"
	"github.com/ogurasousui/recruit-dashboard/internal/core/joborder"
	"github.com/ogurasousui/recruit-dashboard/internal/core/recruiter"
)

// Services は gRPC で公開するユースケースの集合です。
type Services struct {
	JobOrders  joborder.UseCase
	Activities activity.UseCase
	Recruiters recruiter.UseCase
	Clients    client.UseCase
	Dashboard  dashboard.UseCase
}

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, svcs Services, opts ...grpc.ServerOption) *Server {
	srv := grpc.NewServer(opts...)
	recruitv1.RegisterJobOrderServiceServer(srv, handler.NewJobOrderGrpcHandler(svcs.JobOrders))
	recruitv1.RegisterActivityServiceServer(srv, handler.NewActivityGrpcHandler(svcs.Activities))
	recruitv1.RegisterRecruiterServiceServer(srv, handler.NewRecruiterGrpcHandler(svcs.Recruiters))
	recruitv1.RegisterClientServiceServer(srv, handler.NewClientGrpcHandler(svcs.Clients))
	recruitv1.RegisterDashboardServiceServer(srv, handler.NewDashboardGrpcHandler(svcs.Dashboard))

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.grpcServer.GracefulStop()
	}()

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

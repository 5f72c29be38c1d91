package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/ogurasousui/recruit-dashboard/internal/adapters/http/router"
	"github.com/ogurasousui/recruit-dashboard/internal/adapters/repository/memory"
	"github.com/ogurasousui/recruit-dashboard/internal/adapters/repository/postgres"
	"github.com/ogurasousui/recruit-dashboard/internal/core/activity"
	"github.com/ogurasousui/recruit-dashboard/internal/core/client"
	"github.com/ogurasousui/recruit-dashboard/internal/core/commission"
	"github.com/ogurasousui/recruit-dashboard/internal/core/dashboard"
	"github.com/ogurasousui/recruit-dashboard/internal/core/joborder"
	"github.com/ogurasousui/recruit-dashboard/internal/core/leave"
	"github.com/ogurasousui/recruit-dashboard/internal/core/recruiter"
	"github.com/ogurasousui/recruit-dashboard/internal/platform/config"
	pg "github.com/ogurasousui/recruit-dashboard/internal/platform/db/postgres"
	"github.com/ogurasousui/recruit-dashboard/internal/platform/httpserver"
	"github.com/ogurasousui/recruit-dashboard/internal/platform/id"
	"github.com/ogurasousui/recruit-dashboard/internal/platform/logging"
	"github.com/ogurasousui/recruit-dashboard/internal/platform/server"
)

// transactor は各ユースケースが要求するトランザクション境界です。memory ドライバーでは nil です。
type transactor interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

// stores は選択されたストレージドライバーのリポジトリ群です。
type stores struct {
	jobs       joborder.Repository
	activities activity.Repository
	recruiters recruiter.Repository
	clients    client.Repository
	tx         transactor
	close      func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.Path(""))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logCloser, err := logging.Init(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize logger")
	}
	defer logCloser.Close()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open record store")
	}
	defer st.close()

	rate := cfg.Commission.RatePercent
	if rate == 0 {
		rate = commission.DefaultRatePercent
	}
	calc, err := commission.NewCalculator(rate)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build commission calculator")
	}

	clientSvc := client.NewService(st.clients, nil, st.tx)
	recruiterSvc := recruiter.NewService(st.recruiters, nil, st.tx)
	jobSvc := joborder.NewService(st.jobs, calc, nil, st.tx,
		joborder.WithClientRegistry(clientSvc),
		joborder.WithAssignmentCleaner(recruiterSvc),
	)
	activitySvc := activity.NewService(st.activities, nil, st.tx)
	dashboardSvc := dashboard.NewService(st.jobs, st.activities, nil, st.tx)

	idGen, err := id.NewGenerator(cfg.ID.Node)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize id generator")
	}
	leaveRepo := memory.NewLeaveRepository()
	leaveRepo.Subscribe(logStoreEvent)
	leaveSvc := leave.NewService(leaveRepo, idGen, nil)

	grpcServer := server.New(cfg.Server.GRPCListenAddr, server.Services{
		JobOrders:  jobSvc,
		Activities: activitySvc,
		Recruiters: recruiterSvc,
		Clients:    clientSvc,
		Dashboard:  dashboardSvc,
	}, grpc.UnaryInterceptor(server.LoggingInterceptor(log.Logger)))

	httpServer := httpserver.New(cfg.Server.HTTPListenAddr, router.New(router.Config{
		Leave:       leaveSvc,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      log.Logger,
	}))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.GRPCListenAddr).Msg("gRPC server listening")
		return grpcServer.Run(gctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.HTTPListenAddr).Msg("HTTP server listening")
		return httpServer.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Storage.Driver == config.StoragePostgres {
		dbPool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return &stores{
			jobs:       postgres.NewJobOrderRepository(dbPool),
			activities: postgres.NewActivityRepository(dbPool),
			recruiters: postgres.NewRecruiterRepository(dbPool),
			clients:    postgres.NewClientRepository(dbPool),
			tx:         pg.NewTransactionManager(dbPool),
			close:      dbPool.Close,
		}, nil
	}

	jobs := memory.NewJobOrderRepository()
	activities := memory.NewActivityRepository()
	recruiters := memory.NewRecruiterRepository()
	clients := memory.NewClientRepository()
	jobs.Subscribe(logStoreEvent)
	activities.Subscribe(logStoreEvent)
	recruiters.Subscribe(logStoreEvent)
	clients.Subscribe(logStoreEvent)

	return &stores{
		jobs:       jobs,
		activities: activities,
		recruiters: recruiters,
		clients:    clients,
		close:      func() {},
	}, nil
}

func logStoreEvent(ev memory.Event) {
	log.Debug().Str("entity", ev.Entity).Str("op", string(ev.Op)).Str("id", ev.ID).Msg("store changed")
}

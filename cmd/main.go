package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	grpcctx "github.com/dtroode/attendance-server/internal/api/grpc/context"
	"github.com/dtroode/attendance-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/attendance-server/internal/api/grpc/server"
	"github.com/dtroode/attendance-server/internal/api/ws"
	"github.com/dtroode/attendance-server/internal/config"
	"github.com/dtroode/attendance-server/internal/logger"
	"github.com/dtroode/attendance-server/internal/model"
	"github.com/dtroode/attendance-server/internal/notify"
	"github.com/dtroode/attendance-server/internal/realtime"
	"github.com/dtroode/attendance-server/internal/repository/memory"
	"github.com/dtroode/attendance-server/internal/repository/postgres"
	"github.com/dtroode/attendance-server/internal/server"
	"github.com/dtroode/attendance-server/internal/service"
	storage "github.com/dtroode/attendance-server/internal/storage/minio"
	"github.com/dtroode/attendance-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

// stores groups the persistence adapters selected by STORAGE_DRIVER.
type stores struct {
	sessions  model.SessionStore
	marks     model.MarkStore
	directory model.Directory
	pinger    ws.Pinger
	closers   []func() error
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i]()
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer st.Close()

	directory := service.NewBoundedDirectory(st.directory, cfg.Attendance.LookupTimeout)

	sink, closeSink, err := newNotificationSink(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize notification sink", "error", err)
	}
	defer closeSink()

	registry := realtime.NewMemoryRegistry(cfg.Realtime.SendTimeout, logger)
	dispatcher := realtime.NewDispatcher(registry, directory, sink, realtime.DispatcherConfig{
		PingInterval: cfg.Realtime.PingInterval,
		EventBuffer:  cfg.Realtime.EventBuffer,
	}, logger)

	settings := service.Settings{
		BucketWidth: cfg.Attendance.BucketWidth,
		MaxLifetime: cfg.Attendance.MaxLifetime,
	}
	sessions := service.NewSessions(st.sessions, st.marks, directory, dispatcher, settings, logger)
	verifier := service.NewVerifier(sessions, st.marks, directory, dispatcher, settings, logger)
	report := service.NewReport(st.sessions, st.marks, directory)

	if cfg.Storage.Enabled {
		archive, err := newArchiveStorage(ctx, cfg)
		if err != nil {
			logger.Fatal("failed to initialize archive storage", "error", err)
		}
		sessions.SetArchiver(service.NewArchiver(st.sessions, report, archive, logger))
	}

	tokenService := service.NewTokenService(token.NewJWT(cfg.JWT.Secret), logger)
	ctxMgr := grpcctx.NewManager()

	go dispatcher.Run(ctx)

	grpcSrv := grpcServer.NewGRPCServer(
		router.New(sessions, verifier, report, tokenService, ctxMgr, logger).Register(),
		fmt.Sprintf(":%s", cfg.GRPC.Port),
	)

	wsHandler := ws.NewHandler(ctx, dispatcher, registry, tokenService, st.pinger, ws.Options{
		AllowedOrigins: cfg.Realtime.AllowedOrigins,
		WriteTimeout:   cfg.Realtime.SendTimeout,
	}, logger)
	httpSrv := ws.NewHTTPServer(ws.NewRouter(wsHandler, logger), fmt.Sprintf(":%s", cfg.HTTP.Port))

	surfaces := []struct {
		server   model.Server
		security model.SecurityLayer
	}{
		{grpcSrv, server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)},
		{httpSrv, server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)},
	}

	var wg sync.WaitGroup
	for _, surface := range surfaces {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(surface.server, surface.security)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, surface := range surfaces {
		if err := surface.server.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", surface.server.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func openStores(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*stores, error) {
	st := &stores{}

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, db.Close)
		st.sessions = postgres.NewSessionRepository(db)
		st.marks = postgres.NewMarkRepository(db)
		st.pinger = db
	default:
		logger.Warn("using in-memory storage, sessions are lost on restart")
		db := memory.NewDB()
		st.sessions = memory.NewSessionRepository(db)
		st.marks = memory.NewMarkRepository(db)
	}

	if cfg.Database.DirectoryDSN == "" {
		logger.Warn("no directory database configured, using an empty in-memory directory")
		st.directory = memory.NewDirectory()
		return st, nil
	}

	directory, err := postgres.OpenDirectory(ctx, cfg.Database.DirectoryDSN)
	if err != nil {
		st.Close()
		return nil, err
	}
	st.closers = append(st.closers, directory.Close)
	st.directory = directory

	return st, nil
}

func newNotificationSink(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.NotificationSink, func(), error) {
	if cfg.Redis.Addr == "" {
		return notify.NewLogSink(logger), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	closeFn := func() { _ = client.Close() }
	return notify.NewRedisSink(client, cfg.Redis.NotificationTTL, cfg.Redis.MaxNotifications), closeFn, nil
}

func newArchiveStorage(ctx context.Context, cfg *config.Config) (*storage.Client, error) {
	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
}

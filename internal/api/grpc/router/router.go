package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/attendance-server/internal/api/grpc/handler"
	"github.com/dtroode/attendance-server/internal/api/grpc/middleware"
	"github.com/dtroode/attendance-server/internal/logger"
	"github.com/dtroode/attendance-server/internal/model"
)

// publicPrefixes are services reachable without a bearer token.
var publicPrefixes = []string{
	"/grpc.health.v1.Health/",
	"/grpc.reflection.",
}

// Router represents a gRPC router for attendance operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	sessions       handler.SessionService
	verifier       handler.VerifyService
	reports        handler.ReportService
	tokenService   middleware.TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	sessions handler.SessionService,
	verifier handler.VerifyService,
	reports handler.ReportService,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		sessions:       sessions,
		verifier:       verifier,
		reports:        reports,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// authRequired reports whether the call must carry a bearer token.
func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(c.FullMethod(), prefix) {
			return false
		}
	}
	return true
}

// Register registers all gRPC services and middleware.
// It sets up the gRPC server with request logging and authentication interceptors.
//
// Returns the configured gRPC server instance.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
		grpc.ChainStreamInterceptor(
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)
	r.registerAttendanceRoutes(s)
	r.registerHealth(s)
	reflection.Register(s)

	return s
}

func (r *Router) registerAttendanceRoutes(server *grpc.Server) {
	attendanceHandler := handler.NewAttendance(r.sessions, r.verifier, r.reports, r.contextManager, r.logger)
	handler.RegisterAttendanceServer(server, attendanceHandler)
}

func (r *Router) registerHealth(server *grpc.Server) {
	healthServer := health.NewServer()
	healthServer.SetServingStatus(handler.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)
}

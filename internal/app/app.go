package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/config"
	"github.com/harshl7081/ecowaste/internal/events"
	"github.com/harshl7081/ecowaste/internal/events/kafka"
	httphandler "github.com/harshl7081/ecowaste/internal/handler/http"
	rediscache "github.com/harshl7081/ecowaste/internal/infrastructure/cache/redis"
	"github.com/harshl7081/ecowaste/internal/infrastructure/database/mongo"
	"github.com/harshl7081/ecowaste/internal/service"
	"github.com/harshl7081/ecowaste/internal/utils/telemetry"
	"github.com/harshl7081/ecowaste/pkg/metrics"
)

// App owns the wired service graph and its lifecycle.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	mongoClient    *mongo.Client
	redisClient    *redis.Client
	publisher      events.Publisher
	activity       *service.ActivityLogger
	server         *http.Server
	tracerShutdown func()
}

// New builds the full dependency graph from configuration.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	var tracerShutdown func()
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint, logger)
		if err != nil {
			logger.Warn("tracer init failed, tracing disabled", zap.Error(err))
		} else {
			tracerShutdown = shutdown
		}
	}

	mongoClient, err := mongo.NewClient(ctx, cfg.Mongo, logger)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	userRepo := mongo.NewUserRepository(mongoClient)
	projectRepo := mongo.NewProjectRepository(mongoClient)
	commentRepo := mongo.NewCommentRepository(mongoClient)
	feedbackRepo := mongo.NewFeedbackRepository(mongoClient)
	logRepo := mongo.NewLogRepository(mongoClient)

	var redisClient *redis.Client
	var roleCache service.RoleCache = service.NewNopRoleCache()
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, role caching disabled", zap.Error(err))
			_ = redisClient.Close()
			redisClient = nil
		} else {
			roleCache = rediscache.NewRoleCache(redisClient, logger, cfg.Redis.RoleTTL)
		}
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ModerationTopic, logger)
		if err != nil {
			logger.Warn("kafka unreachable, event publishing disabled", zap.Error(err))
		} else {
			publisher = producer
		}
	}

	registry := metrics.NewRegistry()

	activity := service.NewActivityLogger(
		logRepo,
		cfg.ActivityLog.FlushInterval,
		cfg.ActivityLog.FlushThreshold,
		registry,
		logger,
	)

	authzService := service.NewAuthzService(userRepo, roleCache, cfg.Auth.BootstrapAdmins, logger)
	userService := service.NewUserService(userRepo, roleCache, logger)
	projectService := service.NewProjectService(projectRepo, logger)
	commentService := service.NewCommentService(commentRepo, projectRepo, authzService, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, logger)
	moderationService := service.NewModerationService(
		authzService, projectRepo, commentRepo, feedbackRepo, userRepo,
		roleCache, publisher, logger,
	)

	router := httphandler.NewRouter(httphandler.RouterDeps{
		Logger:   logger,
		Config:   cfg,
		Authz:    authzService,
		Registry: registry,
		Health:   httphandler.NewHealthHandler(logger, mongoClient),
		Projects: httphandler.NewProjectHandler(logger, projectService, userService, activity),
		Comments: httphandler.NewCommentHandler(logger, commentService, userService, activity),
		Feedback: httphandler.NewFeedbackHandler(logger, feedbackService, userService, activity),
		Activity: httphandler.NewActivityHandler(logger, activity),
		Webhook:  httphandler.NewWebhookHandler(logger, userService, cfg.Auth.WebhookSecret),
		Admin: httphandler.NewAdminHandler(
			logger, moderationService, projectService, commentService,
			feedbackService, userService, authzService, logRepo, activity, registry,
		),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		mongoClient:    mongoClient,
		redisClient:    redisClient,
		publisher:      publisher,
		activity:       activity,
		server:         server,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the activity logger and HTTP server, then blocks until a
// shutdown signal arrives or the server fails.
func (a *App) Run() error {
	a.activity.Start()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.shutdown()
		return err
	case sig := <-quit:
		a.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		a.shutdown()
		return nil
	}
}

// shutdown stops intake first, then drains buffered activity entries, then
// releases external connections.
func (a *App) shutdown() {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown failed", zap.Error(err))
	}

	a.activity.Stop(ctx, true)

	if err := a.publisher.Close(); err != nil {
		a.logger.Error("event publisher close failed", zap.Error(err))
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close failed", zap.Error(err))
		}
	}
	if err := a.mongoClient.Close(ctx); err != nil {
		a.logger.Error("mongo close failed", zap.Error(err))
	}
	if a.tracerShutdown != nil {
		a.tracerShutdown()
	}

	a.logger.Info("shutdown complete")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/imanshadilshan/work-ora/internal/bootstrap"
	"github.com/imanshadilshan/work-ora/internal/config"
	httptransport "github.com/imanshadilshan/work-ora/internal/http"
	"github.com/imanshadilshan/work-ora/internal/http/handler"
	"github.com/imanshadilshan/work-ora/internal/http/middleware"
	"github.com/imanshadilshan/work-ora/internal/relay"
	"github.com/imanshadilshan/work-ora/internal/repository"
	"github.com/imanshadilshan/work-ora/internal/server"
	"github.com/imanshadilshan/work-ora/internal/service"
	"github.com/imanshadilshan/work-ora/internal/telemetry"
	"github.com/imanshadilshan/work-ora/internal/token"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newSnowflake,
			newPGXPool,
			newUserRepository,
			newSkillRepository,
			newCompanyRepository,
			newJobRepository,
			newApplicationRepository,
			newRedisClient,
			newMailWriter,
			newOutbox,
			notifierFromOutbox,
			newUploader,
			newTokenIssuer,
			newRateLimiter,
			service.NewAuthService,
			service.NewUserService,
			service.NewJobService,
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewJobHandler,
			newAuthMiddleware,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, bootstrap.EnsureSchema, ensureMailTopic, runOutbox, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newSnowflake() (*snowflake.Node, error) {
	node, err := snowflake.NewNode(1)
	return node, err
}

func newPGXPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

func newUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return repository.NewPostgresUserRepo(pool)
}

func newSkillRepository(pool *pgxpool.Pool) repository.SkillRepository {
	return repository.NewPostgresSkillRepo(pool)
}

func newCompanyRepository(pool *pgxpool.Pool) repository.CompanyRepository {
	return repository.NewPostgresCompanyRepo(pool)
}

func newJobRepository(pool *pgxpool.Pool) repository.JobRepository {
	return repository.NewPostgresJobRepo(pool)
}

func newApplicationRepository(pool *pgxpool.Pool) repository.ApplicationRepository {
	return repository.NewPostgresApplicationRepo(pool)
}

func newRedisClient(lc fx.Lifecycle, cfg config.Config) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func newMailWriter(lc fx.Lifecycle, cfg config.Config) *kafka.Writer {
	writer := relay.NewMailWriter(cfg)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return writer.Close()
		},
	})
	return writer
}

func newOutbox(client redis.UniversalClient, writer *kafka.Writer, cfg config.Config, logger *zap.Logger) *relay.Outbox {
	return relay.NewOutbox(client, writer, cfg.OutboxKey, cfg.OutboxCapacity, logger)
}

func newUploader(cfg config.Config) relay.Uploader {
	return relay.NewHTTPUploader(cfg.UploadServiceURL, &http.Client{Timeout: 30 * time.Second})
}

func newTokenIssuer(cfg config.Config) *token.Issuer {
	return token.NewIssuer(cfg.JWTSecret, cfg.SessionTokenTTL, cfg.ResetTokenTTL)
}

func newRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimitRPM)
}

func newAuthMiddleware(users repository.UserRepository, tokens *token.Issuer, logger *zap.Logger) *middleware.Auth {
	return &middleware.Auth{Users: users, Tokens: tokens, Logger: logger}
}

// Notifier binds the service layer to the outbox.
func notifierFromOutbox(outbox *relay.Outbox) relay.Notifier {
	return outbox
}

func ensureMailTopic(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			relay.EnsureMailTopic(ctx, cfg, logger)
			return nil
		},
	})
}

func runOutbox(lc fx.Lifecycle, outbox *relay.Outbox, logger *zap.Logger) {
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			drainCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				outbox.Run(drainCtx)
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}

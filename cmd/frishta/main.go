package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"frishta/config"
	"frishta/internal/delivery"
	"frishta/internal/delivery/http"
	"frishta/internal/delivery/http/middleware"
	"frishta/internal/delivery/http/router/handler"
	"frishta/internal/domain/service"
	"frishta/internal/infra/auth"
	"frishta/internal/infra/catalog"
	logs "frishta/internal/infra/log"
	"frishta/internal/infra/mail"
	"frishta/internal/infra/persistence/postgres"
	"frishta/internal/usecase"
	"frishta/internal/usecase/impl"

	"go.uber.org/fx"
)

// sessionCleanupInterval is how often expired sessions are swept. Expiry is
// also enforced lazily on every resolve; the sweep only bounds table growth.
const sessionCleanupInterval = time.Hour

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
			startSessionCleaner,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewOtpRepository,
			postgres.NewSessionRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewPbkdf2Hasher,
			mail.NewResendMailer,
			newSongCatalog,
		),
	)
}

// newSongCatalog opens the media bucket and ties its lifetime to the app.
func newSongCatalog(lc fx.Lifecycle, ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.SongCatalog, error) {
	songCatalog, closeBucket, err := catalog.NewBlobCatalog(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closeBucket()
		},
	})

	return songCatalog, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewOtpService,
			impl.NewSessionService,
			impl.NewSongService,
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewSongHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

type sessionCleanerParams struct {
	fx.In
	fx.Lifecycle

	Sessions usecase.SessionUsecase
	Logger   *slog.Logger
}

// startSessionCleaner sweeps expired sessions on a fixed interval for the
// lifetime of the process.
func startSessionCleaner(ctx context.Context, params sessionCleanerParams) {
	cleanerCtx, cancel := context.WithCancel(ctx)

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(sessionCleanupInterval)
				defer ticker.Stop()

				for {
					select {
					case <-cleanerCtx.Done():
						return
					case <-ticker.C:
						if _, err := params.Sessions.CleanupExpired(cleanerCtx); err != nil {
							params.Logger.Warn("Session cleanup failed", slog.Any("error", err))
						}
					}
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()

			return nil
		},
	})
}

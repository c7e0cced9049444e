package main

import (
	"context"
	"log/slog"
	"os"

	"lapak/config"
	"lapak/internal/delivery"
	"lapak/internal/delivery/http"
	"lapak/internal/delivery/http/middleware"
	"lapak/internal/delivery/http/router/handler"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	"lapak/internal/infra/auth"
	"lapak/internal/infra/imagestore"
	logs "lapak/internal/infra/log"
	"lapak/internal/infra/persistence/rtdb"
	"lapak/internal/infra/pubsub"
	"lapak/internal/infra/qrcode"
	"lapak/internal/infra/store"
	"lapak/internal/usecase"
	"lapak/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

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
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		store.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			rtdb.NewUserRepository,
			rtdb.NewProductRepository,
			rtdb.NewOrderRepository,
			rtdb.NewCartRepository,
			rtdb.NewChatRepository,
			rtdb.NewReportRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewTokenVerifier,
			auth.NewReauthenticator,
			pubsub.NewEventPublisher,
			imagestore.New,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// newChatService wires the chat workflow, falling back to inline fan-out when
// no worker consumes published events.
func newChatService(
	chatRepo repository.ChatRepository,
	authorizer usecase.Authorizer,
	publisher service.EventPublisher,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ChatUsecase {
	inlineFanOut := cfg.PubSub == nil || cfg.PubSub.Provider == ""

	return impl.NewChatService(chatRepo, authorizer, publisher, inlineFanOut, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthorizer,
			impl.NewCatalogService,
			impl.NewCartService,
			impl.NewOrderService,
			newChatService,
			impl.NewAccountService,
			impl.NewProfileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCatalogHandler,
			handler.NewCartHandler,
			handler.NewOrderHandler,
			handler.NewChatHandler,
			handler.NewAccountHandler,
			handler.NewProfileHandler,
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

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}

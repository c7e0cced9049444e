package main

import (
	"context"
	"log/slog"
	"os"

	"lapak/config"
	"lapak/internal/delivery"
	"lapak/internal/delivery/worker"
	"lapak/internal/delivery/worker/handler"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	logs "lapak/internal/infra/log"
	"lapak/internal/infra/persistence/rtdb"
	"lapak/internal/infra/pubsub"
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
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
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
		pubsub.NewEventPublisher,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			rtdb.NewUserRepository,
			rtdb.NewChatRepository,
		),
	)
}

// newChatService wires the chat workflow for the worker. The worker is the
// trusted path itself, so published events are never re-published.
func newChatService(
	chatRepo repository.ChatRepository,
	authorizer usecase.Authorizer,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.ChatUsecase {
	return impl.NewChatService(chatRepo, authorizer, publisher, false, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthorizer,
			newChatService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
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

package store

import (
	"context"
	"log/slog"

	"lapak/config"
	"lapak/internal/domain/constants"
	"lapak/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Params holds dependencies for the DocumentStore, injected by Fx
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New creates a DocumentStore based on configuration
func New(params Params) (service.DocumentStore, error) {
	cfg := params.Config.Store
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.StoreProviderMemory {
		logger.Info("Using in-memory document store")

		return NewMemoryStore(), nil
	}

	switch cfg.Provider {
	case constants.StoreProviderFirebase:
		fb := params.Config.Firebase
		if fb == nil || fb.DatabaseURL == "" {
			return nil, errors.New("firebase database URL is required for firebase store provider")
		}
		logger.Info("Using Realtime Database document store",
			slog.String("database_url", fb.DatabaseURL),
		)

		app, err := firebase.NewApp(params.Ctx, &firebase.Config{
			ProjectID:   fb.ProjectID,
			DatabaseURL: fb.DatabaseURL,
		}, credentialOptions(fb)...)
		if err != nil {
			return nil, errors.Wrap(err, "initialize firebase app")
		}

		client, err := app.Database(params.Ctx)
		if err != nil {
			return nil, errors.Wrap(err, "get database client")
		}

		return NewFirebaseStore(client, logger, *cfg), nil

	default:
		return nil, errors.Errorf("unknown store provider: %s", cfg.Provider)
	}
}

func credentialOptions(cfg *config.FirebaseConfig) []option.ClientOption {
	if cfg.CredentialsPath == "" {
		return nil
	}

	return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsPath)}
}

// Module provides the document store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)

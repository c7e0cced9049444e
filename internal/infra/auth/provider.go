package auth

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

// Params holds dependencies for the auth collaborators, injected by Fx
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewTokenVerifier creates a TokenVerifier based on configuration
func NewTokenVerifier(params Params) (service.TokenVerifier, error) {
	cfg := params.Config.Auth
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.AuthProviderLocal {
		logger.Info("Using local token verifier")

		secret := ""
		if cfg != nil {
			secret = cfg.LocalSecret
		}

		return NewLocalVerifier(secret)
	}

	switch cfg.Provider {
	case constants.AuthProviderFirebase:
		fb := params.Config.Firebase
		if fb == nil || fb.ProjectID == "" {
			return nil, errors.New("firebase project ID is required for firebase auth provider")
		}
		logger.Info("Using Firebase token verifier",
			slog.String("project_id", fb.ProjectID),
		)

		var opts []option.ClientOption
		if fb.CredentialsPath != "" {
			opts = append(opts, option.WithCredentialsFile(fb.CredentialsPath))
		}

		app, err := firebase.NewApp(params.Ctx, &firebase.Config{ProjectID: fb.ProjectID}, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "initialize firebase app")
		}

		client, err := app.Auth(params.Ctx)
		if err != nil {
			return nil, errors.Wrap(err, "get auth client")
		}

		return NewFirebaseVerifier(client), nil

	default:
		return nil, errors.Errorf("unknown auth provider: %s", cfg.Provider)
	}
}

// NewReauthenticator creates a Reauthenticator based on configuration
func NewReauthenticator(params Params) (service.Reauthenticator, error) {
	cfg := params.Config.Auth

	if cfg != nil && cfg.Provider == constants.AuthProviderFirebase {
		fb := params.Config.Firebase
		if fb == nil || fb.WebAPIKey == "" {
			return nil, errors.New("firebase web API key is required for re-authentication")
		}

		return NewIdentityToolkitReauth(fb.WebAPIKey, cfg.ReauthTimeout, params.Logger), nil
	}

	params.Logger.Info("Using local re-authenticator")

	hash := ""
	if cfg != nil {
		hash = cfg.LocalPasswordHash
	}

	return NewLocalReauthenticator(hash), nil
}

// Module provides the auth FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewTokenVerifier),
	fx.Provide(NewReauthenticator),
)

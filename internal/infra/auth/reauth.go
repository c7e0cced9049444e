package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/service"

	"github.com/pkg/errors"
)

const identityToolkitSignIn = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// identityToolkitReauth re-checks a user's password against the Identity
// Toolkit REST endpoint. The admin SDK has no password check, so this uses the
// same endpoint client apps sign in with.
type identityToolkitReauth struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewIdentityToolkitReauth creates a Reauthenticator backed by the Identity
// Toolkit sign-in endpoint.
func NewIdentityToolkitReauth(apiKey string, timeout time.Duration, logger *slog.Logger) service.Reauthenticator {
	return &identityToolkitReauth{
		endpoint: identityToolkitSignIn,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Reauthenticate verifies the email/password pair. A rejected credential maps
// to ErrReauthFailed; transport failures surface as internal errors.
func (r *identityToolkitReauth) Reauthenticate(ctx context.Context, email, password string) error {
	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	endpoint := r.endpoint + "?key=" + url.QueryEscape(r.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "identity toolkit request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr signInError
	_ = json.Unmarshal(raw, &apiErr)

	r.logger.WarnContext(ctx, "re-authentication rejected",
		slog.Int("status", resp.StatusCode),
		slog.String("reason", apiErr.Error.Message),
	)

	if resp.StatusCode == http.StatusBadRequest {
		return domainerrors.ErrReauthFailed
	}

	return errors.Errorf("identity toolkit returned status %d", resp.StatusCode)
}

package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"myvet/internal/platform/httpclient"
	"myvet/internal/platform/logger"
	"myvet/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("identity service not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrUnauthorized  = errors.New("identity service rejected token")
	ErrUpstream      = errors.New("identity service error")
)

const verifyPath = "/tokens/verify"

// Config del servicio de identidad externo.
type Config struct {
	BaseURL string
	APIKey  string

	// Vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    logger.Logger
}

// Verifier implementa auth.AuthVerifier delegando en un servicio de identidad
// (POST {BaseURL}/tokens/verify). Alternativa a jwtauth cuando los tokens
// los emite un tercero.
type Verifier struct {
	client       *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func New(cfg Config) *Verifier {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	v := &Verifier{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		v.client = httpclient.New(httpclient.Config{
			BaseURL:   base,
			Timeout:   timeout,
			Transport: cfg.Transport,
			Logger:    cfg.Logger,
		})
	}
	return v
}

func (v *Verifier) IsConfigured() bool {
	return v != nil && v.client != nil && v.apiKey != ""
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if !v.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	headers := httpclient.BearerAuth(token)
	headers[v.apiKeyHeader] = v.apiKey

	out, err := httpclient.Request[verifyResponse](ctx, v.client, httpclient.Call{
		Endpoint: verifyPath,
		Method:   httpclient.MethodPost,
		Params:   verifyRequest{Token: token},
		Headers:  headers,
	})
	if err != nil {
		if status, ok := httpclient.StatusCode(err); ok &&
			(status == http.StatusUnauthorized || status == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	c := auth.Claims{
		UserID: strings.TrimSpace(out.UserID),
		Email:  strings.TrimSpace(out.Email),
		Role:   auth.RoleOwner,
	}
	if c.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}
	if strings.EqualFold(out.Role, auth.RoleStaff) {
		c.Role = auth.RoleStaff
	}
	return c, nil
}

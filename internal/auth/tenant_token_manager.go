package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// Static errors for err113 compliance.
var (
	ErrNoCredentials = errors.New("no valid credentials available")
	ErrEmptyToken    = errors.New("auth response carried no tenant access token")
)

// TokenManager supplies bearer tokens to the HTTP layer.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// TenantConfig configures a TenantTokenManager.
type TenantConfig struct {
	// TokenURL is the full tenant_access_token/internal endpoint.
	TokenURL  string
	AppID     string
	AppSecret string

	// HTTPClient defaults to a client with constants.DefaultHTTPTimeout.
	HTTPClient *http.Client
	// Clock defaults to the real clock.
	Clock  clockwork.Clock
	Logger bitable.Logger
}

// TenantTokenManager caches one tenant access token and exchanges the app
// credentials for a new one when the cached token is missing or within
// constants.TokenRefreshMargin of expiry.
type TenantTokenManager struct {
	config     *TenantConfig
	httpClient *http.Client
	clock      clockwork.Clock
	store      *TokenStore

	// held across the auth call so a refresh happens at most once
	mu sync.Mutex
}

// NewTenantTokenManager creates a token manager with an empty cache.
func NewTenantTokenManager(config *TenantConfig) *TenantTokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	clock := config.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &TenantTokenManager{
		config:     config,
		httpClient: httpClient,
		clock:      clock,
		store:      NewTokenStore(),
	}
}

// GetToken returns a valid access token, fetching one if necessary.
func (m *TenantTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.store.Get()
	if token.ValidAt(m.clock.Now(), constants.TokenRefreshMargin) {
		return token.AccessToken, nil
	}

	token, err := m.fetch(ctx)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// RefreshToken forces a token fetch.
func (m *TenantTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.fetch(ctx)

	return err
}

// SetToken manually sets the access token.
func (m *TenantTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt})
}

// Clear drops the cached token.
func (m *TenantTokenManager) Clear() {
	m.store.Clear()
}

// ExpiresAt returns the cached token's expiry, or the zero time.
func (m *TenantTokenManager) ExpiresAt() time.Time {
	token := m.store.Get()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

type tenantTokenRequest struct {
	AppID     string `json:"app_id"`
	AppSecret string `json:"app_secret"`
}

type tenantTokenResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Token
}

func (m *TenantTokenManager) fetch(ctx context.Context) (*Token, error) {
	if m.config.AppID == "" || m.config.AppSecret == "" {
		return nil, ErrNoCredentials
	}

	m.debug("Fetching tenant access token", map[string]interface{}{
		"app_id": m.config.AppID,
	})

	payload, err := json.Marshal(tenantTokenRequest{AppID: m.config.AppID, AppSecret: m.config.AppSecret})
	if err != nil {
		return nil, fmt.Errorf("encoding token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	requestedAt := m.clock.Now()

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting tenant access token: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	var tokenResp tenantTokenResponse

	err = json.Unmarshal(body, &tokenResp)
	if err != nil {
		return nil, fmt.Errorf("parsing token response (status %d): %w", resp.StatusCode, err)
	}

	if tokenResp.Code != 0 {
		return nil, &bitable.AuthError{Code: tokenResp.Code, Msg: tokenResp.Msg}
	}

	if tokenResp.AccessToken == "" {
		return nil, ErrEmptyToken
	}

	lifetime := constants.DefaultTokenLifetime
	if tokenResp.ExpiresIn > 0 {
		lifetime = time.Duration(tokenResp.ExpiresIn) * time.Second
	}

	token := &Token{
		AccessToken: tokenResp.AccessToken,
		ExpiresIn:   tokenResp.ExpiresIn,
		ExpiresAt:   requestedAt.Add(lifetime),
	}
	m.store.Set(token)

	m.debug("Tenant access token refreshed", map[string]interface{}{
		"expires_at": token.ExpiresAt.Format(time.RFC3339),
	})

	return token, nil
}

func (m *TenantTokenManager) debug(msg string, fields map[string]interface{}) {
	if m.config.Logger != nil {
		m.config.Logger.Debug(msg, fields)
	}
}

// StaticTokenManager provides a caller supplied token.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager wraps a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the fixed token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

// RefreshToken always fails.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return bitable.ErrStaticTokenCannotRefresh
}

// SetToken replaces the fixed token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

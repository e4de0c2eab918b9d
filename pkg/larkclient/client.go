package larkclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/bitable/internal/client"
	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// New creates a new Bitable client. No request is made until the first
// resource call; ctx is reserved for construction steps that need the network.
func New(ctx context.Context, config *bitable.Config) (bitable.Client, error) {
	err := validate(config)
	if err != nil {
		return nil, err
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

func validate(config *bitable.Config) error {
	if config == nil {
		return bitable.ErrConfigRequired
	}

	if config.AppToken == "" {
		return bitable.ErrAppTokenRequired
	}

	// A pre-issued token replaces the credential exchange.
	if config.AccessToken != "" {
		return nil
	}

	if config.AppID == "" {
		return bitable.ErrAppIDRequired
	}

	if config.AppSecret == "" {
		return bitable.ErrAppSecretRequired
	}

	return nil
}

// normalizeBaseURL trims trailing slashes and adds a scheme when missing.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// NewWithCredentials creates a client that exchanges appID and appSecret for
// a tenant access token against the default Lark endpoint.
func NewWithCredentials(ctx context.Context, appID, appSecret, appToken string) (bitable.Client, error) {
	return New(ctx, &bitable.Config{
		AppID:     appID,
		AppSecret: appSecret,
		AppToken:  appToken,
	})
}

// NewWithToken creates a client with a pre-issued tenant access token.
func NewWithToken(ctx context.Context, accessToken, appToken string) (bitable.Client, error) {
	return New(ctx, &bitable.Config{
		AccessToken: accessToken,
		AppToken:    appToken,
	})
}

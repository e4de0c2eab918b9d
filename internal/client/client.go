package client

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/bitable/internal/auth"
	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/internal/http"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
)

// Client implements the bitable.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	appToken     string
	logger       bitable.Logger

	// Resource clients
	tables  *TablesClient
	fields  *FieldsClient
	records *RecordsClient
}

// createTokenManager creates the token manager matching the credentials in config.
func createTokenManager(config *bitable.Config, tokenHTTP *nethttp.Client) auth.TokenManager {
	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken)
	}

	return auth.NewTenantTokenManager(&auth.TenantConfig{
		TokenURL:   config.BaseURL + constants.TenantAccessTokenPath,
		AppID:      config.AppID,
		AppSecret:  config.AppSecret,
		HTTPClient: tokenHTTP,
		Logger:     config.Logger,
	})
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *bitable.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	return httpOpts
}

// New creates a Bitable client. config must already be normalized; see
// larkclient.New.
func New(config *bitable.Config) (*Client, error) {
	if config == nil {
		return nil, bitable.ErrConfigRequired
	}

	if config.AppToken == "" {
		return nil, bitable.ErrAppTokenRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	transport := http.NewTransport(config.HTTPTimeout)

	normalized := *config
	normalized.BaseURL = baseURL

	tokenManager := createTokenManager(&normalized, transport.StandardClient())

	httpOpts := append(createHTTPClientOptions(config), http.WithTransport(transport))

	return NewWithTokenManager(&normalized, tokenManager, httpOpts...)
}

// NewWithTokenManager creates a client with a custom token manager.
func NewWithTokenManager(config *bitable.Config, tokenManager auth.TokenManager, httpOpts ...http.Option) (*Client, error) {
	if config.AppToken == "" {
		return nil, bitable.ErrAppTokenRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	httpClient := http.NewClient(baseURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		appToken:     config.AppToken,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// Tables implements bitable.Client.Tables.
func (c *Client) Tables() bitable.TablesClient {
	return c.tables
}

// Fields implements bitable.Client.Fields.
func (c *Client) Fields() bitable.FieldsClient {
	return c.fields
}

// Records implements bitable.Client.Records.
func (c *Client) Records() bitable.RecordsClient {
	return c.records
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// GetToken returns the current access token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", ErrNoTokenManagerConfigured
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.tables = NewTablesClient(c.httpClient, c.appToken)
	c.fields = NewFieldsClient(c.httpClient, c.appToken)
	c.records = NewRecordsClient(c.httpClient, c.appToken)
}

// appPath returns the path of the app's tables collection.
func appPath(appToken string) string {
	return constants.AppsPath + "/" + url.PathEscape(appToken) + "/tables"
}

// tablePath returns the path of one table.
func tablePath(appToken, tableID string) string {
	return appPath(appToken) + "/" + url.PathEscape(tableID)
}

// listQuery encodes list options, omitting zero values.
func listQuery(opts *bitable.ListOptions, defaultPageSize int) url.Values {
	query := url.Values{}

	pageSize := defaultPageSize

	if opts != nil {
		if opts.PageSize > 0 {
			pageSize = opts.PageSize
		}

		if opts.PageToken != "" {
			query.Set("page_token", opts.PageToken)
		}
	}

	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}

	return query
}

package constants

import "time"

// API endpoints.
const (
	// DefaultBaseURL is the Lark international open API root.
	DefaultBaseURL = "https://open.larksuite.com/open-apis"

	// FeishuBaseURL is the open API root for Feishu (mainland China) tenants.
	FeishuBaseURL = "https://open.feishu.cn/open-apis"

	// TenantAccessTokenPath issues tenant access tokens for internal apps.
	TenantAccessTokenPath = "/auth/v3/tenant_access_token/internal"

	// AppsPath is the prefix of every Bitable resource path.
	AppsPath = "/bitable/v1/apps"
)

// Token lifetime.
const (
	// DefaultTokenLifetime is assumed when the auth response carries no expiry.
	DefaultTokenLifetime = 2 * time.Hour

	// TokenRefreshMargin is how long before expiry a cached token is replaced.
	TokenRefreshMargin = 5 * time.Minute
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Pagination.
const (
	// MaxPageSize is the largest page size the list endpoints accept.
	MaxPageSize = 500

	// DefaultRecordPageSize is used when listing records without a page size.
	DefaultRecordPageSize = 100

	// DefaultPrintLimit is how many records the CLI lists by default.
	DefaultPrintLimit = 10
)

// Output formats and display.
const (
	// YAMLIndentSize is the indent used for YAML output.
	YAMLIndentSize = 2

	// MaskedSecret replaces secrets in displayed configuration.
	MaskedSecret = "********"
)

// Client identification.
const (
	// DefaultUserAgent is sent unless the config overrides it.
	DefaultUserAgent = "bitable-go/1.0"
)

// Configuration locations.
const (
	// ConfigDirName is created under the user's home directory.
	ConfigDirName = ".bitable"

	// ConfigFileName is the config file base name (without extension).
	ConfigFileName = "config"

	// EnvPrefix is the prefix of environment variables read by the CLI.
	EnvPrefix = "BITABLE"
)

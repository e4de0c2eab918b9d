package bitable

import (
	"context"
	"time"
)

// TablesClient manages the tables of one Bitable app.
type TablesClient interface {
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Table], error)
	ListAll(ctx context.Context) ([]Table, error)
	Create(ctx context.Context, name string) (string, error)
	Get(ctx context.Context, tableID string) (map[string]any, error)
	// GetIDByName returns the ID of the first table named name, or false
	// when there is none.
	GetIDByName(ctx context.Context, name string) (string, bool, error)
}

// FieldsClient manages the fields of a table.
type FieldsClient interface {
	List(ctx context.Context, tableID string, opts *ListOptions) (*ListResponse[Field], error)
	ListAll(ctx context.Context, tableID string) ([]Field, error)
	Create(ctx context.Context, tableID string, request *FieldCreateRequest) (string, error)
	GetIDByName(ctx context.Context, tableID, fieldName string) (string, bool, error)
}

// RecordsClient manages the records of a table.
type RecordsClient interface {
	List(ctx context.Context, tableID string, opts *ListOptions) (*ListResponse[Record], error)
	ListAll(ctx context.Context, tableID string) ([]Record, error)
	Create(ctx context.Context, tableID string, fields Fields) (string, error)
	Update(ctx context.Context, tableID, recordID string, fields Fields) error
	Delete(ctx context.Context, tableID, recordID string) error
	BatchCreate(ctx context.Context, tableID string, records []Fields) ([]Record, error)
	BatchUpdate(ctx context.Context, tableID string, records []Record) ([]Record, error)
	BatchDelete(ctx context.Context, tableID string, recordIDs []string) error
}

// Client is the entry point to a Bitable app.
type Client interface {
	Tables() TablesClient
	Fields() FieldsClient
	Records() RecordsClient

	// GetToken returns the current tenant access token, fetching one if the
	// cached token is absent or about to expire.
	GetToken(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// # Authentication
//
// AppID and AppSecret are exchanged for a tenant access token on the first
// request. The token is cached by the client instance and fetched again five
// minutes before it expires. If AccessToken is set it is used as is and never
// refreshed; AppID and AppSecret are then optional.
//
// Nothing is persisted: every client starts with an empty token cache.
type Config struct {
	// AppID: Lark app ID ("cli_...").
	AppID string
	// AppSecret: Lark app secret used with AppID.
	AppSecret string
	// AppToken: the Bitable app token taken from the document URL. Required.
	AppToken string
	// AccessToken: optional pre-issued tenant access token.
	AccessToken string

	// BaseURL: open API root. Defaults to https://open.larksuite.com/open-apis.
	// Use https://open.feishu.cn/open-apis for Feishu tenants.
	BaseURL string
	// HTTPTimeout: per request timeout. Defaults to 30 seconds.
	HTTPTimeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger
}

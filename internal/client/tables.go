package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/bitable/internal/http"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// TablesClient implements bitable.TablesClient.
type TablesClient struct {
	httpClient *http.Client
	appToken   string
}

// NewTablesClient creates a new tables client.
func NewTablesClient(httpClient *http.Client, appToken string) *TablesClient {
	return &TablesClient{
		httpClient: httpClient,
		appToken:   appToken,
	}
}

// List implements bitable.TablesClient.List.
func (c *TablesClient) List(ctx context.Context, opts *bitable.ListOptions) (*bitable.ListResponse[bitable.Table], error) {
	resp, err := c.httpClient.Get(ctx, appPath(c.appToken), listQuery(opts, 0))
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	var list bitable.ListResponse[bitable.Table]

	err = http.DecodeData(resp, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing tables list: %w", err)
	}

	return &list, nil
}

// ListAll implements bitable.TablesClient.ListAll.
func (c *TablesClient) ListAll(ctx context.Context) ([]bitable.Table, error) {
	tables, err := bitable.FetchAllPages[bitable.Table](ctx, c.List, bitable.MaxPageSize)
	if err != nil {
		return nil, fmt.Errorf("listing all tables: %w", err)
	}

	return tables, nil
}

// Create implements bitable.TablesClient.Create.
func (c *TablesClient) Create(ctx context.Context, name string) (string, error) {
	request := &bitable.TableCreateRequest{Table: bitable.TableSpec{Name: name}}

	resp, err := c.httpClient.Post(ctx, appPath(c.appToken), request)
	if err != nil {
		return "", fmt.Errorf("creating table: %w", err)
	}

	var created struct {
		TableID string `json:"table_id"`
	}

	err = http.DecodeData(resp, &created)
	if err != nil {
		return "", fmt.Errorf("parsing table create response: %w", err)
	}

	return created.TableID, nil
}

// Get implements bitable.TablesClient.Get. The data member is returned as
// is since its shape is not fixed.
func (c *TablesClient) Get(ctx context.Context, tableID string) (map[string]any, error) {
	if tableID == "" {
		return nil, bitable.ErrTableIDRequired
	}

	resp, err := c.httpClient.Get(ctx, tablePath(c.appToken, tableID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting table: %w", err)
	}

	info := map[string]any{}

	err = http.DecodeData(resp, &info)
	if err != nil {
		return nil, fmt.Errorf("parsing table: %w", err)
	}

	return info, nil
}

// GetIDByName implements bitable.TablesClient.GetIDByName.
func (c *TablesClient) GetIDByName(ctx context.Context, name string) (string, bool, error) {
	list, err := c.List(ctx, nil)
	if err != nil {
		return "", false, err
	}

	for _, table := range list.Items {
		if table.Name == name {
			return table.TableID, true, nil
		}
	}

	return "", false, nil
}

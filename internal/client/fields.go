package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/bitable/internal/http"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// FieldsClient implements bitable.FieldsClient.
type FieldsClient struct {
	httpClient *http.Client
	appToken   string
}

// NewFieldsClient creates a new fields client.
func NewFieldsClient(httpClient *http.Client, appToken string) *FieldsClient {
	return &FieldsClient{
		httpClient: httpClient,
		appToken:   appToken,
	}
}

func (c *FieldsClient) path(tableID string) string {
	return tablePath(c.appToken, tableID) + "/fields"
}

// List implements bitable.FieldsClient.List.
func (c *FieldsClient) List(ctx context.Context, tableID string, opts *bitable.ListOptions) (*bitable.ListResponse[bitable.Field], error) {
	if tableID == "" {
		return nil, bitable.ErrTableIDRequired
	}

	resp, err := c.httpClient.Get(ctx, c.path(tableID), listQuery(opts, 0))
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}

	var list bitable.ListResponse[bitable.Field]

	err = http.DecodeData(resp, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing fields list: %w", err)
	}

	return &list, nil
}

// ListAll implements bitable.FieldsClient.ListAll.
func (c *FieldsClient) ListAll(ctx context.Context, tableID string) ([]bitable.Field, error) {
	fetch := func(ctx context.Context, opts *bitable.ListOptions) (*bitable.ListResponse[bitable.Field], error) {
		return c.List(ctx, tableID, opts)
	}

	fields, err := bitable.FetchAllPages[bitable.Field](ctx, fetch, bitable.MaxPageSize)
	if err != nil {
		return nil, fmt.Errorf("listing all fields: %w", err)
	}

	return fields, nil
}

// Create implements bitable.FieldsClient.Create.
func (c *FieldsClient) Create(ctx context.Context, tableID string, request *bitable.FieldCreateRequest) (string, error) {
	if tableID == "" {
		return "", bitable.ErrTableIDRequired
	}

	resp, err := c.httpClient.Post(ctx, c.path(tableID), request)
	if err != nil {
		return "", fmt.Errorf("creating field: %w", err)
	}

	var created struct {
		Field struct {
			FieldID string `json:"field_id"`
		} `json:"field"`
		FieldID string `json:"field_id"`
	}

	err = http.DecodeData(resp, &created)
	if err != nil {
		return "", fmt.Errorf("parsing field create response: %w", err)
	}

	if created.FieldID != "" {
		return created.FieldID, nil
	}

	return created.Field.FieldID, nil
}

// GetIDByName implements bitable.FieldsClient.GetIDByName.
func (c *FieldsClient) GetIDByName(ctx context.Context, tableID, fieldName string) (string, bool, error) {
	list, err := c.List(ctx, tableID, nil)
	if err != nil {
		return "", false, err
	}

	for _, field := range list.Items {
		if field.FieldName == fieldName {
			return field.FieldID, true, nil
		}
	}

	return "", false, nil
}

package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/internal/http"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// RecordsClient implements bitable.RecordsClient.
type RecordsClient struct {
	httpClient *http.Client
	appToken   string
}

// NewRecordsClient creates a new records client.
func NewRecordsClient(httpClient *http.Client, appToken string) *RecordsClient {
	return &RecordsClient{
		httpClient: httpClient,
		appToken:   appToken,
	}
}

func (c *RecordsClient) path(tableID string) string {
	return tablePath(c.appToken, tableID) + "/records"
}

func (c *RecordsClient) recordPath(tableID, recordID string) string {
	return c.path(tableID) + "/" + url.PathEscape(recordID)
}

type recordEnvelope struct {
	Record bitable.Record `json:"record"`
}

type recordsEnvelope struct {
	Records []bitable.Record `json:"records"`
}

type recordFields struct {
	Fields bitable.Fields `json:"fields"`
}

// List implements bitable.RecordsClient.List. Without a page size the server
// is asked for constants.DefaultRecordPageSize records.
func (c *RecordsClient) List(ctx context.Context, tableID string, opts *bitable.ListOptions) (*bitable.ListResponse[bitable.Record], error) {
	if tableID == "" {
		return nil, bitable.ErrTableIDRequired
	}

	resp, err := c.httpClient.Get(ctx, c.path(tableID), listQuery(opts, constants.DefaultRecordPageSize))
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	var list bitable.ListResponse[bitable.Record]

	err = http.DecodeData(resp, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing records list: %w", err)
	}

	return &list, nil
}

// ListAll implements bitable.RecordsClient.ListAll.
func (c *RecordsClient) ListAll(ctx context.Context, tableID string) ([]bitable.Record, error) {
	fetch := func(ctx context.Context, opts *bitable.ListOptions) (*bitable.ListResponse[bitable.Record], error) {
		return c.List(ctx, tableID, opts)
	}

	records, err := bitable.FetchAllPages[bitable.Record](ctx, fetch, bitable.MaxPageSize)
	if err != nil {
		return nil, fmt.Errorf("listing all records: %w", err)
	}

	return records, nil
}

// Create implements bitable.RecordsClient.Create.
func (c *RecordsClient) Create(ctx context.Context, tableID string, fields bitable.Fields) (string, error) {
	if tableID == "" {
		return "", bitable.ErrTableIDRequired
	}

	resp, err := c.httpClient.Post(ctx, c.path(tableID), recordFields{Fields: fields})
	if err != nil {
		return "", fmt.Errorf("creating record: %w", err)
	}

	var created recordEnvelope

	err = http.DecodeData(resp, &created)
	if err != nil {
		return "", fmt.Errorf("parsing record create response: %w", err)
	}

	return created.Record.RecordID, nil
}

// Update implements bitable.RecordsClient.Update.
func (c *RecordsClient) Update(ctx context.Context, tableID, recordID string, fields bitable.Fields) error {
	if tableID == "" {
		return bitable.ErrTableIDRequired
	}

	if recordID == "" {
		return bitable.ErrRecordIDRequired
	}

	_, err := c.httpClient.Put(ctx, c.recordPath(tableID, recordID), recordFields{Fields: fields})
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}

	return nil
}

// Delete implements bitable.RecordsClient.Delete.
func (c *RecordsClient) Delete(ctx context.Context, tableID, recordID string) error {
	if tableID == "" {
		return bitable.ErrTableIDRequired
	}

	if recordID == "" {
		return bitable.ErrRecordIDRequired
	}

	_, err := c.httpClient.Delete(ctx, c.recordPath(tableID, recordID))
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	return nil
}

// BatchCreate implements bitable.RecordsClient.BatchCreate.
func (c *RecordsClient) BatchCreate(ctx context.Context, tableID string, records []bitable.Fields) ([]bitable.Record, error) {
	if tableID == "" {
		return nil, bitable.ErrTableIDRequired
	}

	payload := make([]recordFields, 0, len(records))
	for _, fields := range records {
		payload = append(payload, recordFields{Fields: fields})
	}

	resp, err := c.httpClient.Post(ctx, c.path(tableID)+"/batch_create", map[string]interface{}{
		"records": payload,
	})
	if err != nil {
		return nil, fmt.Errorf("batch creating records: %w", err)
	}

	return decodeRecords(resp)
}

// BatchUpdate implements bitable.RecordsClient.BatchUpdate. Every record
// must carry its RecordID.
func (c *RecordsClient) BatchUpdate(ctx context.Context, tableID string, records []bitable.Record) ([]bitable.Record, error) {
	if tableID == "" {
		return nil, bitable.ErrTableIDRequired
	}

	for i, record := range records {
		if record.RecordID == "" {
			return nil, fmt.Errorf("record %d: %w", i, bitable.ErrRecordIDRequired)
		}
	}

	resp, err := c.httpClient.Post(ctx, c.path(tableID)+"/batch_update", recordsEnvelope{Records: records})
	if err != nil {
		return nil, fmt.Errorf("batch updating records: %w", err)
	}

	return decodeRecords(resp)
}

// BatchDelete implements bitable.RecordsClient.BatchDelete.
func (c *RecordsClient) BatchDelete(ctx context.Context, tableID string, recordIDs []string) error {
	if tableID == "" {
		return bitable.ErrTableIDRequired
	}

	_, err := c.httpClient.Post(ctx, c.path(tableID)+"/batch_delete", map[string]interface{}{
		"records": recordIDs,
	})
	if err != nil {
		return fmt.Errorf("batch deleting records: %w", err)
	}

	return nil
}

func decodeRecords(resp *http.Response) ([]bitable.Record, error) {
	var list recordsEnvelope

	err := http.DecodeData(resp, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing records response: %w", err)
	}

	if list.Records == nil {
		list.Records = []bitable.Record{}
	}

	return list.Records, nil
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// NewRecordsCommand creates the records command group.
func NewRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"record", "r"},
		Short:   "Manage records",
		Long:    "List, create, update and delete the records of a table",
	}

	cmd.AddCommand(newRecordsListCommand())
	cmd.AddCommand(newRecordsCreateCommand())
	cmd.AddCommand(newRecordsBatchCreateCommand())
	cmd.AddCommand(newRecordsUpdateCommand())
	cmd.AddCommand(newRecordsDeleteCommand())
	cmd.AddCommand(newRecordsBatchDeleteCommand())

	return cmd
}

// RecordsListOptions holds the options for listing records.
type RecordsListOptions struct {
	Limit    int
	AllPages bool
}

func newRecordsListCommand() *cobra.Command {
	var opts RecordsListOptions

	cmd := &cobra.Command{
		Use:   "list TABLE_NAME_OR_ID",
		Short: "List records",
		Long:  "List the first --limit records of a table, or every record with --all",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()

			tableID, err := resolveTableID(ctx, client, args[0])
			if err != nil {
				return err
			}

			records, hasMore, err := fetchRecords(ctx, client, tableID, opts)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), records, func(w io.Writer) error {
				return renderRecordsTable(w, records, hasMore)
			})
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", constants.DefaultPrintLimit, "maximum number of records to show")
	cmd.Flags().BoolVar(&opts.AllPages, "all", false, "fetch all pages")

	return cmd
}

func fetchRecords(ctx context.Context, client bitable.Client, tableID string, opts RecordsListOptions) ([]bitable.Record, bool, error) {
	if opts.AllPages {
		records, err := client.Records().ListAll(ctx, tableID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to list records: %w", err)
		}

		return records, false, nil
	}

	limit := min(max(opts.Limit, 1), bitable.MaxPageSize)

	page, err := client.Records().List(ctx, tableID, &bitable.ListOptions{PageSize: limit})
	if err != nil {
		return nil, false, fmt.Errorf("failed to list records: %w", err)
	}

	records := page.Items
	if records == nil {
		records = []bitable.Record{}
	}

	return records, page.HasMore, nil
}

func renderRecordsTable(w io.Writer, records []bitable.Record, hasMore bool) error {
	if len(records) == 0 {
		printMessage(w, "No records found")

		return nil
	}

	printMessage(w, "Records (%d):", len(records))

	names := fieldNames(records)

	header := make([]any, 0, len(names)+1)
	header = append(header, "Record ID")

	for _, name := range names {
		header = append(header, name)
	}

	table := newTable(w)
	table.Header(header...)

	for _, record := range records {
		row := make([]string, 0, len(names)+1)
		row = append(row, record.RecordID)

		for _, name := range names {
			row = append(row, formatValue(record.Fields[name]))
		}

		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("rendering records: %w", err)
	}

	if hasMore {
		printMessage(w, "\nMore records available. Use --all to fetch all pages.")
	}

	return nil
}

// parseFields decodes a --fields value into a JSON object.
func parseFields(raw string) (bitable.Fields, error) {
	if raw == "" {
		return nil, constants.ErrFieldsRequired
	}

	var fields bitable.Fields

	err := json.Unmarshal([]byte(raw), &fields)
	if err != nil || fields == nil {
		return nil, constants.ErrInvalidFieldsJSON
	}

	return fields, nil
}

// parseFieldsList decodes a --records value into a list of JSON objects.
func parseFieldsList(raw string) ([]bitable.Fields, error) {
	if raw == "" {
		return nil, constants.ErrFieldsRequired
	}

	var records []bitable.Fields

	err := json.Unmarshal([]byte(raw), &records)
	if err != nil {
		return nil, constants.ErrInvalidFieldsJSON
	}

	for _, fields := range records {
		if fields == nil {
			return nil, constants.ErrInvalidFieldsJSON
		}
	}

	return records, nil
}

func newRecordsCreateCommand() *cobra.Command {
	var rawFields string

	cmd := &cobra.Command{
		Use:   "create TABLE_NAME_OR_ID",
		Short: "Create a record",
		Long:  "Create a record from a JSON object of field values and print its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(rawFields)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()

			tableID, err := resolveTableID(ctx, client, args[0])
			if err != nil {
				return err
			}

			recordID, err := client.Records().Create(ctx, tableID, fields)
			if err != nil {
				return fmt.Errorf("failed to create record: %w", err)
			}

			result := map[string]string{"record_id": recordID}

			return render(cmd.OutOrStdout(), result, func(w io.Writer) error {
				printMessage(w, "Created record %s", recordID)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&rawFields, "fields", "", `field values as a JSON object, e.g. '{"Name":"Alice"}'`)

	return cmd
}

func newRecordsBatchCreateCommand() *cobra.Command {
	var rawRecords string

	cmd := &cobra.Command{
		Use:   "batch-create TABLE_NAME_OR_ID",
		Short: "Create several records",
		Long:  "Create records from a JSON array of field value objects in one request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := parseFieldsList(rawRecords)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()

			tableID, err := resolveTableID(ctx, client, args[0])
			if err != nil {
				return err
			}

			created, err := client.Records().BatchCreate(ctx, tableID, records)
			if err != nil {
				return fmt.Errorf("failed to create records: %w", err)
			}

			return render(cmd.OutOrStdout(), created, func(w io.Writer) error {
				return renderRecordsTable(w, created, false)
			})
		},
	}

	cmd.Flags().StringVar(&rawRecords, "records", "", `records as a JSON array, e.g. '[{"Name":"A"},{"Name":"B"}]'`)

	return cmd
}

func newRecordsUpdateCommand() *cobra.Command {
	var rawFields string

	cmd := &cobra.Command{
		Use:   "update TABLE_NAME_OR_ID RECORD_ID",
		Short: "Update a record",
		Long:  "Overwrite the given field values of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(rawFields)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()

			tableID, err := resolveTableID(ctx, client, args[0])
			if err != nil {
				return err
			}

			err = client.Records().Update(ctx, tableID, args[1], fields)
			if err != nil {
				return fmt.Errorf("failed to update record: %w", err)
			}

			printMessage(cmd.OutOrStdout(), "Updated record %s", args[1])

			return nil
		},
	}

	cmd.Flags().StringVar(&rawFields, "fields", "", "field values as a JSON object")

	return cmd
}

func newRecordsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TABLE_NAME_OR_ID RECORD_ID",
		Short: "Delete a record",
		Long:  "Delete one record from a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()

			tableID, err := resolveTableID(ctx, client, args[0])
			if err != nil {
				return err
			}

			err = client.Records().Delete(ctx, tableID, args[1])
			if err != nil {
				return fmt.Errorf("failed to delete record: %w", err)
			}

			printMessage(cmd.OutOrStdout(), "Deleted record %s", args[1])

			return nil
		},
	}
}

func newRecordsBatchDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch-delete TABLE_NAME_OR_ID RECORD_ID...",
		Short: "Delete several records",
		Long:  "Delete the given records from a table in one request",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()

			tableID, err := resolveTableID(ctx, client, args[0])
			if err != nil {
				return err
			}

			err = client.Records().BatchDelete(ctx, tableID, args[1:])
			if err != nil {
				return fmt.Errorf("failed to delete records: %w", err)
			}

			printMessage(cmd.OutOrStdout(), "Deleted %d records", len(args)-1)

			return nil
		},
	}
}

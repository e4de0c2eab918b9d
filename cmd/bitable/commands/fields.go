package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// NewFieldsCommand creates the fields command group.
func NewFieldsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fields",
		Aliases: []string{"field", "f"},
		Short:   "Manage fields",
		Long:    "List, create and look up the fields of a table",
	}

	cmd.AddCommand(newFieldsListCommand())
	cmd.AddCommand(newFieldsCreateCommand())
	cmd.AddCommand(newFieldsIDCommand())

	return cmd
}

func newFieldsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list TABLE_NAME_OR_ID",
		Short: "List fields",
		Long:  "List every field of a table with its type",
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

			fields, err := client.Fields().ListAll(ctx, tableID)
			if err != nil {
				return fmt.Errorf("failed to list fields: %w", err)
			}

			return render(cmd.OutOrStdout(), fields, func(w io.Writer) error {
				if len(fields) == 0 {
					printMessage(w, "No fields found")

					return nil
				}

				printMessage(w, "Fields (%d):", len(fields))

				table := newTable(w)
				table.Header("Name", "Field ID", "Type", "Primary")

				for _, field := range fields {
					primary := ""
					if field.IsPrimary {
						primary = "yes"
					}

					_ = table.Append(field.FieldName, field.FieldID, fieldTypeLabel(field.Type), primary)
				}

				return table.Render()
			})
		},
	}
}

// FieldsCreateOptions holds the options for creating a field.
type FieldsCreateOptions struct {
	Type     string
	Property string
}

func newFieldsCreateCommand() *cobra.Command {
	var opts FieldsCreateOptions

	cmd := &cobra.Command{
		Use:   "create TABLE_NAME_OR_ID FIELD_NAME",
		Short: "Create a field",
		Long: `Create a field in a table and print its ID.

--type takes a number (1, 2, 3, ...) or a name (text, number, single_select, ...).
--property takes a JSON object with type specific settings.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := buildFieldCreateRequest(args[1], opts)
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

			fieldID, err := client.Fields().Create(ctx, tableID, request)
			if err != nil {
				return fmt.Errorf("failed to create field: %w", err)
			}

			result := map[string]string{"field_id": fieldID, "field_name": request.FieldName}

			return render(cmd.OutOrStdout(), result, func(w io.Writer) error {
				printMessage(w, "Created field %q with ID %s", request.FieldName, fieldID)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "", "field type number or name")
	cmd.Flags().StringVar(&opts.Property, "property", "", "field property as a JSON object")

	return cmd
}

func buildFieldCreateRequest(name string, opts FieldsCreateOptions) (*bitable.FieldCreateRequest, error) {
	if opts.Type == "" {
		return nil, constants.ErrTypeRequired
	}

	fieldType, ok := bitable.ParseFieldType(opts.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", constants.ErrInvalidFieldType, opts.Type)
	}

	request := &bitable.FieldCreateRequest{FieldName: name, Type: fieldType}

	if opts.Property != "" {
		var property map[string]any

		err := json.Unmarshal([]byte(opts.Property), &property)
		if err != nil || property == nil {
			return nil, constants.ErrInvalidProperty
		}

		request.Property = property
	}

	return request, nil
}

func newFieldsIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "id TABLE_NAME_OR_ID FIELD_NAME",
		Short: "Look up a field ID by name",
		Long:  "Print the ID of the first field with exactly the given name",
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

			fieldID, found, err := client.Fields().GetIDByName(ctx, tableID, args[1])
			if err != nil {
				return fmt.Errorf("failed to look up field: %w", err)
			}

			if !found {
				return fmt.Errorf("%w: %s", constants.ErrFieldNotFound, args[1])
			}

			printMessage(cmd.OutOrStdout(), "%s", fieldID)

			return nil
		},
	}
}

func fieldTypeLabel(fieldType bitable.FieldType) string {
	return fieldType.String() + " (" + strconv.Itoa(int(fieldType)) + ")"
}

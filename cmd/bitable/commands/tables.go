package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

const tableIDPrefix = "tbl"

// NewTablesCommand creates the tables command group.
func NewTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tables",
		Aliases: []string{"table", "t"},
		Short:   "Manage tables",
		Long:    "List, create and inspect the tables of a Bitable app",
	}

	cmd.AddCommand(newTablesListCommand())
	cmd.AddCommand(newTablesCreateCommand())
	cmd.AddCommand(newTablesGetCommand())
	cmd.AddCommand(newTablesIDCommand())

	return cmd
}

func newTablesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tables",
		Long:  "List every table of the Bitable app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			tables, err := client.Tables().ListAll(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list tables: %w", err)
			}

			return render(cmd.OutOrStdout(), tables, func(w io.Writer) error {
				if len(tables) == 0 {
					printMessage(w, "No tables found")

					return nil
				}

				table := newTable(w)
				table.Header("Name", "Table ID", "Revision")

				for _, t := range tables {
					_ = table.Append(t.Name, t.TableID, strconv.Itoa(t.Revision))
				}

				return table.Render()
			})
		},
	}
}

func newTablesCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a table",
		Long:  "Create a table with the given name and print its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			tableID, err := client.Tables().Create(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create table: %w", err)
			}

			result := map[string]string{"table_id": tableID, "name": args[0]}

			return render(cmd.OutOrStdout(), result, func(w io.Writer) error {
				printMessage(w, "Created table %q with ID %s", args[0], tableID)

				return nil
			})
		},
	}
}

func newTablesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TABLE_NAME_OR_ID",
		Short: "Get table details",
		Long:  "Display the raw details the server returns for a table",
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

			info, err := client.Tables().Get(ctx, tableID)
			if err != nil {
				return fmt.Errorf("failed to get table: %w", err)
			}

			return render(cmd.OutOrStdout(), info, func(w io.Writer) error {
				return renderMap(w, info)
			})
		},
	}
}

func newTablesIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "id NAME",
		Short: "Look up a table ID by name",
		Long:  "Print the ID of the first table with exactly the given name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			tableID, found, err := client.Tables().GetIDByName(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to look up table: %w", err)
			}

			if !found {
				return fmt.Errorf("%w: %s", constants.ErrTableNotFound, args[0])
			}

			printMessage(cmd.OutOrStdout(), "%s", tableID)

			return nil
		},
	}
}

// resolveTableID accepts a table ID or a table name.
func resolveTableID(ctx context.Context, client bitable.Client, nameOrID string) (string, error) {
	if strings.HasPrefix(nameOrID, tableIDPrefix) {
		return nameOrID, nil
	}

	tableID, found, err := client.Tables().GetIDByName(ctx, nameOrID)
	if err != nil {
		return "", fmt.Errorf("failed to look up table: %w", err)
	}

	if !found {
		return "", fmt.Errorf("%w: %s", constants.ErrTableNotFound, nameOrID)
	}

	return tableID, nil
}

// renderMap prints a key/value table with keys sorted.
func renderMap(w io.Writer, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	table := newTable(w)
	table.Header("Property", "Value")

	for _, key := range keys {
		_ = table.Append(key, formatValue(values[key]))
	}

	return table.Render()
}

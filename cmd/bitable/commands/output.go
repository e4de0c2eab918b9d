package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	NotAvailable = "N/A"
)

// render writes data in the selected output format. renderTable handles the
// table format.
func render(w io.Writer, data interface{}, renderTable func(io.Writer) error) error {
	switch output := viper.GetString(keyOutput); output {
	case OutputFormatJSON:
		return renderJSON(w, data)
	case OutputFormatYAML:
		return renderYAML(w, data)
	case OutputFormatTable, "":
		return renderTable(w)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownOutput, output)
	}
}

func renderJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

func renderYAML(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(constants.YAMLIndentSize)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewWriter(w)
}

func displayOrNA(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

// formatValue renders a field value for a table cell. Strings print as is,
// everything else as compact JSON.
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(data)
	}
}

// fieldNames returns the sorted union of field names across records.
func fieldNames(records []bitable.Record) []string {
	seen := map[string]struct{}{}

	for _, record := range records {
		for name := range record.Fields {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func printMessage(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}

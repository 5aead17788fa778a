// Package formatter renders execution results for the terminal and for CSV
// export. Values are rendered in a locale-independent form so exports are
// stable across machines.
package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kyleking/dwh-analyst/internal/types"
)

const maxColumnWidth = 40

// Formatter handles result output formatting.
type Formatter struct{}

// NewFormatter creates a formatter instance.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatTable renders the result as an aligned text table with the column
// order of the SELECT list.
func (f *Formatter) FormatTable(result *types.ExecutionResult) string {
	if result == nil || len(result.Columns) == 0 {
		return "(no results)\n"
	}

	widths := make([]int, len(result.Columns))
	for i, col := range result.Columns {
		widths[i] = len(col)
	}

	rendered := make([][]string, 0, len(result.Rows))

	for _, row := range result.Rows {
		cells := make([]string, len(result.Columns))

		for i, col := range result.Columns {
			cells[i] = clip(RenderValue(row[col]))
			if len(cells[i]) > widths[i] {
				widths[i] = len(cells[i])
			}
		}

		rendered = append(rendered, cells)
	}

	var sb strings.Builder

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}

			fmt.Fprintf(&sb, "%-*s", widths[i], cell)
		}

		sb.WriteString("\n")
	}

	writeRow(result.Columns)

	separators := make([]string, len(result.Columns))
	for i := range separators {
		separators[i] = strings.Repeat("-", widths[i])
	}

	writeRow(separators)

	for _, cells := range rendered {
		writeRow(cells)
	}

	fmt.Fprintf(&sb, "\n%d row(s)", result.RowCount)

	if result.Truncated {
		sb.WriteString(" (truncated)")
	}

	if result.Source == types.SourceDemo {
		sb.WriteString(" [demo data]")
	}

	sb.WriteString("\n")

	return sb.String()
}

// WriteCSV writes the result to w as CSV, column order matching the SELECT
// list order.
func (f *Formatter) WriteCSV(w io.Writer, result *types.ExecutionResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(result.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(result.Columns))

	for _, row := range result.Rows {
		for i, col := range result.Columns {
			record[i] = RenderValue(row[col])
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}

// RenderValue converts a cell value to locale-independent text.
func RenderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}

		return val.UTC().Format(time.RFC3339)
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// clip truncates on runes so a multi-byte value is never split mid-character.
func clip(s string) string {
	if utf8.RuneCountInString(s) <= maxColumnWidth {
		return s
	}

	runes := []rune(s)

	return string(runes[:maxColumnWidth-3]) + "..."
}

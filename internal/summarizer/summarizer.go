// Package summarizer turns a result set into a short natural-language
// summary for non-technical readers. Summaries are best-effort: a failure
// here never fails the request that produced the rows.
package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/kyleking/dwh-analyst/internal/formatter"
	"github.com/kyleking/dwh-analyst/internal/llm"
	"github.com/kyleking/dwh-analyst/internal/types"
)

// previewRows bounds how many rows are sent to the model.
const previewRows = 5

// Summarizer generates result summaries through the language model service.
type Summarizer struct {
	service llm.Service
}

// New creates a summarizer over the given language model service.
func New(service llm.Service) *Summarizer {
	return &Summarizer{service: service}
}

// Summarize produces a 2-3 sentence plain-language summary of the result.
// Demo results are summarized with an explicit caveat that the data is
// synthetic.
func (s *Summarizer) Summarize(ctx context.Context, question string, result *types.ExecutionResult) (string, error) {
	if result == nil || result.RowCount == 0 {
		return "The query returned no rows.", nil
	}

	prompt := s.buildPrompt(question, result)

	summary, err := s.service.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}

	summary = strings.TrimSpace(summary)

	if result.Source == types.SourceDemo {
		summary += " (Based on synthetic demo data, not live warehouse results.)"
	}

	return summary, nil
}

func (s *Summarizer) buildPrompt(question string, result *types.ExecutionResult) string {
	var sb strings.Builder

	sb.WriteString("You are a business analyst. Summarize the following query result in 2-3 plain sentences ")
	sb.WriteString("for a non-technical reader. Mention the row count and any notable values. ")
	sb.WriteString("Do not speculate beyond the data shown.\n\n")

	fmt.Fprintf(&sb, "Question: %s\n", question)
	fmt.Fprintf(&sb, "Total rows: %d\n", result.RowCount)
	fmt.Fprintf(&sb, "Columns: %s\n\n", strings.Join(result.Columns, ", "))

	n := len(result.Rows)
	if n > previewRows {
		n = previewRows
	}

	sb.WriteString("First rows:\n")

	for _, row := range result.Rows[:n] {
		cells := make([]string, 0, len(result.Columns))
		for _, col := range result.Columns {
			cells = append(cells, formatter.RenderValue(row[col]))
		}

		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
	}

	sb.WriteString("\nSummary:")

	return sb.String()
}

package summarizer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/dwh-analyst/internal/llm"
	"github.com/kyleking/dwh-analyst/internal/types"
)

type recordingService struct {
	prompt   string
	response string
	err      error
}

func (r *recordingService) Generate(_ context.Context, prompt string) (string, error) {
	r.prompt = prompt
	return r.response, r.err
}

func (r *recordingService) Configure(llm.Config) error { return nil }

func sampleResult(rows int) *types.ExecutionResult {
	result := &types.ExecutionResult{
		Columns:  []string{"id", "name"},
		RowCount: rows,
		Source:   types.SourceLive,
	}

	for i := 0; i < rows; i++ {
		result.Rows = append(result.Rows, types.Row{"id": int64(i), "name": "Demo"})
	}

	return result
}

func TestSummarize_EmptyResultShortCircuits(t *testing.T) {
	svc := &recordingService{}
	s := New(svc)

	got, err := s.Summarize(context.Background(), "q", sampleResult(0))
	require.NoError(t, err)
	assert.Equal(t, "The query returned no rows.", got)
	assert.Empty(t, svc.prompt, "no model call for empty results")

	got, err = s.Summarize(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Equal(t, "The query returned no rows.", got)
}

func TestSummarize_PromptContents(t *testing.T) {
	svc := &recordingService{response: " Twelve companies matched. "}
	s := New(svc)

	got, err := s.Summarize(context.Background(), "how many companies?", sampleResult(12))
	require.NoError(t, err)
	assert.Equal(t, "Twelve companies matched.", got)

	assert.Contains(t, svc.prompt, "Question: how many companies?")
	assert.Contains(t, svc.prompt, "Total rows: 12")
	assert.Contains(t, svc.prompt, "Columns: id, name")
}

func TestSummarize_PreviewIsBounded(t *testing.T) {
	svc := &recordingService{response: "ok"}
	s := New(svc)

	_, err := s.Summarize(context.Background(), "q", sampleResult(20))
	require.NoError(t, err)

	start := strings.Index(svc.prompt, "First rows:\n")
	end := strings.Index(svc.prompt, "\nSummary:")
	require.Greater(t, end, start)

	preview := svc.prompt[start+len("First rows:\n") : end]
	assert.Equal(t, previewRows, strings.Count(strings.TrimRight(preview, "\n"), "\n")+1)
}

func TestSummarize_DemoCaveat(t *testing.T) {
	svc := &recordingService{response: "Three rows returned."}
	s := New(svc)

	result := sampleResult(3)
	result.Source = types.SourceDemo

	got, err := s.Summarize(context.Background(), "q", result)
	require.NoError(t, err)
	assert.Contains(t, got, "synthetic demo data")
}

func TestSummarize_PropagatesFailure(t *testing.T) {
	svc := &recordingService{err: assert.AnError}
	s := New(svc)

	_, err := s.Summarize(context.Background(), "q", sampleResult(2))
	require.Error(t, err)
}


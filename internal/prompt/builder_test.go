package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/dwh-analyst/internal/errors"
	"github.com/kyleking/dwh-analyst/internal/examples"
	"github.com/kyleking/dwh-analyst/internal/rules"
	"github.com/kyleking/dwh-analyst/internal/schema"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()

	ruleSet := rules.Default(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))

	builder, err := New(schema.Default(), ruleSet, examples.Default(), 3)
	require.NoError(t, err)

	return builder
}

func TestNew_RejectsRuleWithUnknownTable(t *testing.T) {
	catalog := schema.NewCatalog(schema.TableSchema{
		Name:    "bi.companies",
		Columns: []schema.ColumnSpec{{Name: "id", Type: "BIGINT"}},
	})

	ruleSet := rules.NewSet([]rules.Rule{
		{Name: "bad", Triggers: []string{"x"}, Tables: []string{"bi.not_a_table"}},
	}, nil)

	_, err := New(catalog, ruleSet, examples.NewStore(nil), 3)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchemaMissing))
	assert.Contains(t, err.Error(), "bi.not_a_table")
}

func TestBuild_SectionOrdering(t *testing.T) {
	builder := newTestBuilder(t)

	prompt := builder.Build("Show fraud companies created this week")

	schemaIdx := strings.Index(prompt, "Available tables and columns:")
	rulesIdx := strings.Index(prompt, "Rules that apply to this request:")
	examplesIdx := strings.Index(prompt, "Example validated queries")
	questionIdx := strings.Index(prompt, "User request:")

	require.GreaterOrEqual(t, schemaIdx, 0)
	require.GreaterOrEqual(t, rulesIdx, 0)
	require.GreaterOrEqual(t, examplesIdx, 0)
	require.GreaterOrEqual(t, questionIdx, 0)

	assert.Less(t, schemaIdx, rulesIdx, "schema must precede rules")
	assert.Less(t, rulesIdx, examplesIdx, "rules must precede examples")
	assert.Less(t, examplesIdx, questionIdx, "examples must precede the question")
	assert.True(t, strings.HasSuffix(prompt, "Generate SQL:"))
}

func TestBuild_IncludesMatchedRulesOnly(t *testing.T) {
	builder := newTestBuilder(t)

	prompt := builder.Build("Total credit losses for fiscal year 2024")

	assert.Contains(t, prompt, "credit_loss_flag = true")
	assert.Contains(t, prompt, "Fiscal years start May 1")
	assert.NotContains(t, prompt, "Account takeover")
}

func TestBuild_NoRulesSectionWhenNothingMatches(t *testing.T) {
	builder := newTestBuilder(t)

	prompt := builder.Build("List ten records")

	assert.NotContains(t, prompt, "Rules that apply to this request:")
	assert.Contains(t, prompt, "User request: List ten records")
}

func TestBuild_SchemaListsEveryTable(t *testing.T) {
	builder := newTestBuilder(t)

	prompt := builder.Build("anything")

	for _, name := range schema.Default().TableNames() {
		assert.Contains(t, prompt, "Table: "+name)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	builder := newTestBuilder(t)

	first := builder.Build("fraud losses by month")

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, builder.Build("fraud losses by month"))
	}
}

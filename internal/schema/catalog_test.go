package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_LookupCaseInsensitive(t *testing.T) {
	catalog := Default()

	for _, name := range []string{"bi.companies", "BI.Companies", "BI.COMPANIES"} {
		table, ok := catalog.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, "bi.companies", table.Name)
	}

	_, ok := catalog.Lookup("bi.nonexistent")
	assert.False(t, ok)
}

func TestCatalog_DescribeOrderIsStable(t *testing.T) {
	first := Default().Describe()
	second := Default().Describe()

	require.Equal(t, len(first), len(second))

	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
	}

	assert.Equal(t, "bi.companies", first[0].Name, "companies leads the catalog")
}

func TestCatalog_DuplicateNamesKeepFirst(t *testing.T) {
	catalog := NewCatalog(
		TableSchema{Name: "bi.t", Description: "first"},
		TableSchema{Name: "BI.T", Description: "second"},
	)

	table, ok := catalog.Lookup("bi.t")
	require.True(t, ok)
	assert.Equal(t, "first", table.Description)
	assert.Len(t, catalog.Describe(), 1)
}

func TestDefault_CoversRuleAndExampleColumns(t *testing.T) {
	catalog := Default()

	tests := []struct {
		table   string
		columns []string
	}{
		{"bi.companies", []string{"id", "name", "filing_state", "created_at"}},
		{"bi.risk_onboarding", []string{"company_id", "risk_state", "risk_state_description"}},
		{"bi_reporting.gusto_payments_and_losses", []string{
			"event_debit_date", "credit_loss_flag", "ato_flag", "net_loss_amount", "failed_payment_flag",
		}},
		{"bi.credit_delinquencies", []string{"is_credit_loss", "days_past_due", "delinquent_status"}},
		{"zenpayroll_production_no_pii.customer_risk_tiers", []string{"combined_risk_tier", "fraud_risk_tier"}},
		{"zenpayroll_production_no_pii.risk_onboarding_ai_agent_decisions", []string{
			"decision", "trust_analyst_confidence", "risk_analyst_decision",
		}},
	}

	for _, tt := range tests {
		table, ok := catalog.Lookup(tt.table)
		require.True(t, ok, tt.table)

		for _, col := range tt.columns {
			assert.True(t, table.HasColumn(col), "%s.%s", tt.table, col)
		}
	}
}

func TestHasColumn_CaseInsensitive(t *testing.T) {
	table, ok := Default().Lookup("bi.companies")
	require.True(t, ok)

	assert.True(t, table.HasColumn("FILING_STATE"))
	assert.False(t, table.HasColumn("password"))
}

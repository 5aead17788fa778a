package llm

import (
	"context"
	"strings"
)

// FallbackService answers questions from a small fixed template library when
// no language model is available. It implements Service so degraded modes run
// the same pipeline; templates still pass through the safety validator.
type FallbackService struct{}

// NewFallbackService creates a template-backed service.
func NewFallbackService() *FallbackService {
	return &FallbackService{}
}

// Configure is a no-op for the fallback service.
func (*FallbackService) Configure(Config) error {
	return nil
}

// template pairs question keywords with a known-good statement. First match
// wins, so more specific entries come first.
type template struct {
	keywords []string
	sql      string
}

var queryTemplates = []template{
	{
		keywords: []string{"fraud companies", "fraud company"},
		sql: `SELECT c.id, c.name, ro.risk_state, ro.risk_state_description, c.created_at
FROM bi.companies c
JOIN bi.risk_onboarding ro ON c.id = ro.company_id
WHERE ro.risk_state IN (2,3,7,9,12,13,14,15,17,20,22)
ORDER BY c.created_at DESC
LIMIT 100;`,
	},
	{
		keywords: []string{"fraud loss", "fraud losses"},
		sql: `SELECT company_id, event_id, event_debit_date, event_gross_amount, recovered_amount, net_loss_amount
FROM bi_reporting.gusto_payments_and_losses
WHERE credit_loss_flag = false
ORDER BY event_debit_date DESC
LIMIT 100;`,
	},
	{
		keywords: []string{"credit loss", "credit losses"},
		sql: `SELECT company_id, event_id, event_debit_date, event_gross_amount, recovered_amount, net_loss_amount
FROM bi_reporting.gusto_payments_and_losses
WHERE credit_loss_flag = true
ORDER BY event_debit_date DESC
LIMIT 100;`,
	},
	{
		keywords: []string{"ato", "account takeover"},
		sql: `SELECT company_id, event_id, event_debit_date, event_gross_amount, net_loss_amount, ato_flag
FROM bi_reporting.gusto_payments_and_losses
WHERE ato_flag = true
ORDER BY event_debit_date DESC
LIMIT 100;`,
	},
	{
		keywords: []string{"delinquen", "past due"},
		sql: `SELECT company_id, name, payment_id, debit_date, debit_amount_attempted, days_past_due, delinquent_status
FROM bi.credit_delinquencies
ORDER BY days_past_due DESC
LIMIT 100;`,
	},
	{
		keywords: []string{"penalt"},
		sql: `SELECT id, agency_name, year, quarter, error_type, total_penalty_amount, total_penalty_paid, status
FROM bi.penalty_cases
ORDER BY created_at DESC
LIMIT 100;`,
	},
	{
		keywords: []string{"risk tier", "risk tiers", "high risk"},
		sql: `SELECT c.id, c.name, c.filing_state, t.combined_risk_tier, t.fraud_risk_tier
FROM bi.companies c
JOIN zenpayroll_production_no_pii.customer_risk_tiers t ON t.company_id = c.id
WHERE t.combined_risk_tier IN ('Tier C', 'Tier D', 'Tier E')
ORDER BY t.fraud_risk_tier DESC
LIMIT 100;`,
	},
	{
		keywords: []string{"employee"},
		sql: `SELECT id, name, department_name, work_state, status, worker_type, job_title
FROM bi.gusto_employees
WHERE status = 'Active'
ORDER BY name
LIMIT 100;`,
	},
	{
		keywords: []string{"payment", "transaction"},
		sql: `SELECT company_id, event_id, event_debit_date, event_type, event_gross_amount, processing_state
FROM bi_reporting.gusto_payments_and_losses
ORDER BY event_debit_date DESC
LIMIT 100;`,
	},
	{
		keywords: []string{"california"},
		sql: `SELECT id, name, filing_state, filing_city, created_at, number_active_employees
FROM bi.companies
WHERE filing_state = 'CA'
ORDER BY created_at DESC
LIMIT 100;`,
	},
}

const defaultTemplate = `SELECT id, name, filing_state, created_at, is_active, number_active_employees
FROM bi.companies
ORDER BY created_at DESC
LIMIT 100;`

// Generate matches the question against the template library. There is
// always an answer: unmatched questions get the default company listing.
func (*FallbackService) Generate(_ context.Context, question string) (string, error) {
	q := strings.ToLower(question)

	for _, tmpl := range queryTemplates {
		for _, kw := range tmpl.keywords {
			if strings.Contains(q, kw) {
				return tmpl.sql, nil
			}
		}
	}

	return defaultTemplate, nil
}

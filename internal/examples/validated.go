package examples

// Default returns the production-validated example queries. Add new pairs at
// the end only after confirming them against the live warehouse.
func Default() *Store {
	return NewStore([]Example{
		{
			Question: "Show me fraud companies created in the last 30 days",
			SQL: `SELECT c.id, c.name, ro.risk_state, ro.risk_state_description, c.created_at
FROM bi.companies c
JOIN bi.risk_onboarding ro ON c.id = ro.company_id
WHERE ro.risk_state IN (2,3,7,9,12,13,14,15,17,20,22)
  AND c.created_at >= CURRENT_DATE - INTERVAL '30 days'
ORDER BY c.created_at DESC
LIMIT 100;`,
		},
		{
			Question: "Get fraud loss transactions from last month",
			SQL: `SELECT company_id, event_id, event_debit_date, event_gross_amount,
       recovered_amount, net_loss_amount
FROM bi_reporting.gusto_payments_and_losses
WHERE credit_loss_flag = false
  AND event_debit_date >= DATE_TRUNC('month', CURRENT_DATE - INTERVAL '1 month')
  AND event_debit_date < DATE_TRUNC('month', CURRENT_DATE)
ORDER BY event_debit_date DESC
LIMIT 100;`,
		},
		{
			Question: "Show companies with high risk tiers in California",
			SQL: `SELECT c.id, c.name, c.filing_state, t.combined_risk_tier, t.fraud_risk_tier
FROM bi.companies c
JOIN zenpayroll_production_no_pii.customer_risk_tiers t ON t.company_id = c.id
WHERE c.filing_state = 'CA'
  AND t.combined_risk_tier IN ('Tier C', 'Tier D', 'Tier E')
ORDER BY t.fraud_risk_tier DESC
LIMIT 100;`,
		},
		{
			Question: "Get recent AI agent decisions with company details",
			SQL: `SELECT d.company_id, c.name, d.decision, d.status,
       d.trust_analyst_decision, d.trust_analyst_confidence,
       d.risk_analyst_decision, d.risk_analyst_confidence,
       d.created_at
FROM zenpayroll_production_no_pii.risk_onboarding_ai_agent_decisions d
JOIN bi.companies c ON d.company_id = c.id
WHERE d.created_at >= CURRENT_DATE - INTERVAL '7 days'
ORDER BY d.created_at DESC
LIMIT 100;`,
		},
		{
			Question: "Show ATO transactions with losses greater than $1000",
			SQL: `SELECT company_id, event_id, event_debit_date, event_gross_amount,
       recovered_amount, net_loss_amount, ato_flag
FROM bi_reporting.gusto_payments_and_losses
WHERE ato_flag = true
  AND net_loss_amount > 1000
  AND failed_payment_flag = true
ORDER BY net_loss_amount DESC
LIMIT 100;`,
		},
	})
}

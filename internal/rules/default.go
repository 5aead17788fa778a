package rules

import (
	"fmt"
	"time"
)

// FraudRiskStates is the fixed enumeration of onboarding risk states that
// classify a company as fraud. Queries must test membership with IN against
// this exact list, never a range or a subset.
var FraudRiskStates = []int{2, 3, 7, 9, 12, 13, 14, 15, 17, 20, 22}

// FraudRiskStateCondition is the literal predicate form of FraudRiskStates.
const FraudRiskStateCondition = "risk_state IN (2,3,7,9,12,13,14,15,17,20,22)"

// Default returns the production rule set. The rules are evaluated once per
// question; now anchors "current fiscal year" wording and is expected to be
// the generation time.
func Default(now time.Time) *Set {
	fy := CurrentFiscalYear(now)
	fyStart, fyEnd := FiscalYearRange(fy)

	ruleList := []Rule{
		{
			Name:     "credit-loss-flag",
			Triggers: []string{"credit loss", "credit losses"},
			Instruction: "Credit loss transactions: use credit_loss_flag = true on " +
				"bi_reporting.gusto_payments_and_losses (or is_credit_loss = true on bi.credit_delinquencies).",
			ConditionTemplate: "credit_loss_flag = true",
			Tables:            []string{"bi_reporting.gusto_payments_and_losses", "bi.credit_delinquencies"},
		},
		{
			Name:     "fraud-loss-flag",
			Triggers: []string{"fraud loss", "fraud losses"},
			Instruction: "Fraud loss transactions: use credit_loss_flag = false on " +
				"bi_reporting.gusto_payments_and_losses (or is_credit_loss = false on bi.credit_delinquencies).",
			ConditionTemplate: "credit_loss_flag = false",
			Tables:            []string{"bi_reporting.gusto_payments_and_losses", "bi.credit_delinquencies"},
		},
		{
			Name:     "fraud-risk-states",
			Triggers: []string{"fraud company", "fraud companies", "fraudulent"},
			Instruction: "Fraud companies are identified by onboarding risk state. Join bi.risk_onboarding " +
				"and filter with the exact list " + FraudRiskStateCondition +
				". Never approximate this list with a range, equality, or subset.",
			ConditionTemplate: FraudRiskStateCondition,
			Tables:            []string{"bi.risk_onboarding"},
		},
		{
			Name:     "ato-flag",
			Triggers: []string{"ato", "account takeover"},
			Instruction: "Account takeover (ATO) transactions: filter with ato_flag = true on " +
				"bi_reporting.gusto_payments_and_losses; non-ATO with ato_flag = false.",
			ConditionTemplate: "ato_flag = true",
			Tables:            []string{"bi_reporting.gusto_payments_and_losses"},
		},
		{
			Name:     "fiscal-year",
			Triggers: []string{"fiscal year", "fiscal", "fy"},
			Instruction: fmt.Sprintf(
				"Fiscal years start May 1: fiscal year Y covers [Y-1-05-01, Y-05-01). "+
					"The current fiscal year is FY%d, covering %s (inclusive) to %s (exclusive). "+
					"Render fiscal-year filters as half-open date intervals.",
				fy, fyStart.Format("2006-01-02"), fyEnd.Format("2006-01-02")),
		},
		{
			Name:     "filing-state",
			Triggers: []string{"state", "states", "california", "new york", "texas", "florida", "washington"},
			Instruction: "bi.companies.filing_state is always a 2-letter uppercase abbreviation; " +
				"filter by state like WHERE filing_state = 'CA'.",
			Tables: []string{"bi.companies"},
		},
		{
			Name:     "event-date-column",
			Triggers: []string{"payment", "payments", "loss", "losses", "transaction", "transactions"},
			Instruction: "For time-based queries on bi_reporting.gusto_payments_and_losses, always use " +
				"event_debit_date as the date column.",
			Tables: []string{"bi_reporting.gusto_payments_and_losses"},
		},
		{
			Name: "time-aggregation",
			Triggers: []string{
				"monthly", "weekly", "daily", "trend", "over time",
				"by month", "by week", "by day", "volumes",
			},
			Instruction: "Use DATE_TRUNC for time-based aggregations and always ORDER BY the time " +
				"column DESC so the most recent period comes first.",
		},
	}

	joinList := []JoinRule{
		{
			LeftTable: "bi.companies", LeftColumn: "id",
			RightTable: "bi.risk_onboarding", RightColumn: "company_id",
		},
		{
			LeftTable: "bi.companies", LeftColumn: "id",
			RightTable: "zenpayroll_production_no_pii.customer_risk_tiers", RightColumn: "company_id",
		},
		{
			LeftTable: "bi.companies", LeftColumn: "id",
			RightTable: "zenpayroll_production_no_pii.risk_onboarding_ai_agent_decisions", RightColumn: "company_id",
		},
		{
			LeftTable: "bi.companies", LeftColumn: "id",
			RightTable: "bi.credit_delinquencies", RightColumn: "company_id",
		},
		{
			LeftTable: "bi.companies", LeftColumn: "id",
			RightTable: "bi_reporting.gusto_payments_and_losses", RightColumn: "company_id",
		},
		{
			LeftTable: "bi.penalty_cases", LeftColumn: "id",
			RightTable: "bi.penalty_groups", RightColumn: "penalty_case_id",
		},
	}

	return NewSet(ruleList, joinList)
}

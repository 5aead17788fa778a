package schema

// Default returns the warehouse catalog. Table and column names mirror the
// production warehouse; column lists are trimmed to the fields the analyst is
// expected to surface, not the full ETL width.
func Default() *Catalog {
	return NewCatalog(
		TableSchema{
			Name:        "bi.companies",
			Description: "One row per customer company with onboarding, suspension, and filing details",
			Columns: []ColumnSpec{
				{Name: "id", Type: "BIGINT", Nullable: false},
				{Name: "name", Type: "VARCHAR", Nullable: false},
				{Name: "trade_name", Type: "VARCHAR", Nullable: true},
				{Name: "created_at", Type: "TIMESTAMP", Nullable: false},
				{Name: "joined_at", Type: "TIMESTAMP", Nullable: true},
				{Name: "is_active", Type: "BOOLEAN", Nullable: false},
				{Name: "approval_status", Type: "VARCHAR", Nullable: true},
				{Name: "finished_onboarding_at", Type: "TIMESTAMP", Nullable: true},
				{Name: "suspension_at", Type: "TIMESTAMP", Nullable: true},
				{Name: "is_soft_suspended", Type: "BOOLEAN", Nullable: true},
				{Name: "suspended_reason", Type: "VARCHAR", Nullable: true},
				{Name: "number_active_employees", Type: "INTEGER", Nullable: true},
				{Name: "number_active_contractors", Type: "INTEGER", Nullable: true},
				{Name: "segment_by_current_size", Type: "VARCHAR", Nullable: true},
				{Name: "filing_state", Type: "CHAR(2)", Nullable: true},
				{Name: "filing_city", Type: "VARCHAR", Nullable: true},
				{Name: "filing_zip", Type: "VARCHAR", Nullable: true},
				{Name: "sales_program", Type: "VARCHAR", Nullable: true},
				{Name: "user_provided_industry", Type: "VARCHAR", Nullable: true},
				{Name: "naics_code", Type: "VARCHAR", Nullable: true},
				{Name: "risk_state_description", Type: "VARCHAR", Nullable: true},
				{Name: "is_mrb", Type: "BOOLEAN", Nullable: true},
				{Name: "updated_at", Type: "TIMESTAMP", Nullable: false},
			},
		},
		TableSchema{
			Name:        "bi.risk_onboarding",
			Description: "Current onboarding risk state per company",
			Columns: []ColumnSpec{
				{Name: "company_id", Type: "BIGINT", Nullable: false},
				{Name: "risk_state", Type: "INTEGER", Nullable: false},
				{Name: "risk_state_description", Type: "VARCHAR", Nullable: true},
				{Name: "created_at", Type: "TIMESTAMP", Nullable: false},
				{Name: "updated_at", Type: "TIMESTAMP", Nullable: false},
			},
		},
		TableSchema{
			Name:        "bi.credit_delinquencies",
			Description: "Delinquent payment events and their recovery status",
			Columns: []ColumnSpec{
				{Name: "company_id", Type: "BIGINT", Nullable: false},
				{Name: "name", Type: "VARCHAR", Nullable: true},
				{Name: "payment_id", Type: "BIGINT", Nullable: false},
				{Name: "payment_type", Type: "VARCHAR", Nullable: true},
				{Name: "processing_state", Type: "VARCHAR", Nullable: true},
				{Name: "debit_date", Type: "DATE", Nullable: true},
				{Name: "debit_amount_attempted", Type: "NUMERIC", Nullable: true},
				{Name: "error_code", Type: "VARCHAR", Nullable: true},
				{Name: "past_due_date", Type: "DATE", Nullable: true},
				{Name: "is_credit_loss", Type: "BOOLEAN", Nullable: true},
				{Name: "recovery_needed_flag", Type: "BOOLEAN", Nullable: true},
				{Name: "recovered_amount", Type: "NUMERIC", Nullable: true},
				{Name: "pending_amount", Type: "NUMERIC", Nullable: true},
				{Name: "delinquent_status", Type: "VARCHAR", Nullable: true},
				{Name: "days_past_due", Type: "INTEGER", Nullable: true},
				{Name: "updated_at", Type: "TIMESTAMP", Nullable: false},
			},
		},
		TableSchema{
			Name:        "bi.gusto_employees",
			Description: "Internal employee directory",
			Columns: []ColumnSpec{
				{Name: "id", Type: "BIGINT", Nullable: false},
				{Name: "first_name", Type: "VARCHAR", Nullable: true},
				{Name: "last_name", Type: "VARCHAR", Nullable: true},
				{Name: "name", Type: "VARCHAR", Nullable: true},
				{Name: "email", Type: "VARCHAR", Nullable: true},
				{Name: "hired_at", Type: "DATE", Nullable: true},
				{Name: "terminated_at", Type: "DATE", Nullable: true},
				{Name: "department_name", Type: "VARCHAR", Nullable: true},
				{Name: "work_state", Type: "CHAR(2)", Nullable: true},
				{Name: "status", Type: "VARCHAR", Nullable: true},
				{Name: "worker_type", Type: "VARCHAR", Nullable: true},
				{Name: "job_title", Type: "VARCHAR", Nullable: true},
				{Name: "team", Type: "VARCHAR", Nullable: true},
			},
		},
		TableSchema{
			Name:        "bi.information_requests",
			Description: "Risk review information requests raised against companies",
			Columns: []ColumnSpec{
				{Name: "id", Type: "BIGINT", Nullable: false},
				{Name: "resource_id", Type: "BIGINT", Nullable: true},
				{Name: "resource_type", Type: "VARCHAR", Nullable: true},
				{Name: "submission_state", Type: "VARCHAR", Nullable: true},
				{Name: "situation", Type: "VARCHAR", Nullable: true},
				{Name: "queue", Type: "VARCHAR", Nullable: true},
				{Name: "company_id", Type: "BIGINT", Nullable: false},
				{Name: "requested_by_user_email", Type: "VARCHAR", Nullable: true},
				{Name: "created_at", Type: "TIMESTAMP", Nullable: false},
				{Name: "updated_at", Type: "TIMESTAMP", Nullable: false},
			},
		},
		TableSchema{
			Name:        "bi.penalty_cases",
			Description: "Agency penalty cases with amounts and resolution status",
			Columns: []ColumnSpec{
				{Name: "id", Type: "BIGINT", Nullable: false},
				{Name: "agency_name", Type: "VARCHAR", Nullable: true},
				{Name: "created_at", Type: "TIMESTAMP", Nullable: false},
				{Name: "year", Type: "INTEGER", Nullable: true},
				{Name: "quarter", Type: "INTEGER", Nullable: true},
				{Name: "title", Type: "VARCHAR", Nullable: true},
				{Name: "error_type", Type: "VARCHAR", Nullable: true},
				{Name: "error_origin", Type: "VARCHAR", Nullable: true},
				{Name: "total_penalty_amount", Type: "NUMERIC", Nullable: true},
				{Name: "total_penalty_paid", Type: "NUMERIC", Nullable: true},
				{Name: "total_interest_amount", Type: "NUMERIC", Nullable: true},
				{Name: "total_interest_paid", Type: "NUMERIC", Nullable: true},
				{Name: "status", Type: "VARCHAR", Nullable: true},
				{Name: "penalty_group_id", Type: "BIGINT", Nullable: true},
			},
		},
		TableSchema{
			Name:        "bi.penalty_groups",
			Description: "Penalty case groupings for batch payment",
			Columns: []ColumnSpec{
				{Name: "id", Type: "BIGINT", Nullable: false},
				{Name: "penalty_case_id", Type: "BIGINT", Nullable: false},
				{Name: "link", Type: "VARCHAR", Nullable: true},
				{Name: "sor_ticket_id", Type: "VARCHAR", Nullable: true},
				{Name: "pay_to", Type: "VARCHAR", Nullable: true},
				{Name: "batch", Type: "VARCHAR", Nullable: true},
				{Name: "approval_status", Type: "VARCHAR", Nullable: true},
				{Name: "created_at", Type: "TIMESTAMP", Nullable: false},
			},
		},
		TableSchema{
			Name:        "bi_reporting.gusto_payments_and_losses",
			Description: "Payment events with loss flags and recovery amounts; time queries use event_debit_date",
			Columns: []ColumnSpec{
				{Name: "calendar_date", Type: "DATE", Nullable: false},
				{Name: "event_type", Type: "VARCHAR", Nullable: true},
				{Name: "company_id", Type: "BIGINT", Nullable: false},
				{Name: "event_id", Type: "BIGINT", Nullable: false},
				{Name: "event_debit_date", Type: "DATE", Nullable: true},
				{Name: "bank_name", Type: "VARCHAR", Nullable: true},
				{Name: "company_age", Type: "INTEGER", Nullable: true},
				{Name: "sales_program", Type: "VARCHAR", Nullable: true},
				{Name: "funding_type", Type: "VARCHAR", Nullable: true},
				{Name: "processing_state", Type: "VARCHAR", Nullable: true},
				{Name: "error_code", Type: "VARCHAR", Nullable: true},
				{Name: "event_gross_amount", Type: "NUMERIC", Nullable: true},
				{Name: "ato_flag", Type: "BOOLEAN", Nullable: true},
				{Name: "credit_loss_flag", Type: "BOOLEAN", Nullable: true},
				{Name: "days_past_due", Type: "INTEGER", Nullable: true},
				{Name: "recovery_date", Type: "DATE", Nullable: true},
				{Name: "expected_debit_amount", Type: "NUMERIC", Nullable: true},
				{Name: "failed_payment_flag", Type: "BOOLEAN", Nullable: true},
				{Name: "failed_payment_amount", Type: "NUMERIC", Nullable: true},
				{Name: "recovered_amount", Type: "NUMERIC", Nullable: true},
				{Name: "net_loss_amount", Type: "NUMERIC", Nullable: true},
			},
		},
		TableSchema{
			Name:        "bi.nacha_entries",
			Description: "Individual ACH entries with direction and error codes",
			Columns: []ColumnSpec{
				{Name: "id", Type: "BIGINT", Nullable: false},
				{Name: "created_at_date", Type: "DATE", Nullable: false},
				{Name: "batch_check_date", Type: "DATE", Nullable: true},
				{Name: "amount", Type: "NUMERIC", Nullable: false},
				{Name: "company_id", Type: "BIGINT", Nullable: true},
				{Name: "employee_id", Type: "BIGINT", Nullable: true},
				{Name: "payroll_id", Type: "BIGINT", Nullable: true},
				{Name: "error_code", Type: "VARCHAR", Nullable: true},
				{Name: "is_debit", Type: "BOOLEAN", Nullable: true},
				{Name: "is_credit", Type: "BOOLEAN", Nullable: true},
				{Name: "entry_code", Type: "VARCHAR", Nullable: true},
				{Name: "transaction_type", Type: "VARCHAR", Nullable: true},
				{Name: "payment_direction", Type: "VARCHAR", Nullable: true},
				{Name: "effective_entry_date", Type: "DATE", Nullable: true},
				{Name: "processing_state", Type: "VARCHAR", Nullable: true},
			},
		},
		TableSchema{
			Name:        "zenpayroll_production_no_pii.customer_risk_tiers",
			Description: "Current combined, fraud, and credit risk tier per company",
			Columns: []ColumnSpec{
				{Name: "company_id", Type: "BIGINT", Nullable: false},
				{Name: "combined_risk_tier", Type: "VARCHAR", Nullable: true},
				{Name: "fraud_risk_tier", Type: "VARCHAR", Nullable: true},
				{Name: "credit_risk_tier", Type: "VARCHAR", Nullable: true},
				{Name: "updated_at", Type: "TIMESTAMP", Nullable: false},
			},
		},
		TableSchema{
			Name:        "zenpayroll_production_no_pii.risk_onboarding_ai_agent_decisions",
			Description: "Automated onboarding decisions with analyst model confidences",
			Columns: []ColumnSpec{
				{Name: "company_id", Type: "BIGINT", Nullable: false},
				{Name: "decision", Type: "VARCHAR", Nullable: true},
				{Name: "status", Type: "VARCHAR", Nullable: true},
				{Name: "trust_analyst_decision", Type: "VARCHAR", Nullable: true},
				{Name: "trust_analyst_confidence", Type: "NUMERIC", Nullable: true},
				{Name: "risk_analyst_decision", Type: "VARCHAR", Nullable: true},
				{Name: "risk_analyst_confidence", Type: "NUMERIC", Nullable: true},
				{Name: "created_at", Type: "TIMESTAMP", Nullable: false},
			},
		},
	)
}

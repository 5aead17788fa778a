package types

// Mode identifies the operating mode a query was produced under.
type Mode string

const (
	ModeProduction Mode = "production"
	ModeAIOnly     Mode = "ai_only"
	ModeDBOnly     Mode = "db_only"
	ModeDemo       Mode = "demo"
)

// Source identifies where a result set came from.
type Source string

const (
	SourceLive Source = "live"
	SourceDemo Source = "demo"
)

// GeneratedQuery is the output of the safety validator: the raw model text and
// the single bounded read-only statement derived from it.
type GeneratedQuery struct {
	RawSQL       string   `json:"raw_sql"`
	ValidatedSQL string   `json:"validated_sql"`
	Mode         Mode     `json:"mode"`
	Warnings     []string `json:"warnings,omitempty"`
	// LimitEnforced is true when the validator appended or clamped the
	// LIMIT clause; it feeds ExecutionResult.Truncated.
	LimitEnforced bool `json:"limit_enforced,omitempty"`
}

// Row maps column name to value for a single result row. Column order is
// carried separately on ExecutionResult because Go maps are unordered.
type Row map[string]any

// ExecutionResult is one executed query's rows plus provenance flags. Source
// is mandatory: demo rows must never be mistaken for live warehouse data.
type ExecutionResult struct {
	Columns   []string `json:"columns"`
	Rows      []Row    `json:"rows"`
	RowCount  int      `json:"row_count"`
	Truncated bool     `json:"truncated"`
	Source    Source   `json:"source"`
}

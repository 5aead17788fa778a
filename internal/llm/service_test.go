package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "sql fence",
			response: "```sql\nSELECT 1 FROM bi.companies\n```",
			want:     "SELECT 1 FROM bi.companies",
		},
		{
			name:     "bare fence",
			response: "```\nSELECT 1 FROM bi.companies\n```",
			want:     "SELECT 1 FROM bi.companies",
		},
		{
			name:     "fence with surrounding prose",
			response: "Here is the query:\n```sql\nSELECT id FROM bi.companies LIMIT 5\n```\nHope that helps!",
			want:     "SELECT id FROM bi.companies LIMIT 5",
		},
		{
			name:     "prose prefix without fence",
			response: "Sure, here you go: SELECT id FROM bi.companies LIMIT 5",
			want:     "SELECT id FROM bi.companies LIMIT 5",
		},
		{
			name:     "cte without fence",
			response: "The answer: WITH t AS (SELECT 1) SELECT * FROM t",
			want:     "WITH t AS (SELECT 1) SELECT * FROM t",
		},
		{
			name:     "already bare",
			response: "SELECT id FROM bi.companies LIMIT 5",
			want:     "SELECT id FROM bi.companies LIMIT 5",
		},
		{
			name:     "whitespace only trimmed",
			response: "  \n SELECT 1 \n ",
			want:     "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSQL(tt.response))
		})
	}
}

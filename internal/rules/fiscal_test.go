package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFiscalYearRange(t *testing.T) {
	start, end := FiscalYearRange(2024)

	assert.Equal(t, time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestFiscalYearRange_Contiguous(t *testing.T) {
	_, end2024 := FiscalYearRange(2024)
	start2025, _ := FiscalYearRange(2025)

	assert.Equal(t, end2024, start2025, "fiscal years must tile without gap or overlap")
}

func TestCurrentFiscalYear(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"april belongs to same-numbered year", time.Date(2025, time.April, 30, 23, 59, 59, 0, time.UTC), 2025},
		{"may 1 starts the next fiscal year", time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), 2026},
		{"december belongs to the next year", time.Date(2024, time.December, 15, 12, 0, 0, 0, time.UTC), 2025},
		{"january belongs to same-numbered year", time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentFiscalYear(tt.now))
		})
	}
}

func TestFiscalYearCondition(t *testing.T) {
	cond := FiscalYearCondition("event_debit_date", 2024)

	assert.Contains(t, cond, "event_debit_date >= '2023-05-01'")
	assert.Contains(t, cond, "event_debit_date < '2024-05-01'")
}

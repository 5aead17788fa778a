package rules

import (
	"fmt"
	"time"
)

// The fiscal year starts May 1. Fiscal year Y covers the half-open interval
// [May 1 of Y-1, May 1 of Y).
const fiscalYearStartMonth = time.May

// FiscalYearRange returns the inclusive start and exclusive end of the given
// fiscal year.
func FiscalYearRange(year int) (start, end time.Time) {
	start = time.Date(year-1, fiscalYearStartMonth, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, fiscalYearStartMonth, 1, 0, 0, 0, 0, time.UTC)

	return start, end
}

// CurrentFiscalYear resolves the fiscal year label containing now: dates on or
// after May 1 belong to the next calendar year's label.
func CurrentFiscalYear(now time.Time) int {
	if now.Month() >= fiscalYearStartMonth {
		return now.Year() + 1
	}

	return now.Year()
}

// FiscalYearCondition renders the date predicate for a fiscal year against the
// given date column, using the half-open interval form.
func FiscalYearCondition(column string, year int) string {
	start, end := FiscalYearRange(year)

	return fmt.Sprintf("%s >= '%s' AND %s < '%s'",
		column, start.Format("2006-01-02"), column, end.Format("2006-01-02"))
}

// Package demo produces deterministic, schema-shaped synthetic result sets
// for sessions without a reachable warehouse. Rows are fictitious:
// ExecutionResult.Source is always demo and must be surfaced to the caller.
package demo

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kyleking/dwh-analyst/internal/errors"
	"github.com/kyleking/dwh-analyst/internal/schema"
	"github.com/kyleking/dwh-analyst/internal/types"
)

// maxRows caps synthetic result size regardless of the statement's LIMIT.
const maxRows = 25

// anchor keeps synthesized dates stable across runs.
var anchor = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

// Provider synthesizes results shaped by the schema catalog.
type Provider struct {
	catalog *schema.Catalog
}

// NewProvider creates a demo data provider over the given catalog.
func NewProvider(catalog *schema.Catalog) *Provider {
	return &Provider{catalog: catalog}
}

// Run adapts Synthesize to the executor boundary.
func (p *Provider) Run(_ context.Context, validatedSQL string) (*types.ExecutionResult, error) {
	return p.Synthesize(validatedSQL)
}

// Ping always succeeds; demo data needs no connection.
func (*Provider) Ping(context.Context) error { return nil }

// Close is a no-op.
func (*Provider) Close() error { return nil }

var (
	fromRe   = regexp.MustCompile(`(?i)\bfrom\s+([a-zA-Z_][\w$]*(?:\.[a-zA-Z_][\w$]*){0,2})`)
	limitRe  = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)\b`)
	selectRe = regexp.MustCompile(`(?is)\bselect\s+(.*?)\s+from\b`)
	// Simple top-level equality predicates: col = 'literal' | true | false | number.
	eqFilterRe = regexp.MustCompile(`(?i)([a-zA-Z_][\w]*(?:\.[a-zA-Z_][\w]*)*)\s*=\s*('[^']*'|true|false|\d+(?:\.\d+)?)`)
)

// Synthesize builds a deterministic fictitious result for the statement.
// Equality filters on literals (e.g. filing_state = 'CA') are honored by
// echoing the literal into every generated row. Range, IN, and date
// predicates are illustrative only: rows are schema-shaped but not filtered.
func (p *Provider) Synthesize(validatedSQL string) (*types.ExecutionResult, error) {
	table, ok := p.targetTable(validatedSQL)
	if !ok {
		return nil, errors.New(errors.ErrTypeExecution,
			"could not determine target table for demo synthesis")
	}

	columns := p.selectedColumns(validatedSQL, table)
	filters := equalityFilters(validatedSQL)
	rowCount := requestedRows(validatedSQL)

	rows := make([]types.Row, 0, rowCount)

	for i := range rowCount {
		row := make(types.Row, len(columns))

		for _, col := range columns {
			if literal, found := filters[strings.ToLower(col)]; found {
				row[col] = literal
				continue
			}

			row[col] = synthesizeValue(table, col, i)
		}

		rows = append(rows, row)
	}

	return &types.ExecutionResult{
		Columns:   columns,
		Rows:      rows,
		RowCount:  len(rows),
		Truncated: false,
		Source:    types.SourceDemo,
	}, nil
}

// targetTable returns the schema for the first FROM table in the statement.
func (p *Provider) targetTable(sql string) (schema.TableSchema, bool) {
	for _, m := range fromRe.FindAllStringSubmatch(sql, -1) {
		if t, ok := p.catalog.Lookup(m[1]); ok {
			return t, true
		}
	}

	return schema.TableSchema{}, false
}

// selectedColumns parses the SELECT list, falling back to the table's full
// column list for * or unparseable projections.
func (p *Provider) selectedColumns(sql string, table schema.TableSchema) []string {
	m := selectRe.FindStringSubmatch(sql)
	if m == nil || strings.TrimSpace(m[1]) == "*" {
		return allColumns(table)
	}

	var columns []string

	for _, item := range splitTopLevel(m[1]) {
		name := projectionName(item)
		if name == "" {
			return allColumns(table)
		}

		columns = append(columns, name)
	}

	return columns
}

// splitTopLevel splits a SELECT list on commas outside parentheses, so
// function arguments stay with their call.
func splitTopLevel(list string) []string {
	var (
		items []string
		depth int
		start int
	)

	for i, r := range list {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				items = append(items, list[start:i])
				start = i + 1
			}
		}
	}

	items = append(items, list[start:])

	return items
}

func allColumns(table schema.TableSchema) []string {
	columns := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		columns = append(columns, c.Name)
	}

	return columns
}

// projectionName resolves one SELECT-list item to an output column name:
// the alias if present, else the bare column with any qualifier stripped.
func projectionName(item string) string {
	item = strings.TrimSpace(item)
	if item == "" {
		return ""
	}

	fields := strings.Fields(item)

	if len(fields) >= 2 {
		last := fields[len(fields)-1]
		if len(fields) >= 3 && strings.EqualFold(fields[len(fields)-2], "as") {
			return last
		}

		if isIdentifier(last) && !strings.ContainsAny(item, "()") {
			return last
		}
	}

	expr := fields[0]
	if strings.ContainsAny(expr, "()") {
		// Unaliased function call; use the function name.
		if idx := strings.Index(expr, "("); idx > 0 {
			return strings.ToLower(expr[:idx])
		}

		return ""
	}

	if idx := strings.LastIndex(expr, "."); idx >= 0 {
		expr = expr[idx+1:]
	}

	if !isIdentifier(expr) {
		return ""
	}

	return expr
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// equalityFilters extracts col = literal predicates keyed by bare column name.
func equalityFilters(sql string) map[string]any {
	whereIdx := strings.Index(strings.ToLower(sql), "where")
	if whereIdx < 0 {
		return nil
	}

	filters := make(map[string]any)

	for _, m := range eqFilterRe.FindAllStringSubmatch(sql[whereIdx:], -1) {
		col := m[1]
		if idx := strings.LastIndex(col, "."); idx >= 0 {
			col = col[idx+1:]
		}

		filters[strings.ToLower(col)] = parseLiteral(m[2])
	}

	return filters
}

func parseLiteral(lit string) any {
	switch {
	case strings.HasPrefix(lit, "'"):
		return strings.Trim(lit, "'")
	case strings.EqualFold(lit, "true"):
		return true
	case strings.EqualFold(lit, "false"):
		return false
	case strings.Contains(lit, "."):
		f, _ := strconv.ParseFloat(lit, 64)
		return f
	default:
		n, _ := strconv.ParseInt(lit, 10, 64)
		return n
	}
}

func requestedRows(sql string) int {
	matches := limitRe.FindAllStringSubmatch(sql, -1)
	if len(matches) == 0 {
		return maxRows
	}

	limit, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil || limit <= 0 || limit > maxRows {
		return maxRows
	}

	return limit
}

// synthesizeValue produces a stable fictitious value for (table, column, row).
func synthesizeValue(table schema.TableSchema, column string, idx int) any {
	seed := hashSeed(table.Name, column)
	colType := columnType(table, column)
	lower := strings.ToLower(column)

	switch {
	case strings.Contains(colType, "BOOL"):
		return (seed+uint64(idx))%2 == 0
	case strings.Contains(colType, "INT"):
		if lower == "id" || strings.HasSuffix(lower, "_id") {
			return int64(100000 + seed%9000 + uint64(idx))
		}

		return int64(seed%500 + uint64(idx))
	case strings.Contains(colType, "NUMERIC"):
		cents := int64(seed%5000000 + uint64(idx)*1137)
		return float64(cents) / 100
	case strings.Contains(colType, "DATE"), strings.Contains(colType, "TIMESTAMP"):
		d := anchor.AddDate(0, 0, -(idx + int(seed%90)))
		if strings.Contains(colType, "TIMESTAMP") {
			return d.Add(time.Duration(seed%86400) * time.Second)
		}

		return d
	case strings.Contains(colType, "CHAR(2)"):
		states := []string{"CA", "NY", "TX", "FL", "WA", "IL"}
		return states[(seed+uint64(idx))%uint64(len(states))]
	default:
		return syntheticText(lower, seed, idx)
	}
}

func syntheticText(column string, seed uint64, idx int) string {
	switch {
	case strings.Contains(column, "name"):
		return fmt.Sprintf("Demo %s %03d", titleWord(column), idx+1)
	case strings.Contains(column, "email"):
		return fmt.Sprintf("demo.user%03d@example.com", idx+1)
	case strings.Contains(column, "status") || strings.Contains(column, "state"):
		options := []string{"active", "pending", "resolved", "review"}
		return options[(seed+uint64(idx))%uint64(len(options))]
	case strings.Contains(column, "tier"):
		tiers := []string{"Tier A", "Tier B", "Tier C", "Tier D", "Tier E"}
		return tiers[(seed+uint64(idx))%uint64(len(tiers))]
	default:
		return fmt.Sprintf("%s_%03d", column, idx+1)
	}
}

func titleWord(column string) string {
	switch {
	case strings.Contains(column, "bank"):
		return "Bank"
	case strings.Contains(column, "agency"):
		return "Agency"
	case strings.Contains(column, "department"):
		return "Department"
	default:
		return "Company"
	}
}

func columnType(table schema.TableSchema, column string) string {
	for _, c := range table.Columns {
		if strings.EqualFold(c.Name, column) {
			return strings.ToUpper(c.Type)
		}
	}

	return "VARCHAR"
}

func hashSeed(parts ...string) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(strings.ToLower(p)))
	}

	return h.Sum64()
}

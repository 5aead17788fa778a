// Package validate gates every generated statement before it can reach a
// database connection. The validator fails closed: anything that is not
// provably a single bounded read-only SELECT is rejected with a typed error.
// Rule conformance is advisory only and lands in warnings, because safely
// rejecting a plausible query is worse than flagging it for review.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kyleking/dwh-analyst/internal/errors"
	"github.com/kyleking/dwh-analyst/internal/rules"
	"github.com/kyleking/dwh-analyst/internal/schema"
	"github.com/kyleking/dwh-analyst/internal/types"
)

// Validator checks candidate SQL against the catalog and rule set and
// enforces the result-size bound.
type Validator struct {
	catalog      *schema.Catalog
	rules        *rules.Set
	defaultLimit int
	maxLimit     int
}

// New creates a validator. defaultLimit is appended when a statement has no
// LIMIT; maxLimit is the administrative ceiling larger limits are clamped to.
func New(catalog *schema.Catalog, ruleSet *rules.Set, defaultLimit, maxLimit int) *Validator {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}

	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}

	return &Validator{
		catalog:      catalog,
		rules:        ruleSet,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

var (
	limitRe     = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)\b`)
	tableRefRe  = regexp.MustCompile(`(?i)\b(from|join)\s+([a-zA-Z_][\w$]*(?:\.[a-zA-Z_][\w$]*){0,2})(?:\s+(?:as\s+)?([a-zA-Z_]\w*))?`)
	extractRe   = regexp.MustCompile(`(?i)\b(extract|substring|trim)\s*\(\s*[\w\s]+\s+from\b`)
	joinCondRe  = regexp.MustCompile(`(?i)\b(?:on|where|and)\s+([\w]+(?:\.[\w]+)+)\s*=\s*([\w]+(?:\.[\w]+)+)`)
	commaRefRe  = regexp.MustCompile(`^\s*,\s*([a-zA-Z_][\w$]*(?:\.[a-zA-Z_][\w$]*){0,2})(?:\s+(?:as\s+)?([a-zA-Z_]\w*))?`)
	cteNameRe   = regexp.MustCompile(`(?i)\b([a-zA-Z_]\w*)\s+as\s*\(`)
	riskStateRe = regexp.MustCompile(`(?i)\brisk_state\s*(=|>|<|>=|<=|between|in)`)
)

// forbiddenVerbs are statement-leading keywords that can never be read-only.
var forbiddenVerbs = []string{
	"insert", "update", "delete", "drop", "alter", "create",
	"truncate", "grant", "revoke", "merge", "copy", "call", "exec", "execute",
}

// reservedWords that can follow FROM/JOIN without naming a table.
var reservedWords = map[string]bool{
	"select": true, "lateral": true, "unnest": true, "values": true,
}

// cteBodyVerbRe matches a forbidden verb heading the body of a CTE chain.
var cteBodyVerbRe = regexp.MustCompile(`(?i)\)\s*(` + strings.Join(forbiddenVerbs, "|") + `)\b`)

// Validate checks a raw model statement and returns the bounded read-only
// form. The question is used to look up which business rules apply for the
// advisory conformance check. Validate is idempotent: running it on its own
// output yields the same validated SQL with no cumulative changes.
func (v *Validator) Validate(rawSQL, question string) (*types.GeneratedQuery, error) {
	stmt := strings.TrimSpace(rawSQL)
	if stmt == "" {
		return nil, errors.New(errors.ErrTypeUnsafeStatement, "empty statement")
	}

	stmt, err := v.checkSingleStatement(stmt)
	if err != nil {
		return nil, err
	}

	if err := v.checkReadOnly(stmt); err != nil {
		return nil, err
	}

	if err := v.checkTables(stmt); err != nil {
		return nil, err
	}

	var warnings []string

	stmt, warnings, limitEnforced := v.enforceLimit(stmt, warnings)
	warnings = v.checkRuleConformance(stmt, question, warnings)
	warnings = v.checkJoinKeys(stmt, warnings)

	return &types.GeneratedQuery{
		RawSQL:        rawSQL,
		ValidatedSQL:  stmt,
		Warnings:      warnings,
		LimitEnforced: limitEnforced,
	}, nil
}

// checkSingleStatement rejects multi-statement input and strips the trailing
// semicolon so LIMIT handling and execution see a bare statement.
func (v *Validator) checkSingleStatement(stmt string) (string, error) {
	semicolons := countSemicolons(stmt)

	trimmed := strings.TrimRight(stmt, " \t\n\r")
	if strings.HasSuffix(trimmed, ";") {
		trimmed = strings.TrimRight(trimmed[:len(trimmed)-1], " \t\n\r")
		semicolons--
	}

	if semicolons > 0 {
		return "", errors.New(errors.ErrTypeUnsafeStatement,
			"multiple SQL statements are not allowed")
	}

	if trimmed == "" {
		return "", errors.New(errors.ErrTypeUnsafeStatement, "empty statement")
	}

	return trimmed, nil
}

// checkReadOnly requires the leading keyword to be SELECT, or WITH wrapping a
// SELECT, and rejects write and DDL verbs anywhere a statement could start.
func (v *Validator) checkReadOnly(stmt string) error {
	lower := strings.ToLower(stmt)

	if strings.Contains(lower, "--") || strings.Contains(lower, "/*") {
		return errors.New(errors.ErrTypeUnsafeStatement, "SQL comments are not allowed")
	}

	first := firstWord(lower)

	for _, verb := range forbiddenVerbs {
		if first == verb {
			return errors.Newf(errors.ErrTypeUnsafeStatement,
				"only read-only SELECT statements are allowed, got %s", strings.ToUpper(verb))
		}
	}

	switch first {
	case "select":
		return nil
	case "with":
		// A CTE chain is read-only iff its body statement is a SELECT.
		// DML verbs never appear as the body head of a permitted query.
		if m := cteBodyVerbRe.FindStringSubmatch(stmt); m != nil {
			return errors.Newf(errors.ErrTypeUnsafeStatement,
				"CTE wrapping a %s statement is not allowed", strings.ToUpper(m[1]))
		}

		return nil
	default:
		return errors.Newf(errors.ErrTypeUnsafeStatement,
			"statement must start with SELECT, got %q", strings.ToUpper(first))
	}
}

// enforceLimit appends the default LIMIT when absent and clamps an oversized
// LIMIT to the ceiling, recording the adjustment as a warning. Never rejects.
// Only a LIMIT at parenthesis depth zero bounds the outer result set; limits
// inside subqueries or CTE bodies are left alone and do not count.
func (v *Validator) enforceLimit(stmt string, warnings []string) (string, []string, bool) {
	last := outerLimitMatch(stmt)
	if last == nil {
		warnings = append(warnings,
			fmt.Sprintf("no LIMIT clause; appended LIMIT %d", v.defaultLimit))

		return fmt.Sprintf("%s\nLIMIT %d", stmt, v.defaultLimit), warnings, true
	}

	value, err := strconv.Atoi(stmt[last[2]:last[3]])
	if err != nil || value <= 0 {
		warnings = append(warnings,
			fmt.Sprintf("unparseable LIMIT; replaced with LIMIT %d", v.defaultLimit))

		return stmt[:last[0]] + fmt.Sprintf("LIMIT %d", v.defaultLimit) + stmt[last[1]:], warnings, true
	}

	if value > v.maxLimit {
		warnings = append(warnings,
			fmt.Sprintf("LIMIT %d exceeds ceiling; clamped to %d", value, v.maxLimit))

		return stmt[:last[0]] + fmt.Sprintf("LIMIT %d", v.maxLimit) + stmt[last[1]:], warnings, true
	}

	return stmt, warnings, false
}

// checkRuleConformance verifies that each applicable rule's condition
// fragment appears in the statement, in normalized form. Absence is advisory.
func (v *Validator) checkRuleConformance(stmt, question string, warnings []string) []string {
	normalized := normalizeSQL(stmt)

	for _, rule := range v.rules.Applicable(question) {
		if rule.ConditionTemplate == "" {
			continue
		}

		if !strings.Contains(normalized, normalizeSQL(rule.ConditionTemplate)) {
			warnings = append(warnings, fmt.Sprintf(
				"query may not conform to rule %q: expected %q", rule.Name, rule.ConditionTemplate))
		}
	}

	// The fraud risk-state list must appear verbatim whenever risk_state is
	// filtered on a fraud question; a range or equality is never equivalent.
	if m := riskStateRe.FindStringSubmatch(stmt); m != nil {
		op := strings.ToLower(m[1])
		if op != "in" && questionMentionsFraud(question) {
			warnings = append(warnings, fmt.Sprintf(
				"risk_state filtered with %q; fraud states require the exact IN list %s",
				op, rules.FraudRiskStateCondition))
		}
	}

	return warnings
}

// checkTables verifies every referenced table exists in the catalog.
func (v *Validator) checkTables(stmt string) error {
	for _, ref := range v.tableRefs(stmt) {
		if !v.catalog.Has(ref.name) {
			return errors.Newf(errors.ErrTypeUnknownTable,
				"unknown table %q; known tables: %s", ref.name,
				strings.Join(v.catalog.TableNames(), ", "))
		}
	}

	return nil
}

// checkJoinKeys flags joins between tables with a mandated key pair that use
// a different column pair.
func (v *Validator) checkJoinKeys(stmt string, warnings []string) []string {
	refs := v.tableRefs(stmt)
	if len(refs) < 2 {
		return warnings
	}

	// Resolve aliases (and bare table names) to catalog tables.
	aliasToTable := make(map[string]string)

	for _, ref := range refs {
		key := strings.ToLower(ref.name)
		aliasToTable[key] = key

		if short := shortName(key); short != key {
			aliasToTable[short] = key
		}

		if ref.alias != "" {
			aliasToTable[strings.ToLower(ref.alias)] = key
		}
	}

	for _, cond := range joinCondRe.FindAllStringSubmatch(stmt, -1) {
		leftTable, leftCol, ok1 := resolveColumn(cond[1], aliasToTable)
		rightTable, rightCol, ok2 := resolveColumn(cond[2], aliasToTable)

		if !ok1 || !ok2 {
			continue
		}

		for _, jr := range v.rules.Joins() {
			jlTable, jlCol := strings.ToLower(jr.LeftTable), strings.ToLower(jr.LeftColumn)
			jrTable, jrCol := strings.ToLower(jr.RightTable), strings.ToLower(jr.RightColumn)

			var matchesTables, matchesKeys bool

			switch {
			case leftTable == jlTable && rightTable == jrTable:
				matchesTables = true
				matchesKeys = leftCol == jlCol && rightCol == jrCol
			case leftTable == jrTable && rightTable == jlTable:
				matchesTables = true
				matchesKeys = leftCol == jrCol && rightCol == jlCol
			}

			if matchesTables && !matchesKeys {
				warnings = append(warnings, fmt.Sprintf(
					"join between %s and %s must use %s.%s = %s.%s",
					jr.LeftTable, jr.RightTable,
					jr.LeftTable, jr.LeftColumn, jr.RightTable, jr.RightColumn))
			}
		}
	}

	return warnings
}

// outerLimitMatch returns the submatch indexes of the last LIMIT clause at
// parenthesis depth zero, or nil when every LIMIT sits inside a subquery.
func outerLimitMatch(stmt string) []int {
	var last []int

	for _, m := range limitRe.FindAllStringSubmatchIndex(stmt, -1) {
		if parenDepthAt(stmt, m[0]) == 0 {
			last = m
		}
	}

	return last
}

// parenDepthAt reports the parenthesis nesting depth at byte offset pos,
// ignoring parentheses inside single-quoted literals.
func parenDepthAt(s string, pos int) int {
	depth := 0
	inString := false

	for i, r := range s {
		if i >= pos {
			break
		}

		switch {
		case r == '\'':
			inString = !inString
		case inString:
		case r == '(':
			depth++
		case r == ')':
			depth--
		}
	}

	return depth
}

type tableRef struct {
	name  string
	alias string
}

// tableRefs extracts table names following FROM and JOIN keywords, including
// comma-separated relation lists after FROM. FROM tokens inside
// EXTRACT/SUBSTRING/TRIM calls are masked out first, and derived tables
// (FROM followed by a subquery) are skipped.
func (v *Validator) tableRefs(stmt string) []tableRef {
	masked := extractRe.ReplaceAllStringFunc(stmt, func(m string) string {
		return strings.Repeat("x", len(m))
	})

	// Names bound by a CTE are statement-local, not catalog tables.
	cteNames := make(map[string]bool)

	if strings.EqualFold(firstWord(masked), "with") {
		for _, m := range cteNameRe.FindAllStringSubmatch(masked, -1) {
			cteNames[strings.ToLower(m[1])] = true
		}
	}

	var refs []tableRef

	for _, m := range tableRefRe.FindAllStringSubmatchIndex(masked, -1) {
		name := masked[m[4]:m[5]]

		alias := ""
		if m[6] >= 0 {
			alias = masked[m[6]:m[7]]
		}

		refs = appendRef(refs, name, alias, cteNames)

		// FROM may carry further comma-separated relations.
		if !strings.EqualFold(masked[m[2]:m[3]], "from") {
			continue
		}

		pos := m[1]

		for {
			sub := commaRefRe.FindStringSubmatchIndex(masked[pos:])
			if sub == nil {
				break
			}

			name := masked[pos+sub[2] : pos+sub[3]]

			alias := ""
			if sub[4] >= 0 {
				alias = masked[pos+sub[4] : pos+sub[5]]
			}

			refs = appendRef(refs, name, alias, cteNames)
			pos += sub[1]
		}
	}

	return refs
}

func appendRef(refs []tableRef, name, alias string, cteNames map[string]bool) []tableRef {
	if reservedWords[strings.ToLower(name)] || cteNames[strings.ToLower(name)] {
		return refs
	}

	if reservedWords[strings.ToLower(alias)] || isClauseKeyword(alias) {
		alias = ""
	}

	return append(refs, tableRef{name: name, alias: alias})
}

func isClauseKeyword(word string) bool {
	switch strings.ToLower(word) {
	case "on", "where", "join", "inner", "left", "right", "full", "cross",
		"group", "order", "limit", "having", "union", "using":
		return true
	default:
		return false
	}
}

func resolveColumn(qualified string, aliasToTable map[string]string) (table, column string, ok bool) {
	idx := strings.LastIndex(qualified, ".")
	if idx < 0 {
		return "", "", false
	}

	qualifier := strings.ToLower(qualified[:idx])
	column = strings.ToLower(qualified[idx+1:])

	table, ok = aliasToTable[qualifier]

	return table, column, ok
}

// shortName drops the schema qualifier: "bi.companies" -> "companies".
func shortName(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}

	return name
}

// countSemicolons counts semicolons outside single-quoted literals.
func countSemicolons(stmt string) int {
	count := 0
	inString := false

	for _, r := range stmt {
		switch {
		case r == '\'':
			inString = !inString
		case r == ';' && !inString:
			count++
		}
	}

	return count
}

// normalizeSQL lowercases and collapses whitespace, including around commas
// and parentheses, so literal fragment checks tolerate formatting drift.
func normalizeSQL(s string) string {
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, ", ", ",")
	s = strings.ReplaceAll(s, " ,", ",")
	s = strings.ReplaceAll(s, "( ", "(")
	s = strings.ReplaceAll(s, " )", ")")
	s = strings.ReplaceAll(s, " (", "(")

	return s
}

func questionMentionsFraud(question string) bool {
	return strings.Contains(strings.ToLower(question), "fraud")
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}

	return strings.Trim(fields[0], "(")
}

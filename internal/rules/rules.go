// Package rules codifies the warehouse business rules the analyst must apply
// when generating SQL. Rules are data, not code: flag semantics, enumerations,
// and mandated join keys live in the default rule set so they can be corrected
// without touching the matching or validation logic.
package rules

import (
	"strings"
)

// Rule binds a set of question triggers to an instruction and, optionally, an
// exact SQL fragment the generated statement is expected to contain.
type Rule struct {
	Name string `json:"name"`
	// Triggers are keywords or phrases matched against the question,
	// case-insensitive. A multi-word trigger matches as a substring; a
	// single word matches whole question tokens only.
	Triggers []string `json:"triggers"`
	// Instruction is the prompt-facing wording of the rule.
	Instruction string `json:"instruction"`
	// ConditionTemplate is the literal fragment the validator spot-checks
	// for. Empty for rules that constrain style rather than predicates.
	ConditionTemplate string `json:"condition_template,omitempty"`
	// Tables lists the catalog tables the rule constrains.
	Tables []string `json:"tables,omitempty"`
}

// Matches reports whether the rule applies to the question.
func (r Rule) Matches(question string) bool {
	q := strings.ToLower(question)
	tokens := tokenize(q)

	for _, trigger := range r.Triggers {
		t := strings.ToLower(trigger)
		if strings.ContainsRune(t, ' ') {
			if strings.Contains(q, t) {
				return true
			}

			continue
		}

		if _, ok := tokens[t]; ok {
			return true
		}
	}

	return false
}

// JoinRule mandates the key pair for joins between two named tables. The
// validator flags a join between these tables on any other column pair.
type JoinRule struct {
	LeftTable   string `json:"left_table"`
	LeftColumn  string `json:"left_column"`
	RightTable  string `json:"right_table"`
	RightColumn string `json:"right_column"`
}

// Set is an ordered collection of business rules plus mandated join keys.
type Set struct {
	rules []Rule
	joins []JoinRule
}

// NewSet builds a rule set. Rule order is preserved; Applicable returns
// matches in this order so prompt rendering is deterministic.
func NewSet(rules []Rule, joins []JoinRule) *Set {
	return &Set{rules: rules, joins: joins}
}

// Applicable returns every rule whose triggers match the question. Rules are
// never mutually exclusive; all matches are included.
func (s *Set) Applicable(question string) []Rule {
	var matched []Rule

	for _, r := range s.rules {
		if r.Matches(question) {
			matched = append(matched, r)
		}
	}

	return matched
}

// All returns every rule in order.
func (s *Set) All() []Rule {
	return s.rules
}

// Joins returns the mandated join-key pairs.
func (s *Set) Joins() []JoinRule {
	return s.joins
}

// ReferencedTables returns the distinct table names the rule set constrains,
// for the startup consistency check against the catalog.
func (s *Set) ReferencedTables() []string {
	seen := make(map[string]bool)

	var names []string

	add := func(name string) {
		key := strings.ToLower(name)
		if !seen[key] {
			seen[key] = true

			names = append(names, name)
		}
	}

	for _, r := range s.rules {
		for _, t := range r.Tables {
			add(t)
		}
	}

	for _, j := range s.joins {
		add(j.LeftTable)
		add(j.RightTable)
	}

	return names
}

func tokenize(s string) map[string]struct{} {
	tokens := make(map[string]struct{})

	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '_')
	}) {
		tokens[tok] = struct{}{}
	}

	return tokens
}

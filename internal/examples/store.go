// Package examples holds the curated question/SQL pairs used for few-shot
// grounding. Examples are validated against the live warehouse before being
// added here and are never edited automatically.
package examples

import (
	"sort"
	"strings"
)

// Example is one validated natural-language question and its correct SQL.
type Example struct {
	Question string `json:"question"`
	SQL      string `json:"sql"`
}

// Store is an ordered, immutable collection of validated examples.
type Store struct {
	examples []Example
}

// NewStore builds a store. Order is addition order and acts as the version.
func NewStore(examples []Example) *Store {
	return &Store{examples: examples}
}

// All returns every example in addition order.
func (s *Store) All() []Example {
	return s.examples
}

// Len returns the number of stored examples.
func (s *Store) Len() int {
	return len(s.examples)
}

// Retrieve returns up to k examples ranked by token overlap with the
// question. Ranking is deterministic: ties resolve by addition order, so a
// fixed store and fixed k always yield the same selection for a question.
// k <= 0 returns all examples in addition order.
func (s *Store) Retrieve(question string, k int) []Example {
	if k <= 0 || k >= len(s.examples) {
		result := make([]Example, len(s.examples))
		copy(result, s.examples)

		return result
	}

	qTokens := tokenize(question)

	type scored struct {
		idx   int
		score int
	}

	ranked := make([]scored, len(s.examples))
	for i, ex := range s.examples {
		ranked[i] = scored{idx: i, score: overlap(qTokens, tokenize(ex.Question))}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].idx < ranked[j].idx
	})

	result := make([]Example, 0, k)
	for _, r := range ranked[:k] {
		result = append(result, s.examples[r.idx])
	}

	return result
}

func tokenize(s string) map[string]struct{} {
	tokens := make(map[string]struct{})

	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,;:?!'\"()$")
		if len(tok) > 2 {
			tokens[tok] = struct{}{}
		}
	}

	return tokens
}

func overlap(a, b map[string]struct{}) int {
	count := 0

	for tok := range a {
		if _, ok := b[tok]; ok {
			count++
		}
	}

	return count
}

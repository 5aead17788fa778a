// Package prompt assembles the generation request sent to the language model.
// Section order is part of the contract: rules are rendered before examples so
// a stale example that conflicts with a rule never gets the last word.
package prompt

import (
	"fmt"
	"strings"

	"github.com/kyleking/dwh-analyst/internal/errors"
	"github.com/kyleking/dwh-analyst/internal/examples"
	"github.com/kyleking/dwh-analyst/internal/rules"
	"github.com/kyleking/dwh-analyst/internal/schema"
)

const systemFraming = `You are a SQL expert for a payroll company's data warehouse. Convert the user's
natural language request into a single Redshift SQL query.

Constraints:
- Generate exactly one read-only SELECT statement. Never generate INSERT, UPDATE,
  DELETE, DROP, ALTER, or any other write or DDL statement.
- Use ONLY the tables and columns listed below, with schema-qualified table names.
- End the query with LIMIT 100 to bound the result size.
- Do not invent literal values (IDs, names) that are not in the user's request.
  Wildcards, booleans, date ranges, and literals copied from the request are fine.
- Respond with the SQL only, no commentary.`

// Builder composes schema, business rules, and retrieved examples with a user
// question into one generation request.
type Builder struct {
	catalog      *schema.Catalog
	rules        *rules.Set
	examples     *examples.Store
	exampleCount int
}

// New builds a prompt builder and verifies that every table the rule set
// references exists in the catalog. A rule naming an unknown table is a
// deployment bug, caught here at startup rather than per request.
func New(catalog *schema.Catalog, ruleSet *rules.Set, store *examples.Store, exampleCount int) (*Builder, error) {
	for _, table := range ruleSet.ReferencedTables() {
		if !catalog.Has(table) {
			return nil, errors.Newf(errors.ErrTypeSchemaMissing,
				"business rule references table %q which is not in the schema catalog", table)
		}
	}

	return &Builder{
		catalog:      catalog,
		rules:        ruleSet,
		examples:     store,
		exampleCount: exampleCount,
	}, nil
}

// Build produces the full prompt for a question. Sections appear in a fixed
// order: framing, schema, matched rules, retrieved examples, question.
func (b *Builder) Build(question string) string {
	var sb strings.Builder

	sb.WriteString(systemFraming)
	sb.WriteString("\n\nAvailable tables and columns:\n")
	sb.WriteString(b.formatSchema())

	if matched := b.rules.Applicable(question); len(matched) > 0 {
		sb.WriteString("\nRules that apply to this request:\n")

		for i, rule := range matched {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, rule.Instruction)
		}
	}

	if retrieved := b.examples.Retrieve(question, b.exampleCount); len(retrieved) > 0 {
		sb.WriteString("\nExample validated queries (learn from these patterns):\n\n")

		for i, ex := range retrieved {
			fmt.Fprintf(&sb, "%d. Query: %q\n", i+1, ex.Question)
			fmt.Fprintf(&sb, "   SQL: %s\n\n", ex.SQL)
		}

		sb.WriteString("Learn from these patterns: date ranges, proper joins, boolean flags, risk states, tier formats.\n")
	}

	sb.WriteString("\nUser request: ")
	sb.WriteString(question)
	sb.WriteString("\n\nGenerate SQL:")

	return sb.String()
}

// Rules exposes the builder's rule set so the validator can share it.
func (b *Builder) Rules() *rules.Set {
	return b.rules
}

func (b *Builder) formatSchema() string {
	var sb strings.Builder

	for _, table := range b.catalog.Describe() {
		fmt.Fprintf(&sb, "Table: %s", table.Name)

		if table.Description != "" {
			fmt.Fprintf(&sb, " -- %s", table.Description)
		}

		sb.WriteString("\nColumns:\n")

		for _, col := range table.Columns {
			fmt.Fprintf(&sb, "  - %s (%s)", col.Name, col.Type)

			if !col.Nullable {
				sb.WriteString(" NOT NULL")
			}

			sb.WriteString("\n")
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

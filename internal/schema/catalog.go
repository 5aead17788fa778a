// Package schema holds the static description of the warehouse tables the
// analyst is allowed to query. The catalog is built once at startup and is
// read-only afterwards, so concurrent sessions can share it without locking.
package schema

import (
	"sort"
	"strings"
)

// ColumnSpec describes one column of a warehouse relation.
type ColumnSpec struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// TableSchema describes one warehouse relation. Name is schema-qualified
// (e.g. "bi.companies") because the warehouse spans several schemas.
type TableSchema struct {
	Name        string       `json:"name"`
	Columns     []ColumnSpec `json:"columns"`
	Description string       `json:"description,omitempty"`
}

// HasColumn reports whether the table has a column with the given name.
func (t TableSchema) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}

	return false
}

// Catalog is the set of tables available to query generation.
type Catalog struct {
	tables map[string]TableSchema
	order  []string
}

// NewCatalog builds a catalog from the given tables, preserving their order.
func NewCatalog(tables ...TableSchema) *Catalog {
	c := &Catalog{tables: make(map[string]TableSchema, len(tables))}

	for _, t := range tables {
		key := strings.ToLower(t.Name)
		if _, exists := c.tables[key]; exists {
			continue
		}

		c.tables[key] = t
		c.order = append(c.order, key)
	}

	return c
}

// Describe returns all tables in a fixed, deterministic order.
func (c *Catalog) Describe() []TableSchema {
	result := make([]TableSchema, 0, len(c.order))
	for _, key := range c.order {
		result = append(result, c.tables[key])
	}

	return result
}

// Lookup returns the schema for a table name, case-insensitive.
func (c *Catalog) Lookup(name string) (TableSchema, bool) {
	t, ok := c.tables[strings.ToLower(name)]
	return t, ok
}

// Has reports whether the catalog contains the named table.
func (c *Catalog) Has(name string) bool {
	_, ok := c.tables[strings.ToLower(name)]
	return ok
}

// TableNames returns the sorted list of table names, for error messages.
func (c *Catalog) TableNames() []string {
	names := make([]string, 0, len(c.order))
	for _, key := range c.order {
		names = append(names, c.tables[key].Name)
	}

	sort.Strings(names)

	return names
}

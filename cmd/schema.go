package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kyleking/dwh-analyst/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [table]",
	Short: "List the warehouse tables available to query",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	catalog := schema.Default()

	if len(args) == 1 {
		table, ok := catalog.Lookup(args[0])
		if !ok {
			cmd.Printf("Unknown table %q. Known tables:\n", args[0])

			for _, name := range catalog.TableNames() {
				cmd.Printf("  %s\n", name)
			}

			return nil
		}

		printTable(cmd, table)

		return nil
	}

	for _, table := range catalog.Describe() {
		cmd.Printf("%s (%d columns)\n", table.Name, len(table.Columns))

		if table.Description != "" {
			cmd.Printf("    %s\n", table.Description)
		}
	}

	cmd.Println("\nUse 'dwh-analyst schema <table>' for column details.")

	return nil
}

func printTable(cmd *cobra.Command, table schema.TableSchema) {
	cmd.Printf("Table: %s\n", table.Name)

	if table.Description != "" {
		cmd.Printf("%s\n", table.Description)
	}

	cmd.Println("Columns:")

	for _, col := range table.Columns {
		nullable := ""
		if !col.Nullable {
			nullable = " NOT NULL"
		}

		cmd.Printf("  %-40s %s%s\n", col.Name, col.Type, nullable)
	}
}

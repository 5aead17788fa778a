package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kyleking/dwh-analyst/internal/examples"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List the validated example queries used for few-shot grounding",
	RunE:  runExamples,
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}

func runExamples(cmd *cobra.Command, _ []string) error {
	for i, ex := range examples.Default().All() {
		cmd.Printf("%d. %s\n", i+1, ex.Question)
		cmd.Printf("%s\n\n", ex.SQL)
	}

	return nil
}

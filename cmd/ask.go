package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/kyleking/dwh-analyst/internal/analyst"
	"github.com/kyleking/dwh-analyst/internal/formatter"
	"github.com/kyleking/dwh-analyst/internal/types"
)

var (
	askShowSQL bool
	askCSVPath string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question and get SQL plus results",
	Long: `Ask a natural-language question about the warehouse. The question is turned
into a single bounded SELECT statement, validated for safety, and executed
against the live warehouse or (in degraded modes) a synthetic demo data set.

Examples:
  dwh-analyst ask "Show me fraud companies created in the last 30 days"
  dwh-analyst ask --show-sql "Get credit loss transactions from last month"
  dwh-analyst ask --csv out.csv "Show companies in California"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowSQL, "show-sql", false, "Print the validated SQL before the results")
	askCmd.Flags().StringVar(&askCSVPath, "csv", "", "Write results to the given CSV file")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	question := strings.TrimSpace(args[0])
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	session, err := analyst.NewSession(cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " generating query..."
	sp.Start()

	answer, err := session.Ask(ctx, question)

	sp.Stop()

	if err != nil {
		return err
	}

	printAnswer(cmd, answer)

	if askCSVPath != "" {
		if err := writeCSV(askCSVPath, answer); err != nil {
			return err
		}

		cmd.Printf("Results written to %s\n", askCSVPath)
	}

	return nil
}

func printAnswer(cmd *cobra.Command, answer *analyst.Answer) {
	f := formatter.NewFormatter()

	if answer.Query.Mode != types.ModeProduction {
		cmd.Printf("Mode: %s\n", answer.Query.Mode)
	}

	if askShowSQL {
		cmd.Printf("\n%s\n\n", answer.Query.ValidatedSQL)
	}

	for _, warning := range answer.Query.Warnings {
		cmd.Printf("Warning: %s\n", warning)
	}

	cmd.Print(f.FormatTable(answer.Result))

	if answer.Cached {
		cmd.Println("(cached result)")
	}

	if answer.Summary != "" {
		cmd.Printf("\n%s\n", answer.Summary)
	}
}

func writeCSV(path string, answer *analyst.Answer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	return formatter.NewFormatter().WriteCSV(file, answer.Result)
}

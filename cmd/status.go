package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kyleking/dwh-analyst/internal/analyst"
)

var statusRetry bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collaborator availability and the operating mode",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusRetry, "retry", false, "Re-probe the warehouse and model connections")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	session, err := analyst.NewSession(cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	if statusRetry {
		cmd.Printf("Re-probing connections...\n")
		session.RetryConnection(ctx)
	}

	status := session.Status(ctx)

	cmd.Printf("Operating mode:        %s\n", status.Mode)
	cmd.Printf("Model configured:      %s\n", yesNo(status.ModelConfigured))
	cmd.Printf("Warehouse configured:  %s\n", yesNo(status.WarehouseConfigured))
	cmd.Printf("Warehouse accessible:  %s\n", yesNo(status.WarehouseAccessible))
	cmd.Printf("Cached results:        %d (hits %d, misses %d)\n",
		status.Cache.Entries, status.Cache.Hits, status.Cache.Misses)

	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

package main

import (
	"github.com/spf13/cobra"

	"magang-intel/internal/shared/config"
	"magang-intel/internal/statuscheck"
)

var statusCmd = &cobra.Command{
	Use:   "status <email>",
	Short: "Look up application status for an email",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client := statuscheck.NewClient(cfg.StatusAPIBase, cfg.StatusAPIPrefix, cfg.StatusAPISignature, cfg.StatusTimeout)
	apps, err := client.Lookup(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), map[string]any{"applications": apps, "count": len(apps)})
}

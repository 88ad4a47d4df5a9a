package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/schedule-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "schedule-cli",
	Short: "Master schedule structure recovery",
	Long:  "Reads master schedule exports, recovers per-project headers and dated task schedules, classifies tasks into construction phases, and keeps a history of parse runs.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

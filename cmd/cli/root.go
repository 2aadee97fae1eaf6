// Package cli implements the cadetops-admin command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/cadetops/internal/config"
	"github.com/turtacn/cadetops/internal/infrastructure/monitoring"
	"github.com/turtacn/cadetops/pkg/logger"
)

// NewRootCmd builds the `cadetops-admin` command tree.
// NewRootCmd 构建 `cadetops-admin` 命令树。
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cadetops-admin",
		Short: "A CLI tool for running and administering cadetops analytics.",
		Long: `cadetops-admin runs analytics passes over snapshot files offline,
prints and validates analytics policies, and manages the snapshot database.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level written to stderr")

	rootCmd.AddCommand(newAnalyzeCmd(), newPolicyCmd(), newDBCmd())
	return rootCmd
}

// Execute is the main entry point for the CLI application.
// If an error occurs, it prints the error and exits.
// Execute 是 CLI 应用程序的主入口点。
// 如果发生错误，它会打印错误并退出。
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandLogger writes console logs to stderr so stdout stays machine readable.
func commandLogger(cmd *cobra.Command) logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	log, err := monitoring.NewZapLogger(&config.LogConfig{Level: level, Format: "console", OutputPath: "stderr"})
	if err != nil {
		return logger.NewNoopLogger()
	}
	return log
}

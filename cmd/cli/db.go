package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/turtacn/cadetops/internal/config"
	"github.com/turtacn/cadetops/internal/infrastructure/persistence/postgres"
)

// newDBCmd represents the snapshot database commands. Connection settings come from the service configuration.
// newDBCmd 代表快照数据库相关命令，连接参数来自服务配置。
func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Commands for managing the snapshot database",
	}
	cmd.PersistentFlags().String("config", "", "Path to the service config file")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the snapshot tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := postgres.AutoMigrate(cmd.Context(), conn.DB()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "snapshot tables are up to date")
			return err
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current database snapshot to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			conn, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			snap, err := postgres.NewSnapshotRepository(conn.DB(), commandLogger(cmd)).LoadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			return os.WriteFile(out, data, 0o600)
		},
	}
	exportCmd.Flags().String("out", "", "Output file (stdout when empty)")

	cmd.AddCommand(migrateCmd, exportCmd)
	return cmd
}

func openDatabase(cmd *cobra.Command) (*postgres.DBConnection, error) {
	path, _ := cmd.Flags().GetString("config")
	log := commandLogger(cmd)

	cfg, err := config.Load(log, path)
	if err != nil {
		return nil, err
	}
	if !cfg.Database.Enabled {
		return nil, fmt.Errorf("database is not enabled in the configuration")
	}
	return postgres.NewDBConnection(cmd.Context(), &cfg.Database, log)
}

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/turtacn/cadetops/internal/application/service"
	"github.com/turtacn/cadetops/internal/domain/models"
	domainservice "github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/internal/infrastructure/policy"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a full analytics pass over a snapshot file",
		Long: `Reads a JSON snapshot (cadets, staff, schedule, inventory), runs every analytics
component over it and prints the resulting report as JSON.`,
		RunE: runAnalyze,
	}
	cmd.Flags().String("snapshot", "", "Path to the snapshot JSON file (required)")
	cmd.Flags().String("policy", "", "Path to a YAML policy file overlaid on the defaults")
	cmd.Flags().String("at", "", "Evaluate as of this RFC 3339 time instead of the snapshot's capturedAt")
	cmd.Flags().Int("workers", 0, "Per-record parallelism (0 uses the default)")
	cmd.Flags().Bool("current-week-only", false, "Count only shifts in the ISO week of the snapshot")
	cmd.Flags().Bool("compact", false, "Print compact JSON")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	policyPath, _ := cmd.Flags().GetString("policy")
	at, _ := cmd.Flags().GetString("at")
	workers, _ := cmd.Flags().GetInt("workers")
	currentWeekOnly, _ := cmd.Flags().GetBool("current-week-only")
	compact, _ := cmd.Flags().GetBool("compact")

	snap, err := readSnapshot(snapshotPath)
	if err != nil {
		return err
	}
	if at != "" {
		ts, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
		snap.CapturedAt = ts
	}

	base := domainservice.DefaultPolicy()
	if currentWeekOnly {
		base.Workload.CurrentWeekOnly = true
	}
	active, err := effectivePolicy(policyPath, base)
	if err != nil {
		return err
	}

	log := commandLogger(cmd)
	svc := service.NewAnalyticsAppService(nil, domainservice.NewStaticPolicyProvider(active), nil, log,
		service.AnalyticsOptions{Workers: workers})

	report, err := svc.AnalyzeSnapshot(cmd.Context(), snap)
	if err != nil {
		return err
	}
	return writeJSON(cmd, report, compact)
}

func readSnapshot(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	return &snap, nil
}

func effectivePolicy(path string, base domainservice.AnalyticsPolicy) (domainservice.AnalyticsPolicy, error) {
	if path == "" {
		return base, nil
	}
	return policy.LoadPolicyFile(path, base)
}

func writeJSON(cmd *cobra.Command, v interface{}, compact bool) error {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

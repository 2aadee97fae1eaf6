package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	domainservice "github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/internal/infrastructure/policy"
)

// newPolicyCmd represents the root command for analytics policy operations.
// newPolicyCmd 代表所有与分析策略相关的操作的根命令。
func newPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Commands for inspecting analytics policies",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective analytics policy as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("policy")
			active, err := effectivePolicy(path, domainservice.DefaultPolicy())
			if err != nil {
				return err
			}
			data, err := policy.MarshalPolicy(active)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	showCmd.Flags().String("policy", "", "Path to a YAML policy file overlaid on the defaults")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a policy file without applying it",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("policy")
			if _, err := policy.LoadPolicyFile(path, domainservice.DefaultPolicy()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			return err
		},
	}
	validateCmd.Flags().String("policy", "", "Path to the YAML policy file (required)")
	_ = validateCmd.MarkFlagRequired("policy")

	cmd.AddCommand(showCmd, validateCmd)
	return cmd
}

package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newConfigCommand(lookup env) *cobra.Command {
	var (
		flags      serveFlags
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration serve would run with, after applying the
config file, PRINTMOCK_* environment variables and flags. Accepts the
same flags as serve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), &flags, lookup)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (default: YAML)")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(s *rootState) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration every step would run with, after merging flags,
PYDOCKERIZE_* environment variables, the config file and the env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.resolve()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "text":
				cfg.PrintSummary(out)
				return nil
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(cfg.Summary()); err != nil {
					return err
				}
				return enc.Close()
			case "toml":
				return toml.NewEncoder(out).Encode(cfg.Summary())
			default:
				return fmt.Errorf("unknown format %q (want text, yaml or toml)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, yaml or toml")
	return cmd
}

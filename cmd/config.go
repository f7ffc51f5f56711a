package cmd

import (
	"errors"
	"fmt"

	"crucible/internal/config"
	"crucible/internal/formatting"
	"crucible/internal/resolver"
	"crucible/internal/system"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configStrict       bool
	configPollInterval int
	configMaxPendTime  int
	configDetectModule string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and validate the site configuration",
}

func resolverOptions() resolver.Options {
	return resolver.Options{
		Path:     rootConfigPath,
		Hostname: rootHostname,
		Strict:   configStrict,
		Overrides: config.Overrides{
			PollInterval: configPollInterval,
			MaxPendTime:  configMaxPendTime,
		},
	}
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print the configuration resolved for the current host",
	Long: `Print the full validated configuration as YAML, with the system active
for the current host marked in a leading comment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := resolver.Load(resolverOptions())
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(resolved.Config)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# active system: %s (host %s)\n%s", resolved.System.Name, resolved.Hostname, data)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration against the schema",
	Long: `Validate the configuration and report every schema violation, each with
the path of the offending field. Host matching is reported but a host
outside every system does not fail validation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolver.LoadConfig(resolverOptions())
		if err != nil {
			var verrs config.ValidationErrors
			if errors.As(err, &verrs) {
				for _, ve := range verrs {
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n", ve.Error())
				}
				return fmt.Errorf("configuration has %d validation error(s): %w", len(verrs), verrs)
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")

		hostname := rootHostname
		if hostname == "" {
			if hostname, err = system.CurrentHostname(); err != nil {
				return err
			}
		}
		active, err := system.SelectSystem(cfg.Systems, hostname)
		if err != nil {
			// Diagnostic only here; build/run operations treat this as fatal.
			fmt.Fprintf(cmd.OutOrStdout(), "warning: %v\n", err)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "active system: %s\n", active.Name)
		return nil
	},
}

var configSystemsCmd = &cobra.Command{
	Use:   "systems",
	Short: "List all configured systems",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolver.LoadConfig(resolverOptions())
		if err != nil {
			return err
		}

		active := activeSystemName(cfg, rootHostname, system.CurrentHostname)

		formatting.SystemsTable(cmd.OutOrStdout(), cfg.Systems, active)
		return nil
	},
}

// activeSystemName returns the name of the system matching the host, or ""
// when the hostname cannot be determined or no system matches.
func activeSystemName(cfg *config.Config, hostname string, current func() (string, error)) string {
	if hostname == "" {
		h, err := current()
		if err != nil {
			return ""
		}
		hostname = h
	}
	sys, err := system.SelectSystem(cfg.Systems, hostname)
	if err != nil {
		return ""
	}
	return sys.Name
}

var configExecutorsCmd = &cobra.Command{
	Use:   "executors",
	Short: "List the executors of the active system",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := resolver.Load(resolverOptions())
		if err != nil {
			return err
		}
		formatting.ExecutorsTable(cmd.OutOrStdout(), resolved.Executors.All())
		return nil
	},
}

var configCompilersCmd = &cobra.Command{
	Use:   "compilers",
	Short: "List the compilers of the active system",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := resolver.Load(resolverOptions())
		if err != nil {
			return err
		}

		if configDetectModule != "" {
			family, ok := resolved.Compilers.DetectFamily(configDetectModule)
			if !ok {
				return fmt.Errorf("module %q matched no compiler family", configDetectModule)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", family)
			return nil
		}

		formatting.CompilersTable(cmd.OutOrStdout(), resolved.Compilers.All())
		return nil
	},
}

func init() {
	configValidateCmd.Flags().BoolVar(&configStrict, "strict", false, "reject configuration keys outside the schema")

	configExecutorsCmd.Flags().IntVar(&configPollInterval, "poll-interval", 0, "override pollinterval for all batch executors")
	configExecutorsCmd.Flags().IntVar(&configMaxPendTime, "max-pend-time", 0, "override max_pend_time for all batch executors")

	configCompilersCmd.Flags().StringVar(&configDetectModule, "detect", "", "classify a module name against the compiler find patterns")

	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configSystemsCmd)
	configCmd.AddCommand(configExecutorsCmd)
	configCmd.AddCommand(configCompilersCmd)
	rootCmd.AddCommand(configCmd)
}

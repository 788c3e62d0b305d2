package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fixcpp/fixcpp/internal/config"
	"github.com/fixcpp/fixcpp/internal/log"
	"github.com/fixcpp/fixcpp/internal/output"
	"github.com/fixcpp/fixcpp/internal/ui/prompt"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage fixcpp configuration.

Config file: ~/.config/fixcpp/config.toml (override with --config or
FIXCPP_CONFIG). FIXCPP_TOOL_PATH and FIXCPP_PROJECT_PATH override the
file's tool_path and project_path.`,
		Example: `  fixcpp config init                 # Create default config
  fixcpp config init -i              # Create config, prompting for paths
  fixcpp config show                 # Show effective config
  fixcpp config set jobs 16          # Change a setting
  fixcpp config import config.json   # Import an old JSON config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigImportCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force       bool
		stdout      bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  fixcpp config init      # Create config
  fixcpp config init -f   # Overwrite existing config
  fixcpp config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdout {
				output.FromContext(cmd.Context()).Print(config.DefaultConfig())
				return nil
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			if err := config.Init(path, force); err != nil {
				return fmt.Errorf("%w (use -f to overwrite)", err)
			}

			if interactive {
				if err := promptPaths(path); err != nil {
					return err
				}
			}

			log.FromContext(cmd.Context()).Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for tool and project paths")

	return cmd
}

// promptPaths asks for the paths a run needs and saves them to the config
// at path.
func promptPaths(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	fields := []struct {
		key         string
		prompt      string
		placeholder string
	}{
		{"tool_path", "Path to run-clang-tidy:", "/usr/bin/run-clang-tidy"},
		{"project_path", "Project directory:", "~/src/app"},
		{"build_commands_path", "Build directory with compile_commands.json:", "~/src/app/build"},
	}

	for _, f := range fields {
		current, _ := cfg.Get(f.key)
		res, err := prompt.TextInput(f.prompt, f.placeholder, current, func(v string) error {
			return config.ValidatePath(v, f.key)
		})
		if err != nil {
			return err
		}
		if res.Cancelled {
			return errors.New("cancelled")
		}
		if err := cfg.Set(f.key, res.Value); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Example: `  fixcpp config show          # Show config as TOML
  fixcpp config show --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			cfg := config.FromContext(ctx)
			if cfg == nil {
				return errNoConfig
			}

			if jsonOutput {
				return out.JSON(cfg)
			}

			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			out.Printf("# %s\n", cfg.Path())
			out.Print(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Change a setting",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeConfigKeys,
		Example: `  fixcpp config set tool_path /usr/lib/llvm-18/bin/run-clang-tidy
  fixcpp config set interpreter ""    # Run the tool directly
  fixcpp config set keep_generated true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errNoConfig
			}

			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			return cfg.Save()
		},
	}

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "get <key>",
		Short:             "Print a setting",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := config.FromContext(ctx)
			if cfg == nil {
				return errNoConfig
			}

			v, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			output.FromContext(ctx).Println(v)
			return nil
		},
	}

	return cmd
}

func newConfigImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import settings from a legacy config.json",
		Args:  cobra.ExactArgs(1),
		Long: `Import settings from a legacy config.json.

Paths set in the file replace the current ones. Fixes not yet in the list
are appended with their enabled flag; existing fixes are left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := config.FromContext(ctx)
			if cfg == nil {
				return errNoConfig
			}

			added, err := cfg.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			log.FromContext(ctx).Printf("Imported %s (%d new fixes)\n", args[0], added)
			return nil
		},
	}

	return cmd
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fixcpp/fixcpp/internal/config"
	"github.com/fixcpp/fixcpp/internal/log"
	"github.com/fixcpp/fixcpp/internal/output"
	"github.com/fixcpp/fixcpp/internal/ui/styles"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	configPath string
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fixcpp",
	Short: "Apply clang-tidy fixes to a C/C++ project one check at a time",
	Long: `fixcpp applies a selected list of clang-tidy checks to a C/C++ project.

For every enabled check it writes a .clang-tidy that disables all checks
except that one and runs run-clang-tidy -fix in the project directory, so
each check's rewrites are applied in isolation.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}
		return setup(cmd)
	},
	// Run is not set - shows help when no subcommand provided
}

// setup loads the config and attaches logger, printer and config to the
// command context.
func setup(cmd *cobra.Command) error {
	if verbose && quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	path, err := configFilePath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		// config init must still work to replace a broken file
		if cmd.Name() != "init" {
			return err
		}
		cfg = config.Default()
	}

	styles.Init(cfg.Theme)

	ctx := cmd.Context()
	ctx = log.WithLogger(ctx, log.New(os.Stderr, verbose, quiet))
	ctx = output.WithPrinter(ctx, os.Stdout)
	ctx = config.WithConfig(ctx, &cfg)
	cmd.SetContext(ctx)
	return nil
}

// configFilePath returns the config file selected by --config, FIXCPP_CONFIG
// or the default location.
func configFilePath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("locate config: %w", err)
	}
	return path, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: "+err.Error()))
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'fixcpp -h' for help")
		cancel()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands and debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $FIXCPP_CONFIG or ~/.config/fixcpp/config.toml)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newFixesCmd())
	rootCmd.AddCommand(newHistoryCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newCompletionCmd())
}

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/fixcpp/fixcpp/internal/config"
	"github.com/fixcpp/fixcpp/internal/fix"
	"github.com/fixcpp/fixcpp/internal/log"
	"github.com/fixcpp/fixcpp/internal/output"
	"github.com/fixcpp/fixcpp/internal/tidy"
	"github.com/fixcpp/fixcpp/internal/ui/picker"
	"github.com/fixcpp/fixcpp/internal/ui/static"
)

func newFixesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fixes",
		Short:   "Manage the fix list",
		Aliases: []string{"fix"},
		GroupID: GroupCore,
		Long: `Manage the list of clang-tidy checks fixcpp can apply.

Each fix is a check name plus an enabled flag. Only enabled fixes are
applied by 'fixcpp run', in list order.`,
		Example: `  fixcpp fixes list                       # Show all fixes
  fixcpp fixes list --filter override     # Fuzzy filter by name
  fixcpp fixes enable modernize-use-auto  # Enable a fix
  fixcpp fixes select                     # Pick fixes interactively
  fixcpp fixes sync ~/fixes.txt           # Import checks from a file`,
	}

	cmd.AddCommand(newFixesListCmd())
	cmd.AddCommand(newFixesToggleCmd("enable", true))
	cmd.AddCommand(newFixesToggleCmd("disable", false))
	cmd.AddCommand(newFixesSyncCmd())
	cmd.AddCommand(newFixesSelectCmd())
	cmd.AddCommand(newFixesShowCmd())

	return cmd
}

func newFixesListCmd() *cobra.Command {
	var (
		filter      string
		enabledOnly bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List fixes",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			cfg := config.FromContext(ctx)
			if cfg == nil {
				return errNoConfig
			}

			fixes := cfg.Fixes
			if enabledOnly {
				fixes = fix.Enabled(fixes)
			}
			fixes = fix.Filter(fixes, filter)

			if jsonOutput {
				if fixes == nil {
					fixes = []fix.Fix{}
				}
				return out.JSON(fixes)
			}

			if len(fixes) == 0 {
				log.FromContext(ctx).Println("No fixes found")
				return nil
			}

			out.Print(static.RenderTable(static.FixHeaders, static.FixRows(fixes)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Fuzzy filter by name")
	cmd.Flags().BoolVarP(&enabledOnly, "enabled", "e", false, "Only show enabled fixes")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newFixesToggleCmd(verb string, enabled bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:               verb + " <name>...",
		Short:             fmt.Sprintf("%s fixes by name", capitalize(verb)),
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeFixNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := config.FromContext(ctx)
			if cfg == nil {
				return errNoConfig
			}

			if err := setFixes(cfg, args, enabled); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			log.FromContext(ctx).Printf("%sd %d fixes\n", capitalize(verb), len(args))
			return nil
		},
	}

	return cmd
}

func newFixesSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [catalog]",
		Short: "Add checks from a catalog file",
		Args:  cobra.MaximumNArgs(1),
		Long: `Add checks listed in a catalog file to the fix list.

The catalog is a text file with one check name per line; blank lines and
lines starting with # are ignored. New checks are appended disabled and
existing entries keep their state. Without an argument catalog_path is
used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := config.FromContext(ctx)
			if cfg == nil {
				return errNoConfig
			}

			catalog := cfg.CatalogPath
			if len(args) == 1 {
				catalog = args[0]
			}
			if catalog == "" {
				return errors.New("no catalog given and catalog_path is not configured")
			}

			added, err := syncFrom(cfg, catalog)
			if err != nil {
				return err
			}

			log.FromContext(ctx).Printf("Added %d new fixes from %s\n", added, catalog)
			return nil
		},
	}

	return cmd
}

func newFixesSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Pick enabled fixes interactively",
		Args:  cobra.NoArgs,
		Long: `Pick enabled fixes in an interactive list.

Type to filter, space to toggle, ctrl+a to toggle all visible fixes,
enter to save and esc to cancel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			cfg := config.FromContext(ctx)
			if cfg == nil {
				return errNoConfig
			}
			if len(cfg.Fixes) == 0 {
				return errors.New("fix list is empty (run 'fixcpp fixes sync' first)")
			}

			res, err := picker.Run(cfg.Fixes)
			if err != nil {
				return err
			}
			if res.Cancelled {
				l.Println("Cancelled")
				return nil
			}

			cfg.Fixes = res.Fixes
			if err := cfg.Save(); err != nil {
				return err
			}

			l.Printf("%d of %d fixes enabled\n", len(fix.Enabled(cfg.Fixes)), len(cfg.Fixes))
			return nil
		},
	}

	return cmd
}

func newFixesShowCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:               "show <name>",
		Short:             "Print the .clang-tidy generated for a fix",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFixNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := tidy.ForCheck(args[0]).Marshal()
			if err != nil {
				return err
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(string(data)); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				log.FromContext(ctx).Printf("Copied .clang-tidy for %s to clipboard\n", args[0])
				return nil
			}

			output.FromContext(ctx).Print(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy to the clipboard instead of printing")

	return cmd
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/fixcpp/fixcpp/internal/config"
	"github.com/fixcpp/fixcpp/internal/doctor"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair issues",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose and repair configuration and project issues.

Checks:
- tool_path is set and exists
- Interpreter is on PATH
- project_path is a directory
- compile_commands.json exists
- Catalog is readable and synced
- At least one fix is enabled
- No .clang-tidy left behind by an interrupted run

Examples:
  fixcpp doctor          # Check for issues
  fixcpp doctor --fix    # Auto-fix recoverable issues`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := config.FromContext(ctx)
			if cfg == nil {
				return errNoConfig
			}

			return doctor.Run(ctx, cfg, fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Auto-fix recoverable issues")

	return cmd
}

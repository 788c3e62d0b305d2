package main

import (
	"github.com/spf13/cobra"

	"github.com/fixcpp/fixcpp/internal/history"
	"github.com/fixcpp/fixcpp/internal/log"
	"github.com/fixcpp/fixcpp/internal/output"
	"github.com/fixcpp/fixcpp/internal/ui/static"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show past runs",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Example: `  fixcpp history          # Show the last 10 runs
  fixcpp history -n 50    # Show more
  fixcpp history --json   # Full records as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			path, err := history.Path()
			if err != nil {
				return err
			}
			h, err := history.Load(path)
			if err != nil {
				return err
			}

			records := h.Latest(limit)

			if jsonOutput {
				if records == nil {
					records = []history.Record{}
				}
				return out.JSON(records)
			}

			if len(records) == 0 {
				log.FromContext(ctx).Println("No runs recorded")
				return nil
			}

			rows := make([][]string, len(records))
			for i, r := range records {
				rows[i] = static.HistoryTableRow(r)
			}
			out.Print(static.RenderTable(static.HistoryHeaders, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "number", "n", 10, "Number of runs to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/growthbot/internal/analytics"
	"github.com/example/growthbot/internal/content"
	"github.com/example/growthbot/internal/excel"
	"github.com/example/growthbot/internal/render"
)

func newTodayCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's challenge",
		Long:  `Show today's challenge, picking and saving a new one if today has none yet.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.service.Snapshot(commandContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), render.TodayMessage(snap))
			return nil
		},
	}
}

func newMarkCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mark <pending|completed>",
		Short: "Set the status of today's challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseStatusArg(args[0])
			if err != nil {
				return err
			}

			snap, err := a.service.SetStatus(commandContext(cmd), status)
			if err != nil {
				return err
			}

			w := out(cmd)
			fmt.Fprintln(w, green("✔ Progress updated successfully! 🎉"))
			fmt.Fprintf(w, "%s %s  %s\n", render.StatusIcon(snap.Status), snap.Status, gray(snap.Challenge))
			fmt.Fprintf(w, "🔥 Streak: %d days\n", snap.Streak)
			return nil
		},
	}
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the progress dashboard",
		Long:  `Show today's challenge, streak, totals, completion chart, badges and recent history.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.service.Snapshot(commandContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), render.Dashboard(snap, a.service.Badges()))
			return nil
		},
	}
}

func newHistoryCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent challenges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be at least 1")
			}
			snap, err := a.service.Snapshot(commandContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), render.HistoryTable(analytics.Recent(snap.Table, limit)))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", analytics.RecentLimit, "number of records to show")
	return cmd
}

func newQuoteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Print a motivational quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			quote, err := a.service.Quote()
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "💫 %s\n\n%s\n", quote, cyan(content.Motto))
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Export the history to an Excel workbook with a completion chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.service.Table(commandContext(cmd))
			if err != nil {
				return err
			}
			if err := excel.ExportFile(table, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%s exported %d records to %s\n", green("✔"), table.Len(), args[0])
			return nil
		},
	}
}

func newImportCommand(a *app) *cobra.Command {
	importConfig := excel.DefaultImportConfig()

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import history rows from an Excel or CSV file",
		Long: `Import Date, Challenge and Status rows from an .xlsx or .csv file.
Rows whose date is already tracked are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importConfig.FilePath = args[0]
			parsed, err := excel.ImportHistory(importConfig)
			if err != nil {
				return err
			}
			for _, msg := range parsed.Errors {
				warnf("skipped: %s", msg)
			}

			result, err := a.service.Import(commandContext(cmd), parsed.Records)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%s processed %d rows: %d added, %d already tracked, %d invalid\n",
				green("✔"), parsed.TotalProcessed, result.Added, result.Skipped, len(parsed.Errors))
			return nil
		},
	}
	cmd.Flags().StringVar(&importConfig.SheetName, "sheet", importConfig.SheetName, "sheet to read from an Excel file")
	cmd.Flags().IntVar(&importConfig.StartRow, "start-row", importConfig.StartRow, "first data row (1-based)")
	return cmd
}

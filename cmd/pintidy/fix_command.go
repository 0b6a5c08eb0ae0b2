package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"pintidy/internal/fixer"
	"pintidy/internal/logging"
	"pintidy/internal/scanner"
)

// progressTick logs phase progress at debug so long passes are traceable
// without cluttering the report output.
func progressTick(logger *slog.Logger) func(fixer.ProgressUpdate) {
	return func(u fixer.ProgressUpdate) {
		logger.Debug("progress",
			logging.String("phase", u.Phase),
			logging.Float64("percent", u.Percent))
	}
}

func newFixCommand(ctx *commandContext) *cobra.Command {
	var trainerWheels bool

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Reconcile mismatched media files with backed-up renames and deletes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			gameList, err := ctx.loadGames()
			if err != nil {
				return err
			}

			scn, err := scanner.New(cfg, logger)
			if err != nil {
				return err
			}
			library, err := scn.Scan(cmd.Context(), gameList)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("trainer-wheels") {
				cfg.Fix.TrainerWheels = trainerWheels
			}
			auditLog, closer, err := ctx.auditLogger()
			if err != nil {
				return err
			}
			defer closer.Close()

			fx, err := fixer.New(cfg, auditLog)
			if err != nil {
				return err
			}
			details, err := fx.Fix(cmd.Context(), library, progressTick(logger))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Fix.TrainerWheels {
				fmt.Fprintln(out, "Trainer wheels are on: no files were changed")
			}
			printFixReport(cmd, details)
			return nil
		},
	}

	cmd.Flags().BoolVar(&trainerWheels, "trainer-wheels", false, "Log every decision without touching files")
	return cmd
}

func printFixReport(cmd *cobra.Command, details []fixer.FileDetail) {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(details))
	for _, detail := range details {
		if detail.Outcome == fixer.OutcomeIgnored {
			continue
		}
		rows = append(rows, []string{
			detail.Outcome.String(),
			detail.ContentType,
			detail.HitType.String(),
			detail.Path,
			detail.NewPath,
		})
	}
	if len(rows) > 0 {
		headers := []string{"Action", "Content", "Hit", "Path", "New Path"}
		aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
	}

	stats := fixer.Summarize(details)
	fmt.Fprintf(out, "%d renamed, %d deleted (%d bytes), %d merged, %d ignored\n",
		stats.Renamed, stats.Deleted, stats.BytesDeleted, stats.Merged, stats.Ignored)
}

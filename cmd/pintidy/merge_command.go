package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pintidy/internal/config"
	"pintidy/internal/fixer"
	"pintidy/internal/scanner"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var trainerWheels bool

	cmd := &cobra.Command{
		Use:   "merge <source-dir>",
		Short: "Import files from a source folder into missing media slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			sourceDir, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve source directory: %w", err)
			}
			if info, err := os.Stat(sourceDir); err != nil {
				return fmt.Errorf("source directory: %w", err)
			} else if !info.IsDir() {
				return fmt.Errorf("source %s is not a directory", sourceDir)
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
			details, err := fx.Merge(cmd.Context(), library, sourceDir, progressTick(logger))
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

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"pintidy/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var listHits bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Classify media files against the table database",
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %d files against %d tables\n\n", library.FileCount, len(gameList))
			fmt.Fprintln(out, renderScanReport(library))

			if listHits {
				printHitListing(cmd, library)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listHits, "list", false, "List every non-valid hit individually")
	return cmd
}

// reportHitTypes fixes the report's column order to the fix-priority order.
var reportHitTypes = []scanner.HitType{
	scanner.HitValid,
	scanner.HitWrongCase,
	scanner.HitTableName,
	scanner.HitFuzzy,
	scanner.HitDuplicateExtension,
	scanner.HitMissing,
	scanner.HitUnknown,
	scanner.HitUnsupported,
}

// renderScanReport builds the content-type by hit-type count table.
func renderScanReport(library *scanner.Library) string {
	counts := map[string]map[scanner.HitType]int{}
	var names []string

	record := func(contentType string, hitType scanner.HitType) {
		perType, ok := counts[contentType]
		if !ok {
			perType = map[scanner.HitType]int{}
			counts[contentType] = perType
			names = append(names, contentType)
		}
		perType[hitType]++
	}

	for _, gc := range library.Games {
		for _, hits := range gc.Hits {
			for _, hit := range hits.Hits {
				record(hits.ContentType.Name, hit.Type)
			}
		}
	}
	for _, hit := range library.Unmatched {
		record(hit.ContentType, hit.Type)
	}
	sort.Strings(names)

	headers := []string{"Content"}
	aligns := []columnAlignment{alignLeft}
	for _, hitType := range reportHitTypes {
		headers = append(headers, hitType.String())
		aligns = append(aligns, alignRight)
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		row := []string{name}
		for _, hitType := range reportHitTypes {
			row = append(row, fmt.Sprintf("%d", counts[name][hitType]))
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, aligns)
}

func printHitListing(cmd *cobra.Command, library *scanner.Library) {
	out := cmd.OutOrStdout()
	for _, gc := range library.Games {
		for _, hits := range gc.Hits {
			for _, hit := range hits.Hits {
				if hit.Type == scanner.HitValid {
					continue
				}
				fmt.Fprintf(out, "%-20s %-12s %s\n", gc.Game.Description, hit.Type, hit.Path)
			}
		}
	}
	for _, hit := range library.Unmatched {
		fmt.Fprintf(out, "%-20s %-12s %s\n", "(no table)", hit.Type, hit.Path)
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pintidy/internal/feed"
	"pintidy/internal/feedcache"
	"pintidy/internal/fuzzy"
	"pintidy/internal/logging"
)

func newFeedCommand(ctx *commandContext) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Cross-reference the table database against the online feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			cache, err := feedcache.Open(cfg.Feed.CachePath)
			if err != nil {
				return fmt.Errorf("open feed cache: %w", err)
			}
			defer cache.Close()

			if refresh {
				removed, err := cache.Clear(cmd.Context())
				if err != nil {
					return fmt.Errorf("clear feed cache: %w", err)
				}
				logger.Info("cleared feed cache", logging.Int64("entries", removed))
			}

			client := feed.NewClient(feed.ClientOptions{
				URL:      cfg.Feed.URL,
				Timeout:  time.Duration(cfg.Feed.TimeoutSeconds) * time.Second,
				MaxBytes: cfg.Feed.MaxResponseBytes,
				CacheTTL: time.Duration(cfg.Feed.CacheTTLSeconds) * time.Second,
				Cache:    cache,
				Logger:   logger,
			})
			entries, err := client.Fetch(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch feed: %w", err)
			}

			overrides, err := feed.LoadOverrides()
			if err != nil {
				return fmt.Errorf("load overrides: %w", err)
			}
			norm, err := ctx.normalizer()
			if err != nil {
				return err
			}

			stats := feed.NewStatistics()
			feed.FixBeforeMerge(entries, norm, overrides, stats)
			merged, duplicates, err := feed.MergeDuplicates(entries)
			if err != nil {
				return err
			}
			feed.FixAfterMerge(merged, stats)

			gameList, err := ctx.loadGames()
			if err != nil {
				return err
			}
			matcher := fuzzy.NewMatcher(norm, cfg.Matching.FuzzyThreshold)
			matchStats := feed.MatchOnlineToLocal(merged, gameList, matcher, norm, logger,
				func(u feed.ProgressUpdate) {
					logger.Debug("progress",
						logging.String("phase", u.Phase),
						logging.Float64("percent", u.Percent))
				})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Feed: %d entries, %d after merging %d duplicate groups\n\n",
				len(entries), len(merged), len(duplicates))
			printFeedFixes(cmd, stats)
			printMatchReport(cmd, matchStats, len(merged), len(gameList))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Discard the cached feed and download a fresh copy")
	return cmd
}

func printFeedFixes(cmd *cobra.Command, stats *feed.Statistics) {
	if stats.Total() == 0 {
		return
	}
	var rows [][]string
	stats.Each(func(name string, count int) {
		rows = append(rows, []string{name, fmt.Sprintf("%d", count)})
	})
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Feed Fix", "Count"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
}

func printMatchReport(cmd *cobra.Command, stats *feed.MatchStatistics, online, local int) {
	keys := []string{
		feed.MatchedTotal,
		feed.MatchedManufactured,
		feed.MatchedOriginal,
		feed.UnmatchedOnlineTotal,
		feed.UnmatchedOnlineManuf,
		feed.UnmatchedOnlineOrig,
		feed.UnmatchedLocalTotal,
		feed.UnmatchedLocalManuf,
		feed.UnmatchedLocalOrig,
	}
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, fmt.Sprintf("%d", stats.Count(key))})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Matched %d online entries against %d local tables\n", online, local)
	fmt.Fprintln(out, renderTable(
		[]string{"Match", "Count"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/battlecard/internal/api"
	"github.com/abhisek/battlecard/internal/card"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show deck progress and the topic roadmap",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client := api.NewHTTPClient(cfg.APIURL, api.WithTimeout(cfg.RequestTimeout))

		var (
			stats   *card.Stats
			roadmap []card.RoadmapItem
		)
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			stats, err = client.Stats(ctx)
			if err != nil {
				return fmt.Errorf("fetch stats: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			roadmap, err = client.Roadmap(ctx)
			if err != nil {
				return fmt.Errorf("fetch roadmap: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("Generated:    %d/%d\n", stats.Generated, stats.Total)
		fmt.Printf("Due reviews:  %d\n", stats.DueReviews)
		fmt.Printf("Days left:    %d\n", stats.DaysLeft)
		if stats.PendingGen > 0 {
			fmt.Printf("Queued:       %d\n", stats.PendingGen)
		}

		if len(roadmap) == 0 {
			return nil
		}
		fmt.Println()
		fmt.Println("Roadmap")
		fmt.Println(strings.Repeat("─", 60))
		counts := make(map[card.Level]int)
		for i, item := range roadmap {
			lvl := item.Level.Normalize()
			counts[lvl]++
			interval := ""
			if item.Interval > 0 {
				interval = fmt.Sprintf("%dd", item.Interval)
			}
			fmt.Printf("%3d  %-9s  %-5s  %s\n", i+1, lvl, interval, truncate(item.Title, 40))
		}
		fmt.Println(strings.Repeat("─", 60))
		parts := make([]string, 0, 5)
		for _, lvl := range []card.Level{card.LevelPending, card.LevelFresh, card.LevelLearning, card.LevelMastered, card.LevelUrgent} {
			parts = append(parts, fmt.Sprintf("%s %d", lvl, counts[lvl]))
		}
		fmt.Println(strings.Join(parts, "  "))
		return nil
	},
}

// truncate cuts s to max terminal cells without splitting a rune.
func truncate(s string, max int) string {
	return ansi.Truncate(s, max, "")
}

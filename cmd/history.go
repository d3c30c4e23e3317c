package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent review submissions from the local journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryReviewEvents(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query reviews: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No reviews recorded yet.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-32s  %-6s  %-5s  %s\n",
			"ID", "Timestamp", "Topic", "Rating", "Quiz", "OK")
		fmt.Println(strings.Repeat("─", 84))
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			quiz := "-"
			if e.QuizAnswered {
				quiz = "miss"
				if e.QuizCorrect {
					quiz = "hit"
				}
			}
			fmt.Printf("%-5d  %-19s  %-32s  %-6s  %-5s  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Topic, 32),
				card.Rating(e.Rating).String(),
				quiz,
				ok,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of reviews to show")
}

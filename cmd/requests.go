package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/battlecard/internal/store"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Inspect journaled backend API calls",
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent API calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		endpoint, _ := cmd.Flags().GetString("endpoint")
		failed, _ := cmd.Flags().GetBool("failed")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryRequestEvents(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No API calls recorded yet.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-6s  %-9s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Method", "Endpoint", "Status", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 72))

		for _, e := range events {
			if endpoint != "" && e.Endpoint != endpoint {
				continue
			}
			if failed && e.Success {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗ " + truncate(e.ErrorMessage, 60)
			}
			fmt.Printf("%-5d  %-19s  %-6s  %-9s  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Method,
				e.Endpoint,
				e.Status,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var requestsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show call counts, failures and latency per endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.EventRepo().RequestUsageByEndpoint(context.Background())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Println("No API calls recorded yet.")
			return nil
		}

		fmt.Println("Usage by Endpoint")
		fmt.Println(strings.Repeat("─", 52))
		fmt.Printf("%-12s  %8s  %8s  %8s  %8s\n", "Endpoint", "Calls", "Failed", "Rate", "Avg Ms")
		fmt.Println(strings.Repeat("─", 52))

		var totalCalls, totalFailed int
		for _, u := range usage {
			fmt.Printf("%-12s  %8d  %8d  %7.0f%%  %8d\n",
				u.Endpoint, u.Calls, u.Failures, failureRate(u.Failures, u.Calls), u.AvgLatencyMs)
			totalCalls += u.Calls
			totalFailed += u.Failures
		}
		fmt.Println(strings.Repeat("─", 52))
		fmt.Printf("%-12s  %8d  %8d  %7.0f%%\n", "TOTAL", totalCalls, totalFailed, failureRate(totalFailed, totalCalls))
		return nil
	},
}

func failureRate(failed, calls int) float64 {
	if calls == 0 {
		return 0
	}
	return float64(failed) / float64(calls) * 100
}

func init() {
	requestsListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	requestsListCmd.Flags().StringP("endpoint", "e", "", "Filter by endpoint (e.g. /card, /review)")
	requestsListCmd.Flags().Bool("failed", false, "Only show failed calls")

	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsStatsCmd)
}

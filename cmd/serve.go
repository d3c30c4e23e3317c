package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/battlecard/internal/devserver"
	"github.com/abhisek/battlecard/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a fixture card backend from a directory of JSON cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("cards")
		addr, _ := cmd.Flags().GetString("addr")
		daysLeft, _ := cmd.Flags().GetInt("days-left")

		log, err := logger.New("dev", "stderr")
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer log.Sync()

		deck, err := devserver.LoadDir(dir, daysLeft)
		if err != nil {
			return fmt.Errorf("load cards: %w", err)
		}
		st := deck.Stats()
		log.Info("deck loaded", "dir", dir, "cards", st.Total)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := devserver.New(addr, deck, log)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Run(ctx) }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			log.Info("shutting down")
			return srv.Shutdown(context.Background())
		}
	},
}

func init() {
	serveCmd.Flags().String("cards", "cards", "Directory of *.json card files")
	serveCmd.Flags().String("addr", ":5001", "Listen address")
	serveCmd.Flags().Int("days-left", 30, "Days-left value reported by /stats")
}

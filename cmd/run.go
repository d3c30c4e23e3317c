package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/battlecard/internal/api"
	"github.com/abhisek/battlecard/internal/app"
	"github.com/abhisek/battlecard/internal/diagram"
	"github.com/abhisek/battlecard/internal/disclosure"
	"github.com/abhisek/battlecard/internal/screens/player"
)

// runApp loads configuration, opens the journal, builds dependencies and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := openLogger(cfg)
	defer log.Sync()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	client := api.WithJournal(
		api.NewHTTPClient(cfg.APIURL, api.WithTimeout(cfg.RequestTimeout)),
		eventRepo, log)

	// Only play defines --topic; the bare root command studies the schedule.
	topic, _ := cmd.Flags().GetString("topic")

	log.Info("starting player", "api", cfg.APIURL, "reveal_latency", cfg.RevealLatency.String(), "db", cfg.DBPath, "topic", topic)

	return app.Run(player.Deps{
		Client:   client,
		Renderer: diagram.NewKrokiRenderer(cfg.DiagramURL, cfg.RequestTimeout),
		Sink:     diagram.FileSink{Dir: cfg.DiagramDir},
		Journal:  eventRepo,
		Log:      log,
		Timing:   disclosure.NewTiming(cfg.RevealLatency),
		Topic:    topic,
	})
}

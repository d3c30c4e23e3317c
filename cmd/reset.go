package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the local review and request journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !yes {
			fmt.Printf("This deletes every journal entry in %s.\nRe-run with --yes to confirm.\n", cfg.DBPath)
			return nil
		}

		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.Reset(context.Background())
		if err != nil {
			return fmt.Errorf("reset journal: %w", err)
		}
		fmt.Printf("Removed %d journal entries.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}

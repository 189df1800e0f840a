package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh <show>",
	Short: "Fetch fresh episode data for a show",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		show, err := a.store.GetShowByTitle(args[0])
		if err != nil {
			return fmt.Errorf("show %q: %w", args[0], err)
		}

		episodes, err := a.meta.Refresh(cmd.Context(), show)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d episodes\n", show.Title, len(episodes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

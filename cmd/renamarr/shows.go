package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var showsRefresh bool

var showsCmd = &cobra.Command{
	Use:   "shows [filter]",
	Short: "List known shows, optionally filtered by title substring",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if showsRefresh {
			n, err := a.meta.RefreshShowList(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Refreshed show list: %d shows\n", n)
		}

		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}

		shows, err := a.meta.Shows(cmd.Context(), filter)
		if err != nil {
			return err
		}
		if len(shows) == 0 {
			fmt.Println("No shows found. Run 'renamarr shows --refresh' to fetch the show list.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tLAST REFRESHED")
		for _, s := range shows {
			refreshed := "never"
			if s.LastRefreshed != nil {
				refreshed = s.LastRefreshed.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\n", s.ID, s.Title, refreshed)
		}
		return w.Flush()
	},
}

func init() {
	showsCmd.Flags().BoolVar(&showsRefresh, "refresh", false, "Fetch the show list from epguides first")
	rootCmd.AddCommand(showsCmd)
}

package commands

import (
	"strings"

	"tabroomapi/internal/tabroom"
	"tabroomapi/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchFull *bool

func init() {
	searchFull = searchCmd.Flags().Bool("full", false, "Fetch every result with its events and judges.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query> [--full]",
	Short: "Searches tournaments by name.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")

		var results []tabroom.Tournament
		var err error
		if *searchFull {
			results, err = client.SearchTournaments(cmd.Context(), query)
		} else {
			results, err = client.SearchTournamentSummaries(cmd.Context(), query)
		}
		if err != nil {
			serviceutil.Fatal("failed to search", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Name", "Year", "Location", "Events"})
		for _, r := range results {
			t.AppendRow(table.Row{r.Name, orDash(r.Year), orDash(r.Location), len(r.Events)})
		}
		t.Render()
	},
}

package commands

import (
	"fmt"

	"tabroomapi/internal/store"
	"tabroomapi/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var storedDb *string

func init() {
	storedDb = storedCmd.Flags().String("db", "", "The sqlite database to read, defaults to the configured database.")
	rootCmd.AddCommand(storedCmd)
}

var storedCmd = &cobra.Command{
	Use:   "stored [tourn_id] [--db <path/to/tabroom.db>]",
	Short: "Lists saved tournaments, or the preliminary records of one saved tournament.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dbConfig, ok := config.databaseConfig(*storedDb)
		if !ok {
			serviceutil.Fatal("no database", fmt.Errorf("pass --db or set database in %s", configFile))
		}

		s, err := store.Open(cmd.Context(), dbConfig)
		if err != nil {
			serviceutil.Fatal("failed to open store", err)
		}
		defer s.Close()

		if len(args) == 0 {
			tournaments, err := s.TournamentNames(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to list tournaments", err)
			}
			t := newTable()
			t.AppendHeader(table.Row{"Id", "Name", "Year", "Fetched"})
			for _, tourney := range tournaments {
				t.AppendRow(table.Row{tourney.Id, tourney.Name, tourney.Year, tourney.FetchedAt.Format("2006-01-02 15:04")})
			}
			t.Render()
			return
		}

		id := intArg(args, 0, "tourn_id")
		records, err := s.EntryRecords(cmd.Context(), id)
		if err != nil {
			serviceutil.Fatal("failed to read entry records", err)
		}
		t := newTable()
		t.AppendHeader(table.Row{"Event", "Code", "Name", "Prelims", "Win %"})
		for _, r := range records {
			t.AppendRow(table.Row{r.Event, r.Code, r.Name, r.Preliminary.String(), fmt.Sprintf("%.0f", r.Preliminary.WinPercentage()*100)})
		}
		t.Render()
	},
}

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"tabroomapi/internal/store"
	"tabroomapi/internal/tabroom"
	configlibsql "tabroomapi/lib/configutil/libsql"
	"tabroomapi/lib/serviceutil"
	"tabroomapi/lib/textutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	eventName *string
	tournDb   *string
)

func init() {
	eventName = tournamentCmd.Flags().String("event", "", "Only print the event whose name is closest to this one.")
	tournDb = tournamentCmd.Flags().String("db", "", "Save the tournament into this sqlite database, defaults to the configured database.")
	rootCmd.AddCommand(tournamentCmd)
}

var tournamentCmd = &cobra.Command{
	Use:   "tournament <tourn_id> [--event <name>] [--db <path/to/tabroom.db>]",
	Short: "Fetches a tournament with all its events, entries, ballots and judges.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := intArg(args, 0, "tourn_id")

		t1 := time.Now()
		tourney, err := client.GetTournament(cmd.Context(), id)
		if err != nil {
			serviceutil.Fatal("failed to get tournament", err)
		}
		slog.Info("fetched tournament", "name", tourney.Name, "seconds", time.Since(t1).Seconds())

		fmt.Printf("%s (%s, %s)\n", tourney.Name, orDash(tourney.Year), orDash(tourney.Location))

		if *eventName != "" {
			names := make([]string, len(tourney.Events))
			for i, e := range tourney.Events {
				names[i] = e.Name
			}
			idx := textutil.ClosestMatch(*eventName, names, 0.7)
			if idx < 0 {
				serviceutil.Fatal("no matching event", fmt.Errorf("no event resembles '%s'", *eventName))
			}
			printEvent(tourney.Events[idx])
		} else {
			printEvents(tourney.Events)
			printJudges(tourney.Judges)
		}

		if dbConfig, ok := config.databaseConfig(*tournDb); ok {
			saveTournament(cmd.Context(), dbConfig, id, tourney)
		}
	},
}

func saveTournament(ctx context.Context, dbConfig configlibsql.Struct, id int, tourney tabroom.Tournament) {
	s, err := store.Open(ctx, dbConfig)
	if err != nil {
		serviceutil.Fatal("failed to open store", err)
	}
	defer s.Close()

	err = s.SaveTournament(ctx, id, tourney, time.Now())
	if err != nil {
		serviceutil.Fatal("failed to save tournament", err)
	}
	count, err := s.CountBallots(ctx, id)
	if err != nil {
		serviceutil.Fatal("failed to count saved ballots", err)
	}
	slog.Info("saved tournament", "tourn_id", id, "ballots", count)
}

func printEvents(events []tabroom.Event) {
	t := newTable()
	t.AppendHeader(table.Row{"Event", "Id", "Entries", "Fields"})
	for _, e := range events {
		t.AppendRow(table.Row{e.Name, e.Id, len(e.Entries), len(e.Fields)})
	}
	t.Render()
}

func printEvent(event tabroom.Event) {
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := newTable()
	fields.SetTitle(event.Name)
	for _, k := range keys {
		fields.AppendRow(table.Row{k, event.Fields[k]})
	}
	fields.Render()

	entries := newTable()
	entries.AppendHeader(table.Row{"Code", "Name", "School", "Location", "Prelims", "Elims"})
	for _, e := range event.Entries {
		entries.AppendRow(table.Row{
			e.Code, e.Name, e.School, e.Location,
			e.Preliminary().String(), e.Elimination().String(),
		})
	}
	entries.Render()
}

func printJudges(judges map[string][]tabroom.Judge) {
	categories := make([]string, 0, len(judges))
	for c := range judges {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	t := newTable()
	t.AppendHeader(table.Row{"Category", "Name", "School", "Location", "Paradigm"})
	for _, c := range categories {
		for _, j := range judges[c] {
			t.AppendRow(table.Row{c, j.FirstName + " " + j.LastName, j.School, j.Location, j.HasParadigm})
		}
	}
	t.Render()
}

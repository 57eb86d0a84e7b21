package store

import (
	"context"
	"testing"
	"time"

	"tabroomapi/internal/tabroom"
	configlibsql "tabroomapi/lib/configutil/libsql"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testTournament(name string) tabroom.Tournament {
	return tabroom.Tournament{
		Name:     name,
		Year:     "2024",
		Location: "CA",
		Events: []tabroom.Event{
			{
				Name:   "Varsity LD",
				Id:     1001,
				Fields: map[string]string{"Entry Fee": "$40.00"},
				Entries: []tabroom.Entry{
					{
						School: "Harvard-Westlake",
						Name:   "Alex Kim",
						Code:   "HW AK",
						Ballots: map[int]tabroom.Ballot{
							201: {BallotsWon: 1, Decision: "W", Judge: "Smith, Jane"},
							202: {BallotsLost: 1, Decision: "L"},
							203: {BallotsWon: 2, BallotsLost: 1, Decision: "W", IsElimination: true},
						},
					},
					{School: "Long Beach Poly", Name: "Sam Lee", Code: "LBP SL"},
				},
			},
			{Name: "Novice PF", Id: 1002, Fields: map[string]string{}},
		},
		Judges: map[string][]tabroom.Judge{
			"LD Judges": {{FirstName: "Jane", LastName: "Smith", HasParadigm: true}},
		},
	}
}

func openMemory(t *testing.T) Store {
	store, err := Open(context.Background(), configlibsql.Struct{File: ":memory:"})
	require.Nil(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestSaveTournament(t *testing.T) {
	store := openMemory(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fetchedAt := time.Unix(1727000000, 0)
	err := store.SaveTournament(ctx, 31822, testTournament("Jack Howe 2024"), fetchedAt)
	require.Nil(t, err)

	names, err := store.TournamentNames(ctx)
	require.Nil(t, err)
	diff := cmp.Diff([]TournamentSummary{
		{Id: 31822, Name: "Jack Howe 2024", Year: "2024", FetchedAt: fetchedAt},
	}, names)
	require.Empty(t, diff)

	count, err := store.CountBallots(ctx, 31822)
	require.Nil(t, err)
	require.Equal(t, 3, count)

	records, err := store.EntryRecords(ctx, 31822)
	require.Nil(t, err)
	diff = cmp.Diff([]EntryRecord{
		{Event: "Varsity LD", Code: "HW AK", Name: "Alex Kim", Preliminary: tabroom.TournamentRecord{Wins: 1, Losses: 1}},
		{Event: "Varsity LD", Code: "LBP SL", Name: "Sam Lee"},
	}, records)
	require.Empty(t, diff)
}

func TestSaveTournamentReplaces(t *testing.T) {
	store := openMemory(t)
	ctx := context.Background()

	err := store.SaveTournament(ctx, 31822, testTournament("Jack Howe 2024"), time.Unix(1, 0))
	require.Nil(t, err)

	updated := testTournament("Jack Howe 2024 (updated)")
	updated.Events[0].Entries = updated.Events[0].Entries[1:]
	err = store.SaveTournament(ctx, 31822, updated, time.Unix(2, 0))
	require.Nil(t, err)

	names, err := store.TournamentNames(ctx)
	require.Nil(t, err)
	require.Len(t, names, 1)
	require.Equal(t, "Jack Howe 2024 (updated)", names[0].Name)

	count, err := store.CountBallots(ctx, 31822)
	require.Nil(t, err)
	require.Equal(t, 0, count)

	records, err := store.EntryRecords(ctx, 31822)
	require.Nil(t, err)
	require.Len(t, records, 1)
}

func TestEmptyStore(t *testing.T) {
	store := openMemory(t)
	ctx := context.Background()

	names, err := store.TournamentNames(ctx)
	require.Nil(t, err)
	require.Empty(t, names)

	count, err := store.CountBallots(ctx, 1)
	require.Nil(t, err)
	require.Equal(t, 0, count)
}

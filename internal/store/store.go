package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"tabroomapi/internal/store/db"
	"tabroomapi/internal/tabroom"
	configlibsql "tabroomapi/lib/configutil/libsql"
)

// Store persists scraped tournaments so they can be inspected without
// hitting tabroom again.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func New(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// Open opens the configured database and makes sure the schema exists.
func Open(ctx context.Context, config configlibsql.Struct) (Store, error) {
	database, err := config.OpenDB()
	if err != nil {
		return Store{}, fmt.Errorf("open database: %w", err)
	}
	_, err = database.ExecContext(ctx, db.Schema)
	if err != nil {
		database.Close()
		return Store{}, fmt.Errorf("create schema: %w", err)
	}
	return New(database), nil
}

func (s Store) Close() error {
	return s.db.Close()
}

func (s Store) deleteTournament(ctx context.Context, txqry *db.Queries, id int64) error {
	deletes := []func(context.Context, int64) error{
		txqry.DeleteTournamentBallots,
		txqry.DeleteTournamentEntries,
		txqry.DeleteTournamentEventFields,
		txqry.DeleteTournamentEvents,
		txqry.DeleteTournamentJudges,
		txqry.DeleteTournament,
	}
	for _, del := range deletes {
		err := del(ctx, id)
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveTournament replaces everything stored under id with tourney in a
// single transaction.
func (s Store) SaveTournament(ctx context.Context, id int, tourney tabroom.Tournament, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	tournId := int64(id)
	err = s.deleteTournament(ctx, txqry, tournId)
	if err != nil {
		return fmt.Errorf("delete previous tournament %d: %w", id, err)
	}

	err = txqry.CreateTournament(ctx, db.CreateTournamentParams{
		ID:          tournId,
		Name:        tourney.Name,
		Year:        tourney.Year,
		Location:    tourney.Location,
		Description: tourney.Description,
		FetchedAt:   fetchedAt.Unix(),
	})
	if err != nil {
		return err
	}

	for position, event := range tourney.Events {
		err = s.saveEvent(ctx, txqry, tournId, int64(position), event)
		if err != nil {
			return fmt.Errorf("save event '%s': %w", event.Name, err)
		}
	}

	categories := make([]string, 0, len(tourney.Judges))
	for category := range tourney.Judges {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		for _, judge := range tourney.Judges[category] {
			var hasParadigm int64
			if judge.HasParadigm {
				hasParadigm = 1
			}
			err = txqry.CreateJudge(ctx, db.CreateJudgeParams{
				TournamentID: tournId,
				Category:     category,
				FirstName:    judge.FirstName,
				LastName:     judge.LastName,
				School:       judge.School,
				Location:     judge.Location,
				HasParadigm:  hasParadigm,
			})
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (s Store) saveEvent(ctx context.Context, txqry *db.Queries, tournId, position int64, event tabroom.Event) error {
	err := txqry.CreateEvent(ctx, db.CreateEventParams{
		TournamentID: tournId,
		Position:     position,
		EventID:      int64(event.Id),
		Name:         event.Name,
	})
	if err != nil {
		return err
	}

	for key, value := range event.Fields {
		err = txqry.CreateEventField(ctx, db.CreateEventFieldParams{
			TournamentID:  tournId,
			EventPosition: position,
			FieldKey:      key,
			FieldValue:    value,
		})
		if err != nil {
			return err
		}
	}

	for _, entry := range event.Entries {
		entryId, err := txqry.CreateEntry(ctx, db.CreateEntryParams{
			TournamentID:  tournId,
			EventPosition: position,
			School:        entry.School,
			Location:      entry.Location,
			Name:          entry.Name,
			Code:          entry.Code,
		})
		if err != nil {
			return err
		}
		for round, ballot := range entry.Ballots {
			var elim int64
			if ballot.IsElimination {
				elim = 1
			}
			err = txqry.CreateBallot(ctx, db.CreateBallotParams{
				EntryID:        entryId,
				RoundID:        int64(round),
				Decision:       ballot.Decision,
				BallotsWon:     int64(ballot.BallotsWon),
				BallotsLost:    int64(ballot.BallotsLost),
				Elim:           elim,
				Level:          ballot.Level.String(),
				Judge:          ballot.Judge,
				Side:           ballot.Side.String(),
				Opponent:       ballot.Opponent,
				RoundLabel:     ballot.RoundLabel,
				Speaker1Points: ballot.Speaker1Points,
				Speaker2Points: ballot.Speaker2Points,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

type TournamentSummary struct {
	Id        int
	Name      string
	Year      string
	FetchedAt time.Time
}

// TournamentNames lists every stored tournament, most recently fetched first.
func (s Store) TournamentNames(ctx context.Context) ([]TournamentSummary, error) {
	rows, err := s.qry.GetTournamentNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TournamentSummary, len(rows))
	for i, r := range rows {
		out[i] = TournamentSummary{
			Id:        int(r.ID),
			Name:      r.Name,
			Year:      r.Year,
			FetchedAt: time.Unix(r.FetchedAt, 0),
		}
	}
	return out, nil
}

func (s Store) CountBallots(ctx context.Context, tournId int) (int, error) {
	count, err := s.qry.CountBallots(ctx, int64(tournId))
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

type EntryRecord struct {
	Event       string
	Code        string
	Name        string
	Preliminary tabroom.TournamentRecord
}

// EntryRecords returns the preliminary record of every stored entry of a
// tournament in event then entry order.
func (s Store) EntryRecords(ctx context.Context, tournId int) ([]EntryRecord, error) {
	rows, err := s.qry.GetEntryRecords(ctx, int64(tournId))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		slog.DebugContext(ctx, "no stored entries", "tourn_id", tournId)
	}
	out := make([]EntryRecord, len(rows))
	for i, r := range rows {
		out[i] = EntryRecord{
			Event: r.EventName,
			Code:  r.Code,
			Name:  r.Name,
			Preliminary: tabroom.TournamentRecord{
				Wins:   int(r.PrelimWon),
				Losses: int(r.PrelimLost),
			},
		}
	}
	return out, nil
}

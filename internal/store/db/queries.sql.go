package db

import (
	"context"
)

const deleteTournamentBallots = `-- name: DeleteTournamentBallots :exec
delete from ballot where entry_id in (
    select id from entry where tournament_id = ?
)
`

func (q *Queries) DeleteTournamentBallots(ctx context.Context, tournamentID int64) error {
	_, err := q.db.ExecContext(ctx, deleteTournamentBallots, tournamentID)
	return err
}

const deleteTournamentEntries = `-- name: DeleteTournamentEntries :exec
delete from entry where tournament_id = ?
`

func (q *Queries) DeleteTournamentEntries(ctx context.Context, tournamentID int64) error {
	_, err := q.db.ExecContext(ctx, deleteTournamentEntries, tournamentID)
	return err
}

const deleteTournamentEventFields = `-- name: DeleteTournamentEventFields :exec
delete from event_field where tournament_id = ?
`

func (q *Queries) DeleteTournamentEventFields(ctx context.Context, tournamentID int64) error {
	_, err := q.db.ExecContext(ctx, deleteTournamentEventFields, tournamentID)
	return err
}

const deleteTournamentEvents = `-- name: DeleteTournamentEvents :exec
delete from event where tournament_id = ?
`

func (q *Queries) DeleteTournamentEvents(ctx context.Context, tournamentID int64) error {
	_, err := q.db.ExecContext(ctx, deleteTournamentEvents, tournamentID)
	return err
}

const deleteTournamentJudges = `-- name: DeleteTournamentJudges :exec
delete from judge where tournament_id = ?
`

func (q *Queries) DeleteTournamentJudges(ctx context.Context, tournamentID int64) error {
	_, err := q.db.ExecContext(ctx, deleteTournamentJudges, tournamentID)
	return err
}

const deleteTournament = `-- name: DeleteTournament :exec
delete from tournament where id = ?
`

func (q *Queries) DeleteTournament(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteTournament, id)
	return err
}

const createTournament = `-- name: CreateTournament :exec
insert into tournament(id, name, year, location, description, fetched_at)
values (?, ?, ?, ?, ?, ?)
`

type CreateTournamentParams struct {
	ID          int64
	Name        string
	Year        string
	Location    string
	Description string
	FetchedAt   int64
}

func (q *Queries) CreateTournament(ctx context.Context, arg CreateTournamentParams) error {
	_, err := q.db.ExecContext(ctx, createTournament,
		arg.ID,
		arg.Name,
		arg.Year,
		arg.Location,
		arg.Description,
		arg.FetchedAt,
	)
	return err
}

const createEvent = `-- name: CreateEvent :exec
insert into event(tournament_id, position, event_id, name)
values (?, ?, ?, ?)
`

type CreateEventParams struct {
	TournamentID int64
	Position     int64
	EventID      int64
	Name         string
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.TournamentID,
		arg.Position,
		arg.EventID,
		arg.Name,
	)
	return err
}

const createEventField = `-- name: CreateEventField :exec
insert into event_field(tournament_id, event_position, field_key, field_value)
values (?, ?, ?, ?)
`

type CreateEventFieldParams struct {
	TournamentID  int64
	EventPosition int64
	FieldKey      string
	FieldValue    string
}

func (q *Queries) CreateEventField(ctx context.Context, arg CreateEventFieldParams) error {
	_, err := q.db.ExecContext(ctx, createEventField,
		arg.TournamentID,
		arg.EventPosition,
		arg.FieldKey,
		arg.FieldValue,
	)
	return err
}

const createEntry = `-- name: CreateEntry :one
insert into entry(tournament_id, event_position, school, location, name, code)
values (?, ?, ?, ?, ?, ?)
returning id
`

type CreateEntryParams struct {
	TournamentID  int64
	EventPosition int64
	School        string
	Location      string
	Name          string
	Code          string
}

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createEntry,
		arg.TournamentID,
		arg.EventPosition,
		arg.School,
		arg.Location,
		arg.Name,
		arg.Code,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createBallot = `-- name: CreateBallot :exec
insert into ballot(
    entry_id, round_id, decision, ballots_won, ballots_lost, elim, level,
    judge, side, opponent, round_label, speaker1_points, speaker2_points
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateBallotParams struct {
	EntryID        int64
	RoundID        int64
	Decision       string
	BallotsWon     int64
	BallotsLost    int64
	Elim           int64
	Level          string
	Judge          string
	Side           string
	Opponent       string
	RoundLabel     string
	Speaker1Points float64
	Speaker2Points float64
}

func (q *Queries) CreateBallot(ctx context.Context, arg CreateBallotParams) error {
	_, err := q.db.ExecContext(ctx, createBallot,
		arg.EntryID,
		arg.RoundID,
		arg.Decision,
		arg.BallotsWon,
		arg.BallotsLost,
		arg.Elim,
		arg.Level,
		arg.Judge,
		arg.Side,
		arg.Opponent,
		arg.RoundLabel,
		arg.Speaker1Points,
		arg.Speaker2Points,
	)
	return err
}

const createJudge = `-- name: CreateJudge :exec
insert into judge(tournament_id, category, first_name, last_name, school, location, has_paradigm)
values (?, ?, ?, ?, ?, ?, ?)
`

type CreateJudgeParams struct {
	TournamentID int64
	Category     string
	FirstName    string
	LastName     string
	School       string
	Location     string
	HasParadigm  int64
}

func (q *Queries) CreateJudge(ctx context.Context, arg CreateJudgeParams) error {
	_, err := q.db.ExecContext(ctx, createJudge,
		arg.TournamentID,
		arg.Category,
		arg.FirstName,
		arg.LastName,
		arg.School,
		arg.Location,
		arg.HasParadigm,
	)
	return err
}

const getTournamentNames = `-- name: GetTournamentNames :many
select id, name, year, fetched_at from tournament
order by fetched_at desc, id asc
`

type GetTournamentNamesRow struct {
	ID        int64
	Name      string
	Year      string
	FetchedAt int64
}

func (q *Queries) GetTournamentNames(ctx context.Context) ([]GetTournamentNamesRow, error) {
	rows, err := q.db.QueryContext(ctx, getTournamentNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetTournamentNamesRow
	for rows.Next() {
		var i GetTournamentNamesRow
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Year,
			&i.FetchedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countBallots = `-- name: CountBallots :one
select count(*) from ballot
inner join entry on entry.id = ballot.entry_id
where entry.tournament_id = ?
`

func (q *Queries) CountBallots(ctx context.Context, tournamentID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countBallots, tournamentID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getEntryRecords = `-- name: GetEntryRecords :many
select
    event.name as event_name,
    entry.code,
    entry.name,
    cast(coalesce(sum(case when ballot.elim = 0 then ballot.ballots_won end), 0) as integer) as prelim_won,
    cast(coalesce(sum(case when ballot.elim = 0 then ballot.ballots_lost end), 0) as integer) as prelim_lost
from entry
inner join event on event.tournament_id = entry.tournament_id
    and event.position = entry.event_position
left join ballot on ballot.entry_id = entry.id
where entry.tournament_id = ?
group by entry.id
order by event.position asc, entry.id asc
`

type GetEntryRecordsRow struct {
	EventName  string
	Code       string
	Name       string
	PrelimWon  int64
	PrelimLost int64
}

func (q *Queries) GetEntryRecords(ctx context.Context, tournamentID int64) ([]GetEntryRecordsRow, error) {
	rows, err := q.db.QueryContext(ctx, getEntryRecords, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetEntryRecordsRow
	for rows.Next() {
		var i GetEntryRecordsRow
		if err := rows.Scan(
			&i.EventName,
			&i.Code,
			&i.Name,
			&i.PrelimWon,
			&i.PrelimLost,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

package tabroom

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// GetCurrentUser reads the profile of the logged in account.
func (c *Client) GetCurrentUser(ctx context.Context) (User, error) {
	if !c.IsLoggedIn() {
		return User{}, ErrAuthenticationRequired
	}
	ctx, span := tracer.Start(ctx, "GetCurrentUser")
	defer span.End()

	doc, err := c.fetchDocument(ctx, c.urls.profile(), true)
	if err != nil {
		return User{}, err
	}
	return parseUser(doc)
}

// GetJudgeParadigm returns the paradigm text of a judge, "" for ids <= 0 or
// judges without one.
func (c *Client) GetJudgeParadigm(ctx context.Context, judgeId int) (string, error) {
	if !c.IsLoggedIn() {
		return "", ErrAuthenticationRequired
	}
	if judgeId <= 0 {
		return "", nil
	}

	doc, err := c.fetchDocument(ctx, c.urls.paradigm(judgeId), true)
	if err != nil {
		return "", err
	}
	return parseParadigm(doc), nil
}

// GetRoundResults reads the rounds a student competed in at a tournament,
// fetching the paradigm of every judge that has one.
func (c *Client) GetRoundResults(ctx context.Context, tournId, studentId int) ([]Round, error) {
	if !c.IsLoggedIn() {
		return nil, ErrAuthenticationRequired
	}
	ctx, span := tracer.Start(ctx, "GetRoundResults")
	defer span.End()
	span.SetAttributes(attribute.Int("tourn_id", tournId), attribute.Int("student_id", studentId))

	doc, err := c.fetchDocument(ctx, c.urls.history(tournId, studentId), true)
	if err != nil {
		return nil, err
	}
	parsed := parseRounds(doc)

	g, gctx := errgroup.WithContext(ctx)
	for i := range parsed {
		for j := range parsed[i].data {
			if parsed[i].data[j].paradigmId <= 0 {
				continue
			}
			g.Go(func() error {
				paradigm, err := c.GetJudgeParadigm(gctx, parsed[i].data[j].paradigmId)
				if err != nil {
					return err
				}
				parsed[i].data[j].data.JudgeParadigm = paradigm
				return nil
			})
		}
	}
	err = g.Wait()
	if err != nil {
		return nil, err
	}

	rounds := make([]Round, len(parsed))
	for i, p := range parsed {
		rounds[i] = p.round
		for _, d := range p.data {
			rounds[i].Data = append(rounds[i].Data, d.data)
		}
	}
	return rounds, nil
}

// inferLevel guesses the level of a history entry from its division and
// tournament name.
func inferLevel(division, tournament string) DebateLevel {
	division = strings.ToLower(division)
	tournament = strings.ToLower(tournament)
	switch {
	case strings.Contains(division, "varsity") || strings.Contains(tournament, "varsity"):
		return LevelVarsity
	case strings.Contains(division, "jv"):
		return LevelJV
	case strings.Contains(division, "novice"):
		return LevelNovice
	}
	return LevelOpen
}

// backfillBallots copies what only the history row knows onto every ballot
// of the entry.
func backfillBallots(entry *TournamentEntry) {
	level := inferLevel(entry.Division, entry.Tournament.Name)
	for i := range entry.Rounds {
		for j := range entry.Rounds[i].Data {
			data := &entry.Rounds[i].Data[j]
			if data.Ballot == nil {
				continue
			}
			data.Ballot.Tournament = entry.Tournament.Name
			data.Ballot.TournamentDate = entry.Tournament.Year
			data.Ballot.EventName = entry.Division
			data.Ballot.Judge = fmt.Sprintf("%s, %s", data.Judge.LastName, data.Judge.FirstName)
			data.Ballot.Level = level
		}
	}
}

// GetEntryHistory reads the latest `limit` tournaments the user competed in,
// 0 reads all of them. Tabroom answers with a 502 when too many are
// requested at once so callers should keep the limit small.
func (c *Client) GetEntryHistory(ctx context.Context, limit int) ([]TournamentEntry, error) {
	if !c.IsLoggedIn() {
		return nil, ErrAuthenticationRequired
	}
	ctx, span := tracer.Start(ctx, "GetEntryHistory")
	defer span.End()

	home, err := c.fetchDocument(ctx, c.urls.userHome(), true)
	if err != nil {
		return nil, err
	}
	rows := parseHistoryRows(home, limit)
	history := make([]TournamentEntry, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	for i, row := range rows {
		history[i] = TournamentEntry{
			Date:     row.date,
			Code:     row.code,
			Division: row.division,
		}
		g.Go(func() error {
			tourney, err := c.GetTournament(gctx, row.tournId)
			if err != nil {
				return err
			}
			history[i].Tournament = tourney
			return nil
		})
		g.Go(func() error {
			rounds, err := c.GetRoundResults(gctx, row.tournId, row.studentId)
			if err != nil {
				return err
			}
			history[i].Rounds = rounds
			return nil
		})
	}
	err = g.Wait()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	for i := range history {
		backfillBallots(&history[i])
	}
	return history, nil
}

// GetCurrentSessions lists the login sessions of the account.
func (c *Client) GetCurrentSessions(ctx context.Context) ([]Session, error) {
	if !c.IsLoggedIn() {
		return nil, ErrAuthenticationRequired
	}

	doc, err := c.fetchDocument(ctx, c.urls.profile(), true)
	if err != nil {
		return nil, err
	}
	return parseSessions(doc), nil
}

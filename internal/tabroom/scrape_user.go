package tabroom

import (
	"fmt"
	"strings"

	"tabroomapi/lib/htmlutil"
)

const (
	selectorUserTimeZone = `select[name="timezone"] option[selected]`
	selectorUserState    = `select[name="state"] option[selected]`
	selectorUserCountry  = `select[name="country"] option[selected]`
	selectorNsdaBox      = "div.odd.smallish > span.half"

	selectorParadigm = "div.screens > div.paradigm"

	selectorRoundRow    = "div.main > div.full > table > tbody > tr.row"
	selectorFeedbackRow = "div.main > div.full > table > tbody > tr.feedback"

	selectorUserResultsRow = "div.screens.results > table > tbody > tr"
	selectorSessionRow     = "div.main > div.full.flexrow.row.ltborderbottom.smallish"
)

func inputOr(doc htmlutil.Document, name, fallback string) string {
	value, ok := doc.InputValue(name)
	if !ok {
		return fallback
	}
	return value
}

func selectedOr(doc htmlutil.Document, selector, fallback string) string {
	text, ok := firstText(doc, selector)
	if !ok {
		return fallback
	}
	return text
}

// parseNsda reads the NSDA box of the profile page, nil when the account is
// not linked to an NSDA membership.
func parseNsda(doc htmlutil.Document) (*NSDAUser, error) {
	info := doc.QuerySelectorAll(selectorNsdaBox)
	if len(info) == 0 {
		return nil, nil
	}
	if len(info) < 10 {
		return nil, &StructuralMismatchError{
			Page:   doc.Url,
			Reason: fmt.Sprintf("NSDA info is incomplete: expected 10 elements, got %d", len(info)),
		}
	}

	// the member id is rendered with a leading '#'
	memberId := info[3].TextContent()
	if memberId != "" {
		memberId = memberId[1:]
	}

	return &NSDAUser{
		FullName:           info[1].TextContent(),
		MemberId:           atoiOr(memberId, 0),
		MeritPoints:        atoiOr(info[5].TextContent(), 0),
		PointsToNextDegree: atoiOr(info[7].TextContent(), -1),
		LastPointsDate:     info[9].TextContent(),
	}, nil
}

// parseUser reads the profile page. Every field has its own default, only an
// unrecognizable NSDA box fails.
func parseUser(doc htmlutil.Document) (User, error) {
	nsda, err := parseNsda(doc)
	if err != nil {
		return User{}, err
	}
	return User{
		Email:       inputOr(doc, "email", ""),
		FirstName:   inputOr(doc, "first", ""),
		MiddleName:  inputOr(doc, "middle", ""),
		LastName:    inputOr(doc, "last", ""),
		PhoneNumber: inputOr(doc, "phone", "(000) 000-0000"),
		Pronouns:    inputOr(doc, "pronoun", "He/Him"),
		TimeZone:    selectedOr(doc, selectorUserTimeZone, "Unknown"),
		Address:     inputOr(doc, "street", ""),
		City:        inputOr(doc, "city", "Unknown"),
		State:       selectedOr(doc, selectorUserState, "Unknown"),
		Country:     selectedOr(doc, selectorUserCountry, "Unknown"),
		ZipCode:     atoiOr(inputOr(doc, "zip", ""), 0),
		Nsda:        nsda,
	}, nil
}

func parseParadigm(doc htmlutil.Query) string {
	text, _ := firstText(doc, selectorParadigm)
	return text
}

// splitJudgeName splits "A, B" positionally into A and B.
func splitJudgeName(name string) (string, string) {
	first, last, _ := strings.Cut(name, ", ")
	return first, last
}

// parsedRoundData is a RoundData whose paradigm still has to be fetched.
type parsedRoundData struct {
	data       RoundData
	paradigmId int
}

type parsedRound struct {
	round Round
	data  []parsedRoundData
}

func parseRoundJudge(cell htmlutil.Element) (Judge, int, bool) {
	first, ok := cell.Path(0, 0)
	if !ok {
		return Judge{}, 0, false
	}

	// judges with a paradigm are rendered as a span wrapping a link, the
	// name follows in the next element
	if len(first.Children()) == 0 {
		firstName, lastName := splitJudgeName(first.TextContent())
		return Judge{
			FirstName: firstName,
			LastName:  lastName,
			School:    "Unknown",
			Location:  "Unknown",
		}, 0, true
	}

	link, _ := first.Child(0)
	href, ok := link.Attr("href")
	if !ok {
		return Judge{}, 0, false
	}
	_, idText, found := strings.Cut(href, "judge_person_id=")
	if !found {
		return Judge{}, 0, false
	}
	judgeId := atoiOr(idText, -1)
	if judgeId < 0 {
		return Judge{}, 0, false
	}
	second, ok := cell.Path(0, 1)
	if !ok {
		return Judge{}, 0, false
	}
	firstName, lastName := splitJudgeName(second.TextContent())
	return Judge{
		FirstName:   firstName,
		LastName:    lastName,
		School:      "Unknown",
		Location:    "Unknown",
		HasParadigm: true,
	}, judgeId, true
}

func parseRoundBallot(cell htmlutil.Element, side DebateSide, opponent string) *Ballot {
	result, ok := cell.Child(1)
	if !ok || len(result.Children()) < 2 {
		return nil
	}
	decisionCell, _ := result.Child(0)
	decision := decisionCell.TextContent()
	won := 0
	if decision == "W" {
		won = 1
	}

	b := newBallot(1-won, won, decision, false)
	b.Side = side
	b.Opponent = opponent
	b.Tournament = "Unknown"
	b.TournamentDate = "Unknown"

	points, _ := result.Child(1)
	if speaker, ok := points.Path(0, 1); ok {
		b.Speaker1Points = parseFloatOr(speaker.TextContent(), 0)
	}
	if speaker, ok := points.Path(1, 1); ok {
		b.Speaker2Points = parseFloatOr(speaker.TextContent(), 0)
	}
	return &b
}

// parseRounds reads the round table of a results page in document order.
// Rows missing their basic columns are skipped, so are judge cells that are
// shorter than expected.
func parseRounds(doc htmlutil.Document) []parsedRound {
	rows := doc.QuerySelectorAll(selectorRoundRow)
	feedback := doc.QuerySelectorAll(selectorFeedbackRow)

	var rounds []parsedRound
	for i, row := range rows {
		cols := row.Children()
		if len(cols) < 5 {
			continue
		}

		label := cols[0].TextContent()
		if inner, ok := cols[0].Child(0); ok {
			label = inner.TextContent()
		}
		side := ParseDebateSide(cols[3].TextContent())
		opponent := cols[4].TextContent()

		r := parsedRound{round: Round{
			Label: label,
			Start: cols[1].TextContent(),
			Room:  cols[2].TextContent(),
			Data:  []RoundData{},
		}}
		if len(cols) > 5 {
			if link, ok := cols[5].Child(0); ok {
				r.round.DocShareLink = link.AttrOr("href", "")
			}
		}

		if len(cols) > 6 {
			if panel, ok := cols[6].Path(0, 0); ok {
				rfd := ""
				if firstJudge, ok := panel.Child(0); ok && len(firstJudge.Children()) > 1 && i < len(feedback) {
					rfd = feedback[i].TextContent()
				}

				for _, cell := range panel.Children() {
					judge, paradigmId, ok := parseRoundJudge(cell)
					if !ok {
						continue
					}
					r.data = append(r.data, parsedRoundData{
						data: RoundData{
							Judge:  judge,
							Ballot: parseRoundBallot(cell, side, opponent),
							Rfd:    rfd,
						},
						paradigmId: paradigmId,
					})
				}
			}
		}

		rounds = append(rounds, r)
	}
	return rounds
}

type historyRow struct {
	date      string
	code      string
	division  string
	tournId   int
	studentId int
}

// parseHistoryRows reads up to limit rows of the results table on the user's
// home page, limit 0 reads every row.
func parseHistoryRows(doc htmlutil.Query, limit int) []historyRow {
	rows := doc.QuerySelectorAll(selectorUserResultsRow)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	var out []historyRow
	for _, row := range rows {
		cols := row.Children()
		if len(cols) < 5 {
			continue
		}
		link, ok := cols[4].Child(0)
		if !ok {
			continue
		}
		href, ok := link.Attr("href")
		if !ok {
			continue
		}
		out = append(out, historyRow{
			date:      cols[1].TextContent(),
			code:      cols[2].TextContent(),
			division:  cols[3].TextContent(),
			tournId:   queryInt(href, "tourn_id"),
			studentId: queryInt(href, "student_id"),
		})
	}
	return out
}

func optionalText(e htmlutil.Element) *string {
	text := e.TextContent()
	if text == "" {
		return nil
	}
	return &text
}

func parseSessions(doc htmlutil.Query) []Session {
	sessions := []Session{}
	for _, row := range doc.QuerySelectorAll(selectorSessionRow) {
		cols := row.Children()
		if len(cols) < 6 {
			continue
		}
		sessions = append(sessions, Session{
			LastActiveTime: optionalText(cols[0]),
			LastActiveDate: optionalText(cols[1]),
			Browser:        cols[2].TextContent(),
			Ip:             cols[3].TextContent(),
			Isp:            optionalText(cols[4]),
			Location:       optionalText(cols[5]),
		})
	}
	return sessions
}

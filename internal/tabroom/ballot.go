package tabroom

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/titanous/json5"
)

// Ballot is the decision of one round for one entry.
type Ballot struct {
	BallotsLost    int         `json:"ballotsLost"`
	BallotsWon     int         `json:"ballotsWon"`
	BallotsCount   int         `json:"ballotsCount"`
	Decision       string      `json:"decision"`
	IsElimination  bool        `json:"isElimination"`
	Level          DebateLevel `json:"level"`
	EventName      string      `json:"eventName"`
	Judge          string      `json:"judge"`
	Side           DebateSide  `json:"side"`
	Opponent       string      `json:"opponent"`
	Round          int         `json:"round"`
	RoundLabel     string      `json:"roundLabel"`
	Speaker1Points float64     `json:"speaker1Points"`
	Speaker2Points float64     `json:"speaker2Points"`
	Tournament     string      `json:"tournament"`
	TournamentDate string      `json:"tournamentDate"`
	IsThisYear     bool        `json:"isThisYear"`
}

func (b Ballot) IsWin() bool {
	return b.Decision == "W" || b.Decision == "1" || b.Decision == "2"
}

// newBallot fills in the defaults tabroom leaves implied.
func newBallot(lost, won int, decision string, elim bool) Ballot {
	return Ballot{
		BallotsLost:   lost,
		BallotsWon:    won,
		BallotsCount:  lost + won,
		Decision:      decision,
		IsElimination: elim,
		Level:         LevelOpen,
		EventName:     "Unknown",
		Judge:         "Unknown",
		Side:          SideUnknown,
		Opponent:      "Unknown",
		RoundLabel:    "0",
	}
}

const panelsMarker = "var panels = "

// extractPanels returns the object literal assigned to `panels` in an inline
// script, "" when the page has none.
func extractPanels(html string) string {
	_, after, found := strings.Cut(html, panelsMarker)
	if !found {
		return ""
	}
	literal, _, _ := strings.Cut(after, ";")
	return strings.TrimSpace(literal)
}

type skippedBallot struct {
	key    string
	reason string
}

// parseRecord decodes the round-keyed ballots embedded in an entry record
// page. Entries that are not objects, are empty or fail to decode are skipped
// and returned so the caller can report them.
func parseRecord(html string) (map[int]Ballot, []skippedBallot, error) {
	ballots := map[int]Ballot{}

	literal := extractPanels(html)
	if literal == "" {
		return ballots, nil, nil
	}

	var panels map[string]any
	err := json5.Unmarshal([]byte(literal), &panels)
	if err != nil {
		return ballots, nil, fmt.Errorf("decode panels: %w", err)
	}

	keys := make([]string, 0, len(panels))
	for k := range panels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var skipped []skippedBallot
	for _, key := range keys {
		obj, ok := panels[key].(map[string]any)
		if !ok || len(obj) == 0 {
			continue
		}
		round, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			skipped = append(skipped, skippedBallot{key: key, reason: "round id is not an integer"})
			continue
		}
		ballot, err := decodeBallot(obj)
		if err != nil {
			skipped = append(skipped, skippedBallot{key: key, reason: err.Error()})
			continue
		}
		ballots[round] = ballot
	}
	return ballots, skipped, nil
}

func decodeBallot(obj map[string]any) (Ballot, error) {
	tourn, ok := obj["tourn"]
	if !ok {
		return Ballot{}, fmt.Errorf("missing tourn")
	}
	tournStart, ok := obj["tourn_start"]
	if !ok {
		return Ballot{}, fmt.Errorf("missing tourn_start")
	}
	elim, ok := obj["elim"]
	if !ok {
		return Ballot{}, fmt.Errorf("missing elim")
	}

	decision := "L"
	if value, ok := obj["decision_str"]; ok && value != nil {
		decision = scalarString(value)
	}
	b := newBallot(
		scalarInt(obj["ballots_lost"]),
		scalarInt(obj["ballots_won"]),
		decision,
		scalarBool(elim),
	)
	if value, ok := obj["total_ballots"]; ok && value != nil {
		b.BallotsCount = scalarInt(value)
	}
	if value, ok := obj["event_level"]; ok && value != nil {
		b.Level, _ = ParseDebateLevel(scalarString(value))
	}
	if value, ok := obj["event_name"]; ok {
		b.EventName = scalarString(value)
	}
	if value, ok := obj["judge_raw"]; ok {
		b.Judge = scalarString(value)
	}
	if value, ok := obj["side"]; ok {
		b.Side = ParseDebateSide(scalarString(value))
	}
	if value, ok := obj["opponent"]; ok {
		b.Opponent = scalarString(value)
	}
	if value, ok := obj["round_name"]; ok {
		b.Round = scalarInt(value)
	}
	b.RoundLabel = strconv.Itoa(b.Round)
	if value, ok := obj["round_label"]; ok && value != nil {
		b.RoundLabel = scalarString(value)
	}
	b.Speaker1Points = scalarFloat(obj["speaker1_pts"])
	b.Speaker2Points = scalarFloat(obj["speaker2_pts"])
	b.Tournament = scalarString(tourn)
	b.TournamentDate = scalarString(tournStart)
	b.IsThisYear = scalarBool(obj["this_yr"])

	return b, nil
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(value)
}

func scalarInt(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		return atoiOr(v, 0)
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

func scalarFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		return parseFloatOr(v, 0)
	}
	return 0
}

func scalarBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v == 1
	case string:
		return strings.TrimSpace(v) == "1"
	}
	return false
}

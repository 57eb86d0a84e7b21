package tabroom

import (
	"fmt"
	"strconv"
	"strings"
)

// TournamentRecord is a win-loss tally. Losses of -1 marks a ranking (speech
// style events) instead of a win-loss record.
type TournamentRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (r TournamentRecord) Total() int {
	return r.Wins + r.Losses
}

func (r TournamentRecord) WinPercentage() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Total())
}

func (r TournamentRecord) LossPercentage() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(r.Losses) / float64(r.Total())
}

func (r TournamentRecord) isRanking() bool {
	return r.Losses < 0
}

// Add combines two records, a nil record counts as 0-0. A ranking on either
// side makes the sum a ranking.
func (r TournamentRecord) Add(other *TournamentRecord) TournamentRecord {
	if other == nil {
		return r
	}
	if r.isRanking() || other.isRanking() {
		return TournamentRecord{Wins: r.Wins + other.Wins, Losses: -1}
	}
	return TournamentRecord{Wins: r.Wins + other.Wins, Losses: r.Losses + other.Losses}
}

// Sub is the inverse of Add, a nil record counts as 0-0. Losses of a win-loss
// difference never drop below 0.
func (r TournamentRecord) Sub(other *TournamentRecord) TournamentRecord {
	if other == nil {
		return r
	}
	if r.isRanking() || other.isRanking() {
		return TournamentRecord{Wins: r.Wins - other.Wins, Losses: -1}
	}
	return TournamentRecord{Wins: r.Wins - other.Wins, Losses: max(r.Losses-other.Losses, 0)}
}

func (r TournamentRecord) String() string {
	if r.Losses < 0 {
		return strconv.Itoa(r.Wins)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// ParseTournamentRecord parses "W-L". A lone "W" parses as a ranking so
// that it is the inverse of String.
func ParseTournamentRecord(record string) (TournamentRecord, error) {
	winsText, lossesText, found := strings.Cut(strings.TrimSpace(record), "-")
	wins, err := strconv.Atoi(strings.TrimSpace(winsText))
	if err != nil {
		return TournamentRecord{}, fmt.Errorf("parse wins of record '%s': %w", record, err)
	}
	if !found {
		return TournamentRecord{Wins: wins, Losses: -1}, nil
	}
	losses, err := strconv.Atoi(strings.TrimSpace(lossesText))
	if err != nil {
		return TournamentRecord{}, fmt.Errorf("parse losses of record '%s': %w", record, err)
	}
	if losses < -1 {
		return TournamentRecord{}, fmt.Errorf("invalid losses in record '%s'", record)
	}
	return TournamentRecord{Wins: wins, Losses: losses}, nil
}

// ParseMultiJudge counts the W and L decisions of a panel such as "WWL".
func ParseMultiJudge(record string) TournamentRecord {
	return TournamentRecord{
		Wins:   strings.Count(record, "W"),
		Losses: strings.Count(record, "L"),
	}
}

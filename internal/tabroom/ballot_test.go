package tabroom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBallotIsWin(t *testing.T) {
	require.True(t, Ballot{Decision: "W"}.IsWin())
	require.False(t, Ballot{Decision: "L"}.IsWin())
	require.True(t, Ballot{Decision: "1"}.IsWin())
	require.True(t, Ballot{Decision: "2"}.IsWin())
	require.False(t, Ballot{}.IsWin())
}

const recordPage = `<html><head><script>
	var panels = {
		"101": {
			"ballots_lost": 0, "ballots_won": 1, "decision_str": "W", "elim": 0,
			"event_level": "varsity", "event_name": "Varsity LD", "judge_raw": "Smith, Jane",
			"side": "aff", "opponent": "Lincoln AB", "round_name": 1, "round_label": 1,
			"speaker1_pts": "28.5", "speaker2_pts": "",
			"tourn": "Jack Howe 2024", "tourn_start": "2024-09-21", "this_yr": 1
		},
		"102": {
			"ballots_lost": "2", "ballots_won": "1", "decision_str": "L", "elim": "1",
			"event_level": "Champ", "round_name": "7", "round_label": "Quarters",
			"tourn": "Jack Howe 2024", "tourn_start": "2024-09-21"
		},
		"103": {},
		"104": [],
		"105": {"ballots_won": 1},
		"abc": {"tourn": "x", "tourn_start": "y", "elim": 0},
		"106": {"tourn": "x", "tourn_start": "y", "elim": 1, "total_ballots": 5, "event_level": "martian"}
	};
</script></head><body></body></html>`

func TestParseRecord(t *testing.T) {
	ballots, skipped, err := parseRecord(recordPage)
	require.Nil(t, err)
	require.Len(t, ballots, 3)

	first := newBallot(0, 1, "W", false)
	first.Level = LevelVarsity
	first.EventName = "Varsity LD"
	first.Judge = "Smith, Jane"
	first.Side = SideAffirmative
	first.Opponent = "Lincoln AB"
	first.Round = 1
	first.RoundLabel = "1"
	first.Speaker1Points = 28.5
	first.Tournament = "Jack Howe 2024"
	first.TournamentDate = "2024-09-21"
	first.IsThisYear = true
	diff := cmp.Diff(first, ballots[101])
	require.Empty(t, diff)
	require.True(t, ballots[101].IsWin())

	elim := ballots[102]
	require.True(t, elim.IsElimination)
	require.Equal(t, 3, elim.BallotsCount)
	require.Equal(t, LevelVarsity, elim.Level)
	require.Equal(t, 7, elim.Round)
	require.Equal(t, "Quarters", elim.RoundLabel)
	require.Equal(t, "Unknown", elim.EventName)
	require.Equal(t, SideUnknown, elim.Side)

	overridden := ballots[106]
	require.Equal(t, 5, overridden.BallotsCount)
	require.Equal(t, LevelOpen, overridden.Level)
	require.Equal(t, "0", overridden.RoundLabel)

	var keys []string
	for _, s := range skipped {
		keys = append(keys, s.key)
	}
	require.Equal(t, []string{"105", "abc"}, keys)
}

func TestParseRecordWithoutPanels(t *testing.T) {
	ballots, skipped, err := parseRecord("<html><body>no script here</body></html>")
	require.Nil(t, err)
	require.Empty(t, ballots)
	require.Empty(t, skipped)

	ballots, _, err = parseRecord("<script>var panels = {broken: ;</script>")
	require.NotNil(t, err)
	require.Empty(t, ballots)
}

func TestBallotInvariants(t *testing.T) {
	ballots, _, err := parseRecord(recordPage)
	require.Nil(t, err)
	for round, b := range ballots {
		if round == 106 {
			continue
		}
		require.Equal(t, b.BallotsWon+b.BallotsLost, b.BallotsCount, round)
	}
}

func TestDebateLevelAndSide(t *testing.T) {
	cases := map[string]DebateLevel{
		"n": LevelNovice, "Novice": LevelNovice,
		"junior varsity": LevelJV, "middle": LevelJV, "JV": LevelJV,
		"v": LevelVarsity, "champ": LevelVarsity, "varsity": LevelVarsity,
		"o": LevelOpen, "rr": LevelOpen, "open": LevelOpen,
	}
	for input, expected := range cases {
		level, ok := ParseDebateLevel(input)
		require.True(t, ok, input)
		require.Equal(t, expected, level, input)
	}
	_, ok := ParseDebateLevel("martian")
	require.False(t, ok)

	require.Equal(t, SideAffirmative, ParseDebateSide("Pro"))
	require.Equal(t, SideNegative, ParseDebateSide("con"))
	require.Equal(t, SideNegative, ParseDebateSide("NEG"))
	require.Equal(t, SideUnknown, ParseDebateSide("bye"))
}

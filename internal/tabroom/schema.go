package tabroom

import "strings"

type Tournament struct {
	Name string `json:"name"`

	// DescriptionHTML is the description markup as re-serialized by the html
	// parser: text is entity-escaped, attributes are double quoted and void
	// tags lose their closing slash.
	DescriptionHTML string `json:"descriptionHTML"`

	// Description is DescriptionHTML without tags and with entities decoded.
	Description string `json:"description"`

	Year     string             `json:"year"`
	Location string             `json:"location"`
	Events   []Event            `json:"events"`
	Judges   map[string][]Judge `json:"judges"`
}

type Event struct {
	Name    string            `json:"name"`
	Id      int               `json:"id"`
	Fields  map[string]string `json:"fields"`
	Entries []Entry           `json:"entries"`
}

type Entry struct {
	School   string         `json:"school"`
	Location string         `json:"location"`
	Name     string         `json:"name"`
	Code     string         `json:"code"`
	Ballots  map[int]Ballot `json:"ballots"`
}

// Preliminary tallies every non-elimination ballot of the entry.
func (e Entry) Preliminary() TournamentRecord {
	return e.tally(false)
}

// Elimination tallies every elimination ballot of the entry.
func (e Entry) Elimination() TournamentRecord {
	return e.tally(true)
}

func (e Entry) tally(elim bool) TournamentRecord {
	var record TournamentRecord
	for _, b := range e.Ballots {
		if b.IsElimination != elim {
			continue
		}
		record.Wins += b.BallotsWon
		record.Losses += b.BallotsLost
	}
	return record
}

type Judge struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	School      string `json:"school"`
	Location    string `json:"location"`
	HasParadigm bool   `json:"hasParadigm"`
}

type DebateLevel int

const (
	LevelNovice DebateLevel = iota
	LevelJV
	LevelVarsity
	LevelOpen
)

var debateLevelNames = map[DebateLevel]string{
	LevelNovice:  "NOVICE",
	LevelJV:      "JV",
	LevelVarsity: "VARSITY",
	LevelOpen:    "OPEN",
}

var debateLevelAliases = map[DebateLevel][]string{
	LevelNovice:  {"n"},
	LevelJV:      {"junior varsity", "middle"},
	LevelVarsity: {"v", "champ"},
	LevelOpen:    {"o", "rr"},
}

func (l DebateLevel) String() string {
	name, ok := debateLevelNames[l]
	if !ok {
		return "OPEN"
	}
	return name
}

// Aliases are the lowercase spellings tabroom uses for a level, the level's
// own name included.
func (l DebateLevel) Aliases() []string {
	out := append([]string{}, debateLevelAliases[l]...)
	return append(out, strings.ToLower(l.String()))
}

// ParseDebateLevel matches s case-insensitively against every alias.
func ParseDebateLevel(s string) (DebateLevel, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, level := range []DebateLevel{LevelNovice, LevelJV, LevelVarsity, LevelOpen} {
		for _, alias := range level.Aliases() {
			if alias == lower {
				return level, true
			}
		}
	}
	return LevelOpen, false
}

func (l DebateLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *DebateLevel) UnmarshalText(text []byte) error {
	*l, _ = ParseDebateLevel(string(text))
	return nil
}

type DebateSide int

const (
	SideUnknown DebateSide = iota
	SideAffirmative
	SideNegative
)

func (s DebateSide) String() string {
	switch s {
	case SideAffirmative:
		return "AFFIRMATIVE"
	case SideNegative:
		return "NEGATIVE"
	}
	return "UNKNOWN"
}

func ParseDebateSide(s string) DebateSide {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "affirmative", "aff", "pro":
		return SideAffirmative
	case "negative", "neg", "con":
		return SideNegative
	}
	return SideUnknown
}

func (s DebateSide) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *DebateSide) UnmarshalText(text []byte) error {
	*s = ParseDebateSide(string(text))
	return nil
}

type User struct {
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	MiddleName  string    `json:"middleName"`
	LastName    string    `json:"lastName"`
	PhoneNumber string    `json:"phoneNumber"`
	Pronouns    string    `json:"pronouns"`
	TimeZone    string    `json:"timeZone"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	ZipCode     int       `json:"zipCode"`
	Nsda        *NSDAUser `json:"nsda"`
}

type NSDAUser struct {
	FullName           string `json:"fullName"`
	MemberId           int    `json:"memberId"`
	MeritPoints        int    `json:"meritPoints"`
	PointsToNextDegree int    `json:"pointsToNextDegree"`
	LastPointsDate     string `json:"lastPointsDate"`
}

type Round struct {
	Label        string      `json:"label"`
	Start        string      `json:"start"`
	Room         string      `json:"room"`
	DocShareLink string      `json:"docShareLink"`
	Data         []RoundData `json:"data"`
}

// Record tallies the decision of every judge in the round.
func (r Round) Record() TournamentRecord {
	var decisions strings.Builder
	for _, d := range r.Data {
		if d.Ballot == nil {
			continue
		}
		decisions.WriteString(d.Ballot.Decision)
	}
	return ParseMultiJudge(decisions.String())
}

type RoundData struct {
	Judge         Judge   `json:"judge"`
	JudgeParadigm string  `json:"judgeParadigm"`
	Ballot        *Ballot `json:"ballot"`
	Rfd           string  `json:"rfd"`
}

type TournamentEntry struct {
	Tournament Tournament `json:"tournament"`
	Date       string     `json:"date"`
	Code       string     `json:"code"`
	Division   string     `json:"division"`
	Rounds     []Round    `json:"rounds"`
}

// Session is one login session listed on the profile page, the optional
// columns are nil when tabroom leaves them blank.
type Session struct {
	LastActiveTime *string `json:"lastActiveTime"`
	LastActiveDate *string `json:"lastActiveDate"`
	Browser        string  `json:"browser"`
	Ip             string  `json:"ip"`
	Isp            *string `json:"isp"`
	Location       *string `json:"location"`
}

// IsCurrent reports whether this is the session the client itself is using.
func (s Session) IsCurrent() bool {
	return s.LastActiveTime != nil && s.LastActiveDate != nil
}

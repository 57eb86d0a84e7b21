package db

type Tournament struct {
	ID          int64
	Name        string
	Year        string
	Location    string
	Description string
	FetchedAt   int64
}

type Event struct {
	TournamentID int64
	Position     int64
	EventID      int64
	Name         string
}

type Entry struct {
	ID            int64
	TournamentID  int64
	EventPosition int64
	School        string
	Location      string
	Name          string
	Code          string
}

type Ballot struct {
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

type Judge struct {
	TournamentID int64
	Category     string
	FirstName    string
	LastName     string
	School       string
	Location     string
	HasParadigm  int64
}

type EventField struct {
	TournamentID  int64
	EventPosition int64
	FieldKey      string
	FieldValue    string
}

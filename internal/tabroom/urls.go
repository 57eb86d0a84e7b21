package tabroom

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const DefaultBaseUrl = "https://www.tabroom.com"

const (
	pathTournamentHome    = "/index/tourn/index.mhtml"
	pathTournamentEntries = "/index/tourn/fields.mhtml"
	pathTournamentEvents  = "/index/tourn/events.mhtml"
	pathTournamentJudges  = "/index/tourn/judges.mhtml"

	pathSearch        = "/index/search.mhtml"
	pathLogin         = "/user/login/login.mhtml"
	pathLoginSave     = "/user/login/login_save.mhtml"
	pathLogout        = "/user/login/logout.mhtml"
	pathUserProfile   = "/user/login/profile.mhtml"
	pathUserHome      = "/user/student/index.mhtml"
	pathUserHistory   = "/user/student/history.mhtml"
	pathJudgeParadigm = "/index/paradigm.mhtml"
)

// urls builds absolute endpoint urls against a base such as https://www.tabroom.com.
type urls struct {
	base string
}

func newUrls(base string) urls {
	return urls{base: strings.TrimSuffix(base, "/")}
}

func (u urls) abs(path string) string {
	return u.base + path
}

func (u urls) tournament(path string, id int) string {
	return fmt.Sprintf("%s%s?tourn_id=%d", u.base, path, id)
}

func (u urls) tournamentHome(id int) string    { return u.tournament(pathTournamentHome, id) }
func (u urls) tournamentEntries(id int) string { return u.tournament(pathTournamentEntries, id) }
func (u urls) tournamentEvents(id int) string  { return u.tournament(pathTournamentEvents, id) }
func (u urls) tournamentJudges(id int) string  { return u.tournament(pathTournamentJudges, id) }

func (u urls) search() string    { return u.abs(pathSearch) }
func (u urls) login() string     { return u.abs(pathLogin) }
func (u urls) loginSave() string { return u.abs(pathLoginSave) }
func (u urls) logout() string    { return u.abs(pathLogout) }
func (u urls) profile() string   { return u.abs(pathUserProfile) }
func (u urls) userHome() string  { return u.abs(pathUserHome) }

func (u urls) history(tournId, studentId int) string {
	return fmt.Sprintf("%s%s?tourn_id=%d&student_id=%d", u.base, pathUserHistory, tournId, studentId)
}

func (u urls) paradigm(judgeId int) string {
	return fmt.Sprintf("%s%s?judge_person_id=%d", u.base, pathJudgeParadigm, judgeId)
}

// queryInt reads an integer query parameter out of an href, 0 when it is
// absent or not a number.
func queryInt(href, key string) int {
	parsed, err := url.Parse(href)
	if err != nil {
		return 0
	}
	return atoiOr(parsed.Query().Get(key), 0)
}

// eventIdFromHref prefers the event_id parameter and otherwise takes the
// text between the first '=' and the next '&'.
func eventIdFromHref(href string) int {
	if id := queryInt(href, "event_id"); id != 0 {
		return id
	}
	_, after, found := strings.Cut(href, "=")
	if !found {
		return 0
	}
	before, _, _ := strings.Cut(after, "&")
	return atoiOr(before, 0)
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func parseFloatOr(s string, fallback float64) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return n
}

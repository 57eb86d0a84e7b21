package tabroom

import (
	"fmt"
	"testing"

	"tabroomapi/lib/htmlutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestEventIdFromHref(t *testing.T) {
	require.Equal(t, 1001, eventIdFromHref("events.mhtml?event_id=1001&tourn_id=31822"))
	require.Equal(t, 1001, eventIdFromHref("events.mhtml?tourn_id=31822&event_id=1001"))
	require.Equal(t, 55, eventIdFromHref("events.mhtml?id=55&tourn_id=1"))
	require.Equal(t, 0, eventIdFromHref("events.mhtml"))
}

func TestQueryInt(t *testing.T) {
	href := "/user/student/history.mhtml?tourn_id=31822&student_id=42"
	require.Equal(t, 31822, queryInt(href, "tourn_id"))
	require.Equal(t, 42, queryInt(href, "student_id"))
	require.Equal(t, 0, queryInt(href, "event_id"))
	require.Equal(t, 0, queryInt("/x?tourn_id=abc", "tourn_id"))
}

func TestUrls(t *testing.T) {
	u := newUrls("https://www.tabroom.com/")
	require.Equal(t, "https://www.tabroom.com/index/tourn/index.mhtml?tourn_id=7", u.tournamentHome(7))
	require.Equal(t, "https://www.tabroom.com/user/student/history.mhtml?tourn_id=1&student_id=2", u.history(1, 2))
	require.Equal(t, "https://www.tabroom.com/index/paradigm.mhtml?judge_person_id=9", u.paradigm(9))
}

func TestParseTournamentDescription(t *testing.T) {
	tourney := parseTournament(htmlutil.NewDocument("", `<div class="thenines leftalign plain martop whiteback fullscreen padvertmore frontpage">
		<p>Jack Howe's <strong>Q&amp;A</strong> "session"</p>
	</div>`))
	require.Equal(t, `Jack Howe's Q&A "session"`, tourney.Description)
	require.Contains(t, tourney.DescriptionHTML, "<strong>Q&amp;A</strong>")
}

func TestMenuLinksResolveAgainstPage(t *testing.T) {
	events := htmlutil.NewDocument("https://www.tabroom.com/index/tourn/events.mhtml?tourn_id=7", `<div class="menu"><div class="sidenote">
		<a class="blue half nowrap marvertno" href="events.mhtml?event_id=1&amp;tourn_id=7">Varsity LD</a>
		<a class="blue half nowrap marvertno">No link</a>
		<a class="blue full" href="/index/tourn/fields.mhtml?tourn_id=7&amp;event_id=1">Varsity LD</a>
	</div></div>`)

	links := parseEventLinks(events)
	require.Len(t, links, 1)
	require.Equal(t, "Varsity LD", links[0].Name)
	require.Equal(t, "https://www.tabroom.com/index/tourn/events.mhtml?event_id=1&tourn_id=7", links[0].Url.String())
	require.Equal(t, 1, eventIdFromHref(links[0].Url.String()))

	entries, ok := findLinkByName(events, selectorEntryEvent, "Varsity LD")
	require.True(t, ok)
	require.Equal(t, "https://www.tabroom.com/index/tourn/fields.mhtml?tourn_id=7&event_id=1", entries.String())

	_, ok = findLinkByName(events, selectorEntryEvent, "Novice PF")
	require.False(t, ok)
}

func TestParseTournamentDefaults(t *testing.T) {
	tourney := parseTournament(htmlutil.NewDocument("", "<html><body></body></html>"))
	require.Equal(t, "Unknown", tourney.Name)
	require.Equal(t, "", tourney.Year)
	require.Equal(t, "", tourney.Location)
	require.NotNil(t, tourney.Events)
	require.NotNil(t, tourney.Judges)
}

func TestParseEventFieldsShorterColumn(t *testing.T) {
	doc := htmlutil.NewDocument("", `<div class="main">
		<div class="row"><span class="third semibold">A</span><span class="twothirds">1</span></div>
		<div class="row"><span class="third semibold">B</span></div>
	</div>`)
	require.Equal(t, map[string]string{"A": "1"}, parseEventFields(doc))
}

func TestSplitJudgeName(t *testing.T) {
	first, last := splitJudgeName("Smith, Jane")
	require.Equal(t, "Smith", first)
	require.Equal(t, "Jane", last)

	first, last = splitJudgeName("Prince")
	require.Equal(t, "Prince", first)
	require.Equal(t, "", last)
}

func TestParseNsda(t *testing.T) {
	none, err := parseNsda(htmlutil.NewDocument("", "<div></div>"))
	require.Nil(t, err)
	require.Nil(t, none)

	short := htmlutil.NewDocument("profile", `<div class="odd smallish">
		<span class="half">Name</span><span class="half">Alex</span>
	</div>`)
	_, err = parseNsda(short)
	var mismatch *StructuralMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "profile", mismatch.Page)
}

func TestParseHistoryRowsLimit(t *testing.T) {
	row := `<tr><td>T</td><td>1/1/24</td><td>C</td><td>D</td><td><a href="/user/student/history.mhtml?tourn_id=%d&amp;student_id=3">R</a></td></tr>`
	doc := htmlutil.NewDocument("", `<div class="screens results"><table><tbody>`+
		fmt.Sprintf(row, 1)+fmt.Sprintf(row, 2)+`<tr><td>short</td></tr>`+
		`</tbody></table></div>`)

	all := parseHistoryRows(doc, 0)
	require.Len(t, all, 2)
	diff := cmp.Diff(historyRow{date: "1/1/24", code: "C", division: "D", tournId: 2, studentId: 3}, all[1], cmp.AllowUnexported(historyRow{}))
	require.Empty(t, diff)

	require.Len(t, parseHistoryRows(doc, 1), 1)
}

func TestParseSessionsSkipsShortRows(t *testing.T) {
	doc := htmlutil.NewDocument("", `<div class="main">
		<div class="full flexrow row ltborderbottom smallish"><span>a</span></div>
	</div>`)
	require.Empty(t, parseSessions(doc))
}

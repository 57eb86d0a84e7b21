package htmlutil

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const testPage = `<html>
<body>
	<div class="menu">
		<a class="full" href="/a?x=1">  First
			link </a>
		<a class="full" href="/b">Second</a>
		<a class="full">No href</a>
	</div>
	<form>
		<input name="salt" value="abc">
		<input name="remember" checked="checked">
		<input name="empty">
	</form>
	<table>
		<tr><td>one</td><td><a href="/x">two</a></td></tr>
		<tr><td>three</td></tr>
	</table>
	<div id="desc"><p>Hello <b>world</b></p></div>
</body>
</html>`

func TestQuerySelectorAll(t *testing.T) {
	doc := NewDocument("https://example.com", testPage)

	links := doc.QuerySelectorAll("div.menu > a.full")
	require.Len(t, links, 3)

	var texts []string
	for _, l := range links {
		texts = append(texts, l.TextContent())
	}
	diff := cmp.Diff([]string{"First link", "Second", "No href"}, texts)
	require.Empty(t, diff)

	href, ok := links[0].Attr("href")
	require.True(t, ok)
	require.Equal(t, "/a?x=1", href)

	_, ok = links[2].Attr("href")
	require.False(t, ok)
	require.Equal(t, "a", links[0].TagName())
	require.Equal(t, map[string]string{"class": "full", "href": "/b"}, links[1].Attributes())
}

func TestImplicitTbody(t *testing.T) {
	doc := NewDocument("", testPage)

	rows := doc.QuerySelectorAll("tbody > tr")
	require.Len(t, rows, 2)
	require.Len(t, rows[0].Children(), 2)
	require.Len(t, rows[1].Children(), 1)

	link, ok := rows[0].Path(1, 0)
	require.True(t, ok)
	require.Equal(t, "/x", link.AttrOr("href", ""))

	_, ok = rows[1].Path(1, 0)
	require.False(t, ok)
	_, ok = rows[1].Child(-1)
	require.False(t, ok)
}

func TestInputValue(t *testing.T) {
	doc := NewDocument("", testPage)

	value, ok := doc.InputValue("salt")
	require.True(t, ok)
	require.Equal(t, "abc", value)

	value, ok = doc.InputValue("remember")
	require.True(t, ok)
	require.Equal(t, "checked", value)

	_, ok = doc.InputValue("empty")
	require.False(t, ok)
	_, ok = doc.InputValue("missing")
	require.False(t, ok)
}

func TestInnerHTMLAndStripTags(t *testing.T) {
	doc := NewDocument("", testPage)

	desc, ok := doc.QuerySelector("#desc")
	require.True(t, ok)
	require.Equal(t, "<p>Hello <b>world</b></p>", desc.InnerHTML())
	require.Equal(t, "Hello world", StripTags(desc.InnerHTML()))

	_, ok = doc.QuerySelector("#missing")
	require.False(t, ok)
	require.Equal(t, "", Element{}.TextContent())
	require.Nil(t, Element{}.Children())
}

func TestZeroValueDocument(t *testing.T) {
	doc := Document{Html: testPage}
	require.Len(t, doc.QuerySelectorAll("div.menu > a.full"), 3)

	body, ok := doc.Body()
	require.True(t, ok)
	require.Equal(t, "body", body.TagName())
}

func TestGetAnchors(t *testing.T) {
	doc := NewDocument("", testPage)
	base, err := url.Parse("https://www.tabroom.com/index/")
	require.Nil(t, err)

	anchors := GetAnchors(base, doc.QuerySelectorAll("div.menu > a.full"))
	require.Len(t, anchors, 2)
	require.Equal(t, "First link", anchors[0].Name)
	require.Equal(t, "https://www.tabroom.com/a?x=1", anchors[0].Url.String())
	require.Equal(t, "https://www.tabroom.com/b", anchors[1].Url.String())
}

func TestAnchorsResolveAgainstDocument(t *testing.T) {
	doc := NewDocument("https://www.tabroom.com/index/tourn/events.mhtml?tourn_id=7", `<div class="menu">
		<a href="events.mhtml?event_id=1&amp;tourn_id=7">LD</a>
		<a href="/index/tourn/judges.mhtml?tourn_id=7">Judges</a>
		<a>Nothing</a>
	</div>`)

	anchors := doc.Anchors("div.menu > a")
	require.Len(t, anchors, 2)
	require.Equal(t, "LD", anchors[0].Name)
	require.Equal(t, "https://www.tabroom.com/index/tourn/events.mhtml?event_id=1&tourn_id=7", anchors[0].Url.String())
	require.Equal(t, "https://www.tabroom.com/index/tourn/judges.mhtml?tourn_id=7", anchors[1].Url.String())

	link, err := doc.Resolve("postings/entry_record.mhtml?entry_id=5")
	require.Nil(t, err)
	require.Equal(t, "https://www.tabroom.com/index/tourn/postings/entry_record.mhtml?entry_id=5", link.String())

	link, err = doc.Resolve("https://share.example.com/x")
	require.Nil(t, err)
	require.Equal(t, "https://share.example.com/x", link.String())
}

func TestResolveWithoutDocumentUrl(t *testing.T) {
	link, err := NewDocument("", "").Resolve("events.mhtml?event_id=1")
	require.Nil(t, err)
	require.Equal(t, "events.mhtml?event_id=1", link.String())
}

func TestPlainTextDecodesEntities(t *testing.T) {
	doc := NewDocument("", `<div id="desc"><p>Jack Howe's <strong>Q&amp;A</strong> "session"</p></div>`)
	desc, ok := doc.QuerySelector("#desc")
	require.True(t, ok)

	require.Contains(t, desc.InnerHTML(), "Q&amp;A")
	require.Equal(t, `Jack Howe's Q&A "session"`, PlainText(desc.InnerHTML()))
	require.Equal(t, "a < b", PlainText("  <i>a &lt; b</i> "))
}

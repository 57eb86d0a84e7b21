package tabroom

import (
	"net/url"
	"strings"

	"tabroomapi/lib/htmlutil"
)

const (
	selectorTournamentName     = "div.main.index > h2.centeralign.marno"
	selectorTournamentSubtitle = "div.main.index > .full.centeralign.marno"
	selectorTournamentDesc     = ".thenines.leftalign.plain.martop.whiteback.fullscreen.padvertmore.frontpage"

	selectorEventLinks = "div.menu > div.sidenote > a.half.marvertno"
	selectorEntryEvent = "div.menu > div.sidenote > a.full"
	selectorEventInfo  = "div.menu > div.sidenote > a.nowrap.half.marvertno"
	selectorEventKey   = "div.main > div.row > span.third.semibold"
	selectorEventValue = "div.main > div.row > span.twothirds"

	selectorRow = "tbody > tr"

	selectorJudgesList = "div.menu > div.sidenote > div.nospace"
	selectorJudgesLink = selectorJudgesList + " > span.third.nospace > a.padvertless"

	selectorSearchLinks = "div.main > table > tbody > tr > td > a"
)

func firstText(doc htmlutil.Query, selector string) (string, bool) {
	matches := doc.QuerySelectorAll(selector)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].TextContent(), true
}

// parseTournament reads the base record off a tournament home page, events
// and judges are left empty.
func parseTournament(doc htmlutil.Document) Tournament {
	name, ok := firstText(doc, selectorTournamentName)
	if !ok {
		name = "Unknown"
	}

	var descHtml string
	if desc, ok := doc.QuerySelector(selectorTournamentDesc); ok {
		descHtml = desc.InnerHTML()
	}

	// "2024 Portland, OR" splits into "2024" and "OR"
	subtitle, _ := firstText(doc, selectorTournamentSubtitle)
	year, _, _ := strings.Cut(subtitle, " ")
	location := subtitle
	if i := strings.LastIndex(subtitle, " "); i >= 0 {
		location = subtitle[i+1:]
	}

	return Tournament{
		Name:            name,
		DescriptionHTML: descHtml,
		Description:     htmlutil.PlainText(descHtml),
		Year:            strings.TrimSpace(year),
		Location:        strings.TrimSpace(location),
		Events:          []Event{},
		Judges:          map[string][]Judge{},
	}
}

// parseEventLinks lists the events of a tournament in menu order, links
// without an href are dropped.
func parseEventLinks(events htmlutil.Document) []htmlutil.Anchor {
	return events.Anchors(selectorEventLinks)
}

// findLinkByName returns the resolved link of the first anchor matching
// selector whose text is exactly name.
func findLinkByName(doc htmlutil.Document, selector, name string) (*url.URL, bool) {
	for _, anchor := range doc.Anchors(selector) {
		if anchor.Name == name {
			return anchor.Url, true
		}
	}
	return nil, false
}

// parseEventFields zips the key and value columns of an event page by
// position, the shorter column wins. Pairs with a blank side are dropped.
func parseEventFields(doc htmlutil.Query) map[string]string {
	keys := doc.QuerySelectorAll(selectorEventKey)
	values := doc.QuerySelectorAll(selectorEventValue)

	fields := map[string]string{}
	for i := 0; i < len(keys) && i < len(values); i++ {
		key := keys[i].TextContent()
		value := values[i].TextContent()
		if key == "" || value == "" {
			continue
		}
		fields[key] = value
	}
	return fields
}

type entryRow struct {
	entry Entry
	// record is the entry's record page, nil when there is none
	record *url.URL
}

// parseEntryRows reads one entry per table row, rows with fewer than four
// columns are skipped.
func parseEntryRows(doc htmlutil.Document) []entryRow {
	var out []entryRow
	for _, row := range doc.QuerySelectorAll(selectorRow) {
		cols := row.Children()
		if len(cols) < 4 {
			continue
		}
		r := entryRow{
			entry: Entry{
				School:   cols[0].TextContent(),
				Location: cols[1].TextContent(),
				Name:     cols[2].TextContent(),
				Code:     cols[3].TextContent(),
				Ballots:  map[int]Ballot{},
			},
		}
		if len(cols) >= 5 {
			if link, ok := cols[4].Child(0); ok {
				if href, ok := link.Attr("href"); ok && href != "" {
					r.record, _ = doc.Resolve(href)
				}
			}
		}
		out = append(out, r)
	}
	return out
}

type judgeList struct {
	category string
	link     *url.URL
}

// parseJudgeLists pairs every judge category block with its list link by
// position. Paradigm listings are skipped since they are not judge tables.
func parseJudgeLists(doc htmlutil.Document) []judgeList {
	blocks := doc.QuerySelectorAll(selectorJudgesList)
	links := doc.QuerySelectorAll(selectorJudgesLink)

	var out []judgeList
	for i, block := range blocks {
		if i >= len(links) {
			break
		}
		label, ok := block.Child(0)
		if !ok {
			continue
		}
		href, ok := links[i].Attr("href")
		if !ok || strings.Contains(href, "paradigms") {
			continue
		}
		link, err := doc.Resolve(href)
		if err != nil {
			continue
		}
		out = append(out, judgeList{category: label.TextContent(), link: link})
	}
	return out
}

func parseJudges(doc htmlutil.Query) []Judge {
	judges := []Judge{}
	for _, row := range doc.QuerySelectorAll(selectorRow) {
		cols := row.Children()
		if len(cols) < 5 {
			continue
		}
		judges = append(judges, Judge{
			HasParadigm: len(cols[0].Children()) > 0,
			FirstName:   cols[1].TextContent(),
			LastName:    cols[2].TextContent(),
			School:      cols[3].TextContent(),
			Location:    cols[4].TextContent(),
		})
	}
	return judges
}

// parseSearchLinks lists the tournaments of a search result page in page order.
func parseSearchLinks(doc htmlutil.Document) []htmlutil.Anchor {
	return doc.Anchors(selectorSearchLinks)
}

package tabroom

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"strings"

	"tabroomapi/lib/htmlutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	report_tournament_record = "tournament.entry-record"
	report_tournament_search = "tournament.search"
)

// GetTournament fetches a tournament with all of its events, entries, ballots
// and judges. Events and judges are gathered concurrently, any failure fails
// the whole call.
func (c *Client) GetTournament(ctx context.Context, id int) (Tournament, error) {
	ctx, span := tracer.Start(ctx, "GetTournament")
	defer span.End()
	span.SetAttributes(attribute.Int("tourn_id", id))

	home, err := c.fetchDocument(ctx, c.urls.tournamentHome(id), false)
	if err != nil {
		return Tournament{}, err
	}
	tourney := parseTournament(home)

	var events []Event
	var judges map[string][]Judge

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = c.getEvents(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		judges, err = c.getAllJudges(gctx, id)
		return err
	})
	err = g.Wait()
	if err != nil {
		span.RecordError(err)
		return Tournament{}, fmt.Errorf("get tournament %d: %w", id, err)
	}

	tourney.Events = append(tourney.Events, events...)
	maps.Copy(tourney.Judges, judges)
	return tourney, nil
}

func (c *Client) getEvents(ctx context.Context, tournId int) ([]Event, error) {
	var entriesDoc, eventsDoc htmlutil.Document

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entriesDoc, err = c.fetchDocument(gctx, c.urls.tournamentEntries(tournId), false)
		return err
	})
	g.Go(func() error {
		var err error
		eventsDoc, err = c.fetchDocument(gctx, c.urls.tournamentEvents(tournId), false)
		return err
	})
	err := g.Wait()
	if err != nil {
		return nil, err
	}

	links := parseEventLinks(eventsDoc)
	events := make([]Event, len(links))

	g, gctx = errgroup.WithContext(ctx)
	for i, link := range links {
		entryLink, _ := findLinkByName(entriesDoc, selectorEntryEvent, link.Name)
		g.Go(func() error {
			event, err := c.getEvent(gctx, link, entryLink)
			if err != nil {
				return fmt.Errorf("event '%s': %w", link.Name, err)
			}
			events[i] = event
			return nil
		})
	}
	err = g.Wait()
	if err != nil {
		return nil, err
	}
	return events, nil
}

// getEvent fetches the event page and the event's entry list concurrently,
// entryLink is nil when the entries page does not list the event.
func (c *Client) getEvent(ctx context.Context, link htmlutil.Anchor, entryLink *url.URL) (Event, error) {
	var eventPage htmlutil.Document
	entries := []Entry{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		eventPage, err = c.fetchDocument(gctx, link.Url.String(), false)
		return err
	})
	if entryLink != nil {
		g.Go(func() error {
			var err error
			entries, err = c.getEntries(gctx, entryLink.String())
			return err
		})
	}
	err := g.Wait()
	if err != nil {
		return Event{}, err
	}

	event := Event{
		Name:    link.Name,
		Fields:  map[string]string{},
		Entries: entries,
	}

	info, ok := findLinkByName(eventPage, selectorEventInfo, link.Name)
	if !ok {
		return event, nil
	}
	detail, err := c.fetchDocument(ctx, info.String(), false)
	if err != nil {
		return Event{}, err
	}
	event.Id = eventIdFromHref(info.String())
	event.Fields = parseEventFields(detail)
	return event, nil
}

// getEntries reads an entry list and follows each entry's record link to
// fill in its ballots.
func (c *Client) getEntries(ctx context.Context, pageUrl string) ([]Entry, error) {
	doc, err := c.fetchDocument(ctx, pageUrl, false)
	if err != nil {
		return nil, err
	}
	rows := parseEntryRows(doc)
	entries := make([]Entry, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	for i, row := range rows {
		entries[i] = row.entry
		if row.record == nil {
			continue
		}
		g.Go(func() error {
			ballots, err := c.getRecord(gctx, row.record.String())
			if err != nil {
				return err
			}
			// each goroutine owns its own entry's ballot map
			maps.Copy(entries[i].Ballots, ballots)
			return nil
		})
	}
	err = g.Wait()
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) getRecord(ctx context.Context, pageUrl string) (map[int]Ballot, error) {
	doc, err := c.fetchDocument(ctx, pageUrl, false)
	if err != nil {
		return nil, err
	}
	ballots, skipped, err := parseRecord(doc.Html)
	if err != nil {
		c.tel.ReportWarning(report_tournament_record, err, pageUrl)
	}
	for _, s := range skipped {
		c.tel.ReportWarning(report_tournament_record, fmt.Errorf("skipped ballot %s: %s", s.key, s.reason), pageUrl)
	}
	return ballots, nil
}

func (c *Client) getAllJudges(ctx context.Context, tournId int) (map[string][]Judge, error) {
	doc, err := c.fetchDocument(ctx, c.urls.tournamentJudges(tournId), false)
	if err != nil {
		return nil, err
	}
	lists := parseJudgeLists(doc)
	results := make([][]Judge, len(lists))

	g, gctx := errgroup.WithContext(ctx)
	for i, list := range lists {
		g.Go(func() error {
			listDoc, err := c.fetchDocument(gctx, list.link.String(), false)
			if err != nil {
				return fmt.Errorf("judges '%s': %w", list.category, err)
			}
			results[i] = parseJudges(listDoc)
			return nil
		})
	}
	err = g.Wait()
	if err != nil {
		return nil, err
	}

	judges := map[string][]Judge{}
	for i, list := range lists {
		judges[list.category] = results[i]
	}
	return judges, nil
}

func escapeSearchQuery(query string) string {
	query = strings.ReplaceAll(query, " ", "+")
	return strings.ReplaceAll(query, `\`, `\\`)
}

// searchDocument posts the search form, the result page is cached under the
// endpoint joined with the raw query.
func (c *Client) searchDocument(ctx context.Context, query string) (htmlutil.Document, error) {
	endpoint := c.urls.search()
	key := searchCacheKey(endpoint, query)
	if doc, ok := c.cache.get(key); ok {
		return doc, nil
	}

	res, err := c.do(ctx, func() (*resty.Response, error) {
		return c.request(ctx, false).
			SetFormData(map[string]string{
				"tourn_id": "",
				"caller":   "/index/index.mhtml",
				"search":   escapeSearchQuery(query),
			}).
			Post(endpoint)
	})
	if err != nil {
		c.tel.ReportBroken(report_tournament_search, err, query)
		return htmlutil.Document{}, fmt.Errorf("search '%s': %w", query, err)
	}
	if !res.IsSuccess() {
		return htmlutil.Document{}, &FetchError{Url: endpoint, Status: res.StatusCode(), Body: res.String()}
	}

	doc := htmlutil.NewDocument(endpoint, string(res.Body()))
	c.cache.put(key, doc)
	return doc, nil
}

// SearchTournaments runs a tournament search and fetches every result in full.
// Results keep the order of the search page.
func (c *Client) SearchTournaments(ctx context.Context, query string) ([]Tournament, error) {
	return c.search(ctx, query, true)
}

// SearchTournamentSummaries is SearchTournaments without events and judges,
// one request per result instead of dozens.
func (c *Client) SearchTournamentSummaries(ctx context.Context, query string) ([]Tournament, error) {
	return c.search(ctx, query, false)
}

func (c *Client) search(ctx context.Context, query string, full bool) ([]Tournament, error) {
	ctx, span := tracer.Start(ctx, "SearchTournaments")
	defer span.End()
	span.SetAttributes(attribute.String("query", query), attribute.Bool("full", full))

	doc, err := c.searchDocument(ctx, query)
	if err != nil {
		return nil, err
	}
	links := parseSearchLinks(doc)
	tournaments := make([]Tournament, len(links))

	g, gctx := errgroup.WithContext(ctx)
	for i, link := range links {
		g.Go(func() error {
			id := queryInt(link.Url.String(), "tourn_id")
			if full && id > 0 {
				tourney, err := c.GetTournament(gctx, id)
				if err != nil {
					return err
				}
				tournaments[i] = tourney
				return nil
			}
			home, err := c.fetchDocument(gctx, link.Url.String(), false)
			if err != nil {
				return err
			}
			tournaments[i] = parseTournament(home)
			return nil
		})
	}
	err = g.Wait()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return tournaments, nil
}

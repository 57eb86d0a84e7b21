package tabroom

import (
	"context"
	"fmt"
	"net/http"

	"tabroomapi/lib/htmlutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
)

const (
	report_client_fetch_document = "client.fetch-document"
	report_client_cache          = "client.cache"
	report_client_gauges         = "client.gauges"
)

const tokenCookie = "TabroomToken"

// request builds a request bound to ctx, carrying the session cookie when
// useToken is set and the client is logged in.
func (c *Client) request(ctx context.Context, useToken bool) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Host", c.host)
	if useToken {
		if token, ok := c.Token(); ok {
			req.SetCookie(&http.Cookie{Name: tokenCookie, Value: token})
		}
	}
	return req
}

// do runs one http exchange inside the concurrency bound, waiting on the rate
// limiter first when one is configured.
func (c *Client) do(ctx context.Context, send func() (*resty.Response, error)) (*resty.Response, error) {
	err := c.sem.Acquire(ctx, 1)
	if err != nil {
		return nil, err
	}
	defer c.sem.Release(1)
	c.inflight.Add(1)
	defer c.inflight.Add(-1)

	if c.limiter != nil {
		err = c.limiter.Wait(ctx)
		if err != nil {
			return nil, err
		}
	}
	return send()
}

// get fetches a url without consulting the cache.
func (c *Client) get(ctx context.Context, url string, useToken bool) (htmlutil.Document, error) {
	res, err := c.do(ctx, func() (*resty.Response, error) {
		return c.request(ctx, useToken).Get(url)
	})
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_document, err, url)
		return htmlutil.Document{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return htmlutil.Document{}, &FetchError{
			Url:    url,
			Status: res.StatusCode(),
			Body:   res.String(),
		}
	}
	return htmlutil.NewDocument(url, string(res.Body())), nil
}

// fetchDocument returns the cached document for url, fetching and caching it
// on a miss.
func (c *Client) fetchDocument(ctx context.Context, url string, useToken bool) (htmlutil.Document, error) {
	ctx, span := tracer.Start(ctx, "fetchDocument")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	if doc, ok := c.cache.get(url); ok {
		span.SetAttributes(attribute.Bool("cached", true))
		return doc, nil
	}

	doc, err := c.get(ctx, url, useToken)
	if err != nil {
		span.RecordError(err)
		return htmlutil.Document{}, err
	}
	c.cache.put(url, doc)
	c.tel.ReportCount(report_client_cache, int64(c.cache.len()))
	return doc, nil
}

// FetchDocument is the public form of the cached fetch, the session cookie is
// attached when logged in.
func (c *Client) FetchDocument(ctx context.Context, url string) (htmlutil.Document, error) {
	return c.fetchDocument(ctx, url, true)
}

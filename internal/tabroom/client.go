package tabroom

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"tabroomapi/lib/restyutil"
	"tabroomapi/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("internal/tabroom")

const (
	DefaultMaxConcurrency = 16
	DefaultTimeout        = 30 * time.Second
	DefaultUserAgent      = "Go HTTP Client, Tabroom API v1"
)

type Options struct {
	// BaseUrl defaults to https://www.tabroom.com
	BaseUrl string
	// MaxConcurrency bounds the number of in-flight requests, defaults to 16.
	MaxConcurrency int
	// RequestsPerSecond is unlimited when 0.
	RequestsPerSecond float64
	Timeout           time.Duration
	UserAgent         string
	CloudflareBypass  bool
	// InstrumentOutput receives a dump of every http exchange when set.
	InstrumentOutput restyutil.InstrumentOutput
	// Telemetry defaults to telemetry.SlogAPI.
	Telemetry telemetry.API
	// MeterProvider receives the cache and request gauges, defaults to the
	// global provider.
	MeterProvider metric.MeterProvider
}

// Client owns one tabroom session: its token, its document cache and its
// http connections. It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	urls    urls
	host    string
	tel     telemetry.API
	sem     *semaphore.Weighted
	limiter *rate.Limiter
	cache   *documentCache

	// inflight counts the http exchanges holding a concurrency slot
	inflight  atomic.Int64
	gauges    metric.Registration
	closeOnce sync.Once

	tokenMutex sync.RWMutex
	token      *string
}

func NewClient(opts Options) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.SlogAPI{}
	}
	if opts.MeterProvider == nil {
		opts.MeterProvider = otel.GetMeterProvider()
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url '%s' must be absolute", opts.BaseUrl)
	}

	client := resty.New()
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeaders(map[string]string{
		"User-Agent":                opts.UserAgent,
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.9",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	})
	client.SetTimeout(opts.Timeout)
	// logins are answered with a 302 whose status is the signal, never follow it
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	tel := telemetry.NewScopedAPI("tabroom", opts.Telemetry)
	telemetry.InstrumentResty(client, tel)
	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	c := &Client{
		http:  client,
		urls:  newUrls(opts.BaseUrl),
		host:  baseUrl.Host,
		tel:   tel,
		sem:   semaphore.NewWeighted(int64(opts.MaxConcurrency)),
		cache: newDocumentCache(),
	}
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	c.gauges, err = telemetry.ObserveGauges(
		opts.MeterProvider.Meter("tabroomapi/internal/tabroom"),
		telemetry.Gauge{
			Name:        "tabroom.cache.documents",
			Description: "documents held by the document cache",
			Int:         func() int64 { return int64(c.cache.len()) },
		},
		telemetry.Gauge{
			Name:        "tabroom.requests.inflight",
			Description: "http exchanges holding a concurrency slot",
			Int:         c.inflight.Load,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("register gauges: %w", err)
	}
	return c, nil
}

// Close releases idle connections and stops reporting gauges, the cache and
// token are kept.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
	c.closeOnce.Do(func() {
		err := c.gauges.Unregister()
		if err != nil {
			c.tel.ReportWarning(report_client_gauges, err)
		}
	})
}

// ClearCache drops every cached document.
func (c *Client) ClearCache() {
	c.cache.clear()
}

func (c *Client) IsLoggedIn() bool {
	c.tokenMutex.RLock()
	defer c.tokenMutex.RUnlock()
	return c.token != nil
}

// Token returns the session token, ok is false when logged out.
func (c *Client) Token() (string, bool) {
	c.tokenMutex.RLock()
	defer c.tokenMutex.RUnlock()
	if c.token == nil {
		return "", false
	}
	return *c.token, true
}

func (c *Client) setToken(token *string) {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()
	c.token = token
}

// takeToken clears the token and returns what it was.
func (c *Client) takeToken() (string, bool) {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()
	if c.token == nil {
		return "", false
	}
	token := *c.token
	c.token = nil
	return token, true
}

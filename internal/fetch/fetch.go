// Package fetch issues HTTP GETs with bounded retry, client identity
// rotation and soft-block detection. Every call resolves to a tri-state
// Result; transport failures never propagate past this boundary.
package fetch

import (
	"context"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/leadscout/leadscout/internal/logger"
)

// Status classifies the outcome of a fetch.
type Status string

const (
	StatusOK      Status = "ok"
	StatusBlocked Status = "blocked"
	StatusFailed  Status = "failed"
)

// Result is the uniform fetch contract. Body is present iff Status is
// StatusOK. FinalURL reflects redirects.
type Result struct {
	Status   Status
	Body     string
	FinalURL string
}

// Config controls client behavior.
type Config struct {
	Timeout     time.Duration
	MaxAttempts int           // total attempts for transient errors
	BackoffBase time.Duration // doubled after each transient retry
	Referer     string
}

// DefaultConfig mirrors the retry envelope used against the target
// sites: four attempts with a 600ms backoff base.
func DefaultConfig() Config {
	return Config{
		Timeout:     20 * time.Second,
		MaxAttempts: 4,
		BackoffBase: 600 * time.Millisecond,
	}
}

// Client performs fetches with a rotating identity. It is used from a
// single goroutine per scan; the pipeline is deliberately sequential.
type Client struct {
	cfg      Config
	identity int
	sleep    func(time.Duration)
}

// New builds a Client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.BackoffBase == 0 {
		cfg.BackoffBase = DefaultConfig().BackoffBase
	}
	return &Client{cfg: cfg, sleep: time.Sleep}
}

// retryable HTTP statuses: server overload/unavailable classes.
func retryableStatus(code int) bool {
	switch code {
	case 500, 502, 503, 504:
		return true
	}
	return false
}

// deniedStatus covers rate-limit and access-denied responses, which get
// exactly one extra delayed retry with a fresh identity.
func deniedStatus(code int) bool {
	return code == 403 || code == 429
}

type attempt struct {
	code     int
	body     string
	finalURL string
	err      error
}

// Fetch retrieves url and classifies the outcome. The caller applies
// any polite delay before calling; Fetch only sleeps for its own retry
// backoff.
func (c *Client) Fetch(ctx context.Context, url string) Result {
	backoff := c.cfg.BackoffBase
	rotated := false

	for i := 0; i < c.cfg.MaxAttempts; i++ {
		if ctx.Err() != nil {
			return Result{Status: StatusFailed, FinalURL: url}
		}

		a := c.get(url)
		switch {
		case a.err != nil && a.code == 0:
			// Transport fault (timeout, reset, DNS). Retry with backoff.
			logger.Debug("fetch transport error", "url", url, "attempt", i+1, "error", a.err)

		case deniedStatus(a.code):
			if rotated {
				logger.Debug("fetch denied after identity rotation", "url", url, "status", a.code)
				return Result{Status: StatusFailed, FinalURL: url}
			}
			rotated = true
			c.rotateIdentity()
			logger.Debug("fetch denied, retrying with fresh identity", "url", url, "status", a.code)

		case retryableStatus(a.code):
			logger.Debug("fetch transient server error", "url", url, "status", a.code, "attempt", i+1)

		case a.code >= 200 && a.code < 300:
			if LooksBlocked(a.body) {
				logger.Debug("fetch soft-blocked", "url", url)
				return Result{Status: StatusBlocked, FinalURL: a.finalURL}
			}
			return Result{Status: StatusOK, Body: a.body, FinalURL: a.finalURL}

		default:
			// Hard client error (404 and friends): not worth retrying.
			return Result{Status: StatusFailed, FinalURL: url}
		}

		c.sleep(backoff)
		backoff *= 2
	}

	return Result{Status: StatusFailed, FinalURL: url}
}

// get runs a single GET through a fresh collector so per-attempt
// identity and revisit rules never leak between attempts.
func (c *Client) get(url string) attempt {
	col := colly.NewCollector(
		colly.UserAgent(c.userAgent()),
	)
	col.SetRequestTimeout(c.cfg.Timeout)

	col.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		if c.cfg.Referer != "" {
			r.Headers.Set("Referer", c.cfg.Referer)
		}
	})

	var a attempt
	col.OnResponse(func(r *colly.Response) {
		a.code = r.StatusCode
		a.body = string(r.Body)
		a.finalURL = r.Request.URL.String()
	})
	col.OnError(func(r *colly.Response, err error) {
		if r != nil {
			a.code = r.StatusCode
		}
		a.err = err
	})

	if err := col.Visit(url); err != nil && a.err == nil {
		a.err = err
	}
	return a
}

// Package scan orchestrates a single extraction run: listing pages are
// fetched and harvested sequentially, then detail pages are fetched,
// classified, extracted and optionally enriched, each preceded by a
// randomized polite delay. All scan state lives in the Report returned
// to the caller; nothing is process-global.
package scan

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/leadscout/leadscout/internal/config"
	"github.com/leadscout/leadscout/internal/enrich"
	"github.com/leadscout/leadscout/internal/fetch"
	"github.com/leadscout/leadscout/internal/leads"
	"github.com/leadscout/leadscout/internal/logger"
	"github.com/leadscout/leadscout/internal/source"
)

// Report is the outcome of one scan. Warnings distinguish an empty
// result caused by blocking or noise from a genuine zero-match scan.
type Report struct {
	Records      []leads.Record
	ListingPages int // listing pages fetched successfully
	Candidates   int // candidate detail links harvested
	Processed    int // detail pages fetched
	Blocked      int // fetches rejected by anti-bot defenses
	Warnings     []string
}

func (r *Report) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	logger.Warn(msg)
}

// Scanner runs the pipeline for one validated configuration.
type Scanner struct {
	cfg      config.Scan
	client   *fetch.Client
	families []source.Family
	sleep    func(time.Duration)
}

// Option adjusts a Scanner, mainly for tests.
type Option func(*Scanner)

// WithFamilies replaces the families resolved from the configuration.
func WithFamilies(fams ...source.Family) Option {
	return func(s *Scanner) { s.families = fams }
}

// WithSleep replaces the delay clock.
func WithSleep(fn func(time.Duration)) Option {
	return func(s *Scanner) { s.sleep = fn }
}

// New validates the configuration and builds a Scanner. Configuration
// errors block the scan before any fetch occurs.
func New(cfg config.Scan, client *fetch.Client, opts ...Option) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scanner{cfg: cfg, client: client, sleep: time.Sleep}
	for _, name := range cfg.Families {
		fam, ok := source.ByName(name)
		if !ok {
			return nil, fmt.Errorf("scan: unknown source family %q", name)
		}
		s.families = append(s.families, fam)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// politeDelay sleeps a uniformly random interval within the configured
// bounds. Applied before every fetch, listing and detail alike.
func (s *Scanner) politeDelay() {
	span := s.cfg.DelayMax - s.cfg.DelayMin
	d := s.cfg.DelayMin + rand.Float64()*span
	if d > 0 {
		s.sleep(time.Duration(d * float64(time.Second)))
	}
}

type candidate struct {
	url    string
	family source.Family
}

// Run executes the full listing-to-leads pipeline.
func (s *Scanner) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	listing, err := s.listingTargets()
	if err != nil {
		return nil, err
	}
	logger.Info("scan starting", "listing_pages", len(listing), "families", len(s.families))

	candidates := s.harvest(ctx, listing, report)
	report.Candidates = len(candidates)
	if len(candidates) == 0 {
		report.warnf("no candidate property links harvested; try fewer pages, a different city, or another source family")
		return report, nil
	}
	logger.Info("candidates harvested", "count", len(candidates))

	s.processDetails(ctx, candidates, report)
	return report, nil
}

// RunURLs routes manually supplied detail URLs straight to the
// extractor/enrichment pair. Unrecognized hosts are skipped.
func (s *Scanner) RunURLs(ctx context.Context, urls []string) (*Report, error) {
	report := &Report{}
	var candidates []candidate
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Host == "" {
			report.warnf("skipping %q: not a valid URL", raw)
			continue
		}
		fam, ok := s.familyFor(raw)
		if !ok {
			report.warnf("skipping %s: host does not match any known source family", raw)
			continue
		}
		candidates = append(candidates, candidate{url: raw, family: fam})
	}
	report.Candidates = len(candidates)
	if len(candidates) == 0 {
		report.warnf("no usable URLs supplied")
		return report, nil
	}

	s.processDetails(ctx, candidates, report)
	return report, nil
}

// listingTargets derives the listing-page URLs for the run: either
// pagination variants of a pasted search URL, or per-family URLs built
// from the city/state pair.
func (s *Scanner) listingTargets() ([]candidate, error) {
	if s.cfg.SearchURL != "" {
		fam, ok := s.familyFor(s.cfg.SearchURL)
		if !ok {
			return nil, fmt.Errorf("scan: search URL host matches no known source family: %s", s.cfg.SearchURL)
		}
		var out []candidate
		for _, u := range pagedVariants(s.cfg.SearchURL, s.cfg.MaxPages) {
			out = append(out, candidate{url: u, family: fam})
		}
		return out, nil
	}

	var out []candidate
	for _, fam := range s.families {
		for _, u := range fam.BuildListingURLs(s.cfg.City, s.cfg.State, s.cfg.MaxPages) {
			out = append(out, candidate{url: u, family: fam})
		}
	}
	return out, nil
}

// pagedVariants derives pagination URLs from a raw search URL. Both
// ?page=N and /N/ forms are emitted since support varies by geo.
func pagedVariants(searchURL string, pages int) []string {
	base := strings.TrimSpace(searchURL)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	urls := []string{base}
	seen := map[string]bool{base: true}
	for p := 2; p <= pages; p++ {
		for _, u := range []string{
			fmt.Sprintf("%s?page=%d", base, p),
			fmt.Sprintf("%s%d/", base, p),
		} {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	return urls
}

func (s *Scanner) familyFor(rawURL string) (source.Family, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, false
	}
	host := u.Hostname()
	for _, fam := range s.families {
		if host == fam.Host() || strings.HasSuffix(host, "."+fam.Host()) {
			return fam, true
		}
	}
	return nil, false
}

// harvest fetches every listing page and unions the candidate links,
// preserving first-seen order across pages and strategies.
func (s *Scanner) harvest(ctx context.Context, listing []candidate, report *Report) []candidate {
	seen := make(map[string]bool)
	var out []candidate
	for _, l := range listing {
		if ctx.Err() != nil {
			return out
		}
		s.politeDelay()
		res := s.client.Fetch(ctx, l.url)
		switch res.Status {
		case fetch.StatusBlocked:
			report.Blocked++
			report.warnf("listing page blocked by anti-bot defenses: %s", l.url)
			continue
		case fetch.StatusFailed:
			logger.Debug("listing page fetch failed", "url", l.url)
			continue
		}
		report.ListingPages++

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.Body))
		if err != nil {
			logger.Debug("listing page parse failed", "url", l.url, "error", err)
			continue
		}
		base := res.FinalURL
		if base == "" {
			base = l.url
		}
		for _, u := range l.family.HarvestLinks(doc, base) {
			if seen[u] {
				continue
			}
			seen[u] = true
			out = append(out, candidate{url: u, family: l.family})
		}
	}
	return out
}

// processDetails walks the candidate list up to the record cap, runs
// classification, extraction and optional enrichment, and finalizes the
// surviving records onto the report.
func (s *Scanner) processDetails(ctx context.Context, candidates []candidate, report *Report) {
	var follower *enrich.Follower
	if s.cfg.FollowManagement {
		follower = enrich.New(s.client, s.politeDelay)
	}

	var collected []leads.Record
	for _, c := range candidates {
		if ctx.Err() != nil {
			break
		}
		if report.Processed >= s.cfg.MaxRecords {
			logger.Debug("record cap reached", "cap", s.cfg.MaxRecords)
			break
		}
		report.Processed++

		s.politeDelay()
		res := s.client.Fetch(ctx, c.url)
		switch res.Status {
		case fetch.StatusBlocked:
			report.Blocked++
			report.warnf("detail page blocked by anti-bot defenses: %s", c.url)
			continue
		case fetch.StatusFailed:
			logger.Debug("detail page fetch failed", "url", c.url)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.Body))
		if err != nil {
			logger.Debug("detail page parse failed", "url", c.url, "error", err)
			continue
		}
		if !c.family.IsDetailPage(doc) {
			logger.Debug("not a property detail page, skipping", "url", c.url)
			continue
		}

		rec := c.family.Extract(doc, c.url)
		if follower != nil {
			rec = follower.Follow(ctx, rec)
		}
		if !rec.Viable() {
			logger.Debug("record missing both name and address, dropped", "url", c.url)
			continue
		}
		collected = append(collected, rec)
		logger.Info("lead extracted", "name", rec.Name, "url", c.url)
	}

	if len(collected) == 0 {
		report.warnf("candidate links were harvested but no record survived extraction")
	}
	report.Records = leads.Finalize(collected)
}

// Package enrich follows a lead's management-site URL to fill contact
// fields the detail page did not carry. It is a best-effort pass: a
// blocked or failed fetch leaves the record unchanged, and populated
// fields are never overwritten.
package enrich

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/leadscout/leadscout/internal/fetch"
	"github.com/leadscout/leadscout/internal/leads"
	"github.com/leadscout/leadscout/internal/logger"
)

// Follower fetches management sites and scans them for public contact
// details.
type Follower struct {
	client *fetch.Client
	delay  func()
}

// New builds a Follower. delay is the caller's polite-delay hook, run
// before every fetch; it may be nil.
func New(client *fetch.Client, delay func()) *Follower {
	return &Follower{client: client, delay: delay}
}

// Follow returns the record with empty phone/email filled from the
// management site when possible. No-op when the record has no
// management URL.
func (f *Follower) Follow(ctx context.Context, rec leads.Record) leads.Record {
	if rec.MgmtURL == "" {
		return rec
	}
	if rec.Email != "" && rec.Phone != "" {
		return rec
	}

	if f.delay != nil {
		f.delay()
	}
	res := f.client.Fetch(ctx, rec.MgmtURL)
	if res.Status != fetch.StatusOK {
		logger.Debug("enrichment fetch unsuccessful", "url", rec.MgmtURL, "status", res.Status)
		return rec
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.Body))
	if err != nil {
		return rec
	}

	if rec.Email == "" {
		rec.Email = findEmail(doc)
	}
	if rec.Phone == "" {
		rec.Phone = findPhone(doc)
	}
	return rec
}

// findEmail scans the page text for an email pattern, falling back to
// the first mailto: link target.
func findEmail(doc *goquery.Document) string {
	if m := leads.EmailPattern.FindString(pageText(doc)); m != "" {
		return leads.Normalize(m)
	}
	var email string
	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if addr != "" {
			email = leads.Normalize(addr)
			return false
		}
		return true
	})
	return email
}

// findPhone prefers a click-to-call link, then a phone-pattern match
// over the page text.
func findPhone(doc *goquery.Document) string {
	tel := doc.Find(`a[href^="tel:"]`).First()
	if tel.Length() > 0 {
		if t := leads.Normalize(tel.Text()); t != "" {
			return t
		}
		href, _ := tel.Attr("href")
		if t := leads.Normalize(strings.TrimPrefix(href, "tel:")); t != "" {
			return t
		}
	}
	return leads.Normalize(leads.PhonePattern.FindString(pageText(doc)))
}

func pageText(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(body.Text()), " ")
}

// Package source implements the per-site-family capability set: URL
// building, candidate link harvesting, detail-page classification and
// field extraction. Adding a family means adding selector/hint lists,
// not new code paths.
package source

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/leadscout/leadscout/internal/leads"
)

// Family is the capability set for one rental-listing site.
type Family interface {
	// Name is the stable tag recorded on every lead.
	Name() string

	// Host is the root domain the family owns; harvested candidates
	// must resolve within it.
	Host() string

	// BuildListingURLs derives listing-page URLs for a city/state pair,
	// including the pagination variants the site supports.
	BuildListingURLs(city, state string, pages int) []string

	// HarvestLinks collects candidate detail-page URLs from a listing
	// document, normalized and deduplicated in insertion order.
	HarvestLinks(doc *goquery.Document, baseURL string) []string

	// IsDetailPage reports whether the document looks like a single
	// property's detail page rather than a listing or noise.
	IsDetailPage(doc *goquery.Document) bool

	// Extract pulls the lead fields out of a detail page.
	Extract(doc *goquery.Document, sourceURL string) leads.Record
}

var registry = []*family{
	newApartments(),
	newApartmentList(),
}

// ByName looks a family up by its tag.
func ByName(name string) (Family, bool) {
	for _, f := range registry {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// forURL matches a URL's host against the registered families. The
// scanner does its own matching scoped to the active families; this is
// the registry-wide view.
func forURL(rawURL string) (Family, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, false
	}
	for _, f := range registry {
		if hostWithin(u.Hostname(), f.host) {
			return f, true
		}
	}
	return nil, false
}

// hostWithin matches a hostname against a root domain, accepting the
// domain itself and any subdomain of it.
func hostWithin(hostname, domain string) bool {
	return hostname == domain || strings.HasSuffix(hostname, "."+domain)
}

// citySlug converts "Coral Gables" to "coral-gables".
func citySlug(city string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(city)), " ", "-")
}

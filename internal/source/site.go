package source

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/leadscout/leadscout/internal/leads"
)

// anchorHint is one entry in a family's ordered harvesting list: an
// anchor matches when it satisfies the CSS selector (if set) and its
// resolved URL contains the path fragment (if set).
type anchorHint struct {
	Selector     string
	PathFragment string
}

// family is the data-driven implementation shared by every source
// family; variants differ only in their hint and selector lists.
type family struct {
	name string
	host string

	listing func(city, state string, pages int) []string

	hints           []anchorHint
	genericFallback bool
	minPathDepth    int

	markers          []string
	headingSelectors []string
	addressSelectors []string
}

func (f *family) Name() string { return f.name }
func (f *family) Host() string { return f.host }

func (f *family) BuildListingURLs(city, state string, pages int) []string {
	return dedupeOrdered(f.listing(city, state, pages))
}

// HarvestLinks unions three strategies in order: structured-data item
// lists, the family's anchor hints, and (for families without specific
// selectors) a generic same-domain path-depth scan. Candidates are
// resolved absolute, stripped of query and trailing slash, and filtered
// to the family's domain; duplicates collapse to first occurrence.
func (f *family) HarvestLinks(doc *goquery.Document, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	add := func(raw string) {
		u, ok := f.candidate(raw, base)
		if !ok || seen[u] {
			return
		}
		seen[u] = true
		out = append(out, u)
	}

	for _, raw := range itemListURLs(doc) {
		add(raw)
	}

	for _, hint := range f.hints {
		selector := hint.Selector
		if selector == "" {
			selector = "a"
		}
		doc.Find(selector + "[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			if href == "" {
				return
			}
			if hint.PathFragment != "" {
				resolved := resolveURL(href, base)
				if resolved == nil || !strings.Contains(resolved.Path, hint.PathFragment) {
					return
				}
			}
			add(href)
		})
	}

	if f.genericFallback {
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			if href == "" {
				return
			}
			resolved := resolveURL(href, base)
			if resolved == nil || pathDepth(resolved) < f.minPathDepth {
				return
			}
			add(href)
		})
	}

	return out
}

// candidate normalizes a raw href into a candidate link, rejecting
// anything outside the family's domain.
func (f *family) candidate(raw string, base *url.URL) (string, bool) {
	u := resolveURL(raw, base)
	if u == nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if !hostWithin(u.Hostname(), f.host) {
		return "", false
	}
	path := strings.TrimRight(u.Path, "/")
	return u.Scheme + "://" + u.Host + path, true
}

func resolveURL(raw string, base *url.URL) *url.URL {
	if strings.HasPrefix(raw, "#") || strings.HasPrefix(raw, "javascript:") || strings.HasPrefix(raw, "mailto:") {
		return nil
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	if !u.IsAbs() {
		u = base.ResolveReference(u)
	}
	u.Fragment = ""
	return u
}

func pathDepth(u *url.URL) int {
	trimmed := strings.Trim(u.Path, "/")
	if trimmed == "" {
		return 0
	}
	return len(strings.Split(trimmed, "/"))
}

func dedupeOrdered(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// managedByRe recognizes the management label on detail pages.
var managedByRe = regexp.MustCompile(`(?i)managed by|property management`)

// managedByLabelRe strips the label words when the company name is the
// trailing text of the label's own block.
var managedByLabelRe = regexp.MustCompile(`(?i)managed by:?\s*`)

// IsDetailPage is a best-effort heuristic: a management label anywhere
// in the visible text, a family structural marker, or structured data
// declaring a place/apartment-like type. False positives are filtered
// later by the empty name/address guard.
func (f *family) IsDetailPage(doc *goquery.Document) bool {
	if managedByRe.MatchString(visibleText(doc)) {
		return true
	}
	for _, marker := range f.markers {
		if doc.Find(marker).Length() > 0 {
			return true
		}
	}
	for _, n := range structuredBlocks(doc) {
		if typeMatches(n, "Apartment", "Place") {
			return true
		}
	}
	return false
}

// Extract populates each field by trying sources in priority order and
// keeping the first non-empty, normalized value: structured data, then
// DOM heuristics, then full-text pattern search. Email is never filled
// here; only the enrichment pass populates it.
func (f *family) Extract(doc *goquery.Document, sourceURL string) leads.Record {
	rec := leads.Record{SourceURL: sourceURL, Source: f.name}

	for _, n := range structuredBlocks(doc) {
		if !typeMatches(n, "Apartment", "Place", "Organization") {
			continue
		}
		setIfEmpty(&rec.Name, stringField(n, "name"))
		setIfEmpty(&rec.Address, addressValue(n["address"]))
		setIfEmpty(&rec.Phone, telephone(n))
		setIfEmpty(&rec.Management, orgName(n["brand"]))
		setIfEmpty(&rec.Management, orgName(n["provider"]))
	}

	if rec.Name == "" {
		rec.Name = firstText(doc, f.headingSelectors)
	}
	if rec.Address == "" {
		rec.Address = firstText(doc, f.addressSelectors)
	}
	if rec.Phone == "" {
		rec.Phone = clickToCall(doc)
	}
	if rec.Phone == "" {
		rec.Phone = leads.Normalize(leads.PhonePattern.FindString(visibleText(doc)))
	}

	mgmt, mgmtURL := managedBy(doc, sourceURL)
	setIfEmpty(&rec.Management, mgmt)
	rec.MgmtURL = mgmtURL

	return rec
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

// firstText returns the first non-empty normalized text among the
// ordered selector list.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if t := leads.Normalize(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// clickToCall returns the visible text of the first tel: link, falling
// back to the link target's number.
func clickToCall(doc *goquery.Document) string {
	tel := doc.Find(`a[href^="tel:"]`).First()
	if tel.Length() == 0 {
		return ""
	}
	if t := leads.Normalize(tel.Text()); t != "" {
		return t
	}
	href, _ := tel.Attr("href")
	return leads.Normalize(strings.TrimPrefix(href, "tel:"))
}

// managedBy locates the "Managed by" label and returns the company name
// and the management-site URL, preferring the label's sibling link text
// over the block's trailing text. The URL is resolved absolute against
// the detail page.
func managedBy(doc *goquery.Document, baseURL string) (string, string) {
	var label *goquery.Selection
	doc.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if managedByLabelRe.MatchString(ownText(s)) {
			label = s
			return false
		}
		return true
	})
	if label == nil {
		return "", ""
	}

	anchor := label.Find("a[href]").First()
	if anchor.Length() == 0 {
		anchor = label.Parent().Find("a[href]").First()
	}

	var name, mgmtURL string
	if anchor.Length() > 0 {
		name = leads.Normalize(anchor.Text())
		if href, ok := anchor.Attr("href"); ok {
			mgmtURL = absoluteURL(href, baseURL)
		}
	}
	if name == "" {
		name = leads.Normalize(managedByLabelRe.ReplaceAllString(label.Text(), ""))
	}
	return name, mgmtURL
}

func absoluteURL(raw, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return raw
	}
	u := resolveURL(raw, base)
	if u == nil {
		return ""
	}
	return u.String()
}

// ownText concatenates the element's direct text-node children,
// excluding descendant elements. Mirrors a string-only label search.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return b.String()
}

// visibleText returns the page's readable text with script/style
// content removed and whitespace collapsed.
func visibleText(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript, iframe, svg").Remove()
	return strings.Join(strings.Fields(body.Text()), " ")
}

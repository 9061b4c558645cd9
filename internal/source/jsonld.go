package source

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/leadscout/leadscout/internal/leads"
)

// structuredBlocks parses every JSON-LD island in the document into a
// flat list of nodes. Blocks may be a single object, a list of objects,
// or a wrapper with an @graph list; malformed blocks are skipped.
func structuredBlocks(doc *goquery.Document) []map[string]any {
	var raw []map[string]any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		var v any
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return
		}
		switch d := v.(type) {
		case map[string]any:
			raw = append(raw, d)
		case []any:
			for _, e := range d {
				if m, ok := e.(map[string]any); ok {
					raw = append(raw, m)
				}
			}
		}
	})

	var flat []map[string]any
	for _, d := range raw {
		if g, ok := d["@graph"].([]any); ok {
			for _, e := range g {
				if m, ok := e.(map[string]any); ok {
					flat = append(flat, m)
				}
			}
			continue
		}
		flat = append(flat, d)
	}
	return flat
}

// nodeTypes returns the node's @type values; @type may be a string or a
// list of strings.
func nodeTypes(n map[string]any) []string {
	switch t := n["@type"].(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// typeMatches reports whether any of the node's types contains one of
// the given substrings ("Apartment" matches "ApartmentComplex").
func typeMatches(n map[string]any, substrs ...string) bool {
	for _, t := range nodeTypes(n) {
		for _, sub := range substrs {
			if strings.Contains(t, sub) {
				return true
			}
		}
	}
	return false
}

// stringField returns a top-level string value, normalized.
func stringField(n map[string]any, key string) string {
	if s, ok := n[key].(string); ok {
		return leads.Normalize(s)
	}
	return ""
}

// orgName accepts either a plain string or an organization object and
// returns its name. Used for brand/provider fields.
func orgName(v any) string {
	switch o := v.(type) {
	case string:
		return leads.Normalize(o)
	case map[string]any:
		return stringField(o, "name")
	}
	return ""
}

// telephone returns the node's telephone, falling back to a nested
// contactPoint object.
func telephone(n map[string]any) string {
	if s := stringField(n, "telephone"); s != "" {
		return s
	}
	if cp, ok := n["contactPoint"].(map[string]any); ok {
		return stringField(cp, "telephone")
	}
	return ""
}

// addressValue accepts either a plain string or a postal-address object
// and returns a single-line address. Object parts are concatenated with
// ", ", dropping empty components.
func addressValue(v any) string {
	switch a := v.(type) {
	case string:
		return leads.Normalize(a)
	case map[string]any:
		var parts []string
		for _, key := range []string{"streetAddress", "addressLocality", "addressRegion", "postalCode"} {
			if s, ok := a[key].(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return leads.Normalize(strings.Join(parts, ", "))
	}
	return ""
}

// itemListURLs extracts the ordered item URLs from any ItemList block
// in the document. Each list element may carry its URL directly, under
// a nested item object, or as an @id.
func itemListURLs(doc *goquery.Document) []string {
	var out []string
	for _, n := range structuredBlocks(doc) {
		if !typeMatches(n, "ItemList") {
			continue
		}
		elements, ok := n["itemListElement"].([]any)
		if !ok {
			continue
		}
		for _, e := range elements {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if u := itemURL(m); u != "" {
				out = append(out, u)
			}
		}
	}
	return out
}

func itemURL(m map[string]any) string {
	for _, key := range []string{"url", "@id"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	if item, ok := m["item"].(map[string]any); ok {
		for _, key := range []string{"url", "@id"} {
			if s, ok := item[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

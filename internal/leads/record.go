// Package leads defines the lead record produced by the extraction
// pipeline and the normalization/deduplication pass applied to the
// final record set.
package leads

import (
	"html"
	"strings"
)

// Record is one extracted property lead. Empty string means the field
// was not found; absence is not an error.
type Record struct {
	Name       string `json:"property_name" yaml:"property_name"`
	Address    string `json:"address" yaml:"address"`
	Management string `json:"management_company" yaml:"management_company"`
	Phone      string `json:"phone" yaml:"phone"`
	Email      string `json:"email" yaml:"email"`
	SourceURL  string `json:"source_url" yaml:"source_url"`
	MgmtURL    string `json:"mgmt_url" yaml:"mgmt_url"`
	Source     string `json:"source" yaml:"source"`
}

// Viable reports whether the record carries enough identity to be
// emitted. A record with neither name nor address is discarded.
func (r Record) Viable() bool {
	return r.Name != "" || r.Address != ""
}

// Normalize decodes HTML entities, collapses runs of whitespace to a
// single space and trims the result. Normalizing an already-normalized
// string returns it unchanged.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

// Normalized returns a copy of the record with every text field passed
// through Normalize.
func (r Record) Normalized() Record {
	r.Name = Normalize(r.Name)
	r.Address = Normalize(r.Address)
	r.Management = Normalize(r.Management)
	r.Phone = Normalize(r.Phone)
	r.Email = Normalize(r.Email)
	r.SourceURL = strings.TrimSpace(r.SourceURL)
	r.MgmtURL = strings.TrimSpace(r.MgmtURL)
	r.Source = Normalize(r.Source)
	return r
}

// Finalize normalizes every record, drops records that carry neither a
// name nor an address, and deduplicates the survivors in two passes:
// first by source URL, then by (name, address) pair. The first
// occurrence wins in both passes and input order is preserved among
// survivors. Finalize is idempotent.
func Finalize(in []Record) []Record {
	out := make([]Record, 0, len(in))

	seenURL := make(map[string]bool, len(in))
	for _, r := range in {
		r = r.Normalized()
		if !r.Viable() {
			continue
		}
		if r.SourceURL != "" && seenURL[r.SourceURL] {
			continue
		}
		if r.SourceURL != "" {
			seenURL[r.SourceURL] = true
		}
		out = append(out, r)
	}

	seenPair := make(map[[2]string]bool, len(out))
	final := out[:0]
	for _, r := range out {
		key := [2]string{r.Name, r.Address}
		if seenPair[key] {
			continue
		}
		seenPair[key] = true
		final = append(final, r)
	}
	return final
}

// DedupeBy normalizes every record and deduplicates by the caller's
// key, keeping the first occurrence in input order. Records with
// neither name nor address are dropped, as in Finalize. Used by the
// merge path, where the dedupe key is a user-chosen column subset.
func DedupeBy(in []Record, key func(Record) string) []Record {
	out := make([]Record, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, r := range in {
		r = r.Normalized()
		if !r.Viable() {
			continue
		}
		k := key(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

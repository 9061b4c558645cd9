// Package config defines the immutable scan configuration consumed by
// the pipeline. A configuration is built once per run from CLI flags,
// environment or config file, validated up front, and never mutated
// mid-scan.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Scan holds everything a single scan run needs. Exactly one target
// mode must be set: City+State, SearchURL, or URLs.
type Scan struct {
	// Target: either a city/state pair or a pasted search URL.
	City  string `mapstructure:"city"`
	State string `mapstructure:"state"`

	// SearchURL is a raw listing search URL; when set it overrides the
	// city/state pair and pins the scan to the matching source family.
	SearchURL string `mapstructure:"search_url" validate:"omitempty,url"`

	// URLs is an explicit list of detail-page URLs (manual input path).
	// Entries are not format-checked here; the scanner skips unusable
	// lines one by one so a stray line never aborts the run.
	URLs []string `mapstructure:"urls"`

	// Families selects the active source families by name.
	Families []string `mapstructure:"families" validate:"required,min=1,dive,oneof=apartments apartmentlist"`

	// Crawl caps.
	MaxPages   int `mapstructure:"max_pages" validate:"gte=1,lte=50"`
	MaxRecords int `mapstructure:"max_records" validate:"gte=1,lte=2000"`

	// FollowManagement enables the enrichment pass over "Managed by"
	// links to hunt for a public email/phone.
	FollowManagement bool `mapstructure:"follow_management"`

	// Per-request random delay bounds, in seconds.
	DelayMin float64 `mapstructure:"delay_min" validate:"gte=0"`
	DelayMax float64 `mapstructure:"delay_max" validate:"gte=0,gtefield=DelayMin"`

	// Referer is an optional Referer header hint sent with every fetch.
	Referer string `mapstructure:"referer"`

	// Timeout applies to each individual fetch, never to the whole scan.
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// Default returns the baseline configuration; callers overlay target
// and flag values on top.
func Default() Scan {
	return Scan{
		Families:         []string{"apartments"},
		MaxPages:         3,
		MaxRecords:       200,
		FollowManagement: true,
		DelayMin:         0.6,
		DelayMax:         1.5,
		Timeout:          20 * time.Second,
	}
}

var validate = validator.New()

// Validate rejects a configuration before any fetch occurs. Messages
// name the missing or invalid field so the user can fix the input.
func (c Scan) Validate() error {
	if c.SearchURL == "" && len(c.URLs) == 0 {
		if c.City == "" {
			return fmt.Errorf("config: city is required when no search URL is given")
		}
		if c.State == "" {
			return fmt.Errorf("config: state is required when no search URL is given")
		}
	}
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("config: invalid %s (failed %q constraint)", e.Field(), e.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

package leads

import "regexp"

// Contact patterns shared by the field extractor and the enrichment
// follower.
var (
	// PhonePattern matches North-American phone numbers.
	PhonePattern = regexp.MustCompile(`(?:(?:\+?1[\s\-.]?)?(?:\(?\d{3}\)?[\s\-.]?)\d{3}[\s\-.]?\d{4})`)

	// EmailPattern matches a plain email address.
	EmailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
)

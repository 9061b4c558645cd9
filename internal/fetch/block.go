package fetch

import "strings"

// blockSniffWindow bounds how much of the body is inspected for
// interstitial signatures.
const blockSniffWindow = 5000

// blockSignatures is a small, versioned list of soft-block markers.
// Anti-bot interstitials change wording over time, so these are
// best-effort and expected to drift.
var blockSignatures = []string{
	"please verify you are human",
	"verify you are a human",
	"are you a robot",
	"unusual traffic",
	"captcha",
	"access to this page has been denied",
	"attention required",
}

// LooksBlocked reports whether a transport-successful body is actually
// an anti-bot challenge or interstitial page.
func LooksBlocked(body string) bool {
	if body == "" {
		return false
	}
	window := body
	if len(window) > blockSniffWindow {
		window = window[:blockSniffWindow]
	}
	window = strings.ToLower(window)
	for _, sig := range blockSignatures {
		if strings.Contains(window, sig) {
			return true
		}
	}
	return false
}

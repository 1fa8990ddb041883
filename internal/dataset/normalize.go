// Package dataset holds the static demographics and site-performance data
// and the pure lookup functions the tool servers dispatch to. Stores are
// constructed per server instance; there is no package-level mutable state.
package dataset

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by exact-match lookups when the identifier does
// not exist. An empty filtered result is not a not-found condition.
var ErrNotFound = errors.New("not found")

// regionCodes maps canonicalized human region names to the region-code
// prefix used by site and pool identifiers.
var regionCodes = map[string]string{
	"northeast":  "US-NE",
	"california": "US-CA",
	"texas":      "US-TX",
	"florida":    "US-FL",
	"illinois":   "US-IL",
	"washington": "US-WA",
}

// NormalizeRegion maps a human region name to its region-code prefix.
// Matching is case-insensitive with whitespace collapsed to hyphens, and a
// leading "US-" on the name is tolerated ("US-Northeast" → "US-NE").
// Unrecognized inputs pass through upper-cased, which makes the function
// idempotent: region codes like "US-NE-001" map to themselves.
func NormalizeRegion(region string) string {
	key := strings.ToLower(strings.TrimSpace(region))
	key = strings.Join(strings.Fields(key), "-")

	if code, ok := regionCodes[key]; ok {
		return code
	}
	if trimmed := strings.TrimPrefix(key, "us-"); trimmed != key {
		if code, ok := regionCodes[trimmed]; ok {
			return code
		}
	}
	return strings.ToUpper(key)
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Package temporal classifies bare tag tokens as temporal or not.
//
// A temporal token denotes a date, time, time range, week, or weekday,
// recognized by shape alone. Classification is what lets the migration
// decide whether @token stays temporal or becomes a #tag.
package temporal

import (
	"regexp"
	"strings"
)

// Rules describe every temporal token shape, in the order they are tried.
// A token is temporal if any rule matches its prefix; rules are combined
// into one alternation, so order never changes the outcome.
var Rules = []string{
	// Dates: YYYY-MM-DD, DD-MM-YYYY, DD.MM and friends (separators - . /)
	`\d{4}[-./]\d{1,2}[-./]\d{1,2}`,
	`\d{1,2}[-./]\d{1,2}[-./]\d{2,4}`,
	`\d{1,2}[-./]\d{1,2}`,
	// Weeks: W12, KW12, 2025W12, 2025-W12
	`\d{4}[-.]?[wk]w?\d{1,2}`,
	`[wk]w?\d{1,2}`,
	// Times: 10:30, 10:30am, 9am
	`\d{1,2}:\d{2}(?:am|pm)?`,
	`\d{1,2}(?:am|pm)`,
	// Time slots: 9:00-17:00, 9am-5pm
	`\d{1,2}(?::\d{2})?(?:am|pm)?-\d{1,2}(?::\d{2})?(?:am|pm)?`,
	// Weekdays
	`(?:mon|monday|tue|tuesday|wed|wednesday|thu|thursday|fri|friday|sat|saturday|sun|sunday)`,
	// Year tags: Y2026, J2026
	`[yj]\d{4}`,
}

// Alternation returns the combined rule set as a single regexp alternative,
// without anchors or flags. Callers embed it in their own patterns.
func Alternation() string {
	return strings.Join(Rules, "|")
}

// temporalRegex anchors the alternation at the start of the token and
// requires the match to consume a clean span: a rule must not fire on a
// sub-part of a longer non-temporal token (e.g. "W12abc").
var temporalRegex = regexp.MustCompile(`(?i)^(?:` + Alternation() + `)(?:\s|$)`)

// IsTemporal reports whether the token text (without its @/! prefix) looks
// like a date, week, time, time range, weekday, or year tag.
func IsTemporal(token string) bool {
	return temporalRegex.MatchString(token)
}

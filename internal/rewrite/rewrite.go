// Package rewrite migrates lines from the old tag convention to the new one.
//
// Old convention: # for tags, @ for people AND dates, ! for temporal tokens.
// New convention: # for tags AND people, @ reserved for temporal tokens.
//
// The rewrite runs as two passes over each line, in fixed order:
//
//	pass A: !<temporal>  -> @<temporal>
//	pass B: @<person>    -> #<person>   (temporal @ tokens stay untouched)
//
// Pass A produces a new string before pass B starts, so tokens converted by
// pass A are classified (correctly) as temporal and left alone by pass B.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ludos1978/lexera/internal/temporal"
)

// Change records one token substitution on a line, for reporting only.
type Change struct {
	Old string `json:"old"`
	New string `json:"new"`
}

func (c Change) String() string {
	return fmt.Sprintf("%s -> %s", c.Old, c.New)
}

var (
	// Pass A: ! followed by a whole temporal rule, then whitespace or end.
	// There is deliberately no left boundary; the original convention never
	// required one for ! tokens.
	exclaimRegex = regexp.MustCompile(`(?i)!(` + temporal.Alternation() + `)(\s|$)`)

	// Pass B: @ preceded by line start or whitespace, followed by a run of
	// non-whitespace, non-@ characters. The @-exclusion keeps email-like
	// strings (user@example.com) out of the candidate set.
	atRegex = regexp.MustCompile(`(^|\s)@([^\s@]+)`)
)

// Line rewrites a single line and returns the new line plus the changes made.
// Any input is valid; a line with no matches comes back unchanged with an
// empty change list.
func Line(line string) (string, []Change) {
	var changes []Change

	// Pass A: !temporal -> @temporal.
	result := line
	if matches := exclaimRegex.FindAllStringSubmatchIndex(result, -1); len(matches) > 0 {
		var b strings.Builder
		b.Grow(len(result))
		last := 0
		for _, m := range matches {
			token := result[m[2]:m[3]]
			trailing := result[m[4]:m[5]]
			b.WriteString(result[last:m[0]])
			b.WriteString("@")
			b.WriteString(token)
			b.WriteString(trailing)
			last = m[1]
			changes = append(changes, Change{Old: "!" + token, New: "@" + token})
		}
		b.WriteString(result[last:])
		result = b.String()
	}

	// Pass B: @person -> #person, leaving @temporal alone. Replacements are
	// applied right to left so earlier match positions stay valid.
	matches := atRegex.FindAllStringSubmatchIndex(result, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		token := result[m[4]:m[5]]
		if temporal.IsTemporal(token) {
			continue
		}
		boundary := result[m[2]:m[3]]
		result = result[:m[0]] + boundary + "#" + token + result[m[1]:]
		changes = append(changes, Change{Old: "@" + token, New: "#" + token})
	}

	return result, changes
}

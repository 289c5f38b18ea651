package rewrite

import (
	"fmt"
	"strings"
)

// LineChange is a Change tagged with its 1-based line number.
type LineChange struct {
	Line int    `json:"line"`
	Old  string `json:"old"`
	New  string `json:"new"`
}

func (c LineChange) String() string {
	return fmt.Sprintf("Line %d: %s -> %s", c.Line, c.Old, c.New)
}

// Content rewrites a whole document. Lines are processed independently and
// rejoined with the same newline character, so everything outside the token
// substitutions is preserved byte for byte.
//
// The transform is idempotent: a second run finds no !temporal tokens left to
// convert, and every @ token surviving pass B is temporal and therefore
// stable.
func Content(text string) (string, []LineChange) {
	lines := strings.Split(text, "\n")
	var changes []LineChange

	for i, line := range lines {
		newLine, lineChanges := Line(line)
		lines[i] = newLine
		for _, c := range lineChanges {
			changes = append(changes, LineChange{Line: i + 1, Old: c.Old, New: c.New})
		}
	}

	return strings.Join(lines, "\n"), changes
}

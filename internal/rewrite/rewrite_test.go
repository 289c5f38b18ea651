package rewrite

import "testing"

func TestLineMixedTokens(t *testing.T) {
	line, changes := Line("Meeting with @john !W12")
	if line != "Meeting with #john @W12" {
		t.Fatalf("unexpected line: %q", line)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d: %v", len(changes), changes)
	}
	if changes[0].String() != "!W12 -> @W12" {
		t.Fatalf("unexpected first change: %s", changes[0])
	}
	if changes[1].String() != "@john -> #john" {
		t.Fatalf("unexpected second change: %s", changes[1])
	}
}

func TestLineTemporalAtStaysPut(t *testing.T) {
	line, changes := Line("@2025-03-27 review")
	if line != "@2025-03-27 review" {
		t.Fatalf("temporal @ token must stay unchanged, got %q", line)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no changes, got %v", changes)
	}
}

func TestLineWeekdayAndPerson(t *testing.T) {
	line, changes := Line("!monday standup @team-alpha")
	if line != "@monday standup #team-alpha" {
		t.Fatalf("unexpected line: %q", line)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %v", changes)
	}
	if changes[0].String() != "!monday -> @monday" || changes[1].String() != "@team-alpha -> #team-alpha" {
		t.Fatalf("unexpected changes: %v", changes)
	}
}

func TestLineTimeRange(t *testing.T) {
	line, changes := Line("!9am-5pm workshop")
	if line != "@9am-5pm workshop" {
		t.Fatalf("unexpected line: %q", line)
	}
	if len(changes) != 1 || changes[0].String() != "!9am-5pm -> @9am-5pm" {
		t.Fatalf("unexpected changes: %v", changes)
	}
}

func TestLinePlainTextUntouched(t *testing.T) {
	line, changes := Line("Just a plain line.")
	if line != "Just a plain line." {
		t.Fatalf("plain line must be unchanged, got %q", line)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no changes, got %v", changes)
	}
}

func TestLineExclaimNonTemporalKept(t *testing.T) {
	line, changes := Line("important !urgent task")
	if line != "important !urgent task" {
		t.Fatalf("non-temporal ! token must stay, got %q", line)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no changes, got %v", changes)
	}
}

func TestLineConvertedTokenShieldedFromPassB(t *testing.T) {
	// !W12 becomes @W12 in pass A; pass B must classify it as temporal
	// and leave it alone instead of producing #W12.
	line, _ := Line("!W12")
	if line != "@W12" {
		t.Fatalf("expected @W12, got %q", line)
	}
}

func TestLineMultipleAtTokens(t *testing.T) {
	line, changes := Line("@alice @2025-01-01 @bob")
	if line != "#alice @2025-01-01 #bob" {
		t.Fatalf("unexpected line: %q", line)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %v", changes)
	}
}

func TestLineAtStartOfLine(t *testing.T) {
	line, _ := Line("@john owns this")
	if line != "#john owns this" {
		t.Fatalf("line-start boundary must count, got %q", line)
	}
}

func TestLineEmailUntouched(t *testing.T) {
	// Mid-word @ has no start/whitespace boundary and is not a marker token.
	line, changes := Line("mail john@example.com today")
	if line != "mail john@example.com today" {
		t.Fatalf("email must stay untouched, got %q", line)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no changes, got %v", changes)
	}
}

func TestLineTrailingPunctuationStaysInToken(t *testing.T) {
	// Punctuation glued to the token is part of it. A date with a trailing
	// comma no longer matches a whole temporal rule, so it converts like any
	// other tag. This mirrors the original convention's behavior.
	line, _ := Line("ping @john, please")
	if line != "ping #john, please" {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestLineTabBoundary(t *testing.T) {
	line, _ := Line("a\t@john\t!friday")
	if line != "a\t#john\t@friday" {
		t.Fatalf("tab must count as a boundary, got %q", line)
	}
}

func TestLineCaseInsensitiveTemporal(t *testing.T) {
	line, _ := Line("!MONDAY @KW12 @John")
	if line != "@MONDAY @KW12 #John" {
		t.Fatalf("unexpected line: %q", line)
	}
}

package rewrite

import "testing"

func TestContentLineNumbersAndJoin(t *testing.T) {
	input := "# Board\n\nMeeting with @john !W12\n@2025-03-27 review\n"
	want := "# Board\n\nMeeting with #john @W12\n@2025-03-27 review\n"

	got, changes := Content(input)
	if got != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", got, want)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %v", changes)
	}
	if changes[0].String() != "Line 3: !W12 -> @W12" {
		t.Fatalf("unexpected change: %s", changes[0])
	}
	if changes[1].String() != "Line 3: @john -> #john" {
		t.Fatalf("unexpected change: %s", changes[1])
	}
}

func TestContentIdempotent(t *testing.T) {
	inputs := []string{
		"Meeting with @john !W12",
		"!monday standup @team-alpha\n!9am-5pm workshop",
		"@2025-03-27 review\nplain text\n@alice @bob",
		"",
		"\n\n\n",
	}
	for _, input := range inputs {
		once, _ := Content(input)
		twice, changes := Content(once)
		if twice != once {
			t.Fatalf("not idempotent for %q: first %q, second %q", input, once, twice)
		}
		if len(changes) != 0 {
			t.Fatalf("second run must report no changes for %q, got %v", input, changes)
		}
	}
}

func TestContentPreservesUntouchedBytes(t *testing.T) {
	input := "  indented @john  \ttrailing\nwindows line\r\nlast"
	got, _ := Content(input)
	want := "  indented #john  \ttrailing\nwindows line\r\nlast"
	if got != want {
		t.Fatalf("surrounding bytes must survive:\n%q\nwant:\n%q", got, want)
	}
}

func TestContentEmptyDocument(t *testing.T) {
	got, changes := Content("")
	if got != "" || len(changes) != 0 {
		t.Fatalf("empty document must stay empty, got %q %v", got, changes)
	}
}

package cli

import (
	"strings"
	"testing"

	"github.com/ludos1978/lexera/internal/migrate"
	"github.com/ludos1978/lexera/internal/rewrite"
	"github.com/ludos1978/lexera/internal/testutil"
)

func TestScanCommand(t *testing.T) {
	boards := testutil.NewTestBoards(t).
		WithFile("a.md", "@john and @john again, plus !W12\n").
		WithFile("b.md", "ping @john\n").
		Build()

	out, err := runCLI(t, "scan", boards.Path)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if !strings.Contains(out, "@john -> ") || !strings.Contains(out, "x3") {
		t.Errorf("expected aggregated @john x3, got:\n%s", out)
	}
	if !strings.Contains(out, "!W12") {
		t.Errorf("expected !W12 listed, got:\n%s", out)
	}
	if !strings.Contains(out, "2 file(s) affected") {
		t.Errorf("expected affected summary, got:\n%s", out)
	}

	// Scan never writes.
	boards.AssertFileContains("a.md", "@john and @john again")
}

func TestScanCommandCleanBoards(t *testing.T) {
	boards := testutil.NewTestBoards(t).
		WithFile("a.md", "All #done by @2025-03-27\n").
		Build()

	out, err := runCLI(t, "scan", boards.Path)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !strings.Contains(out, "No old-convention tokens found.") {
		t.Errorf("expected clean message, got:\n%s", out)
	}
}

func TestAggregateUsages(t *testing.T) {
	report := &migrate.Report{
		Files: []migrate.FileResult{
			{Changes: []rewrite.LineChange{
				{Line: 1, Old: "@john", New: "#john"},
				{Line: 2, Old: "!W12", New: "@W12"},
				{Line: 3, Old: "@john", New: "#john"},
			}},
			{Changes: []rewrite.LineChange{
				{Line: 1, Old: "!W12", New: "@W12"},
				{Line: 1, Old: "@anna", New: "#anna"},
				{Line: 2, Old: "@john", New: "#john"},
			}},
		},
	}

	usages := aggregateUsages(report)
	if len(usages) != 3 {
		t.Fatalf("expected 3 distinct tokens, got %d: %v", len(usages), usages)
	}
	if usages[0].Old != "@john" || usages[0].Count != 3 {
		t.Errorf("usages[0] = %+v, want @john x3", usages[0])
	}
	if usages[1].Old != "!W12" || usages[1].Count != 2 {
		t.Errorf("usages[1] = %+v, want !W12 x2", usages[1])
	}
	if usages[2].Old != "@anna" || usages[2].Count != 1 {
		t.Errorf("usages[2] = %+v, want @anna x1", usages[2])
	}
}

package core

import (
	"strings"
	"testing"
	"time"

	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
)

func kinds(blocks []models.Block) []models.BlockKind {
	out := make([]models.BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func assertKinds(t *testing.T, blocks []models.Block, want []models.BlockKind) {
	t.Helper()
	got := kinds(blocks)
	if len(got) != len(want) {
		t.Fatalf("got %d blocks (%v), want %d (%v)", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("block %d kind = %s, want %s (sequence %v)", i, got[i], want[i], got)
		}
	}
}

func TestCompileDocumentGeneralDiscussion(t *testing.T) {
	analysis := models.Analysis{
		Title:   "T",
		Summary: "s",
		Topics:  []string{"x"},
		Sections: map[string][]string{
			"main_points": {"a", "b"},
		},
	}

	blocks := CompileDocument("general_discussion", analysis)

	assertKinds(t, blocks, []models.BlockKind{
		models.BlockCallout, models.BlockParagraph, // summary
		models.BlockCallout, models.BlockParagraph, // topics
		models.BlockHeading, models.BlockBullet, models.BlockBullet, models.BlockParagraph,
	})

	if blocks[0].Text != "s" {
		t.Errorf("summary callout text = %q", blocks[0].Text)
	}
	if blocks[2].Text != "Topics: x" {
		t.Errorf("topics callout text = %q", blocks[2].Text)
	}
	if blocks[5].Text != "a" || blocks[6].Text != "b" {
		t.Errorf("bullet texts = %q, %q", blocks[5].Text, blocks[6].Text)
	}
}

func TestCompileDocumentOmitsEmptySummaryAndTopics(t *testing.T) {
	analysis := models.Analysis{
		Title:    "T",
		Sections: map[string][]string{"main_points": {"a"}},
	}

	blocks := CompileDocument("general_discussion", analysis)

	assertKinds(t, blocks, []models.BlockKind{
		models.BlockHeading, models.BlockBullet, models.BlockParagraph,
	})
}

func TestCompileDocumentSkipsEmptySections(t *testing.T) {
	analysis := models.Analysis{
		Sections: map[string][]string{
			"key_insights":   {"i1"},
			"decisions_made": {},
			// action_items absent entirely.
		},
	}

	blocks := CompileDocument("project_problem_solving", analysis)

	headings := 0
	for _, b := range blocks {
		if b.Kind == models.BlockHeading {
			headings++
		}
	}
	if headings != 1 {
		t.Errorf("expected 1 heading for the single non-empty section, got %d", headings)
	}
}

func TestCompileDocumentActionItemsAreTodos(t *testing.T) {
	analysis := models.Analysis{
		Sections: map[string][]string{
			"action_items": {"do this", "do that"},
		},
	}

	blocks := CompileDocument("project_problem_solving", analysis)

	var todos []models.Block
	for _, b := range blocks {
		if b.Kind == models.BlockTodo {
			todos = append(todos, b)
		}
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todo blocks, got %d", len(todos))
	}
	for _, todo := range todos {
		if todo.Checked {
			t.Errorf("todo %q created checked", todo.Text)
		}
	}
}

func TestCompileDocumentUnknownArchetypeUsesGeneralLayout(t *testing.T) {
	analysis := models.Analysis{
		Sections: map[string][]string{
			"main_points":  {"p"},
			"key_insights": {"ignored for this layout"},
		},
	}

	blocks := CompileDocument("unheard_of", analysis)

	assertKinds(t, blocks, []models.BlockKind{
		models.BlockHeading, models.BlockBullet, models.BlockParagraph,
	})
}

func TestCompileUpdate(t *testing.T) {
	now := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)
	analysis := models.Analysis{
		Sections: map[string][]string{"core_ideas": {"idea"}},
	}

	blocks := CompileUpdate("idea_brainstorming", analysis, 2, now)

	assertKinds(t, blocks, []models.BlockKind{
		models.BlockDivider, models.BlockParagraph,
		models.BlockHeading, models.BlockParagraph,
		models.BlockHeading, models.BlockBullet, models.BlockParagraph,
	})

	if blocks[2].Text != "Update - March 7, 2026" {
		t.Errorf("update heading = %q", blocks[2].Text)
	}
}

func TestCompileUpdateSessionNumberDoesNotAlterOutput(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	analysis := models.Analysis{Sections: map[string][]string{"main_points": {"a"}}}

	a := CompileUpdate("general_discussion", analysis, 2, now)
	b := CompileUpdate("general_discussion", analysis, 7, now)

	if len(a) != len(b) {
		t.Fatalf("session number changed block count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("block %d differs across session numbers", i)
		}
	}
}

func TestSectionCounts(t *testing.T) {
	analysis := models.Analysis{
		Sections: map[string][]string{
			"key_insights": {"a", "b"},
			"action_items": {"c"},
		},
	}

	counts := SectionCounts("project_problem_solving", analysis)
	if len(counts) != 3 {
		t.Fatalf("expected 3 section counts, got %d", len(counts))
	}

	want := []SectionCount{
		{Label: "Key Insights", Count: 2},
		{Label: "Decisions Made", Count: 0},
		{Label: "Action Items", Count: 1},
	}
	for i, w := range want {
		if counts[i] != w {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], w)
		}
	}
}

func TestCompileDocumentTopicsJoined(t *testing.T) {
	analysis := models.Analysis{
		Topics:   []string{"go", "notion", "mcp"},
		Sections: map[string][]string{"main_points": {"a"}},
	}

	blocks := CompileDocument("general_discussion", analysis)

	if !strings.HasPrefix(blocks[0].Text, "Topics: ") || blocks[0].Text != "Topics: go, notion, mcp" {
		t.Errorf("topics callout = %q", blocks[0].Text)
	}
}

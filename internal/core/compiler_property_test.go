package core

import (
	"fmt"
	"testing"

	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
	"pgregory.net/rapid"
)

// genAnalysis generates a random analysis conforming to the given archetype's
// schema: each declared section gets 0..5 items.
func genAnalysis(t *rapid.T, spec ArchetypeSpec) models.Analysis {
	analysis := models.Analysis{
		Title:    rapid.StringMatching(`[A-Za-z ]{1,40}`).Draw(t, "title"),
		Summary:  rapid.OneOf(rapid.Just(""), rapid.StringMatching(`[A-Za-z ,.]{5,60}`)).Draw(t, "summary"),
		Sections: make(map[string][]string),
	}

	numTopics := rapid.IntRange(0, 5).Draw(t, "numTopics")
	for i := 0; i < numTopics; i++ {
		analysis.Topics = append(analysis.Topics, rapid.StringMatching(`[a-z]{2,12}`).Draw(t, fmt.Sprintf("topic_%d", i)))
	}

	for _, section := range spec.Sections {
		numItems := rapid.IntRange(0, 5).Draw(t, section.Key+"_numItems")
		items := make([]string, numItems)
		for i := range items {
			items[i] = rapid.StringMatching(`[A-Za-z ]{1,30}`).Draw(t, fmt.Sprintf("%s_item_%d", section.Key, i))
		}
		analysis.Sections[section.Key] = items
	}

	return analysis
}

func drawArchetype(t *rapid.T) ArchetypeSpec {
	specs := Archetypes()
	return specs[rapid.IntRange(0, len(specs)-1).Draw(t, "archetype")]
}

// For any archetype and conforming analysis, the compiled document has one
// heading per non-empty section, and the todo count equals the length of the
// action-items list (zero for archetypes without one).
func TestPropertyHeadingAndTodoCounts(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		spec := drawArchetype(rt)
		analysis := genAnalysis(rt, spec)

		blocks := CompileDocument(string(spec.Name), analysis)

		nonEmpty := 0
		wantTodos := 0
		for _, section := range spec.Sections {
			if len(analysis.Sections[section.Key]) > 0 {
				nonEmpty++
			}
			if section.Todo {
				wantTodos = len(analysis.Sections[section.Key])
			}
		}

		headings, todos := 0, 0
		for _, b := range blocks {
			switch b.Kind {
			case models.BlockHeading:
				headings++
			case models.BlockTodo:
				todos++
			}
		}

		if headings != nonEmpty {
			rt.Fatalf("heading count %d != non-empty section count %d", headings, nonEmpty)
		}
		if todos != wantTodos {
			rt.Fatalf("todo count %d != action items length %d", todos, wantTodos)
		}
	})
}

// A heading is never followed by only a blank paragraph: every rendered
// section carries at least one item.
func TestPropertyNoEmptySectionsRendered(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		spec := drawArchetype(rt)
		analysis := genAnalysis(rt, spec)

		blocks := CompileDocument(string(spec.Name), analysis)

		for i, b := range blocks {
			if b.Kind != models.BlockHeading {
				continue
			}
			if i+1 >= len(blocks) {
				rt.Fatalf("heading %q is the final block", b.Text)
			}
			next := blocks[i+1]
			if next.Kind != models.BlockBullet && next.Kind != models.BlockTodo {
				rt.Fatalf("heading %q followed by %s, want an item", b.Text, next.Kind)
			}
		}
	})
}

// When topics are present they appear as a callout before any section
// heading, regardless of whether a summary precedes them.
func TestPropertyTopicsCalloutPrecedesSections(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		spec := drawArchetype(rt)
		analysis := genAnalysis(rt, spec)
		if len(analysis.Topics) == 0 {
			analysis.Topics = []string{"pinned"}
		}

		blocks := CompileDocument(string(spec.Name), analysis)

		topicsAt, firstHeadingAt := -1, -1
		for i, b := range blocks {
			if b.Kind == models.BlockCallout && topicsAt == -1 && b.Icon == topicsIcon {
				topicsAt = i
			}
			if b.Kind == models.BlockHeading && firstHeadingAt == -1 {
				firstHeadingAt = i
			}
		}

		if topicsAt == -1 {
			rt.Fatal("topics callout missing")
		}
		if firstHeadingAt != -1 && topicsAt > firstHeadingAt {
			rt.Fatalf("topics callout at %d after first heading at %d", topicsAt, firstHeadingAt)
		}
	})
}

// Compilation is deterministic: the same inputs always produce the same
// block sequence.
func TestPropertyCompileDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		spec := drawArchetype(rt)
		analysis := genAnalysis(rt, spec)

		a := CompileDocument(string(spec.Name), analysis)
		b := CompileDocument(string(spec.Name), analysis)

		if len(a) != len(b) {
			rt.Fatalf("block counts differ: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				rt.Fatalf("block %d differs between identical compilations", i)
			}
		}
	})
}

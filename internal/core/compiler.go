package core

import (
	"strings"
	"time"

	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
)

// Callout icons for the document preamble.
const (
	summaryIcon = "📝"
	topicsIcon  = "🏷️"
)

// updateDateLayout formats the date in session-update headings.
const updateDateLayout = "January 2, 2006"

// CompileDocument converts an analysis into the ordered block sequence for a
// new note: summary callout, topics callout, then one heading-plus-items run
// per non-empty section of the archetype. Compilation is a pure function of
// its inputs. An archetype name missing from the registry compiles with the
// general_discussion layout so that a validated record always renders.
func CompileDocument(archetype string, analysis models.Analysis) []models.Block {
	spec := CoerceArchetype(archetype)

	var blocks []models.Block

	if analysis.Summary != "" {
		blocks = append(blocks,
			models.Callout(analysis.Summary, summaryIcon),
			models.Paragraph(""),
		)
	}

	if len(analysis.Topics) > 0 {
		blocks = append(blocks,
			models.Callout("Topics: "+strings.Join(analysis.Topics, ", "), topicsIcon),
			models.Paragraph(""),
		)
	}

	return append(blocks, compileSections(spec, analysis)...)
}

// CompileUpdate builds the block sequence appended to an existing note for a
// follow-up session: divider, dated update heading, then the archetype's
// section blocks. now supplies the heading date, truncated to day precision by
// the layout. sessionNumber is reserved for future session numbering in the
// heading and does not currently alter output.
func CompileUpdate(archetype string, analysis models.Analysis, sessionNumber int, now time.Time) []models.Block {
	_ = sessionNumber

	spec := CoerceArchetype(archetype)

	blocks := []models.Block{
		models.Divider(),
		models.Paragraph(""),
		models.Heading(2, "Update - "+now.Format(updateDateLayout)),
		models.Paragraph(""),
	}

	return append(blocks, compileSections(spec, analysis)...)
}

// compileSections emits heading + items + blank separator for each non-empty
// section, in the archetype's declared order. Empty sections emit nothing.
func compileSections(spec ArchetypeSpec, analysis models.Analysis) []models.Block {
	var blocks []models.Block

	for _, section := range spec.Sections {
		items := analysis.Section(section.Key)
		if len(items) == 0 {
			continue
		}

		blocks = append(blocks, models.Heading(2, section.Title))
		for _, item := range items {
			if section.Todo {
				blocks = append(blocks, models.TodoItem(item, false))
			} else {
				blocks = append(blocks, models.BulletItem(item))
			}
		}
		blocks = append(blocks, models.Paragraph(""))
	}

	return blocks
}

// SectionCount is the item count of one archetype section, used for the
// created-note report.
type SectionCount struct {
	// Label is the section title with its emoji decoration stripped.
	Label string
	Count int
}

// SectionCounts returns per-section item counts in the archetype's declared
// order, including empty sections.
func SectionCounts(archetype string, analysis models.Analysis) []SectionCount {
	spec := CoerceArchetype(archetype)

	counts := make([]SectionCount, len(spec.Sections))
	for i, section := range spec.Sections {
		counts[i] = SectionCount{
			Label: stripIcon(section.Title),
			Count: len(analysis.Section(section.Key)),
		}
	}
	return counts
}

// stripIcon drops the leading emoji and space from a decorated section title.
func stripIcon(title string) string {
	if i := strings.IndexByte(title, ' '); i >= 0 {
		return title[i+1:]
	}
	return title
}

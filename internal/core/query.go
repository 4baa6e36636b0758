package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/akshayb7/notion-knowledge-distiller-mcp/internal/notion"
	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
)

// MaxSearchLimit caps the number of results a search can return.
const MaxSearchLimit = 20

// defaultSearchLimit applies when the caller leaves the limit unset.
const defaultSearchLimit = 10

// Library reads notes back from the structured database: keyword search over
// stored entries and full content reconstruction.
type Library struct {
	api        notion.API
	databaseID string
}

// NewLibrary creates a Library over the configured notes database.
func NewLibrary(cfg models.Config, api notion.API) *Library {
	return &Library{api: api, databaseID: cfg.DatabaseID}
}

// Search queries the notes database sorted by Date descending, optionally
// filtered to one archetype, then keyword-filters the returned page of
// results against each entry's title or topics (case-insensitive substring).
// The keyword filter runs only on the page the query returned, so matches on
// deeper result pages are not found; the remote store has no full-text
// search, and this limitation is deliberate.
func (l *Library) Search(ctx context.Context, query, archetypeFilter string, limit int) ([]models.SearchResult, error) {
	if l.databaseID == "" {
		return nil, &ConfigurationError{
			Missing:     "Notion database ID",
			Remediation: "Set NOTION_DATABASE_ID to the notes database ID to enable search.",
		}
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	q := notion.Query{
		Sorts:    []notion.Sort{{Property: "Date", Direction: "descending"}},
		PageSize: limit,
	}

	if archetypeFilter != "" {
		spec, ok := ArchetypeSpecFor(archetypeFilter)
		if !ok {
			return nil, &ValidationError{
				Field:  "conversation_type",
				Reason: fmt.Sprintf("unknown conversation type %q, must be one of: %s", archetypeFilter, ValidArchetypeNames()),
			}
		}
		q.Filter = &notion.SelectFilter{Property: "Type", Equals: spec.DisplayName()}
	}

	entries, err := l.api.QueryDatabase(ctx, l.databaseID, q)
	if err != nil {
		return nil, fmt.Errorf("searching notes: %w", err)
	}

	needle := strings.ToLower(query)
	var results []models.SearchResult
	for _, entry := range entries {
		topics := strings.Join(entry.Topics, ", ")
		if needle != "" &&
			!strings.Contains(strings.ToLower(entry.Title), needle) &&
			!strings.Contains(strings.ToLower(topics), needle) {
			continue
		}
		if topics == "" {
			topics = "None"
		}
		results = append(results, models.SearchResult{
			ID:     entry.ID,
			Title:  entry.Title,
			Type:   entry.Type,
			Date:   entry.Date,
			Topics: topics,
			Status: entry.Status,
			URL:    entry.URL,
		})
	}

	return results, nil
}

// Read fetches a note and renders its full content as display text.
func (l *Library) Read(ctx context.Context, pageID string) (string, error) {
	content, err := l.api.GetPageContent(ctx, pageID)
	if err != nil {
		return "", fmt.Errorf("reading note %s: %w", pageID, err)
	}
	return RenderContent(content.Title, content.Blocks), nil
}

// RenderContent projects an ordered block list into display text: the title
// as a level-1 heading, then one rendering rule per block kind. The
// projection is order-preserving and does not attempt to recover the
// structured sections that produced the blocks.
func RenderContent(title string, blocks []models.Block) string {
	lines := []string{fmt.Sprintf("# %s\n", title)}

	for _, b := range blocks {
		switch b.Kind {
		case models.BlockHeading:
			marker := "##"
			if b.Level == 3 {
				marker = "###"
			}
			lines = append(lines, fmt.Sprintf("\n%s %s\n", marker, b.Text))
		case models.BlockParagraph:
			if b.Text != "" {
				lines = append(lines, b.Text+"\n")
			}
		case models.BlockBullet:
			lines = append(lines, "- "+b.Text)
		case models.BlockTodo:
			checkbox := "[ ]"
			if b.Checked {
				checkbox = "[x]"
			}
			lines = append(lines, checkbox+" "+b.Text)
		case models.BlockCallout:
			lines = append(lines, "> "+b.Text+"\n")
		case models.BlockDivider:
			lines = append(lines, "---\n")
		}
	}

	return strings.Join(lines, "\n")
}

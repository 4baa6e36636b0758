package core

import (
	"context"
	"fmt"

	"github.com/akshayb7/notion-knowledge-distiller-mcp/internal/notion"
	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
)

// defaultConfidence applies when the caller supplies no classification
// confidence for a database-backed note.
const defaultConfidence = "medium"

// Persister writes compiled notes to the configured Notion destination.
// A note is created exactly once; afterwards it changes only via Append
// (which adds blocks and never removes any) or UpdateAttributes. Append is
// not idempotent: calling twice appends twice.
type Persister interface {
	// Create persists a new note and returns its id and URL. The page-backed
	// destination ignores meta.
	Create(ctx context.Context, title string, blocks []models.Block, meta models.NoteMeta) (models.PageRef, error)

	// Append adds blocks to the end of an existing note.
	Append(ctx context.Context, pageID string, blocks []models.Block) error

	// UpdateAttributes patches a note's stored attributes. Only the
	// database-backed destination supports it.
	UpdateAttributes(ctx context.Context, pageID string, attributes map[string]any) error

	// Destination names the backing variant ("database" or "page").
	Destination() string
}

// NewPersister selects the destination once from configuration: the database
// variant when a database id is set (preferred), else the page variant, else
// a ConfigurationError that distinguishes a missing credential from a missing
// destination.
func NewPersister(cfg models.Config, api notion.API) (Persister, error) {
	if !cfg.HasCredential() {
		return nil, &ConfigurationError{
			Missing:     "Notion API key",
			Remediation: "Set NOTION_API_KEY to your Notion integration token.",
		}
	}

	switch {
	case cfg.DatabaseID != "":
		return &databasePersister{api: api, databaseID: cfg.DatabaseID}, nil
	case cfg.ParentPageID != "":
		return &pagePersister{api: api, parentPageID: cfg.ParentPageID}, nil
	default:
		return nil, &ConfigurationError{
			Missing: "Notion destination",
			Remediation: "1. Create a page or database in Notion\n" +
				"2. Share it with your integration\n" +
				"3. Copy its ID from the URL into NOTION_PARENT_PAGE_ID or NOTION_DATABASE_ID",
		}
	}
}

// pagePersister creates freestanding pages under a fixed container page.
type pagePersister struct {
	api          notion.API
	parentPageID string
}

func (p *pagePersister) Create(ctx context.Context, title string, blocks []models.Block, _ models.NoteMeta) (models.PageRef, error) {
	ref, err := p.api.CreatePage(ctx, title, blocks, p.parentPageID)
	if err != nil {
		return models.PageRef{}, fmt.Errorf("persisting page %q: %w", title, err)
	}
	return ref, nil
}

func (p *pagePersister) Append(ctx context.Context, pageID string, blocks []models.Block) error {
	if err := p.api.AppendBlocks(ctx, pageID, blocks); err != nil {
		return fmt.Errorf("appending to page %s: %w", pageID, err)
	}
	return nil
}

func (p *pagePersister) UpdateAttributes(_ context.Context, _ string, _ map[string]any) error {
	return &UnsupportedOperationError{Op: "attribute update", Destination: p.Destination()}
}

func (p *pagePersister) Destination() string { return "page" }

// databasePersister inserts notes into a typed database with queryable
// attributes.
type databasePersister struct {
	api        notion.API
	databaseID string
}

func (p *databasePersister) Create(ctx context.Context, title string, blocks []models.Block, meta models.NoteMeta) (models.PageRef, error) {
	confidence := meta.Confidence
	if confidence == "" {
		confidence = defaultConfidence
	}

	typeName := CoerceArchetype(string(meta.Archetype)).DisplayName()

	ref, err := p.api.CreateDatabaseEntry(ctx, p.databaseID, title, typeName, meta.Topics, confidence, blocks)
	if err != nil {
		return models.PageRef{}, fmt.Errorf("persisting database entry %q: %w", title, err)
	}
	return ref, nil
}

func (p *databasePersister) Append(ctx context.Context, pageID string, blocks []models.Block) error {
	if err := p.api.AppendBlocks(ctx, pageID, blocks); err != nil {
		return fmt.Errorf("appending to entry %s: %w", pageID, err)
	}
	return nil
}

func (p *databasePersister) UpdateAttributes(ctx context.Context, pageID string, attributes map[string]any) error {
	if err := p.api.UpdatePageProperties(ctx, pageID, attributes); err != nil {
		return fmt.Errorf("updating attributes of %s: %w", pageID, err)
	}
	return nil
}

func (p *databasePersister) Destination() string { return "database" }

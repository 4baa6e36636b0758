// Package notion is a thin gateway over the Notion HTTP API: page and
// database-entry creation, database query, content fetch, block append, and
// property update. It translates between the domain block model and the
// Notion wire format and surfaces remote failures as RemoteError. It never
// retries; rate limiting is the caller's responsibility.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
)

const (
	// DefaultBaseURL is the production Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com/v1"

	// apiVersion is the pinned Notion-Version header value.
	apiVersion = "2022-06-28"

	// maxPageSize is the query page size documented by the Notion API.
	// Larger requests are clamped, not rejected.
	maxPageSize = 100

	// defaultPageSize applies when the caller leaves the page size unset.
	defaultPageSize = 10
)

// RemoteError reports a non-success response from the Notion API. The message
// is the body's message field, passed through verbatim.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("notion API error %d: %s", e.StatusCode, e.Message)
}

// Sort orders database query results by a property.
type Sort struct {
	Property  string
	Direction string // "ascending" or "descending"
}

// SelectFilter is an equality filter on a select property.
type SelectFilter struct {
	Property string
	Equals   string
}

// Query holds the parameters of a database query.
type Query struct {
	Filter   *SelectFilter
	Sorts    []Sort
	PageSize int
}

// Entry is one page returned by a database query, with its stored attributes
// decoded from the Notion property format.
type Entry struct {
	ID     string
	URL    string
	Title  string
	Type   string
	Date   string
	Topics []string
	Status string
}

// PageContent is a page's title and ordered block list, composed from the
// page fetch and the children fetch.
type PageContent struct {
	Title  string
	Blocks []models.Block
}

// API is the remote-store surface consumed by the persistence and library
// layers. Implemented by Client; tests substitute fakes.
type API interface {
	CreatePage(ctx context.Context, title string, blocks []models.Block, parentPageID string) (models.PageRef, error)
	CreateDatabaseEntry(ctx context.Context, databaseID, title, typeName string, topics []string, confidence string, blocks []models.Block) (models.PageRef, error)
	QueryDatabase(ctx context.Context, databaseID string, q Query) ([]Entry, error)
	GetPageContent(ctx context.Context, pageID string) (PageContent, error)
	AppendBlocks(ctx context.Context, pageID string, blocks []models.Block) error
	UpdatePageProperties(ctx context.Context, pageID string, properties map[string]any) error
}

// Client implements API over net/http.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	now     func() time.Time
}

// NewClient creates a Notion API client with the given credential. baseURL
// falls back to the production endpoint when empty; timeout bounds each
// outbound request.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// CreatePage creates a freestanding page. An empty parentPageID parents the
// page at the workspace root.
func (c *Client) CreatePage(ctx context.Context, title string, blocks []models.Block, parentPageID string) (models.PageRef, error) {
	parent := map[string]any{"type": "workspace", "workspace": true}
	if parentPageID != "" {
		parent = map[string]any{"type": "page_id", "page_id": parentPageID}
	}

	body := map[string]any{
		"parent": parent,
		"properties": map[string]any{
			"title": titleProperty(title),
		},
		"children": toWireBlocks(blocks),
	}

	var page wirePage
	if err := c.do(ctx, http.MethodPost, "/pages", body, &page); err != nil {
		return models.PageRef{}, fmt.Errorf("creating page: %w", err)
	}

	return models.PageRef{ID: page.ID, URL: page.URL}, nil
}

// CreateDatabaseEntry inserts a page into a database with the standard note
// attributes: Type, Date (creation instant), Topics, Status "New", and
// Confidence.
func (c *Client) CreateDatabaseEntry(ctx context.Context, databaseID, title, typeName string, topics []string, confidence string, blocks []models.Block) (models.PageRef, error) {
	topicOptions := make([]map[string]any, len(topics))
	for i, t := range topics {
		topicOptions[i] = map[string]any{"name": t}
	}

	body := map[string]any{
		"parent": map[string]any{"type": "database_id", "database_id": databaseID},
		"properties": map[string]any{
			"Title":      titleProperty(title),
			"Type":       map[string]any{"select": map[string]any{"name": typeName}},
			"Date":       map[string]any{"date": map[string]any{"start": c.now().Format(time.RFC3339)}},
			"Topics":     map[string]any{"multi_select": topicOptions},
			"Status":     map[string]any{"select": map[string]any{"name": "New"}},
			"Confidence": map[string]any{"select": map[string]any{"name": capitalize(confidence)}},
		},
		"children": toWireBlocks(blocks),
	}

	var page wirePage
	if err := c.do(ctx, http.MethodPost, "/pages", body, &page); err != nil {
		return models.PageRef{}, fmt.Errorf("creating database entry: %w", err)
	}

	return models.PageRef{ID: page.ID, URL: page.URL}, nil
}

// QueryDatabase runs a filtered, sorted query against a database. The page
// size is clamped to the API maximum; callers asking for more silently
// receive the clamped amount.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, q Query) ([]Entry, error) {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	body := map[string]any{"page_size": pageSize}

	if q.Filter != nil {
		body["filter"] = map[string]any{
			"property": q.Filter.Property,
			"select":   map[string]any{"equals": q.Filter.Equals},
		}
	}

	if len(q.Sorts) > 0 {
		sorts := make([]map[string]any, len(q.Sorts))
		for i, s := range q.Sorts {
			sorts[i] = map[string]any{"property": s.Property, "direction": s.Direction}
		}
		body["sorts"] = sorts
	}

	var result struct {
		Results []wirePage `json:"results"`
	}
	if err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", body, &result); err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	entries := make([]Entry, len(result.Results))
	for i, page := range result.Results {
		entries[i] = page.toEntry()
	}
	return entries, nil
}

// GetPageContent fetches a page's properties and its child blocks, composing
// the two calls into one result.
func (c *Client) GetPageContent(ctx context.Context, pageID string) (PageContent, error) {
	var page wirePage
	if err := c.do(ctx, http.MethodGet, "/pages/"+pageID, nil, &page); err != nil {
		return PageContent{}, fmt.Errorf("fetching page: %w", err)
	}

	var children struct {
		Results []wireBlock `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, "/blocks/"+pageID+"/children", nil, &children); err != nil {
		return PageContent{}, fmt.Errorf("fetching page blocks: %w", err)
	}

	return PageContent{
		Title:  page.title(),
		Blocks: fromWireBlocks(children.Results),
	}, nil
}

// AppendBlocks adds blocks to the end of a page's content. Existing content
// is never reordered or removed. Calling twice appends twice.
func (c *Client) AppendBlocks(ctx context.Context, pageID string, blocks []models.Block) error {
	body := map[string]any{"children": toWireBlocks(blocks)}
	if err := c.do(ctx, http.MethodPatch, "/blocks/"+pageID+"/children", body, nil); err != nil {
		return fmt.Errorf("appending to page: %w", err)
	}
	return nil
}

// UpdatePageProperties patches a page's attributes. properties uses the
// Notion property format.
func (c *Client) UpdatePageProperties(ctx context.Context, pageID string, properties map[string]any) error {
	body := map[string]any{"properties": properties}
	if err := c.do(ctx, http.MethodPatch, "/pages/"+pageID, body, nil); err != nil {
		return fmt.Errorf("updating page properties: %w", err)
	}
	return nil
}

// do issues one request and decodes the response into out (if non-nil).
// Non-success statuses become RemoteError with the body's message field.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("calling notion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// remoteError extracts the error message from a non-success response body.
func remoteError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	msg := "Unknown error"
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		msg = payload.Message
	}
	return &RemoteError{StatusCode: resp.StatusCode, Message: msg}
}

func titleProperty(title string) map[string]any {
	return map[string]any{
		"title": []map[string]any{
			{"text": map[string]any{"content": title}},
		},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// Package mcp exposes the knowledge distiller as MCP (Model Context Protocol)
// tools: ping, classify_conversation, create_notion_notes, search_notes, and
// read_note. Handlers validate externally supplied JSON, route it through the
// compiler and persistence layers, and always answer with a result envelope;
// no tool failure propagates as a protocol error.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/akshayb7/notion-knowledge-distiller-mcp/internal/core"
	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the distiller services and exposes them as MCP tools.
type Server struct {
	server     *gomcp.Server
	cfg        models.Config
	persister  core.Persister
	persistErr error
	library    *core.Library
}

// NewServer creates the MCP server. persister may be nil when the destination
// is not configured; persistErr then carries the reason reported to callers.
// Tool availability follows configuration: classify and create require the
// credential, search and read additionally require the database id.
func NewServer(cfg models.Config, persister core.Persister, persistErr error, library *core.Library, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		cfg:        cfg,
		persister:  persister,
		persistErr: persistErr,
		library:    library,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "notion-knowledge-distiller", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type pingInput struct {
	Message string `json:"message" jsonschema:"required,a message to echo back"`
}

type pingOutput struct {
	Message string `json:"message"`
}

type classifyInput struct {
	Classification string `json:"classification" jsonschema:"required,classification of the conversation as JSON with fields: type (one of: project_problem_solving, idea_brainstorming, learning_educational, general_discussion), confidence (high/medium/low), and reasoning (brief explanation)"`
}

type classifyOutput struct {
	Type       string `json:"type"`
	Confidence string `json:"confidence"`
	Message    string `json:"message"`
}

type createInput struct {
	ConversationType string `json:"conversation_type" jsonschema:"required,the conversation type from classify_conversation; must be one of: project_problem_solving, idea_brainstorming, learning_educational, general_discussion"`
	Analysis         string `json:"analysis" jsonschema:"required,structured analysis of the conversation as JSON; fields follow the conversation type (title, summary, topics, plus the type's section arrays)"`
}

type createOutput struct {
	NoteID  string `json:"note_id"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

type searchInput struct {
	Query            string `json:"query" jsonschema:"required,keyword matched against note titles and topics (case-insensitive); empty matches everything"`
	ConversationType string `json:"conversation_type,omitempty" jsonschema:"restrict results to one conversation type"`
	Limit            int    `json:"limit,omitempty" jsonschema:"maximum results to return (default 10, max 20)"`
}

type searchResultOutput struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Date   string `json:"date"`
	Topics string `json:"topics"`
	Status string `json:"status"`
	URL    string `json:"url"`
}

type searchOutput struct {
	Results []searchResultOutput `json:"results"`
	Count   int                  `json:"count"`
	Message string               `json:"message"`
}

type readInput struct {
	NoteID string `json:"note_id" jsonschema:"required,the note id returned by create_notion_notes or search_notes"`
}

type readOutput struct {
	Content string `json:"content"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "ping",
		Description: "Test tool to verify the MCP server is working correctly. Echoes the message and reports configuration status.",
	}, s.handlePing)

	if !s.cfg.HasCredential() {
		return
	}

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name: "classify_conversation",
		Description: "Classify the type of the current conversation. " +
			"Analyzes the conversation and returns the primary type: " +
			"project_problem_solving, idea_brainstorming, learning_educational, or general_discussion. " +
			"This should be called FIRST before creating Notion notes.",
	}, s.handleClassify)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name: "create_notion_notes",
		Description: "Create structured notes in Notion based on the classified conversation type. " +
			"This should be called AFTER classify_conversation. " +
			"Compiles the analysis into a well-organized Notion page.",
	}, s.handleCreate)

	if !s.cfg.CanSearch() {
		return
	}

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "search_notes",
		Description: "Search saved notes by keyword, optionally filtered by conversation type. Matches titles and topics of the most recent notes.",
	}, s.handleSearch)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "read_note",
		Description: "Read the full content of a saved note by its id.",
	}, s.handleRead)
}

// --- Tool handlers ---

func (s *Server) handlePing(_ context.Context, _ *gomcp.CallToolRequest, input pingInput) (*gomcp.CallToolResult, pingOutput, error) {
	message := input.Message
	if message == "" {
		message = "Hello!"
	}

	out := pingOutput{
		Message: fmt.Sprintf("🏓 Pong! You said: %s\n\n"+
			"✅ MCP Server is running!\n"+
			"📝 Notion API Key: %s\n"+
			"📄 Parent Page ID: %s\n"+
			"🗃️ Database ID: %s",
			message,
			configuredMark(s.cfg.HasCredential()),
			configuredMark(s.cfg.ParentPageID != ""),
			configuredMark(s.cfg.DatabaseID != "")),
	}
	return nil, out, nil
}

func (s *Server) handleClassify(_ context.Context, _ *gomcp.CallToolRequest, input classifyInput) (*gomcp.CallToolResult, classifyOutput, error) {
	var classification models.Classification
	if err := json.Unmarshal([]byte(input.Classification), &classification); err != nil {
		return errorResult(fmt.Sprintf("❌ Error: Failed to parse classification JSON.\n\nError: %s", err)), classifyOutput{}, nil
	}

	if classification.Confidence == "" {
		classification.Confidence = "medium"
	}
	if classification.Reasoning == "" {
		classification.Reasoning = "No reasoning provided"
	}

	// Unknown types are coerced here, on the advisory path only. The create
	// path rejects them instead.
	spec := core.CoerceArchetype(classification.Type)

	out := classifyOutput{
		Type:       string(spec.Name),
		Confidence: classification.Confidence,
		Message: fmt.Sprintf("✅ Conversation Classified!\n\n"+
			"📑 **Type**: %s\n"+
			"🎯 **Confidence**: %s\n"+
			"💭 **Reasoning**: %s\n\n"+
			"This conversation will be structured with sections:\n%s\n\n"+
			"Ready to create the Notion note with this structure!",
			spec.DisplayName(),
			classification.Confidence,
			classification.Reasoning,
			strings.Join(spec.SectionKeys(), ", ")),
	}
	return nil, out, nil
}

func (s *Server) handleCreate(ctx context.Context, _ *gomcp.CallToolRequest, input createInput) (*gomcp.CallToolResult, createOutput, error) {
	if s.persister == nil {
		return errorResult(configurationMessage(s.persistErr)), createOutput{}, nil
	}

	if !core.IsValidArchetype(input.ConversationType) {
		return errorResult(fmt.Sprintf("❌ Error: Invalid conversation type %q. Must be one of: %s",
			input.ConversationType, core.ValidArchetypeNames())), createOutput{}, nil
	}

	var analysis models.Analysis
	if err := json.Unmarshal([]byte(input.Analysis), &analysis); err != nil {
		return errorResult(fmt.Sprintf("❌ Error: Failed to parse analysis JSON. Please ensure the analysis is valid JSON.\n\nError: %s", err)), createOutput{}, nil
	}

	if len(analysis.Title) > models.MaxTitleLength {
		return errorResult(fmt.Sprintf("❌ Error: Title exceeds %d characters.", models.MaxTitleLength)), createOutput{}, nil
	}

	title := analysis.Title
	if title == "" {
		title = "Conversation Notes"
	}

	spec := core.CoerceArchetype(input.ConversationType)
	blocks := core.CompileDocument(input.ConversationType, analysis)

	ref, err := s.persister.Create(ctx, title, blocks, models.NoteMeta{
		Archetype: spec.Name,
		Topics:    analysis.Topics,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("❌ Error creating Notion note: %s", err)), createOutput{}, nil
	}

	var sections strings.Builder
	for _, sc := range core.SectionCounts(input.ConversationType, analysis) {
		fmt.Fprintf(&sections, "- %d %s\n", sc.Count, strings.ToLower(sc.Label))
	}

	out := createOutput{
		NoteID: ref.ID,
		URL:    ref.URL,
		Message: fmt.Sprintf("✅ Successfully created Notion note!\n\n"+
			"📄 **Title**: %s\n"+
			"📑 **Type**: %s\n"+
			"🔗 **URL**: %s\n"+
			"🆔 **Note ID**: %s\n\n"+
			"The note includes:\n%s",
			title, spec.DisplayName(), ref.URL, ref.ID,
			strings.TrimRight(sections.String(), "\n")),
	}
	return nil, out, nil
}

func (s *Server) handleSearch(ctx context.Context, _ *gomcp.CallToolRequest, input searchInput) (*gomcp.CallToolResult, searchOutput, error) {
	results, err := s.library.Search(ctx, input.Query, input.ConversationType, input.Limit)
	if err != nil {
		return errorResult(fmt.Sprintf("❌ Error searching notes: %s", err)), searchOutput{}, nil
	}

	if len(results) == 0 {
		return nil, searchOutput{
			Message: fmt.Sprintf("🔍 No notes found matching %q.", input.Query),
		}, nil
	}

	out := searchOutput{
		Results: make([]searchResultOutput, len(results)),
		Count:   len(results),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Found %d note(s):\n", len(results))
	for i, r := range results {
		out.Results[i] = searchResultOutput(r)
		fmt.Fprintf(&b, "\n%d. **%s**\n   📑 %s | 📅 %s | 🏷️ %s | %s\n   🔗 %s\n   🆔 %s\n",
			i+1, r.Title, r.Type, r.Date, r.Topics, r.Status, r.URL, r.ID)
	}
	out.Message = strings.TrimRight(b.String(), "\n")

	return nil, out, nil
}

func (s *Server) handleRead(ctx context.Context, _ *gomcp.CallToolRequest, input readInput) (*gomcp.CallToolResult, readOutput, error) {
	if input.NoteID == "" {
		return errorResult("❌ Error: note_id is required"), readOutput{}, nil
	}

	content, err := s.library.Read(ctx, input.NoteID)
	if err != nil {
		return errorResult(fmt.Sprintf("❌ Error reading note: %s", err)), readOutput{}, nil
	}

	return nil, readOutput{Content: content}, nil
}

// --- Helpers ---

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func configuredMark(ok bool) string {
	if ok {
		return "✓ Configured"
	}
	return "✗ Missing"
}

// configurationMessage turns the persister construction error into an
// actionable report for the caller.
func configurationMessage(err error) string {
	var cfgErr *core.ConfigurationError
	if errors.As(err, &cfgErr) {
		return fmt.Sprintf("❌ Error: %s. Please:\n%s", cfgErr.Error(), cfgErr.Remediation)
	}
	if err != nil {
		return fmt.Sprintf("❌ Error: %s", err)
	}
	return "❌ Error: Notion destination not configured."
}

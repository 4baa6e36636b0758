package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akshayb7/notion-knowledge-distiller-mcp/internal/notion"
	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
)

func libraryOver(api notion.API) *Library {
	return NewLibrary(models.Config{APIKey: "secret", DatabaseID: "db"}, api)
}

func TestSearchRequiresDatabase(t *testing.T) {
	lib := NewLibrary(models.Config{APIKey: "secret"}, &fakeAPI{})

	_, err := lib.Search(context.Background(), "", "", 0)

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestSearchLimitClamping(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"unset", 0, 10},
		{"negative", -3, 10},
		{"within", 5, 5},
		{"above cap", 50, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAPI{}
			if _, err := libraryOver(api).Search(context.Background(), "", "", tc.limit); err != nil {
				t.Fatal(err)
			}
			if api.lastQuery.PageSize != tc.want {
				t.Errorf("page size = %d, want %d", api.lastQuery.PageSize, tc.want)
			}
		})
	}
}

func TestSearchSortsByDateDescending(t *testing.T) {
	api := &fakeAPI{}
	if _, err := libraryOver(api).Search(context.Background(), "", "", 0); err != nil {
		t.Fatal(err)
	}

	if len(api.lastQuery.Sorts) != 1 {
		t.Fatalf("sorts = %v", api.lastQuery.Sorts)
	}
	sort := api.lastQuery.Sorts[0]
	if sort.Property != "Date" || sort.Direction != "descending" {
		t.Errorf("sort = %+v", sort)
	}
}

func TestSearchTypeFilterUsesDisplayName(t *testing.T) {
	api := &fakeAPI{}
	if _, err := libraryOver(api).Search(context.Background(), "", "learning_educational", 0); err != nil {
		t.Fatal(err)
	}

	if api.lastQuery.Filter == nil {
		t.Fatal("expected a type filter")
	}
	if api.lastQuery.Filter.Property != "Type" || api.lastQuery.Filter.Equals != "Learning Educational" {
		t.Errorf("filter = %+v", api.lastQuery.Filter)
	}
}

func TestSearchRejectsUnknownTypeFilter(t *testing.T) {
	_, err := libraryOver(&fakeAPI{}).Search(context.Background(), "", "standup", 0)

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(valErr.Reason, "general_discussion") {
		t.Errorf("reason should list valid types, got %q", valErr.Reason)
	}
}

func TestSearchKeywordFiltersTitleAndTopics(t *testing.T) {
	api := &fakeAPI{entries: []notion.Entry{
		{ID: "1", Title: "Goroutine leaks", Topics: []string{"concurrency"}},
		{ID: "2", Title: "Meal planning", Topics: []string{"cooking", "GOLANG"}},
		{ID: "3", Title: "Book club", Topics: []string{"fiction"}},
	}}

	results, err := libraryOver(api).Search(context.Background(), "go", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].ID != "1" || results[1].ID != "2" {
		t.Errorf("ids = %s, %s", results[0].ID, results[1].ID)
	}
}

func TestSearchEmptyQueryPassesEverything(t *testing.T) {
	api := &fakeAPI{entries: []notion.Entry{
		{ID: "1", Title: "a"},
		{ID: "2", Title: "b"},
	}}

	results, err := libraryOver(api).Search(context.Background(), "", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("results = %d, want 2", len(results))
	}
}

func TestSearchJoinsTopicsWithNoneFallback(t *testing.T) {
	api := &fakeAPI{entries: []notion.Entry{
		{ID: "1", Title: "tagged", Topics: []string{"go", "mcp"}},
		{ID: "2", Title: "untagged"},
	}}

	results, err := libraryOver(api).Search(context.Background(), "", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Topics != "go, mcp" {
		t.Errorf("topics = %q", results[0].Topics)
	}
	if results[1].Topics != "None" {
		t.Errorf("topics = %q, want None", results[1].Topics)
	}
}

func TestReadRendersPageContent(t *testing.T) {
	api := &fakeAPI{content: notion.PageContent{
		Title: "Retro",
		Blocks: []models.Block{
			models.Callout("summary", "📝"),
			models.Heading(2, "💡 Key Insights"),
			models.BulletItem("first"),
			models.TodoItem("ship it", true),
			models.TodoItem("write docs", false),
			models.Divider(),
		},
	}}

	got, err := libraryOver(api).Read(context.Background(), "page-1")
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"# Retro\n",
		"> summary\n",
		"\n## 💡 Key Insights\n",
		"- first",
		"[x] ship it",
		"[ ] write docs",
		"---\n",
	}, "\n")
	if got != want {
		t.Errorf("rendered content:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderContentOmitsEmptyParagraphs(t *testing.T) {
	got := RenderContent("T", []models.Block{
		models.Paragraph(""),
		models.Paragraph("kept"),
		models.Paragraph(""),
	})

	want := "# T\n\nkept\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderContentHeadingLevels(t *testing.T) {
	got := RenderContent("T", []models.Block{
		models.Heading(2, "two"),
		models.Heading(3, "three"),
	})

	if !strings.Contains(got, "\n## two\n") {
		t.Errorf("missing level-2 heading in %q", got)
	}
	if !strings.Contains(got, "\n### three\n") {
		t.Errorf("missing level-3 heading in %q", got)
	}
}

func TestRenderContentRoundTripsCompiledDocument(t *testing.T) {
	analysis := models.Analysis{
		Summary: "s",
		Topics:  []string{"x"},
		Sections: map[string][]string{
			"key_insights": {"a"},
			"action_items": {"do"},
		},
	}
	blocks := CompileDocument("project_problem_solving", analysis)

	got := RenderContent("Note", blocks)

	for _, fragment := range []string{
		"# Note\n",
		"> s\n",
		"> Topics: x\n",
		"\n## 💡 Key Insights\n",
		"- a",
		"\n## 📋 Action Items\n",
		"[ ] do",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("rendered document missing %q:\n%s", fragment, got)
		}
	}
}

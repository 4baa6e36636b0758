// Package core contains the business logic of the knowledge distiller:
// the conversation archetype registry, the block compiler, the persistence
// layer, and the search/read library service.
package core

import (
	"strings"

	"github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"
)

// SectionSpec describes one named content section of an archetype.
type SectionSpec struct {
	// Key is the analysis field holding this section's items.
	Key string

	// Title is the decorated heading rendered above the items.
	Title string

	// Todo marks the section whose items render as unchecked checkboxes
	// instead of bullets.
	Todo bool
}

// ArchetypeSpec defines the layout and metadata of one conversation archetype.
type ArchetypeSpec struct {
	Name        models.Archetype
	Description string
	Sections    []SectionSpec
}

// DisplayName returns the human label for the archetype (word-split,
// title-cased, e.g. "Project Problem Solving").
func (s ArchetypeSpec) DisplayName() string {
	words := strings.Split(string(s.Name), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// SectionKeys returns the ordered section field names.
func (s ArchetypeSpec) SectionKeys() []string {
	keys := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		keys[i] = sec.Key
	}
	return keys
}

// archetypeSpecs is the closed registry of conversation archetypes, in
// classification-prompt order. Section layout decisions (titles, which section
// is the checkbox one) live only here.
var archetypeSpecs = []ArchetypeSpec{
	{
		Name:        models.ArchetypeProjectProblemSolving,
		Description: "Technical problem solving, debugging, building projects, implementation discussions",
		Sections: []SectionSpec{
			{Key: "key_insights", Title: "💡 Key Insights"},
			{Key: "decisions_made", Title: "✅ Decisions Made"},
			{Key: "action_items", Title: "📋 Action Items", Todo: true},
		},
	},
	{
		Name:        models.ArchetypeIdeaBrainstorming,
		Description: "Exploring ideas, creative discussions, conceptual thinking, what-if scenarios",
		Sections: []SectionSpec{
			{Key: "core_ideas", Title: "💭 Core Ideas"},
			{Key: "interesting_points", Title: "✨ Interesting Points"},
			{Key: "follow_up_questions", Title: "🤔 Follow-up Questions"},
		},
	},
	{
		Name:        models.ArchetypeLearningEducational,
		Description: "Learning new concepts, explanations, tutorials, deep dives into topics",
		Sections: []SectionSpec{
			{Key: "key_concepts", Title: "📚 Key Concepts"},
			{Key: "examples", Title: "💡 Examples"},
			{Key: "takeaways", Title: "🎯 Key Takeaways"},
		},
	},
	{
		Name:        models.ArchetypeGeneralDiscussion,
		Description: "General Q&A, casual chat, mixed topics, simple queries",
		Sections: []SectionSpec{
			{Key: "main_points", Title: "📌 Main Points"},
		},
	},
}

// Archetypes returns all registered archetype specs in declaration order.
func Archetypes() []ArchetypeSpec {
	return archetypeSpecs
}

// ArchetypeSpecFor looks up the spec for the given archetype name.
func ArchetypeSpecFor(name string) (ArchetypeSpec, bool) {
	for _, spec := range archetypeSpecs {
		if string(spec.Name) == name {
			return spec, true
		}
	}
	return ArchetypeSpec{}, false
}

// IsValidArchetype reports whether name is a registered archetype. The create
// path rejects unknown names; only the advisory classify path coerces them.
func IsValidArchetype(name string) bool {
	_, ok := ArchetypeSpecFor(name)
	return ok
}

// CoerceArchetype maps an unrecognized archetype name to general_discussion.
// Used on the permissive classification-display path.
func CoerceArchetype(name string) ArchetypeSpec {
	if spec, ok := ArchetypeSpecFor(name); ok {
		return spec
	}
	spec, _ := ArchetypeSpecFor(string(models.ArchetypeGeneralDiscussion))
	return spec
}

// ValidArchetypeNames returns the registered archetype names joined for use in
// validation error messages.
func ValidArchetypeNames() string {
	names := make([]string, len(archetypeSpecs))
	for i, spec := range archetypeSpecs {
		names[i] = string(spec.Name)
	}
	return strings.Join(names, ", ")
}

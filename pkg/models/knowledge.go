package models

import "encoding/json"

// Archetype identifies one of the fixed conversation categories that drive
// document layout.
type Archetype string

const (
	ArchetypeProjectProblemSolving Archetype = "project_problem_solving"
	ArchetypeIdeaBrainstorming     Archetype = "idea_brainstorming"
	ArchetypeLearningEducational   Archetype = "learning_educational"
	ArchetypeGeneralDiscussion     Archetype = "general_discussion"
)

// MaxTitleLength is the maximum accepted analysis title length.
const MaxTitleLength = 100

// Analysis is the structured analysis of a conversation supplied by the
// invoking agent. Section lists are keyed by the section names declared by the
// conversation's archetype; missing keys read as empty lists.
type Analysis struct {
	Title    string
	Summary  string
	Topics   []string
	Sections map[string][]string
}

// Section returns the list for the given section key, or nil if absent.
func (a Analysis) Section(key string) []string {
	if a.Sections == nil {
		return nil
	}
	return a.Sections[key]
}

// UnmarshalJSON decodes an analysis object, routing the well-known keys into
// their fields and every other array-of-strings key into Sections. Non-string
// array elements and non-array extra keys are ignored rather than rejected so
// the record stays archetype-agnostic at this layer.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, val := range raw {
		switch key {
		case "title":
			if err := json.Unmarshal(val, &a.Title); err != nil {
				return err
			}
		case "summary":
			if err := json.Unmarshal(val, &a.Summary); err != nil {
				return err
			}
		case "topics":
			if err := json.Unmarshal(val, &a.Topics); err != nil {
				return err
			}
		default:
			var items []string
			if err := json.Unmarshal(val, &items); err != nil {
				continue
			}
			if a.Sections == nil {
				a.Sections = make(map[string][]string)
			}
			a.Sections[key] = items
		}
	}

	return nil
}

// Classification is the advisory conversation classification produced by the
// invoking agent for the classify tool.
type Classification struct {
	Type       string `json:"type"`
	Confidence string `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

// PageRef identifies a created Notion page.
type PageRef struct {
	ID  string
	URL string
}

// NoteMeta carries the queryable attributes stored alongside a database-backed
// note. The page-backed destination ignores it.
type NoteMeta struct {
	Archetype  Archetype
	Topics     []string
	Confidence string
}

// SearchResult is a read-only projection of a stored note, recomputed on
// every query and never persisted.
type SearchResult struct {
	ID     string
	Title  string
	Type   string
	Date   string
	Topics string
	Status string
	URL    string
}

package notion

import "github.com/akshayb7/notion-knowledge-distiller-mcp/pkg/models"

// Wire representation of Notion blocks and page properties. Exactly one of
// the per-type payload fields is set on a block, matching the block's type
// discriminator.

type wireText struct {
	Content string `json:"content"`
}

type wireRichText struct {
	Type      string    `json:"type,omitempty"`
	Text      *wireText `json:"text,omitempty"`
	PlainText string    `json:"plain_text,omitempty"`
}

type wireTextBlock struct {
	RichText []wireRichText `json:"rich_text"`
}

type wireTodoBlock struct {
	RichText []wireRichText `json:"rich_text"`
	Checked  bool           `json:"checked"`
}

type wireIcon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji"`
}

type wireCalloutBlock struct {
	RichText []wireRichText `json:"rich_text"`
	Icon     *wireIcon      `json:"icon,omitempty"`
}

type wireBlock struct {
	Object    string            `json:"object,omitempty"`
	Type      string            `json:"type"`
	Heading2  *wireTextBlock    `json:"heading_2,omitempty"`
	Heading3  *wireTextBlock    `json:"heading_3,omitempty"`
	Paragraph *wireTextBlock    `json:"paragraph,omitempty"`
	Bulleted  *wireTextBlock    `json:"bulleted_list_item,omitempty"`
	ToDo      *wireTodoBlock    `json:"to_do,omitempty"`
	Callout   *wireCalloutBlock `json:"callout,omitempty"`
	Divider   *struct{}         `json:"divider,omitempty"`
}

type wireSelect struct {
	Name string `json:"name"`
}

type wireDate struct {
	Start string `json:"start"`
}

type wireProperty struct {
	Title       []wireRichText `json:"title,omitempty"`
	Select      *wireSelect    `json:"select,omitempty"`
	MultiSelect []wireSelect   `json:"multi_select,omitempty"`
	Date        *wireDate      `json:"date,omitempty"`
}

type wirePage struct {
	ID         string                  `json:"id"`
	URL        string                  `json:"url"`
	Properties map[string]wireProperty `json:"properties"`
}

// title extracts the page title from either the database "Title" property or
// the freestanding-page "title" property.
func (p wirePage) title() string {
	for _, key := range []string{"Title", "title"} {
		if prop, ok := p.Properties[key]; ok && len(prop.Title) > 0 {
			return plainText(prop.Title)
		}
	}
	return "Untitled"
}

// toEntry decodes the standard note attributes from a queried page.
func (p wirePage) toEntry() Entry {
	entry := Entry{
		ID:     p.ID,
		URL:    p.URL,
		Title:  p.title(),
		Type:   "Unknown",
		Date:   "Unknown",
		Status: "Unknown",
	}

	if prop, ok := p.Properties["Type"]; ok && prop.Select != nil {
		entry.Type = prop.Select.Name
	}
	if prop, ok := p.Properties["Date"]; ok && prop.Date != nil {
		entry.Date = prop.Date.Start
	}
	if prop, ok := p.Properties["Status"]; ok && prop.Select != nil {
		entry.Status = prop.Select.Name
	}
	if prop, ok := p.Properties["Topics"]; ok {
		for _, opt := range prop.MultiSelect {
			entry.Topics = append(entry.Topics, opt.Name)
		}
	}

	return entry
}

// plainText flattens a rich-text array, preferring the API-provided
// plain_text and falling back to the literal text content.
func plainText(rich []wireRichText) string {
	out := ""
	for _, rt := range rich {
		if rt.PlainText != "" {
			out += rt.PlainText
		} else if rt.Text != nil {
			out += rt.Text.Content
		}
	}
	return out
}

func richText(text string) []wireRichText {
	return []wireRichText{{Type: "text", Text: &wireText{Content: text}}}
}

// toWireBlocks converts domain blocks to the Notion wire format.
func toWireBlocks(blocks []models.Block) []wireBlock {
	out := make([]wireBlock, len(blocks))
	for i, b := range blocks {
		out[i] = toWireBlock(b)
	}
	return out
}

func toWireBlock(b models.Block) wireBlock {
	wb := wireBlock{Object: "block"}

	switch b.Kind {
	case models.BlockHeading:
		payload := &wireTextBlock{RichText: richText(b.Text)}
		if b.Level == 3 {
			wb.Type = "heading_3"
			wb.Heading3 = payload
		} else {
			wb.Type = "heading_2"
			wb.Heading2 = payload
		}
	case models.BlockParagraph:
		wb.Type = "paragraph"
		wb.Paragraph = &wireTextBlock{RichText: richText(b.Text)}
	case models.BlockBullet:
		wb.Type = "bulleted_list_item"
		wb.Bulleted = &wireTextBlock{RichText: richText(b.Text)}
	case models.BlockTodo:
		wb.Type = "to_do"
		wb.ToDo = &wireTodoBlock{RichText: richText(b.Text), Checked: b.Checked}
	case models.BlockCallout:
		wb.Type = "callout"
		wb.Callout = &wireCalloutBlock{
			RichText: richText(b.Text),
			Icon:     &wireIcon{Type: "emoji", Emoji: b.Icon},
		}
	case models.BlockDivider:
		wb.Type = "divider"
		wb.Divider = &struct{}{}
	}

	return wb
}

// fromWireBlocks converts fetched wire blocks back to domain blocks. Block
// types outside the supported set are skipped.
func fromWireBlocks(blocks []wireBlock) []models.Block {
	var out []models.Block
	for _, wb := range blocks {
		if b, ok := fromWireBlock(wb); ok {
			out = append(out, b)
		}
	}
	return out
}

func fromWireBlock(wb wireBlock) (models.Block, bool) {
	switch wb.Type {
	case "heading_2":
		if wb.Heading2 == nil {
			return models.Block{}, false
		}
		return models.Heading(2, plainText(wb.Heading2.RichText)), true
	case "heading_3":
		if wb.Heading3 == nil {
			return models.Block{}, false
		}
		return models.Heading(3, plainText(wb.Heading3.RichText)), true
	case "paragraph":
		if wb.Paragraph == nil {
			return models.Block{}, false
		}
		return models.Paragraph(plainText(wb.Paragraph.RichText)), true
	case "bulleted_list_item":
		if wb.Bulleted == nil {
			return models.Block{}, false
		}
		return models.BulletItem(plainText(wb.Bulleted.RichText)), true
	case "to_do":
		if wb.ToDo == nil {
			return models.Block{}, false
		}
		return models.TodoItem(plainText(wb.ToDo.RichText), wb.ToDo.Checked), true
	case "callout":
		if wb.Callout == nil {
			return models.Block{}, false
		}
		b := models.Callout(plainText(wb.Callout.RichText), "")
		if wb.Callout.Icon != nil {
			b.Icon = wb.Callout.Icon.Emoji
		}
		return b, true
	case "divider":
		return models.Divider(), true
	default:
		return models.Block{}, false
	}
}

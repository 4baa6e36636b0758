package models

// BlockKind identifies the type of a content block.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockBullet    BlockKind = "bulleted_list_item"
	BlockTodo      BlockKind = "to_do"
	BlockCallout   BlockKind = "callout"
	BlockDivider   BlockKind = "divider"
)

// Block is one typed unit of document content. Blocks are immutable once
// constructed; their order equals top-to-bottom order in the rendered page.
type Block struct {
	Kind BlockKind

	// Text is the plain-text content for all kinds except dividers.
	Text string

	// Level is the heading level (2 or 3). Only set for headings.
	Level int

	// Checked is the completion state. Only set for to-do items.
	Checked bool

	// Icon is the emoji icon. Only set for callouts.
	Icon string
}

// Heading builds a heading block at the given level.
func Heading(level int, text string) Block {
	return Block{Kind: BlockHeading, Level: level, Text: text}
}

// Paragraph builds a paragraph block. An empty text produces the blank
// paragraph used as a visual separator between sections.
func Paragraph(text string) Block {
	return Block{Kind: BlockParagraph, Text: text}
}

// BulletItem builds a bulleted list item block.
func BulletItem(text string) Block {
	return Block{Kind: BlockBullet, Text: text}
}

// TodoItem builds a checkbox block.
func TodoItem(text string, checked bool) Block {
	return Block{Kind: BlockTodo, Text: text, Checked: checked}
}

// Callout builds a callout block with an emoji icon.
func Callout(text, icon string) Block {
	return Block{Kind: BlockCallout, Text: text, Icon: icon}
}

// Divider builds a horizontal divider block.
func Divider() Block {
	return Block{Kind: BlockDivider}
}

package doc

// Block is a node in a parsed document tree. Blocks are built once by a parser
// and treated as immutable afterwards; renderers only read them.
type Block struct {
	Kind    Kind
	ID      string
	Roles   []string
	Title   string
	Caption string // prefix for the title, e.g. "Listing 1. "
	Style   string
	Level   int // headings only
	Attrs   Attributes

	// Content is the block's text. Inline markup has already been converted
	// to HTML and verbatim content has already been escaped.
	Content string

	Blocks []*Block
	Items  []*ListItem // lists only

	// Doc is the document the block belongs to. It may be nil for blocks
	// built outside a document.
	Doc *Document
}

// ListItem is an entry in an ordered or unordered list.
type ListItem struct {
	Text   string
	Blocks []*Block
}

func (b *Block) HasTitle() bool {
	return b.Title != ""
}

func (b *Block) CaptionedTitle() string {
	if b.Title == "" {
		return ""
	}
	return b.Caption + b.Title
}

func (b *Block) Attr(name string) string {
	return b.Attrs.Value(name)
}

func (b *Block) HasAttr(name string) bool {
	return b.Attrs.Has(name)
}

// DocAttr looks up a document level attribute, returning def when the block
// has no document or the attribute is unset or empty.
func (b *Block) DocAttr(name, def string) string {
	if b.Doc == nil {
		return def
	}
	if v := b.Doc.Attr(name); v != "" {
		return v
	}
	return def
}

// Walk calls fn for b and every block below it, depth first, including blocks
// nested in list items. Walking stops early if fn returns false.
func (b *Block) Walk(fn func(*Block) bool) bool {
	if !fn(b) {
		return false
	}
	for _, c := range b.Blocks {
		if !c.Walk(fn) {
			return false
		}
	}
	for _, it := range b.Items {
		for _, c := range it.Blocks {
			if !c.Walk(fn) {
				return false
			}
		}
	}
	return true
}

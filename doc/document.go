package doc

// Document attribute names understood by the renderers and the engine.
const (
	AttrHighlightTheme = "highlight-theme"
	AttrLang           = "lang"
	AttrDocTitle       = "doctitle"
	AttrStylesheet     = "stylesheet"
	AttrListingCaption = "listing-caption"
	AttrOutFileSuffix  = "outfilesuffix"
)

// Document is the root of a parsed tree together with the document level
// settings that renderers may consult.
type Document struct {
	Root  *Block
	Attrs Attributes
}

func NewDocument(attrs Attributes) *Document {
	d := &Document{Attrs: attrs}
	d.Root = &Block{Kind: KindDocument, Doc: d}
	return d
}

func (d *Document) Attr(name string) string {
	if d == nil {
		return ""
	}
	return d.Attrs.Value(name)
}

// Title returns the document title: the doctitle attribute if set, otherwise
// the text of the first level one heading.
func (d *Document) Title() string {
	if t := d.Attr(AttrDocTitle); t != "" {
		return t
	}
	if d == nil || d.Root == nil {
		return ""
	}
	var title string
	d.Root.Walk(func(b *Block) bool {
		if b.Kind == KindHeading && b.Level == 1 {
			title = b.Content
			return false
		}
		return true
	})
	return title
}

package doc

// Kind identifies the type of a block in a document tree. The set of kinds is
// closed; renderers switch over it exhaustively.
type Kind int

const (
	KindUnknown Kind = iota
	KindDocument
	KindParagraph
	KindListing
	KindLiteral
	KindOrderedList
	KindUnorderedList
	KindQuote
	KindHeading
	KindThematicBreak
	KindHTML
)

var kindNames = [...]string{
	KindUnknown:       "unknown",
	KindDocument:      "document",
	KindParagraph:     "paragraph",
	KindListing:       "listing",
	KindLiteral:       "literal",
	KindOrderedList:   "olist",
	KindUnorderedList: "ulist",
	KindQuote:         "quote",
	KindHeading:       "heading",
	KindThematicBreak: "thematic_break",
	KindHTML:          "html",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// IsList reports whether blocks of this kind carry list items.
func (k Kind) IsList() bool {
	return k == KindOrderedList || k == KindUnorderedList
}

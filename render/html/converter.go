// Package html renders a document tree as semantic HTML. Each supported block
// kind has a dedicated renderer that emits the element itself, without the
// wrapper divs a generic backend would add. Other kinds are delegated to a
// Fallback.
package html

import (
	"html"
	"strings"

	"github.com/iand/semdoc/doc"
	"github.com/iand/semdoc/highlight"
	"github.com/iand/semdoc/logging"
)

const DefaultTitleTag = "summary"

// Transform names passed through to the fallback.
const (
	TransformNone     = ""
	TransformDocument = "document"
)

// Highlighter turns source code into highlighted HTML.
type Highlighter interface {
	Supports(lang string) bool
	Highlight(code, lang, theme string, lineNumbers bool) string
}

// Fallback renders block kinds that have no dedicated renderer. Its output is
// returned without modification.
type Fallback interface {
	RenderBlock(c *Converter, b *doc.Block, transform string) string
}

// Converter dispatches blocks to their renderers. A Converter holds no
// mutable state and may be used from multiple goroutines. The zero value uses
// the Generic fallback, the shared highlighter and summary titles.
type Converter struct {
	Fallback    Fallback
	Highlighter Highlighter
	TitleTag    string
}

// Convert renders b and, recursively, its children.
func (c *Converter) Convert(b *doc.Block, transform string) string {
	if b == nil {
		return ""
	}
	logging.Debug("converting block", "kind", b.Kind.String(), "id", b.ID)

	switch b.Kind {
	case doc.KindParagraph:
		return c.paragraph(b)
	case doc.KindListing:
		return c.listing(b)
	case doc.KindLiteral:
		return c.literal(b)
	case doc.KindOrderedList:
		return c.olist(b)
	case doc.KindUnorderedList:
		return c.ulist(b)
	case doc.KindQuote:
		return c.quote(b)
	}

	return c.fallback().RenderBlock(c, b, transform)
}

// ConvertBlocks renders each block in turn and concatenates the results.
func (c *Converter) ConvertBlocks(bs []*doc.Block) string {
	var sb strings.Builder
	for _, b := range bs {
		sb.WriteString(c.Convert(b, TransformNone))
	}
	return sb.String()
}

func (c *Converter) fallback() Fallback {
	if c.Fallback == nil {
		return Generic{}
	}
	return c.Fallback
}

func (c *Converter) highlighter() Highlighter {
	if c.Highlighter == nil {
		return highlight.Default()
	}
	return c.Highlighter
}

func (c *Converter) titleTag() string {
	if c.TitleTag == "" {
		return DefaultTitleTag
	}
	return c.TitleTag
}

// wrap places the block's title, if any, before inner. Collapsible blocks are
// put in a details element whose summary is the title.
func (c *Converter) wrap(b *doc.Block, inner string) string {
	if HasOption(b, "collapsible") {
		var sb strings.Builder
		sb.WriteString("<details")
		if HasOption(b, "open") {
			sb.WriteString(" open")
		}
		sb.WriteString("><summary>")
		if b.HasTitle() {
			sb.WriteString(html.EscapeString(b.CaptionedTitle()))
		} else {
			sb.WriteString("Details")
		}
		sb.WriteString("</summary>")
		sb.WriteString(inner)
		sb.WriteString("</details>")
		return sb.String()
	}

	if b.HasTitle() {
		return BuildTitle(b, c.titleTag()) + inner
	}
	return inner
}

// attrs is the concatenation of the id, class and other attribute strings.
func attrs(b *doc.Block, classes []string, exclude ...string) string {
	return BuildID(b) + BuildClass(b, classes...) + BuildOtherAttributes(b, nil, exclude...)
}

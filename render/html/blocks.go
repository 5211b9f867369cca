package html

import (
	"html"
	"strings"

	"github.com/iand/semdoc/doc"
	"github.com/iand/semdoc/highlight"
)

func (c *Converter) paragraph(b *doc.Block) string {
	inner := "<p" + attrs(b, nil) + ">" + b.Content + "</p>"
	return c.wrap(b, inner)
}

// listing renders a code listing. Content is expected to be HTML escaped; the
// highlighter decodes it before tokenising.
func (c *Converter) listing(b *doc.Block) string {
	var classes []string
	if b.Style == "source" {
		classes = append(classes, "highlight")
	}

	lang := b.Attr("language")
	if lang == "" {
		lang = highlight.PlainText
	}

	hl := c.highlighter()
	hlLang := lang
	if !hl.Supports(hlLang) {
		hlLang = highlight.PlainText
	}
	theme := b.DocAttr(doc.AttrHighlightTheme, highlight.DefaultTheme)
	code := hl.Highlight(b.Content, hlLang, theme, HasOption(b, "linenums"))

	var sb strings.Builder
	sb.WriteString("<pre")
	sb.WriteString(attrs(b, classes, "style", "language"))
	sb.WriteString(`><code class="language-`)
	sb.WriteString(html.EscapeString(lang))
	sb.WriteString(`" data-lang="`)
	sb.WriteString(html.EscapeString(lang))
	sb.WriteString(`">`)
	sb.WriteString(code)
	sb.WriteString("</code></pre>")
	return c.wrap(b, sb.String())
}

// literal emits content verbatim. The parser has already escaped it.
func (c *Converter) literal(b *doc.Block) string {
	inner := "<pre" + attrs(b, nil, "style") + ">" + b.Content + "</pre>"
	return c.wrap(b, inner)
}

// quote renders block children if there are any, otherwise the content.
func (c *Converter) quote(b *doc.Block) string {
	body := b.Content
	if len(b.Blocks) > 0 {
		body = c.ConvertBlocks(b.Blocks)
	}
	inner := "<blockquote" + attrs(b, nil, "style") + ">" + body + "</blockquote>"
	return c.wrap(b, inner)
}

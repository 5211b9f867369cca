package html

import (
	"html"
	"strconv"
	"strings"

	"github.com/iand/semdoc/doc"
)

// Generic renders the block kinds that have no dedicated renderer in the
// manner of a plain HTML5 backend.
type Generic struct{}

var _ Fallback = Generic{}

func (g Generic) RenderBlock(c *Converter, b *doc.Block, transform string) string {
	switch b.Kind {
	case doc.KindDocument:
		body := g.body(c, b)
		if transform == TransformDocument {
			return g.envelope(b.Doc, body)
		}
		return body
	case doc.KindHeading:
		level := min(max(b.Level, 1), 6)
		tag := "h" + strconv.Itoa(level)
		return "<" + tag + BuildID(b) + BuildClass(b) + ">" + b.Content + "</" + tag + ">"
	case doc.KindThematicBreak:
		return "<hr>"
	case doc.KindHTML:
		return b.Content
	}

	inner := b.Content
	if len(b.Blocks) > 0 {
		inner = c.ConvertBlocks(b.Blocks)
	}
	return BuildTitle(b, c.titleTag()) + "<div" + BuildID(b) + BuildClass(b, b.Kind.String()) + ">" + inner + "</div>"
}

func (Generic) body(c *Converter, b *doc.Block) string {
	parts := make([]string, 0, len(b.Blocks))
	for _, child := range b.Blocks {
		if s := c.Convert(child, TransformNone); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func (Generic) envelope(d *doc.Document, body string) string {
	lang := d.Attr(doc.AttrLang)
	if lang == "" {
		lang = "en"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(`<html lang="` + html.EscapeString(lang) + `">` + "\n")
	sb.WriteString("<head>\n")
	sb.WriteString(`<meta charset="UTF-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	if title := d.Title(); title != "" {
		sb.WriteString("<title>" + html.EscapeString(stripTags(title)) + "</title>\n")
	}
	if css := d.Attr(doc.AttrStylesheet); css != "" {
		sb.WriteString(`<link rel="stylesheet" href="` + html.EscapeString(css) + `">` + "\n")
	}
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")
	sb.WriteString(body)
	if body != "" {
		sb.WriteString("\n")
	}
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")
	return sb.String()
}

// stripTags removes markup from inline HTML, leaving character references
// decoded so the text can be escaped again.
func stripTags(s string) string {
	var sb strings.Builder
	in := false
	for _, r := range s {
		switch {
		case r == '<':
			in = true
		case r == '>' && in:
			in = false
		case !in:
			sb.WriteRune(r)
		}
	}
	return html.UnescapeString(sb.String())
}

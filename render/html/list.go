package html

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/iand/semdoc/doc"
)

// Items whose text is longer than this, or that contain markup, are wrapped
// in a paragraph.
const itemWrapLength = 80

// numeration maps ordered list styles to the HTML type attribute. Arabic is
// the browser default and needs no attribute.
var numeration = map[string]string{
	"arabic":     "",
	"loweralpha": "a",
	"upperalpha": "A",
	"lowerroman": "i",
	"upperroman": "I",
}

// ListType returns the value of the type attribute for an ordered list style.
// Unrecognised non-empty styles fall back to "1".
func ListType(style string) string {
	if style == "" {
		return ""
	}
	if t, ok := numeration[style]; ok {
		return t
	}
	return "1"
}

func (c *Converter) olist(b *doc.Block) string {
	var sb strings.Builder
	sb.WriteString("<ol")
	sb.WriteString(attrs(b, nil, "style", "start"))
	if start := b.Attr("start"); start != "" && start != "1" {
		sb.WriteString(` start="`)
		sb.WriteString(html.EscapeString(start))
		sb.WriteString(`"`)
	}
	if t := ListType(b.Style); t != "" {
		sb.WriteString(` type="`)
		sb.WriteString(t)
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	c.writeItems(&sb, b.Items)
	sb.WriteString("</ol>")
	return c.wrap(b, sb.String())
}

func (c *Converter) ulist(b *doc.Block) string {
	tag := "ul"
	if b.Style == "menu" {
		tag = "menu"
	}

	var sb strings.Builder
	sb.WriteString("<" + tag)
	sb.WriteString(attrs(b, nil, "style"))
	sb.WriteString(">")
	c.writeItems(&sb, b.Items)
	sb.WriteString("</" + tag + ">")
	return c.wrap(b, sb.String())
}

func (c *Converter) writeItems(sb *strings.Builder, items []*doc.ListItem) {
	for _, it := range items {
		sb.WriteString(c.ListItem(it))
	}
}

// ListItem renders a single list item. Nested blocks are dispatched through
// Convert, so a nested list goes through its own list renderer.
func (c *Converter) ListItem(it *doc.ListItem) string {
	if len(it.Blocks) > 0 {
		return "<li>" + it.Text + c.ConvertBlocks(it.Blocks) + "</li>"
	}
	if utf8.RuneCountInString(it.Text) > itemWrapLength || strings.Contains(it.Text, "<") {
		return "<li><p>" + it.Text + "</p></li>"
	}
	return "<li>" + it.Text + "</li>"
}

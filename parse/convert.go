package parse

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/yuin/goldmark/ast"

	"github.com/iand/semdoc/doc"
	"github.com/iand/semdoc/logging"
	"github.com/iand/semdoc/lorem"
)

// builder converts a goldmark syntax tree into document blocks.
type builder struct {
	src      []byte
	doc      *doc.Document
	macros   map[string]MacroFunc
	lorem    *lorem.Generator
	ids      map[string]int
	listings int
}

func (b *builder) blocks(parent ast.Node) []*doc.Block {
	var out []*doc.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, b.block(n)...)
	}
	return out
}

func (b *builder) block(n ast.Node) []*doc.Block {
	m := metaOf(n)

	var blk *doc.Block
	switch n := n.(type) {
	case *AttributeEntry:
		b.setAttr(n)
		return nil
	case *Macro:
		return b.macro(n, m)
	case *ast.Paragraph, *ast.TextBlock:
		blk = b.paragraph(n, m)
	case *ast.Heading:
		blk = &doc.Block{Kind: doc.KindHeading, Level: n.Level, Content: b.inline(n)}
		if m == nil || m.ID == "" {
			blk.ID = b.uniqueID(plainText(n, b.src))
		}
	case *ast.FencedCodeBlock:
		blk = &doc.Block{Kind: doc.KindListing, Style: "listing", Content: b.lines(n, true)}
		if lang := string(n.Language(b.src)); lang != "" {
			blk.Style = "source"
			blk.Attrs = blk.Attrs.With("language", lang)
		}
	case *ast.CodeBlock:
		blk = &doc.Block{Kind: doc.KindLiteral, Style: "literal", Content: b.lines(n, true)}
	case *Delimited:
		blk = b.delimited(n)
	case *ast.List:
		blk = b.list(n)
	case *ast.Blockquote:
		blk = &doc.Block{Kind: doc.KindQuote, Style: "quote", Blocks: b.blocks(n)}
	case *ast.ThematicBreak:
		blk = &doc.Block{Kind: doc.KindThematicBreak}
	case *ast.HTMLBlock:
		s := b.lines(n, false)
		if n.HasClosure() {
			s += "\n" + string(n.ClosureLine.Value(b.src))
		}
		blk = &doc.Block{Kind: doc.KindHTML, Content: strings.TrimRight(s, "\n")}
	default:
		blk = &doc.Block{Kind: doc.KindHTML, Content: b.render(n)}
	}

	b.apply(blk, m)
	b.finish(blk)
	return []*doc.Block{blk}
}

// paragraph converts a paragraph. A style given in block metadata can turn
// it into a quote, literal or listing.
func (b *builder) paragraph(n ast.Node, m *Meta) *doc.Block {
	style := ""
	if m != nil {
		style = m.Style
	}
	switch style {
	case "quote", "verse":
		return &doc.Block{Kind: doc.KindQuote, Content: b.inline(n)}
	case "literal":
		return &doc.Block{Kind: doc.KindLiteral, Content: b.lines(n, true)}
	case "source", "listing":
		return &doc.Block{Kind: doc.KindListing, Content: b.lines(n, true)}
	}
	return &doc.Block{Kind: doc.KindParagraph, Content: b.inline(n)}
}

func (b *builder) delimited(n *Delimited) *doc.Block {
	switch n.Block {
	case doc.KindQuote:
		return &doc.Block{Kind: doc.KindQuote, Style: "quote", Blocks: b.blocks(n)}
	case doc.KindLiteral:
		return &doc.Block{Kind: doc.KindLiteral, Style: "literal", Content: b.lines(n, true)}
	}
	return &doc.Block{Kind: doc.KindListing, Style: "listing", Content: b.lines(n, true)}
}

func (b *builder) list(n *ast.List) *doc.Block {
	blk := &doc.Block{Kind: doc.KindUnorderedList}
	if n.IsOrdered() {
		blk.Kind = doc.KindOrderedList
		blk.Style = "arabic"
		if n.Start != 1 {
			blk.Attrs = blk.Attrs.With("start", strconv.Itoa(n.Start))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		blk.Items = append(blk.Items, b.item(c))
	}
	return blk
}

// item uses the item's leading paragraph as its text. Everything after it
// becomes nested blocks.
func (b *builder) item(n ast.Node) *doc.ListItem {
	it := &doc.ListItem{}
	c := n.FirstChild()
	if c != nil && (c.Kind() == ast.KindParagraph || c.Kind() == ast.KindTextBlock) && metaOf(c) == nil {
		it.Text = b.inline(c)
		c = c.NextSibling()
	}
	for ; c != nil; c = c.NextSibling() {
		it.Blocks = append(it.Blocks, b.block(c)...)
	}
	return it
}

// apply copies block metadata onto blk. Positional arguments are interpreted
// according to the kind of block.
func (b *builder) apply(blk *doc.Block, m *Meta) {
	if m == nil {
		return
	}
	if m.ID != "" {
		blk.ID = m.ID
	}
	blk.Roles = append(blk.Roles, m.Roles...)
	if m.Title != "" {
		blk.Title = m.Title
	}
	if m.Style != "" {
		blk.Style = m.Style
	}
	blk.Attrs = blk.Attrs.Merge(m.Attrs)

	positional := func(i int) string {
		if i < len(m.Positional) {
			return m.Positional[i]
		}
		return ""
	}

	switch blk.Kind {
	case doc.KindListing:
		if lang := positional(1); lang != "" {
			if blk.Style == "" || blk.Style == "listing" {
				blk.Style = "source"
			}
			blk.Attrs = blk.Attrs.With("language", lang)
		}
		if positional(2) == "linenums" {
			blk.Attrs = blk.Attrs.With(doc.OptionKey("linenums"), "")
		}
	case doc.KindQuote:
		if v := positional(1); v != "" {
			blk.Attrs = blk.Attrs.With("attribution", v)
		}
		if v := positional(2); v != "" {
			blk.Attrs = blk.Attrs.With("citetitle", v)
		}
	case doc.KindOrderedList:
		if v := blk.Attrs.Value("start"); v == "1" {
			blk.Attrs = blk.Attrs.Without("start")
		}
	}
}

// finish links blk to the document and numbers listing captions.
func (b *builder) finish(blk *doc.Block) {
	blk.Doc = b.doc
	if blk.Kind == doc.KindListing && blk.HasTitle() {
		if caption := b.doc.Attr(doc.AttrListingCaption); caption != "" {
			b.listings++
			blk.Caption = fmt.Sprintf("%s %d. ", caption, b.listings)
		}
	}
}

func (b *builder) setAttr(n *AttributeEntry) {
	if n.Unset {
		b.doc.Attrs = b.doc.Attrs.Without(n.Name)
		return
	}
	b.doc.Attrs = b.doc.Attrs.With(n.Name, n.Value)
}

func (b *builder) macro(n *Macro, m *Meta) []*doc.Block {
	fn, ok := b.macros[n.Name]
	if !ok {
		logging.Debug("unknown block macro, keeping as text", "macro", n.Name)
		return b.macroText(n)
	}

	call := &MacroCall{
		Name:   n.Name,
		Target: n.Target,
		ID:     n.Meta.ID,
		Roles:  n.Meta.Roles,
		Title:  n.Meta.Title,
		Attrs:  n.Meta.Attrs,
		Doc:    b.doc,
		Lorem:  b.lorem,
	}
	if m != nil {
		merged := &Meta{
			ID:         n.Meta.ID,
			Roles:      n.Meta.Roles,
			Title:      n.Meta.Title,
			Positional: n.Meta.Positional,
			Attrs:      n.Meta.Attrs,
		}
		merged.absorb(m)
		call.ID, call.Roles, call.Title, call.Attrs = merged.ID, merged.Roles, merged.Title, merged.Attrs
	}

	blocks, err := fn(call)
	if err != nil {
		logging.Warn("block macro failed, keeping as text", "macro", n.Name, "error", err)
		return b.macroText(n)
	}
	for _, blk := range blocks {
		blk.Doc = b.doc
	}
	return blocks
}

func (b *builder) macroText(n *Macro) []*doc.Block {
	return []*doc.Block{{Kind: doc.KindParagraph, Content: html.EscapeString(n.Line), Doc: b.doc}}
}

// inline renders the inline children of n as HTML.
func (b *builder) inline(n ast.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := md.Renderer().Render(&buf, b.src, c); err != nil {
			logging.Warn("render inline content", "error", err)
		}
	}
	return strings.TrimRight(buf.String(), " \n")
}

// render renders a block that has no direct equivalent in the document
// model, such as a table.
func (b *builder) render(n ast.Node) string {
	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, b.src, n); err != nil {
		logging.Warn("render block", "kind", n.Kind().String(), "error", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// lines joins the source lines of n, escaping them when escape is set.
func (b *builder) lines(n ast.Node, escape bool) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(b.src))
	}
	s := strings.TrimRight(sb.String(), "\n")
	if escape {
		return html.EscapeString(s)
	}
	return s
}

// uniqueID derives an id from heading text, adding a numeric suffix when
// the same id has already been used.
func (b *builder) uniqueID(title string) string {
	id := slug.Make(title)
	if id == "" {
		id = "section"
	}
	b.ids[id]++
	if n := b.ids[id]; n > 1 {
		return id + "-" + strconv.Itoa(n)
	}
	return id
}

func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(src))
			if c.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

package format

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const indent = "  "

// blocks are laid out on their own lines. Everything else stays in the
// flow of the surrounding text.
var blocks = map[atom.Atom]bool{
	atom.Html: true, atom.Head: true, atom.Body: true, atom.Title: true,
	atom.Meta: true, atom.Link: true, atom.Script: true, atom.Style: true,
	atom.Main: true, atom.Header: true, atom.Footer: true, atom.Nav: true,
	atom.Section: true, atom.Article: true, atom.Aside: true, atom.Div: true,
	atom.P: true, atom.Pre: true, atom.Blockquote: true, atom.Hr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Menu: true, atom.Li: true,
	atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Details: true, atom.Summary: true, atom.Figure: true, atom.Figcaption: true,
	atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true,
	atom.Tr: true, atom.Th: true, atom.Td: true,
}

var void = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// preserved elements have their content copied verbatim.
var preserved = map[atom.Atom]bool{
	atom.Pre: true, atom.Textarea: true, atom.Script: true, atom.Style: true,
}

// Pretty lays out HTML with each block element on its own line, indented
// two spaces per level of nesting. Inline markup and the content of pre,
// textarea, script and style elements are left untouched.
func Pretty(ctx context.Context, src string) (string, error) {
	p := &printer{afterBlock: true}
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return "", fmt.Errorf("tokenize html: %w", z.Err())
		}
		p.token(z, tt)
	}
	out := p.sb.String()
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

type printer struct {
	sb         strings.Builder
	open       []bool // for each open block element, whether it has block children
	preserve   int
	afterBlock bool
	space      string // whitespace held back until it is known to be inline
}

func (p *printer) token(z *html.Tokenizer, tt html.TokenType) {
	raw := string(z.Raw())

	var a atom.Atom
	if tt == html.StartTagToken || tt == html.EndTagToken || tt == html.SelfClosingTagToken {
		name, _ := z.TagName()
		a = atom.Lookup(name)
	}

	if p.preserve > 0 {
		if tt == html.EndTagToken && preserved[a] {
			p.preserve--
			if p.preserve == 0 && blocks[a] {
				p.end(raw)
				return
			}
		}
		if tt == html.StartTagToken && preserved[a] {
			p.preserve++
		}
		p.sb.WriteString(raw)
		return
	}

	switch tt {
	case html.DoctypeToken, html.CommentToken:
		p.newline()
		p.sb.WriteString(raw)
		p.afterBlock = true
	case html.StartTagToken, html.SelfClosingTagToken:
		if preserved[a] && tt == html.StartTagToken {
			p.preserve++
		}
		if !blocks[a] {
			p.inline(raw)
			return
		}
		if len(p.open) > 0 {
			p.open[len(p.open)-1] = true
		}
		p.newline()
		p.sb.WriteString(raw)
		if tt == html.StartTagToken && !void[a] {
			p.open = append(p.open, false)
		}
		p.afterBlock = tt == html.SelfClosingTagToken || void[a]
	case html.EndTagToken:
		if !blocks[a] {
			p.inline(raw)
			return
		}
		p.end(raw)
	case html.TextToken:
		if strings.TrimSpace(raw) == "" {
			if !p.afterBlock && !p.lastOpenHasBlocks() {
				p.space = raw
			}
			return
		}
		if p.afterBlock {
			raw = strings.TrimLeft(raw, " \t\r\n")
		}
		if p.lastOpenHasBlocks() {
			raw = strings.TrimRight(raw, " \t\r\n")
		}
		p.inline(raw)
	}
}

// end closes a block element. The end tag goes on its own line when the
// element contained other blocks.
func (p *printer) end(raw string) {
	if len(p.open) == 0 {
		p.sb.WriteString(raw)
		p.afterBlock = true
		return
	}
	hasBlocks := p.open[len(p.open)-1]
	p.open = p.open[:len(p.open)-1]
	if hasBlocks {
		p.newline()
	}
	p.sb.WriteString(raw)
	p.afterBlock = true
}

func (p *printer) inline(raw string) {
	if p.afterBlock {
		p.newline()
		p.afterBlock = false
	}
	p.sb.WriteString(p.space)
	p.space = ""
	p.sb.WriteString(raw)
}

func (p *printer) lastOpenHasBlocks() bool {
	return len(p.open) > 0 && p.open[len(p.open)-1]
}

func (p *printer) newline() {
	p.space = ""
	if p.sb.Len() > 0 {
		p.sb.WriteByte('\n')
	}
	p.sb.WriteString(strings.Repeat(indent, len(p.open)))
}

package parse

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	gtext "github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/iand/semdoc/doc"
)

var KindMeta = ast.NewNodeKind("Meta")

// Meta holds block metadata given on the lines before a block: a block
// attribute line such as [source,go] or a block title such as .Example. It is
// folded into the following block once parsing is complete.
type Meta struct {
	ast.BaseBlock
	ID         string
	Roles      []string
	Style      string
	Title      string
	Positional []string
	Attrs      doc.Attributes
}

func (n *Meta) Kind() ast.NodeKind { return KindMeta }

func (n *Meta) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"ID":    n.ID,
		"Style": n.Style,
		"Title": n.Title,
		"Roles": strings.Join(n.Roles, " "),
	}, nil)
}

// absorb merges earlier metadata into n. Values already set on n win.
func (n *Meta) absorb(earlier *Meta) {
	if n.ID == "" {
		n.ID = earlier.ID
	}
	if n.Style == "" {
		n.Style = earlier.Style
	}
	if n.Title == "" {
		n.Title = earlier.Title
	}
	if len(n.Positional) == 0 {
		n.Positional = earlier.Positional
	}
	n.Roles = append(append([]string{}, earlier.Roles...), n.Roles...)
	n.Attrs = earlier.Attrs.Merge(n.Attrs)
}

type metaParser struct{}

func (p *metaParser) Trigger() []byte {
	return []byte{'[', '.'}
}

func (p *metaParser) Open(parent ast.Node, reader gtext.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	l := util.TrimRightSpace(util.TrimLeftSpace(line))

	var m *Meta
	switch {
	case isTitleLine(l):
		m = &Meta{Title: string(l[1:])}
	case bytes.HasPrefix(l, []byte("[[")) && bytes.HasSuffix(l, []byte("]]")) && len(l) > 4:
		m = &Meta{ID: strings.TrimSpace(string(l[2 : len(l)-2]))}
	case len(l) >= 2 && l[0] == '[' && l[len(l)-1] == ']':
		m = parseAttrList(string(l[1 : len(l)-1]))
	default:
		return nil, parser.NoChildren
	}

	advanceLine(reader, line, segment)
	return m, parser.NoChildren
}

func (p *metaParser) Continue(node ast.Node, reader gtext.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (p *metaParser) Close(node ast.Node, reader gtext.Reader, pc parser.Context) {}

func (p *metaParser) CanInterruptParagraph() bool {
	return false
}

func (p *metaParser) CanAcceptIndentedLine() bool {
	return false
}

// isTitleLine matches .Title but not an ellipsis, a literal delimiter or a
// line starting with a full stop and a space.
func isTitleLine(l []byte) bool {
	if len(l) < 2 || l[0] != '.' {
		return false
	}
	switch l[1] {
	case '.', ' ', '\t':
		return false
	}
	return true
}

var attrName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// parseAttrList parses the contents of a block attribute line. The first
// positional argument may use the shorthand style#id.role%option.
func parseAttrList(s string) *Meta {
	m := &Meta{}
	var raw []string
	for i, part := range splitAttrs(s) {
		key, value, named := cutNamed(part)
		if !named {
			v := unquote(strings.TrimSpace(part))
			raw = append(raw, v)
			if i == 0 {
				v = m.shorthand(v)
			}
			m.Positional = append(m.Positional, v)
			continue
		}

		switch key {
		case "id":
			m.ID = value
		case "role":
			m.Roles = append(m.Roles, strings.Fields(value)...)
		case "title":
			m.Title = value
		case "opts", "options":
			for _, o := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' }) {
				m.Attrs = m.Attrs.With(doc.OptionKey(o), "")
			}
		default:
			m.Attrs = m.Attrs.With(key, value)
		}
	}

	if len(raw) > 0 {
		m.Attrs = m.Attrs.With(doc.PositionalKey, strings.Join(raw, ","))
	}
	return m
}

// shorthand extracts the style, id, roles and options from the first
// positional argument and returns the style.
func (m *Meta) shorthand(s string) string {
	end := strings.IndexAny(s, "#.%")
	if end < 0 {
		m.Style = s
		return s
	}
	m.Style = s[:end]

	rest := s[end:]
	for rest != "" {
		marker := rest[0]
		rest = rest[1:]
		next := strings.IndexAny(rest, "#.%")
		if next < 0 {
			next = len(rest)
		}
		token := rest[:next]
		rest = rest[next:]
		if token == "" {
			continue
		}
		switch marker {
		case '#':
			m.ID = token
		case '.':
			m.Roles = append(m.Roles, token)
		case '%':
			m.Attrs = m.Attrs.With(doc.OptionKey(token), "")
		}
	}
	return m.Style
}

// splitAttrs splits s on commas that are not inside quotes.
func splitAttrs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	var quote rune
	start := 0
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func cutNamed(part string) (string, string, bool) {
	k, v, ok := strings.Cut(part, "=")
	if !ok {
		return "", "", false
	}
	k = strings.TrimSpace(k)
	if !attrName.MatchString(k) {
		return "", "", false
	}
	return k, unquote(strings.TrimSpace(v)), true
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// advanceLine moves the reader to the end of the current line, leaving the
// line terminator for the block parser loop.
func advanceLine(reader gtext.Reader, line []byte, segment gtext.Segment) {
	n := segment.Len()
	if len(line) > 0 && line[len(line)-1] == '\n' {
		n--
	}
	if n > 0 {
		reader.Advance(n)
	}
}

const metaAttr = "semdoc-meta"

// metaTransformer attaches each run of Meta nodes to the block that follows
// them and removes the Meta nodes from the tree.
type metaTransformer struct{}

func (metaTransformer) Transform(node *ast.Document, reader gtext.Reader, pc parser.Context) {
	var metas []*Meta
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if m, ok := n.(*Meta); ok && entering {
			metas = append(metas, m)
		}
		return ast.WalkContinue, nil
	})

	for _, m := range metas {
		parent := m.Parent()
		if parent == nil {
			continue
		}
		switch next := m.NextSibling().(type) {
		case nil:
		case *Meta:
			next.absorb(m)
		default:
			if prev := metaOf(next); prev != nil {
				prev.absorb(m)
			} else {
				next.SetAttributeString(metaAttr, m)
			}
		}
		parent.RemoveChild(parent, m)
	}
}

func metaOf(n ast.Node) *Meta {
	v, ok := n.AttributeString(metaAttr)
	if !ok {
		return nil
	}
	m, _ := v.(*Meta)
	return m
}

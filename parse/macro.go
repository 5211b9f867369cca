package parse

import (
	"fmt"
	"html"
	"regexp"
	"slices"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	gtext "github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/iand/semdoc/doc"
	"github.com/iand/semdoc/lorem"
)

var KindMacro = ast.NewNodeKind("Macro")

// Macro is a block macro line of the form name::target[attributes].
type Macro struct {
	ast.BaseBlock
	Name   string
	Target string
	Meta   *Meta
	Line   string
}

func (n *Macro) Kind() ast.NodeKind { return KindMacro }

func (n *Macro) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name":   n.Name,
		"Target": n.Target,
	}, nil)
}

var macroLine = regexp.MustCompile(`^([a-z][a-z0-9_-]*)::(\S*?)\[(.*)\]$`)

type macroParser struct{}

func (p *macroParser) Trigger() []byte {
	return []byte("abcdefghijklmnopqrstuvwxyz")
}

func (p *macroParser) Open(parent ast.Node, reader gtext.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	l := util.TrimRightSpace(util.TrimLeftSpace(line))
	sm := macroLine.FindSubmatch(l)
	if sm == nil {
		return nil, parser.NoChildren
	}
	node := &Macro{
		Name:   string(sm[1]),
		Target: string(sm[2]),
		Meta:   parseAttrList(string(sm[3])),
		Line:   string(l),
	}
	advanceLine(reader, line, segment)
	return node, parser.NoChildren
}

func (p *macroParser) Continue(node ast.Node, reader gtext.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (p *macroParser) Close(node ast.Node, reader gtext.Reader, pc parser.Context) {}

func (p *macroParser) CanInterruptParagraph() bool {
	return false
}

func (p *macroParser) CanAcceptIndentedLine() bool {
	return false
}

// MacroCall describes a single use of a block macro.
type MacroCall struct {
	Name   string
	Target string
	ID     string
	Roles  []string
	Title  string
	Attrs  doc.Attributes
	Doc    *doc.Document
	Lorem  *lorem.Generator
}

// MacroFunc expands a block macro into blocks.
type MacroFunc func(call *MacroCall) ([]*doc.Block, error)

// DefaultMacros are the block macros available when a Parser does not
// specify its own.
var DefaultMacros = map[string]MacroFunc{
	"lorem": Lorem,
}

// loremAttrs control generation and are not copied to generated blocks.
var loremAttrs = []string{"length", "words_per_sentence", "sentences", doc.PositionalKey}

// Lorem expands lorem::type[length=1-3,words_per_sentence=4-16,sentences=2-5]
// into placeholder text. The type is one of paragraph (the default),
// sentence, title, ul or ol.
func Lorem(call *MacroCall) ([]*doc.Block, error) {
	length, err := rangeAttr(call.Attrs, "length", "1-3")
	if err != nil {
		return nil, err
	}
	words, err := rangeAttr(call.Attrs, "words_per_sentence", "4-16")
	if err != nil {
		return nil, err
	}
	sentences, err := rangeAttr(call.Attrs, "sentences", "2-5")
	if err != nil {
		return nil, err
	}

	var attrs doc.Attributes
	for _, a := range call.Attrs {
		if !slices.Contains(loremAttrs, a.Name) {
			attrs = append(attrs, a)
		}
	}

	newBlock := func(k doc.Kind) *doc.Block {
		return &doc.Block{
			Kind:  k,
			Roles: slices.Clone(call.Roles),
			Attrs: slices.Clone(attrs),
			Doc:   call.Doc,
		}
	}

	var blocks []*doc.Block
	switch call.Target {
	case "", "paragraph":
		for _, p := range call.Lorem.Paragraphs(length, sentences, words) {
			b := newBlock(doc.KindParagraph)
			b.Content = html.EscapeString(p)
			blocks = append(blocks, b)
		}
	case "sentence":
		b := newBlock(doc.KindParagraph)
		b.Content = html.EscapeString(call.Lorem.Paragraph(length, words))
		blocks = append(blocks, b)
	case "title":
		b := newBlock(doc.KindHeading)
		b.Level = 2
		b.Content = html.EscapeString(call.Lorem.Title(length))
		blocks = append(blocks, b)
	case "ul", "ol":
		b := newBlock(doc.KindUnorderedList)
		if call.Target == "ol" {
			b.Kind = doc.KindOrderedList
		}
		for _, it := range call.Lorem.Items(length, words) {
			b.Items = append(b.Items, &doc.ListItem{Text: html.EscapeString(it)})
		}
		blocks = append(blocks, b)
	default:
		return nil, fmt.Errorf("unknown lorem type %q", call.Target)
	}

	if len(blocks) > 0 {
		blocks[0].ID = call.ID
		blocks[0].Title = call.Title
	}
	return blocks, nil
}

func rangeAttr(attrs doc.Attributes, name, def string) (lorem.Range, error) {
	v := attrs.Value(name)
	if v == "" {
		v = def
	}
	r, err := lorem.ParseRange(v)
	if err != nil {
		return lorem.Range{}, fmt.Errorf("%s: %w", name, err)
	}
	return r, nil
}

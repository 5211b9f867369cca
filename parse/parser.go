// Package parse reads document source into a doc.Document. The input is
// markdown as understood by goldmark, extended with block attribute lines,
// block titles, delimited blocks, block macros and document attribute
// entries.
package parse

import (
	"slices"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	gtext "github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/iand/semdoc/doc"
	"github.com/iand/semdoc/lorem"
	"github.com/iand/semdoc/text"
)

type extender struct{}

// Extension adds the block syntax understood by this package to a goldmark
// instance.
var Extension goldmark.Extender = extender{}

func (extender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&delimitedParser{}, 50),
			util.Prioritized(&metaParser{}, 60),
			util.Prioritized(&entryParser{}, 65),
			util.Prioritized(&macroParser{}, 70),
		),
		parser.WithASTTransformers(
			util.Prioritized(metaTransformer{}, 100),
		),
	)
}

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Linkify,
		Extension,
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// Parser converts source text to a document tree. The zero value is ready
// to use.
type Parser struct {
	// Attributes are the initial document attributes. Attribute entries in
	// the source override them.
	Attributes doc.Attributes

	// Macros maps block macro names to their expansions. DefaultMacros is
	// used when nil.
	Macros map[string]MacroFunc

	// Seed fixes the output of generated placeholder text. A zero seed uses
	// the current time.
	Seed uint64
}

func New(attrs doc.Attributes) *Parser {
	return &Parser{Attributes: attrs}
}

// Parse never fails: unrecognised syntax is treated as text and macro errors
// are logged.
func (p *Parser) Parse(src []byte) *doc.Document {
	src = []byte(text.NormalizeNewlines(string(src)))

	d := doc.NewDocument(slices.Clone(p.Attributes))
	root := md.Parser().Parse(gtext.NewReader(src))

	macros := p.Macros
	if macros == nil {
		macros = DefaultMacros
	}
	seed := p.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	b := &builder{
		src:    src,
		doc:    d,
		macros: macros,
		lorem:  lorem.New(seed),
		ids:    map[string]int{},
	}
	d.Root.Blocks = b.blocks(root)
	return d
}

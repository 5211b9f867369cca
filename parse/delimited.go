package parse

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	gtext "github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/iand/semdoc/doc"
)

var KindDelimited = ast.NewNodeKind("Delimited")

// Delimited is a block enclosed by a pair of matching delimiter lines: ----
// for a listing, .... for a literal block and ____ for a quote. Listings and
// literals keep their lines verbatim; quotes contain parsed blocks.
type Delimited struct {
	ast.BaseBlock
	Delim  byte
	Length int
	Block  doc.Kind
}

func (n *Delimited) Kind() ast.NodeKind { return KindDelimited }

func (n *Delimited) IsRaw() bool { return n.Block != doc.KindQuote }

func (n *Delimited) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Block": n.Block.String(),
	}, nil)
}

var delimitedKinds = map[byte]doc.Kind{
	'-': doc.KindListing,
	'.': doc.KindLiteral,
	'_': doc.KindQuote,
}

// minDelimiter is the shortest delimiter line. Three dashes or underscores
// remain a thematic break.
const minDelimiter = 4

func delimiter(line []byte) (byte, int, bool) {
	l := util.TrimRightSpace(util.TrimLeftSpace(line))
	if len(l) < minDelimiter {
		return 0, 0, false
	}
	c := l[0]
	if _, ok := delimitedKinds[c]; !ok {
		return 0, 0, false
	}
	for _, x := range l {
		if x != c {
			return 0, 0, false
		}
	}
	return c, len(l), true
}

type delimitedParser struct{}

func (p *delimitedParser) Trigger() []byte {
	return []byte{'-', '.', '_'}
}

func (p *delimitedParser) Open(parent ast.Node, reader gtext.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	c, n, ok := delimiter(line)
	if !ok {
		return nil, parser.NoChildren
	}
	node := &Delimited{Delim: c, Length: n, Block: delimitedKinds[c]}
	advanceLine(reader, line, segment)
	if node.Block == doc.KindQuote {
		return node, parser.HasChildren
	}
	return node, parser.NoChildren
}

func (p *delimitedParser) Continue(node ast.Node, reader gtext.Reader, pc parser.Context) parser.State {
	n := node.(*Delimited)
	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	if c, length, ok := delimiter(line); ok && c == n.Delim && length == n.Length {
		advanceLine(reader, line, segment)
		return parser.Close
	}

	if !n.IsRaw() {
		return parser.Continue | parser.HasChildren
	}
	n.Lines().Append(segment)
	advanceLine(reader, line, segment)
	return parser.Continue | parser.NoChildren
}

func (p *delimitedParser) Close(node ast.Node, reader gtext.Reader, pc parser.Context) {}

func (p *delimitedParser) CanInterruptParagraph() bool {
	return true
}

func (p *delimitedParser) CanAcceptIndentedLine() bool {
	return false
}

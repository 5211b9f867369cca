package parse

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	gtext "github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var KindAttributeEntry = ast.NewNodeKind("AttributeEntry")

// AttributeEntry sets or unsets a document attribute: ":name: value" sets,
// ":name!:" and ":!name:" unset.
type AttributeEntry struct {
	ast.BaseBlock
	Name  string
	Value string
	Unset bool
}

func (n *AttributeEntry) Kind() ast.NodeKind { return KindAttributeEntry }

func (n *AttributeEntry) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name":  n.Name,
		"Value": n.Value,
	}, nil)
}

var entryLine = regexp.MustCompile(`^:(!?)([A-Za-z0-9_][A-Za-z0-9_-]*)(!?):(?:[ \t]+(.*))?$`)

type entryParser struct{}

func (p *entryParser) Trigger() []byte {
	return []byte{':'}
}

func (p *entryParser) Open(parent ast.Node, reader gtext.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	l := util.TrimRightSpace(util.TrimLeftSpace(line))
	sm := entryLine.FindSubmatch(l)
	if sm == nil {
		return nil, parser.NoChildren
	}
	node := &AttributeEntry{
		Name:  string(sm[2]),
		Value: string(util.TrimRightSpace(sm[4])),
		Unset: len(sm[1]) > 0 || len(sm[3]) > 0,
	}
	advanceLine(reader, line, segment)
	return node, parser.NoChildren
}

func (p *entryParser) Continue(node ast.Node, reader gtext.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (p *entryParser) Close(node ast.Node, reader gtext.Reader, pc parser.Context) {}

func (p *entryParser) CanInterruptParagraph() bool {
	return false
}

func (p *entryParser) CanAcceptIndentedLine() bool {
	return false
}

// Package source assembles document source text from literal template
// segments and interpolated values.
//
// Values are either plain, inserted with ordinary string formatting, or raw,
// inserted verbatim with just enough line breaks around them that a block
// delimiter inside the raw text starts and ends on its own line. The result
// is dedented so that templates can be indented to match surrounding Go code.
package source

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iand/semdoc/text"
)

// Segment is an interpolated value: either PlainText or RawText.
type Segment interface {
	segment()
}

// PlainText is inserted as is. No escaping happens since the destination is
// document source, not HTML.
type PlainText string

// RawText is inserted verbatim and may carry block structure such as a
// delimited listing.
type RawText string

func (PlainText) segment() {}
func (RawText) segment()   {}

func Plain(v any) Segment {
	return PlainText(fmt.Sprint(v))
}

func Raw(v any) Segment {
	return RawText(fmt.Sprint(v))
}

// fence matches raw text that opens with a block delimiter of four or more
// dashes or equals signs.
var fence = regexp.MustCompile(`^\s*[-=]{4,}`)

// Build interleaves literals and values: literals[0], values[0],
// literals[1], values[1] and so on. Surplus values are ignored. The output is
// passed through text.Dedent.
func Build(literals []string, values ...Segment) string {
	var out []byte
	for i, lit := range literals {
		out = append(out, lit...)
		if i >= len(values) {
			continue
		}

		switch v := values[i].(type) {
		case RawText:
			raw := string(v)
			if len(out) > 0 && out[len(out)-1] != '\n' && fence.MatchString(raw) {
				out = append(out, '\n')
			}
			out = append(out, raw...)

			nextStartsWithNewline := i+1 < len(literals) && strings.HasPrefix(literals[i+1], "\n")
			if !strings.HasSuffix(raw, "\n") && !nextStartsWithNewline {
				out = append(out, '\n')
			}
		case PlainText:
			out = append(out, string(v)...)
		}
	}
	return text.Dedent(string(out))
}

// Builder accumulates literals and values incrementally.
//
//	src := new(source.Builder).
//		Text("Intro\n\n").
//		Raw("----\ncode\n----").
//		Text("\nOutro").
//		String()
type Builder struct {
	literals []string
	values   []Segment
}

func (b *Builder) Text(s string) *Builder {
	if len(b.literals) == 0 {
		b.literals = append(b.literals, "")
	}
	b.literals[len(b.literals)-1] += s
	return b
}

func (b *Builder) Plain(v any) *Builder {
	return b.add(Plain(v))
}

func (b *Builder) Raw(v any) *Builder {
	return b.add(Raw(v))
}

func (b *Builder) add(s Segment) *Builder {
	if len(b.literals) == 0 {
		b.literals = append(b.literals, "")
	}
	b.values = append(b.values, s)
	b.literals = append(b.literals, "")
	return b
}

func (b *Builder) String() string {
	return Build(b.literals, b.values...)
}

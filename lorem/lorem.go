// Package lorem generates placeholder latin text.
package lorem

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/iand/semdoc/text"
)

// Range is an inclusive range of counts.
type Range struct {
	Min, Max int
}

func Exactly(n int) Range {
	return Range{Min: n, Max: n}
}

func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.Itoa(r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// ParseRange parses a count such as "3" or a range such as "1-3". The bounds
// are swapped if given in the wrong order.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	a, b, isRange := strings.Cut(s, "-")
	from, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil || from < 0 {
		return Range{}, fmt.Errorf("invalid range %q", s)
	}
	if !isRange {
		return Exactly(from), nil
	}
	to, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil || to < 0 {
		return Range{}, fmt.Errorf("invalid range %q", s)
	}
	if to < from {
		from, to = to, from
	}
	return Range{Min: from, Max: to}, nil
}

// commaChance is the one-in-n chance of a comma following a word.
const commaChance = 11

// Generator produces text from a pseudo-random source. A Generator is not
// safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
}

// New returns a generator whose output is fully determined by seed.
func New(seed uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick returns a count chosen uniformly from r.
func (g *Generator) Pick(r Range) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + g.rnd.IntN(r.Max-r.Min+1)
}

func (g *Generator) Words(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = dictionary[g.rnd.IntN(len(dictionary))]
	}
	return words
}

// Sentence returns a capitalised sentence ending in a full stop. Commas are
// scattered through it but never among the last three words.
func (g *Generator) Sentence(words Range) string {
	ws := g.Words(max(g.Pick(words), 1))
	var sb strings.Builder
	for i, w := range ws {
		if i == 0 {
			sb.WriteString(text.UpperFirst(w))
			continue
		}
		if i < len(ws)-3 && g.rnd.IntN(commaChance) == 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" ")
		sb.WriteString(w)
	}
	sb.WriteString(".")
	return sb.String()
}

func (g *Generator) Paragraph(sentences, words Range) string {
	n := max(g.Pick(sentences), 1)
	ss := make([]string, n)
	for i := range ss {
		ss[i] = g.Sentence(words)
	}
	return strings.Join(ss, " ")
}

func (g *Generator) Paragraphs(count, sentences, words Range) []string {
	ps := make([]string, g.Pick(count))
	for i := range ps {
		ps[i] = g.Paragraph(sentences, words)
	}
	return ps
}

// Title returns words with each one capitalised.
func (g *Generator) Title(words Range) string {
	ws := g.Words(max(g.Pick(words), 1))
	for i := range ws {
		ws[i] = text.UpperFirst(ws[i])
	}
	return strings.Join(ws, " ")
}

// Items returns list item texts, each with its first word capitalised.
func (g *Generator) Items(count, words Range) []string {
	items := make([]string, g.Pick(count))
	for i := range items {
		items[i] = text.UpperFirst(strings.Join(g.Words(max(g.Pick(words), 1)), " "))
	}
	return items
}

var dictionary = []string{
	"a", "ac", "accumsan", "adipiscing", "aenean", "aliquam", "aliquet", "amet",
	"ante", "arcu", "at", "auctor", "augue", "bibendum", "blandit", "commodo",
	"condimentum", "congue", "consectetur", "consequat", "convallis", "cras",
	"cubilia", "curabitur", "cursus", "dapibus", "diam", "dictum", "dignissim",
	"dolor", "donec", "dui", "duis", "egestas", "eget", "eleifend", "elementum",
	"elit", "enim", "erat", "eros", "est", "et", "etiam", "eu", "euismod",
	"facilisis", "fames", "faucibus", "felis", "fermentum", "feugiat", "fringilla",
	"fusce", "gravida", "habitant", "hendrerit", "iaculis", "id", "imperdiet",
	"in", "integer", "interdum", "ipsum", "justo", "lacinia", "lacus", "laoreet",
	"lectus", "leo", "libero", "ligula", "lobortis", "lorem", "luctus", "maecenas",
	"magna", "malesuada", "massa", "mattis", "mauris", "metus", "mi", "molestie",
	"mollis", "morbi", "nam", "nec", "neque", "netus", "nibh", "nisi", "nisl",
	"non", "nulla", "nullam", "nunc", "odio", "orci", "ornare", "pellentesque",
	"pharetra", "phasellus", "placerat", "porta", "porttitor", "posuere",
	"praesent", "pretium", "proin", "pulvinar", "purus", "quam", "quis",
	"quisque", "rhoncus", "risus", "rutrum", "sagittis", "sapien", "scelerisque",
	"sed", "sem", "semper", "senectus", "sit", "sodales", "sollicitudin",
	"suscipit", "suspendisse", "tellus", "tempor", "tempus", "tincidunt",
	"tortor", "tristique", "turpis", "ullamcorper", "ultrices", "ultricies",
	"urna", "ut", "varius", "vehicula", "vel", "velit", "venenatis", "vestibulum",
	"vitae", "vivamus", "viverra", "volutpat", "vulputate",
}

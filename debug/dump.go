// Package debug prints the internal structure of parsed documents.
package debug

import (
	"fmt"
	"io"
	"strings"

	"github.com/kortschak/utter"

	"github.com/iand/semdoc/doc"
)

var dumper = &utter.ConfigState{
	Indent:    "  ",
	ElideType: true,
	SortKeys:  true,
}

// DumpDocument writes the document attributes followed by an outline of the
// block tree.
func DumpDocument(d *doc.Document, w io.Writer) error {
	fmt.Fprintln(w, "Title:", d.Title())
	if len(d.Attrs) == 0 {
		fmt.Fprintln(w, "Attributes: none")
	} else {
		fmt.Fprintln(w, "Attributes:")
		for _, a := range d.Attrs {
			fmt.Fprintf(w, " - %s: %s\n", a.Name, a.Value)
		}
	}
	fmt.Fprintln(w)

	var err error
	outline(w, d.Root, 0, &err)
	return err
}

func outline(w io.Writer, b *doc.Block, depth int, errp *error) {
	if *errp != nil {
		return
	}
	pad := strings.Repeat("  ", depth)
	line := pad + BlockTitle(b)
	if b.Content != "" {
		line += ": " + excerpt(b.Content, 60)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		*errp = err
		return
	}
	for _, c := range b.Blocks {
		outline(w, c, depth+1, errp)
	}
	for _, it := range b.Items {
		fmt.Fprintf(w, "%s  - %s\n", pad, excerpt(it.Text, 60))
		for _, c := range it.Blocks {
			outline(w, c, depth+2, errp)
		}
	}
}

// DumpBlock writes every field of b and its descendants. The link back to the
// owning document is left out.
func DumpBlock(b *doc.Block, w io.Writer) error {
	_, err := io.WriteString(w, dumper.Sdump(detach(b)))
	return err
}

// FindBlock returns the first block in d with the given id.
func FindBlock(d *doc.Document, id string) (*doc.Block, bool) {
	var found *doc.Block
	d.Root.Walk(func(b *doc.Block) bool {
		if b.ID == id {
			found = b
			return false
		}
		return true
	})
	return found, found != nil
}

func detach(b *doc.Block) *doc.Block {
	c := *b
	c.Doc = nil
	c.Blocks = nil
	for _, child := range b.Blocks {
		c.Blocks = append(c.Blocks, detach(child))
	}
	c.Items = nil
	for _, it := range b.Items {
		ci := &doc.ListItem{Text: it.Text}
		for _, child := range it.Blocks {
			ci.Blocks = append(ci.Blocks, detach(child))
		}
		c.Items = append(c.Items, ci)
	}
	return &c
}

package debug

import (
	"fmt"
	"strings"

	"github.com/iand/semdoc/doc"
)

// BlockTitle returns a one line description of a block for logs and dumps.
func BlockTitle(b *doc.Block) string {
	if b == nil {
		return "<nil>"
	}

	var sb strings.Builder
	sb.WriteString(b.Kind.String())
	if b.Kind == doc.KindHeading {
		fmt.Fprintf(&sb, "%d", b.Level)
	}
	if b.ID != "" {
		sb.WriteString("#" + b.ID)
	}
	for _, r := range b.Roles {
		sb.WriteString("." + r)
	}
	if b.Style != "" {
		fmt.Fprintf(&sb, " [%s]", b.Style)
	}
	if b.HasTitle() {
		fmt.Fprintf(&sb, " %q", b.CaptionedTitle())
	}
	if n := len(b.Items); n > 0 {
		fmt.Fprintf(&sb, " items=%d", n)
	}
	return sb.String()
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

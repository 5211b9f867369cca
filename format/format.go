// Package format post-processes rendered HTML, either laying it out one
// block element per line or minifying it.
package format

import (
	"context"
	"fmt"
	"strings"
)

// Mode selects how converted output is post-processed.
type Mode string

const (
	None   Mode = "none"
	Indent Mode = "pretty"
	Small  Mode = "minify"
)

var Modes = []Mode{None, Indent, Small}

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", None:
		return None, nil
	case Indent, Small:
		return m, nil
	}
	return None, fmt.Errorf("unsupported format %q, expected one of none, pretty or minify", s)
}

// Apply formats src according to mode.
func Apply(ctx context.Context, mode Mode, src string) (string, error) {
	switch mode {
	case "", None:
		return src, nil
	case Indent:
		return Pretty(ctx, src)
	case Small:
		return Minify(ctx, src)
	}
	return "", fmt.Errorf("unsupported format %q", mode)
}

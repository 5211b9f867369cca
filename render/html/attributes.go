package html

import (
	"html"
	"strings"

	"github.com/iand/semdoc/doc"
)

// reserved attributes are never passed through as HTML attributes. Keys with
// the option suffix are also excluded.
var reserved = []string{"id", "role", "style", "title", doc.PositionalKey}

// BuildID returns ` id="<id>"` or the empty string when b has no id.
func BuildID(b *doc.Block) string {
	if b.ID == "" {
		return ""
	}
	return ` id="` + b.ID + `"`
}

// BuildClass returns a class attribute listing the roles of b followed by any
// extra classes, each at most once, or the empty string if there are none.
func BuildClass(b *doc.Block, extra ...string) string {
	seen := make(map[string]bool, len(b.Roles)+len(extra))
	var classes []string
	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		classes = append(classes, c)
	}
	for _, r := range b.Roles {
		add(r)
	}
	for _, c := range extra {
		add(c)
	}
	if len(classes) == 0 {
		return ""
	}
	return ` class="` + strings.Join(classes, " ") + `"`
}

// BuildOtherAttributes renders every attribute of b, merged with extra, that
// is not reserved, not an option and not named in exclude. Values are escaped
// and attributes with empty values are dropped.
func BuildOtherAttributes(b *doc.Block, extra doc.Attributes, exclude ...string) string {
	attrs := b.Attrs
	if len(extra) > 0 {
		attrs = attrs.Merge(extra)
	}

	var sb strings.Builder
	for _, a := range attrs {
		if a.Value == "" || excluded(a.Name, exclude) {
			continue
		}
		sb.WriteString(" ")
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Value))
		sb.WriteString(`"`)
	}
	return sb.String()
}

func excluded(name string, exclude []string) bool {
	if strings.HasSuffix(name, doc.OptionSuffix) {
		return true
	}
	for _, r := range reserved {
		if name == r {
			return true
		}
	}
	for _, x := range exclude {
		if name == x {
			return true
		}
	}
	return false
}

// Options returns the names of the options set on b followed by extra, each
// at most once.
func Options(b *doc.Block, extra ...string) []string {
	set := b.Attrs.Options()
	seen := make(map[string]bool, len(set)+len(extra))
	opts := make([]string, 0, len(set)+len(extra))
	for _, o := range append(set, extra...) {
		if seen[o] {
			continue
		}
		seen[o] = true
		opts = append(opts, o)
	}
	return opts
}

func HasOption(b *doc.Block, name string) bool {
	return b.Attrs.Has(doc.OptionKey(name))
}

// BuildTitle wraps the escaped captioned title of b in tag, returning the empty
// string for an untitled block.
func BuildTitle(b *doc.Block, tag string) string {
	if !b.HasTitle() {
		return ""
	}
	return "<" + tag + ">" + html.EscapeString(b.CaptionedTitle()) + "</" + tag + ">"
}

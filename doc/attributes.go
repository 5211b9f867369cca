package doc

import "strings"

const (
	// OptionSuffix marks an attribute key as a boolean option. The option is
	// set whenever the key is present, whatever its value.
	OptionSuffix = "-option"

	// PositionalKey holds the raw positional arguments of an attribute line.
	PositionalKey = "$positional"
)

type Attribute struct {
	Name  string
	Value string
}

// Attributes is an ordered set of attributes with unique names. Insertion
// order is preserved so that rendered output is deterministic.
type Attributes []Attribute

func (as Attributes) Get(name string) (string, bool) {
	for _, a := range as {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (as Attributes) Value(name string) string {
	v, _ := as.Get(name)
	return v
}

func (as Attributes) Has(name string) bool {
	_, ok := as.Get(name)
	return ok
}

// With returns a copy of as with name set to value. An existing attribute
// keeps its position.
func (as Attributes) With(name, value string) Attributes {
	out := make(Attributes, len(as), len(as)+1)
	copy(out, as)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attribute{Name: name, Value: value})
}

// Without returns a copy of as with name removed.
func (as Attributes) Without(name string) Attributes {
	out := make(Attributes, 0, len(as))
	for _, a := range as {
		if a.Name != name {
			out = append(out, a)
		}
	}
	return out
}

// Merge returns the union of as and other. Values from other replace values
// in as without moving them; new names are appended in the order of other.
func (as Attributes) Merge(other Attributes) Attributes {
	out := make(Attributes, len(as), len(as)+len(other))
	copy(out, as)
	for _, a := range other {
		out = out.With(a.Name, a.Value)
	}
	return out
}

// Options returns the names of all options set in as, in order.
func (as Attributes) Options() []string {
	var opts []string
	for _, a := range as {
		if name, ok := strings.CutSuffix(a.Name, OptionSuffix); ok {
			opts = append(opts, name)
		}
	}
	return opts
}

func OptionKey(name string) string {
	return name + OptionSuffix
}

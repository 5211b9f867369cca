package engine

import (
	"fmt"
	"os"
	"slices"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"

	"github.com/iand/semdoc/doc"
	"github.com/iand/semdoc/format"
	"github.com/iand/semdoc/highlight"
	"github.com/iand/semdoc/parse"
	rhtml "github.com/iand/semdoc/render/html"
)

// Options controls how source is converted.
type Options struct {
	// Attributes are document attributes applied before any attribute
	// entries in the source.
	Attributes map[string]string `yaml:"attributes"`

	// Standalone wraps the output in a complete HTML document.
	Standalone bool `yaml:"standalone"`

	// TitleTag is the element used for block titles.
	TitleTag string `yaml:"title_tag"`

	// Format is applied to output written by ConvertFile.
	Format format.Mode `yaml:"format"`

	// Seed fixes generated placeholder text. Zero varies it per run.
	Seed uint64 `yaml:"seed"`

	// Macros replaces the block macro registry. Nil uses parse.DefaultMacros.
	Macros map[string]parse.MacroFunc `yaml:"-"`
}

func DefaultAttributes() map[string]string {
	return map[string]string{
		doc.AttrHighlightTheme: highlight.DefaultTheme,
		doc.AttrLang:           "en",
		doc.AttrStylesheet:     "style.css",
		doc.AttrOutFileSuffix:  ".html",
	}
}

func DefaultOptions() Options {
	return Options{
		Attributes: DefaultAttributes(),
		TitleTag:   rhtml.DefaultTitleTag,
		Format:     format.None,
	}
}

// LoadConfig reads options from a YAML file. Values not present in the file
// keep their defaults.
func LoadConfig(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("unmarshal config: %w", err)
	}
	// an empty attributes key decodes as null and drops the defaults
	if opts.Attributes == nil {
		opts.Attributes = DefaultAttributes()
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return opts, nil
}

func (o *Options) Validate() error {
	mode, err := format.ParseMode(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = mode
	return nil
}

// Clone returns a copy of o that shares no maps with it.
func (o Options) Clone() Options {
	c := o
	c.Attributes = maps.Clone(o.Attributes)
	c.Macros = maps.Clone(o.Macros)
	return c
}

// documentAttributes returns the attributes sorted by name.
func (o Options) documentAttributes() doc.Attributes {
	names := maps.Keys(o.Attributes)
	slices.Sort(names)

	attrs := make(doc.Attributes, 0, len(names))
	for _, name := range names {
		attrs = attrs.With(name, o.Attributes[name])
	}
	return attrs
}

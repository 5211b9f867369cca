// Package engine ties parsing, rendering and formatting together and loads
// source from files and URLs.
package engine

import (
	"context"

	"github.com/iand/semdoc/doc"
	"github.com/iand/semdoc/format"
	"github.com/iand/semdoc/parse"
	rhtml "github.com/iand/semdoc/render/html"
	"github.com/iand/semdoc/source"
)

// Engine converts document source to HTML. It is safe for concurrent use.
type Engine struct {
	opts      Options
	converter *rhtml.Converter
}

func New(opts Options) *Engine {
	opts = opts.Clone()
	return &Engine{
		opts: opts,
		converter: &rhtml.Converter{
			TitleTag: opts.TitleTag,
		},
	}
}

// Default returns an engine using DefaultOptions.
func Default() *Engine {
	return New(DefaultOptions())
}

func (e *Engine) Options() Options {
	return e.opts.Clone()
}

// WithOptions returns a new engine whose options are a copy of e's, modified
// by fn. e is left unchanged.
func (e *Engine) WithOptions(fn func(*Options)) *Engine {
	opts := e.opts.Clone()
	fn(&opts)
	return New(opts)
}

// Parse parses src into a document tree without rendering it.
func (e *Engine) Parse(src string) *doc.Document {
	p := &parse.Parser{
		Attributes: e.opts.documentAttributes(),
		Macros:     e.opts.Macros,
		Seed:       e.opts.Seed,
	}
	return p.Parse([]byte(src))
}

// Convert renders src as HTML. Only the body content is produced unless the
// engine is standalone.
func (e *Engine) Convert(src string) string {
	return e.Render(e.Parse(src))
}

// Render renders an already parsed document.
func (e *Engine) Render(d *doc.Document) string {
	transform := rhtml.TransformNone
	if e.opts.Standalone {
		transform = rhtml.TransformDocument
	}
	return e.converter.Convert(d.Root, transform)
}

// ConvertFormatted renders src and pretty prints the result.
func (e *Engine) ConvertFormatted(ctx context.Context, src string) (string, error) {
	return format.Pretty(ctx, e.Convert(src))
}

// ConvertTemplate assembles source from template literals and values, then
// converts it. See source.Build.
func (e *Engine) ConvertTemplate(literals []string, values ...source.Segment) string {
	return e.Convert(source.Build(literals, values...))
}

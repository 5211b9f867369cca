// Package highlight renders source code as syntax highlighted HTML using
// chroma. The highlighter is built once, on first use or by an explicit call
// to Init, and is read-only afterwards so it may be shared freely.
package highlight

import (
	"context"
	"html"
	"slices"
	"strings"
	"sync"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slog"

	"github.com/iand/semdoc/logging"
)

const (
	PlainText = "plaintext"

	ThemeLight   = "github"
	ThemeDark    = "monokai"
	DefaultTheme = ThemeDark
)

// Languages lists the language names the default highlighter accepts.
var Languages = []string{
	"adoc",
	"asciidoc",
	"bash",
	"css",
	"html",
	"javascript",
	"js",
	"json",
	"jsx",
	"md",
	"markdown",
	"plaintext",
	"prolog",
	"py",
	"python",
	"sql",
	"ts",
	"tsx",
	"typescript",
	"yaml",
}

// Themes lists the chroma style names loaded by the default highlighter.
var Themes = []string{ThemeLight, ThemeDark}

var (
	once sync.Once
	std  *Highlighter
)

// Init builds the shared highlighter. It is safe to call more than once; only
// the first call does any work.
func Init() *Highlighter {
	once.Do(func() {
		std = New(Languages, Themes)
	})
	return std
}

// Default returns the shared highlighter, initialising it if needed.
func Default() *Highlighter {
	return Init()
}

type Highlighter struct {
	languages []string // sorted
	lexers    map[string]chroma.Lexer
	styles    map[string]*chroma.Style
}

func New(languages []string, themes []string) *Highlighter {
	h := &Highlighter{
		lexers: make(map[string]chroma.Lexer, len(languages)),
		styles: make(map[string]*chroma.Style, len(themes)),
	}

	plain := lexers.Get(PlainText)
	if plain == nil {
		plain = lexers.Fallback
	}
	h.lexers[PlainText] = chroma.Coalesce(plain)

	for _, name := range languages {
		name = strings.ToLower(name)
		if _, exists := h.lexers[name]; exists {
			continue
		}
		l := lexers.Get(name)
		if l == nil {
			l = plain
		}
		h.lexers[name] = chroma.Coalesce(l)
	}

	h.languages = maps.Keys(h.lexers)
	slices.Sort(h.languages)

	for _, name := range themes {
		h.styles[name] = styles.Get(name)
	}

	return h
}

// Supports reports whether lang names a language the highlighter was built
// with. Matching is case insensitive.
func (h *Highlighter) Supports(lang string) bool {
	_, ok := h.lexers[strings.ToLower(lang)]
	return ok
}

// Resolve returns the lexer name used for lang, which is PlainText for any
// unsupported language.
func (h *Highlighter) Resolve(lang string) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	if _, ok := h.lexers[l]; ok {
		return l
	}
	if l != "" && logging.Default().Enabled(context.Background(), slog.LevelDebug) {
		if s, score := h.Suggest(l); s != "" {
			logging.Debug("unsupported highlight language", "language", lang, "closest", s, "similarity", score)
		}
	}
	return PlainText
}

// Suggest returns the supported language most similar to lang together with
// its similarity score in the range 0 to 1.
func (h *Highlighter) Suggest(lang string) (string, float64) {
	lev := metrics.NewLevenshtein()
	var best string
	var score float64
	for _, cand := range h.languages {
		if s := strutil.Similarity(strings.ToLower(lang), cand, lev); s > score {
			best, score = cand, s
		}
	}
	return best, score
}

// Languages returns the sorted names of the supported languages.
func (h *Highlighter) Languages() []string {
	return slices.Clone(h.languages)
}

func (h *Highlighter) style(theme string) *chroma.Style {
	if s, ok := h.styles[theme]; ok {
		return s
	}
	if s, ok := h.styles[DefaultTheme]; ok {
		return s
	}
	return styles.Fallback
}

// Highlight returns code as a sequence of inline styled spans suitable for
// placing inside a code element. code may contain HTML character references;
// they are decoded before tokenising and the output is always escaped.
func (h *Highlighter) Highlight(code, lang, theme string, lineNumbers bool) string {
	src := html.UnescapeString(code)
	lexer := h.lexers[h.Resolve(lang)]

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		logging.Debug("tokenise failed, emitting plain text", "language", lang, "error", err)
		return html.EscapeString(src)
	}

	opts := []chromahtml.Option{chromahtml.WithClasses(false)}
	if lineNumbers {
		// the per line spans carrying the numbers are only written when
		// surrounding pre is allowed, so suppress it through the wrapper
		opts = append(opts, chromahtml.WithPreWrapper(noPre{}), chromahtml.WithLineNumbers(true))
	} else {
		opts = append(opts, chromahtml.PreventSurroundingPre(true))
	}
	formatter := chromahtml.New(opts...)

	var buf strings.Builder
	if err := formatter.Format(&buf, h.style(theme), it); err != nil {
		logging.Debug("format failed, emitting plain text", "language", lang, "error", err)
		return html.EscapeString(src)
	}
	return buf.String()
}

// noPre omits the pre and code elements chroma wraps output in. The caller
// supplies its own.
type noPre struct{}

func (noPre) Start(code bool, styleAttr string) string { return "" }
func (noPre) End(code bool) string                     { return "" }

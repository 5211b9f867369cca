package highlight

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInitOnce(t *testing.T) {
	a := Init()
	b := Default()
	if a != b {
		t.Errorf("Init and Default returned different highlighters")
	}
}

func TestSupports(t *testing.T) {
	h := Default()
	testCases := []struct {
		lang string
		want bool
	}{
		{lang: "javascript", want: true},
		{lang: "JavaScript", want: true},
		{lang: "plaintext", want: true},
		{lang: "adoc", want: true},
		{lang: "cobol", want: false},
		{lang: "", want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.lang, func(t *testing.T) {
			if got := h.Supports(tc.lang); got != tc.want {
				t.Errorf("Supports(%q) = %v, wanted %v", tc.lang, got, tc.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	h := Default()
	testCases := []struct {
		lang string
		want string
	}{
		{lang: "python", want: "python"},
		{lang: " YAML ", want: "yaml"},
		{lang: "klingon", want: PlainText},
		{lang: "", want: PlainText},
	}
	for _, tc := range testCases {
		t.Run(tc.lang, func(t *testing.T) {
			if got := h.Resolve(tc.lang); got != tc.want {
				t.Errorf("Resolve(%q) = %q, wanted %q", tc.lang, got, tc.want)
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	h := Default()
	got, score := h.Suggest("pyhton")
	if got != "python" {
		t.Errorf("Suggest(pyhton) = %q, wanted python", got)
	}
	if score <= 0 || score > 1 {
		t.Errorf("score out of range: %v", score)
	}
}

func TestLanguagesSorted(t *testing.T) {
	h := New([]string{"yaml", "bash", "yaml"}, nil)
	want := []string{"bash", "plaintext", "yaml"}
	if diff := cmp.Diff(want, h.Languages()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestHighlightEscapes(t *testing.T) {
	h := Default()
	testCases := []struct {
		name string
		code string
		lang string
	}{
		{name: "raw", code: `if (a < b && c > d) {}`, lang: "javascript"},
		{name: "pre escaped", code: `if (a &lt; b &amp;&amp; c &gt; d) {}`, lang: "javascript"},
		{name: "plaintext", code: `<script>alert(1)</script>`, lang: "plaintext"},
		{name: "unsupported", code: `<script>alert(1)</script>`, lang: "klingon"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := h.Highlight(tc.code, tc.lang, DefaultTheme, false)
			if strings.Contains(got, "<script") {
				t.Errorf("output contains unescaped markup: %s", got)
			}
			if strings.Contains(got, "&amp;lt;") {
				t.Errorf("output is double escaped: %s", got)
			}
			if strings.Contains(got, "<pre") {
				t.Errorf("output should not be wrapped in pre: %s", got)
			}
		})
	}
}

func TestHighlightThemes(t *testing.T) {
	h := Default()
	code := "const x = 1;"
	light := h.Highlight(code, "javascript", ThemeLight, false)
	dark := h.Highlight(code, "javascript", ThemeDark, false)
	if light == dark {
		t.Errorf("light and dark themes produced identical output")
	}
	unknown := h.Highlight(code, "javascript", "no-such-theme", false)
	if unknown != dark {
		t.Errorf("unknown theme should fall back to the default theme")
	}
}

func TestHighlightLineNumbers(t *testing.T) {
	h := Default()
	code := "a = b\nc = d\n"
	without := h.Highlight(code, "python", DefaultTheme, false)
	with := h.Highlight(code, "python", DefaultTheme, true)
	if len(with) <= len(without) {
		t.Errorf("line numbers did not change output")
	}
	for _, n := range []string{">1</span>", ">2</span>"} {
		if !strings.Contains(with, n) {
			t.Errorf("output missing line number %s:\n%s", n, with)
		}
	}
	if strings.Contains(with, "<pre") || strings.Contains(with, "<code") {
		t.Errorf("output wrapped in pre:\n%s", with)
	}
}

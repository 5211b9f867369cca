package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/iand/semdoc/format"
	"github.com/iand/semdoc/source"
)

func query(t *testing.T, s string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return d
}

func TestConvert(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "list",
			src:  "* Item A\n* Item B\n",
			want: "<ul><li>Item A</li><li>Item B</li></ul>",
		},
		{
			name: "blocks joined by newline",
			src:  "One\n\nTwo\n",
			want: "<p>One</p>\n<p>Two</p>",
		},
		{
			name: "collapsible",
			src:  ".More\n[%collapsible%open]\nHidden\n",
			want: "<details open><summary>More</summary><p>Hidden</p></details>",
		},
		{
			name: "quote",
			src:  "____\nWise\n____\n",
			want: "<blockquote><p>Wise</p></blockquote>",
		},
		{
			name: "ordered list with style",
			src:  "[loweralpha]\n3. x\n",
			want: `<ol start="3" type="a"><li>x</li></ol>`,
		},
	}

	e := Default()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Convert(tc.src)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertListing(t *testing.T) {
	got := Default().Convert("[source,javascript]\n----\nconst a = 1;\n----\n")

	d := query(t, got)
	code := d.Find("pre.highlight > code.language-javascript")
	if code.Length() != 1 {
		t.Fatalf("no highlighted javascript code element in %s", got)
	}
	if lang, _ := code.Attr("data-lang"); lang != "javascript" {
		t.Errorf("got data-lang %q, wanted javascript", lang)
	}
	if diff := cmp.Diff("const a = 1;", strings.TrimSpace(code.Text())); diff != "" {
		t.Errorf("code text mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertTitleTag(t *testing.T) {
	e := New(Options{TitleTag: "h6"})
	got := e.Convert(".Numbers\n----\n1\n----\n")
	if !strings.HasPrefix(got, "<h6>Numbers</h6><pre") {
		t.Errorf("got %q, wanted h6 title before listing", got)
	}
}

func TestConvertStandalone(t *testing.T) {
	e := Default().WithOptions(func(o *Options) {
		o.Standalone = true
	})
	got := e.Convert("# My Title\n\nA paragraph\n")

	if !strings.HasPrefix(got, "<!DOCTYPE html>\n") {
		t.Errorf("got %q, wanted doctype first", got)
	}
	d := query(t, got)
	if diff := cmp.Diff("My Title", d.Find("head title").Text()); diff != "" {
		t.Errorf("title mismatch (-want +got):\n%s", diff)
	}
	if lang, _ := d.Find("html").Attr("lang"); lang != "en" {
		t.Errorf("got lang %q, wanted en", lang)
	}
	if href, _ := d.Find(`link[rel="stylesheet"]`).Attr("href"); href != "style.css" {
		t.Errorf("got stylesheet %q, wanted style.css", href)
	}
	if diff := cmp.Diff("A paragraph", d.Find("body > p").Text()); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestWithOptionsLeavesOriginal(t *testing.T) {
	e := Default()
	s := e.WithOptions(func(o *Options) {
		o.Standalone = true
		o.Attributes["lang"] = "fr"
	})

	if e.Options().Standalone {
		t.Errorf("original engine became standalone")
	}
	if got := e.Options().Attributes["lang"]; got != "en" {
		t.Errorf("got original lang %q, wanted en", got)
	}

	src := "# T\n\nx\n"
	if diff := cmp.Diff(New(s.Options()).Convert(src), s.Convert(src)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertTemplate(t *testing.T) {
	e := Default()

	got := e.ConvertTemplate([]string{"\n  Intro text\n\n  ", "\n"}, source.Raw("\n----\nconst x = 1;\n----\n"))
	d := query(t, got)
	if diff := cmp.Diff("Intro text", d.Find("p").Text()); diff != "" {
		t.Errorf("paragraph mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(d.Find("pre").Text(), "const x = 1;") {
		t.Errorf("got %q, wanted listing containing the raw snippet", got)
	}

	src := "# My Title\n\nA paragraph"
	viaTemplate := e.ConvertTemplate([]string{"", ""}, source.Plain(src))
	if diff := cmp.Diff(e.Convert(src), viaTemplate); diff != "" {
		t.Errorf("template mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertFormatted(t *testing.T) {
	got, err := Default().ConvertFormatted(context.Background(), "- a\n- b\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestConvertFile(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		fo       func(dir string) FileOptions
		wantFile string
	}{
		{
			name:     "not written",
			src:      "x\n",
			fo:       func(string) FileOptions { return FileOptions{} },
			wantFile: "",
		},
		{
			name:     "next to input",
			src:      "x\n",
			fo:       func(string) FileOptions { return FileOptions{ToFile: true} },
			wantFile: "doc.html",
		},
		{
			name:     "suffix attribute",
			src:      ":outfilesuffix: .htm\n\nx\n",
			fo:       func(string) FileOptions { return FileOptions{ToFile: true} },
			wantFile: "doc.htm",
		},
		{
			name: "out dir and name",
			src:  "x\n",
			fo: func(dir string) FileOptions {
				return FileOptions{ToFile: true, OutDir: filepath.Join(dir, "out", "site"), OutFileName: "index.html"}
			},
			wantFile: filepath.Join("out", "site", "index.html"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			in := writeFile(t, dir, "doc.adoc", tc.src)

			res, err := Default().ConvertFile(context.Background(), in, tc.fo(dir))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff("<p>x</p>", res.HTML); diff != "" {
				t.Errorf("html mismatch (-want +got):\n%s", diff)
			}

			if tc.wantFile == "" {
				if res.Path != "" {
					t.Errorf("got path %q, wanted nothing written", res.Path)
				}
				return
			}

			want := filepath.Join(dir, tc.wantFile)
			if res.Path != want {
				t.Errorf("got path %q, wanted %q", res.Path, want)
			}
			data, err := os.ReadFile(want)
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if diff := cmp.Diff(res.HTML, string(data)); diff != "" {
				t.Errorf("file content mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertFileFormat(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "doc.adoc", "- a\n")

	e := New(Options{Format: format.Indent})
	res, err := e.ConvertFile(context.Background(), in, FileOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("<ul>\n  <li>a</li>\n</ul>\n", res.HTML); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertFileOverwrite(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "doc.html", "x\n")

	_, err := Default().ConvertFile(context.Background(), in, FileOptions{ToFile: true})
	if !errors.Is(err, ErrOverwriteInput) {
		t.Errorf("got error %v, wanted %v", err, ErrOverwriteInput)
	}
}

func TestConvertFileMissing(t *testing.T) {
	_, err := Default().ConvertFile(context.Background(), filepath.Join(t.TempDir(), "nope.adoc"), FileOptions{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got error %v, wanted not exist", err)
	}
}

func TestLoadFileURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/doc.adoc" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "Sample *content*\n")
	}))
	defer srv.Close()

	got, err := LoadFile(context.Background(), srv.URL+"/doc.adoc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("Sample *content*\n", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	_, err = LoadFile(context.Background(), srv.URL+"/missing.adoc")
	if err == nil || !strings.Contains(err.Error(), "unexpected status 404") {
		t.Errorf("got error %v, wanted unexpected status", err)
	}

	res, err := Default().ConvertFile(context.Background(), srv.URL+"/doc.adoc", FileOptions{ToFile: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Path != "" {
		t.Errorf("got path %q, remote documents should not be written", res.Path)
	}
	if diff := cmp.Diff("<p>Sample <em>content</em></p>", res.HTML); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "x")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadFile(ctx, srv.URL); !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, wanted context.Canceled", err)
	}
}

func TestIsURL(t *testing.T) {
	testCases := []struct {
		in   string
		want bool
	}{
		{in: "https://example.com/doc.adoc", want: true},
		{in: "http://localhost:8080/x", want: true},
		{in: "doc.adoc", want: false},
		{in: "/abs/doc.adoc", want: false},
		{in: "file:///tmp/doc.adoc", want: false},
		{in: `C:\docs\doc.adoc`, want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			if got := IsURL(tc.in); got != tc.want {
				t.Errorf("got %v, wanted %v", got, tc.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "semdoc.yaml", strings.Join([]string{
		"standalone: true",
		"title_tag: h6",
		"format: Pretty",
		"seed: 7",
		"attributes:",
		"  highlight-theme: github",
		"  listing-caption: Listing",
		"",
	}, "\n"))

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := DefaultOptions()
	want.Standalone = true
	want.TitleTag = "h6"
	want.Format = format.Indent
	want.Seed = 7
	want.Attributes["highlight-theme"] = "github"
	want.Attributes["listing-caption"] = "Listing"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEmptyAttributes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "semdoc.yaml", "title_tag: h5\nattributes:\n")

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := DefaultOptions()
	want.TitleTag = "h5"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	got.Attributes["lang"] = "fr"
	if got.Attributes["lang"] != "fr" {
		t.Errorf("attributes not writable")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	testCases := map[string]string{
		"bad format": "format: fancy\n",
		"bad yaml":   "attributes: [\n",
	}
	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(name, " ", "_")+".yaml", content)
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("got no error")
			}
		})
	}
}

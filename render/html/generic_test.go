package html

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/iand/semdoc/doc"
)

func TestGenericBlocks(t *testing.T) {
	testCases := []struct {
		name  string
		block *doc.Block
		want  string
	}{
		{
			name:  "heading",
			block: &doc.Block{Kind: doc.KindHeading, Level: 2, ID: "setup", Content: "Setup"},
			want:  `<h2 id="setup">Setup</h2>`,
		},
		{
			name:  "heading level clamped",
			block: &doc.Block{Kind: doc.KindHeading, Level: 9, Content: "Deep"},
			want:  `<h6>Deep</h6>`,
		},
		{
			name:  "thematic break",
			block: &doc.Block{Kind: doc.KindThematicBreak},
			want:  `<hr>`,
		},
		{
			name:  "raw html",
			block: &doc.Block{Kind: doc.KindHTML, Content: `<div class="x">y</div>`},
			want:  `<div class="x">y</div>`,
		},
		{
			name:  "unknown kind",
			block: &doc.Block{Kind: doc.KindUnknown, ID: "u", Roles: []string{"r"}, Content: "?"},
			want:  `<div id="u" class="r unknown">?</div>`,
		},
		{
			name:  "document fragment",
			block: &doc.Block{Kind: doc.KindDocument, Blocks: []*doc.Block{{Kind: doc.KindParagraph, Content: "a"}, {Kind: doc.KindThematicBreak}}},
			want:  "<p>a</p>\n<hr>",
		},
	}

	c := &Converter{Highlighter: fakeHighlighter{}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Convert(tc.block, TransformNone)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenericEnvelope(t *testing.T) {
	d := doc.NewDocument(doc.Attributes{
		{Name: doc.AttrLang, Value: "fr"},
		{Name: doc.AttrStylesheet, Value: "site.css"},
	})
	d.Root.Blocks = []*doc.Block{
		{Kind: doc.KindHeading, Level: 1, Content: "Guide &amp; <em>Notes</em>", Doc: d},
		{Kind: doc.KindUnorderedList, Items: items("a", "b"), Doc: d},
	}

	c := &Converter{Highlighter: fakeHighlighter{}}
	out := c.Convert(d.Root, TransformDocument)

	if !strings.HasPrefix(out, "<!DOCTYPE html>\n") {
		t.Errorf("missing doctype: %q", out)
	}

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	if lang, _ := dom.Find("html").Attr("lang"); lang != "fr" {
		t.Errorf("lang = %q, wanted fr", lang)
	}
	if got := dom.Find("head title").Text(); got != "Guide & Notes" {
		t.Errorf("title = %q", got)
	}
	if href, _ := dom.Find(`head link[rel="stylesheet"]`).Attr("href"); href != "site.css" {
		t.Errorf("stylesheet = %q", href)
	}
	if n := dom.Find("body > ul > li").Length(); n != 2 {
		t.Errorf("got %d list items in body, wanted 2", n)
	}
	if n := dom.Find("body div").Length(); n != 0 {
		t.Errorf("got %d wrapper divs, wanted none", n)
	}
}

func TestGenericEnvelopeDefaults(t *testing.T) {
	d := doc.NewDocument(nil)
	c := &Converter{}
	out := c.Convert(d.Root, TransformDocument)

	if !strings.Contains(out, `<html lang="en">`) {
		t.Errorf("default lang missing: %q", out)
	}
	if strings.Contains(out, "<title>") {
		t.Errorf("untitled document should have no title element: %q", out)
	}
	if strings.Contains(out, "<link") {
		t.Errorf("no stylesheet expected: %q", out)
	}
}

package lorem

import (
	"strings"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
)

func TestParseRange(t *testing.T) {
	testCases := []struct {
		in      string
		want    Range
		wantErr bool
	}{
		{in: "3", want: Range{3, 3}},
		{in: "1-3", want: Range{1, 3}},
		{in: " 4 - 16 ", want: Range{4, 16}},
		{in: "5-2", want: Range{2, 5}},
		{in: "", wantErr: true},
		{in: "a-b", wantErr: true},
		{in: "2-", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRange(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("got no error, wanted one")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRangeString(t *testing.T) {
	if got := Exactly(2).String(); got != "2" {
		t.Errorf("got %q", got)
	}
	if got := (Range{1, 3}).String(); got != "1-3" {
		t.Errorf("got %q", got)
	}
}

func TestPickWithinRange(t *testing.T) {
	g := New(1)
	r := Range{2, 5}
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		n := g.Pick(r)
		if n < r.Min || n > r.Max {
			t.Fatalf("Pick returned %d outside %v", n, r)
		}
		seen[n] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected every value in range to be picked, saw %v", seen)
	}
}

func TestDeterministic(t *testing.T) {
	a := New(42).Paragraphs(Range{1, 3}, Range{2, 4}, Range{4, 16})
	b := New(42).Paragraphs(Range{1, 3}, Range{2, 4}, Range{4, 16})
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different output (-a +b):\n%s", diff)
	}
}

func TestSentence(t *testing.T) {
	g := New(7)
	for i := 0; i < 50; i++ {
		s := g.Sentence(Range{4, 16})
		if !strings.HasSuffix(s, ".") {
			t.Fatalf("sentence does not end with a full stop: %q", s)
		}
		first := []rune(s)[0]
		if !unicode.IsUpper(first) {
			t.Fatalf("sentence not capitalised: %q", s)
		}
		words := strings.Fields(strings.TrimSuffix(s, "."))
		if len(words) < 4 || len(words) > 16 {
			t.Fatalf("sentence has %d words: %q", len(words), s)
		}
		for _, w := range words[max(len(words)-3, 0):] {
			if strings.HasSuffix(w, ",") {
				t.Fatalf("comma among the last three words: %q", s)
			}
		}
		if strings.Contains(s, "  ") || strings.Contains(s, " ,") {
			t.Fatalf("badly spaced sentence: %q", s)
		}
	}
}

func TestParagraphsCount(t *testing.T) {
	ps := New(3).Paragraphs(Exactly(4), Exactly(2), Exactly(5))
	if len(ps) != 4 {
		t.Fatalf("got %d paragraphs, wanted 4", len(ps))
	}
	for _, p := range ps {
		if n := strings.Count(p, "."); n != 2 {
			t.Errorf("got %d sentences, wanted 2: %q", n, p)
		}
	}
}

func TestTitle(t *testing.T) {
	title := New(9).Title(Exactly(3))
	words := strings.Fields(title)
	if len(words) != 3 {
		t.Fatalf("got %d words: %q", len(words), title)
	}
	for _, w := range words {
		if !unicode.IsUpper([]rune(w)[0]) {
			t.Errorf("word not capitalised: %q", w)
		}
	}
}

func TestItems(t *testing.T) {
	items := New(5).Items(Exactly(3), Range{1, 4})
	if len(items) != 3 {
		t.Fatalf("got %d items, wanted 3", len(items))
	}
	for _, it := range items {
		if it == "" || !unicode.IsUpper([]rune(it)[0]) {
			t.Errorf("bad item %q", it)
		}
	}
}

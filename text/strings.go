package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func UpperFirst(s string) string {
	s = strings.TrimFunc(s, unicode.IsSpace)
	if len(s) == 0 {
		return ""
	}

	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func IsBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// NormalizeNewlines converts CRLF and lone CR line terminators to LF.
func NormalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Dedent removes the leading whitespace shared by every non-blank line of s.
// Line terminators are normalized to LF and leading and trailing blank lines
// are dropped. A whitespace-only line shorter than the shared indent is kept
// unchanged. Dedent(Dedent(s)) == Dedent(s).
func Dedent(s string) string {
	lines := strings.Split(NormalizeNewlines(s), "\n")

	for len(lines) > 0 && IsBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && IsBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	indent := -1
	for _, l := range lines {
		if IsBlank(l) {
			continue
		}
		if n := IndentWidth(l); indent < 0 || n < indent {
			indent = n
		}
	}

	if indent <= 0 {
		return strings.Join(lines, "\n")
	}

	for i, l := range lines {
		lines[i] = trimIndent(l, indent)
	}
	return strings.Join(lines, "\n")
}

// IndentWidth returns the number of leading whitespace characters in s.
func IndentWidth(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

func trimIndent(s string, n int) string {
	if utf8.RuneCountInString(s) < n {
		return s
	}
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}

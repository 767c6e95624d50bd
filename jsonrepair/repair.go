// Package jsonrepair attempts best-effort recovery of malformed JSON text
// returned by the vendor API. Repair runs an ordered pipeline of pure
// string-to-string attempts, each followed by a reparse, short-circuiting on
// the first string that parses. The regex patches at the end target one
// specific malformation observed in production responses and are
// deliberately narrow; inputs outside those patterns come back as the
// original string so the caller's normal parse failure surfaces.
package jsonrepair

import (
	"encoding/json"
	"regexp"
	"strings"
)

// repairs are alternative structural fixes. Each one starts from the
// cleaned string, not from another repair's failed output, so a wrong
// guess by one attempt cannot poison the next.
var repairs = []func(string) string{
	balanceClosers,
	patchObservedMalformation,
}

// Repair returns input unchanged when it already parses. Otherwise it
// normalizes the text (invisible characters, line endings, whitespace runs
// between structural characters) and then tries each structural repair in
// order, returning the first candidate that parses as JSON. If nothing
// parses, the original input is returned verbatim.
func Repair(input string) string {
	if json.Valid([]byte(input)) {
		return input
	}

	cleaned := stripInvisible(input)
	if json.Valid([]byte(cleaned)) {
		return cleaned
	}

	cleaned = collapseStructuralWhitespace(cleaned)
	if json.Valid([]byte(cleaned)) {
		return cleaned
	}

	for _, repair := range repairs {
		if candidate := repair(cleaned); json.Valid([]byte(candidate)) {
			return candidate
		}
	}
	return input
}

// stripInvisible removes BOM and zero-width characters and normalizes line
// endings to \n.
func stripInvisible(s string) string {
	s = strings.NewReplacer(
		"\uFEFF", "",
		"\u200B", "",
		"\u200C", "",
		"\u200D", "",
		"\r\n", "\n",
		"\r", "\n",
	).Replace(s)
	return strings.TrimSpace(s)
}

var structuralGap = regexp.MustCompile(`([{}\[\],:])\s+([{}\[\],:])`)

// collapseStructuralWhitespace removes whitespace runs sitting between two
// JSON structural characters. String contents are untouched because the
// pattern requires structural characters on both sides of the gap.
func collapseStructuralWhitespace(s string) string {
	for {
		collapsed := structuralGap.ReplaceAllString(s, "$1$2")
		if collapsed == s {
			return s
		}
		s = collapsed
	}
}

// balanceClosers balances brace/bracket counts at the end of the string:
// unclosed openers get closers appended in nesting order, surplus closers
// are trimmed from the tail. Only the string end is touched.
func balanceClosers(s string) string {
	var stack []byte
	surplus := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				surplus++
				continue
			}
			open := stack[len(stack)-1]
			if (c == '}' && open == '{') || (c == ']' && open == '[') {
				stack = stack[:len(stack)-1]
			} else {
				surplus++
			}
		}
	}

	if surplus > 0 {
		trimmed := strings.TrimRight(s, " \t\n")
		for surplus > 0 && len(trimmed) > 0 {
			last := trimmed[len(trimmed)-1]
			if last != '}' && last != ']' {
				break
			}
			trimmed = strings.TrimRight(trimmed[:len(trimmed)-1], " \t\n")
			surplus--
		}
		return trimmed
	}

	if len(stack) > 0 {
		var closers strings.Builder
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] == '{' {
				closers.WriteByte('}')
			} else {
				closers.WriteByte(']')
			}
		}
		return strings.TrimRight(s, " \t\n") + closers.String()
	}

	return s
}

var (
	// overclosedProperties matches a flat "properties" object followed by
	// one surplus closing brace before the next structural character. This
	// is the exact malformation seen in schema-generation responses; it is
	// not a general fix and must stay this narrow.
	overclosedProperties = regexp.MustCompile(`("properties"\s*:\s*\{[^{}]*\})\}(\s*[,}\]])`)

	// braceRun reduces runs of three or more closing braces to two, the
	// companion patch for the same malformation.
	braceRun = regexp.MustCompile(`\}{3,}`)
)

func patchObservedMalformation(s string) string {
	s = overclosedProperties.ReplaceAllString(s, "$1$2")
	return braceRun.ReplaceAllString(s, "}}")
}

package cliutil

import (
	"strings"
)

// Wrap the string `s` to a maximum width `w`.  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// Wrap the string `s` to a maximum width `w` with leading indent `i`.  The first line is not
// indented (this is assumed to be done by caller).  Pass `w` == 0 to do no wrapping
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

func wrap(i, w int, s string) string {
	if w == 0 {
		return s
	}
	limit := w - 5
	indent := strings.Repeat(" ", i)
	var out []string
	for _, in := range strings.Split(s, "\n") {
		var line strings.Builder
		lineLen := i
		hasWord := false
		rest := in
		for rest != "" {
			// Take the next word, plus the run of spaces that follows it; runs of
			// spaces (such as double spaces after sentences) are preserved except
			// at line breaks.
			var word, space string
			if sp := strings.IndexByte(rest, ' '); sp < 0 {
				word, rest = rest, ""
			} else {
				word = rest[:sp]
				rest = rest[sp:]
				n := len(rest) - len(strings.TrimLeft(rest, " "))
				space, rest = rest[:n], rest[n:]
			}
			if hasWord && lineLen+len(word) >= limit {
				out = append(out, strings.TrimRight(line.String(), " "))
				line.Reset()
				line.WriteString(indent)
				lineLen = i
			}
			line.WriteString(word)
			line.WriteString(space)
			lineLen += len(word) + len(space)
			hasWord = true
		}
		out = append(out, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(out, "\n")
}

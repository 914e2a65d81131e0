// Package redact keeps classified user text out of log output. Log lines may
// describe what happened to a piece of text, but never quote it beyond a
// short, sanitized snippet.
package redact

import (
	"fmt"
	"log"
	"strings"
	"unicode"
)

// snippetRunes is the most of a user string a log line may carry.
const snippetRunes = 24

// Snippet returns a short, log-safe preview of user text: control characters
// and whitespace collapsed, truncated to a fixed budget with the original
// length appended.
func Snippet(s string) string {
	if s == "" {
		return `""`
	}

	var b strings.Builder
	count := 0
	truncated := false
	for _, r := range s {
		if count >= snippetRunes {
			truncated = true
			break
		}
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			r = ' '
		}
		b.WriteRune(r)
		count++
	}

	out := strings.Join(strings.Fields(b.String()), " ")
	if truncated {
		return fmt.Sprintf("%q… (%d chars)", out, len(s))
	}
	return fmt.Sprintf("%q", out)
}

// Sprintf formats like fmt.Sprintf with log-unsafe characters scrubbed from
// the result, so interpolated values cannot split log lines.
func Sprintf(format string, args ...interface{}) string {
	s := fmt.Sprintf(format, args...)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Logf prints a scrubbed log line.
func Logf(format string, args ...interface{}) {
	log.Print(Sprintf(format, args...))
}

// Fatalf prints a scrubbed fatal log line.
func Fatalf(format string, args ...interface{}) {
	log.Fatal(Sprintf(format, args...))
}

package protocol

import "strings"

const escapeChar = '\\'

// Escape prefixes every separator in seps, and the escape character itself, with a backslash.
func Escape(s string, seps ...byte) string {
	if !needsEscape(s, seps) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == escapeChar || isSep(c, seps) {
			b.WriteByte(escapeChar)
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Unescape removes one level of backslash escaping.
func Unescape(s string) string {
	if strings.IndexByte(s, escapeChar) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == escapeChar && i+1 < len(s) {
			i++
			c = s[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}

// SplitEscaped splits s on every unescaped sep. Escapes are kept in the parts.
func SplitEscaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case escapeChar:
			i++
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func needsEscape(s string, seps []byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == escapeChar || isSep(s[i], seps) {
			return true
		}
	}
	return false
}

func isSep(c byte, seps []byte) bool {
	for _, sep := range seps {
		if c == sep {
			return true
		}
	}
	return false
}

package kindalang

import "strings"

// maskStrings blanks the contents of quoted regions (single, double and
// backtick quotes, with backslash escapes) so that operator scans do not
// trip over operator characters inside string literals. The returned
// text has the same length as the input.
func maskStrings(s string) string {
	out := []byte(s)
	var quote byte
	escaped := false
	for i := 0; i < len(out); i++ {
		c := out[i]
		if quote != 0 {
			if escaped {
				escaped = false
				out[i] = ' '
				continue
			}
			if c == '\\' && quote != '`' {
				escaped = true
				out[i] = ' '
				continue
			}
			if c == quote {
				quote = 0
				continue
			}
			out[i] = ' '
			continue
		}
		if c == '\'' || c == '"' || c == '`' {
			quote = c
		}
	}
	return string(out)
}

func containsAnyOutside(s string, ops ...string) bool {
	masked := maskStrings(s)
	for _, op := range ops {
		if strings.Contains(masked, op) {
			return true
		}
	}
	return false
}

func hasPrefixAny(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// indentWidth counts leading spaces and tabs.
func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

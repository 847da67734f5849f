package kindalang

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Kinda-lang-dev/kinda-lang/grammar"
)

// The inline composer rewrites ~ish and ~welp sub-expressions embedded in
// a line that is not (or not entirely) a header construct. Replacements
// are applied right to left so earlier byte offsets stay valid.

type inlineMatch struct {
	name   string
	groups []string
	start  int
	end    int
}

func findIshMatches(line string) []inlineMatch {
	var matches []inlineMatch

	taken := func(s, e int) bool {
		for _, m := range matches {
			if s < m.end && e > m.start {
				return true
			}
		}
		return false
	}

	add := func(name string, re *regexp.Regexp) {
		for _, idx := range re.FindAllStringSubmatchIndex(line, -1) {
			s, e := idx[0], idx[1]
			if taken(s, e) {
				continue
			}
			var groups []string
			for gi := 1; gi*2 < len(idx); gi++ {
				if idx[gi*2] < 0 {
					groups = append(groups, "")
				} else {
					groups = append(groups, line[idx[gi*2]:idx[gi*2+1]])
				}
			}
			matches = append(matches, inlineMatch{name: name, groups: groups, start: s, end: e})
		}
	}

	// The combined form first so `a ~ish 42~ish` is matched as one unit.
	add(grammar.IshComparisonValueDef.Name, grammar.IshComparisonValueDef.Pattern)
	add(grammar.IshValue, grammar.IshValueDef.Pattern)
	add(grammar.IshComparison, grammar.IshComparisonDef.Pattern)

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})
	return matches
}

func (t *Transformer) compose(line string) string {
	return t.composeWelp(t.composeIsh(line))
}

func (t *Transformer) composeIsh(line string) string {
	return t.composeIshIn(line, false)
}

// composeIshCond composes a conditional header's condition, where a
// bare `a ~ish b` is always a comparison.
func (t *Transformer) composeIshCond(line string) string {
	return t.composeIshIn(line, true)
}

func (t *Transformer) composeIshIn(line string, cond bool) string {
	matches := findIshMatches(line)
	if len(matches) == 0 {
		return line
	}

	out := line
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		var replacement string

		switch m.name {

		case grammar.IshValue:
			if len(m.groups) < 1 || m.groups[0] == "" {
				continue // malformed match, keep the original span
			}
			t.mark(grammar.IshValue)
			replacement = fmt.Sprintf("ish_value(%s)", m.groups[0])

		case grammar.IshComparison:
			if len(m.groups) < 2 || m.groups[0] == "" || m.groups[1] == "" {
				continue
			}
			left, right := m.groups[0], m.groups[1]
			if !cond && t.ishAssignmentContext(line, left, right) {
				t.mark(grammar.IshValue)
				replacement = fmt.Sprintf("%s = ish_value(%s)", left, right)
			} else {
				t.mark(grammar.IshComparison)
				replacement = fmt.Sprintf("ish_comparison(%s, %s)", left, right)
			}

		case grammar.IshComparisonValueDef.Name:
			if len(m.groups) < 2 || m.groups[0] == "" || m.groups[1] == "" {
				continue
			}
			t.mark(grammar.IshComparison)
			t.mark(grammar.IshValue)
			replacement = fmt.Sprintf("ish_comparison(%s, ish_value(%s))", m.groups[0], m.groups[1])

		default:
			continue
		}

		out = out[:m.start] + replacement + out[m.end:]
	}
	return out
}

// ishAssignmentContext decides whether `left ~ish right` rebinds left to a
// fuzzed value or compares the two. A bare statement with no surrounding
// operators is an assignment; anything that looks like part of a larger
// expression or a conditional is a comparison. The tie breaks toward
// assignment when no operators are present. Operator scans skip string
// literals.
func (t *Transformer) ishAssignmentContext(line, left, right string) bool {
	stripped := strings.TrimSpace(line)

	standalone := !containsAnyOutside(stripped,
		"+", "-", "*", "/", "=", "(", ")", "[", "]", ",")
	if !standalone {
		re, err := regexp.Compile(`^` + regexp.QuoteMeta(left) + `\s*~ish\s+` + regexp.QuoteMeta(right) + `$`)
		if err == nil && re.MatchString(stripped) {
			standalone = true
		}
	}

	conditional := hasPrefixAny(stripped, "if ", "elif ", "while ") ||
		containsAnyOutside(stripped, " if ", " and ", " or ") ||
		containsAnyOutside(stripped,
			"+", "-", "*", "/", "==", "!=", "<", ">", "<=", ">=")

	return standalone && !conditional
}

const welpOp = "~welp"

// findWelpSpan locates the rightmost ~welp operator and the expression
// span around it: the primary side extends left to the start of the
// enclosing expression (an assignment, an opening bracket or a comma),
// the fallback side right to its end. Scanning is done on a
// string-masked copy so operators inside literals are ignored.
func findWelpSpan(line string) (start, opIdx, end int, ok bool) {
	masked := maskStrings(line)
	opIdx = strings.LastIndex(masked, welpOp)
	if opIdx < 0 {
		return 0, 0, 0, false
	}

	start = 0
	depth := 0
left:
	for i := opIdx - 1; i >= 0; i-- {
		switch masked[i] {
		case ')', ']':
			depth++
		case '(', '[':
			if depth == 0 {
				start = i + 1
				break left
			}
			depth--
		case ',', '=', ':':
			if depth == 0 {
				start = i + 1
				break left
			}
		}
	}
	for start < opIdx && masked[start] == ' ' {
		start++
	}
	// a leading control-flow keyword stays outside the wrapped span,
	// so `if x ~welp 0:` keeps its header shape
	for _, kw := range blockKeywords {
		if strings.HasPrefix(masked[start:opIdx], kw+" ") {
			start += len(kw) + 1
			for start < opIdx && masked[start] == ' ' {
				start++
			}
			break
		}
	}

	end = len(line)
	depth = 0
right:
	for j := opIdx + len(welpOp); j < len(masked); j++ {
		switch masked[j] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth == 0 {
				end = j
				break right
			}
			depth--
		case ',', ';', '#', '{', '}', ':':
			if depth == 0 {
				end = j
				break right
			}
		}
	}

	return start, opIdx, end, true
}

func (t *Transformer) composeWelp(line string) string {
	for {
		start, opIdx, end, ok := findWelpSpan(line)
		if !ok {
			return line
		}
		primary := strings.TrimSpace(line[start:opIdx])
		fallback := strings.TrimSpace(line[opIdx+len(welpOp) : end])
		if primary == "" || fallback == "" {
			return line
		}

		// Both sides go back through the composer so nested constructs
		// resolve before the wrapper is emitted.
		primary = t.composeWelp(t.composeIsh(primary))
		fallback = t.composeWelp(t.composeIsh(fallback))

		t.mark(grammar.WelpFallback)
		line = line[:start] +
			fmt.Sprintf("welp_fallback(lambda: %s, %s)", primary, fallback) +
			line[end:]
	}
}

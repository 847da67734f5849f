package kindalang

import (
	"fmt"
	"strings"

	"github.com/Kinda-lang-dev/kinda-lang/grammar"
)

// complexExpr reports whether a fallback-header side contains structure
// (calls, arithmetic, assignment, indexing). Such lines are handed back
// to the inline composer, which understands expression boundaries; the
// anchored header pattern is too greedy for them.
func complexExpr(s string) bool {
	return containsAnyOutside(s, "(", ")", "+", "-", "*", "/", "=", "[", "]")
}

var blockKeywords = []string{
	"if", "elif", "else", "while", "for", "def",
	"return", "break", "continue", "pass", "load",
}

func startsWithBlockKeyword(s string) bool {
	for _, kw := range blockKeywords {
		if strings.HasPrefix(s, kw+" ") || s == kw {
			return true
		}
	}
	return false
}

// transformLine rewrites a single line. Indentation is preserved; the
// construct match runs on the trimmed text. Lines without constructs
// pass through byte-identical.
func (t *Transformer) transformLine(line string) string {
	stripped := strings.TrimSpace(line)
	if stripped == "" || strings.HasPrefix(stripped, "#") {
		return line
	}

	m := grammar.MatchHeader(stripped)

	// A fallback header whose sides carry expression structure is not a
	// header at all; the composer rewrites the embedded span instead.
	if m != nil && m.Def.Name == grammar.Welp {
		primary := strings.TrimSpace(m.Groups[0])
		fallback := strings.TrimSpace(m.Groups[1])
		if complexExpr(primary) || complexExpr(fallback) ||
			startsWithBlockKeyword(primary) ||
			strings.HasSuffix(fallback, ":") || strings.HasSuffix(fallback, "{") {
			m = nil
		}
	}

	if m == nil {
		return t.compose(line)
	}

	groups := m.Groups
	if m.Def.Kind != grammar.KindImport {
		// Captured groups are expressions; nested inline constructs in
		// them resolve before the header is emitted. The fallback header
		// only composes its fallback side, the primary becomes a lambda
		// body as written.
		for i := range groups {
			if groups[i] == "" {
				continue
			}
			if m.Def.Name == grammar.Welp {
				if i == 1 {
					groups[i] = t.composeIsh(groups[i])
				}
				continue
			}
			if m.Def.Kind == grammar.KindConditional {
				groups[i] = t.composeWelp(t.composeIshCond(groups[i]))
				continue
			}
			groups[i] = t.compose(groups[i])
		}
	}

	var transformed string
	switch m.Def.Name {

	case grammar.KindaInt:
		t.mark(grammar.KindaInt)
		transformed = fmt.Sprintf("%s = kinda_int(%s)", groups[0], strings.TrimSpace(groups[1]))

	case grammar.KindaBinary:
		t.mark(grammar.KindaBinary)
		if probs := strings.TrimSpace(groups[1]); probs != "" {
			transformed = fmt.Sprintf("%s = kinda_binary(%s)", groups[0], probs)
		} else {
			transformed = fmt.Sprintf("%s = kinda_binary()", groups[0])
		}

	case grammar.KindaImport:
		t.mark(grammar.KindaImport)
		module, alias := groups[0], groups[1]
		if alias != "" {
			transformed = fmt.Sprintf("%s = kinda_import('%s', alias='%s')", alias, module, alias)
		} else {
			transformed = fmt.Sprintf("%s = kinda_import('%s')", bindName(module), module)
		}

	case grammar.MaybeImport:
		t.mark(grammar.MaybeImport)
		module, alias := groups[0], groups[1]
		fallback := strings.TrimSpace(groups[2])
		target := alias
		if target == "" {
			target = bindName(module)
		}
		switch {
		case alias != "" && fallback != "":
			transformed = fmt.Sprintf("%s = maybe_import('%s', alias='%s', fallback_module='%s')",
				target, module, alias, fallback)
		case alias != "":
			transformed = fmt.Sprintf("%s = maybe_import('%s', alias='%s')", target, module, alias)
		case fallback != "":
			transformed = fmt.Sprintf("%s = maybe_import('%s', fallback_module='%s')", target, module, fallback)
		default:
			transformed = fmt.Sprintf("%s = maybe_import('%s')", target, module)
		}

	case grammar.SortaPrint:
		t.mark(grammar.SortaPrint)
		transformed = fmt.Sprintf("sorta_print(%s)", groups[0])

	case grammar.Sometimes:
		t.mark(grammar.Sometimes)
		transformed = fmt.Sprintf("if sometimes(%s):", strings.TrimSpace(groups[0]))

	case grammar.Maybe:
		t.mark(grammar.Maybe)
		transformed = fmt.Sprintf("if maybe(%s):", strings.TrimSpace(groups[0]))

	case grammar.FuzzyReassign:
		t.mark(grammar.FuzzyAssign)
		transformed = fmt.Sprintf("%s = fuzzy_assign('%s', %s)", groups[0], groups[0], strings.TrimSpace(groups[1]))

	case grammar.Welp:
		t.mark(grammar.WelpFallback)
		transformed = fmt.Sprintf("welp_fallback(lambda: %s, %s)",
			strings.TrimSpace(groups[0]), strings.TrimSpace(groups[1]))

	default:
		return t.compose(line)
	}

	return strings.Replace(line, stripped, transformed, 1)
}

// bindName is the variable an unaliased import binds: the final dotted
// segment.
func bindName(module string) string {
	if i := strings.LastIndex(module, "."); i >= 0 {
		return module[i+1:]
	}
	return module
}

func isConditionalHeader(stripped string) bool {
	if strings.HasPrefix(stripped, "~maybe import") {
		return false
	}
	return strings.HasPrefix(stripped, "~sometimes") || strings.HasPrefix(stripped, "~maybe")
}

func (t *Transformer) validateConditional(stripped string, lineNo int) error {
	if !strings.Contains(stripped, "(") {
		name := "~sometimes"
		if strings.HasPrefix(stripped, "~maybe") {
			name = "~maybe"
		}
		return parseErrorf(t.path, lineNo, stripped,
			"%s needs parentheses. Try: %s() or %s(condition)", name, name, name)
	}
	if !strings.Contains(stripped, ")") {
		return parseErrorf(t.path, lineNo, stripped,
			"missing closing parenthesis in %s", strings.Fields(stripped)[0])
	}
	return nil
}

// warnAboutLine flags lines that look like a construct missing its ~
// sigil. They pass through untouched; the warning is advisory.
func (t *Transformer) warnAboutLine(stripped string, lineNo int) {
	if stripped == "" || strings.HasPrefix(stripped, "#") || strings.HasPrefix(stripped, "~") {
		return
	}
	switch {
	case strings.Contains(stripped, "sorta print"):
		t.logger.Warn("did you mean ~sorta print?",
			"line", lineNo, "text", stripped)
	case strings.Contains(stripped, "kinda"):
		t.logger.Warn("did you mean ~kinda? constructs need a leading ~",
			"line", lineNo, "text", stripped)
	case strings.Contains(stripped, "sometimes"), strings.Contains(stripped, "maybe"):
		t.logger.Warn("did you mean ~sometimes / ~maybe?",
			"line", lineNo, "text", stripped)
	}
}

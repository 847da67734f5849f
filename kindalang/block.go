package kindalang

import (
	"strings"
)

// Conditional headers open one of two block forms. The brace form
// (`~sometimes (c) {`) encloses its body in { }; the braces disappear
// and the body is re-emitted under the emitted `if` header, rebased
// onto the target indent with each line's indent kept relative to the
// first body line. The indentation form uses deeper indentation,
// Starlark-style, and is passed through with each body line
// transformed in place.

// processBraceBlock consumes lines[i:] as the body of a brace block
// whose header was already emitted, appends the transformed body to
// out, and returns the index after the closing brace. Nested brace
// headers recurse with one more level of indent; indentation-style
// headers nest through the preserved relative indent. Braces opened
// by multi-line literals are counted so their closing } stays inside
// the block. An unclosed block is a hard parse error.
func (t *Transformer) processBraceBlock(lines []string, i int, out *[]string, indent string) (int, error) {
	openLine := i // header is the line before lines[i]
	base := -1
	depth := 0
	for i < len(lines) {
		line := lines[i]
		stripped := strings.TrimSpace(line)

		if stripped == "" {
			*out = append(*out, "")
			i++
			continue
		}

		if base < 0 {
			base = indentWidth(line)
		}
		pad := indentWidth(line) - base
		if pad < 0 {
			pad = 0
		}
		prefix := indent + strings.Repeat(" ", pad)

		if stripped == "}" {
			if depth > 0 {
				depth--
				*out = append(*out, prefix+"}")
				i++
				continue
			}
			return i + 1, nil
		}

		if isConditionalHeader(stripped) {
			if err := t.validateConditional(stripped, i+1); err != nil {
				return 0, err
			}
			if strings.HasSuffix(stripped, "{") {
				*out = append(*out, prefix+strings.TrimSpace(t.transformLine(stripped)))
				next, err := t.processBraceBlock(lines, i+1, out, prefix+"    ")
				if err != nil {
					return 0, err
				}
				i = next
				continue
			}
			// indentation-style header, its body nests through the
			// relative indent
		}

		*out = append(*out, prefix+strings.TrimSpace(t.transformLine(stripped)))
		if strings.HasSuffix(stripped, "{") {
			// a literal spanning lines, its } must not close the block
			depth++
		}
		i++
	}

	headerNo := openLine // 1-based line number of the header
	headerText := ""
	if openLine > 0 {
		headerText = strings.TrimSpace(lines[openLine-1])
	}
	return 0, parseErrorf(t.path, headerNo, headerText,
		"this block is never closed - add a matching }")
}

// processIndentBlock consumes the indented body under a conditional
// header written in indentation style. Body lines are transformed in
// place, indentation preserved; the block ends at the first non-blank
// line indented at or below the header.
func (t *Transformer) processIndentBlock(lines []string, i int, out *[]string, header string) int {
	headerIndent := indentWidth(header)
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			*out = append(*out, "")
			i++
			continue
		}
		if indentWidth(line) <= headerIndent {
			return i
		}
		*out = append(*out, t.transformLine(line))
		i++
	}
	return i
}

package kindalang

import (
	"fmt"
	"strings"
)

// ParseError is the single structured error for transform-time failures.
// It carries enough context to point at the offending line without the
// caller re-reading the source.
type ParseError struct {
	Msg  string
	Line int // 1-based, 0 when unknown
	Text string
	Path string
}

func (e *ParseError) Error() string {
	location := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		location = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[?] kinda parse error at %s:\n", location)
	fmt.Fprintf(&sb, "  %3d | %s\n", e.Line, e.Text)
	fmt.Fprintf(&sb, "[tip] %s", e.Msg)
	return sb.String()
}

func parseErrorf(path string, line int, text string, format string, args ...any) *ParseError {
	return &ParseError{
		Msg:  fmt.Sprintf(format, args...),
		Line: line,
		Text: text,
		Path: path,
	}
}

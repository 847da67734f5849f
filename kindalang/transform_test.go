package kindalang

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func transform(t *testing.T, src string) *Result {
	t.Helper()
	res, err := New("test.knda", nil).TransformSource(src)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestEmission(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"~kinda int x = 42", "x = kinda_int(42)"},
		{"~kinda int counter ~= 10;", "counter = kinda_int(10)"},
		{"x ~= x + 1", "x = fuzzy_assign('x', x + 1)"},
		{`~sorta print("hi", x)`, `sorta_print("hi", x)`},
		{"~sorta print()", "sorta_print()"},
		{"~kinda binary b", "b = kinda_binary()"},
		{"~kinda binary b ~ probabilities(0.4, 0.4, 0.2)", "b = kinda_binary(0.4, 0.4, 0.2)"},
		{"~kinda import math", "math = kinda_import('math')"},
		{"~kinda import math as m", "m = kinda_import('math', alias='m')"},
		{"~maybe import json as j", "j = maybe_import('json', alias='j')"},
		{"~maybe import json as j ~welp math", "j = maybe_import('json', alias='j', fallback_module='math')"},
		{"~maybe import json ~welp math", "json = maybe_import('json', fallback_module='math')"},
		{"x ~welp 5", "welp_fallback(lambda: x, 5)"},
		{"x = 42~ish", "x = ish_value(42)"},
		{"x ~ish 5", "x = ish_value(5)"},
		{"if x ~ish 5:", "if ish_comparison(x, 5):"},
		{"a ~ish 42~ish", "ish_comparison(a, ish_value(42))"},
		{"total = compute() ~welp 0", "total = welp_fallback(lambda: compute(), 0)"},
	}
	for _, c := range cases {
		res := transform(t, c.in+"\n")
		if got := strings.TrimSuffix(res.Body, "\n"); got != c.want {
			t.Fatalf("%q: got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPassThrough(t *testing.T) {
	src := `x = 1 + 2
def foo(a):
    return a * 2
# a comment with kinda in it
print(foo(x))
`
	res := transform(t, src)
	if res.Body != src {
		t.Fatalf("got %q", res.Body)
	}
	if res.Output != src {
		t.Fatalf("got %q", res.Output)
	}
	if len(res.Helpers) != 0 {
		t.Fatalf("got %v", res.Helpers)
	}
}

func TestLoadHeader(t *testing.T) {
	res := transform(t, "~kinda int x = 1\n~sorta print(x)\n")
	wantHelpers := []string{"kinda_int", "sorta_print"}
	if len(res.Helpers) != 2 || res.Helpers[0] != wantHelpers[0] || res.Helpers[1] != wantHelpers[1] {
		t.Fatalf("got %v", res.Helpers)
	}
	wantHeader := `load("fuzzy.star", "kinda_int", "sorta_print")` + "\n\n"
	if !strings.HasPrefix(res.Output, wantHeader) {
		t.Fatalf("got %q", res.Output)
	}
	if res.Output != wantHeader+res.Body {
		t.Fatalf("got %q", res.Output)
	}
}

func TestBraceBlock(t *testing.T) {
	src := `~sometimes (x > 0) {
    ~sorta print(x)
}
`
	want := `if sometimes(x > 0):
    sorta_print(x)
`
	res := transform(t, src)
	if res.Body != want {
		t.Fatalf("got %q", res.Body)
	}
}

func TestNestedBraceBlocks(t *testing.T) {
	src := `~sometimes (a) {
    ~maybe (b) {
        ~sorta print(1)
    }
    ~sorta print(2)
}
~sorta print(3)
`
	want := `if sometimes(a):
    if maybe(b):
        sorta_print(1)
    sorta_print(2)
sorta_print(3)
`
	res := transform(t, src)
	if res.Body != want {
		t.Fatalf("got %q", res.Body)
	}
}

func TestBraceBlockWithDictLiteral(t *testing.T) {
	src := `~sometimes (x) {
    d = {
        "a": 1,
    }
    ~sorta print(d)
}
`
	want := `if sometimes(x):
    d = {
        "a": 1,
    }
    sorta_print(d)
`
	res := transform(t, src)
	if res.Body != want {
		t.Fatalf("got %q", res.Body)
	}
}

func TestMixedStyleNesting(t *testing.T) {
	src := `~sometimes (a) {
    ~maybe (b):
        ~sorta print(1)
    ~sorta print(2)
}
`
	want := `if sometimes(a):
    if maybe(b):
        sorta_print(1)
    sorta_print(2)
`
	res := transform(t, src)
	if res.Body != want {
		t.Fatalf("got %q", res.Body)
	}
}

func TestIndentBlock(t *testing.T) {
	src := `~maybe (x > 0):
    ~sorta print(x)
    x ~= x + 1
z = 1
`
	want := `if maybe(x > 0):
    sorta_print(x)
    x = fuzzy_assign('x', x + 1)
z = 1
`
	res := transform(t, src)
	if res.Body != want {
		t.Fatalf("got %q", res.Body)
	}
}

func TestUnclosedBraceBlock(t *testing.T) {
	src := `~sometimes (x) {
    y = 1
`
	_, err := New("test.knda", nil).TransformSource(src)
	if err == nil {
		t.Fatal("want error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %T", err)
	}
	if !strings.Contains(err.Error(), "never closed") {
		t.Fatalf("got %q", err.Error())
	}
	if parseErr.Line != 1 {
		t.Fatalf("got line %d", parseErr.Line)
	}
}

func TestConditionalValidation(t *testing.T) {
	_, err := New("test.knda", nil).TransformSource("~sometimes x > 0 {\n}\n")
	if err == nil || !strings.Contains(err.Error(), "needs parentheses") {
		t.Fatalf("got %v", err)
	}

	_, err = New("test.knda", nil).TransformSource("~maybe (x > 0 {\n}\n")
	if err == nil || !strings.Contains(err.Error(), "closing parenthesis") {
		t.Fatalf("got %v", err)
	}

	// ~maybe import is not a conditional
	res := transform(t, "~maybe import math\n")
	if !strings.Contains(res.Body, "maybe_import('math')") {
		t.Fatalf("got %q", res.Body)
	}
}

func TestRightToLeftComposition(t *testing.T) {
	res := transform(t, "a = 10~ish + 20~ish\n")
	want := "a = ish_value(10) + ish_value(20)\n"
	if res.Body != want {
		t.Fatalf("got %q", res.Body)
	}
}

func TestNestedWelp(t *testing.T) {
	res := transform(t, "value = risky() ~welp backup() ~welp 0\n")
	want := "value = welp_fallback(lambda: welp_fallback(lambda: risky(), backup()), 0)\n"
	if res.Body != want {
		t.Fatalf("got %q", res.Body)
	}
}

func TestWelpInsideCall(t *testing.T) {
	res := transform(t, "total = add(compute() ~welp 0, 1)\n")
	want := "total = add(welp_fallback(lambda: compute(), 0), 1)\n"
	if res.Body != want {
		t.Fatalf("got %q", res.Body)
	}
}

func TestWelpInControlFlowLine(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"if x ~welp 0:", "if welp_fallback(lambda: x, 0):"},
		{"while risky() ~welp False:", "while welp_fallback(lambda: risky(), False):"},
		{"return compute() ~welp 0", "return welp_fallback(lambda: compute(), 0)"},
	}
	for _, c := range cases {
		res := transform(t, c.in+"\n")
		if got := strings.TrimSuffix(res.Body, "\n"); got != c.want {
			t.Fatalf("%q: got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStringLiteralsUntouched(t *testing.T) {
	src := `msg = "use x ~welp y for fallbacks"
`
	res := transform(t, src)
	if res.Body != src {
		t.Fatalf("got %q", res.Body)
	}
}

func TestConditionWithInlineConstruct(t *testing.T) {
	src := `~sometimes (y ~ish 10) {
    ~sorta print("close")
}
`
	want := `if sometimes(ish_comparison(y, 10)):
    sorta_print("close")
`
	res := transform(t, src)
	if res.Body != want {
		t.Fatalf("got %q", res.Body)
	}
}

func TestTrailingComment(t *testing.T) {
	res := transform(t, "~kinda int x = 42  # the answer\n")
	if got := strings.TrimSuffix(res.Body, "\n"); got != "x = kinda_int(42)" {
		t.Fatalf("got %q", got)
	}
}

func TestIndentationPreserved(t *testing.T) {
	src := `def f():
    ~sorta print("in function")
`
	want := `def f():
    sorta_print("in function")
`
	res := transform(t, src)
	if res.Body != want {
		t.Fatalf("got %q", res.Body)
	}
}

func TestNearMissWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	_, err := New("test.knda", logger).TransformSource(
		"x = kinda_int(1)\n    sometimes(x > 0)\ny = 1\n")
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "did you mean ~kinda") {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(out, "~sometimes / ~maybe") {
		t.Fatalf("got %q", out)
	}
}

func TestOutputName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"demo.star.knda", "demo.star"},
		{"demo.knda", "demo.star"},
	}
	for _, c := range cases {
		if got := OutputName(c.in); got != c.want {
			t.Fatalf("%q: got %q", c.in, got)
		}
	}
}

func TestTransformTree(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "build")

	err := os.WriteFile(
		filepath.Join(srcDir, "a.star.knda"),
		[]byte("~kinda int x = 1\n"),
		0o644,
	)
	if err != nil {
		t.Fatal(err)
	}
	err = os.MkdirAll(filepath.Join(srcDir, "sub"), 0o755)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(
		filepath.Join(srcDir, "sub", "b.star.knda"),
		[]byte("~sorta print(1)\n"),
		0o644,
	)
	if err != nil {
		t.Fatal(err)
	}

	written, err := TransformTree(srcDir, outDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 3 {
		t.Fatalf("got %v", written)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "a.star"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "x = kinda_int(1)") {
		t.Fatalf("got %q", content)
	}

	runtime, err := os.ReadFile(filepath.Join(outDir, RuntimeModule))
	if err != nil {
		t.Fatal(err)
	}
	// only the helpers the tree uses
	if !strings.Contains(string(runtime), "def kinda_int") {
		t.Fatal("missing kinda_int")
	}
	if !strings.Contains(string(runtime), "def sorta_print") {
		t.Fatal("missing sorta_print")
	}
	if strings.Contains(string(runtime), "def welp_fallback") {
		t.Fatal("unexpected welp_fallback")
	}
}

func TestTransformFileFailureWritesNothing(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "build")
	src := filepath.Join(srcDir, "bad.star.knda")
	if err := os.WriteFile(src, []byte("~sometimes (x) {\ny = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := TransformTree(src, outDir, nil)
	if err == nil {
		t.Fatal("want error")
	}
	if _, err := os.Stat(filepath.Join(outDir, "bad.star")); !os.IsNotExist(err) {
		t.Fatal("partial output written")
	}
}

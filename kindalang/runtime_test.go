package kindalang

import (
	"strings"
	"testing"

	"github.com/Kinda-lang-dev/kinda-lang/grammar"
)

func TestGenerateRuntimeSelective(t *testing.T) {
	src := GenerateRuntime([]string{"sorta_print"})
	if !strings.Contains(src, "def sorta_print") {
		t.Fatal("missing sorta_print")
	}
	if !strings.Contains(src, "def _shrug") {
		t.Fatal("missing shared dep _shrug")
	}
	if strings.Contains(src, "def kinda_int") {
		t.Fatal("unexpected kinda_int")
	}
}

func TestGenerateRuntimeDeterministic(t *testing.T) {
	a := GenerateRuntime([]string{"kinda_int", "sorta_print", "welp_fallback"})
	b := GenerateRuntime([]string{"welp_fallback", "sorta_print", "kinda_int"})
	if a != b {
		t.Fatal("order-dependent output")
	}
	c := GenerateRuntime([]string{"kinda_int", "kinda_int", "sorta_print", "welp_fallback"})
	if a != c {
		t.Fatal("duplicate-dependent output")
	}
}

func TestGenerateRuntimeFull(t *testing.T) {
	src := GenerateRuntime(grammar.HelperNames())
	for _, name := range grammar.HelperNames() {
		if !strings.Contains(src, "def "+name+"(") {
			t.Fatalf("missing %s", name)
		}
	}
	if n := strings.Count(src, "def _shrug"); n != 1 {
		t.Fatalf("got %d _shrug definitions", n)
	}
}

func TestGenerateRuntimeUnknownHelper(t *testing.T) {
	src := GenerateRuntime([]string{"no_such_helper", "sorta_print"})
	if !strings.Contains(src, "def sorta_print") {
		t.Fatal("missing sorta_print")
	}
	if strings.Contains(src, "no_such_helper") {
		t.Fatal("unknown helper leaked into output")
	}
}

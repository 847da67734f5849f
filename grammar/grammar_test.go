package grammar

import "testing"

func TestMatchHeader(t *testing.T) {
	cases := []struct {
		line string
		want string // construct name, "" for no match
	}{
		{"~kinda int x = 42", KindaInt},
		{"~kinda int counter ~= 10;", KindaInt},
		{"~kinda binary b", KindaBinary},
		{"~kinda binary b ~ probabilities(0.4, 0.4, 0.2)", KindaBinary},
		{"~kinda import math", KindaImport},
		{"~kinda import json.decode as d", KindaImport},
		{"~maybe import json as j ~welp math", MaybeImport},
		{"~maybe import json", MaybeImport},
		{"~sorta print(x, y)", SortaPrint},
		{"~sorta print()", SortaPrint},
		{"~sometimes (x > 0) {", Sometimes},
		{"~sometimes()", Sometimes},
		{"~maybe (ready):", Maybe},
		{"x ~= x + 1", FuzzyReassign},
		{"x ~welp 5", Welp},
		{"x = 1 + 2", ""},
		{"# ~kinda int x = 1", ""},
		{"print(x)", ""},
	}
	for _, c := range cases {
		m := MatchHeader(c.line)
		if c.want == "" {
			if m != nil {
				t.Fatalf("%q: got %s, want no match", c.line, m.Def.Name)
			}
			continue
		}
		if m == nil {
			t.Fatalf("%q: got no match, want %s", c.line, c.want)
		}
		if m.Def.Name != c.want {
			t.Fatalf("%q: got %s, want %s", c.line, m.Def.Name, c.want)
		}
	}
}

func TestMatchGroups(t *testing.T) {
	m := MatchHeader("~kinda int x = 42")
	if m == nil {
		t.Fatal()
	}
	if m.Groups[0] != "x" {
		t.Fatalf("got %q", m.Groups[0])
	}
	if m.Groups[1] != "42" {
		t.Fatalf("got %q", m.Groups[1])
	}

	m = MatchHeader("~maybe import json as j ~welp math")
	if m == nil {
		t.Fatal()
	}
	if m.Groups[0] != "json" || m.Groups[1] != "j" || m.Groups[2] != "math" {
		t.Fatalf("got %q", m.Groups)
	}

	m = MatchHeader("~maybe import json")
	if m == nil {
		t.Fatal()
	}
	if m.Groups[1] != "" || m.Groups[2] != "" {
		t.Fatalf("got %q", m.Groups)
	}
}

func TestByHelper(t *testing.T) {
	for _, name := range HelperNames() {
		def, ok := ByHelper(name)
		if !ok {
			t.Fatalf("no definition for %s", name)
		}
		if def.Template == "" {
			t.Fatalf("no template for %s", name)
		}
	}
	if _, ok := ByHelper("nope"); ok {
		t.Fatal()
	}
}

func TestSharedDeps(t *testing.T) {
	def, ok := ByHelper(SortaPrint)
	if !ok {
		t.Fatal()
	}
	for _, dep := range def.Requires {
		if _, ok := SharedDep(dep); !ok {
			t.Fatalf("missing shared dep %s", dep)
		}
	}
}

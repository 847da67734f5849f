package main

import (
	"fmt"
	"strings"
)

var syntaxRef = []struct {
	name  string
	usage string
	desc  string
}{
	{"kinda int", "~kinda int x = 42", "fuzzy integer declaration, the value gets a small random offset"},
	{"kinda binary", "~kinda binary b ~ probabilities(0.4, 0.4, 0.2)", "three-valued result: 1, -1 or 0"},
	{"kinda import", "~kinda import math as m", "probabilistic import, may bind a deferred stand-in"},
	{"maybe import", "~maybe import json as j ~welp math", "probabilistic import with a fallback module"},
	{"sorta print", "~sorta print(x, y)", "print that sometimes shrugs instead"},
	{"sometimes", "~sometimes (x > 0) { ... }", "conditional gated by both the condition and chance"},
	{"maybe", "~maybe (ready) { ... }", "like sometimes, a little less likely"},
	{"fuzzy reassignment", "x ~= x + 1", "reassignment with noise added"},
	{"ish value", "42~ish", "approximate value with mood-dependent variance"},
	{"ish comparison", "a ~ish b", "approximately equal; standalone form fuzzes and rebinds a"},
	{"welp", "risky() ~welp 0", "use the fallback when the left side fails or is None"},
}

func printSyntax(name string) {
	needle := strings.ToLower(strings.TrimSpace(name))
	found := false
	for _, entry := range syntaxRef {
		if needle != "" && !strings.Contains(entry.name, needle) {
			continue
		}
		found = true
		fmt.Printf("%-20s %s\n", entry.name, entry.usage)
		fmt.Printf("%-20s %s\n", "", entry.desc)
	}
	if !found {
		fmt.Printf("no construct matches %q, try one of:\n", name)
		for _, entry := range syntaxRef {
			fmt.Println("  " + entry.name)
		}
	}
}

package kindalang

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Kinda-lang-dev/kinda-lang/grammar"
)

// RuntimeModule is the name transformed files load helpers from.
const RuntimeModule = "fuzzy.star"

// GenerateRuntime renders the runtime module containing exactly the
// named helpers plus their shared dependencies. Output is deterministic
// for a given helper set: same input, byte-identical module.
func GenerateRuntime(helpers []string) string {
	sorted := slices.Sorted(slices.Values(helpers))
	sorted = slices.Compact(sorted)

	var defs []*grammar.Definition
	depSet := make(map[string]struct{})
	for _, h := range sorted {
		def, ok := grammar.ByHelper(h)
		if !ok || def.Template == "" {
			continue
		}
		defs = append(defs, def)
		for _, dep := range def.Requires {
			depSet[dep] = struct{}{}
		}
	}

	var sb strings.Builder
	sb.WriteString("# Code generated by kinda. DO NOT EDIT.\n")
	sb.WriteString("# Fuzzy runtime helpers. The _rand and _chaos host primitives\n")
	sb.WriteString("# are predeclared by the kinda execution backend.\n")

	for _, dep := range slices.Sorted(maps.Keys(depSet)) {
		src, ok := grammar.SharedDep(dep)
		if !ok {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(src)
	}

	for _, def := range defs {
		sb.WriteString("\n")
		sb.WriteString(def.Template)
	}

	return sb.String()
}

// WriteRuntime writes the runtime module for the given helpers into dir
// and returns its path.
func WriteRuntime(helpers []string, dir string) (string, error) {
	path := filepath.Join(dir, RuntimeModule)
	if err := os.WriteFile(path, []byte(GenerateRuntime(helpers)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

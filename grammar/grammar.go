// Package grammar holds the construct table for the kinda dialect: one
// definition per construct, with its match pattern and the Starlark source
// of the runtime helper it expands to. The table is pure data; matching
// precedence is the order of Headers.
package grammar

import "regexp"

type Kind uint8

const (
	KindDeclaration Kind = iota
	KindReassignment
	KindPrint
	KindConditional
	KindValue
	KindComparison
	KindFallback
	KindImport
)

func (k Kind) String() string {
	switch k {
	case KindDeclaration:
		return "declaration"
	case KindReassignment:
		return "reassignment"
	case KindPrint:
		return "print"
	case KindConditional:
		return "conditional"
	case KindValue:
		return "value"
	case KindComparison:
		return "comparison"
	case KindFallback:
		return "fallback"
	case KindImport:
		return "import"
	}
	return "unknown"
}

type Definition struct {
	Name    string
	Kind    Kind
	Pattern *regexp.Regexp
	// Helper is the runtime function the construct expands to.
	Helper string
	// Template is the Starlark definition of Helper, emitted into the
	// generated runtime module when the helper is used.
	Template string
	// Requires lists runtime-module-level dependencies of Template.
	Requires []string
}

// Construct names.
const (
	KindaInt      = "kinda_int"
	KindaBinary   = "kinda_binary"
	KindaImport   = "kinda_import"
	MaybeImport   = "maybe_import"
	SortaPrint    = "sorta_print"
	Sometimes     = "sometimes"
	Maybe         = "maybe"
	FuzzyReassign = "fuzzy_reassign"
	Welp          = "welp"
	IshValue      = "ish_value"
	IshComparison = "ish_comparison"
	WelpFallback  = "welp_fallback"
	FuzzyAssign   = "fuzzy_assign"
)

var headers = []*Definition{
	{
		Name:     KindaInt,
		Kind:     KindDeclaration,
		Pattern:  regexp.MustCompile(`^~kinda int (\w+)\s*[~=]+\s*([^#;]+?)(?:\s*#.*)?(?:;|$)`),
		Helper:   "kinda_int",
		Template: kindaIntTemplate,
	},
	{
		Name:     KindaBinary,
		Kind:     KindDeclaration,
		Pattern:  regexp.MustCompile(`^~kinda\s+binary\s+(\w+)(?:\s*~\s*probabilities\s*\(([^)]+)\))?(?:;|$)`),
		Helper:   "kinda_binary",
		Template: kindaBinaryTemplate,
	},
	{
		Name:     KindaImport,
		Kind:     KindImport,
		Pattern:  regexp.MustCompile(`^~kinda import\s+([a-zA-Z_]\w*(?:\.[a-zA-Z_]\w*)*)(?:\s+as\s+([a-zA-Z_]\w*))?(?:\s*#.*)?(?:;|$)`),
		Helper:   "kinda_import",
		Template: kindaImportTemplate,
	},
	{
		Name:     MaybeImport,
		Kind:     KindImport,
		Pattern:  regexp.MustCompile(`^~maybe import\s+([a-zA-Z_]\w*(?:\.[a-zA-Z_]\w*)*)(?:\s+as\s+([a-zA-Z_]\w*))?(?:\s*~welp\s+([^#;]+?))?(?:\s*#.*)?(?:;|$)`),
		Helper:   "maybe_import",
		Template: maybeImportTemplate,
	},
	{
		Name:     SortaPrint,
		Kind:     KindPrint,
		Pattern:  regexp.MustCompile(`^~sorta print\s*\((.*)\)\s*(?:;|$)`),
		Helper:   "sorta_print",
		Template: sortaPrintTemplate,
		Requires: []string{"_shrug"},
	},
	{
		Name:     Sometimes,
		Kind:     KindConditional,
		Pattern:  regexp.MustCompile(`^~sometimes\s*\(([^)]*)\)\s*\{?`),
		Helper:   "sometimes",
		Template: sometimesTemplate,
	},
	{
		Name:     Maybe,
		Kind:     KindConditional,
		Pattern:  regexp.MustCompile(`^~maybe\s*\(([^)]*)\)\s*\{?`),
		Helper:   "maybe",
		Template: maybeTemplate,
	},
	{
		Name:     FuzzyReassign,
		Kind:     KindReassignment,
		Pattern:  regexp.MustCompile(`^(\w+)\s*~=\s*([^#;]+?)(?:\s*#.*)?(?:;|$)`),
		Helper:   "fuzzy_assign",
		Template: fuzzyAssignTemplate,
	},
	{
		Name:     Welp,
		Kind:     KindFallback,
		Pattern:  regexp.MustCompile(`^(.+)\s*~welp\s*(.+)$`),
		Helper:   "welp_fallback",
		Template: welpFallbackTemplate,
	},
}

// Inline constructs are rewritten by the composer inside lines; they are
// never headers.
var (
	IshValueDef = &Definition{
		Name:     IshValue,
		Kind:     KindValue,
		Pattern:  regexp.MustCompile(`(\d+(?:\.\d+)?)~ish`),
		Helper:   "ish_value",
		Template: ishValueTemplate,
	}
	IshComparisonDef = &Definition{
		Name:     IshComparison,
		Kind:     KindComparison,
		Pattern:  regexp.MustCompile(`(\w+)\s*~ish\s*([^#;,:()\[\]\s]+)`),
		Helper:   "ish_comparison",
		Template: ishComparisonTemplate,
	}
	// A comparison whose right side is itself an approximate value, e.g.
	// `a ~ish 42~ish`. Matched as one unit so the value side is wrapped
	// before the comparison.
	IshComparisonValueDef = &Definition{
		Name:    "ish_comparison_with_ish_value",
		Kind:    KindComparison,
		Pattern: regexp.MustCompile(`(\w+)\s*~ish\s*(\d+(?:\.\d+)?)~ish`),
	}
)

// Headers returns the header constructs in matching precedence order:
// typed declarations and imports before prints and conditionals, the
// generic reassignment after those, and the fallback header last because
// its pattern accepts nearly anything.
func Headers() []*Definition {
	return headers
}

type Match struct {
	Def *Definition
	// Groups are the captured groups in pattern order; an unmatched
	// optional group is the empty string.
	Groups []string
}

// MatchHeader reports which header construct the trimmed line opens, if
// any. First match in precedence order wins; no merging of partials.
func MatchHeader(line string) *Match {
	for _, def := range headers {
		m := def.Pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return &Match{
			Def:    def,
			Groups: m[1:],
		}
	}
	return nil
}

var byHelper = func() map[string]*Definition {
	m := make(map[string]*Definition)
	for _, def := range headers {
		m[def.Helper] = def
	}
	m[IshValueDef.Helper] = IshValueDef
	m[IshComparisonDef.Helper] = IshComparisonDef
	return m
}()

// ByHelper returns the definition owning the named runtime helper.
func ByHelper(name string) (*Definition, bool) {
	def, ok := byHelper[name]
	return def, ok
}

// HelperNames returns all runtime helper names, sorted by the table.
func HelperNames() []string {
	names := make([]string, 0, len(byHelper))
	for _, def := range headers {
		names = append(names, def.Helper)
	}
	names = append(names, IshValueDef.Helper, IshComparisonDef.Helper)
	return names
}

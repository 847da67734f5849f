package kindastar

import (
	"strings"

	starlarkjson "go.starlark.net/lib/json"
	starlarkmath "go.starlark.net/lib/math"
	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// The importable module universe. Fuzzy imports resolve against these;
// anything else yields a deferred stand-in instead of an error.
var stdModules = map[string]*starlarkstruct.Module{
	"math": starlarkmath.Module,
	"time": starlarktime.Module,
	"json": starlarkjson.Module,
}

// resolveModule resolves a possibly dotted module path like math or
// json.decode against the std universe, walking attributes for the
// dotted tail.
func resolveModule(name string) (starlark.Value, bool) {
	segments := strings.Split(name, ".")
	module, ok := stdModules[segments[0]]
	if !ok {
		return nil, false
	}

	var value starlark.Value = module
	for _, segment := range segments[1:] {
		attrs, ok := value.(starlark.HasAttrs)
		if !ok {
			return nil, false
		}
		next, err := attrs.Attr(segment)
		if err != nil || next == nil {
			return nil, false
		}
		value = next
	}
	return value, true
}

func stdModuleMembers(name string) (starlark.StringDict, bool) {
	module, ok := stdModules[name]
	if !ok {
		return nil, false
	}
	return module.Members, true
}

package grammar

// Runtime helper bodies, in Starlark. Every helper follows the same
// contract: coerce loose input, consult the chaos state, do the
// probabilistic operation, and report the outcome. The leading-underscore
// primitives (_rand, _rand_int, _uniform, _coerce_num, _attempt,
// _load_module, _deferred, and the _chaos_* family) are predeclared by
// the execution backend and never fail; a helper therefore cannot abort
// the host program.

const kindaIntTemplate = `def kinda_int(val):
    ok, num = _coerce_num(val)
    if not ok:
        print("[?] kinda int got something weird: %r" % val)
        print("[tip] expected a number but got %s" % type(val))
        _chaos_record(True)
        return _rand_int(0, 10)
    lo, hi = _chaos_fuzz_range("int")
    _chaos_record(False)
    return int(num) + _rand_int(lo, hi)
`

const fuzzyAssignTemplate = `def fuzzy_assign(name, value):
    ok, num = _coerce_num(value)
    if not ok:
        print("[?] fuzzy assignment to %s got something weird: %r" % (name, value))
        print("[tip] expected a number but got %s" % type(value))
        _chaos_record(True)
        return _rand_int(0, 10)
    lo, hi = _chaos_fuzz_range("int")
    _chaos_record(False)
    return int(num) + _rand_int(lo, hi)
`

const sortaPrintTemplate = `def sorta_print(*args):
    if not args:
        if _rand() < _chaos_prob("sorta_print"):
            print("[shrug] nothing to print, I guess?")
        _chaos_record(False)
        return
    if _rand() < _chaos_prob("sorta_print"):
        print("[print]", *args)
        _chaos_record(False)
    else:
        print(_shrug(), *args)
        _chaos_record(True)
`

const sometimesTemplate = `def sometimes(condition=True):
    if condition == None:
        print("[?] sometimes got None as condition - treating as False")
        _chaos_record(True)
        return False
    result = _rand() < _chaos_prob("sometimes") and bool(condition)
    _chaos_record(not result)
    return result
`

const maybeTemplate = `def maybe(condition=True):
    if condition == None:
        print("[?] maybe got None as condition - treating as False")
        _chaos_record(True)
        return False
    result = _rand() < _chaos_prob("maybe") and bool(condition)
    _chaos_record(not result)
    return result
`

const kindaBinaryTemplate = `def kinda_binary(pos_prob=None, neg_prob=None, neutral_prob=None):
    if pos_prob == None or neg_prob == None or neutral_prob == None:
        pos_prob, neg_prob, neutral_prob = _chaos_binary_probs()
    total = pos_prob + neg_prob + neutral_prob
    if abs(total - 1.0) > 0.01:
        print("[?] binary probabilities sum to %s, normalizing" % total)
        pos_prob /= total
        neg_prob /= total
        neutral_prob /= total
    r = _rand()
    if r < pos_prob:
        result = 1
    elif r < pos_prob + neg_prob:
        result = -1
    else:
        result = 0
    _chaos_record(False)
    return result
`

const ishValueTemplate = `def ish_value(val, variance=None):
    if variance == None:
        variance = _chaos_variance()
    ok, num = _coerce_num(val)
    if not ok:
        print("[?] ish value got something weird: %r" % val)
        print("[tip] expected a number but got %s" % type(val))
        _chaos_record(True)
        return _uniform(-variance, variance)
    fuzz = _uniform(-variance, variance)
    _chaos_record(False)
    if type(val) == "int":
        return int(num + fuzz)
    return num + fuzz
`

const ishComparisonTemplate = `def ish_comparison(left, right, tolerance=None):
    if tolerance == None:
        tolerance = _chaos_tolerance()
    ok_l, lv = _coerce_num(left)
    ok_r, rv = _coerce_num(right)
    if not ok_l or not ok_r:
        print("[?] ish comparison got non-numeric operands: %r vs %r" % (left, right))
        _chaos_record(True)
        return _rand() < 0.5
    result = abs(lv - rv) <= tolerance
    _chaos_record(False)
    return result
`

const welpFallbackTemplate = `def welp_fallback(primary, fallback):
    if type(primary) == "function":
        ok, result = _attempt(primary)
    else:
        ok, result = True, primary
    if not ok or result == None:
        style = _chaos_style()
        if style == "professional":
            print("[welp] expression failed, using fallback: %r" % fallback)
        elif style == "friendly":
            print("[welp] got nothing there, trying fallback: %r" % fallback)
        elif style == "snarky":
            print("[welp] well that was useless, falling back to: %r" % fallback)
        else:
            print("[welp] *shrugs* whatever, here's: %r" % fallback)
        _chaos_record(True)
        return fallback
    _chaos_record(False)
    return result
`

const kindaImportTemplate = `def kinda_import(module_name, alias=None):
    if _rand() < _chaos_prob("kinda_import"):
        ok, module = _load_module(module_name)
        if ok:
            _chaos_record(False)
            return module
        print("[kinda import] module %r not found, faking it" % module_name)
        _chaos_record(True)
        return _deferred(module_name)
    print("[kinda import] skipping %r for now" % module_name)
    _chaos_record(True)
    return _deferred(module_name)
`

const maybeImportTemplate = `def maybe_import(module_name, alias=None, fallback_module=None):
    if _rand() < _chaos_prob("maybe_import"):
        ok, module = _load_module(module_name)
        if ok:
            _chaos_record(False)
            return module
        print("[maybe import] module %r not available" % module_name)
    else:
        print("[maybe import] skipping %r (probabilistic decision)" % module_name)
    if fallback_module != None:
        ok, module = _load_module(fallback_module)
        if ok:
            print("[maybe import] using fallback: %s" % fallback_module)
            _chaos_record(False)
            return module
        print("[maybe import] fallback %r also failed" % fallback_module)
    _chaos_record(True)
    return _deferred(module_name)
`

// Shared runtime-module dependencies, emitted once when any helper in
// Requires names them.
var sharedDeps = map[string]string{
	"_shrug": `def _shrug():
    style = _chaos_style()
    if style == "professional":
        return "[skip]"
    if style == "friendly":
        return "[shrug] maybe later?"
    if style == "snarky":
        return "[shrug] not feeling it right now"
    return "[shrug] *waves hand dismissively*"
`,
}

// SharedDep returns the source of a runtime-module-level dependency.
func SharedDep(name string) (string, bool) {
	src, ok := sharedDeps[name]
	return src, ok
}

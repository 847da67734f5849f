package kindastar

import (
	"strconv"
	"strings"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// primitives are the host half of the fuzzy runtime. The generated
// runtime module builds every helper on them. None of them ever
// returns a Starlark error from sensible programs: failure is reported
// in-band as (ok, value) pairs or stand-in values, so a fuzzy
// operation cannot abort the host program.
func (in *Interp) primitives() starlark.StringDict {
	state := in.state

	dict := starlark.StringDict{

		"_rand": starlarkutil.MakeFunc("_rand", func() float64 {
			return state.Float()
		}),

		"_rand_int": starlarkutil.MakeFunc("_rand_int", func(lo, hi int) int {
			return state.IntBetween(lo, hi)
		}),

		"_uniform": starlarkutil.MakeFunc("_uniform", func(lo, hi float64) float64 {
			return state.Uniform(lo, hi)
		}),

		"_chaos_prob": starlarkutil.MakeFunc("_chaos_prob", func(construct string) float64 {
			return state.ProbabilityFor(construct)
		}),

		"_chaos_variance": starlarkutil.MakeFunc("_chaos_variance", func() float64 {
			return state.Variance()
		}),

		"_chaos_tolerance": starlarkutil.MakeFunc("_chaos_tolerance", func() float64 {
			return state.Tolerance()
		}),

		"_chaos_style": starlarkutil.MakeFunc("_chaos_style", func() string {
			return state.MessageStyle()
		}),

	}

	dict["_chaos_record"] = starlark.NewBuiltin("_chaos_record",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var failed bool
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &failed); err != nil {
				return nil, err
			}
			state.RecordOutcome(failed)
			return starlark.None, nil
		})

	dict["_chaos_info"] = starlark.NewBuiltin("_chaos_info",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			return toStarlark(map[string]any{
				"profile":       state.Profile().Name,
				"mood":          state.Mood().String(),
				"failure_ratio": state.FailureRatio(),
				"style":         state.MessageStyle(),
			}), nil
		})

	dict["_chaos_fuzz_range"] = starlark.NewBuiltin("_chaos_fuzz_range",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var kind string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &kind); err != nil {
				return nil, err
			}
			lo, hi := state.FuzzRange()
			return starlark.Tuple{starlark.MakeInt(lo), starlark.MakeInt(hi)}, nil
		})

	dict["_chaos_binary_probs"] = starlark.NewBuiltin("_chaos_binary_probs",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			w := state.TernaryWeights()
			return starlark.Tuple{
				starlark.Float(w[0]),
				starlark.Float(w[1]),
				starlark.Float(w[2]),
			}, nil
		})

	dict["_coerce_num"] = starlark.NewBuiltin("_coerce_num",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var value starlark.Value
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value); err != nil {
				return nil, err
			}
			return coerceNum(value), nil
		})

	dict["_attempt"] = starlark.NewBuiltin("_attempt",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var fn starlark.Value
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &fn); err != nil {
				return nil, err
			}
			result, err := starlark.Call(thread, fn, nil, nil)
			if err != nil {
				// swallowed: the caller falls back instead
				return starlark.Tuple{starlark.False, starlark.None}, nil
			}
			return starlark.Tuple{starlark.True, result}, nil
		})

	dict["_load_module"] = starlark.NewBuiltin("_load_module",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
				return nil, err
			}
			module, ok := resolveModule(name)
			if !ok {
				return starlark.Tuple{starlark.False, starlark.None}, nil
			}
			return starlark.Tuple{starlark.True, module}, nil
		})

	dict["_deferred"] = starlark.NewBuiltin("_deferred",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
				return nil, err
			}
			return NewDeferred(name, func(msg string) {
				in.print(msg)
			}), nil
		})

	return dict
}

// coerceNum maps a loose value to (ok, number). Bools count as 0/1 and
// numeric strings parse; everything else is (False, 0).
func coerceNum(value starlark.Value) starlark.Tuple {
	switch v := value.(type) {

	case starlark.Int:
		return starlark.Tuple{starlark.True, v}

	case starlark.Float:
		return starlark.Tuple{starlark.True, v}

	case starlark.Bool:
		if v {
			return starlark.Tuple{starlark.True, starlark.MakeInt(1)}
		}
		return starlark.Tuple{starlark.True, starlark.MakeInt(0)}

	case starlark.String:
		s := strings.TrimSpace(string(v))
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return starlark.Tuple{starlark.True, starlark.MakeInt64(n)}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return starlark.Tuple{starlark.True, starlark.Float(f)}
		}
	}

	return starlark.Tuple{starlark.False, starlark.MakeInt(0)}
}

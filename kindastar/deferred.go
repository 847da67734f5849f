package kindastar

import (
	"fmt"

	"go.starlark.net/starlark"
)

// Deferred stands in for a module that a fuzzy import chose to skip or
// could not load. Attribute access works and calls succeed with None,
// so downstream code keeps running; the first touch of each attribute
// is reported once.
type Deferred struct {
	name   string
	report func(msg string)
	warned map[string]bool
}

var (
	_ starlark.Value    = (*Deferred)(nil)
	_ starlark.HasAttrs = (*Deferred)(nil)
)

func NewDeferred(name string, report func(msg string)) *Deferred {
	if report == nil {
		report = func(msg string) { fmt.Println(msg) }
	}
	return &Deferred{
		name:   name,
		report: report,
		warned: make(map[string]bool),
	}
}

func (d *Deferred) String() string { return fmt.Sprintf("<deferred module %s>", d.name) }

func (d *Deferred) Type() string { return "deferred_module" }

func (d *Deferred) Freeze() {}

// Truth is false so programs can test whether an import really loaded.
func (d *Deferred) Truth() starlark.Bool { return starlark.False }

func (d *Deferred) Hash() (uint32, error) {
	return starlark.String(d.name).Hash()
}

func (d *Deferred) Attr(attr string) (starlark.Value, error) {
	if !d.warned[attr] {
		d.warned[attr] = true
		d.report(fmt.Sprintf("[deferred] %s.%s is not really there, pretending it is", d.name, attr))
	}
	return starlark.NewBuiltin(d.name+"."+attr, func(
		thread *starlark.Thread,
		b *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		return starlark.None, nil
	}), nil
}

func (d *Deferred) AttrNames() []string { return nil }

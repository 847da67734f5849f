package kindastar

import (
	"io"
	"os"

	"github.com/Kinda-lang-dev/kinda-lang/chaos"
	"github.com/Kinda-lang-dev/kinda-lang/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

type Output io.Writer

func (Module) Output() Output {
	return os.Stdout
}

func (Module) Interp(
	state *chaos.State,
	logger logs.Logger,
	output Output,
) *Interp {
	in, err := NewInterp(state, logger, output)
	if err != nil {
		// the generated runtime failed to evaluate, nothing can run
		panic(err)
	}
	return in
}

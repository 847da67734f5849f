package kindaconfigs

import (
	"github.com/Kinda-lang-dev/kinda-lang/cmds"
	"github.com/Kinda-lang-dev/kinda-lang/configs"
	"github.com/Kinda-lang-dev/kinda-lang/vars"
)

// OutDir is where transformed files are emitted.
type OutDir string

var outFlag = cmds.Var[string]("-out")

func (Module) OutDir(
	loader configs.Loader,
) OutDir {
	return OutDir(vars.FirstNonZero(
		*outFlag,
		configs.First[string](loader, "transform.out"),
		"build",
	))
}

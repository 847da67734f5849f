package chaos

import (
	"math/rand/v2"

	"github.com/Kinda-lang-dev/kinda-lang/configs"
	"github.com/Kinda-lang-dev/kinda-lang/logs"
	"github.com/Kinda-lang-dev/kinda-lang/modes"
	"github.com/Kinda-lang-dev/kinda-lang/vars"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

// Options override the config file. Zero fields defer to config, then
// to defaults.
type Options struct {
	Profile string
	Seed    *uint64
}

func (Module) Options() Options {
	return Options{}
}

type config struct {
	Profile string `json:"profile"`
	Seed    *int64 `json:"seed"`
}

func (Module) State(
	options Options,
	loader configs.Loader,
	mode modes.Mode,
	logger logs.Logger,
) *State {
	conf := configs.First[config](loader, "chaos")

	name := vars.FirstNonZero(options.Profile, conf.Profile)
	profile, ok := ProfileByName(name)
	if !ok {
		if name != "" {
			logger.Warn("unknown chaos profile, using default",
				"profile", name)
		}
		profile = DefaultProfile()
	}

	var seed uint64
	switch {
	case options.Seed != nil:
		seed = *options.Seed
	case conf.Seed != nil:
		seed = uint64(*conf.Seed)
	case mode == modes.ModeDevelopment:
		// deterministic runs under test
		seed = 1
	default:
		seed = rand.Uint64()
	}

	logger.Debug("chaos state",
		"profile", profile.Name, "mood", profile.Base.String(), "seed", seed)
	return NewState(profile, seed, logger)
}

package chaos

import (
	"testing"

	"github.com/Kinda-lang-dev/kinda-lang/kindaconfigs"
	"github.com/Kinda-lang-dev/kinda-lang/logs"
	"github.com/Kinda-lang-dev/kinda-lang/modes"
	"github.com/reusee/dscope"
)

func TestModule(t *testing.T) {
	dscope.New(
		new(Module),
		new(logs.Module),
		new(kindaconfigs.Module),
		modes.ForTest(t),
	).Call(func(
		state *State,
	) {
		if state.Profile().Name != "playful" {
			t.Fatalf("got %q", state.Profile().Name)
		}
		// development mode pins the seed
		other := NewState(state.Profile(), 1, nil)
		for i := 0; i < 20; i++ {
			if state.Float() != other.Float() {
				t.Fatal("seed not pinned")
			}
		}
	})
}

func TestModuleOptions(t *testing.T) {
	seed := uint64(7)
	dscope.New(
		new(Module),
		new(logs.Module),
		new(kindaconfigs.Module),
		modes.ForTest(t),
	).Fork(
		dscope.Provide(Options{
			Profile: "chaotic",
			Seed:    &seed,
		}),
	).Call(func(
		state *State,
	) {
		if state.Mood() != MoodChaotic {
			t.Fatalf("got %v", state.Mood())
		}
		other := NewState(state.Profile(), 7, nil)
		if state.Float() != other.Float() {
			t.Fatal("seed ignored")
		}
	})
}

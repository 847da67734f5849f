package chaos

// Mood is the current disposition of the chaos state. It starts at the
// profile's base mood and drifts with the observed failure ratio:
// toward MoodChaotic when fuzzy operations keep failing, back toward
// MoodReliable when they keep succeeding.
type Mood uint8

const (
	MoodReliable Mood = iota
	MoodCautious
	MoodPlayful
	MoodChaotic
)

func (m Mood) String() string {
	switch m {
	case MoodReliable:
		return "reliable"
	case MoodCautious:
		return "cautious"
	case MoodPlayful:
		return "playful"
	case MoodChaotic:
		return "chaotic"
	}
	return "unknown"
}

// Policy is the full parameter set of one mood: execution probabilities
// per construct, integer fuzz offsets, float variance for approximate
// values, tolerance for approximate comparisons, the three-way weights
// for ternary values and the voice used for runtime messages.
type Policy struct {
	Probs            map[string]float64
	FuzzMin, FuzzMax int
	Variance         float64
	Tolerance        float64
	Ternary          [3]float64
	Style            string
}

// DriftPolicy controls mood drift. Outcomes are kept in a sliding
// window; once MinSamples are present, a failure ratio at or above
// WorsenAt degrades the mood one step, and with a full window a ratio
// at or below ImproveAt restores it one step. The window resets on
// every mood change.
type DriftPolicy struct {
	Window     int
	MinSamples int
	WorsenAt   float64
	ImproveAt  float64
}

var DefaultDrift = DriftPolicy{
	Window:     20,
	MinSamples: 5,
	WorsenAt:   0.6,
	ImproveAt:  0.2,
}

var policies = map[Mood]Policy{
	MoodReliable: {
		Probs: map[string]float64{
			"sorta_print":  0.95,
			"sometimes":    0.95,
			"maybe":        0.95,
			"kinda_import": 0.98,
			"maybe_import": 0.90,
		},
		FuzzMin:   0,
		FuzzMax:   1,
		Variance:  0.5,
		Tolerance: 0.1,
		Ternary:   [3]float64{0.45, 0.45, 0.10},
		Style:     "professional",
	},
	MoodCautious: {
		Probs: map[string]float64{
			"sorta_print":  0.85,
			"sometimes":    0.80,
			"maybe":        0.75,
			"kinda_import": 0.95,
			"maybe_import": 0.80,
		},
		FuzzMin:   -1,
		FuzzMax:   1,
		Variance:  1.0,
		Tolerance: 0.15,
		Ternary:   [3]float64{0.40, 0.40, 0.20},
		Style:     "friendly",
	},
	MoodPlayful: {
		Probs: map[string]float64{
			"sorta_print":  0.80,
			"sometimes":    0.70,
			"maybe":        0.60,
			"kinda_import": 0.90,
			"maybe_import": 0.70,
		},
		FuzzMin:   -1,
		FuzzMax:   1,
		Variance:  2.0,
		Tolerance: 0.2,
		Ternary:   [3]float64{0.40, 0.40, 0.20},
		Style:     "snarky",
	},
	MoodChaotic: {
		Probs: map[string]float64{
			"sorta_print":  0.60,
			"sometimes":    0.50,
			"maybe":        0.40,
			"kinda_import": 0.70,
			"maybe_import": 0.50,
		},
		FuzzMin:   -2,
		FuzzMax:   2,
		Variance:  3.0,
		Tolerance: 0.35,
		Ternary:   [3]float64{0.33, 0.33, 0.34},
		Style:     "chaotic",
	},
}

// defaultProb is used for constructs a policy does not name.
const defaultProb = 0.5

// Profile is a named starting point for the chaos state.
type Profile struct {
	Name  string
	Base  Mood
	Drift DriftPolicy
}

var profiles = map[string]Profile{
	"reliable": {Name: "reliable", Base: MoodReliable, Drift: DefaultDrift},
	"cautious": {Name: "cautious", Base: MoodCautious, Drift: DefaultDrift},
	"playful":  {Name: "playful", Base: MoodPlayful, Drift: DefaultDrift},
	"chaotic":  {Name: "chaotic", Base: MoodChaotic, Drift: DefaultDrift},
}

func DefaultProfile() Profile {
	return profiles["playful"]
}

func ProfileByName(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// ProfileNames returns the known profile names, sorted.
func ProfileNames() []string {
	return []string{"cautious", "chaotic", "playful", "reliable"}
}

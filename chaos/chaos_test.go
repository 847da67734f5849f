package chaos

import (
	"math"
	"testing"
)

func TestNormalizeWeights(t *testing.T) {
	w := NormalizeWeights([3]float64{0.6, 0.6, 0.3})
	want := [3]float64{0.4, 0.4, 0.2}
	for i := range w {
		if math.Abs(w[i]-want[i]) > 1e-9 {
			t.Fatalf("got %v", w)
		}
	}

	// ratios preserved
	if math.Abs(w[0]/w[2]-2.0) > 1e-9 {
		t.Fatalf("got %v", w)
	}

	w = NormalizeWeights([3]float64{0, 0, 0})
	for i := range w {
		if math.Abs(w[i]-1.0/3.0) > 1e-9 {
			t.Fatalf("got %v", w)
		}
	}

	// near-one sums pass through untouched
	in := [3]float64{0.33, 0.33, 0.34}
	if NormalizeWeights(in) != in {
		t.Fatal()
	}
}

func TestDeterministicSequence(t *testing.T) {
	profile, _ := ProfileByName("playful")
	a := NewState(profile, 42, nil)
	b := NewState(profile, 42, nil)
	for i := 0; i < 100; i++ {
		if a.Float() != b.Float() {
			t.Fatal("diverged")
		}
		if a.IntBetween(-2, 2) != b.IntBetween(-2, 2) {
			t.Fatal("diverged")
		}
	}

	c := NewState(profile, 43, nil)
	same := true
	for i := 0; i < 10; i++ {
		if a.Float() != c.Float() {
			same = false
		}
	}
	if same {
		t.Fatal("seed ignored")
	}
}

func TestRanges(t *testing.T) {
	profile, _ := ProfileByName("chaotic")
	s := NewState(profile, 1, nil)
	for i := 0; i < 1000; i++ {
		if f := s.Float(); f < 0 || f >= 1 {
			t.Fatalf("got %v", f)
		}
		if n := s.IntBetween(-2, 2); n < -2 || n > 2 {
			t.Fatalf("got %v", n)
		}
		if u := s.Uniform(-1.5, 1.5); u < -1.5 || u >= 1.5 {
			t.Fatalf("got %v", u)
		}
	}
}

func TestProbabilityFor(t *testing.T) {
	profile, _ := ProfileByName("reliable")
	s := NewState(profile, 1, nil)
	if p := s.ProbabilityFor("sorta_print"); p != 0.95 {
		t.Fatalf("got %v", p)
	}
	if p := s.ProbabilityFor("unknown_construct"); p != defaultProb {
		t.Fatalf("got %v", p)
	}
}

func TestMoodDegrades(t *testing.T) {
	profile, _ := ProfileByName("reliable")
	s := NewState(profile, 1, nil)
	if s.Mood() != MoodReliable {
		t.Fatalf("got %v", s.Mood())
	}

	// five straight failures trip the worsen threshold
	for i := 0; i < 5; i++ {
		s.RecordOutcome(true)
	}
	if s.Mood() != MoodCautious {
		t.Fatalf("got %v", s.Mood())
	}

	// window was reset, the next few failures count from zero
	if s.FailureRatio() != 0 {
		t.Fatalf("got %v", s.FailureRatio())
	}

	for i := 0; i < 5; i++ {
		s.RecordOutcome(true)
	}
	if s.Mood() != MoodPlayful {
		t.Fatalf("got %v", s.Mood())
	}

	for i := 0; i < 5; i++ {
		s.RecordOutcome(true)
	}
	if s.Mood() != MoodChaotic {
		t.Fatalf("got %v", s.Mood())
	}

	// cannot degrade past chaotic
	for i := 0; i < 25; i++ {
		s.RecordOutcome(true)
	}
	if s.Mood() != MoodChaotic {
		t.Fatalf("got %v", s.Mood())
	}
}

func TestMoodImproves(t *testing.T) {
	profile, _ := ProfileByName("chaotic")
	s := NewState(profile, 1, nil)

	// improvement needs a full window of evidence
	for i := 0; i < DefaultDrift.Window-1; i++ {
		s.RecordOutcome(false)
	}
	if s.Mood() != MoodChaotic {
		t.Fatalf("got %v", s.Mood())
	}
	s.RecordOutcome(false)
	if s.Mood() != MoodPlayful {
		t.Fatalf("got %v", s.Mood())
	}
}

func TestMoodStableOnMixedOutcomes(t *testing.T) {
	profile, _ := ProfileByName("playful")
	s := NewState(profile, 1, nil)
	for i := 0; i < 100; i++ {
		s.RecordOutcome(i%2 == 1)
	}
	if s.Mood() != MoodPlayful {
		t.Fatalf("got %v", s.Mood())
	}
}

func TestPolicyPerMood(t *testing.T) {
	profile, _ := ProfileByName("reliable")
	s := NewState(profile, 1, nil)

	lo, hi := s.FuzzRange()
	if lo != 0 || hi != 1 {
		t.Fatalf("got %d %d", lo, hi)
	}
	if s.Variance() != 0.5 {
		t.Fatalf("got %v", s.Variance())
	}
	if s.MessageStyle() != "professional" {
		t.Fatalf("got %q", s.MessageStyle())
	}

	for i := 0; i < 5; i++ {
		s.RecordOutcome(true)
	}

	// cautious now
	lo, hi = s.FuzzRange()
	if lo != -1 || hi != 1 {
		t.Fatalf("got %d %d", lo, hi)
	}
	if s.MessageStyle() != "friendly" {
		t.Fatalf("got %q", s.MessageStyle())
	}
}

func TestTernaryWeightsNormalized(t *testing.T) {
	for _, name := range ProfileNames() {
		profile, ok := ProfileByName(name)
		if !ok {
			t.Fatalf("missing profile %s", name)
		}
		s := NewState(profile, 1, nil)
		w := s.TernaryWeights()
		sum := w[0] + w[1] + w[2]
		if math.Abs(sum-1.0) > 0.01 {
			t.Fatalf("%s: got sum %v", name, sum)
		}
	}
}

func TestProfileByName(t *testing.T) {
	if _, ok := ProfileByName("nope"); ok {
		t.Fatal()
	}
	p := DefaultProfile()
	if p.Name != "playful" || p.Base != MoodPlayful {
		t.Fatalf("got %v", p)
	}
}

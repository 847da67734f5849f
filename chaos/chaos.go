// Package chaos is the probabilistic heart of the fuzzy runtime: one
// synchronized state holding the random source, the active mood and the
// recent outcome window. Every fuzzy decision in a program run goes
// through the same *State, so drift observed by one helper is seen by
// all of them.
package chaos

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
)

type State struct {
	mu      sync.Mutex
	rng     *rand.Rand
	profile Profile
	mood    Mood
	logger  *slog.Logger

	// sliding outcome window, true = failure
	outcomes []bool
	next     int
	filled   bool
}

// NewState seeds a fresh state. The same seed and profile give the same
// decision sequence.
func NewState(profile Profile, seed uint64, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if profile.Drift.Window <= 0 {
		profile.Drift = DefaultDrift
	}
	return &State{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		profile:  profile,
		mood:     profile.Base,
		logger:   logger,
		outcomes: make([]bool, 0, profile.Drift.Window),
	}
}

func (s *State) policy() Policy {
	return policies[s.mood]
}

// Mood returns the current mood.
func (s *State) Mood() Mood {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mood
}

// Profile returns the profile the state was built from.
func (s *State) Profile() Profile {
	return s.profile
}

// ProbabilityFor is the execution probability of the named construct
// under the current mood.
func (s *State) ProbabilityFor(construct string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.policy().Probs[construct]; ok {
		return p
	}
	return defaultProb
}

// FuzzRange is the inclusive integer offset range added to fuzzy
// integer values.
func (s *State) FuzzRange() (lo, hi int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.policy()
	return p.FuzzMin, p.FuzzMax
}

// Variance is the half-width of the uniform noise added to approximate
// values.
func (s *State) Variance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy().Variance
}

// Tolerance is the maximum absolute difference two values may have and
// still compare as approximately equal.
func (s *State) Tolerance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy().Tolerance
}

// TernaryWeights are the normalized positive/negative/neutral weights
// for three-valued results.
func (s *State) TernaryWeights() [3]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NormalizeWeights(s.policy().Ternary)
}

// MessageStyle is the voice runtime messages use under the current
// mood.
func (s *State) MessageStyle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy().Style
}

// NormalizeWeights scales a weight triple to sum to one. A non-positive
// sum yields equal thirds; a sum within 1% of one is returned as given,
// so intentional triples like {0.33, 0.33, 0.34} survive untouched.
func NormalizeWeights(w [3]float64) [3]float64 {
	sum := w[0] + w[1] + w[2]
	if sum <= 0 {
		third := 1.0 / 3.0
		return [3]float64{third, third, third}
	}
	if math.Abs(sum-1.0) <= 0.01 {
		return w
	}
	return [3]float64{w[0] / sum, w[1] / sum, w[2] / sum}
}

// Float returns a uniform float in [0, 1).
func (s *State) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// IntBetween returns a uniform integer in [lo, hi].
func (s *State) IntBetween(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.IntN(hi-lo+1)
}

// Uniform returns a uniform float in [lo, hi).
func (s *State) Uniform(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}

// RecordOutcome feeds one fuzzy-operation outcome into the drift
// window and applies mood drift when the window says so.
func (s *State) RecordOutcome(failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drift := s.profile.Drift
	if len(s.outcomes) < drift.Window {
		s.outcomes = append(s.outcomes, failed)
	} else {
		s.outcomes[s.next] = failed
		s.next = (s.next + 1) % drift.Window
		s.filled = true
	}

	n := len(s.outcomes)
	if n < drift.MinSamples {
		return
	}
	ratio := s.failureRatioLocked()

	switch {
	case ratio >= drift.WorsenAt && s.mood < MoodChaotic:
		s.mood++
		s.resetWindowLocked()
		s.logger.Info("mood degraded",
			"mood", s.mood.String(), "failure_ratio", ratio)
	case ratio <= drift.ImproveAt && (s.filled || n >= drift.Window) && s.mood > MoodReliable:
		s.mood--
		s.resetWindowLocked()
		s.logger.Info("mood improved",
			"mood", s.mood.String(), "failure_ratio", ratio)
	}
}

// FailureRatio is the failure fraction of the current window, 0 when
// empty.
func (s *State) FailureRatio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failureRatioLocked()
}

func (s *State) failureRatioLocked() float64 {
	if len(s.outcomes) == 0 {
		return 0
	}
	failures := 0
	for _, failed := range s.outcomes {
		if failed {
			failures++
		}
	}
	return float64(failures) / float64(len(s.outcomes))
}

func (s *State) resetWindowLocked() {
	s.outcomes = s.outcomes[:0]
	s.next = 0
	s.filled = false
}

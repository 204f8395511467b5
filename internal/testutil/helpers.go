package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

// Logger routes warnings and errors from searchers and agents through t.Log,
// so a failing test shows the predicate failures it hit
func Logger(t testing.TB) zerolog.Logger {
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.WarnLevel)
}

// RNG returns a generator seeded with seed. The seed is logged if the test
// fails so a blind_man or map generation run can be replayed.
func RNG(t testing.TB, seed int64) *rand.Rand {
	t.Helper()
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("rng seed %d", seed)
		}
	})
	return rand.New(rand.NewSource(seed))
}

package tournament

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKey(t *testing.T) {
	assert.Equal(t, PairKey("a", "b"), PairKey("b", "a"))
	assert.Equal(t, "a|b", PairKey("b", "a"))
}

func TestPairHistory_Record(t *testing.T) {
	history := PairHistory{}
	history.Record([]string{"a", "b", "c"})
	history.Record([]string{"a", "b"})

	assert.Equal(t, 2, history[PairKey("a", "b")])
	assert.Equal(t, 1, history[PairKey("a", "c")])
	assert.Equal(t, 1, history[PairKey("b", "c")])
	assert.Equal(t, 0, history[PairKey("a", "d")])
}

func TestPairingCost(t *testing.T) {
	history := PairHistory{}
	history.Record([]string{"a", "b", "c", "d", "e"})

	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	// first table keeps the whole prior group together: C(5,2) repeats
	assert.Equal(t, 10, PairingCost(pool, []int{5, 5}, history))

	// splitting the prior group across tables lowers the cost
	mixed := []string{"a", "b", "f", "g", "h", "c", "d", "e", "i", "j"}
	assert.Equal(t, 1+3, PairingCost(mixed, []int{5, 5}, history))

	// empty history costs nothing
	assert.Equal(t, 0, PairingCost(pool, []int{5, 5}, PairHistory{}))
}

func TestMinimizePairings_EmptyHistoryStopsEarly(t *testing.T) {
	pool := make([]string, 10)
	for i := range pool {
		pool[i] = fmt.Sprintf("player_%d", i+1)
	}

	r := rand.New(rand.NewSource(42))
	best, cost, attempts := minimizePairings(pool, []int{5, 5}, PairHistory{}, 50, r)

	// any assignment is already zero-cost, so the very first candidate wins
	assert.Equal(t, 0, cost)
	assert.Equal(t, 1, attempts)
	assertPermutation(t, pool, best)
}

func TestMinimizePairings_ImprovesOnIdentity(t *testing.T) {
	pool := make([]string, 10)
	for i := range pool {
		pool[i] = fmt.Sprintf("player_%d", i+1)
	}

	// everyone already sat with their half three times
	history := PairHistory{}
	for i := 0; i < 3; i++ {
		history.Record(pool[:5])
		history.Record(pool[5:])
	}

	r := rand.New(rand.NewSource(7))
	best := MinimizePairings(pool, []int{5, 5}, history, 200, r)

	assertPermutation(t, pool, best)
	assert.LessOrEqual(t,
		PairingCost(best, []int{5, 5}, history),
		PairingCost(pool, []int{5, 5}, history),
	)
}

func TestMinimizePairings_Deterministic(t *testing.T) {
	pool := make([]string, 12)
	for i := range pool {
		pool[i] = fmt.Sprintf("player_%d", i+1)
	}
	history := PairHistory{}
	history.Record(pool[:6])
	history.Record(pool[6:])

	first := MinimizePairings(pool, []int{6, 6}, history, 50, rand.New(rand.NewSource(99)))
	second := MinimizePairings(pool, []int{6, 6}, history, 50, rand.New(rand.NewSource(99)))
	assert.Equal(t, first, second)
}

func assertPermutation(t *testing.T, original, candidate []string) {
	t.Helper()
	a := make([]string, len(original))
	b := make([]string, len(candidate))
	copy(a, original)
	copy(b, candidate)
	sort.Strings(a)
	sort.Strings(b)
	assert.Equal(t, a, b)
}

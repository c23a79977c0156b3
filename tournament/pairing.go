package tournament

import (
	"math/rand"
	"time"
)

// PairHistory counts how many prior rounds each unordered player pair shared
// a table, keyed by PairKey.
type PairHistory map[string]int

// PairKey builds the canonical key of an unordered player pair.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// Record increments the co-occurrence count for every pair of the given
// same-table player group.
func (h PairHistory) Record(playerIDs []string) {
	for i := 0; i < len(playerIDs); i++ {
		for j := i + 1; j < len(playerIDs); j++ {
			h[PairKey(playerIDs[i], playerIDs[j])]++
		}
	}
}

// PairingCost sums the historical co-occurrence counts over every pair of
// players that lands at the same table when pool is sliced by sizes in order.
func PairingCost(pool []string, sizes []int, history PairHistory) int {
	cost := 0
	offset := 0
	for _, size := range sizes {
		chunk := pool[offset : offset+size]
		offset += size
		for i := 0; i < len(chunk); i++ {
			for j := i + 1; j < len(chunk); j++ {
				cost += history[PairKey(chunk[i], chunk[j])]
			}
		}
	}
	return cost
}

/*
MinimizePairings picks a permutation of the pool that keeps repeat pairings
low once sliced by sizes: it scores a fixed budget of independent uniform
shuffles and keeps the first lowest-cost candidate, stopping early when a
zero-cost candidate shows up. A heuristic, not an optimum.

The function is pure over its inputs; passing nil r falls back to a
time-seeded source.
*/
func MinimizePairings(pool []string, sizes []int, history PairHistory, trials int, r *rand.Rand) []string {
	best, _, _ := minimizePairings(pool, sizes, history, trials, r)
	return best
}

func minimizePairings(pool []string, sizes []int, history PairHistory, trials int, r *rand.Rand) ([]string, int, int) {
	if trials <= 0 {
		trials = DefaultPairingTrials
	}
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var best []string
	minCost := int(^uint(0) >> 1)
	attempts := 0

	for k := 0; k < trials; k++ {
		candidate := make([]string, len(pool))
		copy(candidate, pool)
		r.Shuffle(len(candidate), func(i, j int) {
			candidate[i], candidate[j] = candidate[j], candidate[i]
		})

		attempts++
		cost := PairingCost(candidate, sizes, history)
		if cost < minCost {
			minCost = cost
			best = candidate
		}
		if minCost == 0 {
			break
		}
	}

	return best, minCost, attempts
}

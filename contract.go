package shanghai

import "sort"

// Contract is the meld requirement a player must satisfy to go down in a
// given round. Fixed, global, read-only.
type Contract struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	RequiredSets int    `json:"required_sets"`
	RequiredRuns int    `json:"required_runs"`
	SetSize      int    `json:"set_size"`
	RunSize      int    `json:"run_size"`
}

var contracts = []Contract{
	{Index: 1, Name: "2 Sets", RequiredSets: 2, RequiredRuns: 0, SetSize: 3, RunSize: 0},
	{Index: 2, Name: "1 Set, 1 Run", RequiredSets: 1, RequiredRuns: 1, SetSize: 3, RunSize: 4},
	{Index: 3, Name: "2 Runs", RequiredSets: 0, RequiredRuns: 2, SetSize: 0, RunSize: 4},
	{Index: 4, Name: "3 Sets", RequiredSets: 3, RequiredRuns: 0, SetSize: 3, RunSize: 0},
	{Index: 5, Name: "2 Sets, 1 Run", RequiredSets: 2, RequiredRuns: 1, SetSize: 3, RunSize: 4},
	{Index: 6, Name: "1 Set, 2 Runs", RequiredSets: 1, RequiredRuns: 2, SetSize: 3, RunSize: 4},
	{Index: 7, Name: "3 Runs", RequiredSets: 0, RequiredRuns: 3, SetSize: 0, RunSize: 4},
}

// TotalRounds 合約輪數 (共 7 局)
func TotalRounds() int {
	return len(contracts)
}

// ContractByRound returns the contract for round 1..TotalRounds.
func ContractByRound(round int) (Contract, bool) {
	if round < 1 || round > len(contracts) {
		return Contract{}, false
	}
	return contracts[round-1], true
}

// IsSet reports whether cards form a valid set of at least minSize: all
// non-wildcard cards share a rank. A group of only wildcards qualifies.
func IsSet(cards []Card, minSize int) bool {
	if len(cards) < minSize {
		return false
	}
	reference, ok := findNatural(cards)
	if !ok {
		return true
	}
	for _, c := range cards {
		if !c.IsWildcard() && c.Rank != reference.Rank {
			return false
		}
	}
	return true
}

// IsRun reports whether cards form a valid run of at least minSize: all
// non-wildcard cards share a suit and their values form a gapless ascending
// sequence once wildcards fill the holes. Duplicate naturals invalidate the
// group. A group of only wildcards qualifies.
func IsRun(cards []Card, minSize int) bool {
	if len(cards) < minSize {
		return false
	}
	reference, ok := findNatural(cards)
	if !ok {
		return true
	}

	for _, c := range cards {
		if !c.IsWildcard() && c.Suit != reference.Suit {
			return false
		}
	}

	naturals := make([]int, 0, len(cards))
	for _, c := range cards {
		if !c.IsWildcard() {
			naturals = append(naturals, c.RunValue())
		}
	}
	sort.Ints(naturals)
	wildCount := len(cards) - len(naturals)

	neededWilds := 0
	for i := 0; i < len(naturals)-1; i++ {
		gap := naturals[i+1] - naturals[i] - 1
		if gap < 0 {
			// duplicate rank
			return false
		}
		neededWilds += gap
	}
	return wildCount >= neededWilds
}

/*
Validate checks a whole proposed meld against the contract.

Group-to-requirement assignment is greedy in group order: a group that
satisfies a still-needed set is consumed as a set, else a still-needed run as
a run, else it is accepted as a surplus group if it independently qualifies
as either. A group that is neither rejects the entire meld. This greedy,
order-dependent matching is intentional and kept for compatibility; it is not
full constraint satisfaction.
*/
func (c Contract) Validate(groups [][]Card) bool {
	neededSets := c.RequiredSets
	neededRuns := c.RequiredRuns

	for _, group := range groups {
		canBeSet := IsSet(group, c.SetSize)
		canBeRun := IsRun(group, c.RunSize)

		switch {
		case neededSets > 0 && canBeSet:
			neededSets--
		case neededRuns > 0 && canBeRun:
			neededRuns--
		case canBeSet || canBeRun:
			// surplus group, allowed
		default:
			return false
		}
	}

	return neededSets <= 0 && neededRuns <= 0
}

func findNatural(cards []Card) (Card, bool) {
	for _, c := range cards {
		if !c.IsWildcard() {
			return c, true
		}
	}
	return Card{}, false
}

package game

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/evaluator"
	"github.com/lox/holdem/internal/randutil"
)

func hand(t *testing.T, hole, board string) evaluator.HandResult {
	t.Helper()
	return evaluator.Evaluate(deck.MustParseCards(hole), deck.MustParseCards(board))
}

const dryBoard = "Kc Qd 2s 8s Jh"

func TestBuildPotLayers(t *testing.T) {
	t.Parallel()

	contributions := map[int]int{0: 100, 1: 300, 2: 500, 3: 0}
	layers := BuildPotLayers(contributions, func(int) bool { return true })

	require.Len(t, layers, 3)
	assert.Equal(t, PotLayer{Level: 100, Amount: 300, Contributors: []int{0, 1, 2}, Eligible: []int{0, 1, 2}}, layers[0])
	assert.Equal(t, PotLayer{Level: 300, Amount: 400, Contributors: []int{1, 2}, Eligible: []int{1, 2}}, layers[1])
	assert.Equal(t, PotLayer{Level: 500, Amount: 200, Contributors: []int{2}, Eligible: []int{2}}, layers[2])
}

func TestAllocatePotsThreeWayAllIn(t *testing.T) {
	t.Parallel()

	contributions := map[int]int{0: 100, 1: 300, 2: 500}
	hands := map[int]evaluator.HandResult{
		0: hand(t, "AsAh", dryBoard),
		1: hand(t, "9s9h", dryBoard),
		2: hand(t, "3s4h", dryBoard),
	}

	alloc := AllocatePots(contributions, hands)
	assert.Equal(t, map[int]int{0: 300, 1: 400, 2: 200}, alloc.Awards)
	assert.Zero(t, alloc.Unclaimed)
	require.Len(t, alloc.Layers, 3)
	assert.Equal(t, []int{0}, alloc.Layers[0].Winners)
	assert.Equal(t, []int{1}, alloc.Layers[1].Winners)
	assert.Equal(t, []int{2}, alloc.Layers[2].Winners, "uncalled chips return to their owner")
}

func TestAllocatePotsFoldedContributorFundsLayer(t *testing.T) {
	t.Parallel()

	// Seat 0 folded after putting in 150; it funds the pot but cannot win it
	contributions := map[int]int{0: 150, 1: 150, 2: 150}
	hands := map[int]evaluator.HandResult{
		1: hand(t, "5d8d", dryBoard),
		2: hand(t, "AsAd", dryBoard),
	}

	alloc := AllocatePots(contributions, hands)
	require.Len(t, alloc.Layers, 1)
	assert.Equal(t, 450, alloc.Layers[0].Amount)
	assert.Equal(t, []int{1, 2}, alloc.Layers[0].Eligible)
	assert.Equal(t, map[int]int{2: 450}, alloc.Awards)
}

func TestAllocatePotsOddChipGoesToLowestSeat(t *testing.T) {
	t.Parallel()

	contributions := map[int]int{0: 5, 1: 5, 2: 5}
	hands := map[int]evaluator.HandResult{
		0: hand(t, "3c4d", dryBoard),
		1: hand(t, "AsTc", dryBoard),
		2: hand(t, "AhTd", dryBoard),
	}

	alloc := AllocatePots(contributions, hands)
	assert.Equal(t, map[int]int{1: 8, 2: 7}, alloc.Awards)
	assert.Equal(t, []int{1, 2}, alloc.Layers[0].Winners)
}

func TestAllocatePotsUnclaimedLayer(t *testing.T) {
	t.Parallel()

	// Seat 0 made the deepest contribution and folded
	contributions := map[int]int{0: 100, 1: 50}
	hands := map[int]evaluator.HandResult{
		1: hand(t, "AsAd", dryBoard),
	}

	alloc := AllocatePots(contributions, hands)
	assert.Equal(t, map[int]int{1: 100}, alloc.Awards)
	assert.Equal(t, 50, alloc.Unclaimed)
	require.Len(t, alloc.Layers, 2)
	assert.Empty(t, alloc.Layers[1].Winners)
}

func TestAllocatePotsRandomised(t *testing.T) {
	t.Parallel()

	rng := randutil.New(7)
	d := deck.New(rng)

	for round := 0; round < 300; round++ {
		d.Reset()
		board := make([]deck.Card, 5)
		for i := range board {
			board[i], _ = d.DealCard()
		}

		seats := 2 + rng.IntN(7)
		contributions := make(map[int]int, seats)
		hands := make(map[int]evaluator.HandResult, seats)
		total := 0
		for seat := range seats {
			c := 1 + rng.IntN(500)
			contributions[seat] = c
			total += c
			hole := make([]deck.Card, 2)
			hole[0], _ = d.DealCard()
			hole[1], _ = d.DealCard()
			if seat == 0 || rng.IntN(4) > 0 {
				hands[seat] = evaluator.Evaluate(hole, board)
			}
		}

		alloc := AllocatePots(contributions, hands)

		awarded := 0
		for seat, amount := range alloc.Awards {
			_, inHand := hands[seat]
			require.True(t, inHand, "folded seat %d won chips", seat)
			awarded += amount

			// A seat can win at most what it matched from each contributor
			matched := 0
			for _, c := range contributions {
				matched += min(c, contributions[seat])
			}
			require.LessOrEqual(t, amount, matched)
		}
		require.Equal(t, total, awarded+alloc.Unclaimed, "chips must be conserved")

		// A unique best hand wins everything it matched
		best := slices.MaxFunc(slices.Collect(maps.Keys(hands)), func(a, b int) int {
			return evaluator.Compare(hands[a], hands[b])
		})
		unique := true
		for seat, h := range hands {
			if seat != best && h.Ties(hands[best]) {
				unique = false
			}
		}
		if unique {
			matched := 0
			for _, c := range contributions {
				matched += min(c, contributions[best])
			}
			require.Equal(t, matched, alloc.Awards[best])
		}
	}
}

// perChipShares splits the pot one chip level at a time: each level is shared
// equally by the best eligible hands among seats that reached it.
func perChipShares(contributions map[int]int, hands map[int]evaluator.HandResult) (map[int]float64, int) {
	top := 0
	for _, c := range contributions {
		top = max(top, c)
	}

	shares := make(map[int]float64)
	unclaimed := 0
	for level := 1; level <= top; level++ {
		chips := 0
		var best []int
		for seat, c := range contributions {
			if c < level {
				continue
			}
			chips++
			h, ok := hands[seat]
			if !ok {
				continue
			}
			switch {
			case len(best) == 0 || evaluator.Compare(h, hands[best[0]]) > 0:
				best = []int{seat}
			case h.Ties(hands[best[0]]):
				best = append(best, seat)
			}
		}
		if len(best) == 0 {
			unclaimed += chips
			continue
		}
		for _, seat := range best {
			shares[seat] += float64(chips) / float64(len(best))
		}
	}
	return shares, unclaimed
}

func TestAllocatePotsMatchesPerChipSimulation(t *testing.T) {
	t.Parallel()

	rng := randutil.New(19)
	d := deck.New(rng)

	for round := 0; round < 200; round++ {
		d.Reset()
		board := make([]deck.Card, 5)
		for i := range board {
			board[i], _ = d.DealCard()
		}

		seats := 2 + rng.IntN(5)
		contributions := make(map[int]int, seats)
		hands := make(map[int]evaluator.HandResult, seats)
		for seat := range seats {
			contributions[seat] = 1 + rng.IntN(60)
			hole := make([]deck.Card, 2)
			hole[0], _ = d.DealCard()
			hole[1], _ = d.DealCard()
			if rng.IntN(3) > 0 {
				hands[seat] = evaluator.Evaluate(hole, board)
			}
		}

		alloc := AllocatePots(contributions, hands)
		shares, unclaimed := perChipShares(contributions, hands)

		require.Equal(t, unclaimed, alloc.Unclaimed)
		for seat := range contributions {
			// Odd chips are settled per layer, so each layer can shift one chip
			assert.InDelta(t, shares[seat], float64(alloc.Awards[seat]), float64(len(alloc.Layers)),
				"round %d seat %d", round, seat)
		}
	}
}

package evaluator

import (
	"testing"

	chpoker "github.com/chehsunliu/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/randutil"
)

func eval(t *testing.T, hole, board string) HandResult {
	t.Helper()
	h, err := deck.ParseCards(hole)
	require.NoError(t, err)
	b, err := deck.ParseCards(board)
	require.NoError(t, err)
	return Evaluate(h, b)
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hole     string
		board    string
		category Category
		kickers  []int
	}{
		{"royal flush", "AsKs", "QsJsTs9h8h", StraightFlush, []int{14}},
		{"steel wheel", "As2s", "3s4s5sKhKd", StraightFlush, []int{5}},
		{"quads", "AsAh", "AdAcKs2h3h", FourOfAKind, []int{14, 13}},
		{"full house from two trips", "KsKh", "KdAsAhAd2c", FullHouse, []int{14, 13}},
		{"flush picks top five", "AsKs", "Qs8s6s4s3h", Flush, []int{14, 13, 12, 8, 6}},
		{"broadway", "AsKh", "QdJcTs9h8h", Straight, []int{14}},
		{"wheel", "Ah2d", "3c4s5h9dKc", Straight, []int{5}},
		{"trips", "AsAh", "AdKs9c7h5h", ThreeOfAKind, []int{14, 13, 9}},
		{"two pair plays best two", "AsAh", "KdKs9c9h5h", TwoPair, []int{14, 13, 9}},
		{"one pair", "AsAh", "KdQs9c7h5h", OnePair, []int{14, 13, 12, 9}},
		{"high card", "As3h", "KdQs9c7h5h", HighCard, []int{14, 13, 12, 9, 7}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := eval(t, tc.hole, tc.board)
			assert.Equal(t, tc.category, result.Category)
			assert.Equal(t, tc.kickers, result.Kickers)
			assert.Len(t, result.Best, 5)
		})
	}
}

func TestEvaluateFewerThanFiveCards(t *testing.T) {
	t.Parallel()

	result := eval(t, "7sAs", "")
	assert.Equal(t, HighCard, result.Category)
	assert.Equal(t, []int{14, 7}, result.Kickers)

	// A pair in the hole is still ranked as high card without a full hand
	result = eval(t, "KsKd", "2c")
	assert.Equal(t, HighCard, result.Category)
	assert.Equal(t, []int{13, 13, 2}, result.Kickers)
}

func TestWheelOrdering(t *testing.T) {
	t.Parallel()

	wheel := eval(t, "As2d", "3c4h5s")
	sixHigh := eval(t, "6s2d", "3c4h5s")
	pair := eval(t, "AsAd", "3c4h9s")

	assert.Equal(t, Straight, wheel.Category)
	assert.Equal(t, []int{5}, wheel.Kickers)
	assert.True(t, sixHigh.Beats(wheel), "six-high straight must beat the wheel")
	assert.True(t, wheel.Beats(pair), "wheel must beat a pair")
	assert.Equal(t, deck.Five, wheel.Best[0].Rank, "wheel is led by the five")
}

func TestKickersDecideTies(t *testing.T) {
	t.Parallel()

	board := "KhKd7c4s2h"
	aceKicker := eval(t, "As9c", board)
	queenKicker := eval(t, "Qs9c", board)
	sameAce := eval(t, "Ac9d", board)

	assert.Equal(t, 1, Compare(aceKicker, queenKicker))
	assert.Equal(t, -1, Compare(queenKicker, aceKicker))
	assert.True(t, aceKicker.Ties(sameAce))

	// Board plays for both: split
	boardStraight := "9h8d7c6s5h"
	assert.True(t, eval(t, "2c3d", boardStraight).Ties(eval(t, "2h3s", boardStraight)))
}

func TestHandResultString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Full House, Kings full of Aces", eval(t, "KsKh", "KdAsAh2c3d").String())
	assert.Equal(t, "Straight, Five high", eval(t, "Ah2d", "3c4s5h9dKc").String())
	assert.Equal(t, "Two Pair, Sixes and Twos", eval(t, "6s6h", "2d2c9h").String())
}

func toOracle(t *testing.T, cards []deck.Card) []chpoker.Card {
	t.Helper()
	out := make([]chpoker.Card, len(cards))
	for i, c := range cards {
		out[i] = chpoker.NewCard(c.Text())
	}
	return out
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// The oracle ranks lower-is-better; our Compare must agree on every pair.
func TestCompareMatchesOracle(t *testing.T) {
	t.Parallel()

	rng := randutil.New(2024)
	d := deck.New(rng)

	for i := 0; i < 2000; i++ {
		d.Reset()
		cards := make([]deck.Card, 0, 14)
		for range 14 {
			c, err := d.DealCard()
			require.NoError(t, err)
			cards = append(cards, c)
		}
		a, b := cards[:7], cards[7:]

		ours := Compare(Evaluate(a[:2], a[2:]), Evaluate(b[:2], b[2:]))
		oracleA := chpoker.Evaluate(toOracle(t, a))
		oracleB := chpoker.Evaluate(toOracle(t, b))
		theirs := sign(int(oracleB) - int(oracleA))

		require.Equal(t, theirs, ours, "hands %v vs %v", a, b)
	}
}

func TestCompareIsTotalOrder(t *testing.T) {
	t.Parallel()

	rng := randutil.New(99)
	d := deck.New(rng)
	hands := make([]HandResult, 0, 60)
	for range 60 {
		d.Reset()
		cards := make([]deck.Card, 0, 7)
		for range 7 {
			c, err := d.DealCard()
			require.NoError(t, err)
			cards = append(cards, c)
		}
		hands = append(hands, Evaluate(cards[:2], cards[2:]))
	}

	for _, a := range hands {
		for _, b := range hands {
			require.Equal(t, -Compare(b, a), Compare(a, b), "antisymmetry")
			for _, c := range hands {
				if Compare(a, b) >= 0 && Compare(b, c) >= 0 {
					require.GreaterOrEqual(t, Compare(a, c), 0, "transitivity")
				}
			}
		}
	}
}

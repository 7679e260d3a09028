// Package evaluator ranks Texas Hold'em hands.
//
// Evaluate picks the best five-card hand out of up to seven cards by
// classifying every five-card subset, so the result carries the actual cards
// used and an ordered kicker list that decides ties.
package evaluator

import (
	"fmt"
	"slices"

	"github.com/lox/holdem/internal/deck"
)

// Category is the class of a five-card poker hand, ordered from weakest (1) to strongest (9)
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandResult is the evaluated strength of a hand.
type HandResult struct {
	Category Category
	Best     []deck.Card // the five cards that make the hand (fewer if fewer were available)
	Kickers  []int       // rank values deciding ties, most significant first
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 when they tie.
func Compare(a, b HandResult) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	return slices.Compare(a.Kickers, b.Kickers)
}

// Beats reports whether h is strictly stronger than other
func (h HandResult) Beats(other HandResult) bool {
	return Compare(h, other) > 0
}

// Ties reports whether h and other split a pot
func (h HandResult) Ties(other HandResult) bool {
	return Compare(h, other) == 0
}

// String describes the hand, e.g. "Full House, Kings full of Twos".
func (h HandResult) String() string {
	if len(h.Kickers) == 0 {
		return h.Category.String()
	}
	k := h.Kickers
	switch h.Category {
	case StraightFlush, Straight:
		return fmt.Sprintf("%s, %s high", h.Category, rankName(k[0]))
	case FourOfAKind:
		return fmt.Sprintf("%s, %s", h.Category, plural(k[0]))
	case FullHouse:
		return fmt.Sprintf("%s, %s full of %s", h.Category, plural(k[0]), plural(k[1]))
	case Flush, HighCard:
		return fmt.Sprintf("%s, %s high", h.Category, rankName(k[0]))
	case ThreeOfAKind, OnePair:
		return fmt.Sprintf("%s, %s", h.Category, plural(k[0]))
	case TwoPair:
		return fmt.Sprintf("%s, %s and %s", h.Category, plural(k[0]), plural(k[1]))
	default:
		return h.Category.String()
	}
}

// Evaluate returns the best hand that can be made from the hole cards and the board.
// With fewer than five cards available only High Card is possible.
func Evaluate(hole, community []deck.Card) HandResult {
	cards := make([]deck.Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)

	if len(cards) < 5 {
		sorted := sortByRank(cards)
		return HandResult{
			Category: HighCard,
			Best:     sorted,
			Kickers:  ranksOf(sorted),
		}
	}

	var best HandResult
	var combo [5]deck.Card
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						combo = [5]deck.Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						result := classify(combo)
						if best.Category == 0 || result.Beats(best) {
							best = result
						}
					}
				}
			}
		}
	}
	return best
}

// classify ranks exactly five cards
func classify(cards [5]deck.Card) HandResult {
	var counts [deck.Ace + 1]int
	flush := true
	for i, c := range cards {
		counts[c.Rank]++
		if i > 0 && c.Suit != cards[0].Suit {
			flush = false
		}
	}

	// Group ranks by multiplicity, larger groups first, then higher ranks
	type group struct {
		rank  deck.Rank
		count int
	}
	groups := make([]group, 0, 5)
	for r := deck.Ace; r >= deck.Two; r-- {
		if counts[r] > 0 {
			groups = append(groups, group{rank: r, count: counts[r]})
		}
	}
	slices.SortStableFunc(groups, func(x, y group) int {
		return y.count - x.count
	})

	ordered := make([]deck.Card, 0, 5)
	for _, g := range groups {
		for _, c := range sortByRank(cards[:]) {
			if c.Rank == g.rank {
				ordered = append(ordered, c)
			}
		}
	}

	kickers := make([]int, len(groups))
	for i, g := range groups {
		kickers[i] = int(g.rank)
	}

	straightHigh := 0
	if len(groups) == 5 {
		switch {
		case int(groups[0].rank)-int(groups[4].rank) == 4:
			straightHigh = int(groups[0].rank)
		case groups[0].rank == deck.Ace && groups[1].rank == deck.Five:
			// Wheel: the ace plays low and the five leads
			straightHigh = 5
			ordered = append(ordered[1:], ordered[0])
		}
	}

	switch {
	case straightHigh > 0 && flush:
		return HandResult{Category: StraightFlush, Best: ordered, Kickers: []int{straightHigh}}
	case groups[0].count == 4:
		return HandResult{Category: FourOfAKind, Best: ordered, Kickers: kickers}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandResult{Category: FullHouse, Best: ordered, Kickers: kickers}
	case flush:
		return HandResult{Category: Flush, Best: ordered, Kickers: kickers}
	case straightHigh > 0:
		return HandResult{Category: Straight, Best: ordered, Kickers: []int{straightHigh}}
	case groups[0].count == 3:
		return HandResult{Category: ThreeOfAKind, Best: ordered, Kickers: kickers}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandResult{Category: TwoPair, Best: ordered, Kickers: kickers}
	case groups[0].count == 2:
		return HandResult{Category: OnePair, Best: ordered, Kickers: kickers}
	default:
		return HandResult{Category: HighCard, Best: ordered, Kickers: kickers}
	}
}

// sortByRank returns a copy of cards ordered by descending rank, ties broken by suit
func sortByRank(cards []deck.Card) []deck.Card {
	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, func(a, b deck.Card) int {
		if a.Rank != b.Rank {
			return int(b.Rank) - int(a.Rank)
		}
		return int(a.Suit) - int(b.Suit)
	})
	return sorted
}

func ranksOf(cards []deck.Card) []int {
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = int(c.Rank)
	}
	return ranks
}

var rankNames = map[int]string{
	2: "Two", 3: "Three", 4: "Four", 5: "Five", 6: "Six", 7: "Seven", 8: "Eight",
	9: "Nine", 10: "Ten", 11: "Jack", 12: "Queen", 13: "King", 14: "Ace",
}

func rankName(r int) string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "?"
}

func plural(r int) string {
	name := rankName(r)
	if r == 6 {
		return name + "es"
	}
	return name + "s"
}

package game

import (
	"maps"
	"slices"

	"github.com/lox/holdem/internal/evaluator"
)

// PotLayer is one slice of the pot: every contributor put in at least Level
// chips, and only Eligible seats (those still holding a hand) can win it.
type PotLayer struct {
	Level        int   `json:"level"`
	Amount       int   `json:"amount"`
	Contributors []int `json:"contributors"`
	Eligible     []int `json:"eligible"`
}

// LayerResult is a layer after it has been awarded
type LayerResult struct {
	PotLayer
	Winners []int                 `json:"winners,omitempty"`
	Best    *evaluator.HandResult `json:"-"`
}

// Allocation is the outcome of splitting a pot between the showdown hands
type Allocation struct {
	Layers    []LayerResult
	Awards    map[int]int // seat -> chips won
	Unclaimed int         // chips in layers nobody was eligible for
}

// BuildPotLayers slices contributions into layers at each distinct
// contribution level, smallest first. A seat is eligible for a layer if it
// contributed to it and inHand reports it still contests the pot. Seats with
// no contribution are ignored.
func BuildPotLayers(contributions map[int]int, inHand func(seat int) bool) []PotLayer {
	var levels []int
	for _, amount := range contributions {
		if amount > 0 && !slices.Contains(levels, amount) {
			levels = append(levels, amount)
		}
	}
	slices.Sort(levels)

	seats := slices.Sorted(maps.Keys(contributions))
	layers := make([]PotLayer, 0, len(levels))
	prev := 0
	for _, level := range levels {
		layer := PotLayer{Level: level}
		for _, seat := range seats {
			if contributions[seat] >= level {
				layer.Contributors = append(layer.Contributors, seat)
				if inHand(seat) {
					layer.Eligible = append(layer.Eligible, seat)
				}
			}
		}
		layer.Amount = (level - prev) * len(layer.Contributors)
		layers = append(layers, layer)
		prev = level
	}
	return layers
}

// AllocatePots awards every layer to the best eligible hands. hands holds the
// evaluated hand of each seat still in the pot; contributions holds every
// seat's total commitment for the hand, folded seats included. A split layer
// is divided evenly and the odd chips go one each to the lowest seat ids.
// Layers with no eligible seat are reported in Unclaimed and not awarded.
func AllocatePots(contributions map[int]int, hands map[int]evaluator.HandResult) Allocation {
	alloc := Allocation{Awards: make(map[int]int)}
	inHand := func(seat int) bool {
		_, ok := hands[seat]
		return ok
	}

	for _, layer := range BuildPotLayers(contributions, inHand) {
		result := LayerResult{PotLayer: layer}
		if len(layer.Eligible) == 0 {
			alloc.Unclaimed += layer.Amount
			alloc.Layers = append(alloc.Layers, result)
			continue
		}

		var best evaluator.HandResult
		for i, seat := range layer.Eligible {
			h := hands[seat]
			switch {
			case i == 0 || h.Beats(best):
				best = h
				result.Winners = []int{seat}
			case h.Ties(best):
				result.Winners = append(result.Winners, seat)
			}
		}
		result.Best = &best

		for seat, share := range splitPot(layer.Amount, result.Winners) {
			alloc.Awards[seat] += share
		}
		alloc.Layers = append(alloc.Layers, result)
	}
	return alloc
}

// splitPot divides amount between winners, which must be sorted ascending;
// the remainder goes one chip each to the first winners.
func splitPot(amount int, winners []int) map[int]int {
	shares := make(map[int]int, len(winners))
	base := amount / len(winners)
	rem := amount % len(winners)
	for i, seat := range winners {
		shares[seat] = base
		if i < rem {
			shares[seat]++
		}
	}
	return shares
}

package blackjack

import "fmt"

// CountingSystem names a card counting system.
type CountingSystem string

const HiLo CountingSystem = "Hi-Lo"

// countWeights holds per-rank weights indexed by rank-1.
var countWeights = map[CountingSystem][13]int{
	HiLo: {-1, 1, 1, 1, 1, 1, 0, 0, 0, -1, -1, -1, -1},
}

// Weight returns the weight of a single card under system.
func (sys CountingSystem) Weight(c Card) (int, error) {
	weights, ok := countWeights[sys]
	if !ok {
		return 0, fmt.Errorf("unknown counting system %q", sys)
	}
	if !c.Rank.Valid() {
		return 0, fmt.Errorf("%w: rank %d", ErrInvalidCard, c.Rank)
	}
	return weights[c.Rank-1], nil
}

// Count returns the running count of cards under system.
func (sys CountingSystem) Count(cards []Card) (int, error) {
	total := 0
	for _, c := range cards {
		w, err := sys.Weight(c)
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}

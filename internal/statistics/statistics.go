package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/round"
)

// RoundResult represents the outcome of a single settled round
type RoundResult struct {
	Net        float64 // Paid minus wagered
	Wagered    float64
	Paid       float64
	SideBets   float64 // Side bet payouts included in Paid
	Seed       int64   // Shoe seed, 0 for stacked shoes
	Hands      int     // 2 after a split
	Blackjacks int
	Busts      int
	Surrenders int
}

// FromRound summarises a settled round.
func FromRound(res *round.Result) RoundResult {
	r := RoundResult{
		Net:      res.Net(),
		Wagered:  res.Wagered,
		Paid:     res.Paid,
		SideBets: res.SideBets.Total(),
		Seed:     res.Seed,
		Hands:    len(res.Hands),
	}
	for _, h := range res.Hands {
		switch {
		case h.Surrendered:
			r.Surrenders++
		case h.Busted:
			r.Busts++
		case h.Blackjack:
			r.Blackjacks++
		}
	}
	return r
}

// Statistics tracks results across replayed rounds
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	Wins   int
	Pushes int
	Losses int

	TotalWagered float64
	TotalPaid    float64
	SideBetsPaid float64

	Splits     int
	Blackjacks int
	Busts      int
	Surrenders int
}

// Mean returns the mean net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ReturnToPlayer returns total paid over total wagered.
func (s *Statistics) ReturnToPlayer() float64 {
	if s.TotalWagered == 0 {
		return 0
	}
	return s.TotalPaid / s.TotalWagered
}

// Add incorporates a round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := result.Net
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	switch {
	case net > 0:
		s.Wins++
	case net < 0:
		s.Losses++
	default:
		s.Pushes++
	}

	s.TotalWagered += result.Wagered
	s.TotalPaid += result.Paid
	s.SideBetsPaid += result.SideBets

	if result.Hands > 1 {
		s.Splits++
	}
	s.Blackjacks += result.Blackjacks
	s.Busts += result.Busts
	s.Surrenders += result.Surrenders
}

// Median returns the median net result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the accounting is consistent
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)", len(s.Values), s.Rounds)
	}
	if s.Wins+s.Pushes+s.Losses != s.Rounds {
		return fmt.Errorf("outcomes (%d) do not match rounds (%d)", s.Wins+s.Pushes+s.Losses, s.Rounds)
	}
	if math.Abs(s.TotalPaid-s.TotalWagered-s.SumNet) > 1e-6 {
		return fmt.Errorf("ledger mismatch: paid=%.2f wagered=%.2f net=%.2f", s.TotalPaid, s.TotalWagered, s.SumNet)
	}
	return nil
}

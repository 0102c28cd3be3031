package history

import "time"

// RoundHistory is a settled round encoded as TOML.
type RoundHistory struct {
	Round    string       `toml:"round"`
	Table    string       `toml:"table,omitempty"`
	Seed     int64        `toml:"seed,omitempty"`
	Time     string       `toml:"time"`
	Dealer   []string     `toml:"dealer"`
	Actions  []string     `toml:"actions"`
	Wagered  float64      `toml:"wagered"`
	Paid     float64      `toml:"paid"`
	Net      float64      `toml:"net"`
	SideBets SideBets     `toml:"side_bets"`
	Hands    []HandRecord `toml:"hands"`

	Timestamp time.Time `toml:"-"`
}

// HandRecord is one player hand of a round.
type HandRecord struct {
	Cards     []string `toml:"cards"`
	Value     int      `toml:"value"`
	Bet       float64  `toml:"bet"`
	Insurance float64  `toml:"insurance,omitempty"`
	Outcome   string   `toml:"outcome"`
	Prize     float64  `toml:"prize"`
}

// SideBets holds side bet payouts.
type SideBets struct {
	LuckyLucky   float64 `toml:"lucky_lucky"`
	PerfectPairs float64 `toml:"perfect_pairs"`
}

package history_test

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/history"
	"github.com/lox/blackjack/internal/round"
)

func settledRound(t *testing.T) *round.Result {
	t.Helper()
	cards, err := blackjack.ParseCards("8h 6c 8s 10d 3c 10s 2h 9d")
	require.NoError(t, err)

	clock := quartz.NewMock(t)
	clock.Set(time.Date(2026, 10, 19, 21, 30, 0, 0, time.UTC))
	r := round.New(blackjack.NewStackedShoe(cards), round.WithID("r-split"), round.WithBet(10), round.WithClock(clock))
	for _, a := range []blackjack.Action{"DEAL", "SPLIT", "HIT", "DOUBLE", "HIT", "STAND", "SHOWDOWN", "DEALER-HIT"} {
		require.NoError(t, r.Dispatch(a))
	}
	res, err := r.Settle()
	require.NoError(t, err)
	return res
}

func TestFormatStep(t *testing.T) {
	tests := []struct {
		name string
		step round.Step
		want string
	}{
		{"deal", round.Step{Action: blackjack.ActionDeal, Hand: -1}, "t DEAL"},
		{"hit right", round.Step{Action: blackjack.ActionHit, Hand: 0, Card: blackjack.NewCard(3, blackjack.Clubs)}, "p1 HIT 3♣"},
		{"stand left", round.Step{Action: blackjack.ActionStand, Hand: 1}, "p2 STAND"},
		{"dealer", round.Step{Action: blackjack.ActionDealerHit, Hand: -1, Card: blackjack.NewCard(blackjack.King, blackjack.Hearts)}, "d DEALER-HIT K♥"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, history.FormatStep(tt.step), tt.name)
	}
}

func TestFromResult(t *testing.T) {
	h := history.FromResult("main", settledRound(t))

	assert.Equal(t, "r-split", h.Round)
	assert.Equal(t, "2026-10-19T21:30:00Z", h.Time)
	assert.Equal(t, []string{"6♣", "10♦", "9♦"}, h.Dealer)
	assert.Equal(t, "p1 HIT 3♣", h.Actions[2])
	assert.Equal(t, "d DEALER-HIT 9♦", h.Actions[7])
	require.Len(t, h.Hands, 2)
	assert.Equal(t, history.HandRecord{Cards: []string{"8♥", "3♣", "10♠"}, Value: 21, Bet: 20, Outcome: "stood", Prize: 40}, h.Hands[0])
	assert.Equal(t, 30.0, h.Net)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	h := history.FromResult("main", settledRound(t))

	var buf bytes.Buffer
	require.NoError(t, history.Encode(&buf, h))
	assert.Contains(t, buf.String(), `round = "r-split"`)
	assert.Contains(t, buf.String(), "[[hands]]")

	got, err := history.Decode(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, h, got)

	for _, c := range got.Hands[0].Cards {
		_, err := blackjack.ParseCard(c)
		assert.NoError(t, err, "recorded cards parse back")
	}
}

func TestDecodeBadTime(t *testing.T) {
	_, err := history.Decode(strings.NewReader("round = \"r1\"\ntime = \"yesterday\"\n"))
	assert.ErrorContains(t, err, "history: round r1 time")
}

func TestEncodeNil(t *testing.T) {
	assert.Error(t, history.Encode(&bytes.Buffer{}, nil))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	h := history.FromResult("main", settledRound(t))

	path, err := history.WriteFile(dir+"/rounds", h)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "r-split.toml"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := history.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, h.Hands, got.Hands)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "open", history.Outcome(blackjack.Hand{}))
	assert.Equal(t, "blackjack", history.Outcome(blackjack.Hand{Closed: true, Blackjack: true}))
	assert.Equal(t, "busted", history.Outcome(blackjack.Hand{Closed: true, Busted: true}))
	assert.Equal(t, "surrendered", history.Outcome(blackjack.Hand{Closed: true, Surrendered: true}))
}

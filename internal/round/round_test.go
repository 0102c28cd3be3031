package round

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/blackjack"
)

var start = time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC)

// newTestRound builds a round over a stacked shoe dealt in the order
// player, up-card, player, hole card, then draws.
func newTestRound(t *testing.T, cards string, opts ...Option) (*Round, *quartz.Mock) {
	t.Helper()
	stack, err := blackjack.ParseCards(cards)
	require.NoError(t, err)

	clock := quartz.NewMock(t)
	clock.Set(start)
	opts = append([]Option{WithClock(clock), WithID("round-1"), WithBet(10)}, opts...)
	return New(blackjack.NewStackedShoe(stack), opts...), clock
}

func dispatchAll(t *testing.T, r *Round, actions ...blackjack.Action) {
	t.Helper()
	for _, a := range actions {
		require.NoError(t, r.Dispatch(a), "dispatch %s in %s", a, r.Stage())
	}
}

func TestRoundStandAndDealerBust(t *testing.T) {
	r, _ := newTestRound(t, "10h 9c 8s 7d Kc")
	assert.Equal(t, blackjack.StageReady, r.Stage())

	dispatchAll(t, r, blackjack.ActionDeal)
	assert.Equal(t, blackjack.StagePlayerTurnRight, r.Stage())
	assert.Equal(t, "9♣", blackjack.FormatCards(r.DealerCards()))

	dispatchAll(t, r, blackjack.ActionStand)
	assert.Equal(t, blackjack.StageShowdown, r.Stage())

	dispatchAll(t, r, blackjack.ActionShowdown, blackjack.ActionDealerHit)
	assert.Equal(t, "9♣ 7♦ K♣", blackjack.FormatCards(r.DealerCards()))

	res, err := r.Settle()
	require.NoError(t, err)
	assert.Equal(t, []float64{20}, res.Prizes)
	assert.Equal(t, 10.0, res.Wagered)
	assert.Equal(t, 10.0, res.Net())
	assert.Equal(t, blackjack.StageReady, r.Stage())
	assert.Equal(t, "round-1", res.ID)
}

func TestRoundGate(t *testing.T) {
	r, _ := newTestRound(t, "10h 9c 8s 7d Kc")

	err := r.Dispatch(blackjack.ActionHit)
	assert.ErrorIs(t, err, ErrActionNotAllowed)

	dispatchAll(t, r, blackjack.ActionDeal)
	assert.ErrorIs(t, r.Dispatch(blackjack.ActionDealerHit), ErrActionNotAllowed)
	assert.ErrorIs(t, r.Dispatch(blackjack.ActionDeal), ErrActionNotAllowed)
	assert.ErrorIs(t, r.Dispatch(blackjack.ActionSplit), ErrActionUnavailable, "10 and 8 are not a pair")
	assert.ErrorIs(t, r.Dispatch(blackjack.ActionInsurance), ErrActionUnavailable, "no ace showing")
	assert.ErrorIs(t, r.Dispatch(blackjack.ActionRestore), ErrUseRestore)
	assert.ErrorIs(t, r.Dispatch("FOLD"), ErrActionNotAllowed)

	_, err = r.Settle()
	assert.ErrorIs(t, err, ErrActionNotAllowed)
}

func TestRoundSplit(t *testing.T) {
	r, _ := newTestRound(t, "8h 6c 8s 10d 3c 10s 2h 9d")
	dispatchAll(t, r, blackjack.ActionDeal, blackjack.ActionSplit)

	hands := r.Hands()
	require.Len(t, hands, 2)
	assert.Equal(t, "8♥", blackjack.FormatCards(hands[0].Cards))
	assert.Equal(t, "8♠", blackjack.FormatCards(hands[1].Cards))
	assert.Equal(t, blackjack.Actions{Hit: true}, hands[0].Actions)
	assert.Equal(t, blackjack.StagePlayerTurnRight, r.Stage())

	assert.ErrorIs(t, r.Dispatch(blackjack.ActionStand), ErrActionUnavailable, "a split hand must draw first")

	dispatchAll(t, r, blackjack.ActionHit)
	assert.True(t, r.Hands()[0].Actions.Double)

	dispatchAll(t, r, blackjack.ActionDouble)
	assert.Equal(t, blackjack.StagePlayerTurnLeft, r.Stage())
	assert.Equal(t, 20.0, r.Hands()[0].Bet)
	assert.ErrorIs(t, r.Dispatch(blackjack.ActionSurrender), ErrActionNotAllowed)

	dispatchAll(t, r, blackjack.ActionHit, blackjack.ActionStand)
	assert.Equal(t, blackjack.StageShowdown, r.Stage())

	dispatchAll(t, r, blackjack.ActionShowdown, blackjack.ActionDealerHit)
	res, err := r.Settle()
	require.NoError(t, err)
	assert.Equal(t, []float64{40, 20}, res.Prizes)
	assert.Equal(t, 30.0, res.Wagered)
	assert.Equal(t, 30.0, res.Net())

	steps := res.Steps
	require.Len(t, steps, 8)
	assert.Equal(t, 0, steps[2].Hand)
	assert.Equal(t, "3♣", steps[2].Card.String())
	assert.Equal(t, 1, steps[4].Hand)
	assert.Equal(t, blackjack.StagePlayerTurnLeft, steps[4].Stage)
}

func TestRoundNaturalSkipsPlayerTurn(t *testing.T) {
	r, _ := newTestRound(t, "Ah 9c Kd 7d")
	dispatchAll(t, r, blackjack.ActionDeal)
	assert.Equal(t, blackjack.StageShowdown, r.Stage())
	assert.ErrorIs(t, r.Dispatch(blackjack.ActionHit), ErrActionNotAllowed)

	dispatchAll(t, r, blackjack.ActionStand)
	assert.Equal(t, blackjack.StageDealerTurn, r.Stage(), "STAND at showdown reveals the dealer")

	res, err := r.Settle()
	require.NoError(t, err)
	assert.Equal(t, []float64{25}, res.Prizes)
}

func TestRoundInsurance(t *testing.T) {
	r, _ := newTestRound(t, "Ah As Kd Kc")
	dispatchAll(t, r, blackjack.ActionDeal)
	assert.Equal(t, blackjack.StagePlayerTurnRight, r.Stage(), "natural waits for the insurance decision")

	dispatchAll(t, r, blackjack.ActionInsurance)
	h := r.Hands()[0]
	assert.Equal(t, 5.0, h.InsuranceValue)
	assert.True(t, h.Closed)
	assert.Equal(t, blackjack.StageShowdown, r.Stage())

	dispatchAll(t, r, blackjack.ActionShowdown)
	res, err := r.Settle()
	require.NoError(t, err)
	assert.Equal(t, []float64{35}, res.Prizes)
	assert.Equal(t, 15.0, res.Wagered)
	assert.Equal(t, 20.0, res.Net())
}

func TestRoundInsuranceThenHit(t *testing.T) {
	r, _ := newTestRound(t, "10h Ac 5d Kd 2c")
	dispatchAll(t, r, blackjack.ActionDeal, blackjack.ActionInsurance, blackjack.ActionHit)
	assert.Equal(t, 5.0, r.Hands()[0].InsuranceValue)

	dispatchAll(t, r, blackjack.ActionStand, blackjack.ActionShowdown)
	res, err := r.Settle()
	require.NoError(t, err)
	// 17 loses to the dealer's blackjack; insurance pays 2 to 1.
	assert.Equal(t, []float64{10}, res.Prizes)
	assert.Equal(t, 15.0, res.Wagered)
}

func TestRoundInsuranceThenSplit(t *testing.T) {
	r, _ := newTestRound(t, "8h Ac 8s Kd 3c 10s")
	dispatchAll(t, r, blackjack.ActionDeal, blackjack.ActionInsurance, blackjack.ActionSplit)

	hands := r.Hands()
	require.Len(t, hands, 2)
	assert.Equal(t, 5.0, hands[0].InsuranceValue)
	assert.Zero(t, hands[1].InsuranceValue, "insurance is paid once")

	dispatchAll(t, r,
		blackjack.ActionHit, blackjack.ActionStand,
		blackjack.ActionHit, blackjack.ActionStand,
		blackjack.ActionShowdown)
	res, err := r.Settle()
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 0}, res.Prizes)
	assert.Equal(t, 25.0, res.Wagered)
	assert.Equal(t, 10.0, res.Paid)
}

func TestRoundNoInsurance(t *testing.T) {
	r, _ := newTestRound(t, "10h As 6d 9c 5s")
	dispatchAll(t, r, blackjack.ActionDeal, blackjack.ActionNoInsurance)

	h := r.Hands()[0]
	assert.Zero(t, h.InsuranceValue)
	assert.False(t, h.Actions.Insurance)
	assert.True(t, h.Actions.Hit)
	assert.ErrorIs(t, r.Dispatch(blackjack.ActionInsurance), ErrActionUnavailable)

	dispatchAll(t, r, blackjack.ActionHit)
	assert.Equal(t, 21, r.Hands()[0].Value.Hi)
}

func TestRoundSurrender(t *testing.T) {
	r, _ := newTestRound(t, "10h 9c 6s 7d")
	dispatchAll(t, r, blackjack.ActionDeal, blackjack.ActionSurrender, blackjack.ActionShowdown)

	res, err := r.Settle()
	require.NoError(t, err)
	assert.True(t, res.Hands[0].Surrendered)
	assert.Equal(t, []float64{5}, res.Prizes)
	assert.Equal(t, -5.0, res.Net())
}

func TestRoundSideBets(t *testing.T) {
	r, _ := newTestRound(t, "8h 3c 8s 7d",
		WithSideBets(
			blackjack.AvailableBets{LuckyLucky: true, PerfectPairs: true},
			blackjack.SideBets{LuckyLucky: 2, PerfectPairs: 4},
		))
	dispatchAll(t, r, blackjack.ActionDeal, blackjack.ActionStand, blackjack.ActionShowdown)

	res, err := r.Settle()
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.SideBets.LuckyLucky, "16 plus 3 is lucky")
	assert.Equal(t, 20.0, res.SideBets.PerfectPairs)
	assert.Equal(t, 16.0, res.Wagered)
	// 16 beats the dealer's 10.
	assert.Equal(t, 44.0, res.Paid)
}

func TestRoundShoeEmpty(t *testing.T) {
	r, _ := newTestRound(t, "10h 9c 8s")
	assert.ErrorIs(t, r.Dispatch(blackjack.ActionDeal), ErrShoeEmpty)
	assert.Equal(t, blackjack.StageReady, r.Stage())
}

func TestRoundRestore(t *testing.T) {
	r, _ := newTestRound(t, "10h 9c 8s 7d 2c 3c")
	dispatchAll(t, r, blackjack.ActionDeal)
	snap := r.Snapshot()

	dispatchAll(t, r, blackjack.ActionStand)
	assert.Equal(t, blackjack.StageShowdown, r.Stage())

	r.Restore(snap)
	assert.Equal(t, blackjack.StagePlayerTurnRight, r.Stage())
	assert.False(t, r.Hands()[0].Closed)

	dispatchAll(t, r, blackjack.ActionHit)
	assert.Equal(t, 20, r.Hands()[0].Value.Hi)

	steps := r.Steps()
	assert.Equal(t, blackjack.ActionRestore, steps[2].Action)
	assert.Equal(t, blackjack.StageShowdown, steps[2].Stage)
}

func TestRoundRestoreKeepsSideBets(t *testing.T) {
	sideBets := WithSideBets(
		blackjack.AvailableBets{LuckyLucky: true, PerfectPairs: true},
		blackjack.SideBets{LuckyLucky: 2, PerfectPairs: 4},
	)
	r, _ := newTestRound(t, "8h 3c 8s 7d", sideBets)
	dispatchAll(t, r, blackjack.ActionDeal)
	snap := r.Snapshot()
	assert.Equal(t, 20.0, snap.SideBets.PerfectPairs)

	fresh, _ := newTestRound(t, "", sideBets)
	fresh.Restore(snap)
	dispatchAll(t, fresh, blackjack.ActionStand, blackjack.ActionShowdown)

	res, err := fresh.Settle()
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.SideBets.LuckyLucky)
	assert.Equal(t, 20.0, res.SideBets.PerfectPairs)
	assert.Equal(t, 16.0, res.Wagered)
	assert.Equal(t, 44.0, res.Paid)
}

func TestRoundStepTimestamps(t *testing.T) {
	r, clock := newTestRound(t, "10h 9c 8s 7d")
	dispatchAll(t, r, blackjack.ActionDeal)
	clock.Advance(3 * time.Second)
	dispatchAll(t, r, blackjack.ActionStand)

	steps := r.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, start, steps[0].At)
	assert.Equal(t, start.Add(3*time.Second), steps[1].At)
}

func TestRoundGeneratesID(t *testing.T) {
	a := New(blackjack.NewStackedShoe(nil))
	b := New(blackjack.NewStackedShoe(nil))
	assert.Len(t, a.ID(), 36)
	assert.NotEqual(t, a.ID(), b.ID())
}

// Package round replays a single blackjack round: it gates each action on
// the table stage, applies it to the active hand and settles the payouts.
// It makes no decisions; every action is supplied by the caller.
package round

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/logging"
)

var (
	ErrActionNotAllowed  = errors.New("action not allowed in stage")
	ErrActionUnavailable = errors.New("action not available for hand")
	ErrShoeEmpty         = errors.New("shoe is empty")
	ErrUseRestore        = errors.New("RESTORE needs a snapshot, use Restore")
)

const (
	rightHand = 0
	leftHand  = 1
	noHand    = -1
)

// Step records one dispatched action.
type Step struct {
	Action blackjack.Action
	Stage  blackjack.Stage // stage the action was dispatched in
	Hand   int             // index of the hand acted on, -1 for table actions
	Card   blackjack.Card  // card drawn by the action, zero if none
	At     time.Time
}

// Option configures a Round during creation.
type Option func(*Round)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(r *Round) {
		r.logger = logger
	}
}

// WithClock sets the clock used to timestamp steps.
func WithClock(clock quartz.Clock) Option {
	return func(r *Round) {
		r.clock = clock
	}
}

// WithID sets the round ID instead of generating a UUIDv7.
func WithID(id string) Option {
	return func(r *Round) {
		r.id = id
	}
}

// WithBet sets the initial bet placed on DEAL.
func WithBet(bet float64) Option {
	return func(r *Round) {
		r.bet = bet
	}
}

// WithSideBets sets the side bets offered by the table and the amounts
// wagered on them.
func WithSideBets(available blackjack.AvailableBets, bets blackjack.SideBets) Option {
	return func(r *Round) {
		r.available = available
		r.sideBets = bets
	}
}

// Round is the table state of one round. It is not safe for concurrent use;
// independent rounds may run in parallel.
type Round struct {
	id        string
	shoe      *blackjack.Shoe
	clock     quartz.Clock
	logger    *log.Logger
	bet       float64
	available blackjack.AvailableBets
	sideBets  blackjack.SideBets

	stage      blackjack.Stage
	hands      []blackjack.Hand
	dealer     []blackjack.Card
	hole       blackjack.Card
	sideResult blackjack.SideBetsInfo
	steps      []Step
}

// New creates a round in the ready stage drawing from shoe.
func New(shoe *blackjack.Shoe, opts ...Option) *Round {
	if shoe == nil {
		panic("shoe is required for a round")
	}
	r := &Round{
		shoe:   shoe,
		clock:  quartz.NewReal(),
		logger: logging.Discard(),
		stage:  blackjack.StageReady,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.id == "" {
		r.id = uuid.Must(uuid.NewV7()).String()
	}
	return r
}

// ID returns the round identifier.
func (r *Round) ID() string { return r.id }

// Stage returns the current table stage.
func (r *Round) Stage() blackjack.Stage { return r.stage }

// Hands returns the player hands; index 0 is the right hand and index 1, if
// present, the left hand created by a split.
func (r *Round) Hands() []blackjack.Hand { return slices.Clone(r.hands) }

// DealerCards returns the dealer's visible cards.
func (r *Round) DealerCards() []blackjack.Card { return slices.Clone(r.dealer) }

// Steps returns the dispatched actions in order.
func (r *Round) Steps() []Step { return slices.Clone(r.steps) }

// Dispatch applies action to the round. The stage gate is consulted first,
// then the active hand's available actions.
func (r *Round) Dispatch(action blackjack.Action) error {
	if action == blackjack.ActionRestore {
		return ErrUseRestore
	}
	if !blackjack.IsActionAllowed(action, r.stage) {
		return fmt.Errorf("%w: %s in %s", ErrActionNotAllowed, action, r.stage)
	}

	stage := r.stage
	r.logger.Debug("dispatch", "round", r.id, "action", action, "stage", stage)

	var (
		idx  = noHand
		card blackjack.Card
		err  error
	)
	switch action {
	case blackjack.ActionDeal:
		err = r.deal()
	case blackjack.ActionShowdown:
		err = r.showdown()
	case blackjack.ActionStand:
		if stage == blackjack.StageShowdown {
			err = r.showdown()
			break
		}
		idx, err = r.active(action)
		if err == nil {
			r.hands[idx] = blackjack.AfterStand(r.hands[idx])
		}
	case blackjack.ActionDealerHit:
		card, err = r.draw()
		if err == nil {
			r.dealer = append(r.dealer, card)
		}
	default:
		idx, card, err = r.playerAction(action)
	}
	if err != nil {
		return err
	}

	r.advance()
	r.steps = append(r.steps, Step{Action: action, Stage: stage, Hand: idx, Card: card, At: r.clock.Now()})
	return nil
}

func (r *Round) draw() (blackjack.Card, error) {
	c, ok := r.shoe.Draw()
	if !ok {
		return blackjack.Card{}, ErrShoeEmpty
	}
	return c, nil
}

func (r *Round) drawN(n int) ([]blackjack.Card, error) {
	cards := make([]blackjack.Card, n)
	for i := range cards {
		c, err := r.draw()
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}

func (r *Round) deal() error {
	// player, dealer up-card, player, dealer hole card
	cards, err := r.drawN(4)
	if err != nil {
		return err
	}
	player := []blackjack.Card{cards[0], cards[2]}
	r.dealer = []blackjack.Card{cards[1]}
	r.hole = cards[3]

	h, err := blackjack.AfterDeal(player, r.dealer, r.bet)
	if err != nil {
		return err
	}
	r.hands = []blackjack.Hand{h}

	r.sideResult, err = blackjack.ResolveSideBets(r.available, r.sideBets, player, r.dealer)
	if err != nil {
		return err
	}

	r.stage = blackjack.StagePlayerTurnRight
	r.logger.Info("dealt", "round", r.id, "player", blackjack.FormatCards(player), "up", r.dealer[0])
	return nil
}

// active returns the index of the hand the current stage acts on after
// checking the hand offers action.
func (r *Round) active(action blackjack.Action) (int, error) {
	idx := rightHand
	if r.stage == blackjack.StagePlayerTurnLeft {
		idx = leftHand
	}
	if idx >= len(r.hands) {
		return noHand, fmt.Errorf("%w: no hand in %s", ErrActionUnavailable, r.stage)
	}
	if !r.hands[idx].Actions.Allows(action) {
		return noHand, fmt.Errorf("%w: %s", ErrActionUnavailable, action)
	}
	return idx, nil
}

func (r *Round) playerAction(action blackjack.Action) (int, blackjack.Card, error) {
	idx, err := r.active(action)
	if err != nil {
		return noHand, blackjack.Card{}, err
	}
	h := r.hands[idx]

	var card blackjack.Card
	switch action {
	case blackjack.ActionHit, blackjack.ActionDouble:
		card, err = r.draw()
		if err != nil {
			return noHand, card, err
		}
		ev := blackjack.EventHit
		if action == blackjack.ActionDouble {
			ev = blackjack.EventDouble
		}
		h, err = blackjack.Apply(h, ev, blackjack.Context{
			Player: append(slices.Clone(h.Cards), card),
			Dealer: r.dealer,
			Bet:    h.Bet,
		})
	case blackjack.ActionSurrender:
		h, err = blackjack.Apply(h, blackjack.EventSurrender, blackjack.Context{})
	case blackjack.ActionInsurance, blackjack.ActionNoInsurance:
		stake := 0.0
		if action == blackjack.ActionInsurance {
			stake = h.Bet / 2
		}
		h, err = blackjack.Apply(h, blackjack.EventInsurance, blackjack.Context{Player: h.Cards, Dealer: r.dealer, Bet: stake})
	case blackjack.ActionSplit:
		return idx, card, r.split(h)
	default:
		err = fmt.Errorf("%w: %s", ErrActionUnavailable, action)
	}
	if err != nil {
		return noHand, card, err
	}
	r.hands[idx] = h
	return idx, card, nil
}

// split turns the right hand into two one-card hands, each carrying the
// initial bet. Both are completed with HIT.
func (r *Round) split(h blackjack.Hand) error {
	right, err := blackjack.Apply(h, blackjack.EventSplit, blackjack.Context{Player: h.Cards[:1], Dealer: r.dealer, Bet: h.Bet})
	if err != nil {
		return err
	}
	// The insurance stake stays with the right hand only.
	h.InsuranceValue = 0
	left, err := blackjack.Apply(h, blackjack.EventSplit, blackjack.Context{Player: h.Cards[1:2], Dealer: r.dealer, Bet: h.Bet})
	if err != nil {
		return err
	}
	r.hands = []blackjack.Hand{right, left}
	return nil
}

func (r *Round) showdown() error {
	if r.hole.IsZero() {
		return fmt.Errorf("%w: dealer has no hole card", ErrActionUnavailable)
	}
	r.dealer = append(r.dealer, r.hole)
	r.hole = blackjack.Card{}
	r.stage = blackjack.StageDealerTurn
	return nil
}

func (r *Round) advance() {
	switch r.stage {
	case blackjack.StagePlayerTurnRight:
		if !r.hands[rightHand].Closed {
			return
		}
		if len(r.hands) > 1 && !r.hands[leftHand].Closed {
			r.stage = blackjack.StagePlayerTurnLeft
			return
		}
		r.stage = blackjack.StageShowdown
	case blackjack.StagePlayerTurnLeft:
		if r.hands[leftHand].Closed {
			r.stage = blackjack.StageShowdown
		}
	}
}

// Result is the settled outcome of a round.
type Result struct {
	ID        string
	Seed      int64
	Hands     []blackjack.Hand
	Prizes    []float64
	Dealer    []blackjack.Card
	SideBets  blackjack.SideBetsInfo
	Wagered   float64
	Paid      float64
	Steps     []Step
	SettledAt time.Time
}

// Net returns the player's net result for the round.
func (r Result) Net() float64 {
	return r.Paid - r.Wagered
}

// Settle pays out every hand against the dealer's final cards and returns
// the round to the ready stage. It is only valid in the dealer's turn.
func (r *Round) Settle() (*Result, error) {
	if r.stage != blackjack.StageDealerTurn {
		return nil, fmt.Errorf("%w: settle in %s", ErrActionNotAllowed, r.stage)
	}

	res := &Result{
		ID:        r.id,
		Hands:     slices.Clone(r.hands),
		Prizes:    make([]float64, len(r.hands)),
		Dealer:    slices.Clone(r.dealer),
		SideBets:  r.sideResult,
		Steps:     slices.Clone(r.steps),
		SettledAt: r.clock.Now(),
	}
	for i, h := range r.hands {
		prize, err := blackjack.Prize(h, r.dealer)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i, err)
		}
		res.Prizes[i] = prize
		res.Paid += prize
		res.Wagered += h.Bet + h.InsuranceValue
	}
	if r.available.LuckyLucky {
		res.Wagered += r.sideBets.LuckyLucky
	}
	if r.available.PerfectPairs {
		res.Wagered += r.sideBets.PerfectPairs
	}
	res.Paid += r.sideResult.Total()

	r.logger.Info("settled", "round", r.id, "dealer", blackjack.FormatCards(r.dealer), "paid", res.Paid, "net", res.Net())
	r.stage = blackjack.StageReady
	return res, nil
}

// Snapshot is the externally held state a RESTORE reinstates.
type Snapshot struct {
	Stage    blackjack.Stage
	Hands    []blackjack.Hand
	Dealer   []blackjack.Card
	Hole     blackjack.Card
	Bet      float64
	SideBets blackjack.SideBetsInfo
}

// Snapshot captures the current round state.
func (r *Round) Snapshot() Snapshot {
	return Snapshot{
		Stage:    r.stage,
		Hands:    slices.Clone(r.hands),
		Dealer:   slices.Clone(r.dealer),
		Hole:     r.hole,
		Bet:      r.bet,
		SideBets: r.sideResult,
	}
}

// Restore resynchronises the round with s. RESTORE is legal in every stage.
func (r *Round) Restore(s Snapshot) {
	stage := r.stage
	r.stage = s.Stage
	r.hands = slices.Clone(s.Hands)
	r.dealer = slices.Clone(s.Dealer)
	r.hole = s.Hole
	r.bet = s.Bet
	r.sideResult = s.SideBets
	r.steps = append(r.steps, Step{Action: blackjack.ActionRestore, Stage: stage, Hand: noHand, At: r.clock.Now()})
	r.logger.Warn("restored", "round", r.id, "from", stage, "to", s.Stage)
}

package casino

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemcasino/poker"
)

const (
	// DefaultAnte is posted by every player before the pocket bet round.
	DefaultAnte = 50
	// MinPlayers and MaxPlayers bound the table size.
	MinPlayers = 2
	MaxPlayers = 10
)

var (
	// ErrInvalidTable is returned when PlayHand is given an unusable table.
	// Nothing is mutated in that case.
	ErrInvalidTable = errors.New("invalid table")
	// ErrProtocolViolation marks a decision the engine refused. The player
	// is treated as folded and the hand continues.
	ErrProtocolViolation = errors.New("protocol violation")
	// ErrNoActivePlayers marks a showdown with nobody left in. The hand is
	// voided and every contribution refunded.
	ErrNoActivePlayers = errors.New("no active players at showdown")
	// ErrPotMismatch is returned when the pot does not equal the sum of
	// contributions at resolution. The hand is voided.
	ErrPotMismatch = errors.New("pot does not match contributions")
)

// Engine plays hands of simplified Hold'em: an ante, four streets of one bet
// round and one call round each, and a showdown that splits ties. An Engine
// owns its deck and is not safe for concurrent use; run one per goroutine.
type Engine struct {
	deck    *poker.Deck
	shuffle bool
	ante    int
	logger  *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithAnte sets the ante posted by every player.
func WithAnte(ante int) Option {
	return func(e *Engine) { e.ante = ante }
}

// WithDeck makes the engine deal from d as given, from its current cursor
// and without shuffling. The caller prepares the deck before each hand.
func WithDeck(d *poker.Deck) Option {
	return func(e *Engine) { e.deck = d }
}

// NewEngine returns an engine dealing from a deck driven by rng. A nil
// logger discards output.
func NewEngine(rng *rand.Rand, logger *log.Logger, opts ...Option) *Engine {
	if rng == nil {
		panic("rng is required for the engine")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{ante: DefaultAnte, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	if e.deck == nil {
		e.deck = poker.NewDeck(rng)
		e.shuffle = true
	}
	return e
}

// Ante returns the ante.
func (e *Engine) Ante() int { return e.ante }

// PlayHand plays one hand with players seated in slice order. Bankrolls and
// per-hand player state are updated in place. Protocol violations and a
// degenerate showdown are reported in Outcome.Anomalies; an error is
// returned only when the hand could not be played, in which case every
// contribution has been refunded.
func (e *Engine) PlayHand(players []*Player) (*Outcome, error) {
	if err := e.checkTable(players); err != nil {
		return nil, err
	}
	h := newHand(e, players)
	if err := h.play(); err != nil {
		return nil, err
	}
	return h.out, nil
}

func (e *Engine) checkTable(players []*Player) error {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return fmt.Errorf("%w: %d players (want %d..%d)", ErrInvalidTable, len(players), MinPlayers, MaxPlayers)
	}
	if e.ante <= 0 {
		return fmt.Errorf("%w: ante %d", ErrInvalidTable, e.ante)
	}
	seen := make(map[*Player]bool, len(players))
	for i, p := range players {
		switch {
		case p == nil:
			return fmt.Errorf("%w: seat %d is empty", ErrInvalidTable, i)
		case seen[p]:
			return fmt.Errorf("%w: player %d seated twice", ErrInvalidTable, p.ID)
		case p.Strategy == nil:
			return fmt.Errorf("%w: player %d has no strategy", ErrInvalidTable, p.ID)
		case p.Bankroll < e.ante:
			return fmt.Errorf("%w: player %d cannot post the ante (%d < %d)", ErrInvalidTable, p.ID, p.Bankroll, e.ante)
		}
		seen[p] = true
	}
	return nil
}

// hand is the betting state of one hand in progress.
type hand struct {
	e       *Engine
	players []*Player
	logger  *log.Logger

	currentBet int
	cap        int
	capActive  bool
	foldCash   int
	numStillIn int
	board      poker.Hand

	out *Outcome
}

func newHand(e *Engine, players []*Player) *hand {
	return &hand{
		e:       e,
		players: players,
		logger:  e.logger,
		out: &Outcome{
			Payouts:       make([]int, len(players)),
			Contributions: make([]int, len(players)),
			Ranks:         make([]poker.HandRank, len(players)),
		},
	}
}

func (h *hand) play() error {
	if err := h.setup(); err != nil {
		h.void()
		return err
	}
	for s := StagePocketBet; s <= StageResolution; s++ {
		if s == StageResolution {
			return h.resolve()
		}
		if h.numStillIn <= 1 {
			// Nobody is left to bet against.
			continue
		}
		if n := s.DealCount(); n > 0 {
			if err := h.deal(s, n); err != nil {
				h.void()
				return fmt.Errorf("%s: %w", s, err)
			}
			continue
		}
		if r, ok := s.Round(); ok {
			h.bettingRound(r)
		}
	}
	return nil
}

// setup shuffles, deals two pocket cards to each seat and posts antes.
func (h *hand) setup() error {
	for _, p := range h.players {
		p.ResetHand()
	}
	h.numStillIn = len(h.players)
	if h.e.shuffle {
		h.e.deck.Shuffle()
	}
	for range 2 {
		for _, p := range h.players {
			c, err := h.e.deck.Deal()
			if err != nil {
				return fmt.Errorf("dealing pocket cards: %w", err)
			}
			_ = p.Cards.Add(c)
		}
	}
	ante := h.e.ante
	for seat, p := range h.players {
		h.commit(seat, ante)
		h.settle(seat, false)
	}
	h.currentBet = max(h.currentBet, ante)
	return nil
}

// deal burns one card then deals n board cards to every active player.
func (h *hand) deal(s Stage, n int) error {
	if _, err := h.e.deck.Deal(); err != nil {
		return err
	}
	for range n {
		c, err := h.e.deck.Deal()
		if err != nil {
			return err
		}
		_ = h.board.Add(c)
		for _, p := range h.players {
			if p.Active {
				_ = p.Cards.Add(c)
			}
		}
	}
	h.logger.Debug("dealt", "stage", s, "board", h.board.String())
	return nil
}

func (h *hand) bettingRound(r Round) {
	for seat, p := range h.players {
		if h.numStillIn <= 1 {
			return
		}
		if !p.Active {
			continue
		}
		if r.IsCall() && p.AmountIn >= h.currentBet {
			continue
		}
		d := p.Strategy.Decide(h.view(seat, r))
		h.apply(seat, r, d)
	}
}

func (h *hand) view(seat int, r Round) View {
	p := h.players[seat]
	return View{
		Round:      r,
		CurrentBet: h.currentBet,
		NumActive:  h.numStillIn,
		NumPlayers: len(h.players),
		Seat:       seat,
		AmountIn:   p.AmountIn,
		Bankroll:   p.Bankroll,
		Cards:      p.Cards,
	}
}

func (h *hand) apply(seat int, r Round, d Decision) {
	p := h.players[seat]
	rec := ActionRecord{Seat: seat, PlayerID: p.ID, Round: r, Decision: d}

	if err := h.check(p, d); err != nil {
		err = fmt.Errorf("%w: seat %d in %s: %w", ErrProtocolViolation, seat, r, err)
		h.out.Anomalies = append(h.out.Anomalies, Anomaly{Kind: AnomalyProtocolViolation, Seat: seat, Round: r, Err: err})
		h.logger.Warn("protocol violation, folding player", "player", p.Name, "round", r, "decision", d, "current_bet", h.currentBet, "err", err)
		h.fold(seat)
		rec.Violation = true
		rec.AmountIn = p.AmountIn
		h.out.Actions = append(h.out.Actions, rec)
		return
	}

	switch d.Action {
	case Fold:
		h.fold(seat)
	case Check:
	case Call, Bet, AllIn:
		h.commit(seat, d.Amount-p.AmountIn)
		rec.Refund = h.settle(seat, r.IsCall())
	}
	rec.AmountIn = p.AmountIn
	h.out.Actions = append(h.out.Actions, rec)
	h.logger.Debug("decision", "player", p.Name, "round", r, "decision", d,
		"amount_in", p.AmountIn, "current_bet", h.currentBet, "active", h.numStillIn)
}

// check validates d against the betting state.
func (h *hand) check(p *Player, d Decision) error {
	if d.Amount < 0 {
		return fmt.Errorf("negative amount %d", d.Amount)
	}
	switch d.Action {
	case Fold:
		return nil
	case Check:
		if p.AmountIn != h.currentBet {
			return fmt.Errorf("check with %d in against a bet of %d", p.AmountIn, h.currentBet)
		}
		return nil
	case Call:
		if d.Amount != h.currentBet {
			return fmt.Errorf("call of %d against a bet of %d", d.Amount, h.currentBet)
		}
	case Bet:
		if d.Amount < h.currentBet {
			return fmt.Errorf("bet of %d below the current bet of %d", d.Amount, h.currentBet)
		}
	case AllIn:
		if d.Amount != p.AmountIn+p.Bankroll {
			return fmt.Errorf("all-in of %d but stack is %d", d.Amount, p.AmountIn+p.Bankroll)
		}
		if d.Amount < h.currentBet {
			return fmt.Errorf("all-in of %d below the current bet of %d", d.Amount, h.currentBet)
		}
	default:
		return fmt.Errorf("unknown action %d", d.Action)
	}
	if d.Amount-p.AmountIn > p.Bankroll {
		return fmt.Errorf("commitment of %d exceeds bankroll %d", d.Amount-p.AmountIn, p.Bankroll)
	}
	return nil
}

// commit moves amount from the player's bankroll into the pot.
func (h *hand) commit(seat, amount int) {
	p := h.players[seat]
	p.Bankroll -= amount
	p.AmountIn += amount
	h.out.Contributions[seat] += amount
}

// settle applies the cap after a commitment. Anything above the cap, or above
// the current bet in a call round, is refunded. A bet above the current bet
// raises it, and the first player to run out of chips fixes the cap at their
// total. It returns the refund.
func (h *hand) settle(seat int, callRound bool) int {
	p := h.players[seat]
	limit := p.AmountIn
	if h.capActive {
		limit = min(limit, h.cap)
	}
	if callRound {
		limit = min(limit, h.currentBet)
	}
	refund := p.AmountIn - limit
	if refund > 0 {
		h.commit(seat, -refund)
		h.logger.Debug("refund", "player", p.Name, "amount", refund, "amount_in", p.AmountIn)
	}
	if p.AmountIn > h.currentBet {
		h.currentBet = p.AmountIn
	}
	if p.Bankroll == 0 && !h.capActive {
		h.cap = p.AmountIn
		h.capActive = true
		h.logger.Debug("cap set", "player", p.Name, "cap", h.cap)
	}
	return refund
}

func (h *hand) fold(seat int) {
	p := h.players[seat]
	if !p.Active {
		return
	}
	p.Active = false
	h.numStillIn--
	h.foldCash += p.AmountIn
}

// resolve pays out the pot.
func (h *hand) resolve() error {
	pot := h.foldCash + h.numStillIn*h.currentBet
	contributed := 0
	for _, c := range h.out.Contributions {
		contributed += c
	}
	h.out.Pot = pot
	h.out.FoldCash = h.foldCash
	h.out.CurrentBet = h.currentBet
	h.out.CapActive = h.capActive
	h.out.Cap = h.cap
	h.out.Board = h.board.Cards()

	if pot != contributed {
		h.void()
		return fmt.Errorf("%w: pot %d, contributions %d", ErrPotMismatch, pot, contributed)
	}

	switch h.numStillIn {
	case 0:
		h.out.Anomalies = append(h.out.Anomalies, Anomaly{Kind: AnomalyDegenerateShowdown, Seat: -1, Round: RiverCall, Err: ErrNoActivePlayers})
		h.logger.Warn("no active players at showdown, voiding hand", "pot", pot)
		h.void()
		return nil
	case 1:
		for seat, p := range h.players {
			if p.Active {
				h.award([]int{seat}, pot)
			}
		}
		return nil
	}

	h.out.Showdown = true
	var best poker.HandRank
	var winners []int
	for seat, p := range h.players {
		if !p.Active {
			continue
		}
		hr, err := poker.Evaluate(p.Cards)
		if err != nil {
			h.void()
			return fmt.Errorf("evaluating seat %d: %w", seat, err)
		}
		p.Rank = hr
		h.out.Ranks[seat] = hr
		switch {
		case hr > best:
			best = hr
			winners = append(winners[:0], seat)
		case hr == best:
			winners = append(winners, seat)
		}
	}
	h.award(winners, pot)
	return nil
}

// award splits pot evenly between winners in seat order; the first winner
// takes any remainder.
func (h *hand) award(winners []int, pot int) {
	share := pot / len(winners)
	for i, seat := range winners {
		amount := share
		if i == 0 {
			amount += pot % len(winners)
		}
		h.players[seat].Bankroll += amount
		h.out.Payouts[seat] += amount
	}
	h.out.Winners = winners
	h.markBroke()
	h.logger.Debug("pot awarded", "pot", pot, "winners", winners, "share", share, "showdown", h.out.Showdown)
}

// void refunds every contribution and leaves the hand without a winner.
func (h *hand) void() {
	for seat, p := range h.players {
		p.Bankroll += p.AmountIn
		h.out.Payouts[seat] = h.out.Contributions[seat]
	}
	h.out.Voided = true
	h.out.Winners = nil
	h.out.Showdown = false
}

func (h *hand) markBroke() {
	for _, p := range h.players {
		if p.Bankroll == 0 {
			p.Broke = true
		}
	}
}

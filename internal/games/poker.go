package games

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/feltworks/casino-core/internal/cards"
	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// PokerSpec is the lobby metadata for poker.
var PokerSpec = Spec{
	ID:     "poker",
	Name:   "Poker",
	Limits: BetLimits{Min: 50, Max: 2000},
}

// pokerBaseWinChance is the flat probability of beating the simulated
// opponents at a 1x multiplier. The outcome is a pure threshold draw:
// hand strength is evaluated for the table talk only. Deliberate
// simplification carried over from the product, not a bug.
const pokerBaseWinChance = 0.4

// Poker is a simplified heads-up-vs-table engine: the pot simulates two
// opponents matching the wager, and raising buys a better win multiplier.
type Poker struct {
	mu      sync.Mutex
	led     *ledger.Ledger
	src     rng.Source
	logger  *log.Logger
	newDeck func() *cards.Deck

	phase     Phase
	roundID   string
	deck      *cards.Deck
	hole      []cards.Card
	community []cards.Card
	bet       int64
	pot       int64
}

// NewPoker builds the engine around the shared ledger and source.
func NewPoker(led *ledger.Ledger, src rng.Source, logger *log.Logger) *Poker {
	return &Poker{
		led:     led,
		src:     src,
		logger:  logger.With("game", "poker"),
		newDeck: func() *cards.Deck { return cards.NewDeck(src) },
		phase:   PhaseIdle,
	}
}

// Start opens a round: the bet is deducted immediately, the pot seeds at
// three times the bet, and the player sees two hole cards plus a
// three-card flop.
func (g *Poker) Start(amount int64) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseIdle {
		return Result{}, fmt.Errorf("%w: round already in progress", ErrInvalidAction)
	}
	if err := PokerSpec.Limits.Validate(amount, g.led.Balance()); err != nil {
		return Result{}, err
	}

	g.bet = amount
	g.pot = amount * 3 // player plus two simulated opponents
	if err := g.led.ApplyDelta(-amount); err != nil {
		return Result{}, err
	}

	g.deck = g.newDeck()
	g.roundID = uuid.NewString()

	var err error
	if g.hole, err = drawN(g.deck, 2); err != nil {
		return Result{}, err
	}
	if g.community, err = drawN(g.deck, 3); err != nil {
		return Result{}, err
	}
	g.phase = PhaseDecision
	g.logger.Debug("round started", "round", g.roundID, "bet", amount, "pot", g.pot)

	return g.result("Make your decision!", SeverityInfo, 0), nil
}

// Call resolves the round at the base win multiplier.
func (g *Poker) Call() (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseDecision {
		return Result{}, fmt.Errorf("%w: no active round", ErrInvalidAction)
	}
	return g.resolve(1.0)
}

// Raise adds a second bet equal to the first, swells the pot by three
// times that, and resolves with a 1.2x win multiplier.
func (g *Poker) Raise() (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseDecision {
		return Result{}, fmt.Errorf("%w: no active round", ErrInvalidAction)
	}
	if g.bet*2 > g.led.Balance() {
		return Result{}, fmt.Errorf("%w: insufficient balance to raise", ErrInvalidBet)
	}

	g.pot += g.bet * 3
	if err := g.led.ApplyDelta(-g.bet); err != nil {
		return Result{}, err
	}
	return g.resolve(1.2)
}

// Fold surrenders the bet already in the pot. Counts as a played loss in
// the statistics but, matching long-standing behavior, does not move the
// win/loss money totals.
func (g *Poker) Fold() (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseDecision {
		return Result{}, fmt.Errorf("%w: no active round", ErrInvalidAction)
	}
	if err := g.led.RecordOutcome("poker", false); err != nil {
		return Result{}, err
	}
	g.logger.Info("round folded", "round", g.roundID, "bet", g.bet)
	g.finish()
	return g.result("You folded. You lose your bet.", SeverityError, 0), nil
}

// resolve deals the remaining community cards, names the player's best
// five-card hand for the message, then decides the round on a single
// uniform draw against 0.4 x multiplier.
func (g *Poker) resolve(winMultiplier float64) (Result, error) {
	for len(g.community) < 5 {
		c, err := g.deck.Draw()
		if err != nil {
			return Result{}, fmt.Errorf("dealing card: %w", err)
		}
		g.community = append(g.community, c)
	}

	rank := cards.BestFive(append(append([]cards.Card{}, g.hole...), g.community...))
	threshold := pokerBaseWinChance * winMultiplier
	draw := g.src.Float64()

	if draw < threshold {
		pot := g.pot
		if err := g.led.ApplyDelta(pot); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordOutcome("poker", true); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordWinLoss(pot); err != nil {
			return Result{}, err
		}
		g.logger.Info("round settled", "round", g.roundID, "won", true, "payout", pot, "hand", rank.String())
		g.finish()
		return g.result(fmt.Sprintf("You win with %s! +$%d", rank, pot), SeveritySuccess, pot), nil
	}

	if err := g.led.RecordOutcome("poker", false); err != nil {
		return Result{}, err
	}
	if err := g.led.RecordWinLoss(-g.bet); err != nil {
		return Result{}, err
	}
	g.logger.Info("round settled", "round", g.roundID, "won", false, "bet", g.bet, "hand", rank.String())
	g.finish()
	return g.result(fmt.Sprintf("Opponents win. You had %s.", rank), SeverityError, 0), nil
}

func (g *Poker) finish() {
	g.phase = PhaseIdle
	g.deck = nil
	g.pot = 0
}

func (g *Poker) result(message string, severity Severity, payout int64) Result {
	return Result{
		RoundID:  g.roundID,
		Game:     "poker",
		Phase:    g.phase,
		Message:  message,
		Severity: severity,
		Payout:   payout,
		Balance:  g.led.Balance(),
		Details: map[string]any{
			"hole_cards":      cards.Strings(g.hole),
			"community_cards": cards.Strings(g.community),
			"pot":             g.pot,
			"bet":             g.bet,
		},
	}
}

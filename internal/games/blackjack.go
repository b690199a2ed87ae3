package games

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feltworks/casino-core/internal/cards"
	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// BlackjackSpec is the lobby metadata for blackjack.
var BlackjackSpec = Spec{
	ID:     "blackjack",
	Name:   "Blackjack",
	Limits: BetLimits{Min: 10, Max: 1000},
}

// blackjackNaturalMultiplier pays a two-card 21 at 2.5x the bet.
var blackjackNaturalMultiplier = decimal.NewFromFloat(2.5)

// Blackjack is the dealer-vs-player engine. Rounds run Idle → PlayerTurn
// → settled; the dealer plays out automatically on stand, hitting to 17.
type Blackjack struct {
	mu      sync.Mutex
	led     *ledger.Ledger
	logger  *log.Logger
	newDeck func() *cards.Deck

	phase   Phase
	roundID string
	deck    *cards.Deck
	dealer  []cards.Card
	player  []cards.Card
	bet     int64
}

// NewBlackjack builds the engine around the shared ledger and source.
func NewBlackjack(led *ledger.Ledger, src rng.Source, logger *log.Logger) *Blackjack {
	return &Blackjack{
		led:     led,
		logger:  logger.With("game", "blackjack"),
		newDeck: func() *cards.Deck { return cards.NewDeck(src) },
		phase:   PhaseIdle,
	}
}

// PlaceBet starts a round: validates the wager, deals two cards each from
// a fresh shuffled deck, and hands the turn to the player. An initial 21
// stands automatically.
func (g *Blackjack) PlaceBet(amount int64) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseIdle {
		return Result{}, fmt.Errorf("%w: round already in progress", ErrInvalidAction)
	}
	if err := BlackjackSpec.Limits.Validate(amount, g.led.Balance()); err != nil {
		return Result{}, err
	}

	g.bet = amount
	g.deck = g.newDeck()
	g.roundID = uuid.NewString()

	var err error
	if g.dealer, err = drawN(g.deck, 2); err != nil {
		return Result{}, err
	}
	if g.player, err = drawN(g.deck, 2); err != nil {
		return Result{}, err
	}
	g.phase = PhasePlayerTurn
	g.logger.Debug("round started", "round", g.roundID, "bet", amount)

	if cards.BlackjackValue(g.player) == 21 {
		return g.standLocked()
	}
	return g.result("Make your move.", SeverityInfo, 0), nil
}

// Hit draws one card; going over 21 ends the round as a loss.
func (g *Blackjack) Hit() (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hitLocked()
}

func (g *Blackjack) hitLocked() (Result, error) {
	if g.phase != PhasePlayerTurn {
		return Result{}, fmt.Errorf("%w: no active round", ErrInvalidAction)
	}

	c, err := g.deck.Draw()
	if err != nil {
		return Result{}, fmt.Errorf("dealing card: %w", err)
	}
	g.player = append(g.player, c)

	if cards.BlackjackValue(g.player) > 21 {
		return g.settleLoss()
	}
	return g.result("Make your move.", SeverityInfo, 0), nil
}

// Stand ends the player's turn; the dealer draws to 17 and the round
// settles.
func (g *Blackjack) Stand() (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.standLocked()
}

func (g *Blackjack) standLocked() (Result, error) {
	if g.phase != PhasePlayerTurn {
		return Result{}, fmt.Errorf("%w: no active round", ErrInvalidAction)
	}

	for cards.BlackjackValue(g.dealer) < 17 {
		c, err := g.deck.Draw()
		if err != nil {
			return Result{}, fmt.Errorf("dealing card: %w", err)
		}
		g.dealer = append(g.dealer, c)
	}

	playerValue := cards.BlackjackValue(g.player)
	dealerValue := cards.BlackjackValue(g.dealer)

	switch {
	case dealerValue > 21 || playerValue > dealerValue:
		return g.settleWin()
	case playerValue < dealerValue:
		return g.settleLoss()
	default:
		return g.settlePush()
	}
}

// DoubleDown doubles the bet, draws exactly one card, and stands. Valid
// only on the opening two cards with balance to cover the doubled bet.
func (g *Blackjack) DoubleDown() (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlayerTurn || len(g.player) != 2 {
		return Result{}, fmt.Errorf("%w: double down only on the first two cards", ErrInvalidAction)
	}
	if g.bet*2 > g.led.Balance() {
		return Result{}, fmt.Errorf("%w: insufficient balance to double down", ErrInvalidBet)
	}

	g.bet *= 2
	res, err := g.hitLocked()
	if err != nil {
		return Result{}, err
	}
	if g.phase != PhasePlayerTurn {
		return res, nil // busted on the forced hit
	}
	return g.standLocked()
}

// settleWin credits the payout: 2.5x the bet for a two-card 21, 2x
// otherwise.
func (g *Blackjack) settleWin() (Result, error) {
	winnings := g.bet * 2
	if cards.BlackjackValue(g.player) == 21 && len(g.player) == 2 {
		winnings = decimal.NewFromInt(g.bet).Mul(blackjackNaturalMultiplier).IntPart()
	}

	if err := g.settleLedger(winnings, true); err != nil {
		return Result{}, err
	}
	g.finish()
	return g.result(fmt.Sprintf("You win! +$%d", winnings), SeveritySuccess, winnings), nil
}

func (g *Blackjack) settleLoss() (Result, error) {
	if err := g.settleLedger(-g.bet, false); err != nil {
		return Result{}, err
	}
	loss := -g.bet
	g.finish()
	return g.result(fmt.Sprintf("Dealer wins! -$%d", -loss), SeverityError, loss), nil
}

// settlePush returns the bet untouched. The played round still counts as
// a loss in the statistics; long-standing scoreboard behavior kept on
// purpose.
func (g *Blackjack) settlePush() (Result, error) {
	if err := g.led.RecordOutcome("blackjack", false); err != nil {
		return Result{}, err
	}
	g.logger.Info("round settled", "round", g.roundID, "push", true)
	g.finish()
	return g.result("Push! Your bet is returned.", SeverityInfo, 0), nil
}

func (g *Blackjack) settleLedger(payout int64, won bool) error {
	if err := g.led.ApplyDelta(payout); err != nil {
		return err
	}
	if err := g.led.RecordOutcome("blackjack", won); err != nil {
		return err
	}
	if err := g.led.RecordWinLoss(payout); err != nil {
		return err
	}
	g.logger.Info("round settled", "round", g.roundID, "won", won, "payout", payout)
	return nil
}

func (g *Blackjack) finish() {
	g.phase = PhaseIdle
	g.deck = nil
}

func (g *Blackjack) result(message string, severity Severity, payout int64) Result {
	return Result{
		RoundID:  g.roundID,
		Game:     "blackjack",
		Phase:    g.phase,
		Message:  message,
		Severity: severity,
		Payout:   payout,
		Balance:  g.led.Balance(),
		Details: map[string]any{
			"player_cards": cards.Strings(g.player),
			"dealer_cards": cards.Strings(g.dealer),
			"player_value": cards.BlackjackValue(g.player),
			"dealer_value": cards.BlackjackValue(g.dealer),
			"bet":          g.bet,
		},
	}
}

// drawN draws n cards, treating deck exhaustion as a broken invariant:
// every deal sequence fits comfortably inside 52 cards.
func drawN(d *cards.Deck, n int) ([]cards.Card, error) {
	out := make([]cards.Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := d.Draw()
		if err != nil {
			return nil, fmt.Errorf("dealing card: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

package games

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// RouletteSpec is the lobby metadata for roulette.
var RouletteSpec = Spec{
	ID:     "roulette",
	Name:   "Roulette",
	Limits: BetLimits{Min: 10, Max: 1000},
}

// RouletteBetType discriminates the supported wagers.
type RouletteBetType string

const (
	RouletteNumber RouletteBetType = "number" // exact pocket 0-36, pays 36x
	RouletteColor  RouletteBetType = "color"  // red/black/green, pays 2x
	RouletteRange  RouletteBetType = "range"  // 1-18/19-36/even/odd, pays 2x
)

// RouletteBet is one wager for the next spin. Target is the pocket number
// for number bets, the color name for color bets, or one of
// "1-18"/"19-36"/"even"/"odd" for range bets.
type RouletteBet struct {
	Type   RouletteBetType `json:"type"`
	Target string          `json:"target"`
	Amount int64           `json:"amount"`
}

// European layout red pockets.
var rouletteRed = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// Roulette accumulates bets and settles them all on one spin. Each bet is
// deducted at placement; the pending set clears after every spin.
type Roulette struct {
	mu      sync.Mutex
	led     *ledger.Ledger
	src     rng.Source
	logger  *log.Logger
	pending []RouletteBet
}

// NewRoulette builds the engine around the shared ledger and source.
func NewRoulette(led *ledger.Ledger, src rng.Source, logger *log.Logger) *Roulette {
	return &Roulette{led: led, src: src, logger: logger.With("game", "roulette")}
}

// PlaceBet validates one wager, deducts it immediately, and queues it for
// the next spin.
func (g *Roulette) PlaceBet(bet RouletteBet) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := RouletteSpec.Limits.Validate(bet.Amount, g.led.Balance()); err != nil {
		return Result{}, err
	}
	if err := validateRouletteTarget(bet); err != nil {
		return Result{}, err
	}

	if err := g.led.ApplyDelta(-bet.Amount); err != nil {
		return Result{}, err
	}
	g.pending = append(g.pending, bet)

	return Result{
		Game:     "roulette",
		Phase:    PhaseIdle,
		Message:  fmt.Sprintf("Bet placed: %s %s - $%d", bet.Type, bet.Target, bet.Amount),
		Severity: SeverityInfo,
		Balance:  g.led.Balance(),
		Details:  map[string]any{"pending_bets": append([]RouletteBet{}, g.pending...)},
	}, nil
}

// PendingBets returns a copy of the queued bets.
func (g *Roulette) PendingBets() []RouletteBet {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]RouletteBet{}, g.pending...)
}

// Spin draws the winning pocket, pays every matching bet, and clears the
// pending set win or lose.
func (g *Roulette) Spin() (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.pending) == 0 {
		return Result{}, fmt.Errorf("%w: place bets before spinning", ErrInvalidAction)
	}

	roundID := uuid.NewString()
	pocket := g.src.Intn(37)

	var totalWon, totalBet int64
	for _, bet := range g.pending {
		totalBet += bet.Amount
		if rouletteBetWins(pocket, bet) {
			totalWon += roulettePayout(bet)
		}
	}
	g.pending = nil

	res := Result{
		RoundID: roundID,
		Game:    "roulette",
		Phase:   PhaseIdle,
		Details: map[string]any{
			"pocket": pocket,
			"color":  pocketColor(pocket),
		},
	}

	if totalWon > 0 {
		if err := g.led.ApplyDelta(totalWon); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordOutcome("roulette", true); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordWinLoss(totalWon); err != nil {
			return Result{}, err
		}
		g.logger.Info("spin settled", "round", roundID, "pocket", pocket, "won", true, "payout", totalWon)
		res.Message = fmt.Sprintf("You won $%d! Winning number: %d", totalWon, pocket)
		res.Severity = SeveritySuccess
		res.Payout = totalWon
	} else {
		if err := g.led.RecordOutcome("roulette", false); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordWinLoss(-totalBet); err != nil {
			return Result{}, err
		}
		g.logger.Info("spin settled", "round", roundID, "pocket", pocket, "won", false, "staked", totalBet)
		res.Message = fmt.Sprintf("You lost. Winning number: %d", pocket)
		res.Severity = SeverityError
	}

	res.Balance = g.led.Balance()
	return res, nil
}

func validateRouletteTarget(bet RouletteBet) error {
	switch bet.Type {
	case RouletteNumber:
		n, err := strconv.Atoi(bet.Target)
		if err != nil || n < 0 || n > 36 {
			return fmt.Errorf("%w: number bet target must be 0-36", ErrInvalidBet)
		}
	case RouletteColor:
		switch bet.Target {
		case "red", "black", "green":
		default:
			return fmt.Errorf("%w: color bet target must be red, black, or green", ErrInvalidBet)
		}
	case RouletteRange:
		switch bet.Target {
		case "1-18", "19-36", "even", "odd":
		default:
			return fmt.Errorf("%w: range bet target must be 1-18, 19-36, even, or odd", ErrInvalidBet)
		}
	default:
		return fmt.Errorf("%w: unknown bet type %q", ErrInvalidBet, bet.Type)
	}
	return nil
}

// rouletteBetWins checks the bet against the winning pocket. Zero is
// green and matches no parity or range.
func rouletteBetWins(pocket int, bet RouletteBet) bool {
	switch bet.Type {
	case RouletteNumber:
		n, _ := strconv.Atoi(bet.Target)
		return n == pocket
	case RouletteColor:
		return bet.Target == pocketColor(pocket)
	case RouletteRange:
		if pocket == 0 {
			return false
		}
		switch bet.Target {
		case "1-18":
			return pocket >= 1 && pocket <= 18
		case "19-36":
			return pocket >= 19 && pocket <= 36
		case "even":
			return pocket%2 == 0
		case "odd":
			return pocket%2 == 1
		}
	}
	return false
}

// roulettePayout returns the gross payout for a winning bet.
func roulettePayout(bet RouletteBet) int64 {
	if bet.Type == RouletteNumber {
		return bet.Amount * 36
	}
	return bet.Amount * 2
}

func pocketColor(pocket int) string {
	switch {
	case pocket == 0:
		return "green"
	case rouletteRed[pocket]:
		return "red"
	default:
		return "black"
	}
}

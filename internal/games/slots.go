package games

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// SlotsSpec is the lobby metadata for slots.
var SlotsSpec = Spec{
	ID:     "slots",
	Name:   "Slots",
	Limits: BetLimits{Min: 5, Max: 500},
}

// slotSymbols is the unweighted 8-symbol reel alphabet.
var slotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "🔔", "⭐", "💎", "🎰"}

const slotReels = 5

// slotMultiplier pays by the highest symbol multiplicity across the
// five reels.
func slotMultiplier(maxCount int) int64 {
	switch maxCount {
	case 5:
		return 100
	case 4:
		return 20
	case 3:
		return 5
	case 2:
		return 2
	default:
		return 0
	}
}

// Slots spins five independent reels in one atomic settlement step.
type Slots struct {
	mu     sync.Mutex
	led    *ledger.Ledger
	src    rng.Source
	logger *log.Logger
}

// NewSlots builds the engine around the shared ledger and source.
func NewSlots(led *ledger.Ledger, src rng.Source, logger *log.Logger) *Slots {
	return &Slots{led: led, src: src, logger: logger.With("game", "slots")}
}

// Spin validates and deducts the bet, draws the reels, and settles.
func (g *Slots) Spin(amount int64) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := SlotsSpec.Limits.Validate(amount, g.led.Balance()); err != nil {
		return Result{}, err
	}
	if err := g.led.ApplyDelta(-amount); err != nil {
		return Result{}, err
	}

	roundID := uuid.NewString()
	reels := make([]string, slotReels)
	counts := make(map[string]int, slotReels)
	maxCount := 0
	for i := range reels {
		reels[i] = slotSymbols[g.src.Intn(len(slotSymbols))]
		counts[reels[i]]++
		if counts[reels[i]] > maxCount {
			maxCount = counts[reels[i]]
		}
	}

	win := amount * slotMultiplier(maxCount)

	res := Result{
		RoundID: roundID,
		Game:    "slots",
		Phase:   PhaseIdle,
		Details: map[string]any{
			"reels": reels,
			"bet":   amount,
		},
	}

	if win > 0 {
		if err := g.led.ApplyDelta(win); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordOutcome("slots", true); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordWinLoss(win); err != nil {
			return Result{}, err
		}
		g.logger.Info("spin settled", "round", roundID, "won", true, "payout", win)
		res.Message = fmt.Sprintf("You won $%d!", win)
		res.Severity = SeveritySuccess
		res.Payout = win
	} else {
		if err := g.led.RecordOutcome("slots", false); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordWinLoss(-amount); err != nil {
			return Result{}, err
		}
		g.logger.Info("spin settled", "round", roundID, "won", false, "bet", amount)
		res.Message = "Try again!"
		res.Severity = SeverityInfo
	}

	res.Balance = g.led.Balance()
	return res, nil
}

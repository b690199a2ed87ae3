package games

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// WheelSpec is the lobby metadata for wheel of fortune.
var WheelSpec = Spec{
	ID:     "wheel",
	Name:   "Wheel of Fortune",
	Limits: BetLimits{Min: 25, Max: 500},
}

// Segment multipliers in wheel order. Every segment pays, so each spin
// is a win; 2x is the floor and the single 100x segment is the jackpot.
var wheelSegments = []int64{2, 5, 3, 10, 2, 7, 4, 15, 3, 20, 5, 100}

// WheelSegments returns a copy of the wheel layout.
func WheelSegments() []int64 {
	return append([]int64{}, wheelSegments...)
}

// Wheel picks the winning segment uniformly before any presentation
// spin is computed, so rendering can never influence the outcome.
type Wheel struct {
	mu     sync.Mutex
	led    *ledger.Ledger
	src    rng.Source
	logger *log.Logger
}

// NewWheel builds the engine around the shared ledger and source.
func NewWheel(led *ledger.Ledger, src rng.Source, logger *log.Logger) *Wheel {
	return &Wheel{led: led, src: src, logger: logger.With("game", "wheel")}
}

// Spin plays one round: pick a segment, pay bet times its multiplier.
func (g *Wheel) Spin(amount int64) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := WheelSpec.Limits.Validate(amount, g.led.Balance()); err != nil {
		return Result{}, err
	}
	if err := g.led.ApplyDelta(-amount); err != nil {
		return Result{}, err
	}

	roundID := uuid.NewString()
	segment := g.src.Intn(len(wheelSegments))
	multiplier := wheelSegments[segment]
	payout := amount * multiplier

	if err := g.led.ApplyDelta(payout); err != nil {
		return Result{}, err
	}
	if err := g.led.RecordOutcome("wheel", true); err != nil {
		return Result{}, err
	}
	if err := g.led.RecordWinLoss(payout); err != nil {
		return Result{}, err
	}
	g.logger.Info("spin settled", "round", roundID, "segment", segment, "multiplier", multiplier, "payout", payout)

	msg := fmt.Sprintf("The wheel landed on %dx - you won $%d!", multiplier, payout)
	if multiplier == 100 {
		msg = fmt.Sprintf("JACKPOT! 100x - you won $%d!", payout)
	}

	return Result{
		RoundID:  roundID,
		Game:     "wheel",
		Phase:    PhaseIdle,
		Message:  msg,
		Severity: SeveritySuccess,
		Payout:   payout,
		Balance:  g.led.Balance(),
		Details: map[string]any{
			"segment":    segment,
			"multiplier": multiplier,
		},
	}, nil
}

package games

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// DiceSpec is the lobby metadata for the dice game.
var DiceSpec = Spec{
	ID:     "dice",
	Name:   "Dice",
	Limits: BetLimits{Min: 10, Max: 500},
}

// DicePrediction is the outcome the player wagers on for three d6.
type DicePrediction string

const (
	DiceHigh    DicePrediction = "high"    // sum 11-17, pays 2x
	DiceLow     DicePrediction = "low"     // sum 4-10, pays 2x
	DiceEven    DicePrediction = "even"    // even sum, pays 2x
	DiceOdd     DicePrediction = "odd"     // odd sum, pays 2x
	DiceDoubles DicePrediction = "doubles" // any two dice equal, pays 5x
)

// Dice rolls three dice against a prediction.
type Dice struct {
	mu     sync.Mutex
	led    *ledger.Ledger
	src    rng.Source
	logger *log.Logger
}

// NewDice builds the engine around the shared ledger and source.
func NewDice(led *ledger.Ledger, src rng.Source, logger *log.Logger) *Dice {
	return &Dice{led: led, src: src, logger: logger.With("game", "dice")}
}

// Roll plays one round for the given prediction.
func (g *Dice) Roll(prediction DicePrediction, amount int64) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch prediction {
	case DiceHigh, DiceLow, DiceEven, DiceOdd, DiceDoubles:
	default:
		return Result{}, fmt.Errorf("%w: unknown prediction %q", ErrInvalidBet, prediction)
	}
	if err := DiceSpec.Limits.Validate(amount, g.led.Balance()); err != nil {
		return Result{}, err
	}
	if err := g.led.ApplyDelta(-amount); err != nil {
		return Result{}, err
	}

	roundID := uuid.NewString()
	dice := []int{g.src.Intn(6) + 1, g.src.Intn(6) + 1, g.src.Intn(6) + 1}
	sum := dice[0] + dice[1] + dice[2]

	won, multiplier := dicePredictionHits(prediction, dice, sum)

	res := Result{
		RoundID: roundID,
		Game:    "dice",
		Phase:   PhaseIdle,
		Details: map[string]any{"dice": dice, "sum": sum},
	}

	if won {
		payout := amount * multiplier
		if err := g.led.ApplyDelta(payout); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordOutcome("dice", true); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordWinLoss(payout); err != nil {
			return Result{}, err
		}
		g.logger.Info("roll settled", "round", roundID, "dice", dice, "won", true, "payout", payout)
		res.Message = fmt.Sprintf("Rolled %d - you won $%d!", sum, payout)
		res.Severity = SeveritySuccess
		res.Payout = payout
	} else {
		if err := g.led.RecordOutcome("dice", false); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordWinLoss(-amount); err != nil {
			return Result{}, err
		}
		g.logger.Info("roll settled", "round", roundID, "dice", dice, "won", false)
		res.Message = fmt.Sprintf("Rolled %d - you lost.", sum)
		res.Severity = SeverityError
	}

	res.Balance = g.led.Balance()
	return res, nil
}

func dicePredictionHits(prediction DicePrediction, dice []int, sum int) (bool, int64) {
	switch prediction {
	case DiceHigh:
		return sum >= 11 && sum <= 17, 2
	case DiceLow:
		return sum >= 4 && sum <= 10, 2
	case DiceEven:
		return sum%2 == 0, 2
	case DiceOdd:
		return sum%2 == 1, 2
	default: // doubles
		return dice[0] == dice[1] || dice[1] == dice[2] || dice[0] == dice[2], 5
	}
}

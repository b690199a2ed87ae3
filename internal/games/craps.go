package games

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// CrapsSpec is the lobby metadata for craps.
var CrapsSpec = Spec{
	ID:     "craps",
	Name:   "Craps",
	Limits: BetLimits{Min: 25, Max: 1000},
}

// CrapsBetType is the wager selected for a single roll.
type CrapsBetType string

const (
	CrapsPass     CrapsBetType = "pass"
	CrapsDontPass CrapsBetType = "dont-pass"
	CrapsField    CrapsBetType = "field"
	CrapsCome     CrapsBetType = "come"
)

// Craps keeps one point across rolls. The bet type may change between
// rolls; the point is the only state that outlives a roll. Every roll
// deducts its bet, and only terminal resolutions settle the ledger and
// clear the point.
type Craps struct {
	mu     sync.Mutex
	led    *ledger.Ledger
	src    rng.Source
	logger *log.Logger
	point  *int
}

// NewCraps builds the engine around the shared ledger and source.
func NewCraps(led *ledger.Ledger, src rng.Source, logger *log.Logger) *Craps {
	return &Craps{led: led, src: src, logger: logger.With("game", "craps")}
}

// Point returns the established point, or 0 when none is set.
func (g *Craps) Point() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.point == nil {
		return 0
	}
	return *g.point
}

// Roll throws two dice for the given bet. Pass and don't-pass may
// suspend into a point phase; field and come always resolve immediately.
func (g *Craps) Roll(betType CrapsBetType, amount int64) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch betType {
	case CrapsPass, CrapsDontPass, CrapsField, CrapsCome:
	default:
		return Result{}, fmt.Errorf("%w: unknown bet type %q", ErrInvalidBet, betType)
	}
	if err := CrapsSpec.Limits.Validate(amount, g.led.Balance()); err != nil {
		return Result{}, err
	}
	if err := g.led.ApplyDelta(-amount); err != nil {
		return Result{}, err
	}

	roundID := uuid.NewString()
	d1 := g.src.Intn(6) + 1
	d2 := g.src.Intn(6) + 1
	total := d1 + d2

	res := Result{
		RoundID: roundID,
		Game:    "craps",
		Details: map[string]any{"dice": []int{d1, d2}, "total": total},
	}

	switch betType {
	case CrapsPass:
		if g.point == nil {
			switch {
			case total == 7 || total == 11:
				return g.settleRoll(res, roundID, amount, amount*2, fmt.Sprintf("Rolled %d - you won $%d!", total, amount*2))
			case total == 2 || total == 3 || total == 12:
				return g.settleRoll(res, roundID, amount, 0, fmt.Sprintf("Craps! Rolled %d - you lost.", total))
			default:
				p := total
				g.point = &p
				return g.suspend(res, fmt.Sprintf("Point is %d. Roll again!", total)), nil
			}
		}
		switch total {
		case *g.point:
			return g.settleRoll(res, roundID, amount, amount*2, fmt.Sprintf("Made the point %d - you won $%d!", total, amount*2))
		case 7:
			return g.settleRoll(res, roundID, amount, 0, "Seven out - you lost.")
		default:
			return g.suspend(res, fmt.Sprintf("Rolled %d, point is %d. Roll again!", total, *g.point)), nil
		}

	case CrapsDontPass:
		if g.point == nil {
			switch {
			case total == 2 || total == 3:
				return g.settleRoll(res, roundID, amount, amount*2, fmt.Sprintf("Rolled %d - you won $%d!", total, amount*2))
			case total == 7 || total == 11 || total == 12:
				return g.settleRoll(res, roundID, amount, 0, fmt.Sprintf("Rolled %d - you lost.", total))
			default:
				p := total
				g.point = &p
				return g.suspend(res, fmt.Sprintf("Point is %d. Roll again!", total)), nil
			}
		}
		switch total {
		case 7:
			return g.settleRoll(res, roundID, amount, amount*2, fmt.Sprintf("Seven out - you won $%d!", amount*2))
		case *g.point:
			return g.settleRoll(res, roundID, amount, 0, fmt.Sprintf("Point %d made - you lost.", total))
		default:
			return g.suspend(res, fmt.Sprintf("Rolled %d, point is %d. Roll again!", total, *g.point)), nil
		}

	case CrapsField:
		switch total {
		case 2, 12:
			return g.settleRoll(res, roundID, amount, amount*3, fmt.Sprintf("Field %d pays triple - you won $%d!", total, amount*3))
		case 3, 4, 9, 10, 11:
			return g.settleRoll(res, roundID, amount, amount*2, fmt.Sprintf("Field %d - you won $%d!", total, amount*2))
		default:
			return g.settleRoll(res, roundID, amount, 0, fmt.Sprintf("Rolled %d - field loses.", total))
		}

	default: // come
		if total == 7 || total == 11 {
			return g.settleRoll(res, roundID, amount, amount*2, fmt.Sprintf("Come %d - you won $%d!", total, amount*2))
		}
		return g.settleRoll(res, roundID, amount, 0, fmt.Sprintf("Rolled %d - come loses.", total))
	}
}

// suspend returns control without settling; the point carries over.
func (g *Craps) suspend(res Result, msg string) Result {
	res.Phase = PhasePoint
	res.Message = msg
	res.Severity = SeverityInfo
	res.Balance = g.led.Balance()
	if g.point != nil {
		res.Details["point"] = *g.point
	}
	return res
}

// settleRoll applies a terminal resolution and clears any point.
// payout is the gross credit; zero means the roll lost.
func (g *Craps) settleRoll(res Result, roundID string, amount, payout int64, msg string) (Result, error) {
	g.point = nil
	res.Phase = PhaseIdle
	res.Message = msg

	if payout > 0 {
		if err := g.led.ApplyDelta(payout); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordOutcome("craps", true); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordWinLoss(payout); err != nil {
			return Result{}, err
		}
		res.Severity = SeveritySuccess
		res.Payout = payout
		g.logger.Info("roll settled", "round", roundID, "won", true, "payout", payout)
	} else {
		if err := g.led.RecordOutcome("craps", false); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordWinLoss(-amount); err != nil {
			return Result{}, err
		}
		res.Severity = SeverityError
		g.logger.Info("roll settled", "round", roundID, "won", false, "staked", amount)
	}

	res.Balance = g.led.Balance()
	return res, nil
}

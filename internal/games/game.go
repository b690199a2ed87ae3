// Package games contains the eight casino rule engines. Each engine is a
// bet-validate → resolve → settle state machine over the shared deck and
// random-source abstractions, settling every round against the one Ledger.
package games

import "fmt"

// Severity classifies a result message for the presentation layer.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Phase is an engine's round state after an operation returns.
type Phase string

const (
	// PhaseIdle: no round in flight; the next operation is a bet.
	PhaseIdle Phase = "idle"
	// PhasePlayerTurn: blackjack awaiting hit/stand/double.
	PhasePlayerTurn Phase = "player_turn"
	// PhaseDecision: poker awaiting call/raise/fold.
	PhaseDecision Phase = "decision"
	// PhasePoint: craps point established, awaiting the next roll.
	PhasePoint Phase = "point"
)

// BetLimits bounds a single wager for one game.
type BetLimits struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Validate rejects amounts outside [Min, Max] or beyond the balance.
func (b BetLimits) Validate(amount, balance int64) error {
	if amount < b.Min || amount > b.Max {
		return fmt.Errorf("%w: bet must be between %d and %d", ErrInvalidBet, b.Min, b.Max)
	}
	if amount > balance {
		return fmt.Errorf("%w: insufficient balance", ErrInvalidBet)
	}
	return nil
}

// Spec is lobby metadata for one game.
type Spec struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Limits BetLimits `json:"limits"`
}

// Specs lists every game in lobby order.
func Specs() []Spec {
	return []Spec{
		BlackjackSpec,
		PokerSpec,
		SlotsSpec,
		RouletteSpec,
		BaccaratSpec,
		CrapsSpec,
		WheelSpec,
		DiceSpec,
	}
}

// Result is the outcome of one engine operation: the round state plus a
// user-facing message. Payout is the signed amount the operation applied
// to the balance (zero for suspensions and pushes); Balance is the
// balance after the operation.
type Result struct {
	RoundID  string         `json:"round_id"`
	Game     string         `json:"game"`
	Phase    Phase          `json:"phase"`
	Message  string         `json:"message"`
	Severity Severity       `json:"severity"`
	Payout   int64          `json:"payout"`
	Balance  int64          `json:"balance"`
	Details  map[string]any `json:"details,omitempty"`
}

package games

import "errors"

// ErrInvalidBet rejects a wager before any state is mutated: amount
// outside the game's limits, beyond the balance, or a malformed target.
var ErrInvalidBet = errors.New("invalid bet")

// ErrInvalidAction rejects an operation that doesn't fit the engine's
// current round state, like hitting with no round in flight. The round,
// if any, is left untouched.
var ErrInvalidAction = errors.New("invalid action")

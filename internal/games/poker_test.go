package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feltworks/casino-core/internal/cards"
	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// stackPoker deals two hole cards, then the flop, then the turn and
// river on resolution.
func stackPoker(g *Poker, deal ...cards.Card) {
	g.newDeck = func() *cards.Deck { return cards.Stacked(deal...) }
}

func pokerBoard() []cards.Card {
	return []cards.Card{
		card("A", "♥"), card("K", "♥"), // hole
		card("2", "♠"), card("7", "♦"), card("9", "♣"), // flop
		card("J", "♠"), card("4", "♦"), // turn, river
	}
}

func TestPokerStartDeductsBetAndSeedsPot(t *testing.T) {
	led := newTestLedger(t)
	g := NewPoker(led, rng.NewSequence(), testLogger())
	stackPoker(g, pokerBoard()...)

	res, err := g.Start(100)
	require.NoError(t, err)

	assert.Equal(t, PhaseDecision, res.Phase)
	assert.Equal(t, int64(ledger.DefaultBalance-100), led.Balance())
	assert.Equal(t, int64(300), res.Details["pot"])
	assert.Len(t, res.Details["hole_cards"], 2)
	assert.Len(t, res.Details["community_cards"], 3)
}

func TestPokerCallWinPaysFullPot(t *testing.T) {
	led := newTestLedger(t)
	g := NewPoker(led, rng.NewSequence(0.39), testLogger()) // just under 0.4
	stackPoker(g, pokerBoard()...)

	_, err := g.Start(100)
	require.NoError(t, err)
	res, err := g.Call()
	require.NoError(t, err)

	assert.Equal(t, SeveritySuccess, res.Severity)
	assert.Equal(t, int64(300), res.Payout)
	assert.Equal(t, int64(ledger.DefaultBalance+200), led.Balance())

	snap := led.Snapshot()
	assert.Equal(t, int64(1), snap.Games["poker"].Won)
	assert.Equal(t, int64(300), snap.TotalWon)
}

// The win threshold is strict: a draw of exactly 0.4 loses a call.
func TestPokerCallLossAtThreshold(t *testing.T) {
	led := newTestLedger(t)
	g := NewPoker(led, rng.NewSequence(0.4), testLogger())
	stackPoker(g, pokerBoard()...)

	_, err := g.Start(100)
	require.NoError(t, err)
	res, err := g.Call()
	require.NoError(t, err)

	assert.Equal(t, SeverityError, res.Severity)
	assert.Equal(t, int64(ledger.DefaultBalance-100), led.Balance())

	snap := led.Snapshot()
	assert.Equal(t, int64(1), snap.Games["poker"].Lost)
	assert.Equal(t, int64(100), snap.TotalLost)
}

// Raising widens the window to 0.48, so 0.45 wins a raise but would
// lose a call, and the doubled stake returns a doubled pot.
func TestPokerRaiseWidensWinWindow(t *testing.T) {
	led := newTestLedger(t)
	g := NewPoker(led, rng.NewSequence(0.45), testLogger())
	stackPoker(g, pokerBoard()...)

	_, err := g.Start(100)
	require.NoError(t, err)
	res, err := g.Raise()
	require.NoError(t, err)

	assert.Equal(t, SeveritySuccess, res.Severity)
	assert.Equal(t, int64(600), res.Payout)
	assert.Equal(t, int64(ledger.DefaultBalance-200+600), led.Balance())
}

// Folding records a played loss but never moves the money totals; the
// forfeited bet shows up only in the balance.
func TestPokerFoldCountsStatOnly(t *testing.T) {
	led := newTestLedger(t)
	g := NewPoker(led, rng.NewSequence(), testLogger())
	stackPoker(g, pokerBoard()...)

	_, err := g.Start(100)
	require.NoError(t, err)
	res, err := g.Fold()
	require.NoError(t, err)

	assert.Equal(t, PhaseIdle, res.Phase)
	assert.Equal(t, int64(ledger.DefaultBalance-100), led.Balance())

	snap := led.Snapshot()
	assert.Equal(t, int64(1), snap.Games["poker"].Played)
	assert.Equal(t, int64(1), snap.Games["poker"].Lost)
	assert.Zero(t, snap.TotalLost)
	assert.Zero(t, snap.TotalWon)
}

func TestPokerActionsRequireActiveRound(t *testing.T) {
	led := newTestLedger(t)
	g := NewPoker(led, rng.NewSequence(), testLogger())

	_, err := g.Call()
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = g.Raise()
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = g.Fold()
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestPokerRejectsOutOfRangeBets(t *testing.T) {
	led := newTestLedger(t)
	g := NewPoker(led, rng.NewSequence(), testLogger())

	_, err := g.Start(49)
	assert.ErrorIs(t, err, ErrInvalidBet)
	_, err = g.Start(2001)
	assert.ErrorIs(t, err, ErrInvalidBet)
}

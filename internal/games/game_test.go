package games

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feltworks/casino-core/internal/cards"
	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/store"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	led, err := ledger.New(store.NewMemory(), testLogger())
	require.NoError(t, err)
	return led
}

func card(rank, suit string) cards.Card {
	return cards.Card{Rank: rank, Suit: suit}
}

func TestSpecsListsEveryGame(t *testing.T) {
	specs := Specs()
	require.Len(t, specs, len(ledger.GameNames))
	for i, spec := range specs {
		assert.Equal(t, ledger.GameNames[i], spec.ID)
		assert.Positive(t, spec.Limits.Min)
		assert.Greater(t, spec.Limits.Max, spec.Limits.Min)
	}
}

func TestBetLimitsBoundaries(t *testing.T) {
	// Table limits pinned per game so a mistyped Spec constant fails here.
	limits := map[string]BetLimits{
		"blackjack": {Min: 10, Max: 1000},
		"poker":     {Min: 50, Max: 2000},
		"slots":     {Min: 5, Max: 500},
		"roulette":  {Min: 10, Max: 1000},
		"baccarat":  {Min: 50, Max: 2000},
		"craps":     {Min: 25, Max: 1000},
		"wheel":     {Min: 25, Max: 500},
		"dice":      {Min: 10, Max: 500},
	}

	for _, spec := range Specs() {
		spec := spec
		t.Run(spec.ID, func(t *testing.T) {
			want, ok := limits[spec.ID]
			require.True(t, ok, "no pinned limits for %s", spec.ID)
			require.Equal(t, want, spec.Limits)

			balance := want.Max * 2
			assert.NoError(t, spec.Limits.Validate(want.Min, balance))
			assert.NoError(t, spec.Limits.Validate(want.Max, balance))
			assert.ErrorIs(t, spec.Limits.Validate(want.Min-1, balance), ErrInvalidBet)
			assert.ErrorIs(t, spec.Limits.Validate(want.Max+1, balance), ErrInvalidBet)
			assert.ErrorIs(t, spec.Limits.Validate(want.Max, want.Max-1), ErrInvalidBet)
		})
	}
}

package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// pocketDraw queues one float so Intn(37) lands on the given pocket.
func pocketDraw(pocket int) *rng.Sequence {
	return rng.NewSequence(rng.FloatFor(pocket, 37))
}

func TestRouletteStraightNumberPaysThirtySix(t *testing.T) {
	led := newTestLedger(t)
	g := NewRoulette(led, pocketDraw(17), testLogger())

	_, err := g.PlaceBet(RouletteBet{Type: RouletteNumber, Target: "17", Amount: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(ledger.DefaultBalance-100), led.Balance())

	res, err := g.Spin()
	require.NoError(t, err)

	assert.Equal(t, int64(3600), res.Payout)
	assert.Equal(t, int64(ledger.DefaultBalance-100+3600), led.Balance())
	assert.Equal(t, 17, res.Details["pocket"])
	assert.Empty(t, g.PendingBets())
}

func TestRouletteStraightNumberMiss(t *testing.T) {
	led := newTestLedger(t)
	g := NewRoulette(led, pocketDraw(18), testLogger())

	_, err := g.PlaceBet(RouletteBet{Type: RouletteNumber, Target: "17", Amount: 100})
	require.NoError(t, err)
	res, err := g.Spin()
	require.NoError(t, err)

	assert.Zero(t, res.Payout)
	assert.Equal(t, int64(ledger.DefaultBalance-100), led.Balance())

	snap := led.Snapshot()
	assert.Equal(t, int64(1), snap.Games["roulette"].Lost)
	assert.Equal(t, int64(100), snap.TotalLost)
}

// Zero is green: it pays the green color bet and beats every parity and
// range bet.
func TestRouletteZeroIsGreenOnly(t *testing.T) {
	led := newTestLedger(t)
	g := NewRoulette(led, pocketDraw(0), testLogger())

	for _, bet := range []RouletteBet{
		{Type: RouletteColor, Target: "red", Amount: 50},
		{Type: RouletteColor, Target: "green", Amount: 50},
		{Type: RouletteRange, Target: "even", Amount: 50},
		{Type: RouletteRange, Target: "1-18", Amount: 50},
	} {
		_, err := g.PlaceBet(bet)
		require.NoError(t, err)
	}

	res, err := g.Spin()
	require.NoError(t, err)

	assert.Equal(t, int64(100), res.Payout) // green bet only, 2x
	assert.Equal(t, "green", res.Details["color"])
	assert.Equal(t, int64(ledger.DefaultBalance-200+100), led.Balance())
}

func TestRouletteMultipleWinnersSum(t *testing.T) {
	led := newTestLedger(t)
	g := NewRoulette(led, pocketDraw(18), testLogger()) // 18 is red

	for _, bet := range []RouletteBet{
		{Type: RouletteNumber, Target: "18", Amount: 10},
		{Type: RouletteColor, Target: "red", Amount: 50},
		{Type: RouletteRange, Target: "even", Amount: 50},
		{Type: RouletteRange, Target: "19-36", Amount: 50},
	} {
		_, err := g.PlaceBet(bet)
		require.NoError(t, err)
	}

	res, err := g.Spin()
	require.NoError(t, err)

	// 10x36 + 50x2 + 50x2; the 19-36 bet misses.
	assert.Equal(t, int64(560), res.Payout)
	assert.Equal(t, int64(ledger.DefaultBalance-160+560), led.Balance())
	assert.Equal(t, int64(560), led.Snapshot().TotalWon)
}

func TestRouletteSpinRequiresBets(t *testing.T) {
	led := newTestLedger(t)
	g := NewRoulette(led, pocketDraw(0), testLogger())

	_, err := g.Spin()
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestRouletteRejectsInvalidTargets(t *testing.T) {
	led := newTestLedger(t)
	g := NewRoulette(led, pocketDraw(0), testLogger())

	tests := []RouletteBet{
		{Type: RouletteNumber, Target: "37", Amount: 100},
		{Type: RouletteNumber, Target: "-1", Amount: 100},
		{Type: RouletteNumber, Target: "abc", Amount: 100},
		{Type: RouletteColor, Target: "blue", Amount: 100},
		{Type: RouletteRange, Target: "2-19", Amount: 100},
		{Type: "split", Target: "17", Amount: 100},
	}
	for _, bet := range tests {
		_, err := g.PlaceBet(bet)
		assert.ErrorIs(t, err, ErrInvalidBet, "bet %+v", bet)
	}
	assert.Equal(t, int64(ledger.DefaultBalance), led.Balance())
	assert.Empty(t, g.PendingBets())
}

func TestRouletteRejectsOutOfRangeAmounts(t *testing.T) {
	led := newTestLedger(t)
	g := NewRoulette(led, pocketDraw(0), testLogger())

	_, err := g.PlaceBet(RouletteBet{Type: RouletteNumber, Target: "17", Amount: 9})
	assert.ErrorIs(t, err, ErrInvalidBet)
	_, err = g.PlaceBet(RouletteBet{Type: RouletteNumber, Target: "17", Amount: 1001})
	assert.ErrorIs(t, err, ErrInvalidBet)
}

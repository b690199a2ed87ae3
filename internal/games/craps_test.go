package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// diceDraws queues floats so successive d6 rolls land on the given faces.
func diceDraws(faces ...int) *rng.Sequence {
	floats := make([]float64, len(faces))
	for i, f := range faces {
		floats[i] = rng.FloatFor(f-1, 6)
	}
	return rng.NewSequence(floats...)
}

func TestCrapsPassComeOutNaturalWins(t *testing.T) {
	led := newTestLedger(t)
	g := NewCraps(led, diceDraws(3, 4), testLogger())

	res, err := g.Roll(CrapsPass, 50)
	require.NoError(t, err)

	assert.Equal(t, PhaseIdle, res.Phase)
	assert.Equal(t, int64(100), res.Payout)
	assert.Equal(t, int64(ledger.DefaultBalance+50), led.Balance())
	assert.Zero(t, g.Point())
}

func TestCrapsPassComeOutCrapsLoses(t *testing.T) {
	led := newTestLedger(t)
	g := NewCraps(led, diceDraws(1, 1), testLogger())

	res, err := g.Roll(CrapsPass, 50)
	require.NoError(t, err)

	assert.Equal(t, SeverityError, res.Severity)
	assert.Equal(t, int64(ledger.DefaultBalance-50), led.Balance())
	assert.Equal(t, int64(1), led.Snapshot().Games["craps"].Lost)
}

// Point of 5 then a seven-out: the point clears and the round settles as
// a loss. Each roll deducts its own bet; only the terminal roll touches
// the statistics.
func TestCrapsPointThenSevenOut(t *testing.T) {
	led := newTestLedger(t)
	g := NewCraps(led, diceDraws(2, 3, 3, 4), testLogger())

	res, err := g.Roll(CrapsPass, 50)
	require.NoError(t, err)
	assert.Equal(t, PhasePoint, res.Phase)
	assert.Equal(t, 5, g.Point())
	assert.Equal(t, int64(ledger.DefaultBalance-50), led.Balance())
	assert.Zero(t, led.Snapshot().TotalGames)

	res, err = g.Roll(CrapsPass, 50)
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, res.Phase)
	assert.Equal(t, SeverityError, res.Severity)
	assert.Zero(t, g.Point())
	assert.Equal(t, int64(ledger.DefaultBalance-100), led.Balance())

	snap := led.Snapshot()
	assert.Equal(t, int64(1), snap.Games["craps"].Lost)
	assert.Equal(t, int64(50), snap.TotalLost)
}

// Point of 5 made on the next roll pays 2x and clears the point.
func TestCrapsPointMadeWins(t *testing.T) {
	led := newTestLedger(t)
	g := NewCraps(led, diceDraws(2, 3, 2, 3), testLogger())

	_, err := g.Roll(CrapsPass, 50)
	require.NoError(t, err)
	require.Equal(t, 5, g.Point())

	res, err := g.Roll(CrapsPass, 50)
	require.NoError(t, err)

	assert.Equal(t, SeveritySuccess, res.Severity)
	assert.Equal(t, int64(100), res.Payout)
	assert.Zero(t, g.Point())
	// two 50 bets staked, 100 back on the second
	assert.Equal(t, int64(ledger.DefaultBalance), led.Balance())
	assert.Equal(t, int64(1), led.Snapshot().Games["craps"].Won)
}

func TestCrapsDontPass(t *testing.T) {
	t.Run("come-out 3 wins", func(t *testing.T) {
		led := newTestLedger(t)
		g := NewCraps(led, diceDraws(1, 2), testLogger())

		res, err := g.Roll(CrapsDontPass, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(100), res.Payout)
	})

	t.Run("come-out 12 loses", func(t *testing.T) {
		led := newTestLedger(t)
		g := NewCraps(led, diceDraws(6, 6), testLogger())

		res, err := g.Roll(CrapsDontPass, 50)
		require.NoError(t, err)
		assert.Equal(t, SeverityError, res.Severity)
		assert.Zero(t, g.Point())
	})

	t.Run("seven-out wins after point", func(t *testing.T) {
		led := newTestLedger(t)
		g := NewCraps(led, diceDraws(4, 4, 3, 4), testLogger())

		res, err := g.Roll(CrapsDontPass, 50)
		require.NoError(t, err)
		assert.Equal(t, PhasePoint, res.Phase)
		assert.Equal(t, 8, g.Point())

		res, err = g.Roll(CrapsDontPass, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(100), res.Payout)
		assert.Zero(t, g.Point())
	})
}

func TestCrapsField(t *testing.T) {
	t.Run("2 pays triple", func(t *testing.T) {
		led := newTestLedger(t)
		g := NewCraps(led, diceDraws(1, 1), testLogger())

		res, err := g.Roll(CrapsField, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(150), res.Payout)
	})

	t.Run("9 pays double", func(t *testing.T) {
		led := newTestLedger(t)
		g := NewCraps(led, diceDraws(4, 5), testLogger())

		res, err := g.Roll(CrapsField, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(100), res.Payout)
	})

	t.Run("5 loses", func(t *testing.T) {
		led := newTestLedger(t)
		g := NewCraps(led, diceDraws(2, 3), testLogger())

		res, err := g.Roll(CrapsField, 50)
		require.NoError(t, err)
		assert.Equal(t, SeverityError, res.Severity)
		assert.Equal(t, int64(ledger.DefaultBalance-50), led.Balance())
	})
}

func TestCrapsCome(t *testing.T) {
	t.Run("11 wins", func(t *testing.T) {
		led := newTestLedger(t)
		g := NewCraps(led, diceDraws(5, 6), testLogger())

		res, err := g.Roll(CrapsCome, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(100), res.Payout)
	})

	t.Run("4 loses", func(t *testing.T) {
		led := newTestLedger(t)
		g := NewCraps(led, diceDraws(2, 2), testLogger())

		res, err := g.Roll(CrapsCome, 50)
		require.NoError(t, err)
		assert.Equal(t, SeverityError, res.Severity)
	})
}

// A field roll settles terminally and clears any standing pass-line
// point.
func TestCrapsAnySettlementClearsPoint(t *testing.T) {
	led := newTestLedger(t)
	g := NewCraps(led, diceDraws(2, 4, 1, 1), testLogger())

	_, err := g.Roll(CrapsPass, 50)
	require.NoError(t, err)
	require.Equal(t, 6, g.Point())

	_, err = g.Roll(CrapsField, 50)
	require.NoError(t, err)
	assert.Zero(t, g.Point())
}

func TestCrapsRejectsInvalidBets(t *testing.T) {
	led := newTestLedger(t)
	g := NewCraps(led, diceDraws(), testLogger())

	_, err := g.Roll("hardways", 50)
	assert.ErrorIs(t, err, ErrInvalidBet)
	_, err = g.Roll(CrapsPass, 24)
	assert.ErrorIs(t, err, ErrInvalidBet)
	_, err = g.Roll(CrapsPass, 1001)
	assert.ErrorIs(t, err, ErrInvalidBet)
	assert.Equal(t, int64(ledger.DefaultBalance), led.Balance())
}

package games

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feltworks/casino-core/internal/cards"
	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
)

// BaccaratSpec is the lobby metadata for baccarat.
var BaccaratSpec = Spec{
	ID:     "baccarat",
	Name:   "Baccarat",
	Limits: BetLimits{Min: 50, Max: 2000},
}

// BaccaratSide is the wagered outcome.
type BaccaratSide string

const (
	BaccaratPlayer BaccaratSide = "player"
	BaccaratBanker BaccaratSide = "banker"
	BaccaratTie    BaccaratSide = "tie"
)

// Banker win pays out below even money. The house commission is baked
// into the multiplier and the result floored to whole dollars.
var baccaratBankerMultiplier = decimal.NewFromFloat(1.95)

// Baccarat plays complete single-shot rounds: one call deals both hands,
// runs the third-card tableau, and settles.
type Baccarat struct {
	mu      sync.Mutex
	led     *ledger.Ledger
	logger  *log.Logger
	newDeck func() *cards.Deck
}

// NewBaccarat builds the engine around the shared ledger and source.
func NewBaccarat(led *ledger.Ledger, src rng.Source, logger *log.Logger) *Baccarat {
	return &Baccarat{
		led:     led,
		logger:  logger.With("game", "baccarat"),
		newDeck: func() *cards.Deck { return cards.NewDeck(src) },
	}
}

// Deal plays one full round on the given side. Settlement is net: the
// bet is only deducted when the round loses, and a win credits the
// gross payout.
func (g *Baccarat) Deal(side BaccaratSide, amount int64) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch side {
	case BaccaratPlayer, BaccaratBanker, BaccaratTie:
	default:
		return Result{}, fmt.Errorf("%w: side must be player, banker, or tie", ErrInvalidBet)
	}
	if err := BaccaratSpec.Limits.Validate(amount, g.led.Balance()); err != nil {
		return Result{}, err
	}

	roundID := uuid.NewString()
	deck := g.newDeck()

	// Player receives first in coup order.
	player, err := drawN(deck, 2)
	if err != nil {
		return Result{}, err
	}
	banker, err := drawN(deck, 2)
	if err != nil {
		return Result{}, err
	}

	playerVal := cards.BaccaratValue(player)
	bankerVal := cards.BaccaratValue(banker)

	// A natural 8 or 9 on either hand freezes both.
	if playerVal < 8 && bankerVal < 8 {
		playerThird := -1
		if playerVal <= 5 {
			c, err := deck.Draw()
			if err != nil {
				return Result{}, err
			}
			player = append(player, c)
			playerVal = cards.BaccaratValue(player)
			playerThird = cards.BaccaratCardValue(c)
		}
		if bankerDraws(bankerVal, playerThird) {
			c, err := deck.Draw()
			if err != nil {
				return Result{}, err
			}
			banker = append(banker, c)
			bankerVal = cards.BaccaratValue(banker)
		}
	}

	var winner BaccaratSide
	switch {
	case playerVal > bankerVal:
		winner = BaccaratPlayer
	case bankerVal > playerVal:
		winner = BaccaratBanker
	default:
		winner = BaccaratTie
	}

	res := Result{
		RoundID: roundID,
		Game:    "baccarat",
		Phase:   PhaseIdle,
		Details: map[string]any{
			"player_hand":  cards.Strings(player),
			"banker_hand":  cards.Strings(banker),
			"player_value": playerVal,
			"banker_value": bankerVal,
			"winner":       winner,
		},
	}

	if winner == side {
		var payout int64
		switch side {
		case BaccaratTie:
			payout = amount * 9
		case BaccaratBanker:
			payout = baccaratBankerMultiplier.Mul(decimal.NewFromInt(amount)).IntPart()
		default:
			payout = amount * 2
		}
		if err := g.led.ApplyDelta(payout); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordOutcome("baccarat", true); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordWinLoss(payout); err != nil {
			return Result{}, err
		}
		g.logger.Info("round settled", "round", roundID, "winner", winner, "side", side, "won", true, "payout", payout)
		res.Message = fmt.Sprintf("%s wins! You won $%d!", sideLabel(winner), payout)
		res.Severity = SeveritySuccess
		res.Payout = payout
	} else {
		if err := g.led.ApplyDelta(-amount); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordOutcome("baccarat", false); err != nil {
			return Result{}, err
		}
		if err := g.led.RecordWinLoss(-amount); err != nil {
			return Result{}, err
		}
		g.logger.Info("round settled", "round", roundID, "winner", winner, "side", side, "won", false)
		res.Message = fmt.Sprintf("%s wins. You lost $%d.", sideLabel(winner), amount)
		res.Severity = SeverityError
	}

	res.Balance = g.led.Balance()
	return res, nil
}

// bankerDraws implements the standard tableau. playerThird is -1 when the
// player stood pat, in which case the banker draws on 0-5.
func bankerDraws(bankerVal, playerThird int) bool {
	if playerThird < 0 {
		return bankerVal <= 5
	}
	switch bankerVal {
	case 0, 1, 2:
		return true
	case 3:
		return playerThird != 8
	case 4:
		return playerThird >= 2 && playerThird <= 7
	case 5:
		return playerThird >= 4 && playerThird <= 7
	case 6:
		return playerThird == 6 || playerThird == 7
	default:
		return false
	}
}

func sideLabel(side BaccaratSide) string {
	switch side {
	case BaccaratPlayer:
		return "Player"
	case BaccaratBanker:
		return "Banker"
	default:
		return "Tie"
	}
}

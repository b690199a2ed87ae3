package cards

import (
	"errors"

	"github.com/feltworks/casino-core/internal/rng"
)

// Card represents a playing card with rank and suit.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// String returns a human-readable card representation like "♦2" or "♠A".
func (c Card) String() string {
	return c.Suit + c.Rank
}

// Red reports whether the card belongs to a red suit.
func (c Card) Red() bool {
	return c.Suit == "♥" || c.Suit == "♦"
}

// Suits in deal order: ♠, ♥, ♦, ♣
var cardSuits = []string{"♠", "♥", "♦", "♣"}

// Ranks in order: A, 2-10, J, Q, K
var cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// DeckSize is the number of cards in a fresh deck.
const DeckSize = 52

// ErrEmptyDeck is returned when drawing from an exhausted deck. Game deal
// sequences never need more than 52 cards, so hitting this means an engine
// invariant is broken.
var ErrEmptyDeck = errors.New("cards: draw from empty deck")

// Deck is an ordered sequence of cards consumed from the end. A deck is
// built fresh for every round and never reused.
type Deck struct {
	cards []Card
}

// NewDeck returns a full 52-card deck shuffled with Fisher-Yates using the
// given source. The same source state always yields the same order.
func NewDeck(src rng.Source) *Deck {
	d := &Deck{cards: make([]Card, 0, DeckSize)}
	for _, suit := range cardSuits {
		for _, rank := range cardRanks {
			d.cards = append(d.cards, Card{Rank: rank, Suit: suit})
		}
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return d
}

// Stacked returns a deck that deals the given cards in the order listed.
// Test hook: lets a test script exact hands without going through the
// shuffle.
func Stacked(deal ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(deal))}
	for i, c := range deal {
		d.cards[len(deal)-1-i] = c
	}
	return d
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, nil
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Strings renders a hand as display strings.
func Strings(hand []Card) []string {
	out := make([]string, len(hand))
	for i, c := range hand {
		out[i] = c.String()
	}
	return out
}

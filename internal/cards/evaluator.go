package cards

import "sort"

// blackjackCardValue returns the blackjack point value of a card.
// 2-10: face value, J/Q/K: 10, A: 11 (soft)
func blackjackCardValue(rank string) int {
	switch rank {
	case "A":
		return 11
	case "10", "J", "Q", "K":
		return 10
	default:
		return numberRank(rank)
	}
}

// BlackjackValue calculates the best blackjack hand value, counting aces
// as 11 until the total would bust and converting them to 1 one at a time.
func BlackjackValue(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		total += blackjackCardValue(c.Rank)
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// baccaratCardValue returns the baccarat point value of a card.
// 2-9: face value, 10/J/Q/K: 0, A: 1
func baccaratCardValue(rank string) int {
	switch rank {
	case "A":
		return 1
	case "10", "J", "Q", "K":
		return 0
	default:
		return numberRank(rank)
	}
}

// BaccaratValue calculates the baccarat hand score: sum of card values mod 10.
func BaccaratValue(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += baccaratCardValue(c.Rank)
	}
	return total % 10
}

// BaccaratCardValue exposes the single-card point value, needed by the
// banker third-card tableau.
func BaccaratCardValue(c Card) int {
	return baccaratCardValue(c.Rank)
}

func numberRank(rank string) int {
	switch rank {
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	case "7":
		return 7
	case "8":
		return 8
	case "9":
		return 9
	case "10":
		return 10
	default:
		return 0
	}
}

// PokerRank is a 5-card poker hand category. Higher is better.
type PokerRank int

const (
	HighCard PokerRank = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var pokerRankNames = map[PokerRank]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

// String returns the display name of the rank.
func (r PokerRank) String() string {
	if name, ok := pokerRankNames[r]; ok {
		return name
	}
	return "Unknown"
}

// pokerRankValue maps a rank to 2-14, ace high.
func pokerRankValue(rank string) int {
	switch rank {
	case "A":
		return 14
	case "K":
		return 13
	case "Q":
		return 12
	case "J":
		return 11
	default:
		return numberRank(rank)
	}
}

// PokerEvaluate classifies a 5-card hand. Ace plays high except in the
// A-2-3-4-5 wheel, the one straight where it acts as 1.
func PokerEvaluate(hand []Card) PokerRank {
	values := make([]int, len(hand))
	for i, c := range hand {
		values[i] = pokerRankValue(c.Rank)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	isFlush := true
	for _, c := range hand {
		if c.Suit != hand[0].Suit {
			isFlush = false
			break
		}
	}
	isStraight := isStraightDesc(values)

	freq := make(map[int]int)
	for _, v := range values {
		freq[v]++
	}
	counts := make([]int, 0, len(freq))
	for _, c := range freq {
		counts = append(counts, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	switch {
	case isFlush && isStraight && values[0] == 14 && values[1] == 13:
		return RoyalFlush
	case isFlush && isStraight:
		return StraightFlush
	case counts[0] == 4:
		return FourOfAKind
	case counts[0] == 3 && counts[1] == 2:
		return FullHouse
	case isFlush:
		return Flush
	case isStraight:
		return Straight
	case counts[0] == 3:
		return ThreeOfAKind
	case counts[0] == 2 && counts[1] == 2:
		return TwoPair
	case counts[0] == 2:
		return Pair
	default:
		return HighCard
	}
}

// isStraightDesc checks five descending values for consecutiveness,
// allowing the A-5-4-3-2 wheel where the ace wraps low.
func isStraightDesc(values []int) bool {
	for i := 0; i < len(values)-1; i++ {
		if values[i]-values[i+1] != 1 {
			if i == 0 && values[0] == 14 && values[1] == 5 {
				continue
			}
			return false
		}
	}
	return true
}

// BestFive evaluates every 5-card combination of the given cards and
// returns the highest rank. Used for the 7-card player+community view.
func BestFive(all []Card) PokerRank {
	if len(all) <= 5 {
		return PokerEvaluate(all)
	}
	best := PokerRank(0)
	combo := make([]Card, 5)
	var pick func(start, depth int)
	pick = func(start, depth int) {
		if depth == 5 {
			if r := PokerEvaluate(combo); r > best {
				best = r
			}
			return
		}
		for i := start; i <= len(all)-(5-depth); i++ {
			combo[depth] = all[i]
			pick(i+1, depth+1)
		}
	}
	pick(0, 0)
	return best
}

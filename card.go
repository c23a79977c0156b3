package shanghai

import "fmt"

type Suit string

const (
	Suit_Hearts   Suit = "Hearts"
	Suit_Diamonds Suit = "Diamonds"
	Suit_Clubs    Suit = "Clubs"
	Suit_Spades   Suit = "Spades"
	Suit_None     Suit = "None" // Jokers only
)

type Rank string

const (
	Rank_Two   Rank = "2"
	Rank_Three Rank = "3"
	Rank_Four  Rank = "4"
	Rank_Five  Rank = "5"
	Rank_Six   Rank = "6"
	Rank_Seven Rank = "7"
	Rank_Eight Rank = "8"
	Rank_Nine  Rank = "9"
	Rank_Ten   Rank = "10"
	Rank_Jack  Rank = "J"
	Rank_Queen Rank = "Q"
	Rank_King  Rank = "K"
	Rank_Ace   Rank = "A"
	Rank_Joker Rank = "Joker"
)

var (
	CardSuits = []Suit{Suit_Hearts, Suit_Diamonds, Suit_Clubs, Suit_Spades}
	CardRanks = []Rank{
		Rank_Two, Rank_Three, Rank_Four, Rank_Five, Rank_Six, Rank_Seven,
		Rank_Eight, Rank_Nine, Rank_Ten, Rank_Jack, Rank_Queen, Rank_King, Rank_Ace,
	}
)

var runValues = map[Rank]int{
	Rank_Two:   2,
	Rank_Three: 3,
	Rank_Four:  4,
	Rank_Five:  5,
	Rank_Six:   6,
	Rank_Seven: 7,
	Rank_Eight: 8,
	Rank_Nine:  9,
	Rank_Ten:   10,
	Rank_Jack:  11,
	Rank_Queen: 12,
	Rank_King:  13,
	Rank_Ace:   14,
}

var suitSymbols = map[Suit]string{
	Suit_Hearts:   "♥",
	Suit_Diamonds: "♦",
	Suit_Clubs:    "♣",
	Suit_Spades:   "♠",
}

type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// Score 計算單張牌的計分值 (Joker=50, A=15, 10/J/Q/K=10, 其餘=5)
func (c Card) Score() int {
	switch c.Rank {
	case Rank_Joker:
		return 50
	case Rank_Ace:
		return 15
	case Rank_Ten, Rank_Jack, Rank_Queen, Rank_King:
		return 10
	default:
		return 5
	}
}

// IsWildcard Joker 與 2 都是萬用牌
func (c Card) IsWildcard() bool {
	return c.Rank == Rank_Joker || c.Rank == Rank_Two
}

// RunValue returns the card's numeric value within a run.
// Wildcards never anchor a sequence, so callers must filter them out first.
func (c Card) RunValue() int {
	return runValues[c.Rank]
}

func (c Card) String() string {
	if c.Rank == Rank_Joker {
		return "Joker"
	}
	return fmt.Sprintf("%s%s", c.Rank, suitSymbols[c.Suit])
}

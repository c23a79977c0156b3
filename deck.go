package shanghai

import "math/rand"

// CardsPerDeck 52 standard cards plus 2 Jokers
const CardsPerDeck = 54

// Deck is an ordered multi-deck card pool. The top of the deck is the last
// element, so Draw is an O(1) pop.
type Deck struct {
	cards    []Card
	numDecks int
}

func NewDeck(numDecks int) *Deck {
	d := &Deck{
		cards:    make([]Card, 0, numDecks*CardsPerDeck),
		numDecks: numDecks,
	}
	for i := 0; i < numDecks; i++ {
		for _, suit := range CardSuits {
			for _, rank := range CardRanks {
				d.cards = append(d.cards, NewCard(suit, rank))
			}
		}
		// 2 Jokers per deck
		d.cards = append(d.cards, NewCard(Suit_None, Rank_Joker))
		d.cards = append(d.cards, NewCard(Suit_None, Rank_Joker))
	}
	return d
}

// Shuffle applies a uniform Fisher-Yates permutation in place.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card. The second return value is false
// once the deck is exhausted; callers must abort the triggering action.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

func (d *Deck) NumDecks() int {
	return d.numDecks
}

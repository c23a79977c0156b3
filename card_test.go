package shanghai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_Score(t *testing.T) {
	assert.Equal(t, 50, NewCard(Suit_None, Rank_Joker).Score())
	assert.Equal(t, 15, NewCard(Suit_Hearts, Rank_Ace).Score())
	assert.Equal(t, 10, NewCard(Suit_Spades, Rank_Ten).Score())
	assert.Equal(t, 10, NewCard(Suit_Clubs, Rank_Jack).Score())
	assert.Equal(t, 10, NewCard(Suit_Diamonds, Rank_Queen).Score())
	assert.Equal(t, 10, NewCard(Suit_Hearts, Rank_King).Score())
	assert.Equal(t, 5, NewCard(Suit_Hearts, Rank_Two).Score())
	assert.Equal(t, 5, NewCard(Suit_Spades, Rank_Nine).Score())
}

func TestCard_IsWildcard(t *testing.T) {
	assert.True(t, NewCard(Suit_None, Rank_Joker).IsWildcard())
	assert.True(t, NewCard(Suit_Hearts, Rank_Two).IsWildcard())
	assert.False(t, NewCard(Suit_Hearts, Rank_Three).IsWildcard())
	assert.False(t, NewCard(Suit_Spades, Rank_Ace).IsWildcard())
}

func TestCard_RunValue(t *testing.T) {
	assert.Equal(t, 3, NewCard(Suit_Hearts, Rank_Three).RunValue())
	assert.Equal(t, 10, NewCard(Suit_Hearts, Rank_Ten).RunValue())
	assert.Equal(t, 11, NewCard(Suit_Hearts, Rank_Jack).RunValue())
	assert.Equal(t, 12, NewCard(Suit_Hearts, Rank_Queen).RunValue())
	assert.Equal(t, 13, NewCard(Suit_Hearts, Rank_King).RunValue())
	assert.Equal(t, 14, NewCard(Suit_Hearts, Rank_Ace).RunValue())
	assert.Equal(t, 2, NewCard(Suit_Hearts, Rank_Two).RunValue())
}

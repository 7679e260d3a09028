package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Spades},
				{Rank: Queen, Suit: Spades},
				{Rank: Jack, Suit: Spades},
				{Rank: Ten, Suit: Spades},
			},
		},
		{
			name:  "separators and tens",
			input: "10h, 2c 5d",
			expected: []Card{
				{Rank: Ten, Suit: Hearts},
				{Rank: Two, Suit: Clubs},
				{Rank: Five, Suit: Diamonds},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Hearts},
				{Rank: Queen, Suit: Diamonds},
				{Rank: Jack, Suit: Clubs},
			},
		},
		{name: "invalid rank", input: "XsKs", wantErr: true},
		{name: "invalid suit", input: "AxKs", wantErr: true},
		{name: "odd length", input: "AsK", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cards, err := ParseCards(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cards)
		})
	}
}

func TestCardStrings(t *testing.T) {
	t.Parallel()

	c := NewCard(Ace, Spades)
	assert.Equal(t, "A♠", c.String())
	assert.Equal(t, "As", c.Text())
	assert.Equal(t, "T♥", NewCard(Ten, Hearts).String())
	assert.Equal(t, "K♦, 2♣", FormatCards(MustParseCards("Kd2c")))
}

func TestCardEquality(t *testing.T) {
	t.Parallel()

	seen := map[Card]bool{NewCard(Queen, Clubs): true}
	assert.True(t, seen[Card{Rank: Queen, Suit: Clubs}])
	assert.False(t, seen[Card{Rank: Queen, Suit: Hearts}])
}

func TestCardJSON(t *testing.T) {
	t.Parallel()

	cards := MustParseCards("AsTd")
	data, err := json.Marshal(cards)
	require.NoError(t, err)
	assert.JSONEq(t, `["As","Td"]`, string(data))

	var decoded []Card
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cards, decoded)

	_, err = json.Marshal(Card{})
	assert.Error(t, err)
}

// internal/deck/deck_test.go
package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palmier/internal/models"
)

func TestGenerateFullDeck(t *testing.T) {
	cards := Generate()
	require.Len(t, cards, 52)

	suits := map[string]bool{"hearts": true, "diamonds": true, "clubs": true, "spades": true}
	seen := map[models.Card]bool{}
	for _, c := range cards {
		assert.GreaterOrEqual(t, c.Value, 2)
		assert.LessOrEqual(t, c.Value, 14)
		assert.True(t, suits[c.Suit], "unexpected suit %q", c.Suit)
		assert.False(t, seen[c], "duplicate card %+v", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestShuffleIsAPermutation(t *testing.T) {
	original := Generate()
	shuffled := Shuffle(original)

	require.Len(t, shuffled, len(original))

	counts := map[models.Card]int{}
	for _, c := range original {
		counts[c]++
	}
	for _, c := range shuffled {
		counts[c]--
	}
	for card, n := range counts {
		assert.Zero(t, n, "card %+v count mismatch", card)
	}

	// The input must not be reordered in place.
	assert.Equal(t, Generate(), original)
}

func TestShuffleChangesOrder(t *testing.T) {
	base := Generate()

	// With 52! orderings, two identical shuffles in ten tries means the
	// source is broken, not that we got unlucky.
	same := true
	for i := 0; i < 10 && same; i++ {
		a := Shuffle(base)
		b := Shuffle(base)
		for j := range a {
			if a[j] != b[j] {
				same = false
				break
			}
		}
	}
	assert.False(t, same, "repeated shuffles produced identical orderings")
}

func TestDealConservation(t *testing.T) {
	cards := Generate()

	dealt, rest := Deal(cards, 9)
	require.Len(t, dealt, 9)
	require.Len(t, rest, 43)
	assert.Equal(t, cards[:9], dealt)
	assert.Equal(t, cards[9:], rest)

	// The two parts partition the input.
	recombined := append(append([]models.Card{}, dealt...), rest...)
	assert.Equal(t, cards, recombined)
}

func TestDealMoreThanRemaining(t *testing.T) {
	cards := Generate()[:5]
	dealt, rest := Deal(cards, 9)
	assert.Len(t, dealt, 5)
	assert.Empty(t, rest)
}

func TestDealZero(t *testing.T) {
	cards := Generate()
	dealt, rest := Deal(cards, 0)
	assert.Empty(t, dealt)
	assert.Len(t, rest, 52)
}

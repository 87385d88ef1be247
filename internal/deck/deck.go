// internal/deck/deck.go
package deck

import (
	"math/rand"
	"time"

	"palmier/internal/models"
)

// Generate returns an ordered 52-card deck, one card per (value, suit) pair.
func Generate() []models.Card {
	cards := make([]models.Card, 0, 52)
	for v := 2; v <= 14; v++ {
		for _, s := range models.Suits {
			cards = append(cards, models.Card{Value: v, Suit: s})
		}
	}
	return cards
}

// Shuffle returns a uniformly shuffled copy of cards. The input is not modified.
func Shuffle(cards []models.Card) []models.Card {
	shuffled := make([]models.Card, len(cards))
	copy(shuffled, cards)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Deal splits off the first n cards and returns them together with the rest.
// Both return values are fresh slices; the input is not modified. Asking for
// more cards than remain deals everything.
func Deal(cards []models.Card, n int) (dealt, rest []models.Card) {
	if n > len(cards) {
		n = len(cards)
	}
	dealt = append([]models.Card(nil), cards[:n]...)
	rest = append([]models.Card(nil), cards[n:]...)
	return dealt, rest
}

// internal/models/models.go
package models

// Card is a single playing card. Value runs 2..14, where 11 = J, 12 = Q,
// 13 = K and 14 = A.
type Card struct {
	Value int    `json:"value"`
	Suit  string `json:"suit"`
}

// Suits lists the four suits in deck-generation order.
var Suits = [4]string{"hearts", "diamonds", "clubs", "spades"}

// Player is one participant in a session. The three card groups are dealt
// together at join time, three cards each.
type Player struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Ready     bool   `json:"ready"`
	HandCard  []Card `json:"hand_card"`
	FrontCard []Card `json:"front_card"`
	BackCard  []Card `json:"back_card"`
}

// Session is the full durable record for one game, in the exact shape clients
// exchange with the server. PlayArea entries and NextComparison are opaque to
// the server: clients agree on their meaning among themselves.
type Session struct {
	Players          []Player `json:"players"`
	Pioche           []Card   `json:"pioche"`
	PlayArea         []any    `json:"playArea"`
	CurrentTurnIndex int      `json:"currentTurnIndex"`
	NextComparison   any      `json:"nextComparison"`
	GameStarted      bool     `json:"gameStarted"`
}

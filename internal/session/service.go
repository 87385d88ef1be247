// internal/session/service.go
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"palmier/internal/deck"
	"palmier/internal/models"
	"palmier/internal/store"
)

const (
	// maxPlayers caps a session at five seats.
	maxPlayers = 5
	// codeAttempts bounds how often Create re-rolls a colliding code.
	codeAttempts = 20
)

// GameSummary is one row of List: a session code and its player count.
type GameSummary struct {
	Code    string `json:"code"`
	Players int    `json:"players"`
}

// Service implements the session lifecycle on top of a Store. It keeps no
// session state in memory between calls; every operation starts from a fresh
// load. Mutations of the same code are serialized through a per-code mutex.
type Service struct {
	store  store.Store
	logger *logrus.Logger
	locks  *codeLocks
}

// NewService returns a Service persisting through st.
func NewService(st store.Store, logger *logrus.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger,
		locks:  newCodeLocks(),
	}
}

// Create starts a new session owned by username and returns its code. The
// creator becomes player 1 with nine cards dealt from a fresh shuffled deck;
// the remaining 43 cards become the pioche.
func (s *Service) Create(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", ErrUsernameRequired
	}

	code, err := s.newCode(ctx)
	if err != nil {
		return "", err
	}
	defer s.locks.lock(code).Unlock()

	cards := deck.Shuffle(deck.Generate())
	creator, pioche := dealIn(1, username, cards)

	sess := &models.Session{
		Players:          []models.Player{creator},
		Pioche:           pioche,
		PlayArea:         []any{},
		CurrentTurnIndex: 0,
		NextComparison:   nil,
		GameStarted:      false,
	}
	if err := s.store.Save(ctx, code, sess); err != nil {
		return "", fmt.Errorf("persist new session: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"code":     code,
		"username": username,
	}).Info("Session created")
	return code, nil
}

// Join adds username to the session at code, dealing its nine cards from the
// session's pioche.
func (s *Service) Join(ctx context.Context, code, username string) error {
	if username == "" {
		return ErrUsernameRequired
	}

	defer s.locks.lock(code).Unlock()

	sess, err := s.store.Load(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load session %s: %w", code, err)
	}

	for _, p := range sess.Players {
		if p.Username == username {
			return ErrUsernameTaken
		}
	}
	if len(sess.Players) >= maxPlayers {
		return ErrGameFull
	}

	player, pioche := dealIn(len(sess.Players)+1, username, sess.Pioche)
	sess.Players = append(sess.Players, player)
	sess.Pioche = pioche

	// Records persisted by older builds may predate the playArea field; the
	// other late additions already decode to their correct defaults.
	if sess.PlayArea == nil {
		sess.PlayArea = []any{}
	}

	if err := s.store.Save(ctx, code, sess); err != nil {
		return fmt.Errorf("persist session %s: %w", code, err)
	}

	s.logger.WithFields(logrus.Fields{
		"code":     code,
		"username": username,
		"players":  len(sess.Players),
	}).Info("Player joined")
	return nil
}

// Update replaces the whole record at code with the client's snapshot. No
// rule validation happens here: clients own game-state correctness and the
// last writer wins.
func (s *Service) Update(ctx context.Context, code string, sess *models.Session) error {
	defer s.locks.lock(code).Unlock()

	if err := s.store.Save(ctx, code, sess); err != nil {
		return fmt.Errorf("persist session %s: %w", code, err)
	}
	s.logger.WithField("code", code).Debug("Session overwritten by client update")
	return nil
}

// Get returns the current persisted record for code.
func (s *Service) Get(ctx context.Context, code string) (*models.Session, error) {
	sess, err := s.store.Load(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", code, err)
	}
	return sess, nil
}

// List returns a summary for every known session.
func (s *Service) List(ctx context.Context) ([]GameSummary, error) {
	codes, err := s.store.ListCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	summaries := make([]GameSummary, 0, len(codes))
	for _, code := range codes {
		sess, err := s.store.Load(ctx, code)
		if errors.Is(err, store.ErrNotFound) {
			// Removed between listing and loading; skip.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load session %s: %w", code, err)
		}
		summaries = append(summaries, GameSummary{Code: code, Players: len(sess.Players)})
	}
	return summaries, nil
}

// newCode draws uniform 4-digit codes until one is unused, giving up after
// codeAttempts tries so a near-full code space cannot spin forever.
func (s *Service) newCode(ctx context.Context) (string, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < codeAttempts; i++ {
		code := strconv.Itoa(1000 + r.Intn(9000))
		_, err := s.store.Load(ctx, code)
		if errors.Is(err, store.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("probe code %s: %w", code, err)
		}
	}
	return "", fmt.Errorf("no free session code after %d attempts", codeAttempts)
}

// dealIn builds a player from the front of cards: three to the hand, three
// face-up, three face-down. The second return value is what remains.
func dealIn(id int, username string, cards []models.Card) (models.Player, []models.Card) {
	hand, rest := deck.Deal(cards, 3)
	front, rest := deck.Deal(rest, 3)
	back, rest := deck.Deal(rest, 3)
	return models.Player{
		ID:        id,
		Username:  username,
		Ready:     false,
		HandCard:  hand,
		FrontCard: front,
		BackCard:  back,
	}, rest
}

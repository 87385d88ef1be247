// internal/session/service_test.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palmier/internal/models"
	"palmier/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(store.NewFileStore(t.TempDir()), logger)
}

func TestCreateInvariant(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	code, err := svc.Create(ctx, "alice")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{3}$`), code)

	sess, err := svc.Get(ctx, code)
	require.NoError(t, err)

	require.Len(t, sess.Players, 1)
	creator := sess.Players[0]
	assert.Equal(t, 1, creator.ID)
	assert.Equal(t, "alice", creator.Username)
	assert.False(t, creator.Ready)
	assert.Len(t, creator.HandCard, 3)
	assert.Len(t, creator.FrontCard, 3)
	assert.Len(t, creator.BackCard, 3)

	assert.Len(t, sess.Pioche, 43)
	assert.NotNil(t, sess.PlayArea)
	assert.Empty(t, sess.PlayArea)
	assert.Zero(t, sess.CurrentTurnIndex)
	assert.Nil(t, sess.NextComparison)
	assert.False(t, sess.GameStarted)
}

func TestCreateRequiresUsername(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), "")
	assert.ErrorIs(t, err, ErrUsernameRequired)
}

func TestJoinUnknownCode(t *testing.T) {
	svc := newTestService(t)

	err := svc.Join(context.Background(), "0000", "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJoinRequiresUsername(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	code, err := svc.Create(ctx, "alice")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Join(ctx, code, ""), ErrUsernameRequired)
}

func TestJoinDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	code, err := svc.Create(ctx, "alice")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Join(ctx, code, "alice"), ErrUsernameTaken)

	// The failed join must not have mutated anything.
	sess, err := svc.Get(ctx, code)
	require.NoError(t, err)
	assert.Len(t, sess.Players, 1)
	assert.Len(t, sess.Pioche, 43)
}

func TestJoinCapacity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	code, err := svc.Create(ctx, "player1")
	require.NoError(t, err)
	for i := 2; i <= 5; i++ {
		require.NoError(t, svc.Join(ctx, code, fmt.Sprintf("player%d", i)))
	}

	assert.ErrorIs(t, svc.Join(ctx, code, "player6"), ErrGameFull)

	sess, err := svc.Get(ctx, code)
	require.NoError(t, err)
	assert.Len(t, sess.Players, 5)
	assert.Len(t, sess.Pioche, 52-9*5)
}

func TestJoinDealsDisjointCards(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	code, err := svc.Create(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, svc.Join(ctx, code, "bob"))
	require.NoError(t, svc.Join(ctx, code, "carol"))

	sess, err := svc.Get(ctx, code)
	require.NoError(t, err)
	assert.Len(t, sess.Pioche, 52-9*3)

	// Every card appears exactly once across all hands and the pioche.
	seen := map[models.Card]int{}
	for _, p := range sess.Players {
		require.Len(t, p.HandCard, 3)
		require.Len(t, p.FrontCard, 3)
		require.Len(t, p.BackCard, 3)
		for _, group := range [][]models.Card{p.HandCard, p.FrontCard, p.BackCard} {
			for _, c := range group {
				seen[c]++
			}
		}
	}
	for _, c := range sess.Pioche {
		seen[c]++
	}
	assert.Len(t, seen, 52)
	for card, n := range seen {
		assert.Equal(t, 1, n, "card %+v dealt %d times", card, n)
	}
}

func TestJoinAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	code, err := svc.Create(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, svc.Join(ctx, code, "bob"))
	require.NoError(t, svc.Join(ctx, code, "carol"))

	sess, err := svc.Get(ctx, code)
	require.NoError(t, err)
	for i, p := range sess.Players {
		assert.Equal(t, i+1, p.ID)
	}
}

func TestJoinBackfillsMissingFields(t *testing.T) {
	ctx := context.Background()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	st := store.NewFileStore(t.TempDir())
	svc := NewService(st, logger)

	// An old-format record: no playArea, no turn bookkeeping.
	old := &models.Session{
		Players: []models.Player{{ID: 1, Username: "alice"}},
		Pioche:  []models.Card{{Value: 2, Suit: "hearts"}, {Value: 3, Suit: "hearts"}},
	}
	require.NoError(t, st.Save(ctx, "7777", old))

	require.NoError(t, svc.Join(ctx, "7777", "bob"))

	sess, err := svc.Get(ctx, "7777")
	require.NoError(t, err)
	assert.NotNil(t, sess.PlayArea)
	assert.Empty(t, sess.PlayArea)
	assert.Zero(t, sess.CurrentTurnIndex)
	assert.False(t, sess.GameStarted)
}

func TestUpdateIsWholesale(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	code, err := svc.Create(ctx, "alice")
	require.NoError(t, err)

	// An arbitrary snapshot bearing no resemblance to the stored session.
	payload := &models.Session{
		Players: []models.Player{
			{ID: 1, Username: "zoe", Ready: true},
			{ID: 2, Username: "yann"},
		},
		Pioche:           []models.Card{{Value: 14, Suit: "spades"}},
		PlayArea:         []any{map[string]any{"value": float64(10), "suit": "clubs"}},
		CurrentTurnIndex: 1,
		NextComparison:   "higher",
		GameStarted:      true,
	}
	require.NoError(t, svc.Update(ctx, code, payload))

	got, err := svc.Get(ctx, code)
	require.NoError(t, err)

	want, _ := json.Marshal(payload)
	have, _ := json.Marshal(got)
	assert.JSONEq(t, string(want), string(have))
}

func TestUpdateUnknownCodeCreatesRecord(t *testing.T) {
	// A blind update to a code nobody created still persists: the store
	// contract is an unconditional whole-record replace.
	ctx := context.Background()
	svc := newTestService(t)

	require.NoError(t, svc.Update(ctx, "3131", &models.Session{GameStarted: true}))

	sess, err := svc.Get(ctx, "3131")
	require.NoError(t, err)
	assert.True(t, sess.GameStarted)
}

func TestListSummaries(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	codeA, err := svc.Create(ctx, "alice")
	require.NoError(t, err)
	codeB, err := svc.Create(ctx, "bob")
	require.NoError(t, err)
	require.NoError(t, svc.Join(ctx, codeB, "carol"))

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byCode := map[string]int{}
	for _, s := range summaries {
		byCode[s.Code] = s.Players
	}
	assert.Equal(t, 1, byCode[codeA])
	assert.Equal(t, 2, byCode[codeB])
}

func TestConcurrentJoinsAllLand(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	code, err := svc.Create(ctx, "alice")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Join(ctx, code, fmt.Sprintf("player%d", i+2))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "join %d", i)
	}

	sess, err := svc.Get(ctx, code)
	require.NoError(t, err)
	assert.Len(t, sess.Players, 5)
	assert.Len(t, sess.Pioche, 52-9*5)
}

// fullStore pretends every code is taken, to exercise Create's bounded
// collision retry.
type fullStore struct{}

func (fullStore) Load(ctx context.Context, code string) (*models.Session, error) {
	return &models.Session{}, nil
}
func (fullStore) Save(ctx context.Context, code string, sess *models.Session) error { return nil }
func (fullStore) ListCodes(ctx context.Context) ([]string, error)                   { return nil, nil }

func TestCreateGivesUpWhenCodeSpaceExhausted(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := NewService(fullStore{}, logger)

	_, err := svc.Create(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no free session code")
}

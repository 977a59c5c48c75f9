package local

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mb "github.com/saeidalz13/battle-of-warships/models/battleship"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "warships.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func summary(gameUuid, player string, status mb.GameStatus) mb.MatchSummary {
	now := time.Now().UTC()
	return mb.MatchSummary{
		GameUuid:    gameUuid,
		PlayerName:  player,
		Status:      status,
		Turns:       10,
		PlayerShots: 12,
		PlayerHits:  6,
		AIShots:     8,
		AIHits:      2,
		ShotLog: []mb.ShotEvent{
			{GameUuid: gameUuid, Step: 1, Shooter: player, ShooterIsHuman: true, Target: mb.NewCoordinates(1, 1), Outcome: mb.ShotHit},
			{GameUuid: gameUuid, Step: 2, Shooter: player, ShooterIsHuman: true, Target: mb.NewCoordinates(1, 2), Outcome: mb.ShotSink},
		},
		StartedAt:  now.Add(-time.Minute),
		FinishedAt: now,
	}
}

func TestStore_TotalsAcrossMatches(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordMatch(ctx, summary("aaa111", "captain", mb.StatusVictory)))
	require.NoError(t, store.RecordMatch(ctx, summary("bbb222", "captain", mb.StatusDefeat)))
	require.NoError(t, store.RecordMatch(ctx, summary("ccc333", "admiral", mb.StatusVictory)))

	totals, err := store.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, mb.Totals{Games: 3, Victories: 2, Defeats: 1}, totals)

	captain, err := store.PlayerTotals(ctx, "captain")
	require.NoError(t, err)
	assert.Equal(t, mb.Totals{Games: 2, Victories: 1, Defeats: 1}, captain)

	nobody, err := store.PlayerTotals(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, mb.Totals{}, nobody)
}

func TestStore_ShotLogRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	recorded := summary("ddd444", "captain", mb.StatusVictory)
	require.NoError(t, store.RecordMatch(ctx, recorded))

	shots, err := store.ShotLog(ctx, "ddd444")
	require.NoError(t, err)
	assert.Equal(t, recorded.ShotLog, shots)

	_, err = store.ShotLog(ctx, "missing")
	require.Error(t, err)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warships.db")
	ctx := context.Background()

	store, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.RecordMatch(ctx, summary("eee555", "captain", mb.StatusDefeat)))
	require.NoError(t, store.Close())

	reopened, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	totals, err := reopened.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Defeats)
}

func TestOpen_InMemory(t *testing.T) {
	store, err := Open("", zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	totals, err := store.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), totals.Games)
}

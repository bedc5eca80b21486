package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/combatcore/internal/game/event"
	"github.com/cory-johannsen/combatcore/internal/game/initiative"
	"github.com/cory-johannsen/combatcore/internal/storage/postgres"
	"github.com/cory-johannsen/combatcore/internal/testutil"
)

func meta(sessionID uuid.UUID) event.Meta {
	return event.Meta{SessionID: sessionID, Timestamp: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)}
}

func sampleLog(sessionID uuid.UUID) []event.Event {
	return []event.Event{
		event.EncounterStarted{Meta: meta(sessionID), Order: []initiative.Entry{
			{CreatureID: "creature-a", Roll: 18, Modifier: 3, Total: 21},
			{CreatureID: "creature-b", Roll: 15, Modifier: 2, Total: 17},
		}, Seed: 42},
		event.TurnEnded{Meta: meta(sessionID), CreatureID: "creature-a"},
		event.AttackResolved{Meta: meta(sessionID), AttackerID: "creature-b", TargetID: "creature-a", AttackRoll: 14, AttackTotal: 17, TargetAC: 15, Hit: true, Damage: 6, NewHP: 4},
	}
}

func TestEventStoreAppendAndLoad(t *testing.T) {
	store := postgres.NewEventStore(testutil.NewPool(t))
	ctx := context.Background()
	sessionID := uuid.New()
	log := sampleLog(sessionID)

	first, err := store.Append(ctx, sessionID, log)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	loaded, err := store.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, log, loaded)

	last, err := store.LastSequence(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), last)

	// Appending continues the sequence.
	first, err = store.Append(ctx, sessionID, []event.Event{
		event.TurnEnded{Meta: meta(sessionID), CreatureID: "creature-b"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), first)

	tail, err := store.LoadFrom(ctx, sessionID, 4)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, event.KindTurnEnded, tail[0].EventKind())
}

func TestEventStoreReplayRebuildsState(t *testing.T) {
	store := postgres.NewEventStore(testutil.NewPool(t))
	ctx := context.Background()
	sessionID := uuid.New()

	log := []event.Event{
		event.EncounterStarted{Meta: meta(sessionID), Order: []initiative.Entry{
			{CreatureID: "a", Roll: 18, Modifier: 3, Total: 21},
			{CreatureID: "b", Roll: 15, Modifier: 2, Total: 17},
			{CreatureID: "c", Roll: 12, Modifier: 1, Total: 13},
		}, Seed: 7},
		event.TurnEnded{Meta: meta(sessionID), CreatureID: "a"},
		event.TurnEnded{Meta: meta(sessionID), CreatureID: "b"},
		event.TurnEnded{Meta: meta(sessionID), CreatureID: "c"},
	}
	_, err := store.Append(ctx, sessionID, log)
	require.NoError(t, err)

	loaded, err := store.Load(ctx, sessionID)
	require.NoError(t, err)

	direct, err := event.BuildState(log)
	require.NoError(t, err)
	replayed, err := event.BuildState(loaded)
	require.NoError(t, err)
	assert.Equal(t, direct, replayed)
	assert.Equal(t, 2, replayed.RoundNumber)
	assert.Equal(t, "a", replayed.ActiveCreatureID())
}

func TestEventStoreSessionsAreIndependent(t *testing.T) {
	store := postgres.NewEventStore(testutil.NewPool(t))
	ctx := context.Background()
	sessionA := uuid.New()
	sessionB := uuid.New()

	_, err := store.Append(ctx, sessionA, sampleLog(sessionA))
	require.NoError(t, err)
	_, err = store.Append(ctx, sessionB, sampleLog(sessionB)[:1])
	require.NoError(t, err)

	aEvents, err := store.Load(ctx, sessionA)
	require.NoError(t, err)
	assert.Len(t, aEvents, 3)

	bEvents, err := store.Load(ctx, sessionB)
	require.NoError(t, err)
	assert.Len(t, bEvents, 1)

	last, err := store.LastSequence(ctx, sessionB)
	require.NoError(t, err)
	assert.Equal(t, int64(1), last)

	sessions, err := store.Sessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestEventStoreRejectsForeignSessionEvents(t *testing.T) {
	store := postgres.NewEventStore(testutil.NewPool(t))
	ctx := context.Background()
	sessionID := uuid.New()

	_, err := store.Append(ctx, sessionID, []event.Event{
		event.TurnEnded{Meta: meta(uuid.New()), CreatureID: "a"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "belongs to session")
}

func TestEventStoreEmptySession(t *testing.T) {
	store := postgres.NewEventStore(testutil.NewPool(t))
	ctx := context.Background()

	events, err := store.Load(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, events)

	last, err := store.LastSequence(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), last)

	_, err = store.Append(ctx, uuid.New(), nil)
	require.Error(t, err)
}

func TestEventStoreUnknownKindRoundTrips(t *testing.T) {
	// Records written by a newer schema replay as no-op Unknown events.
	pool := testutil.NewPool(t)
	store := postgres.NewEventStore(pool)
	ctx := context.Background()
	sessionID := uuid.New()

	_, err := pool.Exec(ctx, `
		INSERT INTO combat_events (session_id, sequence, kind, payload, occurred_at)
		VALUES ($1, 1, 'creature_polymorphed',
			('{"kind":"creature_polymorphed","payload":{"session_id":"'||$1::text||'","timestamp":"2026-03-14T15:09:26Z"}}')::jsonb,
			NOW())`,
		sessionID,
	)
	require.NoError(t, err)

	events, err := store.Load(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.Kind("creature_polymorphed"), events[0].EventKind())

	_, err = event.BuildState(events)
	require.NoError(t, err)
}

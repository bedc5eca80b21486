package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/combatcore/internal/game/event"
)

// ErrSequenceConflict is returned when a concurrent append claimed the
// sequence numbers this append computed. The caller may reload and retry.
var ErrSequenceConflict = errors.New("event sequence conflict")

// EventStore persists the append-only combat event log. Each session's events
// form a strict total order via a per-session sequence column; replay reads
// them back in that order.
type EventStore struct {
	db *pgxpool.Pool
}

// NewEventStore creates an EventStore backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewEventStore(db *pgxpool.Pool) *EventStore {
	return &EventStore{db: db}
}

// Append writes events to the session's log in the given order, assigning
// consecutive sequence numbers after the current tail. The write is
// transactional: either every event lands or none do.
//
// Precondition: every event's Session() must equal sessionID.
// Postcondition: Returns the first sequence number assigned, or
// ErrSequenceConflict when a concurrent writer won the tail.
func (s *EventStore) Append(ctx context.Context, sessionID uuid.UUID, events []event.Event) (int64, error) {
	if len(events) == 0 {
		return 0, fmt.Errorf("appending to session %s: no events", sessionID)
	}
	for _, ev := range events {
		if ev.Session() != sessionID {
			return 0, fmt.Errorf("appending to session %s: event %s belongs to session %s", sessionID, ev.EventKind(), ev.Session())
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning append transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var last int64
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(sequence), 0)
		FROM combat_events WHERE session_id = $1`,
		sessionID,
	).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("reading session %s tail: %w", sessionID, err)
	}

	first := last + 1
	for i, ev := range events {
		payload, err := event.Marshal(ev)
		if err != nil {
			return 0, fmt.Errorf("encoding event %d: %w", i, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO combat_events (session_id, sequence, kind, payload, occurred_at)
			VALUES ($1, $2, $3, $4, $5)`,
			sessionID, first+int64(i), string(ev.EventKind()), payload, ev.OccurredAt(),
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return 0, ErrSequenceConflict
			}
			return 0, fmt.Errorf("inserting event %d (%s): %w", i, ev.EventKind(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing append: %w", err)
	}
	return first, nil
}

// Load reads a session's full event log in sequence order.
//
// Postcondition: Returns the events in replay order; an empty slice for a
// session with no history.
func (s *EventStore) Load(ctx context.Context, sessionID uuid.UUID) ([]event.Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT payload FROM combat_events
		WHERE session_id = $1 ORDER BY sequence ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading session %s events: %w", sessionID, err)
	}
	defer rows.Close()

	events := make([]event.Event, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		ev, err := event.Unmarshal(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding stored event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// LoadFrom reads a session's events with sequence >= from, in order. Used for
// incremental replay on top of a checkpointed state.
func (s *EventStore) LoadFrom(ctx context.Context, sessionID uuid.UUID, from int64) ([]event.Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT payload FROM combat_events
		WHERE session_id = $1 AND sequence >= $2 ORDER BY sequence ASC`,
		sessionID, from,
	)
	if err != nil {
		return nil, fmt.Errorf("loading session %s events from %d: %w", sessionID, from, err)
	}
	defer rows.Close()

	events := make([]event.Event, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		ev, err := event.Unmarshal(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding stored event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// LastSequence returns the session's newest sequence number, or 0 for a
// session with no history.
func (s *EventStore) LastSequence(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var last int64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(sequence), 0)
		FROM combat_events WHERE session_id = $1`,
		sessionID,
	).Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("reading session %s tail: %w", sessionID, err)
	}
	return last, nil
}

// Sessions lists the distinct session IDs with recorded events, oldest first.
func (s *EventStore) Sessions(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, `
		SELECT session_id FROM combat_events
		GROUP BY session_id ORDER BY MIN(occurred_at) ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package outbox

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/quizfunnel/internal/logging"
	"github.com/tomtom215/quizfunnel/internal/metrics"
	"github.com/tomtom215/quizfunnel/internal/webhook"
)

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("outbox is closed")

	// ErrEntryNotFound is returned when no pending entry has the id.
	ErrEntryNotFound = errors.New("outbox entry not found")

	// ErrEmptyID is returned for deliveries without an id.
	ErrEmptyID = errors.New("outbox entry id is empty")
)

const (
	prefixPending   = "pending:"
	prefixDelivered = "delivered:"

	// deliveredTTL keeps a short record of delivered ids for debugging.
	deliveredTTL = 24 * time.Hour
)

// Entry is a delivery waiting for retry.
type Entry struct {
	ID            string           `json:"id"`
	Delivery      webhook.Delivery `json:"delivery"`
	CreatedAt     time.Time        `json:"created_at"`
	Attempts      int              `json:"attempts"`
	LastAttemptAt time.Time        `json:"last_attempt_at,omitempty"`
	LastError     string           `json:"last_error,omitempty"`
}

// Store persists entries in BadgerDB.
type Store struct {
	db     *badger.DB
	config Config

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store described by cfg.
func Open(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid outbox config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{db: db, config: cfg}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("outbox opened")

	if n, err := s.Count(context.Background()); err == nil {
		metrics.SetOutboxPending(n)
	}
	return s, nil
}

// Config returns the configuration the store was opened with.
func (s *Store) Config() Config {
	return s.config
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Add stores d as a pending entry. firstErr is the error of the attempt
// that led here; it counts as attempt one when non-nil. A delivery already
// marked delivered is ignored, so a redelivered message is not sent twice.
func (s *Store) Add(ctx context.Context, d webhook.Delivery, firstErr error) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if d.ID == "" {
		return ErrEmptyID
	}
	if s.Delivered(d.ID) {
		return nil
	}

	now := time.Now().UTC()
	entry := &Entry{ID: d.ID, Delivery: d, CreatedAt: now}
	if firstErr != nil {
		entry.Attempts = 1
		entry.LastAttemptAt = now
		entry.LastError = firstErr.Error()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(prefixPending+d.ID), data)
		if s.config.EntryTTL > 0 {
			e = e.WithTTL(s.config.EntryTTL)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("write to BadgerDB: %w", err)
	}

	s.refreshPending(ctx)
	return nil
}

// Pending returns every pending entry, oldest first.
func (s *Store) Pending(ctx context.Context) ([]*Entry, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var entries []*Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixPending)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := it.Item()
			var entry Entry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				logging.Warn().Err(err).Str("key", string(item.Key())).Msg("outbox failed to unmarshal entry")
				continue
			}
			entries = append(entries, &entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate pending entries: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

// Count returns the number of pending entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixPending)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

// RecordFailure bumps the attempt counter of id and stores lastErr.
func (s *Store) RecordFailure(ctx context.Context, id, lastErr string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if id == "" {
		return ErrEmptyID
	}

	key := []byte(prefixPending + id)
	return s.db.Update(func(txn *badger.Txn) error {
		entry, err := getEntry(txn, key)
		if err != nil {
			return err
		}
		entry.Attempts++
		entry.LastAttemptAt = time.Now().UTC()
		entry.LastError = lastErr

		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal entry: %w", err)
		}
		e := badger.NewEntry(key, data)
		if s.config.EntryTTL > 0 {
			if remaining := s.config.EntryTTL - time.Since(entry.CreatedAt); remaining > 0 {
				e = e.WithTTL(remaining)
			}
		}
		return txn.SetEntry(e)
	})
}

// MarkDelivered moves id out of the pending set.
func (s *Store) MarkDelivered(ctx context.Context, id string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if id == "" {
		return ErrEmptyID
	}

	pendingKey := []byte(prefixPending + id)
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := getEntry(txn, pendingKey); err != nil {
			return err
		}
		stamp := []byte(time.Now().UTC().Format(time.RFC3339))
		if err := txn.SetEntry(badger.NewEntry([]byte(prefixDelivered+id), stamp).WithTTL(deliveredTTL)); err != nil {
			return fmt.Errorf("set delivered marker: %w", err)
		}
		return txn.Delete(pendingKey)
	})
	if err != nil {
		return err
	}
	s.refreshPending(ctx)
	return nil
}

// Remove drops id without delivering it.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if id == "" {
		return ErrEmptyID
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixPending + id))
	})
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	s.refreshPending(ctx)
	return nil
}

// Delivered reports whether id was delivered within the last day.
func (s *Store) Delivered(id string) bool {
	if s.checkOpen() != nil {
		return false
	}
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(prefixDelivered + id))
		return err
	})
	return err == nil
}

// RunGC reclaims value log space. In-memory stores have nothing to reclaim.
func (s *Store) RunGC() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.config.InMemory {
		return nil
	}
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Close closes the database. Further calls are no-ops.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	logging.Info().Msg("outbox closed")
	return nil
}

func (s *Store) refreshPending(ctx context.Context) {
	if n, err := s.Count(ctx); err == nil {
		metrics.SetOutboxPending(n)
	}
}

func getEntry(txn *badger.Txn, key []byte) (*Entry, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	var entry Entry
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &entry)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal entry: %w", err)
	}
	return &entry, nil
}

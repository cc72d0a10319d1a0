// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/metrics"
	"github.com/tomtom215/cinerank/internal/recommend"
)

const keyPrefix = "rating:"

// GC outcomes reported by RunGC.
const (
	GCRewritten = "rewritten"
	GCNoop      = "noop"
)

var (
	// ErrClosed is returned when the journal has been closed.
	ErrClosed = errors.New("journal is closed")

	// ErrCorruptEntry is returned by Replay when a stored batch cannot be decoded.
	ErrCorruptEntry = errors.New("corrupt journal entry")
)

// Config holds journal storage options.
type Config struct {
	// Path is the BadgerDB directory.
	Path string

	// SyncWrites forces fsync after every batch.
	SyncWrites bool

	// GCRatio is the value log discard ratio passed to BadgerDB GC.
	GCRatio float64

	// InMemory runs BadgerDB without touching disk. Path is ignored.
	InMemory bool
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Path == "" && !c.InMemory {
		return fmt.Errorf("journal path is required")
	}
	if c.GCRatio < 0 || c.GCRatio >= 1 {
		return fmt.Errorf("journal GC ratio must be in [0, 1), got %f", c.GCRatio)
	}
	return nil
}

// entry is the stored form of one accepted batch.
type entry struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Ratings   []recommend.Rating `json:"ratings"`
}

// Journal is a BadgerDB-backed append-only log of rating batches.
type Journal struct {
	db     *badger.DB
	config Config

	count   atomic.Int64
	appends atomic.Int64

	mu     sync.RWMutex
	closed bool
}

var _ recommend.Journal = (*Journal)(nil)

// Open opens (or creates) the journal at cfg.Path.
func Open(cfg Config) (*Journal, error) {
	if cfg.GCRatio == 0 {
		cfg.GCRatio = 0.5
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid journal config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	j := &Journal{db: db, config: cfg}

	n, err := j.countRatings()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	j.count.Store(n)
	metrics.SetJournalRatings(n)

	logging.Info().
		Str("path", cfg.Path).
		Bool("sync_writes", cfg.SyncWrites).
		Int64("ratings", n).
		Msg("Ratings journal opened")
	return j, nil
}

func (j *Journal) checkOpen() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return ErrClosed
	}
	return nil
}

// Append durably stores one batch under a single key.
func (j *Journal) Append(ctx context.Context, ratings []recommend.Rating) (err error) {
	defer func() { metrics.RecordJournalAppend(err) }()

	if err := j.checkOpen(); err != nil {
		return err
	}
	if len(ratings) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e := entry{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Ratings:   ratings,
	}
	data, err := json.Marshal(&e)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	key := batchKey(e.CreatedAt, e.ID)
	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("write to BadgerDB: %w", err)
	}

	j.appends.Add(1)
	metrics.SetJournalRatings(j.count.Add(int64(len(ratings))))

	logging.CtxDebug(ctx).
		Str("batch_id", e.ID).
		Int("ratings", len(ratings)).
		Msg("Rating batch journaled")
	return nil
}

// batchKey zero-pads the timestamp so byte order matches time order.
func batchKey(t time.Time, id string) []byte {
	return []byte(keyPrefix + fmt.Sprintf("%020d", t.UnixNano()) + ":" + id)
}

// Replay returns every journaled rating in the order batches were appended.
func (j *Journal) Replay(ctx context.Context) ([]recommend.Rating, error) {
	if err := j.checkOpen(); err != nil {
		return nil, err
	}

	var out []recommend.Rating
	batches := 0

	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := it.Item()
			var e entry
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				return fmt.Errorf("%w: key %s: %w", ErrCorruptEntry, item.Key(), err)
			}
			out = append(out, e.Ratings...)
			batches++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("replay journal: %w", err)
	}

	logging.Info().
		Int("batches", batches).
		Int("ratings", len(out)).
		Msg("Ratings journal replayed")
	return out, nil
}

func (j *Journal) countRatings() (int64, error) {
	var n int64
	err := j.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var e entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return fmt.Errorf("%w: %w", ErrCorruptEntry, err)
			}
			n += int64(len(e.Ratings))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count journal: %w", err)
	}
	return n, nil
}

// Count returns the number of ratings stored in the journal.
func (j *Journal) Count() int64 {
	return j.count.Load()
}

// Stats is a point-in-time view of journal state.
type Stats struct {
	Ratings     int64 `json:"ratings"`
	Appends     int64 `json:"appends"`
	DBSizeBytes int64 `json:"db_size_bytes"`
}

// Stats returns journal counters and the on-disk size.
func (j *Journal) Stats() Stats {
	if j.checkOpen() != nil {
		return Stats{}
	}
	lsm, vlog := j.db.Size()
	return Stats{
		Ratings:     j.count.Load(),
		Appends:     j.appends.Load(),
		DBSizeBytes: lsm + vlog,
	}
}

// RunGC runs value log garbage collection until nothing is left to rewrite.
// It returns GCRewritten when at least one file was rewritten and GCNoop otherwise.
func (j *Journal) RunGC() (result string, err error) {
	defer func() {
		if err != nil {
			metrics.RecordJournalGC("error")
		} else {
			metrics.RecordJournalGC(result)
		}
	}()

	if err := j.checkOpen(); err != nil {
		return "", err
	}
	if j.config.InMemory {
		return GCNoop, nil
	}

	rewrites := 0
	for {
		err := j.db.RunValueLogGC(j.config.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("run GC: %w", err)
		}
		rewrites++
	}

	if rewrites == 0 {
		return GCNoop, nil
	}
	logging.Info().Int("rewrites", rewrites).Msg("Ratings journal GC rewrote value log")
	return GCRewritten, nil
}

// Close flushes and closes the underlying database. It is safe to call twice.
func (j *Journal) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	j.mu.Unlock()

	if err := j.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	logging.Info().Msg("Ratings journal closed")
	return nil
}

// Package store keeps both datasets in memory and mirrors them, in full,
// to durable storage after every mutation.
package store

import (
	"context"
	"sync"

	"github.com/denismitr/estatebook/internal/kv"
	"github.com/denismitr/estatebook/record"
	"github.com/denismitr/estatebook/schema"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Listener is told which dataset changed after a successful mutation.
type Listener func(d schema.Dataset)

type Store struct {
	db  *kv.DB
	log *zap.Logger

	mu        sync.RWMutex
	data      map[schema.Dataset][]*record.Record
	listeners []Listener
}

func New(db *kv.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Store{
		db:   db,
		log:  log,
		data: make(map[schema.Dataset][]*record.Record, len(schema.Datasets)),
	}

	for _, d := range schema.Datasets {
		s.data[d] = []*record.Record{}
	}

	return s
}

// Subscribe registers fn to run after every successful mutation.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Load reads every dataset from durable storage. Missing or malformed data
// yields an empty dataset; only a canceled context is reported.
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	loaded := make(map[schema.Dataset][]*record.Record, len(schema.Datasets))
	for _, d := range schema.Datasets {
		loaded[d] = []*record.Record{}
	}

	err := s.db.View(ctx, func(tx *kv.Tx) error {
		known := make(map[string]bool, len(schema.Datasets))
		for _, d := range schema.Datasets {
			known[d.StorageKey()] = true
			loaded[d] = s.readDataset(tx, d)
		}

		for _, k := range tx.Keys() {
			if !known[k] {
				s.log.Warn("ignoring unknown storage slot", zap.String("key", k))
			}
		}

		s.log.Debug("storage read", zap.Int("slots", tx.Count()))
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		s.log.Warn("could not read durable storage, starting with empty datasets", zap.Error(err))
	}

	s.mu.Lock()
	s.data = loaded
	s.mu.Unlock()

	for _, d := range schema.Datasets {
		s.log.Debug("dataset loaded", zap.String("dataset", d.String()), zap.Int("records", len(loaded[d])))
	}

	return nil
}

func (s *Store) readDataset(tx *kv.Tx, d schema.Dataset) []*record.Record {
	doc, err := tx.Get(d.StorageKey())
	if err != nil {
		if !errors.Is(err, kv.ErrKeyDoesNotExist) {
			s.log.Warn("could not read dataset slot", zap.String("dataset", d.String()), zap.Error(err))
		}
		return []*record.Record{}
	}

	reason := ""
	switch {
	case !doc.Valid():
		reason = "not valid json"
	case doc.Len() < 0:
		reason = "not a json array"
	}

	var recs []*record.Record
	if reason == "" {
		recs, err = record.Decode(doc.Value())
		if err != nil {
			reason = err.Error()
		}
	}

	if reason != "" {
		s.log.Warn("dataset slot is malformed, treating it as empty",
			zap.String("dataset", d.String()),
			zap.String("key", doc.Key()),
			zap.String("reason", reason))
		return []*record.Record{}
	}

	return recs
}

// Save writes both datasets to durable storage, overwriting each slot in full.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.saveUnderLock(ctx, s.data)
}

func (s *Store) saveUnderLock(ctx context.Context, data map[schema.Dataset][]*record.Record) error {
	return s.db.Update(ctx, func(tx *kv.Tx) error {
		for _, d := range schema.Datasets {
			b, err := record.Encode(data[d])
			if err != nil {
				return errors.Wrapf(err, "could not encode %s dataset", d)
			}

			if err := tx.Put(d.StorageKey(), b); err != nil {
				return err
			}
		}
		return nil
	})
}

// Records returns clones of every record of d in order.
func (s *Store) Records(d schema.Dataset) []*record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.data[d])
}

func (s *Store) Len(d schema.Dataset) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[d])
}

func (s *Store) At(d schema.Dataset, i int) (*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq := s.data[d]
	if err := checkIndex(seq, i); err != nil {
		return nil, err
	}
	return seq[i].Clone(), nil
}

func (s *Store) Get(d schema.Dataset, id string) (*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, err := indexOf(s.data[d], id)
	if err != nil {
		return nil, err
	}
	return s.data[d][i].Clone(), nil
}

func (s *Store) IndexOf(d schema.Dataset, id string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.data[d], id)
}

// InsertFront puts r at position 0 of d and persists.
func (s *Store) InsertFront(ctx context.Context, d schema.Dataset, r *record.Record) error {
	return s.mutate(ctx, d, "insert", func(seq []*record.Record) ([]*record.Record, error) {
		c := r.Clone()
		if _, err := indexOf(seq, c.ID()); err == nil {
			c = c.WithID(record.New().ID())
		}
		return insertFront(seq, c), nil
	})
}

// ReplaceAt overwrites the record at position i of d and persists.
func (s *Store) ReplaceAt(ctx context.Context, d schema.Dataset, i int, r *record.Record) error {
	return s.mutate(ctx, d, "replace", func(seq []*record.Record) ([]*record.Record, error) {
		if err := checkIndex(seq, i); err != nil {
			return nil, err
		}
		return replaceAt(seq, i, r.WithID(seq[i].ID()))
	})
}

// RemoveAt deletes the record at position i of d and persists.
func (s *Store) RemoveAt(ctx context.Context, d schema.Dataset, i int) error {
	return s.mutate(ctx, d, "remove", func(seq []*record.Record) ([]*record.Record, error) {
		return removeAt(seq, i)
	})
}

// Replace overwrites the record identified by id and persists.
func (s *Store) Replace(ctx context.Context, d schema.Dataset, id string, r *record.Record) error {
	return s.mutate(ctx, d, "replace", func(seq []*record.Record) ([]*record.Record, error) {
		i, err := indexOf(seq, id)
		if err != nil {
			return nil, err
		}
		return replaceAt(seq, i, r.WithID(id))
	})
}

// Remove deletes the record identified by id and persists.
func (s *Store) Remove(ctx context.Context, d schema.Dataset, id string) error {
	return s.mutate(ctx, d, "remove", func(seq []*record.Record) ([]*record.Record, error) {
		i, err := indexOf(seq, id)
		if err != nil {
			return nil, err
		}
		return removeAt(seq, i)
	})
}

func (s *Store) mutate(
	ctx context.Context,
	d schema.Dataset,
	op string,
	fn func(seq []*record.Record) ([]*record.Record, error),
) error {
	if !d.Valid() {
		return errors.Wrapf(schema.ErrUnknownDataset, "%q", d)
	}

	s.mu.Lock()

	next, err := fn(s.data[d])
	if err != nil {
		s.mu.Unlock()
		return errors.Wrapf(err, "could not %s %s record", op, d)
	}

	prev := s.data[d]
	s.data[d] = next

	if err := s.saveUnderLock(ctx, s.data); err != nil {
		s.data[d] = prev
		s.mu.Unlock()
		return errors.Wrapf(err, "could not persist %s of %s record", op, d)
	}

	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	s.log.Debug("dataset mutated",
		zap.String("dataset", d.String()),
		zap.String("op", op),
		zap.Int("records", len(next)))

	for _, l := range listeners {
		l(d)
	}

	return nil
}

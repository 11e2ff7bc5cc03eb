package kv

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// InMemory is the path that opens a DB without any file behind it.
const InMemory = ":memory:"

var ErrDatabaseAlreadyClosed = errors.New("database already closed")

type DB struct {
	e      *engine
	mu     sync.RWMutex
	closed bool
}

type UserCallback func(tx *Tx) error

type Closer func() error

func NullCloser() error { return nil }

// Open loads the database file at path, creating it when missing.
func Open(path string, cfg *Config) (*DB, Closer, error) {
	c, err := resolveConfig(cfg)
	if err != nil {
		return nil, NullCloser, err
	}

	e, err := newEngine(path, c)
	if err != nil {
		return nil, NullCloser, err
	}

	if err := e.init(); err != nil {
		return nil, NullCloser, err
	}

	db := &DB{e: e}

	return db, db.close, nil
}

func (db *DB) close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrDatabaseAlreadyClosed
	}

	db.e.log.Debug("closing database", zap.String("path", db.e.path))
	db.e = nil
	db.closed = true
	return nil
}

func (db *DB) begin(ctx context.Context, readOnly bool) (*Tx, error) {
	if db.closed {
		return nil, ErrDatabaseAlreadyClosed
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Tx{
		e:        db.e,
		ctx:      ctx,
		readOnly: readOnly,
		pending:  make(map[string]*slot),
	}, nil
}

func (db *DB) View(ctx context.Context, cb UserCallback) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tx, err := db.begin(ctx, true)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		tx.rollback()
		return errors.Wrap(err, "db read failed")
	}

	return nil
}

func (db *DB) Update(ctx context.Context, cb UserCallback) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.begin(ctx, false)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		tx.rollback()
		return errors.Wrap(err, "db write failed. rolled back")
	}

	if err := tx.commit(); err != nil {
		return err
	}

	return nil
}

package kv

import (
	"context"

	"github.com/pkg/errors"
)

var ErrKeyDoesNotExist = errors.New("key does not exist in DB")
var ErrTxIsReadOnly = errors.New("transaction is read only")
var ErrTxDone = errors.New("transaction already committed or rolled back")

// Tx buffers writes until the Update callback returns without an error.
type Tx struct {
	readOnly bool
	done     bool
	e        *engine
	ctx      context.Context
	pending  map[string]*slot
	order    []string
}

func (x *Tx) Get(key string) (*Document, error) {
	if x.done {
		return nil, ErrTxDone
	}

	if s, ok := x.pending[key]; ok {
		return newDocument(key, s.value), nil
	}

	s, ok := x.e.get(key)
	if !ok {
		return nil, errors.Wrapf(ErrKeyDoesNotExist, "%s", key)
	}

	return newDocument(key, s.value), nil
}

// Put inserts or replaces the value stored under key.
func (x *Tx) Put(key string, value []byte) error {
	if err := x.writable(); err != nil {
		return err
	}

	if key == "" {
		return errors.New("key cannot be empty")
	}

	v := make([]byte, len(value))
	copy(v, value)
	x.stage(&slot{key: key, value: v})

	return nil
}

// Keys lists the committed keys in order, followed by keys first written
// in this transaction.
func (x *Tx) Keys() []string {
	var keys []string
	seen := make(map[string]bool)

	x.e.ascend(func(s *slot) bool {
		seen[s.key] = true
		keys = append(keys, s.key)
		return true
	})

	for _, k := range x.order {
		if !seen[k] {
			keys = append(keys, k)
		}
	}

	return keys
}

func (x *Tx) Count() int {
	return len(x.Keys())
}

func (x *Tx) writable() error {
	if x.done {
		return ErrTxDone
	}

	if x.readOnly {
		return ErrTxIsReadOnly
	}

	return x.ctx.Err()
}

func (x *Tx) stage(s *slot) {
	if _, ok := x.pending[s.key]; !ok {
		x.order = append(x.order, s.key)
	}

	x.pending[s.key] = s
}

func (x *Tx) commit() error {
	if x.done {
		return ErrTxDone
	}

	x.done = true
	if len(x.pending) == 0 {
		return nil
	}

	undo := make(map[string]*slot, len(x.order))
	for _, k := range x.order {
		undo[k] = x.e.put(x.pending[k])
	}

	if err := x.e.persist(); err != nil {
		for k, prev := range undo {
			if prev == nil {
				x.e.remove(k)
			} else {
				x.e.put(prev)
			}
		}

		return errors.Wrap(err, "could not persist transaction")
	}

	return nil
}

func (x *Tx) rollback() {
	x.done = true
	x.pending = nil
	x.order = nil
}

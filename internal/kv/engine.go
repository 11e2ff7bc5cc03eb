package kv

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/tidwall/btree"
	"go.uber.org/zap"
)

var ErrEmptyPath = errors.New("database path is empty")

const castPanic = "how could slots item not be of type *slot"

type engine struct {
	path  string
	cfg   *Config
	log   *zap.Logger
	slots *btree.BTree
	fs    *fileStorage
}

func newEngine(path string, cfg *Config) (*engine, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}

	e := &engine{
		path:  path,
		cfg:   cfg,
		log:   cfg.Log.With(zap.String("db", path)),
		slots: btree.New(bySlotKeys),
	}

	if path != InMemory {
		e.fs = newFileStorage(path, cfg.FileMode, cfg.SkipFsync)
		e.path = e.fs.path()
	}

	return e, nil
}

func (e *engine) init() error {
	if e.fs == nil {
		return nil
	}

	m, err := e.fs.load()
	if err != nil {
		if !errors.Is(err, ErrCorruptedFile) || !e.cfg.ResetCorrupted {
			return err
		}

		movedTo, qErr := e.fs.quarantine()
		if qErr != nil {
			return errors.Wrap(err, qErr.Error())
		}

		e.log.Warn("database file is corrupted, starting empty",
			zap.String("moved_to", movedTo),
			zap.Error(err))

		if _, err := e.fs.initialize(); err != nil {
			return err
		}

		return nil
	}

	for _, ps := range m.Slots {
		if xxhash.Sum64String(ps.V) != ps.H {
			e.log.Warn("slot checksum mismatch, dropping slot", zap.String("key", ps.K))
			continue
		}

		e.slots.Set(&slot{key: ps.K, value: []byte(ps.V)})
	}

	e.log.Debug("database loaded", zap.Int("slots", e.slots.Len()))

	return nil
}

func (e *engine) get(k string) (*slot, bool) {
	found := e.slots.Get(&slot{key: k})
	if found == nil {
		return nil, false
	}

	s, ok := found.(*slot)
	if !ok {
		panic(castPanic)
	}

	return s, true
}

func (e *engine) put(s *slot) *slot {
	prev := e.slots.Set(s)
	if prev == nil {
		return nil
	}

	return prev.(*slot)
}

func (e *engine) remove(k string) *slot {
	prev := e.slots.Delete(&slot{key: k})
	if prev == nil {
		return nil
	}

	return prev.(*slot)
}

func (e *engine) ascend(fn func(s *slot) bool) {
	e.slots.Ascend(nil, func(item interface{}) bool {
		s, ok := item.(*slot)
		if !ok {
			panic(castPanic)
		}

		return fn(s)
	})
}

func (e *engine) snapshot() model {
	m := model{Slots: make([]persistedSlot, 0, e.slots.Len())}
	e.ascend(func(s *slot) bool {
		v := string(s.value)
		m.Slots = append(m.Slots, persistedSlot{K: s.key, V: v, H: xxhash.Sum64String(v)})
		return true
	})

	return m
}

func (e *engine) persist() error {
	if e.fs == nil {
		return nil
	}

	return e.fs.write(e.snapshot())
}

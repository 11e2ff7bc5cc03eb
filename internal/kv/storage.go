package kv

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var ErrCorruptedFile = errors.New("database file could not be decoded")

const fileExt = ".ldb"

type fileStorage struct {
	fullPath  string
	tmpPath   string
	mode      os.FileMode
	skipFsync bool

	mu sync.Mutex
}

func newFileStorage(fullPath string, mode os.FileMode, skipFsync bool) *fileStorage {
	if !strings.HasSuffix(fullPath, fileExt) {
		fullPath += fileExt
	}

	tmpPath := strings.TrimSuffix(fullPath, fileExt) + ".tmp"

	return &fileStorage{
		fullPath:  fullPath,
		tmpPath:   tmpPath,
		mode:      mode,
		skipFsync: skipFsync,
	}
}

func (s *fileStorage) path() string {
	return s.fullPath
}

// load reads the model from disk, initializing an empty file when there is none.
func (s *fileStorage) load() (model, error) {
	b, err := os.ReadFile(s.fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return s.initialize()
		}

		return model{}, errors.Wrapf(err, "could not read %s", s.fullPath)
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return s.initialize()
	}

	var m model
	if err := json.Unmarshal(b, &m); err != nil {
		return model{}, errors.Wrapf(ErrCorruptedFile, "%s: %s", s.fullPath, err.Error())
	}

	return m, nil
}

func (s *fileStorage) initialize() (model, error) {
	m := model{Slots: []persistedSlot{}}
	if err := s.write(m); err != nil {
		return model{}, err
	}

	return m, nil
}

func (s *fileStorage) write(m model) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.fullPath), 0o755); err != nil {
		return errors.Wrapf(err, "could not create directory for %s", s.fullPath)
	}

	tmpF, err := os.OpenFile(s.tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, s.mode)
	if err != nil {
		return errors.Wrapf(err, "could not create tmp file %s", s.tmpPath)
	}

	e := json.NewEncoder(tmpF)
	if err := e.Encode(&m); err != nil {
		_ = tmpF.Close()
		_ = os.Remove(s.tmpPath)
		return errors.Wrapf(err, "could not write to tmp file %s", s.tmpPath)
	}

	if !s.skipFsync {
		if err := tmpF.Sync(); err != nil {
			_ = tmpF.Close()
			_ = os.Remove(s.tmpPath)
			return errors.Wrapf(err, "could not sync tmp file %s", s.tmpPath)
		}
	}

	if err := tmpF.Close(); err != nil {
		_ = os.Remove(s.tmpPath)
		return errors.Wrapf(err, "could not close tmp file %s", s.tmpPath)
	}

	if err := os.Rename(s.tmpPath, s.fullPath); err != nil {
		_ = os.Remove(s.tmpPath)
		return errors.Wrapf(err, "could not replace %s with %s", s.fullPath, s.tmpPath)
	}

	return nil
}

// quarantine moves the current file out of the way and returns its new name.
func (s *fileStorage) quarantine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dst := s.fullPath + ".corrupt"
	if err := os.Rename(s.fullPath, dst); err != nil {
		return "", errors.Wrapf(err, "could not move %s aside", s.fullPath)
	}

	return dst, nil
}

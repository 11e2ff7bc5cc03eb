package kv

import (
	"os"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultFileMode os.FileMode = 0o644

type Config struct {
	// Log receives load warnings such as dropped slots. Defaults to a no-op logger.
	Log *zap.Logger

	// ResetCorrupted moves an undecodable database file aside to <path>.corrupt
	// and opens an empty database instead of failing.
	ResetCorrupted bool

	// SkipFsync trades durability for speed. Only meant for tests.
	SkipFsync bool

	FileMode os.FileMode
}

func resolveConfig(cfg *Config) (*Config, error) {
	c := Config{
		Log:      zap.NewNop(),
		FileMode: defaultFileMode,
	}

	if cfg == nil {
		return &c, nil
	}

	if err := copier.CopyWithOption(&c, cfg, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, errors.Wrap(err, "could not apply database config")
	}

	return &c, nil
}

package export

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/denismitr/estatebook/record"
	"github.com/denismitr/estatebook/schema"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Exporter writes export files into one directory.
type Exporter struct {
	dir string
	log *zap.Logger
}

func NewExporter(dir string, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	if dir == "" {
		dir = "."
	}
	return &Exporter{dir: dir, log: log}
}

func (e *Exporter) Dir() string {
	return e.dir
}

func (e *Exporter) WriteJSON(d schema.Dataset, recs []*record.Record) (string, error) {
	return e.write(d, FormatJSON, recs, func(w io.Writer) error {
		return JSON(w, recs)
	})
}

func (e *Exporter) WriteXLSX(d schema.Dataset, recs []*record.Record) (string, error) {
	return e.write(d, FormatXLSX, recs, func(w io.Writer) error {
		return XLSX(w, d, recs)
	})
}

// Write dispatches on format, which is json or xlsx in any case.
func (e *Exporter) Write(d schema.Dataset, format string, recs []*record.Record) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return e.WriteJSON(d, recs)
	case FormatXLSX:
		return e.WriteXLSX(d, recs)
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

func (e *Exporter) write(d schema.Dataset, format string, recs []*record.Record, fn func(w io.Writer) error) (string, error) {
	if !d.Valid() {
		return "", errors.Wrapf(schema.ErrUnknownDataset, "%q", d)
	}

	path := filepath.Join(e.dir, FileName(d, format))
	if err := writeFile(path, fn); err != nil {
		return "", err
	}

	e.log.Info("dataset exported",
		zap.String("dataset", d.String()),
		zap.String("format", format),
		zap.String("path", path),
		zap.Int("records", len(recs)))

	return path, nil
}

func writeFile(path string, fn func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "could not create directory for %s", path)
	}

	tmpPath := path + ".tmp"
	tmpF, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "could not create tmp file %s", tmpPath)
	}

	if err := fn(tmpF); err != nil {
		_ = tmpF.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	if err := tmpF.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "could not close tmp file %s", tmpPath)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "could not move %s into place", path)
	}

	return nil
}

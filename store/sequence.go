package store

import (
	"github.com/denismitr/estatebook/record"
	"github.com/pkg/errors"
)

var ErrIndexOutOfRange = errors.New("record index out of range")
var ErrRecordNotFound = errors.New("record not found")

// The sequence helpers never modify their input slice.

func insertFront(seq []*record.Record, r *record.Record) []*record.Record {
	out := make([]*record.Record, 0, len(seq)+1)
	out = append(out, r)
	return append(out, seq...)
}

func replaceAt(seq []*record.Record, i int, r *record.Record) ([]*record.Record, error) {
	if err := checkIndex(seq, i); err != nil {
		return nil, err
	}

	out := make([]*record.Record, len(seq))
	copy(out, seq)
	out[i] = r
	return out, nil
}

func removeAt(seq []*record.Record, i int) ([]*record.Record, error) {
	if err := checkIndex(seq, i); err != nil {
		return nil, err
	}

	out := make([]*record.Record, 0, len(seq)-1)
	out = append(out, seq[:i]...)
	return append(out, seq[i+1:]...), nil
}

func indexOf(seq []*record.Record, id string) (int, error) {
	for i, r := range seq {
		if r.ID() == id {
			return i, nil
		}
	}

	return -1, errors.Wrapf(ErrRecordNotFound, "id %s", id)
}

func checkIndex(seq []*record.Record, i int) error {
	if i < 0 || i >= len(seq) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, dataset has %d records", i, len(seq))
	}
	return nil
}

func cloneAll(seq []*record.Record) []*record.Record {
	out := make([]*record.Record, len(seq))
	for i, r := range seq {
		out[i] = r.Clone()
	}
	return out
}

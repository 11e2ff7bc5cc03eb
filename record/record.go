// Package record implements the flat, string valued rows both datasets are made of.
package record

import (
	"strings"

	"github.com/google/uuid"
)

// Record is an ordered mapping from field key to string value.
//
// Every record carries an identifier assigned when it is created or loaded.
// The identifier lives only in memory: the persisted form of a record is the
// plain key/value object, so identifiers are stable for a session and
// address edits and deletes independently of the record's position.
type Record struct {
	id     string
	keys   []string
	values map[string]string
	raw    map[string]rawValue
}

// rawValue keeps the JSON text of a value that was not stored as a JSON
// string, so an untouched value is written back the way it was read.
type rawValue struct {
	text  string
	blank bool
}

func New() *Record {
	return &Record{
		id:     uuid.NewString(),
		values: make(map[string]string),
	}
}

// FromPairs builds a record from alternating keys and values.
func FromPairs(pairs ...string) *Record {
	if len(pairs)%2 != 0 {
		panic("record.FromPairs needs an even number of arguments")
	}

	r := New()
	for i := 0; i < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func (r *Record) ID() string {
	return r.id
}

// Get returns the value under key, or an empty string when it is missing.
func (r *Record) Get(key string) string {
	return r.values[key]
}

func (r *Record) Lookup(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Set stores value under key. A new key goes last; an existing key keeps its position.
func (r *Record) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	delete(r.raw, key)
}

func (r *Record) setRaw(key, value string, raw rawValue) {
	r.Set(key, value)
	if r.raw == nil {
		r.raw = make(map[string]rawValue)
	}
	r.raw[key] = raw
}

// Display is the value as forms and tables show it: missing keys and falsy
// JSON values (null, false, 0, "") are blank.
func (r *Record) Display(key string) string {
	if rv, ok := r.raw[key]; ok && rv.blank {
		return ""
	}
	return r.values[key]
}

func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Values() []string {
	out := make([]string, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.values[k]
	}
	return out
}

func (r *Record) Len() int {
	return len(r.keys)
}

// Clone returns a deep copy that keeps the identifier.
func (r *Record) Clone() *Record {
	c := &Record{
		id:     r.id,
		keys:   make([]string, len(r.keys)),
		values: make(map[string]string, len(r.values)),
	}

	copy(c.keys, r.keys)
	for k, v := range r.values {
		c.values[k] = v
	}

	if len(r.raw) > 0 {
		c.raw = make(map[string]rawValue, len(r.raw))
		for k, v := range r.raw {
			c.raw[k] = v
		}
	}

	return c
}

// WithID returns a copy of r carrying id.
func (r *Record) WithID(id string) *Record {
	c := r.Clone()
	c.id = id
	return c
}

// Text is the lowercased, space separated concatenation of all values in key order.
func (r *Record) Text() string {
	return strings.ToLower(strings.Join(r.Values(), " "))
}

// Equal compares content and key order, ignoring identifiers.
func (r *Record) Equal(other *Record) bool {
	if other == nil || len(r.keys) != len(other.keys) {
		return false
	}

	for i, k := range r.keys {
		if other.keys[i] != k || other.values[k] != r.values[k] {
			return false
		}

		a, aok := r.raw[k]
		b, bok := other.raw[k]
		if aok != bok || a.text != b.text {
			return false
		}
	}

	return true
}

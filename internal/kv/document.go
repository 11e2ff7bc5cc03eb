package kv

import "github.com/tidwall/gjson"

// Document is a copy of the value stored under a key.
type Document struct {
	key   string
	value []byte
}

func newDocument(key string, value []byte) *Document {
	v := make([]byte, len(value))
	copy(v, value)
	return &Document{key: key, value: v}
}

func (d *Document) Key() string {
	return d.key
}

func (d *Document) Value() []byte {
	return d.value
}

// Valid reports whether the value is well-formed JSON.
func (d *Document) Valid() bool {
	return gjson.ValidBytes(d.value)
}

// Len returns the number of elements when the value is a well-formed JSON
// array, otherwise -1.
func (d *Document) Len() int {
	if !d.Valid() {
		return -1
	}

	r := gjson.ParseBytes(d.value)
	if !r.IsArray() {
		return -1
	}

	return int(r.Get("#").Int())
}

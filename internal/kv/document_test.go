package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument(t *testing.T) {
	tt := []struct {
		name  string
		value string
		valid bool
		len   int
	}{
		{name: "array of objects", value: `[{"a":"1"},{"a":"2"}]`, valid: true, len: 2},
		{name: "empty array", value: `[]`, valid: true, len: 0},
		{name: "object", value: `{"a":[1,2,3]}`, valid: true, len: -1},
		{name: "scalar", value: `"abc"`, valid: true, len: -1},
		{name: "truncated", value: `[{"a":`, valid: false, len: -1},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			d := newDocument("re_full_land_records_v1", []byte(tc.value))
			assert.Equal(t, "re_full_land_records_v1", d.Key())
			assert.Equal(t, tc.valid, d.Valid())
			assert.Equal(t, tc.len, d.Len())
		})
	}
}

func TestDocument_OwnsItsValue(t *testing.T) {
	v := []byte(`"abc"`)
	d := newDocument("k", v)
	v[1] = 'z'

	assert.Equal(t, `"abc"`, string(d.Value()))
}

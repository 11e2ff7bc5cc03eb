package record

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Basics(t *testing.T) {
	r := FromPairs("clientName", "Asha", "contactNumber", "98450", "currentStatus", "Open")

	t.Run("keys keep insertion order", func(t *testing.T) {
		assert.Equal(t, []string{"clientName", "contactNumber", "currentStatus"}, r.Keys())
		assert.Equal(t, []string{"Asha", "98450", "Open"}, r.Values())
	})

	t.Run("set on existing key keeps position", func(t *testing.T) {
		c := r.Clone()
		c.Set("clientName", "Ravi")
		assert.Equal(t, "clientName", c.Keys()[0])
		assert.Equal(t, "Ravi", c.Get("clientName"))
		assert.Equal(t, "Asha", r.Get("clientName"))
	})

	t.Run("missing key reads blank", func(t *testing.T) {
		assert.Equal(t, "", r.Get("nope"))
		_, ok := r.Lookup("nope")
		assert.False(t, ok)
	})

	t.Run("text is lowercased and space joined", func(t *testing.T) {
		assert.Equal(t, "asha 98450 open", r.Text())
	})

	t.Run("clone keeps id, new records get fresh ids", func(t *testing.T) {
		assert.Equal(t, r.ID(), r.Clone().ID())
		assert.NotEqual(t, r.ID(), New().ID())
		assert.Equal(t, "x", r.WithID("x").ID())
	})

	t.Run("equal ignores ids but not order", func(t *testing.T) {
		assert.True(t, r.Equal(FromPairs("clientName", "Asha", "contactNumber", "98450", "currentStatus", "Open")))
		assert.False(t, r.Equal(FromPairs("contactNumber", "98450", "clientName", "Asha", "currentStatus", "Open")))
		assert.False(t, r.Equal(nil))
	})

	t.Run("odd pairs panic", func(t *testing.T) {
		assert.Panics(t, func() { FromPairs("a") })
	})
}

func TestDecode(t *testing.T) {
	t.Run("preserves key order and values", func(t *testing.T) {
		recs, err := Decode([]byte(`[{"b":"2","a":"1"},{"z":"<tag> & co"}]`))
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, []string{"b", "a"}, recs[0].Keys())
		assert.Equal(t, "<tag> & co", recs[1].Get("z"))
	})

	t.Run("empty array", func(t *testing.T) {
		recs, err := Decode([]byte(`[]`))
		require.NoError(t, err)
		assert.NotNil(t, recs)
		assert.Len(t, recs, 0)
	})

	t.Run("non-string values keep their json text", func(t *testing.T) {
		recs, err := Decode([]byte(`[{"a":null,"b":false,"c":0,"d":"0","e":12.5,"f":true,"g":{"x":1}}]`))
		require.NoError(t, err)
		r := recs[0]
		assert.Equal(t, "", r.Get("a"))
		assert.Equal(t, "false", r.Get("b"))
		assert.Equal(t, "0", r.Get("c"))
		assert.Equal(t, "0", r.Get("d"))
		assert.Equal(t, "12.5", r.Get("e"))
		assert.Equal(t, "true", r.Get("f"))
		assert.Equal(t, `{"x":1}`, r.Get("g"))
	})

	t.Run("falsy values display blank", func(t *testing.T) {
		recs, err := Decode([]byte(`[{"a":null,"b":false,"c":0,"d":"0","e":12.5,"f":true,"h":""}]`))
		require.NoError(t, err)
		r := recs[0]
		assert.Equal(t, "", r.Display("a"))
		assert.Equal(t, "", r.Display("b"))
		assert.Equal(t, "", r.Display("c"))
		assert.Equal(t, "0", r.Display("d"))
		assert.Equal(t, "12.5", r.Display("e"))
		assert.Equal(t, "true", r.Display("f"))
		assert.Equal(t, "", r.Display("h"))
		assert.Equal(t, "", r.Display("missing"))
	})

	tt := []struct {
		name string
		in   string
	}{
		{name: "invalid json", in: `[{"a":`},
		{name: "object instead of array", in: `{"a":"b"}`},
		{name: "array of scalars", in: `[1,2]`},
		{name: "plain string", in: `"hello"`},
		{name: "empty input", in: ``},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
		})
	}
}

func TestEncode(t *testing.T) {
	t.Run("round trips byte for byte", func(t *testing.T) {
		in := `[{"clientName":"Asha","notes":"line1\nline2","price":""},{"landId":"L-1","remarks":"<b>ok</b> & \"quoted\""}]`
		recs, err := Decode([]byte(in))
		require.NoError(t, err)

		out, err := Encode(recs)
		require.NoError(t, err)
		assert.Equal(t, in, string(out))
	})

	t.Run("non-string values round trip", func(t *testing.T) {
		in := `[{"a":null,"b":false,"c":0,"d":"0","e":12.5,"f":true,"g":{"x":[1,2]},"h":1e3}]`
		recs, err := Decode([]byte(in))
		require.NoError(t, err)

		out, err := Encode(recs)
		require.NoError(t, err)
		assert.Equal(t, in, string(out))
	})

	t.Run("set replaces a raw value with a string", func(t *testing.T) {
		recs, err := Decode([]byte(`[{"price":0,"status":null}]`))
		require.NoError(t, err)
		r := recs[0].Clone()
		r.Set("price", "4500")

		out, err := Encode([]*Record{r})
		require.NoError(t, err)
		assert.Equal(t, `[{"price":"4500","status":null}]`, string(out))
		assert.Equal(t, "4500", r.Display("price"))
		assert.False(t, r.Equal(recs[0]))
	})

	t.Run("line and paragraph separators are escaped", func(t *testing.T) {
		out, err := Encode([]*Record{FromPairs("notes", "a\u2028b\u2029c")})
		require.NoError(t, err)
		assert.Equal(t, `[{"notes":"a\u2028b\u2029c"}]`, string(out))

		back, err := Decode(out)
		require.NoError(t, err)
		assert.Equal(t, "a\u2028b\u2029c", back[0].Get("notes"))
	})

	t.Run("empty list", func(t *testing.T) {
		out, err := Encode(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(out))

		out, err = EncodeIndent(nil, "  ")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(out))
	})

	t.Run("indented with two spaces", func(t *testing.T) {
		out, err := EncodeIndent([]*Record{FromPairs("a", "1", "b", "")}, "  ")
		require.NoError(t, err)
		assert.Equal(t, "[\n  {\n    \"a\": \"1\",\n    \"b\": \"\"\n  }\n]", string(out))
	})

	t.Run("empty record", func(t *testing.T) {
		out, err := Encode([]*Record{New()})
		require.NoError(t, err)
		assert.Equal(t, "[{}]", string(out))
	})
}

func TestRecord_StdlibJSON(t *testing.T) {
	r := FromPairs("b", "2", "a", "1")

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"2","a":"1"}`, string(b))

	var back Record
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, r.Equal(&back))
	assert.NotEmpty(t, back.ID())

	var list []*Record
	require.NoError(t, json.Unmarshal([]byte(`[{"x":"1"},{"y":"2"}]`), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[1].Get("y"))

	assert.Error(t, json.Unmarshal([]byte(`[1]`), &list))
}

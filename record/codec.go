package record

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var ErrMalformed = errors.New("malformed record data")

// Decode parses a JSON array of flat objects. Key order inside each object is
// preserved. Values that are not JSON strings keep their JSON text and are
// written back unchanged until they are Set.
func Decode(b []byte) ([]*Record, error) {
	if !gjson.ValidBytes(b) {
		return nil, errors.Wrap(ErrMalformed, "invalid json")
	}

	root := gjson.ParseBytes(b)
	if !root.IsArray() {
		return nil, errors.Wrapf(ErrMalformed, "expected an array, got %s", root.Type.String())
	}

	out := make([]*Record, 0)
	var err error
	root.ForEach(func(i, v gjson.Result) bool {
		if !v.IsObject() {
			err = errors.Wrapf(ErrMalformed, "element %d is %s, not an object", len(out), v.Type.String())
			return false
		}

		r := New()
		fill(r, v)
		out = append(out, r)
		return true
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Record) UnmarshalJSON(b []byte) error {
	obj := gjson.ParseBytes(b)
	if !gjson.ValidBytes(b) || !obj.IsObject() {
		return errors.Wrap(ErrMalformed, "expected a json object")
	}

	if r.id == "" {
		*r = *New()
	} else {
		r.keys = nil
		r.values = make(map[string]string)
		r.raw = nil
	}

	fill(r, obj)
	return nil
}

func fill(r *Record, obj gjson.Result) {
	obj.ForEach(func(k, v gjson.Result) bool {
		if v.Type == gjson.String {
			r.Set(k.String(), v.String())
			return true
		}

		r.setRaw(k.String(), text(v), rawValue{text: v.Raw, blank: falsy(v)})
		return true
	})
}

func text(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.False:
		return "false"
	case gjson.True:
		return "true"
	default:
		return v.Raw
	}
}

func falsy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return v.Num == 0
	default:
		return false
	}
}

func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Record) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := writeString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if rv, ok := r.raw[k]; ok {
			buf.WriteString(rv.text)
			continue
		}
		if err := writeString(buf, r.values[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// Encode renders records as a compact JSON array.
func Encode(records []*Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := r.encode(&buf); err != nil {
			return nil, errors.Wrapf(err, "could not encode record %d", i)
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// EncodeIndent renders records as a JSON array indented with indent.
func EncodeIndent(records []*Record, indent string) ([]byte, error) {
	compact, err := Encode(records)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", indent); err != nil {
		return nil, errors.Wrap(err, "could not indent records")
	}
	return out.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return errors.Wrapf(err, "could not encode %q", s)
	}

	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

package schema

import "github.com/pkg/errors"

var ErrUnknownKind = errors.New("unknown field kind")

// Kind is the input kind of a field. It only decides which widget edits
// the value; every value is stored as a string.
type Kind uint8

const (
	Text Kind = iota
	Phone
	Date
	Time
	Number
	Multiline
)

var kindNames = map[Kind]string{
	Text:      "text",
	Phone:     "tel",
	Date:      "date",
	Time:      "time",
	Number:    "number",
	Multiline: "textarea",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}

	return Text, errors.Wrapf(ErrUnknownKind, "%q", s)
}

package feed

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Scalar keeps a JSON value in its raw form. The source mixes numbers,
// numeric strings, percent strings and null for the same field, so the
// normalizer decides how to read it.
type Scalar []byte

func (s *Scalar) UnmarshalJSON(data []byte) error {
	*s = append((*s)[:0], data...)
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

func (s Scalar) IsNull() bool {
	trimmed := bytes.TrimSpace(s)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// IsEmpty is true for null, "", [] and {}.
func (s Scalar) IsEmpty() bool {
	if s.IsNull() {
		return true
	}
	switch string(bytes.TrimSpace(s)) {
	case `""`, "[]", "{}":
		return true
	}
	return false
}

// Text returns the value as text: strings unquoted, numbers and booleans
// as written. ok is false for null, objects and arrays.
func (s Scalar) Text() (string, bool) {
	if s.IsNull() {
		return "", false
	}
	trimmed := bytes.TrimSpace(s)
	switch trimmed[0] {
	case '"':
		v, err := strconv.Unquote(string(trimmed))
		if err != nil {
			return "", false
		}
		return v, true
	case '{', '[':
		return "", false
	}
	return string(trimmed), true
}

// Value decodes the scalar into a plain Go value for raw storage.
func (s Scalar) Value() any {
	if s.IsNull() {
		return nil
	}
	var out any
	if err := sonic.Unmarshal(s, &out); err != nil {
		return strings.TrimSpace(string(s))
	}
	return out
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LookupOption is one entry of a read-only reference set (order statuses,
// payment methods, product types, ...).
type LookupOption struct {
	Value string
	Label string
}

// LookupSet is an ordered reference set. The backend serves these as JSON
// objects ({"pending": "Pending", ...}) whose key order is meaningful for
// select rendering, so decoding preserves it instead of using a Go map.
type LookupSet []LookupOption

// Label resolves a value to its display label, falling back to the raw value.
func (s LookupSet) Label(value string) string {
	for _, opt := range s {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// Contains reports whether value is a member of the set.
func (s LookupSet) Contains(value string) bool {
	for _, opt := range s {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// UnmarshalJSON decodes a JSON object preserving its key order.
func (s *LookupSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("lookup set: expected JSON object, got %v", tok)
	}

	out := LookupSet{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("lookup set: non-string key %v", keyTok)
		}
		var label string
		if err := dec.Decode(&label); err != nil {
			return err
		}
		out = append(out, LookupOption{Value: key, Label: label})
	}

	*s = out
	return nil
}

func (s LookupSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(opt.Value)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(opt.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

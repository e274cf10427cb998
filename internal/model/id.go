package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque server identifier. The backend may encode it as a JSON
// number or string; both decode to the same value.
type ID string

func (id ID) String() string { return string(id) }

// IsMissing reports whether the identifier is absent, including the
// placeholders a stale client cache can hold.
func (id ID) IsMissing() bool {
	switch id {
	case "", "undefined", "null":
		return true
	}
	return false
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("failed to decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("failed to decode id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

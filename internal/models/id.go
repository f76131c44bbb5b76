package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is a vendor identifier. The vendor API returns ids as JSON numbers in
// most collections and as strings in a few, so both are accepted.
type ID string

// UnmarshalJSON accepts a number, a string, null, or a nested object
// carrying an id field.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '{' {
		var nested struct {
			ID ID `json:"id"`
		}
		if err := json.Unmarshal(data, &nested); err != nil {
			return err
		}
		*id = nested.ID
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes the id as a string, or null when empty.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(id))
}

// IsZero reports whether the id is absent.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

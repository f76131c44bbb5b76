package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Float is a nullable number. Numeric strings are accepted because some
// vendor endpoints serialize decimals as strings.
type Float struct {
	Value float64
	Valid bool
}

// NewFloat returns a valid Float.
func NewFloat(v float64) Float { return Float{Value: v, Valid: true} }

// UnmarshalJSON accepts a number, a numeric string or null.
func (f *Float) UnmarshalJSON(data []byte) error {
	*f = Float{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// Non-numeric text is treated as missing.
			return nil
		}
		*f = NewFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = NewFloat(v)
	return nil
}

// MarshalJSON writes the number or null.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Or returns the value, or def when missing.
func (f Float) Or(def float64) float64 {
	if !f.Valid {
		return def
	}
	return f.Value
}

// Text is a nullable scalar rendered as text. Numbers are kept in their
// JSON form.
type Text string

// UnmarshalJSON accepts a string, number, boolean or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*t = ""
		return nil
	}
	*t = Text(data)
	return nil
}

// Or returns the text, or def when empty.
func (t Text) Or(def string) string {
	if strings.TrimSpace(string(t)) == "" {
		return def
	}
	return string(t)
}

// Flag is a lenient boolean. It accepts true/false, "true"/"false", 1/0 and
// null; anything else reads as false.
type Flag bool

// UnmarshalJSON never fails; unreadable values are false.
func (f *Flag) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	v, err := strconv.ParseBool(s)
	*f = Flag(err == nil && v)
	return nil
}

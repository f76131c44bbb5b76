package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NormalizeCollection turns a collection response into an ordered sequence
// of records. It accepts either shape the vendor uses:
//
//   - a bare JSON array, returned element by element;
//   - an object with a "results" array, which is unwrapped.
//
// Anything else (null, an object without results, a results field that is
// not an array, a scalar) yields an empty sequence. Only malformed JSON is
// an error.
func NormalizeCollection(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []json.RawMessage{}, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("malformed collection body")
	}

	switch body[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return nonNil(items), nil
	case '{':
		var wrapper struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, err
		}
		results := bytes.TrimSpace(wrapper.Results)
		if len(results) == 0 || results[0] != '[' {
			return []json.RawMessage{}, nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(results, &items); err != nil {
			return nil, err
		}
		return nonNil(items), nil
	default:
		return []json.RawMessage{}, nil
	}
}

func nonNil(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return []json.RawMessage{}
	}
	return items
}

// DecodeEach decodes the records of a collection into T and skips the ones
// that do not decode. The errors of the skipped records are returned with
// their index.
func DecodeEach[T any](raws []json.RawMessage) ([]T, []error) {
	out := make([]T, 0, len(raws))
	var skipped []error
	for i, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		out = append(out, v)
	}
	return out, skipped
}

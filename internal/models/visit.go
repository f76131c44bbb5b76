package models

import (
	"bytes"
	"encoding/json"
)

// Visit statuses reported by the vendor.
const (
	VisitStatusCompleted = "completed"
	VisitStatusPending   = "pending"
	VisitStatusFailed    = "failed"
)

// Visit is a single scheduled stop with a planned time window and an outcome status.
type Visit struct {
	ID           ID                `json:"id"`
	Title        Text              `json:"title"`
	Address      Text              `json:"address"`
	PlannedDate  string            `json:"planned_date"` // YYYY-MM-DD
	WindowStart  string            `json:"window_start"` // HH:MM:SS
	WindowEnd    string            `json:"window_end"`   // HH:MM:SS
	Status       string            `json:"status"`
	CheckoutTime string            `json:"checkout_time"` // RFC 3339, empty when not checked out
	Driver       ID                `json:"driver"`
	Vehicle      ID                `json:"vehicle"`
	Load         Float             `json:"load"`
	Load3        Float             `json:"load_3"`
	Latitude     Float             `json:"latitude"`
	Longitude    Float             `json:"longitude"`
	Pictures     []Attachment      `json:"pictures"`
	Signature    *Attachment       `json:"signature"`
	Notes        Text              `json:"notes"`
	ClientID     ID                `json:"client_id"`
	Client       ID                `json:"client"`
	Account      ID                `json:"account"`
	Items        []json.RawMessage `json:"items"`

	// Raw keeps the record as received for the detail view.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the visit and keeps a copy of the raw record.
func (v *Visit) UnmarshalJSON(data []byte) error {
	type plain Visit
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = Visit(p)
	v.Raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

// Attachment is a proof-of-delivery file. The vendor sends either an object
// with a url field or the bare url.
type Attachment struct {
	URL string `json:"url"`
}

// UnmarshalJSON accepts {"url": "..."}, a bare string or null.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = Attachment{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &a.URL)
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.URL = obj.URL
	return nil
}

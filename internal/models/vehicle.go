package models

import (
	"bytes"
	"encoding/json"
)

// Vehicle represents a fleet vehicle as listed by the routing vendor.
type Vehicle struct {
	ID                 ID        `json:"id"`
	Name               string    `json:"name"` // plate
	Capacity           Float     `json:"capacity"`
	Capacity2          Float     `json:"capacity_2"`
	Capacity3          Float     `json:"capacity_3"`
	TypeLoad           Text      `json:"type_load"`
	Status             Text      `json:"status"`
	LocationEndAddress Text      `json:"location_end_address"`
	Driver             DriverRef `json:"driver"`
}

// DriverRef is a driver reference that arrives either as a bare id or as a
// nested driver object.
type DriverRef struct {
	ID   ID     `json:"id"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts a nested object, a number, a string or null.
func (d *DriverRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*d = DriverRef{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '{' {
		var obj struct {
			ID   ID     `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		d.ID, d.Name = obj.ID, obj.Name
		return nil
	}
	return d.ID.UnmarshalJSON(data)
}

package models

import "fmt"

// Location represents a geographical location with latitude and longitude coordinates.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationOf returns the location when both coordinates are present.
func LocationOf(lat, lon Float) (Location, bool) {
	if !lat.Valid || !lon.Valid {
		return Location{}, false
	}
	if lat.Value == 0 || lon.Value == 0 {
		return Location{}, false
	}
	return Location{Lat: lat.Value, Lon: lon.Value}, true
}

// MapsURL links to a Google Maps search for the location.
func (l Location) MapsURL() string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%v,%v", l.Lat, l.Lon)
}

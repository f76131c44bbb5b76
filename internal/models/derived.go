package models

import "encoding/json"

// Classification is the derived on-time category of a visit.
type Classification string

const (
	OnTime  Classification = "on_time"
	Late    Classification = "late"
	Pending Classification = "pending"
	Unknown Classification = "unknown"
)

// Classifications lists every category in display order.
var Classifications = []Classification{OnTime, Late, Pending, Unknown}

// Label returns the display label of the category.
func (c Classification) Label() string {
	switch c {
	case OnTime:
		return "On time"
	case Late:
		return "Late"
	case Pending:
		return "Pending"
	default:
		return "Unknown"
	}
}

// IsValidClassification checks if a value names a category.
func IsValidClassification(c Classification) bool {
	switch c {
	case OnTime, Late, Pending, Unknown:
		return true
	default:
		return false
	}
}

// DerivedVisitRecord is a visit enriched for display: classified, with
// driver and vehicle resolved through the reference maps and every missing
// field replaced by a sentinel.
type DerivedVisitRecord struct {
	ID             ID             `json:"id"`
	Title          string         `json:"title"`
	Address        string         `json:"address"`
	Status         string         `json:"status"`
	Classification Classification `json:"classification"`
	DriverID       ID             `json:"driver_id"`
	DriverName     string         `json:"driver_name"`
	VehicleID      ID             `json:"vehicle_id"`
	VehiclePlate   string         `json:"vehicle_plate"`
	Load           float64        `json:"load"`
	Load3          float64        `json:"load_3"`
	Latitude       string         `json:"latitude"`
	Longitude      string         `json:"longitude"`
	MapsURL        string         `json:"maps_url,omitempty"`
	PlannedDate    string         `json:"planned_date"`
	PlannedWindow  string         `json:"planned_window"`
	CheckoutTime   string         `json:"checkout_time"`

	Raw json.RawMessage `json:"-"`
}

// RouteRow is a daily route joined with its vehicle, driver and detail.
type RouteRow struct {
	ID              ID     `json:"id"`
	PlanID          ID     `json:"plan_id"`
	VehiclePlate    string `json:"vehicle_plate"`
	DriverName      string `json:"driver_name"`
	Status          string `json:"status"`
	TotalVisits     int    `json:"total_visits"`
	TotalDistanceKm string `json:"total_distance_km"`
	TotalDuration   string `json:"total_duration"`
	StartTime       string `json:"start_time"`
	Reference       string `json:"reference"`
	Comment         string `json:"comment"`
}

// PODRecord is a visit with proof of delivery.
type PODRecord struct {
	VisitID      ID     `json:"visit_id"`
	ClientName   string `json:"client_name"`
	Address      string `json:"address"`
	Status       string `json:"status"`
	ImageURL     string `json:"image_url,omitempty"`
	SignatureURL string `json:"signature_url,omitempty"`
	Notes        string `json:"notes"`
}

// ClientVisitRow is a visit associated with its client.
type ClientVisitRow struct {
	VisitID        ID     `json:"visit_id"`
	ClientName     string `json:"client_name"`
	VisitDate      string `json:"visit_date"`
	ItemsDelivered int    `json:"items_delivered"`
	DriverName     string `json:"driver_name"`
	Address        string `json:"address"`
	Status         string `json:"status"`
}

// InvoiceRow is an invoice prepared for display.
type InvoiceRow struct {
	ID     ID     `json:"id"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Status string `json:"status"`
}

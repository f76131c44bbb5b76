package models

// Route is the detail of an ordered sequence of visits assigned to one
// vehicle and driver for a day.
type Route struct {
	ID            ID     `json:"id"`
	Plan          ID     `json:"plan"`
	Vehicle       ID     `json:"vehicle"`
	Driver        ID     `json:"driver"`
	Status        Text   `json:"status"`
	PlannedDate   string `json:"planned_date"`
	TotalDistance Float  `json:"total_distance"` // in meters
	TotalDuration Text   `json:"total_duration"`
	TotalVisits   Float  `json:"total_visits"`
	TotalLoad     Float  `json:"total_load"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Reference     Text   `json:"reference"`
	Comment       Text   `json:"comment"`
}

// PlanVehicle is one entry of the per-day vehicle assignment returned by
// the plans endpoint: the vehicle, its driver and its routes for the day.
type PlanVehicle struct {
	ID     ID          `json:"id"`
	Name   string      `json:"name"`
	Driver *DriverRef  `json:"driver"`
	Routes []PlanRoute `json:"routes"`
}

// PlanRoute is the simplified route nested in a PlanVehicle.
type PlanRoute struct {
	ID     ID `json:"id"`
	PlanID ID `json:"plan_id"`
}

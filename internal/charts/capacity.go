package charts

import (
	"math"

	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/pipeline"
)

// CapacityRow pairs the loads carried by a vehicle with its declared
// capacities: Load against Capacity and Load3 against Capacity2.
type CapacityRow struct {
	VehicleID models.ID `json:"vehicle_id"`
	Plate     string    `json:"plate"`
	Load      float64   `json:"load"`
	Load3     float64   `json:"load_3"`
	Capacity  float64   `json:"capacity"`
	Capacity2 float64   `json:"capacity_2"`
}

// CapacitySeries sums the loads of every visit per vehicle id, rounded to
// two decimals. Every vehicle gets a row, in input order.
func CapacitySeries(vehicles []models.Vehicle, records []models.DerivedVisitRecord) []CapacityRow {
	type sums struct{ load, load3 float64 }
	byVehicle := make(map[models.ID]*sums)
	for _, r := range records {
		if r.VehicleID.IsZero() {
			continue
		}
		s, ok := byVehicle[r.VehicleID]
		if !ok {
			s = &sums{}
			byVehicle[r.VehicleID] = s
		}
		s.load += r.Load
		s.load3 += r.Load3
	}

	rows := make([]CapacityRow, 0, len(vehicles))
	for _, v := range vehicles {
		row := CapacityRow{
			VehicleID: v.ID,
			Plate:     v.Name,
			Capacity:  v.Capacity.Or(0),
			Capacity2: v.Capacity2.Or(0),
		}
		if row.Plate == "" {
			row.Plate = pipeline.UnresolvedPrefix + string(v.ID)
		}
		if s, ok := byVehicle[v.ID]; ok {
			row.Load = pipeline.Round2(s.load)
			row.Load3 = pipeline.Round2(s.load3)
		}
		rows = append(rows, row)
	}
	return rows
}

// UtilizationPie splits the aggregate capacity of the vehicles that carried
// any load into used and available percentages. Without capacity it emits
// a single "No data" slice of 100.
func UtilizationPie(rows []CapacityRow) []Slice {
	var used, capacity float64
	for _, r := range rows {
		if r.Load <= 0 {
			continue
		}
		used += r.Load
		capacity += r.Capacity
	}
	if capacity <= 0 {
		return []Slice{{Name: NoData, Value: 100, ShowLabel: true}}
	}
	usedPct := pipeline.Round2(math.Min(used/capacity*100, 100))
	available := pipeline.Round2(100 - usedPct)
	return []Slice{
		{Name: "Used", Value: usedPct, ShowLabel: usedPct > 0},
		{Name: "Available", Value: available, ShowLabel: available > 0},
	}
}

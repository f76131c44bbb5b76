package reports

import (
	"context"
	"strconv"
	"time"

	"github.com/ukydev/fleet-reports/internal/charts"
	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/pipeline"
)

// VehicleRow is a vehicle with its declared capacities.
type VehicleRow struct {
	ID        models.ID `json:"id"`
	Plate     string    `json:"plate"`
	TypeLoad  string    `json:"type_load"`
	Capacity  string    `json:"capacity"`
	Capacity2 string    `json:"capacity_2"`
}

// VehicleReport is the vehicle performance page.
type VehicleReport struct {
	Vehicles    []VehicleRow         `json:"vehicles"`
	Capacity    []charts.CapacityRow `json:"capacity"`
	Utilization []charts.Slice       `json:"utilization"`
}

// VehiclePerformance compares the loads carried by each vehicle with its
// declared capacities.
func (s *Service) VehiclePerformance(ctx context.Context) Result[*VehicleReport] {
	return build(ctx, ReportVehiclePerformance, "Failed to load vehicle performance data.", func(ctx context.Context) (*VehicleReport, error) {
		records, err := s.derivedVisits(ctx)
		if err != nil {
			return nil, err
		}
		vehicles := s.fleet.Vehicles()
		if len(vehicles) == 0 {
			if _, vehiclesErr := s.fleet.Errors(); vehiclesErr != nil {
				return nil, vehiclesErr
			}
		}
		rows := make([]VehicleRow, 0, len(vehicles))
		for _, v := range vehicles {
			rows = append(rows, VehicleRow{
				ID:        v.ID,
				Plate:     orNA(v.Name),
				TypeLoad:  v.TypeLoad.Or(pipeline.NotAvailable),
				Capacity:  formatCapacity(v.Capacity),
				Capacity2: formatCapacity(v.Capacity2),
			})
		}
		capacity := charts.CapacitySeries(vehicles, records)
		return &VehicleReport{
			Vehicles:    rows,
			Capacity:    capacity,
			Utilization: charts.UtilizationPie(capacity),
		}, nil
	})
}

func formatCapacity(f models.Float) string {
	if !f.Valid || f.Value == 0 {
		return pipeline.NotAvailable
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return pipeline.NotAvailable
	}
	return s
}

// DriverInfo is a driver as listed on the data page.
type DriverInfo struct {
	ID        models.ID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Admin     bool      `json:"admin"`
	LastLogin string    `json:"last_login"`
}

// VehicleInfo is a vehicle as listed on the data page.
type VehicleInfo struct {
	ID         models.ID `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	EndAddress string    `json:"end_address"`
}

// FleetReport is the raw reference data page. Each list carries the error
// of its own fetch, if any.
type FleetReport struct {
	Drivers       []DriverInfo  `json:"drivers"`
	Vehicles      []VehicleInfo `json:"vehicles"`
	DriversError  string        `json:"drivers_error,omitempty"`
	VehiclesError string        `json:"vehicles_error,omitempty"`
}

// FleetData lists the cached drivers and vehicles. A failed reference fetch
// does not fail the page; its message is shown next to the empty list.
func (s *Service) FleetData(ctx context.Context) Result[*FleetReport] {
	return build(ctx, ReportFleet, "Failed to load fleet data.", func(ctx context.Context) (*FleetReport, error) {
		if err := s.awaitFleet(ctx); err != nil {
			return nil, err
		}
		report := &FleetReport{Drivers: []DriverInfo{}, Vehicles: []VehicleInfo{}}
		for _, d := range s.fleet.Drivers() {
			report.Drivers = append(report.Drivers, DriverInfo{
				ID:        d.ID,
				Name:      orNA(d.Name),
				Email:     d.Email.Or(pipeline.NotAvailable),
				Status:    d.Status.Or(pipeline.NotAvailable),
				Admin:     bool(d.IsAdmin),
				LastLogin: s.formatLogin(string(d.LastLogin)),
			})
		}
		for _, v := range s.fleet.Vehicles() {
			report.Vehicles = append(report.Vehicles, VehicleInfo{
				ID:         v.ID,
				Name:       orNA(v.Name),
				Status:     v.Status.Or(pipeline.NotAvailable),
				EndAddress: v.LocationEndAddress.Or(pipeline.NotAvailable),
			})
		}
		driversErr, vehiclesErr := s.fleet.Errors()
		report.DriversError = UserMessage(driversErr, "Failed to load drivers.")
		report.VehiclesError = UserMessage(vehiclesErr, "Failed to load vehicles.")
		return report, nil
	})
}

func (s *Service) formatLogin(ts string) string {
	t, err := pipeline.ParseTimestamp(ts, s.loc)
	if err != nil {
		return pipeline.NotAvailable
	}
	return t.In(s.loc).Format(time.DateTime)
}

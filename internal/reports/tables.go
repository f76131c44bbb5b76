package reports

import "github.com/ukydev/fleet-reports/internal/export"

// Table lays out the visits of the report for export.
func (r *OnTimeReport) Table() export.Table {
	t := export.Table{
		Sheet:   "On-time deliveries",
		Headers: []string{"ID", "Title", "Address", "Driver", "Vehicle", "Load 3", "Latitude", "Longitude", "Status", "Planned date", "Planned window", "Checkout"},
	}
	for _, v := range r.Visits {
		t.AddRow(string(v.ID), v.Title, v.Address, v.DriverName, v.VehiclePlate, v.Load3, v.Latitude, v.Longitude,
			v.Classification.Label(), v.PlannedDate, v.PlannedWindow, v.CheckoutTime)
	}
	return t
}

func (r *DailyRoutesReport) Table() export.Table {
	t := export.Table{
		Sheet:   "Routes " + r.Date,
		Headers: []string{"Route", "Plate", "Driver", "Status", "Visits", "Distance (km)", "Duration", "Start", "Reference", "Comment"},
	}
	for _, row := range r.Routes {
		t.AddRow(string(row.ID), row.VehiclePlate, row.DriverName, row.Status, row.TotalVisits, row.TotalDistanceKm,
			row.TotalDuration, row.StartTime, row.Reference, row.Comment)
	}
	return t
}

func (r *PODReport) Table() export.Table {
	t := export.Table{
		Sheet:   "Proof of delivery",
		Headers: []string{"Visit", "Client", "Address", "Status", "Image", "Signature", "Notes"},
	}
	for _, rec := range r.Records {
		t.AddRow(string(rec.VisitID), rec.ClientName, rec.Address, rec.Status, rec.ImageURL, rec.SignatureURL, rec.Notes)
	}
	return t
}

func (r *ClientVisitsReport) Table() export.Table {
	t := export.Table{
		Sheet:   "Client visits",
		Headers: []string{"Visit", "Client", "Date", "Items", "Driver", "Address", "Status"},
	}
	for _, row := range r.Visits {
		t.AddRow(string(row.VisitID), row.ClientName, row.VisitDate, row.ItemsDelivered, row.DriverName, row.Address, row.Status)
	}
	return t
}

func (r *FinancialReport) Table() export.Table {
	t := export.Table{Sheet: "Invoices", Headers: []string{"ID", "Date", "Amount", "Status"}}
	for _, inv := range r.Invoices {
		t.AddRow(string(inv.ID), inv.Date, inv.Amount, inv.Status)
	}
	return t
}

func (r *VehicleReport) Table() export.Table {
	t := export.Table{
		Sheet:   "Vehicles",
		Headers: []string{"ID", "Plate", "Load type", "Capacity 1", "Capacity 2", "Load", "Load 3"},
	}
	loads := make(map[string][2]float64, len(r.Capacity))
	for _, c := range r.Capacity {
		loads[string(c.VehicleID)] = [2]float64{c.Load, c.Load3}
	}
	for _, v := range r.Vehicles {
		l := loads[string(v.ID)]
		t.AddRow(string(v.ID), v.Plate, v.TypeLoad, v.Capacity, v.Capacity2, l[0], l[1])
	}
	return t
}

func (r *FleetReport) Table() export.Table {
	t := export.Table{
		Sheet:   "Drivers",
		Headers: []string{"ID", "Name", "Email", "Status", "Admin", "Last login"},
	}
	for _, d := range r.Drivers {
		admin := "No"
		if d.Admin {
			admin = "Yes"
		}
		t.AddRow(string(d.ID), d.Name, d.Email, d.Status, admin, d.LastLogin)
	}
	return t
}

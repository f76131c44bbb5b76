package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/fleet-reports/internal/charts"
	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/pipeline"
	"golang.org/x/sync/errgroup"
)

// DateLayout is the format of report dates.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for a date not in DateLayout.
var ErrInvalidDate = errors.New("invalid report date")

// DailyRoutesReport is the daily route page.
type DailyRoutesReport struct {
	Date   string            `json:"date"`
	Routes []models.RouteRow `json:"routes"`
	Chart  []charts.RouteBar `json:"chart"`
}

// Today is the current date in the report zone.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(DateLayout)
}

// DailyRoutes lists the routes planned for date (today when empty), each
// joined to its vehicle, driver and detail. Details are fetched
// concurrently; any failed detail fails the whole page.
func (s *Service) DailyRoutes(ctx context.Context, date string) Result[*DailyRoutesReport] {
	if date == "" {
		date = s.Today()
	}
	return build(ctx, ReportDailyRoutes, "Failed to load daily routes.", func(ctx context.Context) (*DailyRoutesReport, error) {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return nil, fmt.Errorf("%w %q", ErrInvalidDate, date)
		}
		refs, err := s.references(ctx)
		if err != nil {
			return nil, err
		}
		plan, err := fetch[models.PlanVehicle](ctx, s.vendor, PlanVehiclesPath(date))
		if err != nil {
			return nil, err
		}
		stubs := pipeline.FlattenPlan(plan, refs.Drivers)
		report := &DailyRoutesReport{Date: date, Routes: []models.RouteRow{}, Chart: []charts.RouteBar{}}
		if len(stubs) == 0 {
			return report, nil
		}

		details, err := s.routeDetails(ctx, stubs)
		if err != nil {
			return nil, err
		}
		report.Routes = pipeline.EnrichRoutes(stubs, details, s.loc)
		report.Chart = charts.RouteSeries(report.Routes)
		return report, nil
	})
}

func (s *Service) routeDetails(ctx context.Context, stubs []pipeline.RouteStub) (map[models.ID]models.Route, error) {
	fetched := make([]models.Route, len(stubs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOut)
	for i, stub := range stubs {
		g.Go(func() error {
			return s.vendor.GetObject(gctx, RouteDetailPath(stub.ID), &fetched[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	details := make(map[models.ID]models.Route, len(stubs))
	for i, stub := range stubs {
		details[stub.ID] = fetched[i]
	}
	return details, nil
}

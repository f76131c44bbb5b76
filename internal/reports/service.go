package reports

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-reports/internal/metrics"
	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/notify"
	"github.com/ukydev/fleet-reports/internal/pipeline"
	"github.com/ukydev/fleet-reports/internal/remote"
)

// Report names, also used as metric labels and export names.
const (
	ReportOnTime             = "on-time"
	ReportDailyRoutes        = "daily-routes"
	ReportPOD                = "pod"
	ReportClientVisits       = "client-visits"
	ReportFinancial          = "financial"
	ReportVehiclePerformance = "vehicle-performance"
	ReportFleet              = "fleet"
	ReportVisit              = "visit"
)

// Vendor paths read by the reports.
const (
	VisitsPath   = "/v1/routes/visits/"
	ClientsPath  = "/v1/accounts/clients/"
	InvoicesPath = "/v1/invoices"
)

// PlanVehiclesPath is the per-day vehicle and route assignment.
func PlanVehiclesPath(date string) string { return "/v1/plans/" + date + "/vehicles/" }

// RouteDetailPath is the detail of a single route.
func RouteDetailPath(id models.ID) string { return "/v1/routes/routes/" + string(id) + "/" }

// ErrVisitNotFound is returned by Visit when no visit has the id.
var ErrVisitNotFound = errors.New("visit not found")

// Source reads collections and single objects from a vendor host.
type Source interface {
	Get(ctx context.Context, path string) ([]json.RawMessage, error)
	GetObject(ctx context.Context, path string, out any) error
}

// Fleet is the shared driver and vehicle reference data.
type Fleet interface {
	Start(ctx context.Context)
	Wait(ctx context.Context) error
	Loading() bool
	DriverMap() map[models.ID]string
	VehicleMap() map[models.ID]string
	Drivers() []models.Driver
	Vehicles() []models.Vehicle
	Errors() (drivers, vehicles error)
}

// Result is a report page together with its data. Data is the zero value
// unless the page is ready.
type Result[T any] struct {
	Page *Page
	Data T
}

// Service builds report pages. Every call fetches fresh data; only the
// fleet reference data is shared between calls.
type Service struct {
	vendor    Source
	datamart  Source
	fleet     Fleet
	loc       *time.Location
	publisher notify.Publisher
	now       func() time.Time
	fanOut    int
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets where report summaries are pushed.
func WithPublisher(p notify.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock replaces time.Now, used to pick the default report date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithFanOut bounds the number of route details fetched at once.
func WithFanOut(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fanOut = n
		}
	}
}

// NewService creates a Service. vendor serves the routing API, datamart the
// billing API. Times are shown in loc.
func NewService(vendor, datamart Source, fleet Fleet, loc *time.Location, opts ...Option) *Service {
	if loc == nil {
		loc = time.Local
	}
	s := &Service{
		vendor:    vendor,
		datamart:  datamart,
		fleet:     fleet,
		loc:       loc,
		publisher: notify.Noop{},
		now:       time.Now,
		fanOut:    8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location is the zone report times are rendered in.
func (s *Service) Location() *time.Location { return s.loc }

// build runs fn as the fetch of a page and settles the page from its
// outcome. Failures are logged and converted to the page message here so
// they never reach the caller as errors.
func build[T any](ctx context.Context, name, fallback string, fn func(context.Context) (T, error)) Result[T] {
	page := NewPage(name)
	_ = page.Start()

	data, err := fn(ctx)
	if err != nil {
		fields := log.Fields{"report": name}
		if re, ok := remote.AsError(err); ok {
			fields["path"] = re.Path
			fields["status"] = re.StatusCode
			fields["kind"] = re.Kind.String()
		}
		log.WithError(err).WithFields(fields).Error("Failed to build report")
		_ = page.Fail(err, UserMessage(err, fallback))
		metrics.ReportBuilds.WithLabelValues(name, string(StateError)).Inc()
		var zero T
		return Result[T]{Page: page, Data: zero}
	}

	_ = page.Succeed()
	metrics.ReportBuilds.WithLabelValues(name, string(StateReady)).Inc()
	return Result[T]{Page: page, Data: data}
}

func (s *Service) references(ctx context.Context) (pipeline.References, error) {
	if err := s.awaitFleet(ctx); err != nil {
		return pipeline.References{}, err
	}
	return pipeline.References{Drivers: s.fleet.DriverMap(), Vehicles: s.fleet.VehicleMap()}, nil
}

// awaitFleet starts the reference fetch if nobody has yet and waits for it
// to settle.
func (s *Service) awaitFleet(ctx context.Context) error {
	s.fleet.Start(ctx)
	return s.fleet.Wait(ctx)
}

func fetch[T any](ctx context.Context, src Source, path string) ([]T, error) {
	raws, err := src.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	items, skipped := remote.DecodeEach[T](raws)
	for _, err := range skipped {
		log.WithError(err).WithField("path", path).Warn("Skipping undecodable record")
	}
	return items, nil
}

func (s *Service) visits(ctx context.Context) ([]models.Visit, error) {
	return fetch[models.Visit](ctx, s.vendor, VisitsPath)
}

func (s *Service) derivedVisits(ctx context.Context) ([]models.DerivedVisitRecord, error) {
	refs, err := s.references(ctx)
	if err != nil {
		return nil, err
	}
	visits, err := s.visits(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.DeriveVisits(visits, refs, s.loc), nil
}

// Visit returns the raw vendor record of one visit for the detail view.
func (s *Service) Visit(ctx context.Context, id models.ID) Result[json.RawMessage] {
	return build(ctx, ReportVisit, "Failed to load visit details.", func(ctx context.Context) (json.RawMessage, error) {
		visits, err := s.visits(ctx)
		if err != nil {
			return nil, err
		}
		for _, v := range visits {
			if v.ID == id {
				return v.Raw, nil
			}
		}
		return nil, ErrVisitNotFound
	})
}

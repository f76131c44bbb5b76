package reports

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/fleet-reports/internal/fleet"
	"github.com/ukydev/fleet-reports/internal/models"
)

// MockSource is a mock implementation of Source
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Get(ctx context.Context, path string) ([]json.RawMessage, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockSource) GetObject(ctx context.Context, path string, out any) error {
	args := m.Called(ctx, path, out)
	return args.Error(0)
}

// MockPublisher is a mock implementation of notify.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event string, payload any) error {
	args := m.Called(ctx, event, payload)
	return args.Error(0)
}

func (m *MockPublisher) Close() { m.Called() }

func raws(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		out = append(out, json.RawMessage(it))
	}
	return out
}

// fillRoute makes a GetObject expectation decode body into the route.
func fillRoute(body string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		_ = json.Unmarshal([]byte(body), args.Get(2).(*models.Route))
	}
}

var (
	driversJSON  = raws(`{"id":7,"name":"GONZALEZ PEREZ - MARIA JOSE","email":"mj@example.com","is_admin":true,"last_login":"2024-03-01T10:00:00Z"}`, `{"id":8,"name":"ROJAS - ANA"}`)
	vehiclesJSON = raws(`{"id":10,"name":"AB-1234","capacity":100,"capacity_2":20,"type_load":"dry","driver":7}`, `{"id":11,"name":"CD-5678","capacity":"50"}`)
)

// newTestService wires a Service over a mocked vendor host with the fleet
// reference endpoints already answered.
func newTestService(t *testing.T, opts ...Option) (*Service, *MockSource, *MockSource) {
	t.Helper()
	vendor := new(MockSource)
	vendor.On("Get", mock.Anything, fleet.DriversPath).Return(driversJSON, nil).Maybe()
	vendor.On("Get", mock.Anything, fleet.VehiclesPath).Return(vehiclesJSON, nil).Maybe()
	datamart := new(MockSource)

	opts = append([]Option{WithClock(func() time.Time { return time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC) })}, opts...)
	svc := NewService(vendor, datamart, fleet.NewCache(vendor), time.UTC, opts...)
	return svc, vendor, datamart
}

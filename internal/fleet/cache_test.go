package fleet

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/remote"
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

func raws(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		out = append(out, json.RawMessage(it))
	}
	return out
}

func TestCache_LoadBoth(t *testing.T) {
	source := new(MockSource)
	source.On("Get", mock.Anything, DriversPath).Return(raws(`{"id":1,"name":"PEREZ - JUAN"}`, `{"id":2,"name":"Ana"}`), nil)
	source.On("Get", mock.Anything, VehiclesPath).Return(raws(`{"id":10,"name":"AB-1234","capacity":100,"driver":{"id":1,"name":"PEREZ - JUAN"}}`), nil)

	cache := NewCache(source)
	assert.True(t, cache.Loading())

	cache.Load(context.Background())

	assert.False(t, cache.Loading())
	assert.Equal(t, map[models.ID]string{"1": "PEREZ - JUAN", "2": "Ana"}, cache.DriverMap())
	assert.Equal(t, map[models.ID]string{"10": "AB-1234"}, cache.VehicleMap())
	require.Len(t, cache.Vehicles(), 1)
	assert.Equal(t, models.ID("1"), cache.Vehicles()[0].Driver.ID)
	dErr, vErr := cache.Errors()
	assert.NoError(t, dErr)
	assert.NoError(t, vErr)
	source.AssertExpectations(t)
}

func TestCache_DriversFailVehiclesSucceed(t *testing.T) {
	source := new(MockSource)
	forbidden := &remote.Error{Kind: remote.KindStatus, StatusCode: http.StatusForbidden, Path: DriversPath}
	source.On("Get", mock.Anything, DriversPath).Return(nil, forbidden)
	source.On("Get", mock.Anything, VehiclesPath).Return(raws(`{"id":10,"name":"AB-1234"}`), nil)

	cache := NewCache(source)
	assert.NotPanics(t, func() { cache.Load(context.Background()) })

	assert.False(t, cache.Loading())
	assert.Empty(t, cache.DriverMap())
	assert.Equal(t, "AB-1234", cache.VehicleMap()["10"])
	dErr, vErr := cache.Errors()
	assert.ErrorIs(t, dErr, forbidden)
	assert.NoError(t, vErr)
}

func TestCache_BothFail(t *testing.T) {
	source := new(MockSource)
	source.On("Get", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	cache := NewCache(source)
	cache.Load(context.Background())

	assert.False(t, cache.Loading())
	assert.Empty(t, cache.DriverMap())
	assert.Empty(t, cache.VehicleMap())
}

func TestCache_FetchesOnce(t *testing.T) {
	source := new(MockSource)
	source.On("Get", mock.Anything, DriversPath).Return(raws(`{"id":1,"name":"Ana"}`), nil).Once()
	source.On("Get", mock.Anything, VehiclesPath).Return(raws(), nil).Once()

	cache := NewCache(source)
	cache.Load(context.Background())
	cache.Load(context.Background())
	cache.Start(context.Background())

	source.AssertNumberOfCalls(t, "Get", 2)
}

func TestCache_WaitHonorsContext(t *testing.T) {
	source := new(MockSource)
	block := make(chan time.Time)
	source.On("Get", mock.Anything, mock.Anything).WaitUntil(block).Return(raws(), nil)

	cache := NewCache(source)
	cache.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, cache.Wait(ctx), context.DeadlineExceeded)
	assert.True(t, cache.Loading())

	close(block)
	require.NoError(t, cache.Wait(context.Background()))
	assert.False(t, cache.Loading())
}

func TestCache_OddFieldTypesKeepDriver(t *testing.T) {
	source := new(MockSource)
	source.On("Get", mock.Anything, DriversPath).Return(raws(
		`{"id":1,"name":"PEREZ - JUAN"}`,
		`{"id":2,"name":"ROJAS - ANA","phone":5551234,"is_admin":"true","last_login":null}`,
	), nil)
	source.On("Get", mock.Anything, VehiclesPath).Return(raws(), nil)

	cache := NewCache(source)
	cache.Load(context.Background())

	assert.Equal(t, map[models.ID]string{"1": "PEREZ - JUAN", "2": "ROJAS - ANA"}, cache.DriverMap())
	require.Len(t, cache.Drivers(), 2)
	assert.Equal(t, models.Text("5551234"), cache.Drivers()[1].Phone)
	assert.True(t, bool(cache.Drivers()[1].IsAdmin))
	dErr, _ := cache.Errors()
	assert.NoError(t, dErr)
}

func TestCache_SkipsUndecodableRecord(t *testing.T) {
	source := new(MockSource)
	source.On("Get", mock.Anything, DriversPath).Return(raws(
		`{"id":1,"name":"PEREZ - JUAN"}`,
		`{"id":2,"name":["not","a","name"]}`,
		`{"id":3,"name":"DIAZ - LUIS"}`,
	), nil)
	source.On("Get", mock.Anything, VehiclesPath).Return(raws(), nil)

	cache := NewCache(source)
	cache.Load(context.Background())

	assert.Equal(t, map[models.ID]string{"1": "PEREZ - JUAN", "3": "DIAZ - LUIS"}, cache.DriverMap())
}

func TestCache_UndecodableRecordsLeaveMapEmpty(t *testing.T) {
	source := new(MockSource)
	source.On("Get", mock.Anything, DriversPath).Return(raws(`{"id":1,"name":["not","a","name"]}`), nil)
	source.On("Get", mock.Anything, VehiclesPath).Return(raws(`{"id":"v-1","name":"XY-99"}`), nil)

	cache := NewCache(source)
	cache.Load(context.Background())

	assert.Empty(t, cache.DriverMap())
	assert.Equal(t, "XY-99", cache.VehicleMap()["v-1"])
}

// Package fleet holds the driver and vehicle reference data every report
// uses to turn ids into display names.
package fleet

import (
	"context"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/remote"
)

// Vendor paths of the reference collections.
const (
	DriversPath  = "/v1/accounts/drivers/"
	VehiclesPath = "/v1/routes/vehicles/"
)

// Source fetches a collection from the vendor API.
type Source interface {
	Get(ctx context.Context, path string) ([]json.RawMessage, error)
}

// Cache fetches drivers and vehicles once and keeps id to name maps for the
// lifetime of the process. The two fetches settle independently: a failed
// endpoint leaves its map empty and never blocks the other one.
type Cache struct {
	source Source

	once sync.Once
	done chan struct{}

	mu          sync.RWMutex
	loading     bool
	drivers     []models.Driver
	vehicles    []models.Vehicle
	driverMap   map[models.ID]string
	vehicleMap  map[models.ID]string
	driversErr  error
	vehiclesErr error
}

// NewCache creates a cache over source. Nothing is fetched until Load.
func NewCache(source Source) *Cache {
	return &Cache{
		source:     source,
		done:       make(chan struct{}),
		loading:    true,
		driverMap:  map[models.ID]string{},
		vehicleMap: map[models.ID]string{},
	}
}

// Load issues both fetches concurrently and returns once both settled or
// ctx is done. Only the first call fetches; later calls wait for that
// result. Cancelling ctx does not abort the fetches.
func (c *Cache) Load(ctx context.Context) {
	c.Start(ctx)
	_ = c.Wait(ctx)
}

// Start begins loading in the background.
func (c *Cache) Start(ctx context.Context) {
	c.once.Do(func() {
		go c.load(context.WithoutCancel(ctx))
	})
}

func (c *Cache) load(ctx context.Context) {
	var (
		wg          sync.WaitGroup
		drivers     []models.Driver
		vehicles    []models.Vehicle
		driversErr  error
		vehiclesErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		drivers, driversErr = fetch[models.Driver](ctx, c.source, DriversPath)
		if driversErr != nil {
			log.WithError(driversErr).WithField("path", DriversPath).Error("Failed to fetch drivers")
		}
	}()
	go func() {
		defer wg.Done()
		vehicles, vehiclesErr = fetch[models.Vehicle](ctx, c.source, VehiclesPath)
		if vehiclesErr != nil {
			log.WithError(vehiclesErr).WithField("path", VehiclesPath).Error("Failed to fetch vehicles")
		}
	}()
	wg.Wait()

	driverMap := make(map[models.ID]string, len(drivers))
	for _, d := range drivers {
		if !d.ID.IsZero() {
			driverMap[d.ID] = d.Name
		}
	}
	vehicleMap := make(map[models.ID]string, len(vehicles))
	for _, v := range vehicles {
		if !v.ID.IsZero() {
			vehicleMap[v.ID] = v.Name
		}
	}

	c.mu.Lock()
	c.drivers, c.vehicles = drivers, vehicles
	c.driverMap, c.vehicleMap = driverMap, vehicleMap
	c.driversErr, c.vehiclesErr = driversErr, vehiclesErr
	c.loading = false
	c.mu.Unlock()
	close(c.done)

	log.WithFields(log.Fields{
		"drivers":  len(drivers),
		"vehicles": len(vehicles),
	}).Info("Fleet reference data loaded")
}

func fetch[T any](ctx context.Context, source Source, path string) ([]T, error) {
	raws, err := source.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	items, skipped := remote.DecodeEach[T](raws)
	for _, err := range skipped {
		log.WithError(err).WithField("path", path).Warn("Skipping undecodable record")
	}
	return items, nil
}

// Wait blocks until both fetches settled or ctx is done.
func (c *Cache) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loading is true until both fetch attempts have settled.
func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// DriverMap maps driver id to display name. The map must not be modified.
func (c *Cache) DriverMap() map[models.ID]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.driverMap
}

// VehicleMap maps vehicle id to plate. The map must not be modified.
func (c *Cache) VehicleMap() map[models.ID]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vehicleMap
}

// Drivers returns the fetched drivers.
func (c *Cache) Drivers() []models.Driver {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.drivers
}

// Vehicles returns the fetched vehicles.
func (c *Cache) Vehicles() []models.Vehicle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vehicles
}

// Errors returns the settle error of each endpoint, nil on success.
func (c *Cache) Errors() (drivers, vehicles error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.driversErr, c.vehiclesErr
}

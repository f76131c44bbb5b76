package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-reports/internal/config"
	"github.com/ukydev/fleet-reports/internal/notify"
)

// fakeVendor serves the vendor endpoints the on-time report reads.
func fakeVendor(t *testing.T) *httptest.Server {
	t.Helper()
	bodies := map[string]string{
		"/v1/accounts/drivers/": `{"results":[{"id":7,"name":"PEREZ - JUAN CARLOS"}]}`,
		"/v1/routes/vehicles/":  `[{"id":10,"name":"AB-1234","capacity":100}]`,
		"/v1/routes/visits/": `{"results":[
			{"id":1,"status":"completed","planned_date":"2024-03-01","window_end":"12:00:00","checkout_time":"2024-03-01T11:00:00Z","driver":7,"vehicle":10},
			{"id":2,"status":"pending","driver":7,"vehicle":10}
		]}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token vendor-token" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"detail":"Invalid token."}`)
			return
		}
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail":"Not found."}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(vendorURL string) config.Config {
	return config.Config{
		Port:              "0",
		VendorBaseURL:     vendorURL,
		VendorDatamartURL: vendorURL,
		VendorToken:       "vendor-token",
		Location:          time.UTC,
		DashboardToken:    "dash",
		RateLimitRPS:      100,
		RateLimitBurst:    100,
	}
}

func get(t *testing.T, h http.Handler, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestApp_OnTimeReport(t *testing.T) {
	vendor := fakeVendor(t)
	a := newApp(testConfig(vendor.URL), notify.Noop{})

	w := get(t, a.handler, "/api/reports/on-time", "dash")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var env struct {
		State string `json:"state"`
		Data  struct {
			Summary struct {
				Total   int `json:"total"`
				OnTime  int `json:"on_time"`
				Pending int `json:"pending"`
			} `json:"summary"`
			Visits []struct {
				DriverName   string `json:"driver_name"`
				VehiclePlate string `json:"vehicle_plate"`
			} `json:"visits"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "ready", env.State)
	assert.Equal(t, 2, env.Data.Summary.Total)
	assert.Equal(t, 1, env.Data.Summary.OnTime)
	assert.Equal(t, 1, env.Data.Summary.Pending)
	assert.Equal(t, "PEREZ - JUAN CARLOS", env.Data.Visits[0].DriverName)
	assert.Equal(t, "AB-1234", env.Data.Visits[0].VehiclePlate)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestApp_RequiresDashboardToken(t *testing.T) {
	vendor := fakeVendor(t)
	a := newApp(testConfig(vendor.URL), notify.Noop{})

	assert.Equal(t, http.StatusUnauthorized, get(t, a.handler, "/api/fleet", "").Code)
	assert.Equal(t, http.StatusOK, get(t, a.handler, "/health", "").Code)
}

func TestApp_UpstreamErrorEnvelope(t *testing.T) {
	vendor := fakeVendor(t)
	cfg := testConfig(vendor.URL)
	cfg.VendorToken = "wrong"
	a := newApp(cfg, notify.Noop{})

	w := get(t, a.handler, "/api/reports/pod", "dash")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"error"`)
	assert.Contains(t, w.Body.String(), "Permission error")
}

func TestApp_Metrics(t *testing.T) {
	vendor := fakeVendor(t)
	a := newApp(testConfig(vendor.URL), notify.Noop{})

	get(t, a.handler, "/health", "")
	w := get(t, a.handler, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "http_requests_total"))
}

func TestSetupLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{})

	setupLogging("debug", "json")
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	_, isJSON := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, isJSON)

	setupLogging("loud", "text")
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestRoutePattern(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, "unmatched", routePattern(req))
}

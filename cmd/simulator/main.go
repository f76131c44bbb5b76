// Command simulator serves a synthetic copy of the vendor routing API so the
// report server can run without vendor credentials.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Location represents a geographical location with latitude and longitude coordinates.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Depots the synthetic routes start from
var cities = []Location{
	{Lat: -33.4489, Lon: -70.6693}, // Santiago
	{Lat: -33.0472, Lon: -71.6127}, // Valparaíso
	{Lat: -36.8201, Lon: -73.0444}, // Concepción
	{Lat: 4.7110, Lon: -74.0721},   // Bogotá
	{Lat: 19.4326, Lon: -99.1332},  // Mexico City
	{Lat: -12.0464, Lon: -77.0428}, // Lima
	{Lat: 40.4168, Lon: -3.7038},   // Madrid
}

func jitterLocation(r *rand.Rand, base Location, meters float64) Location {
	latMetersPerDeg := 111320.0
	lonMetersPerDeg := 111320.0 * math.Cos(base.Lat*math.Pi/180)
	dLat := (r.Float64()*2 - 1) * (meters / latMetersPerDeg)
	dLon := (r.Float64()*2 - 1) * (meters / lonMetersPerDeg)
	return Location{Lat: base.Lat + dLat, Lon: base.Lon + dLon}
}

func haversineKm(a, b Location) float64 {
	R := 6371.0
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	s := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
	return R * c
}

type ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type driver struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsDriver  bool   `json:"is_driver"`
	LastLogin string `json:"last_login,omitempty"`
}

type vehicle struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Capacity  float64 `json:"capacity"`
	Capacity2 string  `json:"capacity_2"`
	TypeLoad  string  `json:"type_load"`
	Driver    *ref    `json:"driver"`
}

type client struct {
	ID      int    `json:"id"`
	Key     string `json:"key"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

type attachment struct {
	URL string `json:"url"`
}

type visit struct {
	ID           int               `json:"id"`
	Title        string            `json:"title"`
	Address      string            `json:"address"`
	PlannedDate  string            `json:"planned_date"`
	WindowStart  string            `json:"window_start"`
	WindowEnd    string            `json:"window_end"`
	Status       string            `json:"status"`
	CheckoutTime *string           `json:"checkout_time"`
	Driver       int               `json:"driver"`
	Vehicle      int               `json:"vehicle"`
	Load         float64           `json:"load"`
	Load3        float64           `json:"load_3"`
	Latitude     string            `json:"latitude"`
	Longitude    string            `json:"longitude"`
	Pictures     []attachment      `json:"pictures"`
	Signature    *attachment       `json:"signature"`
	Notes        string            `json:"notes"`
	Client       int               `json:"client"`
	Items        []json.RawMessage `json:"items"`
}

type planRoute struct {
	ID     int `json:"id"`
	PlanID int `json:"plan_id"`
}

type planVehicle struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Driver *ref        `json:"driver"`
	Routes []planRoute `json:"routes"`
}

type route struct {
	ID            int     `json:"id"`
	Plan          int     `json:"plan"`
	Vehicle       int     `json:"vehicle"`
	Driver        int     `json:"driver"`
	Status        string  `json:"status"`
	PlannedDate   string  `json:"planned_date"`
	TotalDistance float64 `json:"total_distance"`
	TotalDuration string  `json:"total_duration"`
	TotalVisits   int     `json:"total_visits"`
	TotalLoad     float64 `json:"total_load"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Reference     string  `json:"reference"`
}

type invoice struct {
	ID          int    `json:"id"`
	Date        string `json:"date"`
	TotalAmount string `json:"total_amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

// Dataset is one generated day of fleet activity.
type Dataset struct {
	Date     string
	Drivers  []driver
	Vehicles []vehicle
	Clients  []client
	Visits   []visit
	Plan     []planVehicle
	Routes   map[string]route
	Invoices []invoice
}

var (
	lastNames  = []string{"GONZALEZ", "MUÑOZ", "ROJAS", "DIAZ", "PEREZ", "SOTO", "CONTRERAS", "SILVA"}
	firstNames = []string{"JUAN", "MARIA", "PEDRO", "ANA", "JOSE", "CAMILA", "LUIS", "FRANCISCA"}
	companies  = []string{"Almacenes Sur", "Ferretería Central", "Farmacia Andes", "Panadería Norte", "Minimarket Costa"}
	loadTypes  = []string{"dry", "refrigerated", "frozen"}
)

// generate builds a dataset of fleetSize vehicles and drivers with visitsPer
// visits each, all planned on day.
func generate(r *rand.Rand, fleetSize, visitsPer int, day time.Time) *Dataset {
	date := day.Format("2006-01-02")
	ds := &Dataset{Date: date, Routes: map[string]route{}}

	for i, name := range companies {
		ds.Clients = append(ds.Clients, client{
			ID:      500 + i,
			Key:     fmt.Sprintf("C-%03d", i+1),
			Name:    name,
			Address: fmt.Sprintf("Av. Principal %d", 100+i*10),
			Email:   fmt.Sprintf("contacto%d@example.com", i+1),
		})
	}

	visitID := 1000
	for i := 0; i < fleetSize; i++ {
		d := driver{
			ID:       1 + i,
			Name:     fmt.Sprintf("%s %s - %s", lastNames[r.Intn(len(lastNames))], lastNames[r.Intn(len(lastNames))], firstNames[r.Intn(len(firstNames))]),
			Username: fmt.Sprintf("driver%d", i+1),
			Email:    fmt.Sprintf("driver%d@example.com", i+1),
			Phone:    fmt.Sprintf("+56 9 %04d %04d", r.Intn(10000), r.Intn(10000)),
			IsDriver: true,
		}
		if r.Intn(4) > 0 {
			d.LastLogin = day.Add(-time.Duration(r.Intn(72)) * time.Hour).Format(time.RFC3339)
		}
		ds.Drivers = append(ds.Drivers, d)

		v := vehicle{
			ID:        100 + i,
			Name:      fmt.Sprintf("%c%c-%04d", 'A'+r.Intn(26), 'A'+r.Intn(26), r.Intn(10000)),
			Capacity:  float64(500 + 100*r.Intn(10)),
			Capacity2: strconv.Itoa(10 + r.Intn(20)),
			TypeLoad:  loadTypes[r.Intn(len(loadTypes))],
			Driver:    &ref{ID: d.ID, Name: d.Name},
		}
		ds.Vehicles = append(ds.Vehicles, v)

		depot := cities[i%len(cities)]
		prev := depot
		distanceKm, totalLoad := 0.0, 0.0
		for j := 0; j < visitsPer; j++ {
			visitID++
			pos := jitterLocation(r, depot, 5000)
			distanceKm += haversineKm(prev, pos)
			prev = pos
			ds.Visits = append(ds.Visits, newVisit(r, visitID, date, day, d.ID, v.ID, pos, ds.Clients[r.Intn(len(ds.Clients))]))
			totalLoad += ds.Visits[len(ds.Visits)-1].Load
		}
		distanceKm += haversineKm(prev, depot)

		rt := route{
			ID:            9000 + i,
			Plan:          1,
			Vehicle:       v.ID,
			Driver:        d.ID,
			Status:        []string{"planned", "started", "finished"}[r.Intn(3)],
			PlannedDate:   date,
			TotalDistance: math.Round(distanceKm * 1000),
			TotalDuration: (time.Duration(visitsPer*20) * time.Minute).String(),
			TotalVisits:   visitsPer,
			TotalLoad:     totalLoad,
			StartTime:     "08:00:00",
			EndTime:       "18:00:00",
			Reference:     fmt.Sprintf("R-%s-%d", date, i+1),
		}
		ds.Routes[strconv.Itoa(rt.ID)] = rt
		ds.Plan = append(ds.Plan, planVehicle{
			ID:     v.ID,
			Name:   v.Name,
			Driver: &ref{ID: d.ID, Name: d.Name},
			Routes: []planRoute{{ID: rt.ID, PlanID: rt.Plan}},
		})
	}

	for i := 0; i < 6; i++ {
		ds.Invoices = append(ds.Invoices, invoice{
			ID:          700 + i,
			Date:        day.AddDate(0, -i, 0).Format("2006-01-02"),
			TotalAmount: strconv.FormatFloat(float64(100000+r.Intn(900000))/100, 'f', 2, 64),
			Currency:    "CLP",
			Status:      []string{"paid", "pending"}[r.Intn(2)],
		})
	}
	return ds
}

func newVisit(r *rand.Rand, id int, date string, day time.Time, driverID, vehicleID int, pos Location, c client) visit {
	startHour := 8 + r.Intn(8)
	v := visit{
		ID:          id,
		Title:       c.Name,
		Address:     c.Address,
		PlannedDate: date,
		WindowStart: fmt.Sprintf("%02d:00:00", startHour),
		WindowEnd:   fmt.Sprintf("%02d:00:00", startHour+2),
		Driver:      driverID,
		Vehicle:     vehicleID,
		Load:        float64(r.Intn(5000)) / 100,
		Load3:       float64(r.Intn(300)) / 100,
		Latitude:    strconv.FormatFloat(pos.Lat, 'f', 6, 64),
		Longitude:   strconv.FormatFloat(pos.Lon, 'f', 6, 64),
		Pictures:    []attachment{},
		Client:      c.ID,
	}
	for k := r.Intn(4); k > 0; k-- {
		v.Items = append(v.Items, json.RawMessage(fmt.Sprintf(`{"id":%d,"quantity":%d}`, id*10+k, 1+r.Intn(5))))
	}

	switch n := r.Intn(10); {
	case n < 6:
		v.Status = "completed"
		// checkout lands anywhere from an hour before the window opens to
		// an hour after it closes
		offset := time.Duration(r.Intn(4*60)-60) * time.Minute
		checkout := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, day.Location()).Add(offset).Format(time.RFC3339)
		v.CheckoutTime = &checkout
		v.Pictures = append(v.Pictures, attachment{URL: fmt.Sprintf("https://files.example.com/pod/%d.jpg", id)})
		if r.Intn(2) == 0 {
			v.Signature = &attachment{URL: fmt.Sprintf("https://files.example.com/sig/%d.png", id)}
			v.Notes = "Received at front desk"
		}
	case n < 9:
		v.Status = "pending"
	default:
		v.Status = "failed"
		v.Notes = "Customer absent"
	}
	return v
}

// paginated wraps items the way the vendor's list endpoints do.
type paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func page[T any](items []T) paginated[T] {
	return paginated[T]{Count: len(items), Results: items}
}

// Handler serves the dataset under the vendor paths. Some collections are
// wrapped in a paginated envelope and some are bare arrays, as upstream.
func (ds *Dataset) Handler(token string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/accounts/drivers/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, page(ds.Drivers))
	})
	mux.HandleFunc("GET /v1/routes/vehicles/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ds.Vehicles)
	})
	mux.HandleFunc("GET /v1/accounts/clients/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, page(ds.Clients))
	})
	mux.HandleFunc("GET /v1/routes/visits/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, page(ds.Visits))
	})
	mux.HandleFunc("GET /v1/plans/{date}/vehicles/", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("date") != ds.Date {
			writeJSON(w, http.StatusOK, []planVehicle{})
			return
		}
		writeJSON(w, http.StatusOK, ds.Plan)
	})
	mux.HandleFunc("GET /v1/routes/routes/{id}/", func(w http.ResponseWriter, r *http.Request) {
		rt, ok := ds.Routes[r.PathValue("id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
			return
		}
		writeJSON(w, http.StatusOK, rt)
	})
	mux.HandleFunc("GET /v1/invoices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ds.Invoices)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token "+token {
			log.WithField("path", r.URL.Path).Warn("Rejected request with invalid token")
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
			return
		}
		log.WithFields(log.Fields{"method": r.Method, "path": r.URL.Path}).Debug("Serving vendor request")
		mux.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func main() {
	token := os.Getenv("SIM_TOKEN")
	if token == "" {
		token = "dev-token"
	}
	port := os.Getenv("SIM_PORT")
	if port == "" {
		port = "8090"
	}
	fleetSize := getEnvInt("FLEET_SIZE", 10)
	visitsPer := getEnvInt("SIM_VISITS_PER_ROUTE", 8)
	seed := int64(getEnvInt("SIM_SEED", int(time.Now().UnixNano()%math.MaxInt32)))

	ds := generate(rand.New(rand.NewSource(seed)), fleetSize, visitsPer, time.Now())

	log.WithFields(log.Fields{
		"port":       port,
		"fleet_size": fleetSize,
		"visits":     len(ds.Visits),
		"date":       ds.Date,
		"seed":       seed,
	}).Info("Starting vendor API simulator")

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           ds.Handler(token),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("Simulator stopped")
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-reports/internal/export"
	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/remote"
	"github.com/ukydev/fleet-reports/internal/reports"
)

// ReportService builds report pages.
type ReportService interface {
	OnTime(ctx context.Context) reports.Result[*reports.OnTimeReport]
	DailyRoutes(ctx context.Context, date string) reports.Result[*reports.DailyRoutesReport]
	POD(ctx context.Context) reports.Result[*reports.PODReport]
	ClientHistory(ctx context.Context) reports.Result[*reports.ClientVisitsReport]
	Financial(ctx context.Context) reports.Result[*reports.FinancialReport]
	VehiclePerformance(ctx context.Context) reports.Result[*reports.VehicleReport]
	FleetData(ctx context.Context) reports.Result[*reports.FleetReport]
	Visit(ctx context.Context, id models.ID) reports.Result[json.RawMessage]
}

// Envelope is the body of every report response.
type Envelope struct {
	State reports.State `json:"state"`
	Data  any           `json:"data,omitempty"`
	Error string        `json:"error,omitempty"`
}

// ReportHandler serves the report pages as JSON and XLSX.
type ReportHandler struct {
	service ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Register mounts the report routes on mux.
func (h *ReportHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/reports/on-time", h.OnTime)
	mux.HandleFunc("GET /api/reports/daily-routes", h.DailyRoutes)
	mux.HandleFunc("GET /api/reports/pod", h.POD)
	mux.HandleFunc("GET /api/reports/client-visits", h.ClientVisits)
	mux.HandleFunc("GET /api/reports/financial", h.Financial)
	mux.HandleFunc("GET /api/reports/vehicle-performance", h.VehiclePerformance)
	mux.HandleFunc("GET /api/reports/{name}/export.xlsx", h.Export)
	mux.HandleFunc("GET /api/fleet", h.Fleet)
	mux.HandleFunc("GET /api/visits/{id}", h.Visit)
}

// OnTime handles the on-time delivery report. q searches title, address,
// driver and plate; status filters on the classification.
func (h *ReportHandler) OnTime(w http.ResponseWriter, r *http.Request) {
	q, status, ok := visitFilters(w, r)
	if !ok {
		return
	}
	res := h.service.OnTime(r.Context())
	if res.Data != nil {
		res.Data.Visits = reports.FilterVisits(res.Data.Visits, q, status)
	}
	writeResult(w, res.Page, res.Data)
}

// DailyRoutes handles the daily route report for ?date=YYYY-MM-DD.
func (h *ReportHandler) DailyRoutes(w http.ResponseWriter, r *http.Request) {
	date, ok := reportDate(w, r)
	if !ok {
		return
	}
	res := h.service.DailyRoutes(r.Context(), date)
	writeResult(w, res.Page, res.Data)
}

// POD handles the proof-of-delivery report.
func (h *ReportHandler) POD(w http.ResponseWriter, r *http.Request) {
	res := h.service.POD(r.Context())
	if res.Data != nil {
		res.Data.Records = reports.FilterPOD(res.Data.Records, r.URL.Query().Get("q"))
	}
	writeResult(w, res.Page, res.Data)
}

// ClientVisits handles the client visit history report.
func (h *ReportHandler) ClientVisits(w http.ResponseWriter, r *http.Request) {
	res := h.service.ClientHistory(r.Context())
	if res.Data != nil {
		res.Data.Visits = reports.FilterClientVisits(res.Data.Visits, r.URL.Query().Get("q"))
	}
	writeResult(w, res.Page, res.Data)
}

// Financial handles the invoice report.
func (h *ReportHandler) Financial(w http.ResponseWriter, r *http.Request) {
	res := h.service.Financial(r.Context())
	writeResult(w, res.Page, res.Data)
}

// VehiclePerformance handles the vehicle capacity report.
func (h *ReportHandler) VehiclePerformance(w http.ResponseWriter, r *http.Request) {
	res := h.service.VehiclePerformance(r.Context())
	writeResult(w, res.Page, res.Data)
}

// Fleet handles the raw driver and vehicle listing.
func (h *ReportHandler) Fleet(w http.ResponseWriter, r *http.Request) {
	res := h.service.FleetData(r.Context())
	writeResult(w, res.Page, res.Data)
}

// Visit returns the full vendor record of one visit.
func (h *ReportHandler) Visit(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeEnvelope(w, http.StatusBadRequest, Envelope{State: reports.StateError, Error: "Visit id is required"})
		return
	}
	res := h.service.Visit(r.Context(), models.ID(id))
	writeResult(w, res.Page, res.Data)
}

// Export renders a report as an XLSX workbook. It accepts the same filters
// as the JSON endpoint of the report.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var (
		page  *reports.Page
		table export.Table
	)
	switch name {
	case reports.ReportOnTime:
		q, status, ok := visitFilters(w, r)
		if !ok {
			return
		}
		res := h.service.OnTime(r.Context())
		page = res.Page
		if res.Data != nil {
			res.Data.Visits = reports.FilterVisits(res.Data.Visits, q, status)
			table = res.Data.Table()
		}
	case reports.ReportDailyRoutes:
		date, ok := reportDate(w, r)
		if !ok {
			return
		}
		res := h.service.DailyRoutes(r.Context(), date)
		page = res.Page
		if res.Data != nil {
			table = res.Data.Table()
		}
	case reports.ReportPOD:
		res := h.service.POD(r.Context())
		page = res.Page
		if res.Data != nil {
			res.Data.Records = reports.FilterPOD(res.Data.Records, r.URL.Query().Get("q"))
			table = res.Data.Table()
		}
	case reports.ReportClientVisits:
		res := h.service.ClientHistory(r.Context())
		page = res.Page
		if res.Data != nil {
			res.Data.Visits = reports.FilterClientVisits(res.Data.Visits, r.URL.Query().Get("q"))
			table = res.Data.Table()
		}
	case reports.ReportFinancial:
		res := h.service.Financial(r.Context())
		page = res.Page
		if res.Data != nil {
			table = res.Data.Table()
		}
	case reports.ReportVehiclePerformance:
		res := h.service.VehiclePerformance(r.Context())
		page = res.Page
		if res.Data != nil {
			table = res.Data.Table()
		}
	case reports.ReportFleet:
		res := h.service.FleetData(r.Context())
		page = res.Page
		if res.Data != nil {
			table = res.Data.Table()
		}
	default:
		writeEnvelope(w, http.StatusNotFound, Envelope{State: reports.StateError, Error: "Unknown report"})
		return
	}

	if page.State != reports.StateReady {
		writeResult[any](w, page, nil)
		return
	}

	buf, err := export.XLSX(table)
	if err != nil {
		log.WithError(err).WithField("report", name).Error("Failed to render export")
		writeEnvelope(w, http.StatusInternalServerError, Envelope{State: reports.StateError, Error: reports.MsgUnexpected})
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).WithField("report", name).Warn("Failed to write export")
	}
}

func visitFilters(w http.ResponseWriter, r *http.Request) (q, status string, ok bool) {
	q = r.URL.Query().Get("q")
	status = strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && status != reports.StatusAll && !models.IsValidClassification(models.Classification(status)) {
		writeEnvelope(w, http.StatusBadRequest, Envelope{State: reports.StateError, Error: "Invalid status filter"})
		return "", "", false
	}
	return q, status, true
}

func reportDate(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		return "", true
	}
	if _, err := time.Parse(reports.DateLayout, date); err != nil {
		writeEnvelope(w, http.StatusBadRequest, Envelope{State: reports.StateError, Error: "Invalid date, expected YYYY-MM-DD"})
		return "", false
	}
	return date, true
}

func writeResult[T any](w http.ResponseWriter, page *reports.Page, data T) {
	if page.State == reports.StateReady {
		writeEnvelope(w, http.StatusOK, Envelope{State: page.State, Data: data})
		return
	}
	writeEnvelope(w, statusFor(page.Err), Envelope{State: page.State, Error: page.Message})
}

// statusFor maps a page failure to the response status. Vendor failures
// are a bad gateway.
func statusFor(err error) int {
	switch {
	case errors.Is(err, reports.ErrVisitNotFound):
		return http.StatusNotFound
	case errors.Is(err, reports.ErrInvalidDate):
		return http.StatusBadRequest
	}
	if _, ok := remote.AsError(err); ok {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeEnvelope(w http.ResponseWriter, code int, env Envelope) {
	writeJSON(w, code, env)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

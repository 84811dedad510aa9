package statistikhandler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/pegawai"
	"simpeg/internal/domain/statistik"
	"simpeg/internal/tabular"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
)

type Handler struct {
	Store    *pegawai.Store
	Registry *auth.Registry
}

func NewHandler(store *pegawai.Store, registry *auth.Registry) *Handler {
	return &Handler{Store: store, Registry: registry}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/statistik", func(r chi.Router) {
		r.Get("/dashboard", h.handleDashboard)
		r.Get("/gender", h.handleGender)
		r.Get("/usia", h.handleUsia)
		r.Get("/pendidikan", h.handlePendidikan)
	})
	r.Route("/laporan", func(r chi.Router) {
		r.Get("/unor", h.handleUnorHeadcount)
		r.Get("/jabatan", h.handleNamaJabatan)
		r.Get("/jenis-jabatan", h.handleJenisJabatan)
		r.Get("/nominatif", h.handleNominatif)
		r.Get("/nominatif/export", h.handleNominatifExport)
	})
	r.Route("/rekap", func(r chi.Router) {
		r.Get("/tahun", h.handleTrendYears)
		r.Get("/tahunan", h.handleYearlyTrend)
		r.Get("/bulanan", h.handleMonthlyTrend)
	})
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (auth.UserContext, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return auth.UserContext{}, false
	}
	return user, true
}

// unitParam reads the UNOR INDUK filter; "Semua" from the UI means all units.
func unitParam(r *http.Request) string {
	unit := r.URL.Query().Get("unit")
	if unit == "Semua" {
		return ""
	}
	return unit
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	summary := statistik.Summary(h.Store.Snapshot(), h.Registry.Count())
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGender(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	api.Success(w, statistik.GenderDistribution(h.Store.Snapshot()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUsia(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	api.Success(w, statistik.AgeBuckets(h.Store.Snapshot(), time.Now()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePendidikan(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	api.Success(w, statistik.EducationDistribution(h.Store.Snapshot()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUnorHeadcount(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	rows := h.Store.Snapshot()
	api.Success(w, map[string]any{
		"units":     statistik.Units(rows),
		"headcount": statistik.HeadcountByUnorInduk(rows, unitParam(r)),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleNamaJabatan(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	api.Success(w, statistik.HeadcountByNamaJabatan(h.Store.Snapshot(), unitParam(r)), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleJenisJabatan(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	api.Success(w, statistik.HeadcountByJenisJabatan(h.Store.Snapshot(), unitParam(r)), middleware.GetRequestID(r.Context()))
}

// handleNominatif renders the per-unit roster. Viewing is open to any
// authenticated role; downloading is gated separately.
func (h *Handler) handleNominatif(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	unit := unitParam(r)
	if unit == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unit is required for the nominative report", middleware.GetRequestID(r.Context()))
		return
	}
	entries := statistik.NominativeReport(h.Store.Snapshot(), unit, r.URL.Query().Get("q"))
	api.Success(w, map[string]any{"unit": unit, "total": len(entries), "pegawai": entries}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleNominatifExport(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if !auth.CanExportReports(user.Role) {
		api.Fail(w, http.StatusForbidden, "forbidden", "admin or supervisor role required", middleware.GetRequestID(r.Context()))
		return
	}
	unit := unitParam(r)
	if unit == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unit is required for the nominative report", middleware.GetRequestID(r.Context()))
		return
	}

	entries := statistik.NominativeReport(h.Store.Snapshot(), unit, r.URL.Query().Get("q"))
	rows := make([][]string, len(entries))
	for i, entry := range entries {
		rows[i] = entry.Row()
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", tabular.FormatCSV:
		data, err := tabular.WriteCSV(statistik.NominativeColumns, rows)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "export_failed", "csv export failed", middleware.GetRequestID(r.Context()))
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=nominatif_%s.csv", unit))
		_, _ = w.Write(data)
	case tabular.FormatXLSX:
		data, err := tabular.WriteXLSX("Nominatif", statistik.NominativeColumns, rows)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "export_failed", "xlsx export failed", middleware.GetRequestID(r.Context()))
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=nominatif_%s.xlsx", unit))
		_, _ = w.Write(data)
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=nominatif_%s.pdf", unit))
		if err := writeNominatifPDF(w, unit, rows); err != nil {
			api.Fail(w, http.StatusInternalServerError, "export_failed", "pdf export failed", middleware.GetRequestID(r.Context()))
		}
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "format must be csv, xlsx or pdf", middleware.GetRequestID(r.Context()))
	}
}

var nominatifPDFWidths = []float64{50, 35, 40, 30, 45, 45, 25}

func writeNominatifPDF(w http.ResponseWriter, unit string, rows [][]string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Laporan Nominatif Pegawai - %s", unit))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 9)
	for i, name := range statistik.NominativeColumns {
		pdf.CellFormat(nominatifPDFWidths[i], 7, name, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, value := range row {
			pdf.CellFormat(nominatifPDFWidths[i], 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

func (h *Handler) handleTrendYears(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	api.Success(w, statistik.TrendYears(h.Store.Snapshot(), unitParam(r)), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleYearlyTrend(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	api.Success(w, statistik.YearlyTrend(h.Store.Snapshot(), unitParam(r)), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("tahun"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "tahun must be a year number", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, statistik.MonthlyTrend(h.Store.Snapshot(), unitParam(r), year), middleware.GetRequestID(r.Context()))
}

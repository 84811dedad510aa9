package pegawaihandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/pegawai"
	"simpeg/internal/tabular"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
)

type Handler struct {
	Store        *pegawai.Store
	MaxBodyBytes int64
}

func NewHandler(store *pegawai.Store, maxBodyBytes int64) *Handler {
	return &Handler{Store: store, MaxBodyBytes: maxBodyBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pegawai", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleAdd)
		r.Delete("/", h.handleWipe)
		r.Post("/import", h.handleImport)
		r.Get("/template", h.handleTemplate)
		r.Get("/export", h.handleExport)
		r.Get("/{nip}", h.handleGet)
		r.Put("/{nip}", h.handleUpdate)
		r.Delete("/{nip}", h.handleDelete)
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

func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) (auth.UserContext, bool) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return auth.UserContext{}, false
	}
	if user.Role != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "admin role required", middleware.GetRequestID(r.Context()))
		return auth.UserContext{}, false
	}
	return user, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	rows := h.Store.Snapshot()
	api.Success(w, map[string]any{"total": len(rows), "pegawai": rows}, middleware.GetRequestID(r.Context()))
}

// handleImport replaces the whole table with the uploaded CSV/XLSX body. The
// upload must carry every expected column; otherwise nothing changes and the
// caller gets the required column list back.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = tabular.FormatCSV
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxBodyBytes))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unable to read upload", middleware.GetRequestID(r.Context()))
		return
	}

	table, err := tabular.Parse(body, format)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "parse_error", "malformed upload: "+err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	imported, err := h.Store.ReplaceAll(table)
	var schemaErr *pegawai.SchemaError
	if errors.As(err, &schemaErr) {
		api.FailWithDetails(w, http.StatusBadRequest, "schema_mismatch", "upload is missing required columns",
			map[string]any{"missing": schemaErr.Missing, "required": pegawai.Columns()},
			middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "import_failed", "import failed", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]int{"imported": imported}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTemplate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=template_simpeg.csv")
	_, _ = w.Write(tabular.TemplateCSV(pegawai.Columns()))
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	var rec pegawai.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.Append(rec); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	nip := chi.URLParam(r, "nip")
	matches := h.Store.FindByNIP(nip)
	if len(matches) == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no pegawai with that NIP", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, matches, middleware.GetRequestID(r.Context()))
}

// handleUpdate edits the first row matching the NIP, by design: duplicate
// NIPs are tolerated and later matches are left alone.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	nip := chi.URLParam(r, "nip")
	index, found := h.Store.IndexByNIP(nip)
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "no pegawai with that NIP", middleware.GetRequestID(r.Context()))
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.UpdateFields(index, fields); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no pegawai with that NIP", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	nip := chi.URLParam(r, "nip")
	removed := h.Store.DeleteByNIP(nip)
	if removed == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no pegawai with that NIP", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int{"deleted": removed}, middleware.GetRequestID(r.Context()))
}

// handleWipe clears the whole table. The confirm flag is required on top of
// the Admin role; without it nothing happens.
func (h *Handler) handleWipe(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if !confirmed {
		api.Fail(w, http.StatusBadRequest, "confirmation_required", "wipe requires confirm=true", middleware.GetRequestID(r.Context()))
		return
	}
	h.Store.Clear()
	api.Success(w, map[string]string{"status": "wiped"}, middleware.GetRequestID(r.Context()))
}

// handleExport streams a full backup of every column as CSV or XLSX.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	rows := h.Store.Snapshot()
	table := make([][]string, len(rows))
	for i := range rows {
		table[i] = rows[i].Row()
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", tabular.FormatCSV:
		data, err := tabular.WriteCSV(pegawai.Columns(), table)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "export_failed", "csv export failed", middleware.GetRequestID(r.Context()))
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=backup_pegawai.csv")
		_, _ = w.Write(data)
	case tabular.FormatXLSX:
		data, err := tabular.WriteXLSX("Pegawai", pegawai.Columns(), table)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "export_failed", "xlsx export failed", middleware.GetRequestID(r.Context()))
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=backup_pegawai.xlsx")
		_, _ = w.Write(data)
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "format must be csv or xlsx", middleware.GetRequestID(r.Context()))
	}
}

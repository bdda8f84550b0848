package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "gridcli/internal/errors"
	"gridcli/internal/ingest"
	"gridcli/internal/merge"
	"gridcli/internal/transform"
	"gridcli/pkg/contracts/domain"
)

// TableHandler serves the table resource: upload/ingest, fetch, merge,
// and derived row views.
type TableHandler struct {
	store       *Store
	logger      *slog.Logger
	maxFileSize int64
	strictMerge bool
}

// NewTableHandler creates a table handler.
func NewTableHandler(store *Store, logger *slog.Logger, maxFileSize int64, strictMerge bool) *TableHandler {
	return &TableHandler{
		store:       store,
		logger:      logger.With(slog.String("component", "table_handler")),
		maxFileSize: maxFileSize,
		strictMerge: strictMerge,
	}
}

// Routes returns the table routes.
func (h *TableHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.CreateTable)
	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.TableCtx)
		r.Get("/", h.GetTable)
		r.Post("/merge", h.MergeTable)
		r.Get("/rows", h.GetRows)
	})
	return r
}

// TableCtx validates the table ID parameter.
func (h *TableHandler) TableCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "" {
			render.Render(w, r, apierrors.ErrInvalidRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateTable handles POST /api/tables: a multipart upload ("file" field)
// is ingested into a new canonical table.
func (h *TableHandler) CreateTable(w http.ResponseWriter, r *http.Request) {
	content, filename, apiErr := h.readUpload(w, r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	table, err := ingest.Parse(content, ingest.DetectFormat(filename), filename)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "ingestion failed",
			slog.String("source", filename),
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.IngestFailed(err))
		return
	}

	h.store.Put(table)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, table)
}

// GetTable handles GET /api/tables/{id}.
func (h *TableHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	table, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		render.Render(w, r, apierrors.ErrTableNotFound)
		return
	}
	render.JSON(w, r, table)
}

// MergeTable handles POST /api/tables/{id}/merge: the uploaded file is
// ingested and union-merged into the stored table. strict=true in the
// query opts into no-overlap rejection for this request.
func (h *TableHandler) MergeTable(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		render.Render(w, r, apierrors.ErrTableNotFound)
		return
	}

	content, filename, apiErr := h.readUpload(w, r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	incoming, err := ingest.Parse(content, ingest.DetectFormat(filename), filename)
	if err != nil {
		render.Render(w, r, apierrors.IngestFailed(err))
		return
	}

	strict := h.strictMerge
	if v := r.URL.Query().Get("strict"); v != "" {
		strict = v == "true"
	}

	merged, err := merge.Tables(existing, incoming, merge.Options{RequireOverlap: strict})
	if err != nil {
		var mergeErr *merge.Error
		if errors.As(err, &mergeErr) {
			render.Render(w, r, apierrors.MergeConflict(err))
			return
		}
		render.Render(w, r, apierrors.ErrInternalServer)
		return
	}

	h.store.Put(merged)
	render.JSON(w, r, merged)
}

// rowsResponse is the derived-view payload of GET /rows.
type rowsResponse struct {
	Rows  []domain.Record `json:"rows"`
	Count int             `json:"count"`
}

// GetRows handles GET /api/tables/{id}/rows with optional query params:
// start/end (inclusive YYYY-MM-DD range over the axis), smooth (window
// size), columns (comma-separated smoothing targets). The stored table is
// never modified; both transforms return fresh views.
func (h *TableHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	table, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		render.Render(w, r, apierrors.ErrTableNotFound)
		return
	}

	q := r.URL.Query()
	axis := q.Get("axis")
	if axis == "" {
		axis = table.AxisHeader
	}
	if axis == "" && len(table.Headers) > 0 {
		axis = table.Headers[0]
	}

	rows := table.Rows
	start, end := q.Get("start"), q.Get("end")
	if start != "" || end != "" {
		rows = transform.FilterRange(rows, axis, start, end)
	}

	if smoothParam := q.Get("smooth"); smoothParam != "" {
		window, err := strconv.Atoi(smoothParam)
		if err != nil || window < 0 {
			render.Render(w, r, apierrors.NewWithDetails(http.StatusBadRequest,
				"INVALID_PARAMETER", "smooth must be a non-negative integer", smoothParam))
			return
		}
		columns := numericColumns(table, axis)
		if cols := q.Get("columns"); cols != "" {
			columns = strings.Split(cols, ",")
		}
		rows = transform.Smooth(rows, columns, window)
	}

	render.JSON(w, r, rowsResponse{Rows: rows, Count: len(rows)})
}

// readUpload pulls the "file" field out of a size-capped multipart body.
func (h *TableHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, *apierrors.APIError) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, "", apierrors.ErrFileTooLarge
		}
		return nil, "", apierrors.InvalidRequestWithError(err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, "", apierrors.InvalidRequestWithError(err)
	}
	return content, header.Filename, nil
}

// numericColumns returns every non-axis header; the smoother itself leaves
// text-only columns recognizably averaged-to-zero, so callers narrow the
// set with the columns parameter when that matters.
func numericColumns(table *domain.Table, axis string) []string {
	var cols []string
	for _, h := range table.Headers {
		if h != axis {
			cols = append(cols, h)
		}
	}
	return cols
}

package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/reportdev/reportd/internal/aggregate"
	"github.com/reportdev/reportd/internal/clean"
	"github.com/reportdev/reportd/internal/report"
)

// handleListColumns returns a report's stored columns with their rows split
// back into cells.
//
//	GET /api/report/{reportID}/column?labels=&dtype=&offset=&limit=
func (s *Server) handleListColumns(w http.ResponseWriter, r *http.Request) {
	id, ok := s.reportID(w, r)
	if !ok {
		return
	}
	offset, limit, ok := s.pagination(w, r)
	if !ok {
		return
	}

	filter := report.ColumnFilter{Offset: offset, Limit: limit}
	q := r.URL.Query()
	if labels := q.Get("labels"); labels != "" {
		filter.Labels = strings.Split(labels, ",")
	}
	if dtype := q.Get("dtype"); dtype != "" {
		parsed, err := clean.ParseColumnDataType(dtype)
		if err != nil {
			s.respondUnprocessable(w, r, err)
			return
		}
		filter.Dtype = parsed
	}

	cols, err := s.service.ListColumns(r.Context(), id, filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if cols == nil {
		cols = []report.ColumnRecord{}
	}
	respondJSON(w, http.StatusOK, cols)
}

// handleColumnData returns a column's values, optionally reduced.
//
// Without an operation the response is the full typed array. first/last
// work for every dtype; max, mean, median, min, mode, and sum require a
// NUMBER column and otherwise yield 422. mode responds with an array of
// every value at the maximum frequency.
//
//	GET /api/report/{reportID}/column/{label}?operation=
func (s *Server) handleColumnData(w http.ResponseWriter, r *http.Request) {
	id, ok := s.reportID(w, r)
	if !ok {
		return
	}
	label := chi.URLParam(r, "label")

	op, err := aggregate.ParseOperation(r.URL.Query().Get("operation"))
	if err != nil {
		s.respondUnprocessable(w, r, err)
		return
	}

	value, err := s.service.AggregateColumn(r.Context(), id, label, op)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"value": value})
}

package web

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/reportdev/reportd/internal/clean"
	"github.com/reportdev/reportd/internal/report"
)

// maxMemoryBytes is the in-memory buffer for multipart parsing; larger
// uploads spill to disk.
const maxMemoryBytes = 10 << 20

// handleListReports returns stored reports, newest first.
//
//	GET /api/report?offset=&limit=
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := s.pagination(w, r)
	if !ok {
		return
	}
	reports, err := s.service.ListReports(r.Context(), offset, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if reports == nil {
		reports = []report.Report{}
	}
	respondJSON(w, http.StatusOK, reports)
}

// handleCreateReport ingests a CSV upload and returns the persisted report
// with its column metadata.
//
//	POST /api/report  (multipart: file, name?, fill_strategy?; query: allow_duplicate)
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize+maxMemoryBytes)
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		s.respondBadRequest(w, r, "expected multipart form with a csv file")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondBadRequest(w, r, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	strategyParam := r.FormValue("fill_strategy")
	if strategyParam == "" {
		strategyParam = s.cfg.Upload.DefaultFillStrategy
	}
	strategy, err := clean.ParseFillStrategy(strategyParam)
	if err != nil {
		s.respondUnprocessable(w, r, err)
		return
	}

	allowDuplicate := r.URL.Query().Get("allow_duplicate") == "true"

	rep, err := s.service.CreateReport(r.Context(), name, data, strategy, allowDuplicate)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rep)
}

// handleGetReport returns one report with its column metadata.
//
//	GET /api/report/{reportID}
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.reportID(w, r)
	if !ok {
		return
	}
	rep, err := s.service.GetReport(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// handleDeleteReport removes a report and its columns.
//
//	DELETE /api/report/{reportID}
func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.reportID(w, r)
	if !ok {
		return
	}
	if err := s.service.DeleteReport(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reportID parses the reportID path parameter, responding 400 on garbage.
func (s *Server) reportID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "reportID"))
	if err != nil {
		s.respondBadRequest(w, r, "invalid report id")
		return uuid.Nil, false
	}
	return id, true
}

// pagination parses offset/limit query parameters. Limit is capped at 100.
func (s *Server) pagination(w http.ResponseWriter, r *http.Request) (offset, limit int, ok bool) {
	offset, limit = 0, 100
	q := r.URL.Query()
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondBadRequest(w, r, "invalid offset")
			return 0, 0, false
		}
		offset = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			s.respondBadRequest(w, r, "invalid limit (1-100)")
			return 0, 0, false
		}
		limit = n
	}
	return offset, limit, true
}

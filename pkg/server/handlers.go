package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/pipeline"
	"github.com/statboard/statboard/pkg/report"
)

// resolveRequest is the body of POST /api/layout/resolve. Exactly one of
// ReportID and Report is set: stored reports resolve by id, the editor
// posts unsaved drafts inline.
type resolveRequest struct {
	ReportID  string         `json:"report_id,omitempty"`
	Report    *report.Report `json:"report,omitempty"`
	WidthPx   float64        `json:"width_px,omitempty"`
	Published bool           `json:"published,omitempty"`
	Refresh   bool           `json:"refresh,omitempty"`
}

// validateRequest is the body of POST /api/layout/validate.
type validateRequest struct {
	ReportID string         `json:"report_id,omitempty"`
	Report   *report.Report `json:"report,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handlePutReport(w http.ResponseWriter, r *http.Request) {
	var rep report.Report
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode report"))
		return
	}
	if id := chi.URLParam(r, "id"); rep.ID == "" {
		rep.ID = id
	} else if rep.ID != id {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
			"report id %q does not match path id %q", rep.ID, id))
		return
	}
	if err := s.store.Put(r.Context(), rep); err != nil {
		s.writeError(w, r, err)
		return
	}
	stored, err := s.store.Get(r.Context(), rep.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResolve resolves a report's layout and returns it as JSON.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	rep, err := s.loadReport(r, req.ReportID, req.Report)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		WidthPx:   req.WidthPx,
		Published: req.Published,
		Refresh:   req.Refresh,
	}
	rep, err = s.runner.Hydrate(r.Context(), rep, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	layout, err := s.runner.Resolve(r.Context(), rep, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

// handleValidate runs the editor's publish validation.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	rep, err := s.loadReport(r, req.ReportID, req.Report)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rep, err = s.runner.Hydrate(r.Context(), rep, pipeline.Options{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.validator.ValidateReport(rep))
}

// handleView renders a stored report as SVG at the requested width.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	rep, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Published: true,
		Formats:   []string{pipeline.FormatSVG},
	}
	if v := r.URL.Query().Get("width"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil || width <= 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidDimensions, "invalid width %q", v))
			return
		}
		opts.WidthPx = width
	}

	result, err := s.runner.Execute(r.Context(), rep, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
}

// loadReport returns the inline report, or loads it from the store by id.
func (s *Server) loadReport(r *http.Request, id string, inline *report.Report) (report.Report, error) {
	if inline != nil {
		return *inline, nil
	}
	if id == "" {
		return report.Report{}, errors.New(errors.ErrCodeInvalidInput, "report or report_id is required")
	}
	return s.store.Get(r.Context(), id)
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := httpStatus(code)
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	})
}

// httpStatus maps an error code to a response status.
func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeReportNotFound, errors.ErrCodeChartNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidReport, errors.ErrCodeInvalidBlock,
		errors.ErrCodeInvalidCell, errors.ErrCodeInvalidAspectRatio, errors.ErrCodeInvalidDimensions,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return http.StatusBadGateway
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/couchcryptid/flood-risk-dashboard/internal/domain"
	"github.com/couchcryptid/flood-risk-dashboard/internal/pipeline"
	"github.com/couchcryptid/flood-risk-dashboard/internal/report"
	"github.com/couchcryptid/flood-risk-dashboard/internal/spreadsheet"
)

// reportResponse is the JSON body of a successful /api/reports call.
type reportResponse struct {
	UploadID    string         `json:"upload_id"`
	FileName    string         `json:"file_name"`
	ProcessedAt time.Time      `json:"processed_at"`
	Warning     string         `json:"warning,omitempty"`
	Map         report.MapView `json:"map"`
	Summary     report.Summary `json:"summary"`
}

// errorResponse is the JSON body of a failed /api/reports call.
type errorResponse struct {
	Error   string   `json:"error"`
	Kind    string   `json:"kind"`
	Missing []string `json:"missing,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	if err := s.page.render(w, http.StatusOK, pageData{State: pipeline.StateAwaitingUpload}); err != nil {
		s.logger.Error("render dashboard failed", "error", err)
	}
}

// handleUpload runs the upload through a fresh session and renders whichever
// state it ends in.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	var session pipeline.Session

	upload, err := s.readUpload(w, r)
	if err == nil {
		err = session.Submit(r.Context(), s.dashboard, upload)
	}

	data := pageData{State: session.State(), Result: session.Result()}
	if err != nil {
		status = s.errorStatus(err)
		data.Error = userMessage(err)
		data.Missing = missingColumns(err)
	}
	if err := s.page.render(w, status, data); err != nil {
		s.logger.Error("render dashboard failed", "error", err)
	}
}

func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	upload, err := s.readUpload(w, r)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}

	res, err := s.dashboard.Process(r.Context(), upload)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}

	resp := reportResponse{
		UploadID:    res.UploadID,
		FileName:    res.FileName,
		ProcessedAt: res.ProcessedAt,
		Map:         res.Map,
		Summary:     res.Summary,
	}
	if res.Warning != nil {
		resp.Warning = res.Warning.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTemplate(w http.ResponseWriter, _ *http.Request) {
	data, err := s.dashboard.Template()
	if err != nil {
		s.logger.Error("serve example template failed", "error", err)
		http.Error(w, "example template unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+spreadsheet.ExampleFileName+`"`)
	_, _ = w.Write(data)
}

func (s *Server) writeAPIError(w http.ResponseWriter, err error) {
	kind := pipeline.Outcome(err)
	var upErr *uploadError
	if errors.As(err, &upErr) {
		kind = "bad_request"
	}
	writeJSON(w, s.errorStatus(err), errorResponse{
		Error:   userMessage(err),
		Kind:    kind,
		Missing: missingColumns(err),
	})
}

func (s *Server) errorStatus(err error) int {
	var upErr *uploadError
	if errors.As(err, &upErr) {
		return upErr.status
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("upload processing failed", "error", err)
	}
	return status
}

// userMessage hides internal failures behind a generic message.
func userMessage(err error) string {
	var upErr *uploadError
	if errors.As(err, &upErr) {
		return upErr.msg
	}
	if statusFor(err) == http.StatusInternalServerError {
		return "the upload could not be processed"
	}
	return err.Error()
}

func missingColumns(err error) []string {
	var missing *domain.MissingColumnError
	if errors.As(err, &missing) {
		return missing.Columns
	}
	return nil
}

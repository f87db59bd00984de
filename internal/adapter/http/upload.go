package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/couchcryptid/flood-risk-dashboard/internal/pipeline"
)

const uploadField = "file"

// multipartOverhead is the body allowance beyond the file size cap.
const multipartOverhead = 64 << 10

// uploadError carries the status code for a request that never reached the
// pipeline.
type uploadError struct {
	status int
	msg    string
}

func (e *uploadError) Error() string { return e.msg }

// readUpload extracts the uploaded file from a multipart request, enforcing
// the configured size cap.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (pipeline.Upload, error) {
	// The cap applies to the file itself; the body may also carry multipart
	// boundaries and part headers.
	limit := s.maxUpload + multipartOverhead
	if r.ContentLength > limit {
		return pipeline.Upload{}, s.tooLarge()
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return pipeline.Upload{}, s.tooLarge()
		case errors.Is(err, http.ErrMissingFile):
			return pipeline.Upload{}, &uploadError{status: http.StatusBadRequest, msg: "choose a spreadsheet to upload"}
		default:
			return pipeline.Upload{}, &uploadError{status: http.StatusBadRequest, msg: "malformed upload form"}
		}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return pipeline.Upload{}, &uploadError{status: http.StatusBadRequest, msg: "could not read the uploaded file"}
	}
	if int64(len(data)) > s.maxUpload {
		return pipeline.Upload{}, s.tooLarge()
	}
	if len(data) == 0 {
		return pipeline.Upload{}, &uploadError{status: http.StatusBadRequest, msg: "the uploaded file is empty"}
	}
	return pipeline.Upload{FileName: header.Filename, Data: data}, nil
}

func (s *Server) tooLarge() *uploadError {
	return &uploadError{
		status: http.StatusRequestEntityTooLarge,
		msg:    fmt.Sprintf("the file is larger than %s MB", megabytes(s.maxUpload)),
	}
}

// statusFor maps a pipeline error to an HTTP status.
func statusFor(err error) int {
	switch pipeline.Outcome(err) {
	case pipeline.OutcomeMissingColumns, pipeline.OutcomeParseError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

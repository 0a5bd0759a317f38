package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"resaleops/internal/api"
	"resaleops/internal/domain"
)

func writeError(w http.ResponseWriter, status int, code, msg string) {
	body, err := json.Marshal(api.Error{Error: msg, Code: code})
	if err != nil {
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Client may have gone away; nothing left to report to it.
	_, _ = w.Write(body)
}

// statusFor maps the domain error taxonomy onto HTTP.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrRetryExhausted):
		return http.StatusUnprocessableEntity, "retry_exhausted"
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusUnprocessableEntity, "invalid_state"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// badRequest handles parameter binding and body decoding failures raised by
// the generated handlers.
func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.fail(w, r, domain.Validationf("request body too large"))
		return
	}
	s.fail(w, r, domain.Validationf("%v", err))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	entry := s.log.WithError(err).WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path, "code": code})
	if status >= 500 {
		entry.Error("request failed")
		writeError(w, status, code, "internal error")
		return
	}
	entry.Info("request rejected")
	writeError(w, status, code, err.Error())
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bensonglobal/meridian/pkg/errors"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
	maxBodyBytes  = 64 << 10
)

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	switch {
	case errors.IsValidation(err):
		s.logger.Debug("rejected request", "path", r.URL.Path, "err", err, "id", RequestID(r.Context()))
	case status >= 500:
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorBody{Error: errors.UserMessage(err), Code: code, RequestID: RequestID(r.Context())})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeUnknownHub, errors.ErrCodeUnknownPlatform:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDimension, errors.ErrCodeInvalidCoordinate,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidDataset:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidState:
		return http.StatusConflict
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnavailable, errors.ErrCodeNetwork:
		return http.StatusServiceUnavailable
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}

func queryUint(r *http.Request, name string, def uint64) (uint64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a non-negative integer, got %q", name, v)
	}
	return n, nil
}

func queryBool(r *http.Request, name string) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// queryTime accepts seconds ("2.5") or a Go duration ("2500ms").
func queryTime(r *http.Request, name string) (time.Duration, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be seconds or a duration, got %q", name, v)
	}
	return d, nil
}

func dims(r *http.Request) (int, int, error) {
	w, err := queryInt(r, "width", defaultWidth)
	if err != nil {
		return 0, 0, err
	}
	h, err := queryInt(r, "height", defaultHeight)
	if err != nil {
		return 0, 0, err
	}
	if err := errors.ValidateDimensions(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

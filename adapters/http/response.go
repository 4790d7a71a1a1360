package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"tradecalc/internal/errors"
)

// Response is the envelope of every JSON response
type Response struct {
	RequestID string        `json:"request_id"`
	Status    string        `json:"status"`
	Data      interface{}   `json:"data,omitempty"`
	Errors    []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail describes one error
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

const (
	statusOK      = "ok"
	statusPartial = "partial"
	statusError   = "error"
)

// statusFor maps an error type to an HTTP status
func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeInput, errors.TypeParsing, errors.TypeNotSupported:
		return http.StatusBadRequest
	case errors.TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func detailFor(err error) ErrorDetail {
	if e, ok := errors.As(err); ok {
		msg := e.Message
		if e.Cause != nil && e.Type != errors.TypeInternal {
			msg += ": " + e.Cause.Error()
		}
		return ErrorDetail{Code: string(e.Type), Message: msg, Context: e.Context}
	}
	return ErrorDetail{Code: string(errors.TypeInternal), Message: err.Error()}
}

func errorResponse(r *http.Request, code, message string) Response {
	return Response{
		RequestID: RequestID(r.Context()),
		Status:    statusError,
		Errors:    []ErrorDetail{{Code: code, Message: message}},
	}
}

func (a *Adapter) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(errors.TypeOf(err))
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
	}
	writeJSON(w, status, Response{
		RequestID: RequestID(r.Context()),
		Status:    statusError,
		Errors:    []ErrorDetail{detailFor(err)},
	})
}

func (a *Adapter) writeData(w http.ResponseWriter, r *http.Request, status string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		RequestID: RequestID(r.Context()),
		Status:    status,
		Data:      data,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","errors":[{"code":"INTERNAL_ERROR","message":"response encoding failed"}]}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

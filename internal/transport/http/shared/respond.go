// Package shared holds response helpers used by every HTTP handler.
package shared

import (
	"encoding/json"
	"net/http"

	"fleetgate/internal/validation"
	dErrors "fleetgate/pkg/domain-errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type fieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type rejectionResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Fields []fieldError `json:"fields"`
}

// WriteJSON writes value as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// WriteError translates a domain error into a JSON error envelope.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	code := dErrors.CodeInternal
	message := "internal error"
	if dErrors.As(err, &domainErr) {
		code = domainErr.Code
		message = domainErr.Message
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), errorResponse{
		Error: message,
		Code:  string(code),
	})
}

// WriteRejection reports a submission rejected by field validation. The
// per-field entries keep declaration order.
func WriteRejection(w http.ResponseWriter, errs []validation.Error) {
	fields := make([]fieldError, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, fieldError{
			Field:   e.Field,
			Code:    string(e.Code),
			Message: e.Message(),
		})
	}
	WriteJSON(w, http.StatusUnprocessableEntity, rejectionResponse{
		Error:  "validation failed",
		Code:   string(dErrors.CodeValidation),
		Fields: fields,
	})
}

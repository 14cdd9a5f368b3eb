// Package response writes the JSON envelope every API endpoint answers with.
//
// Success and failure share one shape:
//
//	{ "success": true,  "data": {...} }
//	{ "success": true,  "data": [...], "count": 2 }
//	{ "success": false, "message": "Validation error", "errors": ["\"age\" is required"] }
package response

import (
	"encoding/json"
	"net/http"
)

// Response is the standard envelope.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Count   *int     `json:"count,omitempty"`
	Errors  []string `json:"errors,omitempty"`

	// Error carries the underlying error text on 500s outside production.
	Error string `json:"error,omitempty"`
}

const MsgValidation = "Validation error"

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK wraps a single record.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// List wraps a collection and its size.
func List[T any](items []T) Response {
	n := len(items)
	if items == nil {
		items = []T{}
	}
	return Response{Success: true, Data: items, Count: &n}
}

// Message is a success without a payload, e.g. after a delete.
func Message(msg string) Response {
	return Response{Success: true, Message: msg}
}

// Fail is a failure with a single message.
func Fail(msg string) Response {
	return Response{Success: false, Message: msg}
}

// GeneralError reports an error by its text.
func GeneralError(err error) Response {
	return Fail(err.Error())
}

// ValidationError reports every failing field at once.
func ValidationError(errs []string) Response {
	return Response{Success: false, Message: MsgValidation, Errors: errs}
}

// Internal reports an unexpected failure. The error text is attached only
// when detail is set.
func Internal(msg string, err error, detail bool) Response {
	resp := Fail(msg)
	if detail && err != nil {
		resp.Error = err.Error()
	}
	return resp
}

package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform wrapper every endpoint responds with. Code
// mirrors the HTTP status of the response.
type Envelope struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// JSON writes the envelope with the given status, data, and message.
func JSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{
		Code:    status,
		Data:    data,
		Message: message,
	})
}

// BadRequest is the generic failure response for unexpected store errors.
func BadRequest(w http.ResponseWriter) {
	JSON(w, http.StatusBadRequest, nil, "Bad request : something went wrong")
}

package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/veridex/lookup-gateway/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Lookup *LookupController
	Admin  *AdminController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Lookup: NewLookupController(services),
		Admin:  NewAdminController(services),
	}
}

// writeJSON renders data as a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeError renders a JSON error message with the given status code
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"message": message})
}

package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veridex/lookup-gateway/services"
)

// AdminController handles the administrative surface: account listing,
// bulk credit adjustment, and deny-list management.
type AdminController struct {
	services *services.Services
}

// NewAdminController creates a new admin controller
func NewAdminController(services *services.Services) *AdminController {
	return &AdminController{services: services}
}

// ListUsers handles GET /admin/users
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := c.services.Accounts.GetAll(r.Context())
	if err != nil {
		log.Printf("failed to list accounts: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}

// CreditAdjustRequest is the request body for POST /admin/credits
type CreditAdjustRequest struct {
	Amount int `json:"amount"`
}

// AdjustCredits handles POST /admin/credits
func (c *AdminController) AdjustCredits(w http.ResponseWriter, r *http.Request) {
	var req CreditAdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := c.services.Ledger.BulkAdjust(r.Context(), req.Amount)
	if err != nil {
		log.Printf("failed to adjust credits by %d: %v", req.Amount, err)
		writeError(w, http.StatusInternalServerError, "failed to adjust credits")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

// ListProtected handles GET /admin/protected
func (c *AdminController) ListProtected(w http.ResponseWriter, r *http.Request) {
	numbers, err := c.services.DenyList.ListNumbers(r.Context())
	if err != nil {
		log.Printf("failed to list protected numbers: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list protected numbers")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"numbers": numbers})
}

// ProtectedRequest is the request body for POST /admin/protected
type ProtectedRequest struct {
	Number string `json:"number"`
	Reason string `json:"reason,omitempty"`
}

// AddProtected handles POST /admin/protected
func (c *AdminController) AddProtected(w http.ResponseWriter, r *http.Request) {
	var req ProtectedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Number == "" {
		writeError(w, http.StatusBadRequest, "number is required")
		return
	}

	if err := c.services.DenyList.Add(r.Context(), req.Number, req.Reason); err != nil {
		log.Printf("failed to protect number: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to protect number")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"number": req.Number})
}

// RemoveProtected handles DELETE /admin/protected/{number}
func (c *AdminController) RemoveProtected(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "number is required")
		return
	}

	if err := c.services.DenyList.Remove(r.Context(), number); err != nil {
		log.Printf("failed to unprotect number: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to unprotect number")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

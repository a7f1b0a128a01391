package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/veridex/lookup-gateway/repositories"
	"github.com/veridex/lookup-gateway/services"
	"github.com/veridex/lookup-gateway/userctx"
)

// LookupController handles the authenticated user surface
type LookupController struct {
	services *services.Services
}

// NewLookupController creates a new lookup controller
func NewLookupController(services *services.Services) *LookupController {
	return &LookupController{services: services}
}

// LookupRequest is the request body for POST /api/lookup
type LookupRequest struct {
	Service string `json:"service"`
	Query   string `json:"query"`
}

// Lookup handles POST /api/lookup
func (c *LookupController) Lookup(w http.ResponseWriter, r *http.Request) {
	accountID := userctx.GetAccountID(r.Context())
	if accountID == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Service == "" || req.Query == "" {
		writeError(w, http.StatusBadRequest, "service and query are required")
		return
	}

	outcome, err := c.services.Gatekeeper.Handle(r.Context(), accountID, req.Service, req.Query)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, "account not found")
			return
		}
		log.Printf("lookup request failed for account %s: %v", accountID, err)
		writeError(w, http.StatusInternalServerError, "lookup request failed")
		return
	}

	// Denial and insufficient credit are structured outcomes carried in
	// the body, not transport errors.
	writeJSON(w, http.StatusOK, outcome)
}

// History handles GET /api/history
func (c *LookupController) History(w http.ResponseWriter, r *http.Request) {
	accountID := userctx.GetAccountID(r.Context())
	if accountID == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	entries, err := c.services.Accounts.GetHistory(r.Context(), accountID)
	if err != nil {
		log.Printf("failed to load history for account %s: %v", accountID, err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Me handles GET /api/me
func (c *LookupController) Me(w http.ResponseWriter, r *http.Request) {
	accountID := userctx.GetAccountID(r.Context())
	if accountID == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	account, err := c.services.Accounts.Get(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, "account not found")
			return
		}
		log.Printf("failed to load account %s: %v", accountID, err)
		writeError(w, http.StatusInternalServerError, "failed to load account")
		return
	}

	writeJSON(w, http.StatusOK, account)
}

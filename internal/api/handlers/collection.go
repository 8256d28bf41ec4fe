// Package handlers implements the HTTP API handlers.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tumkwe/invest/internal/collect"
	"github.com/tumkwe/invest/internal/contracts"
	"github.com/tumkwe/invest/pkg/logger"
)

// CollectionHandler handles collection API endpoints.
type CollectionHandler struct {
	manager *collect.Manager
	logger  *logger.Logger
}

// NewCollectionHandler creates a new collection handler.
func NewCollectionHandler(manager *collect.Manager, log *logger.Logger) *CollectionHandler {
	return &CollectionHandler{
		manager: manager,
		logger:  log,
	}
}

// GetSummary returns the combined validation report across all stored
// reports.
// GET /api/collection/summary
func (h *CollectionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.manager.Summary())
}

// GetReports returns the latest validation report per (data type,
// symbol).
// GET /api/collection/reports
func (h *CollectionHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reports": h.manager.Reports(),
	})
}

// GetSymbols returns the monitored symbols.
// GET /api/collection/symbols
func (h *CollectionHandler) GetSymbols(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbols": h.manager.Symbols(),
	})
}

// SymbolRequest is the add-symbol request body.
type SymbolRequest struct {
	Symbol string `json:"symbol"`
}

// AddSymbol starts monitoring a symbol.
// POST /api/collection/symbols
func (h *CollectionHandler) AddSymbol(w http.ResponseWriter, r *http.Request) {
	var req SymbolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	h.manager.AddSymbol(symbol)
	respondJSON(w, http.StatusCreated, map[string]string{
		"status": "added",
		"symbol": symbol,
	})
}

// RemoveSymbol stops monitoring a symbol.
// DELETE /api/collection/symbols/{symbol}
func (h *CollectionHandler) RemoveSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	h.manager.RemoveSymbol(symbol)
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "removed",
		"symbol": symbol,
	})
}

// GetTasks returns every scheduled task.
// GET /api/collection/tasks
func (h *CollectionHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": h.manager.Tasks(),
	})
}

// CollectRequest is the immediate-collection request body.
type CollectRequest struct {
	Symbol    string   `json:"symbol"`
	DataTypes []string `json:"data_types,omitempty"` // empty means all
}

// Collect triggers immediate collection for one symbol, regardless of
// schedule. Collection runs in the background; the response only
// acknowledges the trigger.
// POST /api/collection/collect
func (h *CollectionHandler) Collect(w http.ResponseWriter, r *http.Request) {
	var req CollectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	dataTypes := make([]contracts.DataType, 0, len(req.DataTypes))
	for _, dt := range req.DataTypes {
		dataType := contracts.DataType(dt)
		if !dataType.Valid() {
			respondError(w, http.StatusBadRequest, "Unknown data type: "+dt)
			return
		}
		dataTypes = append(dataTypes, dataType)
	}

	go func() {
		if err := h.manager.CollectNow(context.Background(), symbol, dataTypes...); err != nil {
			h.logger.WithError(err).WithField("symbol", symbol).Error("Triggered collection failed")
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status": "collection started",
		"symbol": symbol,
	})
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

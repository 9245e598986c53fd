package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront-gateway/src/config"
	"storefront-gateway/src/gateway"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
	"storefront-gateway/src/pricing"

	"github.com/gorilla/mux"
)

// -----------------------------------------------------------------------------
// APIServer exposes the gateway control surface and the pricing validation
// endpoints over HTTP.
// -----------------------------------------------------------------------------

type APIServer struct {
	Name       string
	Config     *config.Config
	Logger     *logger.Logger
	Gateway    *gateway.Gateway
	Reconciler *pricing.Reconciler

	server *http.Server
}

// -----------------------------------------------------------------------------

// NewAPIServer creates a new APIServer instance
func NewAPIServer(cfg *config.Config, log *logger.Logger, gw *gateway.Gateway, reconciler *pricing.Reconciler) *APIServer {
	return &APIServer{
		Name:       "RESTAPIServer",
		Config:     cfg,
		Logger:     log,
		Gateway:    gw,
		Reconciler: reconciler,
	}
}

// -----------------------------------------------------------------------------

// Router builds the mux router with all API routes registered.
func (a *APIServer) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", a.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/streams", a.handleListStreams).Methods(http.MethodGet)
	api.HandleFunc("/streams/{name}/status", a.handleStreamStatus).Methods(http.MethodGet)
	api.HandleFunc("/streams/{name}/subscribe", a.handleSubscribe).Methods(http.MethodPost)
	api.HandleFunc("/streams/{name}/unsubscribe", a.handleUnsubscribe).Methods(http.MethodPost)
	api.HandleFunc("/pricing/validate", a.handleValidatePrices).Methods(http.MethodPost)
	api.HandleFunc("/pricing/cart/validate", a.handleValidateCart).Methods(http.MethodPost)

	return r
}

// -----------------------------------------------------------------------------

// Start runs the HTTP server; it blocks until the server stops.
func (a *APIServer) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)

	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	a.Logger.Info("%s : listening on %s", a.Name, addr)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("rest server failed: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// Stop shuts the HTTP server down.
func (a *APIServer) Stop() error {
	if a.server == nil {
		return nil
	}
	return a.server.Close()
}

// -----------------------------------------------------------------------------
// Stream Handlers
// -----------------------------------------------------------------------------

func (a *APIServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// -----------------------------------------------------------------------------

func (a *APIServer) handleListStreams(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]any{"streams": a.Gateway.ListStreams()})
}

// -----------------------------------------------------------------------------

func (a *APIServer) handleStreamStatus(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	status, err := a.Gateway.GetStreamStatus(name)
	if err != nil {
		a.writeError(w, http.StatusNotFound, err)
		return
	}
	a.writeJSON(w, http.StatusOK, status)
}

// -----------------------------------------------------------------------------

// subscriptionRequest is the body of subscribe/unsubscribe calls.
type subscriptionRequest struct {
	Topics []string `json:"topics"`
}

func (a *APIServer) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(req.Topics) == 0 {
		a.writeError(w, http.StatusBadRequest, fmt.Errorf("topics list cannot be empty"))
		return
	}

	if err := a.Gateway.SubscribeStream(name, req.Topics); err != nil {
		a.writeError(w, http.StatusNotFound, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"subscribed": req.Topics})
}

// -----------------------------------------------------------------------------

func (a *APIServer) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(req.Topics) == 0 {
		a.writeError(w, http.StatusBadRequest, fmt.Errorf("topics list cannot be empty"))
		return
	}

	if err := a.Gateway.UnSubscribeStream(name, req.Topics); err != nil {
		a.writeError(w, http.StatusNotFound, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"unsubscribed": req.Topics})
}

// -----------------------------------------------------------------------------
// Pricing Handlers
// -----------------------------------------------------------------------------

// validatePricesRequest carries a client estimate and the authoritative
// server breakdown to reconcile against.
type validatePricesRequest struct {
	ClientEstimate  *models.MClientEstimate `json:"client_estimate"`
	ServerBreakdown *models.MPriceBreakdown `json:"server_breakdown"`
}

// validatePricesResponse adds staleness and display data on top of the raw
// validation result.
type validatePricesResponse struct {
	Result    *models.MValidationResult   `json:"result"`
	Stale     bool                        `json:"stale"`
	Formatted *models.MFormattedBreakdown `json:"formatted"`
	Summary   string                      `json:"summary"`
}

func (a *APIServer) handleValidatePrices(w http.ResponseWriter, r *http.Request) {
	var req validatePricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.ServerBreakdown == nil {
		a.writeError(w, http.StatusBadRequest, fmt.Errorf("server_breakdown is required"))
		return
	}

	result := a.Reconciler.ValidatePrices(req.ClientEstimate, req.ServerBreakdown)

	// Failed reconciliations are relayed for auditing; delivery failures
	// never affect the API response.
	if !result.IsValid {
		a.Gateway.Publisher.OnDiscrepancy(req.ServerBreakdown, result)
	}

	a.writeJSON(w, http.StatusOK, &validatePricesResponse{
		Result:    result,
		Stale:     a.Reconciler.IsStale(req.ServerBreakdown.CalculatedAt),
		Formatted: pricing.FormatBreakdown(req.ServerBreakdown),
		Summary:   pricing.Summary(req.ServerBreakdown),
	})
}

// -----------------------------------------------------------------------------

func (a *APIServer) handleValidateCart(w http.ResponseWriter, r *http.Request) {
	var items []models.MCartLineItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		a.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	reports := make([]*models.MCartIssueReport, 0, len(items))
	valid := true
	for i := range items {
		report := a.Reconciler.ValidateCartItem(&items[i])
		if !report.IsValid {
			valid = false
		}
		reports = append(reports, report)
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"is_valid": valid,
		"items":    reports,
	})
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func (a *APIServer) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.Logger.Error("%s : failed to encode response: %v", a.Name, err)
	}
}

func (a *APIServer) writeError(w http.ResponseWriter, code int, err error) {
	a.writeJSON(w, code, map[string]string{"error": err.Error()})
}

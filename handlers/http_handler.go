// Package handlers provides the HTTP handlers of the AI service: disease
// forecasts, medicine recommendations, restock plans, observed statistics,
// drug interaction checks and health.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/medicore/ai-service/catalog"
	"github.com/medicore/ai-service/interfaces"
	"github.com/medicore/ai-service/logging"
	"github.com/medicore/ai-service/metrics"
	"github.com/medicore/ai-service/prediction"
)

const (
	defaultRegion    = "Neelambur"
	defaultDaysAhead = 30
	defaultStatsDays = 30
)

// Dependencies are the collaborators injected into the handler
type Dependencies struct {
	DataStore   interfaces.DataStore
	Predictor   interfaces.Predictor
	Recommender interfaces.MedicineRecommender
	Checker     interfaces.InteractionChecker
	Planner     interfaces.RestockPlanner
	Backend     interfaces.BackendClient
	Health      interfaces.HealthChecker
	Validator   interfaces.InputValidator
}

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	Dependencies
	now func() time.Time
}

var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(deps Dependencies) interfaces.HTTPHandler {
	return &HTTPHandlerImpl{
		Dependencies: deps,
		now:          time.Now,
	}
}

type predictRequest struct {
	Region    *string `json:"region"`
	DaysAhead *int    `json:"days_ahead"`
}

type medicineRequest struct {
	Disease string `json:"disease"`
}

type drugsRequest struct {
	Drugs []string `json:"drugs"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err, "payload_type", fmt.Sprintf("%T", payload))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// decodeBody decodes a JSON body into dst. An empty body leaves dst untouched.
// It writes the error response itself and reports whether decoding succeeded.
func (h *HTTPHandlerImpl) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		h.RespondWithError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Request body too large. Maximum allowed size is %d bytes", maxErr.Limit))
		return false
	}

	logging.Warn("Malformed request body", "path", r.URL.Path, "error", err)
	h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
	return false
}

// respondPredictError maps prediction errors onto HTTP responses
func (h *HTTPHandlerImpl) respondPredictError(w http.ResponseWriter, err error) {
	var notFound *prediction.NotFoundError
	if errors.As(err, &notFound) {
		h.RespondWithError(w, http.StatusBadRequest, notFound.Error())
		return
	}
	logging.Error("Prediction failed", "error", err)
	h.RespondWithError(w, http.StatusInternalServerError, "Prediction failed")
}

func predictionMode(region string) string {
	if region == catalog.OverallRegion {
		return "aggregate"
	}
	return "region"
}

// PredictDisease forecasts disease cases for a region or for all regions
func (h *HTTPHandlerImpl) PredictDisease(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	region := defaultRegion
	if req.Region != nil {
		region = *req.Region
	}
	days := defaultDaysAhead
	if req.DaysAhead != nil {
		days = *req.DaysAhead
	}

	if err := h.Validator.ValidateRegion(region); err != nil {
		logging.Warn("Unusual user input", "region", region)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.Predictor.Predict(region, days, h.now().Month())
	if err != nil {
		h.respondPredictError(w, err)
		return
	}

	metrics.PredictionsTotal.WithLabelValues(predictionMode(region)).Inc()
	h.RespondWithJSON(w, http.StatusOK, report)
}

// RecommendMedicine suggests medicines for a disease
func (h *HTTPHandlerImpl) RecommendMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.Validator.ValidateDisease(req.Disease); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondWithJSON(w, http.StatusOK, h.Recommender.ForDisease(req.Disease))
}

// ServeRestock returns the latest restock plan. Before the first refresh
// completes the plan is computed on demand.
func (h *HTTPHandlerImpl) ServeRestock(w http.ResponseWriter, r *http.Request) {
	plan := h.DataStore.GetRestockPlan()
	if len(plan.Recommendations) == 0 {
		plan = h.Planner.Plan(r.Context())
	}
	h.RespondWithJSON(w, http.StatusOK, plan)
}

// ServeRealStats projects observed case counts from the backend, falling back
// to the simulated forecast when the backend has nothing usable.
func (h *HTTPHandlerImpl) ServeRealStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	region := catalog.OverallRegion
	if v := query.Get("region"); v != "" {
		region = v
	}
	days := defaultStatsDays
	if v := query.Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.RespondWithError(w, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		days = n
	}

	if err := h.Validator.ValidateRegion(region); err != nil {
		logging.Warn("Unusual user input", "region", region)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.Backend != nil && h.Backend.Configured() {
		counts, err := h.Backend.FetchDiseaseStats(r.Context(), days)
		if err == nil {
			var report prediction.Report
			report, err = prediction.FromObservedCounts(counts, region, days)
			if err == nil {
				metrics.PredictionsTotal.WithLabelValues("observed").Inc()
				h.RespondWithJSON(w, http.StatusOK, report)
				return
			}
		}
		logging.Warn("Observed stats unavailable, using simulated forecast", "region", region, "error", err)
	}

	report, err := h.Predictor.Predict(region, days, h.now().Month())
	if err != nil {
		h.respondPredictError(w, err)
		return
	}
	report.DataSource = prediction.SourceSimulated

	metrics.PredictionsTotal.WithLabelValues(predictionMode(region)).Inc()
	h.RespondWithJSON(w, http.StatusOK, report)
}

func (h *HTTPHandlerImpl) decodeDrugs(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req drugsRequest
	if !h.decodeBody(w, r, &req) {
		return nil, false
	}
	if req.Drugs == nil {
		h.RespondWithError(w, http.StatusBadRequest, "drugs is required")
		return nil, false
	}
	if err := h.Validator.ValidateDrugList(req.Drugs); err != nil {
		logging.Warn("Unusual user input", "drugs", len(req.Drugs), "error", err)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return req.Drugs, true
}

// ScreenInteractions runs the loose substring screen over the known interactions
func (h *HTTPHandlerImpl) ScreenInteractions(w http.ResponseWriter, r *http.Request) {
	drugs, ok := h.decodeDrugs(w, r)
	if !ok {
		return
	}

	report := h.Checker.Screen(drugs)
	metrics.InteractionChecksTotal.WithLabelValues("screen", metrics.CheckResult(report.Safe)).Inc()
	h.RespondWithJSON(w, http.StatusOK, report)
}

// CheckInteractions normalizes drug names and matches every pair exactly
func (h *HTTPHandlerImpl) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	drugs, ok := h.decodeDrugs(w, r)
	if !ok {
		return
	}

	report := h.Checker.Check(drugs)
	metrics.InteractionChecksTotal.WithLabelValues("normalized", metrics.CheckResult(report.Safe)).Inc()
	h.RespondWithJSON(w, http.StatusOK, report)
}

// HealthCheck returns service and model health
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.Health.HealthCheck()
	details["status"] = status
	h.RespondWithJSON(w, httpStatus, details)
}

// ServePerformance returns the static model performance figures
func (h *HTTPHandlerImpl) ServePerformance(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, h.Health.Performance())
}

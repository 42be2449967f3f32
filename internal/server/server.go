package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/output"
	"github.com/iwvelando/loan-amortization/pkg/propertytax"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request identifier echoed in responses and logs.
const RequestIDHeader = "X-Request-ID"

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	validate       *validator.Validate
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		validate:       validator.New(),
	}

	mux := http.NewServeMux()

	// Loan summary and amortization schedule
	mux.HandleFunc("/api/amortization", h.handleAmortization)

	// Monthly property tax estimate
	mux.HandleFunc("/api/property-tax", h.handlePropertyTax)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return h.withRequestID(mux)
}

type amortizationRequest struct {
	Principal  float64 `json:"principal" validate:"gt=0"`
	AnnualRate float64 `json:"annualRate" validate:"gte=0,lte=100"`
	Years      int     `json:"years" validate:"gt=0,lte=100"` // constants.MaxTermYears
}

type amortizationResponse struct {
	output.Document
	Duration string `json:"duration"`
}

type propertyTaxRequest struct {
	PurchasePrice float64 `json:"purchasePrice" validate:"gte=0"`
}

func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("request served",
			zap.String("op", "server.withRequestID"),
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) handleAmortization(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAmortization"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req amortizationRequest
	if status, err := h.decode(w, r, &req); err != nil {
		h.respondErrorWithOp(w, r, status, err.Error(), op)
		return
	}

	terms := amortization.MonthlyTerms(req.Principal, req.AnnualRate, req.Years)

	summary, err := amortization.SummarizeTerms(terms)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	schedule, err := amortization.NewScheduleGenerator(h.logger).Generate(terms)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprintf(w, "%s\n%s\n", summary.String(), amortization.RenderTable(schedule)); err != nil {
			h.logger.Error("failed to write text response",
				zap.String("op", op),
				zap.Error(err),
			)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, amortizationResponse{
		Document: output.NewLoanDocument(summary, schedule),
		Duration: time.Since(start).String(),
	})
}

func (h *handler) handlePropertyTax(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePropertyTax"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req propertyTaxRequest
	if status, err := h.decode(w, r, &req); err != nil {
		h.respondErrorWithOp(w, r, status, err.Error(), op)
		return
	}

	estimate, err := propertytax.NewEstimate(req.PurchasePrice)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, output.NewPropertyTaxDocument(estimate))
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decode reads a size-limited JSON body into dst and validates it. The
// returned status applies when err is non-nil.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request exceeds limit of %d bytes", h.maxRequestSize)
		}
		return http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err)
	}

	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
			}
			return http.StatusBadRequest, fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
		}
		return http.StatusBadRequest, fmt.Errorf("invalid request: %v", err)
	}
	return 0, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("request_id", w.Header().Get(RequestIDHeader)),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

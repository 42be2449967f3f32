package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"go.uber.org/zap"
)

func performJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleAmortizationSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxRequestSizeBytes, "1.2.3")

	rr := performJSON(t, handler, http.MethodPost, "/api/amortization",
		`{"principal": 1000000, "annualRate": 7, "years": 30}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp amortizationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Summary.PeriodicPayment.StringFixed(2) != "6653.02" {
		t.Fatalf("expected periodic payment 6653.02, got %s", resp.Summary.PeriodicPayment)
	}
	if resp.Summary.NumPayments != 360 {
		t.Fatalf("expected 360 payments, got %d", resp.Summary.NumPayments)
	}
	if len(resp.Schedule) != 360 {
		t.Fatalf("expected 360 periods, got %d", len(resp.Schedule))
	}
	if resp.Schedule[359].RemainingPrincipal.StringFixed(2) != "0.00" {
		t.Fatalf("expected final remaining principal 0.00, got %s", resp.Schedule[359].RemainingPrincipal)
	}
	if resp.PropertyTax != nil {
		t.Fatal("expected no property tax in amortization response")
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
}

func TestHandleAmortizationZeroRate(t *testing.T) {
	handler := NewHandler(zap.NewNop(), 0, "")

	rr := performJSON(t, handler, http.MethodPost, "/api/amortization",
		`{"principal": 12000, "annualRate": 0, "years": 1}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp amortizationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Summary.PeriodicPayment.StringFixed(2) != "1000.00" {
		t.Fatalf("expected periodic payment 1000.00, got %s", resp.Summary.PeriodicPayment)
	}
	for _, period := range resp.Schedule {
		if !period.Interest.IsZero() {
			t.Fatalf("period %d has interest %s, expected 0", period.Period, period.Interest)
		}
	}
}

func TestHandleAmortizationText(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxRequestSizeBytes, "")

	rr := performJSON(t, handler, http.MethodPost, "/api/amortization?format=text",
		`{"principal": 1000000, "annualRate": 7, "years": 30}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("expected text/plain content type, got %q", rr.Header().Get("Content-Type"))
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Total interest     1,395,088.98") {
		t.Fatalf("expected summary in text response, got %q", body[:200])
	}
	if !strings.Contains(body, "Period     Payment   Principal") {
		t.Fatal("expected table header in text response")
	}
}

func TestHandleAmortizationInvalid(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxRequestSizeBytes, "")

	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"Zero principal", `{"principal": 0, "annualRate": 7, "years": 30}`, "Principal"},
		{"Negative rate", `{"principal": 1000, "annualRate": -1, "years": 30}`, "AnnualRate"},
		{"Zero years", `{"principal": 1000, "annualRate": 7, "years": 0}`, "Years"},
		{"Term over 100 years", `{"principal": 1000, "annualRate": 7, "years": 101}`, "Years failed lte=100"},
		{"Term overflowing the payment count", `{"principal": 1000, "annualRate": 7, "years": 1537228672809129302}`, "Years failed lte=100"},
		{"Unknown field", `{"principal": 1000, "annualRate": 7, "years": 30, "balloon": 5}`, "invalid request body"},
		{"Malformed JSON", `{"principal": `, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := performJSON(t, handler, http.MethodPost, "/api/amortization", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}

			var resp map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if !strings.Contains(resp["error"], tt.contains) {
				t.Fatalf("expected error mentioning %q, got %q", tt.contains, resp["error"])
			}
		})
	}
}

func TestHandleAmortizationTermBoundary(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxRequestSizeBytes, "")

	body := fmt.Sprintf(`{"principal": 100000, "annualRate": 100, "years": %d}`, constants.MaxTermYears)
	rr := performJSON(t, handler, http.MethodPost, "/api/amortization", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 at the maximum term, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp amortizationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Schedule) != constants.MaxTermYears*constants.MonthsPerYear {
		t.Fatalf("expected %d periods, got %d", constants.MaxTermYears*constants.MonthsPerYear, len(resp.Schedule))
	}
	if resp.Schedule[len(resp.Schedule)-1].RemainingPrincipal.StringFixed(2) != "0.00" {
		t.Fatalf("expected final remaining principal 0.00, got %s", resp.Schedule[len(resp.Schedule)-1].RemainingPrincipal)
	}

	body = fmt.Sprintf(`{"principal": 100000, "annualRate": 7, "years": %d}`, constants.MaxTermYears+1)
	rr = performJSON(t, handler, http.MethodPost, "/api/amortization?format=text", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 past the maximum term, got %d", rr.Code)
	}
}

func TestHandleAmortizationTooLarge(t *testing.T) {
	handler := NewHandler(zap.NewNop(), 16, "")

	rr := performJSON(t, handler, http.MethodPost, "/api/amortization",
		`{"principal": 1000000, "annualRate": 7, "years": 30}`)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandlePropertyTax(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxRequestSizeBytes, "")

	rr := performJSON(t, handler, http.MethodPost, "/api/property-tax", `{"purchasePrice": 1000000}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		PurchasePrice string `json:"purchasePrice"`
		MonthlyTax    string `json:"monthlyTax"`
		AnnualTax     string `json:"annualTax"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.MonthlyTax != "1041.67" {
		t.Fatalf("expected monthly tax 1041.67, got %s", resp.MonthlyTax)
	}
	if resp.AnnualTax != "12500" {
		t.Fatalf("expected annual tax 12500, got %s", resp.AnnualTax)
	}

	rr = performJSON(t, handler, http.MethodPost, "/api/property-tax", `{"purchasePrice": -5}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for negative price, got %d", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxRequestSizeBytes, "")

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/amortization"},
		{http.MethodGet, "/api/property-tax"},
		{http.MethodPost, "/api/version"},
	}

	for _, tt := range tests {
		rr := performJSON(t, handler, tt.method, tt.path, "")
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected status 405, got %d", tt.method, tt.path, rr.Code)
		}
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxRequestSizeBytes, " 1.2.3 ")

	rr := performJSON(t, handler, http.MethodGet, "/api/version", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "1.2.3" {
		t.Fatalf("expected version 1.2.3, got %q", resp["version"])
	}

	rr = performJSON(t, NewHandler(nil, 0, ""), http.MethodGet, "/api/version", "")
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "dev" {
		t.Fatalf("expected default version dev, got %q", resp["version"])
	}
}

func TestRequestID(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxRequestSizeBytes, "")

	rr := performJSON(t, handler, http.MethodGet, "/api/version", "")
	if rr.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected a generated request ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected caller request ID to be echoed, got %q", rr.Header().Get(RequestIDHeader))
	}
}

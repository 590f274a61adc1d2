package api

import (
	"time"

	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

// QuoteResponse is the body of a successful quote.
type QuoteResponse struct {
	CorrelationID  string                 `json:"correlationId"`
	Scenario       string                 `json:"scenario"`
	VendorQuoteIDs []string               `json:"vendorQuoteIds,omitempty"`
	Pricing        model.CanonicalPricing `json:"pricing"`
	QuotedAt       time.Time              `json:"quotedAt"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error       string             `json:"error"`
	Kind        string             `json:"kind,omitempty"`
	Source      string             `json:"source,omitempty"`
	VendorError *VendorErrorDetail `json:"vendorError,omitempty"`
}

// VendorErrorDetail carries what BT Wholesale reported.
type VendorErrorDetail struct {
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message,omitempty"`
}

func toQuoteResponse(r *model.QuoteResult) QuoteResponse {
	return QuoteResponse{
		CorrelationID:  r.CorrelationID,
		Scenario:       r.Scenario,
		VendorQuoteIDs: r.VendorQuoteIDs,
		Pricing:        r.Pricing,
		QuotedAt:       r.QuotedAt,
	}
}

package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed quote so callers can choose a status code and message.
type ErrorKind string

const (
	KindConfiguration      ErrorKind = "configuration"
	KindClassification     ErrorKind = "classification"
	KindVendor             ErrorKind = "vendor"
	KindMalformedResponse  ErrorKind = "malformed_response"
	KindNoPricing          ErrorKind = "no_pricing"
	KindSecurityValidation ErrorKind = "security_validation"
	KindSecurityRates      ErrorKind = "security_rates"
)

// Error sources, reported alongside the message.
const (
	SourceQuoteFormation    = "QUOTE_FORMATION"
	SourceVendor            = "BTW_API"
	SourcePricingExtraction = "PRICING_EXTRACTION"
	SourceSecurityPricing   = "SECURITY_PRICING"
)

// QuoteError is the typed failure returned by every stage of the quote pipeline.
type QuoteError struct {
	Kind    ErrorKind
	Source  string
	Message string
	Err     error
}

// Sentinels for errors.Is checks; they match any QuoteError of the same kind.
var (
	ErrConfiguration      = &QuoteError{Kind: KindConfiguration}
	ErrClassification     = &QuoteError{Kind: KindClassification}
	ErrVendor             = &QuoteError{Kind: KindVendor}
	ErrMalformedResponse  = &QuoteError{Kind: KindMalformedResponse}
	ErrNoPricing          = &QuoteError{Kind: KindNoPricing}
	ErrSecurityValidation = &QuoteError{Kind: KindSecurityValidation}
	ErrSecurityRates      = &QuoteError{Kind: KindSecurityRates}
)

func NewQuoteError(kind ErrorKind, source, format string, args ...any) *QuoteError {
	return &QuoteError{Kind: kind, Source: source, Message: fmt.Sprintf(format, args...)}
}

func WrapQuoteError(kind ErrorKind, source, message string, err error) *QuoteError {
	return &QuoteError{Kind: kind, Source: source, Message: message, Err: err}
}

func (e *QuoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *QuoteError) Unwrap() error { return e.Err }

// Is matches sentinels (no message) by kind.
func (e *QuoteError) Is(target error) bool {
	t, ok := target.(*QuoteError)
	if !ok || t.Message != "" {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first QuoteError in err's chain, or "" when there is none.
func KindOf(err error) ErrorKind {
	var qe *QuoteError
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return ""
}

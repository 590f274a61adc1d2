package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/btw"
	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

const vendorFailureMessage = "Something went wrong on BT's end. try again later."

// statusFor maps a quote failure to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusGatewayTimeout
	}
	switch model.KindOf(err) {
	case model.KindConfiguration, model.KindClassification, model.KindSecurityValidation:
		return fiber.StatusBadRequest
	case model.KindNoPricing:
		return fiber.StatusUnprocessableEntity
	case model.KindVendor, model.KindMalformedResponse:
		return fiber.StatusBadGateway
	case model.KindSecurityRates:
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}

// errorBody renders a quote failure. Vendor failures get a generic message plus the
// vendor's own code and message.
func errorBody(err error) ErrorResponse {
	body := ErrorResponse{Error: err.Error()}

	var qe *model.QuoteError
	if errors.As(err, &qe) {
		body.Kind = string(qe.Kind)
		body.Source = qe.Source
		if qe.Message != "" {
			body.Error = qe.Message
		}
	}

	var ve *btw.VendorError
	if errors.As(err, &ve) {
		body.Error = vendorFailureMessage
		body.Source = model.SourceVendor
		body.VendorError = &VendorErrorDetail{
			StatusCode: ve.StatusCode,
			Code:       ve.Code,
			Message:    firstNonEmpty(ve.Message, ve.Reason),
		}
	}
	return body
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

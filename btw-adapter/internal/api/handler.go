package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

// QuoteService defines the quote operation used by the handler.
type QuoteService interface {
	Quote(ctx context.Context, req model.QuoteRequest) (*model.QuoteResult, error)
}

// QuoteHandler handles HTTP API requests for connectivity quotes.
type QuoteHandler struct {
	logger  *zap.Logger
	service QuoteService
	timeout time.Duration
}

// NewQuoteHandler creates a new QuoteHandler. Each quote is bounded by timeout; zero means
// no bound beyond the caller's own context.
func NewQuoteHandler(logger *zap.Logger, service QuoteService, timeout time.Duration) *QuoteHandler {
	return &QuoteHandler{logger: logger, service: service, timeout: timeout}
}

// CreateQuoteHandler handles quote requests.
func (h *QuoteHandler) CreateQuoteHandler(c *fiber.Ctx) error {
	var body QuoteRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := body.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.service.Quote(ctx, body.toQuoteRequest())
	if err != nil {
		status := statusFor(err)
		h.logger.Error("btw.api.quote_failed",
			zap.Int("status", status),
			zap.String("postcode", body.LocationIdentifier.Postcode),
			zap.Error(err))
		return c.Status(status).JSON(errorBody(err))
	}

	return c.Status(fiber.StatusOK).JSON(toQuoteResponse(result))
}

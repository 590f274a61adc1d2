package btw

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/metrics"
	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

// QuoteCreator submits one vendor quote request. Implemented by Client.
type QuoteCreator interface {
	CreateQuote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
}

// SecurityPricer merges secure delivery figures into extracted pricing.
type SecurityPricer interface {
	Augment(ctx context.Context, params *model.SecurityParams, bandwidth model.Bandwidth, pricing *model.CanonicalPricing) error
}

// EventPublisher emits quote.priced events.
type EventPublisher interface {
	PublishQuotePriced(ctx context.Context, result *model.QuoteResult) error
}

// QuoteService orchestrates a quote: classification, payload composition, vendor calls,
// price extraction and security augmentation.
type QuoteService struct {
	logger    *zap.Logger
	client    QuoteCreator
	mapper    *Mapper
	security  SecurityPricer
	publisher EventPublisher
	now       func() time.Time
}

// NewService constructs a quote service. security and pub may be nil.
func NewService(logger *zap.Logger, client QuoteCreator, security SecurityPricer, pub EventPublisher) *QuoteService {
	return &QuoteService{
		logger:    logger,
		client:    client,
		mapper:    NewMapper(),
		security:  security,
		publisher: pub,
		now:       time.Now,
	}
}

// Quote prices one request. Either the full canonical pricing is returned or an error;
// partial results are never returned.
func (s *QuoteService) Quote(ctx context.Context, req model.QuoteRequest) (*model.QuoteResult, error) {
	start := s.now()
	p := req.Connectivity

	s.logger.Info("btw.quote.start",
		zap.String("service_type", string(p.ServiceType)),
		zap.String("interface", string(p.CircuitInterface)),
		zap.String("bandwidth", string(p.CircuitBandwidth)),
		zap.String("backbone", string(p.PreferredBackbone)),
		zap.String("dual_mode", string(p.DualMode)))

	kind, err := Classify(p)
	if err != nil {
		return nil, s.fail("unclassified", err)
	}

	requests, err := s.mapper.ToQuoteRequests(kind, req)
	if err != nil {
		return nil, s.fail(kind.String(), err)
	}

	responses, err := s.invoke(ctx, requests)
	if err != nil {
		return nil, s.fail(kind.String(), err)
	}

	pricing, err := Extract(responses)
	if err != nil {
		return nil, s.fail(kind.String(), err)
	}

	if s.security != nil && req.Security != nil {
		if err := s.security.Augment(ctx, req.Security, p.CircuitBandwidth, pricing); err != nil {
			return nil, s.fail(kind.String(), err)
		}
	}

	result := &model.QuoteResult{
		CorrelationID: requests[0].ExternalID,
		Scenario:      kind.String(),
		Pricing:       *pricing,
		QuotedAt:      s.now().UTC(),
	}
	for _, r := range responses {
		if r.ID != "" {
			result.VendorQuoteIDs = append(result.VendorQuoteIDs, r.ID)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishQuotePriced(ctx, result); err != nil {
			metrics.IncError("publisher", "quote_priced")
			s.logger.Warn("btw.quote.publish_failed",
				zap.String("correlation_id", result.CorrelationID),
				zap.Error(err))
		}
	}

	metrics.IncQuote(kind.String(), "ok")
	metrics.ObserveDuration(metrics.QuoteDuration, start, kind.String())
	s.logger.Info("btw.quote.priced",
		zap.String("correlation_id", result.CorrelationID),
		zap.String("scenario", result.Scenario),
		zap.Strings("vendor_quote_ids", result.VendorQuoteIDs),
		zap.Int("carrier_lines", len(pricing.Carrier)),
		zap.Int("data_service_lines", len(pricing.DataService)),
		zap.Bool("security", pricing.Security != nil),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

// invoke issues every request, concurrently when there are several. Responses keep request
// order. The first failure cancels the other calls.
func (s *QuoteService) invoke(ctx context.Context, requests []QuoteRequest) ([]QuoteResponse, error) {
	responses := make([]QuoteResponse, len(requests))
	g, gctx := errgroup.WithContext(ctx)

	for i := range requests {
		i := i
		g.Go(func() error {
			resp, err := s.client.CreateQuote(gctx, requests[i])
			if err != nil {
				return err
			}
			responses[i] = *resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, model.WrapQuoteError(model.KindVendor, model.SourceVendor, "btw quote request abandoned", ctx.Err())
		}
		return nil, model.WrapQuoteError(model.KindVendor, model.SourceVendor, "btw quote request failed", err)
	}
	return responses, nil
}

func (s *QuoteService) fail(scenario string, err error) error {
	kind := model.KindOf(err)
	if kind == "" {
		kind = "unknown"
	}
	metrics.IncQuote(scenario, string(kind))
	metrics.IncError("quote", string(kind))
	s.logger.Warn("btw.quote.failed",
		zap.String("scenario", scenario),
		zap.String("kind", string(kind)),
		zap.Error(err))
	return err
}

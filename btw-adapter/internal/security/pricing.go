package security

import (
	"context"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/metrics"
	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

const (
	// MaxBandwidthTierMbps is the largest tier in the rate table; faster circuits price at it.
	MaxBandwidthTierMbps = 5000
)

// ManagedServicesMonthly is the flat managed-services fee, never multiplied by seats.
var ManagedServicesMonthly = decimal.NewFromInt(100)

// RateStore finds security rate rows. A nil rate with a nil error means no row matched.
type RateStore interface {
	FindRateTier(ctx context.Context, maxBandwidthMbps float64, remoteAccess bool) (*model.SecurityRate, error)
}

// Pricer computes secure IP delivery figures for a quote.
type Pricer struct {
	logger *zap.Logger
	rates  RateStore
}

func NewPricer(logger *zap.Logger, rates RateStore) *Pricer {
	return &Pricer{logger: logger, rates: rates}
}

// Augment prices the requested security add-ons and stores them on pricing. It is a no-op
// unless secure delivery was requested.
func (p *Pricer) Augment(ctx context.Context, params *model.SecurityParams, bandwidth model.Bandwidth, pricing *model.CanonicalPricing) error {
	if params == nil || !params.SecureIPDelivery {
		return nil
	}
	if err := validateSeats(params); err != nil {
		return err
	}

	mbps, err := bandwidth.Mbps()
	if err != nil {
		return model.WrapQuoteError(model.KindSecurityValidation, model.SourceSecurityPricing,
			"invalid data service bandwidth", err)
	}
	lookup := math.Min(mbps, MaxBandwidthTierMbps)

	rate, err := p.rates.FindRateTier(ctx, lookup, params.ZTNARequired)
	if err != nil {
		metrics.IncError("security", "rate_lookup")
		return model.WrapQuoteError(model.KindSecurityRates, model.SourceSecurityPricing,
			"failed to get security pricing info from the database", err)
	}
	if rate == nil {
		metrics.IncError("security", "rate_not_found")
		p.logger.Warn("security.rate_not_found",
			zap.Float64("bandwidth_mbps", lookup),
			zap.Bool("ztna", params.ZTNARequired))
		return model.NewQuoteError(model.KindSecurityRates, model.SourceSecurityPricing,
			"no security pricing data found for %v Mbit/s (ztna=%t)", lookup, params.ZTNARequired)
	}

	section, err := Price(params, rate)
	if err != nil {
		return err
	}
	pricing.Security = section

	p.logger.Debug("security.priced",
		zap.String("product_code", rate.ProductCode),
		zap.Int("max_bandwidth_mbps", rate.MaxBandwidthMbps),
		zap.Int("seats", seatMultiplier(params)))
	return nil
}

// Price computes monthly figures from a rate row. The seat multiplier applies to the base
// subscription and to every requested add-on.
func Price(params *model.SecurityParams, rate *model.SecurityRate) (*model.SecuritySection, error) {
	if err := validateSeats(params); err != nil {
		return nil, err
	}
	seats := decimal.NewFromInt(int64(seatMultiplier(params)))
	monthly := func(d decimal.Decimal) *model.MonthlyCharge {
		return &model.MonthlyCharge{Monthly: d.Mul(seats)}
	}

	section := &model.SecuritySection{
		BaseSubscription: monthly(rate.ListPrice),
		ManagedServices:  &model.MonthlyCharge{Monthly: ManagedServicesMonthly},
	}
	if params.ThreatPrevention {
		section.ThreatPrevention = monthly(rate.ThreatPrevention)
	}
	if params.CASB {
		section.CASB = monthly(rate.CASB)
	}
	if params.DLP {
		section.DLP = monthly(rate.DLP)
	}
	if params.RBI {
		section.RBI = monthly(rate.RBI)
	}
	return section, nil
}

func validateSeats(params *model.SecurityParams) error {
	if params.ZTNARequired && params.ZTNAUsers <= 0 {
		return model.NewQuoteError(model.KindSecurityValidation, model.SourceSecurityPricing,
			"noOfZtnaUsers is required if ZTNA is required")
	}
	return nil
}

func seatMultiplier(params *model.SecurityParams) int {
	if params.ZTNARequired && params.ZTNAUsers > 0 {
		return params.ZTNAUsers
	}
	return 1
}

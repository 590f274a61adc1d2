package btw

import (
	"strings"

	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

// alternateOptionMarker tags vendor price lines for a contract variant that is not sold.
const alternateOptionMarker = "Option B"

// responseShape is where a response keeps its carrier and data service prices.
// Resolved once per response by resolveShape.
type responseShape interface {
	pair() servicePair
}

type servicePair struct {
	carrier     Service
	dataService Service
}

// flatShape: internet products list their services directly under the top-level product.
type flatShape struct{ servicePair }

// nestedShape: eline products wrap the B-end services in an inner quote item. The outer
// data-centre hand-off price is not customer facing.
type nestedShape struct{ servicePair }

func (s flatShape) pair() servicePair   { return s.servicePair }
func (s nestedShape) pair() servicePair { return s.servicePair }

// resolveShape inspects the first quote item of a response.
func resolveShape(index int, resp *QuoteResponse) (responseShape, error) {
	if resp == nil || len(resp.QuoteItem) == 0 {
		return nil, model.NewQuoteError(model.KindMalformedResponse, model.SourcePricingExtraction,
			"quote response %d has no quote items", index)
	}
	product := resp.QuoteItem[0].Product

	if len(product.QuoteItem) > 0 && product.QuoteItem[0].Action != "" {
		pair, err := pairFrom(index, product.QuoteItem[0].Product)
		if err != nil {
			return nil, err
		}
		return nestedShape{servicePair: pair}, nil
	}
	if len(product.Product) > 0 {
		pair, err := pairFrom(index, product.Product)
		if err != nil {
			return nil, err
		}
		return flatShape{servicePair: pair}, nil
	}
	return nil, model.NewQuoteError(model.KindMalformedResponse, model.SourcePricingExtraction,
		"quote response %d has an unrecognised %q product shape", index, product.Type)
}

// pairFrom validates the @type of positions 0 and 1 before using them.
func pairFrom(index int, services []Service) (servicePair, error) {
	if len(services) < 2 {
		return servicePair{}, model.NewQuoteError(model.KindMalformedResponse, model.SourcePricingExtraction,
			"quote response %d has %d sub-products, want 2", index, len(services))
	}
	if !services[0].IsCarrier() {
		return servicePair{}, model.NewQuoteError(model.KindMalformedResponse, model.SourcePricingExtraction,
			"quote response %d: sub-product 0 is %q, want an Etherway service", index, services[0].Type)
	}
	if !services[1].IsDataService() {
		return servicePair{}, model.NewQuoteError(model.KindMalformedResponse, model.SourcePricingExtraction,
			"quote response %d: sub-product 1 is %q, want an Etherflow service", index, services[1].Type)
	}
	return servicePair{carrier: services[0], dataService: services[1]}, nil
}

// Extract flattens vendor responses, in request order, into canonical pricing.
// Response 0 supplies carrier and data service prices whatever its shape; a nested
// response 1 supplies the secondary data service.
func Extract(responses []QuoteResponse) (*model.CanonicalPricing, error) {
	if len(responses) == 0 {
		return nil, model.NewQuoteError(model.KindMalformedResponse, model.SourcePricingExtraction,
			"no quote responses to extract")
	}

	primary, err := resolveShape(0, &responses[0])
	if err != nil {
		return nil, err
	}

	pricing := &model.CanonicalPricing{}
	switch s := primary.(type) {
	case flatShape, nestedShape:
		pair := s.pair()
		if pricing.Carrier, err = toPriceLines(pair.carrier.ProductPrice); err != nil {
			return nil, err
		}
		if pricing.DataService, err = toPriceLines(pair.dataService.ProductPrice); err != nil {
			return nil, err
		}
	}

	if len(responses) > 1 {
		secondary, err := resolveShape(1, &responses[1])
		if err != nil {
			return nil, err
		}
		if s, ok := secondary.(nestedShape); ok {
			if pricing.SecondaryDataService, err = toPriceLines(s.dataService.ProductPrice); err != nil {
				return nil, err
			}
		}
	}

	if len(pricing.Carrier) == 0 && len(pricing.DataService) == 0 {
		return nil, model.NewQuoteError(model.KindNoPricing, model.SourcePricingExtraction,
			"no pricing information found in quote response")
	}
	return pricing, nil
}

// FilterAlternateOptions drops "Option B" lines, keeping the order of the rest.
func FilterAlternateOptions(prices []ProductPrice) []ProductPrice {
	out := make([]ProductPrice, 0, len(prices))
	for _, p := range prices {
		if strings.Contains(p.Name, alternateOptionMarker) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func toPriceLines(prices []ProductPrice) ([]model.PriceLine, error) {
	kept := FilterAlternateOptions(prices)
	lines := make([]model.PriceLine, 0, len(kept))
	for _, p := range kept {
		line := model.PriceLine{
			Name:              p.Name,
			TaxRate:           p.Price.TaxRate,
			DutyFreeAmount:    p.Price.DutyFreeAmount.Value,
			TaxIncludedAmount: p.Price.TaxIncludedAmount.Value,
			Currency:          p.Price.TaxIncludedAmount.Unit,
		}
		switch p.PriceType {
		case "nonRecurring":
			line.ChargeType = model.ChargeOneTime
		case "recurring":
			line.ChargeType = model.ChargeRecurring
			line.RecurrencePeriod = p.RecurringChargePeriod
		default:
			return nil, model.NewQuoteError(model.KindMalformedResponse, model.SourcePricingExtraction,
				"price line %q has unknown priceType %q", p.Name, p.PriceType)
		}
		if line.Currency == "" {
			line.Currency = p.Price.DutyFreeAmount.Unit
		}
		lines = append(lines, line)
	}
	return lines, nil
}

package btw

import (
	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

func recurring(name string, amount float64) ProductPrice {
	return ProductPrice{
		Name:                  name,
		PriceType:             "recurring",
		RecurringChargePeriod: "month",
		Price: Price{
			TaxRate:           20,
			DutyFreeAmount:    Money{Unit: "GBP", Value: amount},
			TaxIncludedAmount: Money{Unit: "GBP", Value: amount + amount/5},
		},
	}
}

func oneOff(name string, amount float64) ProductPrice {
	return ProductPrice{
		Name:      name,
		PriceType: "nonRecurring",
		Price: Price{
			TaxRate:           20,
			DutyFreeAmount:    Money{Unit: "GBP", Value: amount},
			TaxIncludedAmount: Money{Unit: "GBP", Value: amount + amount/5},
		},
	}
}

func pricedCarrier(prices ...ProductPrice) Service {
	return Service{Type: TypeEtherwayFibreService, ProductPrice: prices}
}

func pricedInternet(prices ...ProductPrice) Service {
	return Service{Type: TypeEtherflowInternetService, ProductPrice: prices}
}

func pricedConnected(prices ...ProductPrice) Service {
	return Service{Type: TypeEtherflowConnectedService, ProductPrice: prices}
}

// flatResponse mirrors a WholesaleEthernetInternet quote.
func flatResponse(id string, carrier, data Service) QuoteResponse {
	return QuoteResponse{
		ID:    id,
		State: "approved",
		QuoteItem: []QuoteItem{{
			Action: ActionAdd,
			Product: Product{
				Type:    TypeWholesaleEthernetInternet,
				Product: []Service{carrier, data},
			},
		}},
	}
}

// nestedResponse mirrors a WholesaleEthernetEline quote with its data-centre hand-off.
func nestedResponse(id string, carrier, data Service) QuoteResponse {
	return QuoteResponse{
		ID:    id,
		State: "approved",
		QuoteItem: []QuoteItem{{
			Action: ActionAdd,
			Product: Product{
				Type:    TypeWholesaleEthernetEline,
				Product: []Service{{Type: TypeEtherwayDataCentreService, ProductPrice: []ProductPrice{recurring("Hand-off", 99)}}},
				QuoteItem: []InnerQuoteItem{{
					Action:  ActionAdd,
					Product: []Service{carrier, data},
				}},
			},
		}},
	}
}

func singleOnBT() model.QuoteRequest {
	return model.QuoteRequest{
		Location: model.Location{Postcode: "EC1A 1BB"},
		Connectivity: model.ConnectivityParams{
			ServiceType:       model.ServiceSingle,
			CircuitInterface:  model.Interface1000BaseT,
			CircuitBandwidth:  "500 Mbit/s",
			IPBlock:           "Block /29 (8 LAN IP Addresses)",
			PreferredBackbone: model.BackboneBT,
		},
	}
}

func dualActiveActive() model.QuoteRequest {
	return model.QuoteRequest{
		Location: model.Location{Postcode: "EC1A 1BB"},
		Connectivity: model.ConnectivityParams{
			ServiceType:         model.ServiceDual,
			CircuitInterface:    model.Interface10GBaseLR,
			CircuitBandwidth:    "2 Gbit/s",
			CircuitTwoBandwidth: "1 Gbit/s",
			IPBlock:             "Block /28 (16 LAN IP Addresses)",
			DualMode:            model.DualActiveActive,
		},
	}
}

func singleOffBT() model.QuoteRequest {
	return model.QuoteRequest{
		Location: model.Location{ID: "NAD-A12345", Postcode: "EC1A 1BB"},
		Connectivity: model.ConnectivityParams{
			ServiceType:       model.ServiceSingle,
			CircuitInterface:  model.Interface1000BaseLX,
			CircuitBandwidth:  "100 Mbit/s",
			PreferredBackbone: model.BackboneColt,
		},
	}
}

func fixedIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

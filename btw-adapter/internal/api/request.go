package api

import (
	"fmt"
	"strings"

	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

// QuoteRequestBody is the payload for POST /api/v1/quotes.
type QuoteRequestBody struct {
	LocationIdentifier  LocationBody  `json:"locationIdentifier"`
	BTQuoteParams       ParamsBody    `json:"btQuoteParams"`
	SecurityQuoteParams *SecurityBody `json:"securityQuoteParams,omitempty"`
}

type LocationBody struct {
	ID       string `json:"id,omitempty"`
	Postcode string `json:"postcode"`
}

type ParamsBody struct {
	ServiceType                string `json:"serviceType"`
	CircuitInterface           string `json:"circuitInterface"`
	CircuitBandwidth           string `json:"circuitBandwidth"`
	CircuitTwoBandwidth        string `json:"circuitTwoBandwidth,omitempty"`
	NumberOfIPAddresses        string `json:"numberOfIpAddresses,omitempty"`
	PreferredIPBackbone        string `json:"preferredIpBackbone,omitempty"`
	DualInternetConfig         string `json:"dualInternetConfig,omitempty"`
	PreferredDiverseIPBackbone string `json:"preferredDiverseIpBackbone,omitempty"`
}

type SecurityBody struct {
	SecureIPDelivery         bool `json:"secureIpDelivery"`
	ZTNARequired             bool `json:"ztnaRequired"`
	NoOfZTNAUsers            int  `json:"noOfZtnaUsers"`
	ThreatPreventionRequired bool `json:"threatPreventionRequired"`
	CASBRequired             bool `json:"casbRequired"`
	DLPRequired              bool `json:"dlpRequired"`
	RBIRequired              bool `json:"rbiRequired"`
}

// Validate checks required fields and vocabularies. Field combinations are checked later
// by scenario classification.
func (r *QuoteRequestBody) Validate() error {
	if strings.TrimSpace(r.BTQuoteParams.ServiceType) == "" {
		return fmt.Errorf("btQuoteParams.serviceType is required")
	}
	if strings.TrimSpace(r.BTQuoteParams.CircuitInterface) == "" {
		return fmt.Errorf("btQuoteParams.circuitInterface is required")
	}
	if strings.TrimSpace(r.BTQuoteParams.CircuitBandwidth) == "" {
		return fmt.Errorf("btQuoteParams.circuitBandwidth is required")
	}
	return r.toQuoteRequest().Validate()
}

// toQuoteRequest converts the API body to the canonical request.
func (r *QuoteRequestBody) toQuoteRequest() model.QuoteRequest {
	p := r.BTQuoteParams
	req := model.QuoteRequest{
		Location: model.Location{
			ID:       strings.TrimSpace(r.LocationIdentifier.ID),
			Postcode: strings.TrimSpace(r.LocationIdentifier.Postcode),
		},
		Connectivity: model.ConnectivityParams{
			ServiceType:              model.ServiceType(p.ServiceType),
			CircuitInterface:         model.CircuitInterface(p.CircuitInterface),
			CircuitBandwidth:         model.Bandwidth(p.CircuitBandwidth),
			CircuitTwoBandwidth:      model.Bandwidth(p.CircuitTwoBandwidth),
			IPBlock:                  model.IPBlock(p.NumberOfIPAddresses),
			PreferredBackbone:        model.Backbone(p.PreferredIPBackbone),
			DualMode:                 model.DualMode(p.DualInternetConfig),
			PreferredDiverseBackbone: model.DiverseBackbone(p.PreferredDiverseIPBackbone),
		},
	}
	if s := r.SecurityQuoteParams; s != nil {
		req.Security = &model.SecurityParams{
			SecureIPDelivery: s.SecureIPDelivery,
			ZTNARequired:     s.ZTNARequired,
			ZTNAUsers:        s.NoOfZTNAUsers,
			ThreatPrevention: s.ThreatPreventionRequired,
			CASB:             s.CASBRequired,
			DLP:              s.DLPRequired,
			RBI:              s.RBIRequired,
		}
	}
	return req
}

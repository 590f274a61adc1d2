package btw

import (
	"encoding/json"
	"strings"
)

//
// ────────────────────────────────────────────────
//   Vendor credentials (from AWS SM or env)
// ────────────────────────────────────────────────
//

// Credentials are the API gateway consumer key pair.
// Secret format: {"consumer_key": "...", "consumer_secret": "..."}
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
}

//
// ────────────────────────────────────────────────
//   OAuth token
// ────────────────────────────────────────────────
//

// TokenResponse is returned by GET /oauth/accesstoken?grant_type=client_credentials.
// expiresIn is in seconds and is accepted quoted or bare.
type TokenResponse struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   json.Number `json:"expiresIn"`
}

//
// ────────────────────────────────────────────────
//   Quote management (TMF648 v4)
// ────────────────────────────────────────────────
//

// Product @type discriminators.
const (
	TypeWholesaleEthernetInternet = "WholesaleEthernetInternet"
	TypeWholesaleEthernetEline    = "WholesaleEthernetEline"
	TypeEtherwayFibreService      = "EtherwayFibreService"
	TypeEtherwayDataCentreService = "EtherwayDataCentreService"
	TypeEtherflowInternetService  = "EtherflowInternetService"
	TypeEtherflowConnectedService = "EtherflowConnectedService"

	TypePostcodeSite   = "PostcodeSite"
	TypeNadKeySite     = "NadKeySite"
	TypeDataCentreSite = "DataCentreSite"

	ActionAdd = "add"
)

// QuoteRequest is the body of POST /tmf-api/quoteManagement/v4/quote.
type QuoteRequest struct {
	ExternalID string      `json:"externalId"`
	QuoteItem  []QuoteItem `json:"quoteItem"`
}

// QuoteItem is one top-level item in a request or response.
type QuoteItem struct {
	BaseType string  `json:"@baseType,omitempty"`
	Type     string  `json:"@type,omitempty"`
	ID       string  `json:"id,omitempty"`
	Action   string  `json:"action"`
	State    string  `json:"state,omitempty"`
	Product  Product `json:"product"`
}

// Product is a bundle: the internet product carries its services directly, the eline
// product wraps an inner quote item for the B-end.
type Product struct {
	Type                 string               `json:"@type"`
	ProductSpecification ProductSpecification `json:"productSpecification"`
	ExistingAend         *bool                `json:"existingAend,omitempty"`
	Place                []Site               `json:"place,omitempty"`
	Product              []Service            `json:"product,omitempty"`
	QuoteItem            []InnerQuoteItem     `json:"quoteItem,omitempty"`
	ProductPrice         []ProductPrice       `json:"productPrice,omitempty"`
}

// InnerQuoteItem is the nested item of an eline product.
type InnerQuoteItem struct {
	BaseType string    `json:"@baseType,omitempty"`
	Type     string    `json:"@type,omitempty"`
	ID       string    `json:"id,omitempty"`
	Action   string    `json:"action"`
	State    string    `json:"state,omitempty"`
	Place    []Site    `json:"place,omitempty"`
	Product  []Service `json:"product"`
}

type ProductSpecification struct {
	ID string `json:"id"`
}

// Site is a place reference; exactly one of the identifying fields is set per @type.
type Site struct {
	Type           string `json:"@type"`
	Postcode       string `json:"postcode,omitempty"`
	NadKey         string `json:"nadKey,omitempty"`
	DataCentreCode string `json:"dataCentreCode,omitempty"`
}

// Service is an Etherway (carrier) or Etherflow (data service) sub-product.
type Service struct {
	Type                 string               `json:"@type"`
	ProductSpecification ProductSpecification `json:"productSpecification"`
	Bandwidth            string               `json:"bandwidth,omitempty"`
	Resilience           string               `json:"resilience,omitempty"`
	Cos                  string               `json:"cos,omitempty"`
	IPAddressBlock       string               `json:"ipAddressBlock,omitempty"`
	ProductPrice         []ProductPrice       `json:"productPrice,omitempty"`
}

// IsCarrier reports whether the service is an Etherway access circuit.
func (s Service) IsCarrier() bool { return strings.HasPrefix(s.Type, "Etherway") }

// IsDataService reports whether the service is an Etherflow service.
func (s Service) IsDataService() bool { return strings.HasPrefix(s.Type, "Etherflow") }

// ProductPrice is a priced line returned by the vendor.
type ProductPrice struct {
	Name                  string `json:"name"`
	PriceType             string `json:"priceType"` // nonRecurring | recurring
	RecurringChargePeriod string `json:"recurringChargePeriod,omitempty"`
	Price                 Price  `json:"price"`
}

type Price struct {
	TaxRate           float64 `json:"taxRate"`
	DutyFreeAmount    Money   `json:"dutyFreeAmount"`
	TaxIncludedAmount Money   `json:"taxIncludedAmount"`
}

type Money struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// QuoteResponse is the created quote.
type QuoteResponse struct {
	BaseType   string      `json:"@baseType,omitempty"`
	Type       string      `json:"@type,omitempty"`
	ID         string      `json:"id"`
	Href       string      `json:"href,omitempty"`
	ExternalID string      `json:"externalId"`
	State      string      `json:"state"`
	QuoteItem  []QuoteItem `json:"quoteItem"`
}

//
// ────────────────────────────────────────────────
//   Errors
// ────────────────────────────────────────────────
//

// ErrorResponse is the gateway / TMF error body. code is numeric on gateway errors and a
// string on TMF application errors.
type ErrorResponse struct {
	Code    json.RawMessage `json:"code"`
	Reason  string          `json:"reason"`
	Message string          `json:"message"`
	Status  string          `json:"status"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ChargeType string

const (
	ChargeOneTime   ChargeType = "one-time"
	ChargeRecurring ChargeType = "recurring"
)

// PriceLine is one priced line item. Amounts keep the vendor's tax rate so downstream
// margin rules can recompute the pre-tax figure from the tax-inclusive one.
type PriceLine struct {
	Name              string     `json:"name"`
	ChargeType        ChargeType `json:"chargeType"`
	RecurrencePeriod  string     `json:"recurrencePeriod,omitempty"`
	TaxRate           float64    `json:"taxRate"`
	DutyFreeAmount    float64    `json:"dutyFreeAmount"`
	TaxIncludedAmount float64    `json:"taxIncludedAmount"`
	Currency          string     `json:"currency,omitempty"`
}

// CanonicalPricing is the flattened, vendor-neutral result of a quote.
type CanonicalPricing struct {
	Carrier              []PriceLine      `json:"carrier"`
	DataService          []PriceLine      `json:"dataService"`
	SecondaryDataService []PriceLine      `json:"secondaryDataService,omitempty"`
	Security             *SecuritySection `json:"security,omitempty"`
}

// MonthlyCharge wraps a monthly figure.
type MonthlyCharge struct {
	Monthly decimal.Decimal `json:"monthly"`
}

// SecuritySection holds the secure delivery figures. A nil field was not requested.
type SecuritySection struct {
	BaseSubscription *MonthlyCharge `json:"baseSubscription,omitempty"`
	ThreatPrevention *MonthlyCharge `json:"threatPrevention,omitempty"`
	CASB             *MonthlyCharge `json:"casb,omitempty"`
	DLP              *MonthlyCharge `json:"dlp,omitempty"`
	RBI              *MonthlyCharge `json:"rbi,omitempty"`
	ManagedServices  *MonthlyCharge `json:"managedServices,omitempty"`
}

// QuoteResult is what the adapter returns and publishes for a priced request.
type QuoteResult struct {
	CorrelationID  string           `json:"correlationId"`
	Scenario       string           `json:"scenario"`
	VendorQuoteIDs []string         `json:"vendorQuoteIds,omitempty"`
	Pricing        CanonicalPricing `json:"pricing"`
	QuotedAt       time.Time        `json:"quotedAt"`
}

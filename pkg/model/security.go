package model

import "github.com/shopspring/decimal"

// SecurityRate is one row of the security pricing table.
type SecurityRate struct {
	ID                 int64           `json:"id"`
	ProductCategory    string          `json:"productCategory"`
	ProductSubCategory string          `json:"productSubCategory"`
	Region             string          `json:"region"`
	ProductName        string          `json:"productName"`
	MaxBandwidthMbps   int             `json:"maxBandwidthInMbps"`
	ProductCode        string          `json:"productCode"`
	ProductDescription string          `json:"productDescription"`
	QtyUnits           string          `json:"qtyUnits"`
	ListPrice          decimal.Decimal `json:"listPrice"`
	RevenueType        string          `json:"revenueType"`
	ThreatPrevention   decimal.Decimal `json:"threatPrevention"`
	CASB               decimal.Decimal `json:"casb"`
	DLP                decimal.Decimal `json:"dlp"`
	SaaSSecurityAPI    decimal.Decimal `json:"saasSecurityApi"`
	RBI                decimal.Decimal `json:"rbi"`
}

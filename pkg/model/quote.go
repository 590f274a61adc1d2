package model

import (
	"fmt"
	"strings"
)

type ServiceType string

const (
	ServiceSingle ServiceType = "single"
	ServiceDual   ServiceType = "dual"
)

// Backbone is the customer's preferred IP transit network. BackboneBT is the vendor's own.
type Backbone string

const (
	BackboneBT     Backbone = "BT"
	BackboneColt   Backbone = "Colt"
	BackboneLumen  Backbone = "Lumen"
	BackbonePCCW   Backbone = "PCCW"
	BackboneCogent Backbone = "Cogent"
	BackboneAny    Backbone = "Any"
)

var Backbones = []Backbone{BackboneBT, BackboneColt, BackboneLumen, BackbonePCCW, BackboneCogent, BackboneAny}

// DiverseBackbone is the backbone requested for the diverse leg of a dual service.
type DiverseBackbone string

var DiverseBackbones = []DiverseBackbone{"Colt", "Lumen", "PCCW", "Cogent +++"}

type DualMode string

const (
	DualActiveActive  DualMode = "Active / Active"
	DualActivePassive DualMode = "Active / Passive"
)

// IPBlock is the size of the routed LAN address block.
type IPBlock string

var IPBlocks = []IPBlock{
	"Block /29 (8 LAN IP Addresses)",
	"Block /28 (16 LAN IP Addresses)",
	"Block /27 (32 LAN IP Addresses)",
	"Block /26 (64 LAN IP Addresses)",
	"Block /25 (128 LAN IP Addresses)",
	"Block /24 (256 LAN IP Addresses)",
	"Block /23 (512 LAN IP Addresses)",
	"Block /22 (1024 LAN IP Addresses)",
	"Block /21 (2048 LAN IP Addresses)",
}

// Location identifies the delivery site. ID is the vendor's opaque site key and wins over Postcode.
type Location struct {
	ID       string `json:"id,omitempty"`
	Postcode string `json:"postcode"`
}

// ConnectivityParams are the customer-facing circuit choices.
type ConnectivityParams struct {
	ServiceType              ServiceType      `json:"serviceType"`
	CircuitInterface         CircuitInterface `json:"circuitInterface"`
	CircuitBandwidth         Bandwidth        `json:"circuitBandwidth"`
	CircuitTwoBandwidth      Bandwidth        `json:"circuitTwoBandwidth,omitempty"`
	IPBlock                  IPBlock          `json:"numberOfIpAddresses,omitempty"`
	PreferredBackbone        Backbone         `json:"preferredIpBackbone,omitempty"`
	DualMode                 DualMode         `json:"dualInternetConfig,omitempty"`
	PreferredDiverseBackbone DiverseBackbone  `json:"preferredDiverseIpBackbone,omitempty"`
}

// SecurityParams select the secure IP delivery add-ons.
type SecurityParams struct {
	SecureIPDelivery bool `json:"secureIpDelivery"`
	ZTNARequired     bool `json:"ztnaRequired"`
	ZTNAUsers        int  `json:"noOfZtnaUsers,omitempty"`
	ThreatPrevention bool `json:"threatPreventionRequired"`
	CASB             bool `json:"casbRequired"`
	DLP              bool `json:"dlpRequired"`
	RBI              bool `json:"rbiRequired"`
}

// QuoteRequest is one inbound quote request.
type QuoteRequest struct {
	Location     Location           `json:"locationIdentifier"`
	Connectivity ConnectivityParams `json:"btQuoteParams"`
	Security     *SecurityParams    `json:"securityQuoteParams,omitempty"`
}

// Validate checks the location has a postcode or a site key.
func (l Location) Validate() error {
	if strings.TrimSpace(l.ID) == "" && strings.TrimSpace(l.Postcode) == "" {
		return fmt.Errorf("locationIdentifier requires a postcode or id")
	}
	return nil
}

// Validate checks every enumerated field against its vocabulary. Combinations of fields
// are left to scenario classification.
func (p ConnectivityParams) Validate() error {
	if p.ServiceType != ServiceSingle && p.ServiceType != ServiceDual {
		return fmt.Errorf("serviceType must be %q or %q", ServiceSingle, ServiceDual)
	}
	if !p.CircuitInterface.Valid() {
		return fmt.Errorf("circuitInterface %q is not supported", p.CircuitInterface)
	}
	if !p.CircuitBandwidth.Valid() {
		return fmt.Errorf("circuitBandwidth %q is not supported", p.CircuitBandwidth)
	}
	if p.CircuitTwoBandwidth != "" && !p.CircuitTwoBandwidth.Valid() {
		return fmt.Errorf("circuitTwoBandwidth %q is not supported", p.CircuitTwoBandwidth)
	}
	if p.IPBlock != "" && !contains(IPBlocks, p.IPBlock) {
		return fmt.Errorf("numberOfIpAddresses %q is not supported", p.IPBlock)
	}
	if p.PreferredBackbone != "" && !contains(Backbones, p.PreferredBackbone) {
		return fmt.Errorf("preferredIpBackbone %q is not supported", p.PreferredBackbone)
	}
	if p.DualMode != "" && p.DualMode != DualActiveActive && p.DualMode != DualActivePassive {
		return fmt.Errorf("dualInternetConfig %q is not supported", p.DualMode)
	}
	if p.PreferredDiverseBackbone != "" && !contains(DiverseBackbones, p.PreferredDiverseBackbone) {
		return fmt.Errorf("preferredDiverseIpBackbone %q is not supported", p.PreferredDiverseBackbone)
	}
	return nil
}

// Validate checks the whole request.
func (r QuoteRequest) Validate() error {
	if err := r.Location.Validate(); err != nil {
		return err
	}
	if err := r.Connectivity.Validate(); err != nil {
		return err
	}
	if r.Security != nil && r.Security.ZTNAUsers < 0 {
		return fmt.Errorf("noOfZtnaUsers cannot be negative")
	}
	return nil
}

func contains[T comparable](opts []T, v T) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}

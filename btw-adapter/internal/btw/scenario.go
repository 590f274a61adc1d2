package btw

import (
	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

// ScenarioKind is the request shape a set of connectivity params maps to.
type ScenarioKind int

const (
	ScenarioUnknown ScenarioKind = iota
	SingleOnPreferredBackbone
	DualActiveActive
	DualActivePassive
	SingleOffPreferredBackbone
)

func (k ScenarioKind) String() string {
	switch k {
	case SingleOnPreferredBackbone:
		return "single_on_preferred_backbone"
	case DualActiveActive:
		return "dual_active_active"
	case DualActivePassive:
		return "dual_active_passive"
	case SingleOffPreferredBackbone:
		return "single_off_preferred_backbone"
	default:
		return "unknown"
	}
}

// Tag is the reference prefixed to the vendor externalId.
func (k ScenarioKind) Tag() string {
	switch k {
	case SingleOnPreferredBackbone:
		return "1"
	case DualActiveActive:
		return "2"
	case DualActivePassive:
		return "2.1"
	case SingleOffPreferredBackbone:
		return "3"
	default:
		return "0"
	}
}

// VendorBackbone is BT's own IP network.
const VendorBackbone = model.BackboneBT

func IsSingleOnPreferredBackbone(p model.ConnectivityParams) bool {
	return p.ServiceType == model.ServiceSingle && p.PreferredBackbone == VendorBackbone
}

func IsDualActiveActive(p model.ConnectivityParams) bool {
	return p.ServiceType == model.ServiceDual &&
		p.DualMode == model.DualActiveActive &&
		p.CircuitTwoBandwidth != ""
}

// IsDualActivePassive ignores any secondary bandwidth.
func IsDualActivePassive(p model.ConnectivityParams) bool {
	return p.ServiceType == model.ServiceDual && p.DualMode == model.DualActivePassive
}

func IsSingleOffPreferredBackbone(p model.ConnectivityParams) bool {
	return p.ServiceType == model.ServiceSingle &&
		p.PreferredBackbone != "" &&
		p.PreferredBackbone != VendorBackbone
}

var scenarios = []struct {
	kind  ScenarioKind
	match func(model.ConnectivityParams) bool
}{
	{SingleOnPreferredBackbone, IsSingleOnPreferredBackbone},
	{DualActiveActive, IsDualActiveActive},
	{DualActivePassive, IsDualActivePassive},
	{SingleOffPreferredBackbone, IsSingleOffPreferredBackbone},
}

// Classify returns the single scenario matching p.
func Classify(p model.ConnectivityParams) (ScenarioKind, error) {
	found := ScenarioUnknown
	for _, s := range scenarios {
		if !s.match(p) {
			continue
		}
		if found != ScenarioUnknown {
			return ScenarioUnknown, model.NewQuoteError(model.KindClassification, model.SourceQuoteFormation,
				"quote params match both %s and %s", found, s.kind)
		}
		found = s.kind
	}
	if found == ScenarioUnknown {
		return ScenarioUnknown, model.NewQuoteError(model.KindClassification, model.SourceQuoteFormation,
			"no quote scenario matches serviceType=%q preferredIpBackbone=%q dualInternetConfig=%q circuitTwoBandwidth=%q",
			p.ServiceType, p.PreferredBackbone, p.DualMode, p.CircuitTwoBandwidth)
	}
	return found, nil
}

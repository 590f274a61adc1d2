package btw

import (
	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

const (
	ResilienceStandard    = "Standard"
	ResilienceDiversePlus = "Diverse Plus (RAO2)"
	CosPremium            = "Premium CoS"

	// Fixed A-end for eline circuits handed off to third-party backbones.
	dataCentreCode      = "YDABX/TA"
	dataCentreBandwidth = "1 Gbit/s"
)

// PrimaryResilience is the carrier resilience of the first circuit for a service type.
func PrimaryResilience(st model.ServiceType) string {
	if st == model.ServiceDual {
		return ResilienceDiversePlus
	}
	return ResilienceStandard
}

// BuildCarrier returns the Etherway access circuit sized to the interface ceiling.
func BuildCarrier(iface model.CircuitInterface, resilience string) (Service, error) {
	ceiling, err := iface.Ceiling()
	if err != nil {
		return Service{}, err
	}
	return Service{
		Type:                 TypeEtherwayFibreService,
		ProductSpecification: ProductSpecification{ID: TypeEtherwayFibreService},
		Bandwidth:            string(ceiling),
		Resilience:           resilience,
	}, nil
}

// BuildInternetDataService returns the routed Etherflow service. An IP block is mandatory.
func BuildInternetDataService(bw model.Bandwidth, block model.IPBlock) (Service, error) {
	if block == "" {
		return Service{}, model.NewQuoteError(model.KindConfiguration, model.SourceQuoteFormation,
			"numberOfIpAddresses is required for internet services")
	}
	return Service{
		Type:                 TypeEtherflowInternetService,
		ProductSpecification: ProductSpecification{ID: TypeEtherflowInternetService},
		Bandwidth:            string(bw),
		Cos:                  CosPremium,
		IPAddressBlock:       string(block),
	}, nil
}

// BuildPointToPointDataService returns the private Etherflow service.
func BuildPointToPointDataService(bw model.Bandwidth) Service {
	return Service{
		Type:                 TypeEtherflowConnectedService,
		ProductSpecification: ProductSpecification{ID: TypeEtherflowConnectedService},
		Bandwidth:            string(bw),
		Cos:                  CosPremium,
	}
}

// BuildSite encodes the location by site key when present, otherwise by postcode.
func BuildSite(loc model.Location) Site {
	if loc.ID != "" {
		return Site{Type: TypeNadKeySite, NadKey: loc.ID}
	}
	return Site{Type: TypePostcodeSite, Postcode: loc.Postcode}
}

func dataCentreSite() Site {
	return Site{Type: TypeDataCentreSite, DataCentreCode: dataCentreCode}
}

func dataCentreHandoff() Service {
	return Service{
		Type:                 TypeEtherwayDataCentreService,
		ProductSpecification: ProductSpecification{ID: TypeEtherwayDataCentreService},
		Bandwidth:            dataCentreBandwidth,
	}
}

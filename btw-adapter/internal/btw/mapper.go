package btw

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

// maxExternalIDLen is the vendor limit on externalId.
const maxExternalIDLen = 100

// Mapper converts canonical quote requests into BT Wholesale quote payloads.
type Mapper struct {
	newID func() string
}

// NewMapper creates a new Mapper.
func NewMapper() *Mapper {
	return &Mapper{newID: uuid.NewString}
}

// ToQuoteRequests composes the vendor payloads for a classified request. Nothing is
// returned unless every payload could be built.
func (m *Mapper) ToQuoteRequests(kind ScenarioKind, req model.QuoteRequest) ([]QuoteRequest, error) {
	p := req.Connectivity
	if err := checkWithinCeiling(p.CircuitInterface, p.CircuitBandwidth); err != nil {
		return nil, err
	}
	site := BuildSite(req.Location)

	switch kind {
	case SingleOnPreferredBackbone, DualActivePassive:
		primary, err := m.internetRequest(kind, site, p)
		if err != nil {
			return nil, err
		}
		return []QuoteRequest{primary}, nil

	case DualActiveActive:
		if err := checkWithinCeiling(p.CircuitInterface, p.CircuitTwoBandwidth); err != nil {
			return nil, err
		}
		primary, err := m.internetRequest(kind, site, p)
		if err != nil {
			return nil, err
		}
		secondary, err := m.elineRequest(kind, site, p.CircuitInterface, p.CircuitTwoBandwidth, ResilienceStandard)
		if err != nil {
			return nil, err
		}
		return []QuoteRequest{primary, secondary}, nil

	case SingleOffPreferredBackbone:
		eline, err := m.elineRequest(kind, site, p.CircuitInterface, p.CircuitBandwidth, PrimaryResilience(p.ServiceType))
		if err != nil {
			return nil, err
		}
		return []QuoteRequest{eline}, nil

	default:
		return nil, model.NewQuoteError(model.KindClassification, model.SourceQuoteFormation,
			"cannot compose quote for scenario %s", kind)
	}
}

func (m *Mapper) internetRequest(kind ScenarioKind, site Site, p model.ConnectivityParams) (QuoteRequest, error) {
	carrier, err := BuildCarrier(p.CircuitInterface, PrimaryResilience(p.ServiceType))
	if err != nil {
		return QuoteRequest{}, err
	}
	data, err := BuildInternetDataService(p.CircuitBandwidth, p.IPBlock)
	if err != nil {
		return QuoteRequest{}, err
	}

	return QuoteRequest{
		ExternalID: m.externalID(kind),
		QuoteItem: []QuoteItem{{
			Action: ActionAdd,
			Product: Product{
				Type:                 TypeWholesaleEthernetInternet,
				ProductSpecification: ProductSpecification{ID: TypeWholesaleEthernetInternet},
				Place:                []Site{site},
				Product:              []Service{carrier, data},
			},
		}},
	}, nil
}

// elineRequest builds a private circuit from the fixed data-centre A-end to the customer site.
func (m *Mapper) elineRequest(kind ScenarioKind, site Site, iface model.CircuitInterface, bw model.Bandwidth, resilience string) (QuoteRequest, error) {
	carrier, err := BuildCarrier(iface, resilience)
	if err != nil {
		return QuoteRequest{}, err
	}
	existing := true

	return QuoteRequest{
		ExternalID: m.externalID(kind),
		QuoteItem: []QuoteItem{{
			Action: ActionAdd,
			Product: Product{
				Type:                 TypeWholesaleEthernetEline,
				ProductSpecification: ProductSpecification{ID: TypeWholesaleEthernetEline},
				ExistingAend:         &existing,
				Place:                []Site{dataCentreSite()},
				Product:              []Service{dataCentreHandoff()},
				QuoteItem: []InnerQuoteItem{{
					Action:  ActionAdd,
					Place:   []Site{site},
					Product: []Service{carrier, BuildPointToPointDataService(bw)},
				}},
			},
		}},
	}, nil
}

func (m *Mapper) externalID(kind ScenarioKind) string {
	id := fmt.Sprintf("%s %s", kind.Tag(), m.newID())
	if len(id) > maxExternalIDLen {
		id = id[:maxExternalIDLen]
	}
	return id
}

// checkWithinCeiling rejects a bandwidth above what the physical interface can carry.
func checkWithinCeiling(iface model.CircuitInterface, bw model.Bandwidth) error {
	ceiling, err := iface.Ceiling()
	if err != nil {
		return err
	}
	want, err := bw.Mbps()
	if err != nil {
		return model.WrapQuoteError(model.KindConfiguration, model.SourceQuoteFormation, "invalid circuit bandwidth", err)
	}
	limit, err := ceiling.Mbps()
	if err != nil {
		return model.WrapQuoteError(model.KindConfiguration, model.SourceQuoteFormation, "invalid interface ceiling", err)
	}
	if want > limit {
		return model.NewQuoteError(model.KindConfiguration, model.SourceQuoteFormation,
			"circuit bandwidth %s cannot be greater than circuit interface bandwidth %s", bw, ceiling)
	}
	return nil
}

package btw

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

func newTestMapper() *Mapper {
	return &Mapper{newID: fixedIDs("id-1", "id-2")}
}

func TestToQuoteRequests_SingleOnPreferredBackbone(t *testing.T) {
	reqs, err := newTestMapper().ToQuoteRequests(SingleOnPreferredBackbone, singleOnBT())
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	r := reqs[0]
	assert.Equal(t, "1 id-1", r.ExternalID)
	require.Len(t, r.QuoteItem, 1)
	item := r.QuoteItem[0]
	assert.Equal(t, ActionAdd, item.Action)
	assert.Equal(t, TypeWholesaleEthernetInternet, item.Product.Type)
	assert.Equal(t, []Site{{Type: TypePostcodeSite, Postcode: "EC1A 1BB"}}, item.Product.Place)
	assert.Nil(t, item.Product.ExistingAend)
	assert.Empty(t, item.Product.QuoteItem)

	require.Len(t, item.Product.Product, 2)
	carrier, data := item.Product.Product[0], item.Product.Product[1]
	assert.Equal(t, TypeEtherwayFibreService, carrier.Type)
	assert.Equal(t, "1 Gbit/s", carrier.Bandwidth)
	assert.Equal(t, ResilienceStandard, carrier.Resilience)
	assert.Equal(t, TypeEtherflowInternetService, data.Type)
	assert.Equal(t, "500 Mbit/s", data.Bandwidth)
	assert.Equal(t, "Block /29 (8 LAN IP Addresses)", data.IPAddressBlock)
}

func TestToQuoteRequests_DualActivePassive(t *testing.T) {
	req := dualActiveActive()
	req.Connectivity.DualMode = model.DualActivePassive

	reqs, err := newTestMapper().ToQuoteRequests(DualActivePassive, req)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "2.1 id-1", reqs[0].ExternalID)

	carrier := reqs[0].QuoteItem[0].Product.Product[0]
	assert.Equal(t, ResilienceDiversePlus, carrier.Resilience)
	assert.Equal(t, "10 Gbit/s", carrier.Bandwidth)
}

func TestToQuoteRequests_DualActiveActive(t *testing.T) {
	reqs, err := newTestMapper().ToQuoteRequests(DualActiveActive, dualActiveActive())
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	primary := reqs[0]
	assert.Equal(t, "2 id-1", primary.ExternalID)
	assert.Equal(t, TypeWholesaleEthernetInternet, primary.QuoteItem[0].Product.Type)
	assert.Equal(t, ResilienceDiversePlus, primary.QuoteItem[0].Product.Product[0].Resilience)
	assert.Equal(t, "2 Gbit/s", primary.QuoteItem[0].Product.Product[1].Bandwidth)

	secondary := reqs[1]
	assert.Equal(t, "2 id-2", secondary.ExternalID)
	product := secondary.QuoteItem[0].Product
	assert.Equal(t, TypeWholesaleEthernetEline, product.Type)
	require.Len(t, product.QuoteItem, 1)
	inner := product.QuoteItem[0].Product
	require.Len(t, inner, 2)
	assert.Equal(t, ResilienceStandard, inner[0].Resilience)
	assert.Equal(t, TypeEtherflowConnectedService, inner[1].Type)
	assert.Equal(t, "1 Gbit/s", inner[1].Bandwidth)
}

func TestToQuoteRequests_SingleOffPreferredBackbone(t *testing.T) {
	reqs, err := newTestMapper().ToQuoteRequests(SingleOffPreferredBackbone, singleOffBT())
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	product := reqs[0].QuoteItem[0].Product
	assert.Equal(t, "3 id-1", reqs[0].ExternalID)
	assert.Equal(t, TypeWholesaleEthernetEline, product.Type)
	require.NotNil(t, product.ExistingAend)
	assert.True(t, *product.ExistingAend)
	assert.Equal(t, []Site{{Type: TypeDataCentreSite, DataCentreCode: "YDABX/TA"}}, product.Place)
	require.Len(t, product.Product, 1)
	assert.Equal(t, TypeEtherwayDataCentreService, product.Product[0].Type)
	assert.Equal(t, "1 Gbit/s", product.Product[0].Bandwidth)

	require.Len(t, product.QuoteItem, 1)
	inner := product.QuoteItem[0]
	assert.Equal(t, ActionAdd, inner.Action)
	assert.Equal(t, []Site{{Type: TypeNadKeySite, NadKey: "NAD-A12345"}}, inner.Place)
	require.Len(t, inner.Product, 2)
	assert.Equal(t, TypeEtherwayFibreService, inner.Product[0].Type)
	assert.Equal(t, TypeEtherflowConnectedService, inner.Product[1].Type)
	assert.Equal(t, "100 Mbit/s", inner.Product[1].Bandwidth)
}

func TestToQuoteRequests_InternetRequiresIPBlock(t *testing.T) {
	req := singleOnBT()
	req.Connectivity.IPBlock = ""

	reqs, err := newTestMapper().ToQuoteRequests(SingleOnPreferredBackbone, req)
	require.Error(t, err)
	assert.Nil(t, reqs)
	assert.True(t, errors.Is(err, model.ErrConfiguration))
}

// Composition succeeds exactly when the bandwidth fits the interface.
func TestToQuoteRequests_CeilingProperty(t *testing.T) {
	for _, iface := range model.CircuitInterfaces {
		ceiling, err := iface.Ceiling()
		require.NoError(t, err)
		limit, err := ceiling.Mbps()
		require.NoError(t, err)

		for _, bw := range model.BandwidthOptions {
			mbps, err := bw.Mbps()
			require.NoError(t, err)

			req := singleOnBT()
			req.Connectivity.CircuitInterface = iface
			req.Connectivity.CircuitBandwidth = bw

			_, err = newTestMapper().ToQuoteRequests(SingleOnPreferredBackbone, req)
			if mbps <= limit {
				assert.NoError(t, err, "%s over %s", bw, iface)
			} else {
				require.Error(t, err, "%s over %s", bw, iface)
				assert.True(t, errors.Is(err, model.ErrConfiguration))
				assert.Contains(t, err.Error(), "cannot be greater than circuit interface bandwidth")
			}
		}
	}
}

func TestToQuoteRequests_SecondaryBandwidthOverCeiling(t *testing.T) {
	req := dualActiveActive()
	req.Connectivity.CircuitInterface = model.Interface1000BaseT
	req.Connectivity.CircuitBandwidth = "500 Mbit/s"
	req.Connectivity.CircuitTwoBandwidth = "2 Gbit/s"

	_, err := newTestMapper().ToQuoteRequests(DualActiveActive, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrConfiguration))
}

func TestToQuoteRequests_UnknownScenario(t *testing.T) {
	_, err := newTestMapper().ToQuoteRequests(ScenarioUnknown, singleOnBT())
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrClassification))
}

func TestExternalID_Truncated(t *testing.T) {
	m := &Mapper{newID: func() string { return strings.Repeat("x", 150) }}
	id := m.externalID(DualActivePassive)
	assert.Len(t, id, maxExternalIDLen)
	assert.True(t, strings.HasPrefix(id, "2.1 "))
}

func TestNewMapper_UniqueIDs(t *testing.T) {
	m := NewMapper()
	a, err := m.ToQuoteRequests(SingleOnPreferredBackbone, singleOnBT())
	require.NoError(t, err)
	b, err := m.ToQuoteRequests(SingleOnPreferredBackbone, singleOnBT())
	require.NoError(t, err)
	assert.NotEqual(t, a[0].ExternalID, b[0].ExternalID)
}

func TestQuoteRequest_WireFormat(t *testing.T) {
	reqs, err := newTestMapper().ToQuoteRequests(SingleOffPreferredBackbone, singleOffBT())
	require.NoError(t, err)

	raw, err := json.Marshal(reqs[0])
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))
	item := wire["quoteItem"].([]any)[0].(map[string]any)
	product := item["product"].(map[string]any)
	assert.Equal(t, "WholesaleEthernetEline", product["@type"])
	assert.Equal(t, true, product["existingAend"])
	assert.Equal(t, "WholesaleEthernetEline", product["productSpecification"].(map[string]any)["id"])
	place := product["place"].([]any)[0].(map[string]any)
	assert.Equal(t, "DataCentreSite", place["@type"])
	assert.Equal(t, "YDABX/TA", place["dataCentreCode"])
}

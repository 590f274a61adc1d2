package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

func TestQuoteRequestBody_ToQuoteRequest(t *testing.T) {
	var body QuoteRequestBody
	require.NoError(t, json.Unmarshal([]byte(validBody), &body))
	require.NoError(t, body.Validate())

	req := body.toQuoteRequest()
	assert.Equal(t, model.Location{ID: "NAD-A1", Postcode: "EC1A 1BB"}, req.Location)
	assert.Equal(t, model.IPBlock("Block /28 (16 LAN IP Addresses)"), req.Connectivity.IPBlock)
	assert.Equal(t, model.DiverseBackbone("Cogent +++"), req.Connectivity.PreferredDiverseBackbone)
	assert.Equal(t, &model.SecurityParams{
		SecureIPDelivery: true,
		ZTNARequired:     true,
		ZTNAUsers:        5,
		CASB:             true,
	}, req.Security)
}

func TestQuoteRequestBody_NoSecurity(t *testing.T) {
	body := QuoteRequestBody{
		LocationIdentifier: LocationBody{Postcode: " EC1A 1BB "},
		BTQuoteParams: ParamsBody{
			ServiceType:         "single",
			CircuitInterface:    "1000BASE-SX",
			CircuitBandwidth:    "1 Gbit/s",
			PreferredIPBackbone: "BT",
		},
	}
	require.NoError(t, body.Validate())

	req := body.toQuoteRequest()
	assert.Nil(t, req.Security)
	assert.Equal(t, "EC1A 1BB", req.Location.Postcode)
}

func TestQuoteRequestBody_RejectsUnknownDualMode(t *testing.T) {
	body := QuoteRequestBody{
		LocationIdentifier: LocationBody{Postcode: "EC1A 1BB"},
		BTQuoteParams: ParamsBody{
			ServiceType:        "dual",
			CircuitInterface:   "1000BASE-T",
			CircuitBandwidth:   "100 Mbit/s",
			DualInternetConfig: "Active/Active",
		},
	}
	err := body.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dualInternetConfig")
}

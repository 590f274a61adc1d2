package btw

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

func TestBuildCarrier(t *testing.T) {
	tests := []struct {
		iface model.CircuitInterface
		want  string
	}{
		{model.Interface1000BaseT, "1 Gbit/s"},
		{model.Interface1000BaseLX, "1 Gbit/s"},
		{model.Interface1000BaseSX, "1 Gbit/s"},
		{model.Interface10GBaseLR, "10 Gbit/s"},
		{model.Interface10GBaseSR, "10 Gbit/s"},
	}
	for _, tt := range tests {
		t.Run(string(tt.iface), func(t *testing.T) {
			svc, err := BuildCarrier(tt.iface, ResilienceStandard)
			require.NoError(t, err)
			assert.Equal(t, TypeEtherwayFibreService, svc.Type)
			assert.Equal(t, TypeEtherwayFibreService, svc.ProductSpecification.ID)
			assert.Equal(t, tt.want, svc.Bandwidth)
			assert.Equal(t, ResilienceStandard, svc.Resilience)
		})
	}
}

func TestBuildCarrier_InvalidInterface(t *testing.T) {
	_, err := BuildCarrier("100BASE-TX", ResilienceStandard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrConfiguration))
	assert.Contains(t, err.Error(), "invalid circuit interface format")
}

func TestPrimaryResilience(t *testing.T) {
	assert.Equal(t, ResilienceStandard, PrimaryResilience(model.ServiceSingle))
	assert.Equal(t, ResilienceDiversePlus, PrimaryResilience(model.ServiceDual))
}

func TestBuildInternetDataService(t *testing.T) {
	svc, err := BuildInternetDataService("300 Mbit/s", "Block /27 (32 LAN IP Addresses)")
	require.NoError(t, err)
	assert.Equal(t, TypeEtherflowInternetService, svc.Type)
	assert.Equal(t, "300 Mbit/s", svc.Bandwidth)
	assert.Equal(t, CosPremium, svc.Cos)
	assert.Equal(t, "Block /27 (32 LAN IP Addresses)", svc.IPAddressBlock)
}

func TestBuildInternetDataService_RequiresIPBlock(t *testing.T) {
	_, err := BuildInternetDataService("300 Mbit/s", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrConfiguration))
}

func TestBuildPointToPointDataService(t *testing.T) {
	svc := BuildPointToPointDataService("1 Gbit/s")
	assert.Equal(t, TypeEtherflowConnectedService, svc.Type)
	assert.Equal(t, "1 Gbit/s", svc.Bandwidth)
	assert.Equal(t, CosPremium, svc.Cos)
	assert.Empty(t, svc.IPAddressBlock)
}

func TestBuildSite(t *testing.T) {
	site := BuildSite(model.Location{ID: "NAD-1", Postcode: "EC1A 1BB"})
	assert.Equal(t, Site{Type: TypeNadKeySite, NadKey: "NAD-1"}, site)

	site = BuildSite(model.Location{Postcode: "EC1A 1BB"})
	assert.Equal(t, Site{Type: TypePostcodeSite, Postcode: "EC1A 1BB"}, site)
}

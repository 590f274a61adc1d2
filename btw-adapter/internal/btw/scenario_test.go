package btw

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		params model.ConnectivityParams
		want   ScenarioKind
	}{
		{
			name:   "single on BT",
			params: model.ConnectivityParams{ServiceType: model.ServiceSingle, PreferredBackbone: model.BackboneBT},
			want:   SingleOnPreferredBackbone,
		},
		{
			name:   "single on third party backbone",
			params: model.ConnectivityParams{ServiceType: model.ServiceSingle, PreferredBackbone: model.BackboneLumen},
			want:   SingleOffPreferredBackbone,
		},
		{
			name:   "single on any backbone",
			params: model.ConnectivityParams{ServiceType: model.ServiceSingle, PreferredBackbone: model.BackboneAny},
			want:   SingleOffPreferredBackbone,
		},
		{
			name: "dual active active",
			params: model.ConnectivityParams{
				ServiceType: model.ServiceDual, DualMode: model.DualActiveActive, CircuitTwoBandwidth: "1 Gbit/s",
			},
			want: DualActiveActive,
		},
		{
			name:   "dual active passive",
			params: model.ConnectivityParams{ServiceType: model.ServiceDual, DualMode: model.DualActivePassive},
			want:   DualActivePassive,
		},
		{
			name: "dual active passive ignores secondary bandwidth",
			params: model.ConnectivityParams{
				ServiceType: model.ServiceDual, DualMode: model.DualActivePassive, CircuitTwoBandwidth: "1 Gbit/s",
			},
			want: DualActivePassive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_NoMatch(t *testing.T) {
	tests := []struct {
		name   string
		params model.ConnectivityParams
	}{
		{"single without backbone", model.ConnectivityParams{ServiceType: model.ServiceSingle}},
		{"dual active active without secondary", model.ConnectivityParams{ServiceType: model.ServiceDual, DualMode: model.DualActiveActive}},
		{"dual without mode", model.ConnectivityParams{ServiceType: model.ServiceDual, CircuitTwoBandwidth: "1 Gbit/s"}},
		{"empty", model.ConnectivityParams{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrClassification))
			assert.Equal(t, ScenarioUnknown, got)
		})
	}
}

// Every combination of the classifying fields matches at most one predicate, and
// Classify agrees with the predicates.
func TestClassify_ExclusiveOverInputSpace(t *testing.T) {
	serviceTypes := []model.ServiceType{model.ServiceSingle, model.ServiceDual}
	backbones := append([]model.Backbone{""}, model.Backbones...)
	modes := []model.DualMode{"", model.DualActiveActive, model.DualActivePassive}
	secondaries := []model.Bandwidth{"", "1 Gbit/s"}

	for _, st := range serviceTypes {
		for _, bb := range backbones {
			for _, mode := range modes {
				for _, second := range secondaries {
					p := model.ConnectivityParams{
						ServiceType:         st,
						PreferredBackbone:   bb,
						DualMode:            mode,
						CircuitTwoBandwidth: second,
					}
					matches := 0
					for _, s := range scenarios {
						if s.match(p) {
							matches++
						}
					}
					require.LessOrEqual(t, matches, 1, "params %+v", p)

					kind, err := Classify(p)
					if matches == 0 {
						assert.Error(t, err, "params %+v", p)
						continue
					}
					require.NoError(t, err)
					assert.NotEqual(t, ScenarioUnknown, kind)
				}
			}
		}
	}
}

func TestScenarioKind_Tag(t *testing.T) {
	assert.Equal(t, "1", SingleOnPreferredBackbone.Tag())
	assert.Equal(t, "2", DualActiveActive.Tag())
	assert.Equal(t, "2.1", DualActivePassive.Tag())
	assert.Equal(t, "3", SingleOffPreferredBackbone.Tag())
	assert.Equal(t, "unknown", ScenarioUnknown.String())
}

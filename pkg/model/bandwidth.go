package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Bandwidth is a vendor bandwidth label such as "100 Mbit/s" or "1.5 Gbit/s".
type Bandwidth string

// BandwidthOptions is the full label vocabulary in ascending order.
var BandwidthOptions = []Bandwidth{
	"10 Mbit/s", "20 Mbit/s", "30 Mbit/s", "40 Mbit/s", "50 Mbit/s",
	"60 Mbit/s", "70 Mbit/s", "80 Mbit/s", "90 Mbit/s", "100 Mbit/s",
	"200 Mbit/s", "300 Mbit/s", "400 Mbit/s", "500 Mbit/s",
	"1 Gbit/s", "1.5 Gbit/s", "2 Gbit/s", "2.5 Gbit/s", "3 Gbit/s",
	"3.5 Gbit/s", "4 Gbit/s", "4.5 Gbit/s", "5 Gbit/s", "5.5 Gbit/s",
	"6 Gbit/s", "6.5 Gbit/s", "7 Gbit/s", "7.5 Gbit/s", "8 Gbit/s",
	"8.5 Gbit/s", "9 Gbit/s", "9.5 Gbit/s", "10 Gbit/s",
}

// ParseMbps converts a bandwidth label to megabits per second.
func ParseMbps(label string) (float64, error) {
	normalized := strings.Join(strings.Fields(strings.ToLower(label)), "")

	multiplier := 1.0
	idx := strings.Index(normalized, "gbit")
	if idx >= 0 {
		multiplier = 1000
	} else {
		idx = strings.Index(normalized, "mbit")
	}
	if idx <= 0 {
		return 0, fmt.Errorf("unrecognised bandwidth label %q", label)
	}

	value, err := strconv.ParseFloat(normalized[:idx], 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognised bandwidth label %q: %w", label, err)
	}
	return value * multiplier, nil
}

// Mbps converts the label to megabits per second.
func (b Bandwidth) Mbps() (float64, error) {
	return ParseMbps(string(b))
}

// Valid reports whether b is part of the vendor vocabulary.
func (b Bandwidth) Valid() bool {
	for _, opt := range BandwidthOptions {
		if b == opt {
			return true
		}
	}
	return false
}

// FormatBandwidth renders a megabit value as a vendor label. Values of one gigabit
// and above use the Gbit/s unit.
func FormatBandwidth(mbps float64) Bandwidth {
	if mbps >= 1000 {
		return Bandwidth(strconv.FormatFloat(mbps/1000, 'f', -1, 64) + " Gbit/s")
	}
	return Bandwidth(strconv.FormatFloat(mbps, 'f', -1, 64) + " Mbit/s")
}

// CircuitInterface is the physical hand-off type of the access circuit.
type CircuitInterface string

const (
	Interface1000BaseT  CircuitInterface = "1000BASE-T"
	Interface1000BaseLX CircuitInterface = "1000BASE-LX"
	Interface1000BaseSX CircuitInterface = "1000BASE-SX"
	Interface10GBaseLR  CircuitInterface = "10GBASE-LR"
	Interface10GBaseSR  CircuitInterface = "10GBASE-SR"
)

var CircuitInterfaces = []CircuitInterface{
	Interface1000BaseT, Interface1000BaseLX, Interface1000BaseSX,
	Interface10GBaseLR, Interface10GBaseSR,
}

// Ceiling returns the bandwidth implied by the interface family.
func (i CircuitInterface) Ceiling() (Bandwidth, error) {
	switch {
	case strings.HasPrefix(string(i), "1000BASE"):
		return "1 Gbit/s", nil
	case strings.HasPrefix(string(i), "10GBASE"):
		return "10 Gbit/s", nil
	default:
		return "", NewQuoteError(KindConfiguration, SourceQuoteFormation,
			"invalid circuit interface format %q", string(i))
	}
}

func (i CircuitInterface) Valid() bool {
	for _, opt := range CircuitInterfaces {
		if i == opt {
			return true
		}
	}
	return false
}

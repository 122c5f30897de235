// Package telemetry produces and loads spacecraft telemetry series for the
// detection pipeline. The core treats any source the same; this package
// covers the synthetic-generation and file-loading collaborators.
package telemetry

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/telemetrix/model"
)

// AnomalyWindow shifts one channel by a fixed offset over the half-open
// index range [Start, End).
type AnomalyWindow struct {
	Channel string  `json:"channel"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Offset  float64 `json:"offset"`
}

// GeneratorConfig shapes a synthetic series: smooth sinusoidal channels
// with optional injected anomaly windows.
type GeneratorConfig struct {
	Samples int             `json:"samples"`
	Windows []AnomalyWindow `json:"anomaly_windows"`
}

// DefaultGeneratorConfig is the reference scenario: 500 samples with a
// temperature excursion over [200, 220) and a voltage sag over [350, 360).
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Samples: 500,
		Windows: []AnomalyWindow{
			{Channel: model.ChannelTemperature, Start: 200, End: 220, Offset: 15},
			{Channel: model.ChannelVoltage, Start: 350, End: 360, Offset: -2},
		},
	}
}

// Generate builds a deterministic synthetic series. Each channel is a
// sinusoid around its nominal operating point; anomaly windows are applied
// on top as step offsets.
func Generate(cfg GeneratorConfig) (model.TelemetrySeries, error) {
	if cfg.Samples < 1 {
		return nil, fmt.Errorf("%w: sample count %d, need at least 1", model.ErrInvalidInput, cfg.Samples)
	}
	for _, w := range cfg.Windows {
		if w.Start < 0 || w.End > cfg.Samples || w.Start >= w.End {
			return nil, fmt.Errorf("%w: anomaly window [%d, %d) outside series of %d samples", model.ErrInvalidInput, w.Start, w.End, cfg.Samples)
		}
		if !validChannel(w.Channel) {
			return nil, fmt.Errorf("%w: unknown channel %q in anomaly window", model.ErrInvalidInput, w.Channel)
		}
	}

	series := make(model.TelemetrySeries, cfg.Samples)
	for i := range series {
		t := float64(i)
		series[i] = model.TelemetrySample{
			Timestamp:      t,
			Temperature:    25 + 2*math.Sin(0.02*t),
			Voltage:        5 + 0.2*math.Sin(0.01*t),
			Current:        2 + 0.1*math.Sin(0.03*t),
			SignalStrength: 90 + 5*math.Sin(0.02*t),
		}
	}

	for _, w := range cfg.Windows {
		for i := w.Start; i < w.End; i++ {
			switch w.Channel {
			case model.ChannelTemperature:
				series[i].Temperature += w.Offset
			case model.ChannelVoltage:
				series[i].Voltage += w.Offset
			case model.ChannelCurrent:
				series[i].Current += w.Offset
			case model.ChannelSignalStrength:
				series[i].SignalStrength += w.Offset
			}
		}
	}
	return series, nil
}

func validChannel(name string) bool {
	for _, c := range model.ChannelNames {
		if c == name {
			return true
		}
	}
	return false
}

package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/signalsfoundry/telemetrix/model"
)

// Columnar JSON shape: parallel per-channel arrays sharing one time axis.
// Kept unexported so the wire format can evolve independently of the model.
type seriesJSON struct {
	Time           []float64 `json:"time"`
	Temperature    []float64 `json:"temperature"`
	Voltage        []float64 `json:"voltage"`
	Current        []float64 `json:"current"`
	SignalStrength []float64 `json:"signal_strength"`
}

// LoadSeries reads a columnar JSON telemetry document from r. Every channel
// array must match the time axis in length, and every value must be finite;
// the detector assumes both and does not impute.
func LoadSeries(r io.Reader) (model.TelemetrySeries, error) {
	var payload seriesJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode failed: %v", model.ErrInvalidInput, err)
	}

	n := len(payload.Time)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty time axis", model.ErrInvalidInput)
	}
	channels := map[string][]float64{
		model.ChannelTemperature:    payload.Temperature,
		model.ChannelVoltage:        payload.Voltage,
		model.ChannelCurrent:        payload.Current,
		model.ChannelSignalStrength: payload.SignalStrength,
	}
	for _, name := range model.ChannelNames {
		values := channels[name]
		if len(values) != n {
			return nil, fmt.Errorf("%w: channel %s has %d values for %d timestamps", model.ErrInvalidInput, name, len(values), n)
		}
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite %s value at index %d", model.ErrInvalidInput, name, i)
			}
		}
	}

	series := make(model.TelemetrySeries, n)
	for i := 0; i < n; i++ {
		series[i] = model.TelemetrySample{
			Timestamp:      payload.Time[i],
			Temperature:    payload.Temperature[i],
			Voltage:        payload.Voltage[i],
			Current:        payload.Current[i],
			SignalStrength: payload.SignalStrength[i],
		}
	}
	return series, nil
}

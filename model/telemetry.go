package model

// ChannelCount is the number of numeric telemetry channels in a sample.
const ChannelCount = 4

// Canonical channel names, in feature order.
const (
	ChannelTemperature    = "temperature"
	ChannelVoltage        = "voltage"
	ChannelCurrent        = "current"
	ChannelSignalStrength = "signal_strength"
)

// ChannelNames lists the telemetry channels in canonical feature order.
var ChannelNames = [ChannelCount]string{
	ChannelTemperature,
	ChannelVoltage,
	ChannelCurrent,
	ChannelSignalStrength,
}

// TelemetrySample is a single multi-channel reading from the spacecraft bus.
type TelemetrySample struct {
	// Timestamp is the sample's position on the series' common time axis.
	Timestamp float64 `json:"time"`

	Temperature    float64 `json:"temperature"`
	Voltage        float64 `json:"voltage"`
	Current        float64 `json:"current"`
	SignalStrength float64 `json:"signal_strength"`
}

// Features returns the sample's numeric channels in canonical order.
func (s TelemetrySample) Features() []float64 {
	return []float64{s.Temperature, s.Voltage, s.Current, s.SignalStrength}
}

// TelemetrySeries is an ordered sequence of samples on a common time axis.
// Order is temporal and meaningful.
type TelemetrySeries []TelemetrySample

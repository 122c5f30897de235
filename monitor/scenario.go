package monitor

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/signalsfoundry/telemetrix/anomaly"
	"github.com/signalsfoundry/telemetrix/core"
	"github.com/signalsfoundry/telemetrix/model"
	"github.com/signalsfoundry/telemetrix/telemetry"
)

// Scenario is a fully-resolved monitoring setup loaded from JSON.
type Scenario struct {
	Config     Config
	Generator  telemetry.GeneratorConfig
	Provider   core.ProviderKind
	Thresholds model.RiskThresholds
}

// JSON shapes are unexported so the file format can evolve independently.
type scenarioJSON struct {
	Interval    string                    `json:"interval"`
	Telemetry   telemetry.GeneratorConfig `json:"telemetry"`
	Detector    detectorJSON              `json:"detector"`
	Conjunction conjunctionJSON           `json:"conjunction"`
}

type detectorJSON struct {
	Contamination float64 `json:"contamination"`
	Seed          int64   `json:"seed"`
	Trees         int     `json:"trees"`
	SampleSize    int     `json:"sample_size"`
}

type conjunctionJSON struct {
	SampleCount int                   `json:"sample_count"`
	Provider    string                `json:"provider"`
	Thresholds  *model.RiskThresholds `json:"thresholds"`
	OrbitA      orbitJSON             `json:"orbit_a"`
	OrbitB      orbitJSON             `json:"orbit_b"`
}

type orbitJSON struct {
	Name string `json:"name"`

	// Exactly one of radius_km (from body centre) or altitude_km (above
	// the body surface) must be positive.
	RadiusKm   float64 `json:"radius_km"`
	AltitudeKm float64 `json:"altitude_km"`

	// Optional custom central body; defaults to Earth.
	Body *bodyJSON `json:"body"`

	Epoch    string `json:"epoch"`
	TLELine1 string `json:"tle_line1"`
	TLELine2 string `json:"tle_line2"`
}

type bodyJSON struct {
	Name            string  `json:"name"`
	GravParam       float64 `json:"grav_param"`
	SurfaceRadiusKm float64 `json:"surface_radius_km"`
}

// LoadScenario reads a JSON scenario from r and resolves it into runnable
// configuration. It fails only on structural problems; physical validation
// of the orbits happens at evaluation time.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("scenario: decode failed: %w", err)
	}

	interval := 30 * time.Second
	if payload.Interval != "" {
		parsed, err := time.ParseDuration(payload.Interval)
		if err != nil {
			return nil, fmt.Errorf("scenario: bad interval %q: %w", payload.Interval, err)
		}
		interval = parsed
	}

	gen := payload.Telemetry
	if gen.Samples == 0 {
		gen = telemetry.DefaultGeneratorConfig()
	}

	contamination := payload.Detector.Contamination
	if contamination == 0 {
		contamination = 0.05
	}

	sampleCount := payload.Conjunction.SampleCount
	if sampleCount == 0 {
		sampleCount = 100
	}

	thresholds := model.DefaultRiskThresholds()
	if payload.Conjunction.Thresholds != nil {
		thresholds = *payload.Conjunction.Thresholds
	}

	orbitA, err := resolveOrbit(payload.Conjunction.OrbitA, "orbit_a")
	if err != nil {
		return nil, err
	}
	orbitB, err := resolveOrbit(payload.Conjunction.OrbitB, "orbit_b")
	if err != nil {
		return nil, err
	}

	return &Scenario{
		Config: Config{
			Interval:      interval,
			Contamination: contamination,
			Seed:          payload.Detector.Seed,
			Detector: anomaly.Options{
				Trees:      payload.Detector.Trees,
				SampleSize: payload.Detector.SampleSize,
				Seed:       payload.Detector.Seed,
			},
			OrbitA:      orbitA,
			OrbitB:      orbitB,
			SampleCount: sampleCount,
		},
		Generator:  gen,
		Provider:   core.ProviderKind(payload.Conjunction.Provider),
		Thresholds: thresholds,
	}, nil
}

func resolveOrbit(o orbitJSON, field string) (model.OrbitDescriptor, error) {
	body := model.Earth
	if o.Body != nil {
		body = model.CentralBody{
			Name:            o.Body.Name,
			GravParam:       o.Body.GravParam,
			SurfaceRadiusKm: o.Body.SurfaceRadiusKm,
		}
	}

	radius := o.RadiusKm
	if radius == 0 && o.AltitudeKm != 0 {
		radius = body.SurfaceRadiusKm + o.AltitudeKm
	}
	if radius == 0 {
		return model.OrbitDescriptor{}, fmt.Errorf("scenario: %s needs radius_km or altitude_km", field)
	}

	epoch := time.Time{}
	if o.Epoch != "" {
		parsed, err := time.Parse(time.RFC3339, o.Epoch)
		if err != nil {
			return model.OrbitDescriptor{}, fmt.Errorf("scenario: %s has bad epoch %q: %w", field, o.Epoch, err)
		}
		epoch = parsed
	}

	return model.OrbitDescriptor{
		Name:     o.Name,
		Body:     body,
		RadiusKm: radius,
		Epoch:    epoch,
		TLELine1: o.TLELine1,
		TLELine2: o.TLELine2,
	}, nil
}

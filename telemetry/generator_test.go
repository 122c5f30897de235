package telemetry

import (
	"errors"
	"math"
	"testing"

	"github.com/signalsfoundry/telemetrix/model"
)

func TestGenerateReferenceScenario(t *testing.T) {
	series, err := Generate(DefaultGeneratorConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(series) != 500 {
		t.Fatalf("got %d samples, want 500", len(series))
	}

	// Baseline channels oscillate around their operating points.
	if math.Abs(series[0].Temperature-25) > 2.001 {
		t.Errorf("temperature baseline %v outside 25±2", series[0].Temperature)
	}
	if math.Abs(series[0].Voltage-5) > 0.201 {
		t.Errorf("voltage baseline %v outside 5±0.2", series[0].Voltage)
	}

	// The injected temperature window sits well above the operating band.
	for i := 200; i < 220; i++ {
		if series[i].Temperature < 25+15-2.001 {
			t.Errorf("sample %d temperature %v missing the +15 excursion", i, series[i].Temperature)
		}
	}
	// And the sample right after the window is back to nominal.
	if series[220].Temperature > 27.001 {
		t.Errorf("sample 220 temperature %v should be nominal", series[220].Temperature)
	}

	// Voltage sag window.
	for i := 350; i < 360; i++ {
		if series[i].Voltage > 5-2+0.201 {
			t.Errorf("sample %d voltage %v missing the -2 sag", i, series[i].Voltage)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs across identical generations", i)
		}
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  GeneratorConfig
	}{
		{"no samples", GeneratorConfig{Samples: 0}},
		{"window past end", GeneratorConfig{
			Samples: 100,
			Windows: []AnomalyWindow{{Channel: model.ChannelTemperature, Start: 90, End: 120, Offset: 1}},
		}},
		{"inverted window", GeneratorConfig{
			Samples: 100,
			Windows: []AnomalyWindow{{Channel: model.ChannelVoltage, Start: 50, End: 50, Offset: 1}},
		}},
		{"unknown channel", GeneratorConfig{
			Samples: 100,
			Windows: []AnomalyWindow{{Channel: "reactor_temp", Start: 0, End: 10, Offset: 1}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Generate(tc.cfg); !errors.Is(err, model.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

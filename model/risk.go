package model

import "fmt"

// RiskTier classifies conjunction risk from a minimum approach distance.
type RiskTier int

const (
	RiskSafe RiskTier = iota
	RiskWarning
	RiskCritical
)

func (t RiskTier) String() string {
	switch t {
	case RiskSafe:
		return "SAFE"
	case RiskWarning:
		return "WARNING"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON renders the tier as its string name.
func (t RiskTier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// RiskThresholds are the distance cutoffs (km) between risk tiers.
// Comparisons are strict: a distance exactly at a cutoff falls into the
// safer tier (d = CriticalKm is WARNING, d = WarningKm is SAFE).
type RiskThresholds struct {
	CriticalKm float64 `json:"critical_km"`
	WarningKm  float64 `json:"warning_km"`
}

// DefaultRiskThresholds returns the baseline 10 km / 50 km cutoffs.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{CriticalKm: 10, WarningKm: 50}
}

// Validate checks the cutoffs are positive and strictly ordered.
func (t RiskThresholds) Validate() error {
	if t.CriticalKm <= 0 || t.WarningKm <= 0 {
		return fmt.Errorf("risk thresholds must be positive, got critical=%v warning=%v", t.CriticalKm, t.WarningKm)
	}
	if t.CriticalKm >= t.WarningKm {
		return fmt.Errorf("critical threshold %v must be below warning threshold %v", t.CriticalKm, t.WarningKm)
	}
	return nil
}

// Classify maps a minimum approach distance to a risk tier.
func (t RiskThresholds) Classify(distanceKm float64) RiskTier {
	switch {
	case distanceKm < t.CriticalKm:
		return RiskCritical
	case distanceKm < t.WarningKm:
		return RiskWarning
	default:
		return RiskSafe
	}
}

package core

import (
	"fmt"
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/telemetrix/model"
)

// PositionProvider computes an orbit position at an elapsed time offset
// from the orbit's epoch. Implementations differ only in fidelity; the
// conjunction evaluator is agnostic to which one computes positions.
type PositionProvider interface {
	// PositionAt returns the position in kilometres at offsetSeconds
	// after the orbit epoch.
	PositionAt(offsetSeconds float64) (Vec3, error)
}

// ProviderKind selects the position computation fidelity.
type ProviderKind string

const (
	// ProviderCircular is the closed-form equatorial circular orbit.
	ProviderCircular ProviderKind = "circular"
	// ProviderSGP4 propagates the orbit's TLE with SGP4.
	ProviderSGP4 ProviderKind = "sgp4"
)

// NewPositionProvider constructs a provider of the requested kind for the
// orbit. An empty kind defaults to the circular closed form.
func NewPositionProvider(kind ProviderKind, o model.OrbitDescriptor) (PositionProvider, error) {
	switch kind {
	case ProviderCircular, "":
		return NewCircularProvider(o)
	case ProviderSGP4:
		return NewSGP4Provider(o)
	default:
		return nil, fmt.Errorf("%w: unknown position provider %q", model.ErrInvalidOrbit, kind)
	}
}

// ValidateOrbit rejects non-physical orbit parameters: non-positive radius,
// a radius at or below the central body's surface, or a missing
// gravitational parameter.
func ValidateOrbit(o model.OrbitDescriptor) error {
	if o.RadiusKm <= 0 {
		return fmt.Errorf("%w: orbit %q has non-positive radius %v km", model.ErrInvalidOrbit, o.Name, o.RadiusKm)
	}
	if o.Body.GravParam <= 0 {
		return fmt.Errorf("%w: orbit %q has non-positive gravitational parameter %v", model.ErrInvalidOrbit, o.Name, o.Body.GravParam)
	}
	if o.RadiusKm <= o.Body.SurfaceRadiusKm {
		return fmt.Errorf("%w: orbit %q radius %v km is at or below the %s surface (%v km)",
			model.ErrInvalidOrbit, o.Name, o.RadiusKm, o.Body.Name, o.Body.SurfaceRadiusKm)
	}
	return nil
}

// CircularProvider computes positions for an idealized circular, equatorial
// orbit: r · (cos θ, sin θ, 0) with θ = 2π·t/T.
type CircularProvider struct {
	radiusKm  float64
	periodSec float64
}

// NewCircularProvider validates the orbit and derives its period.
func NewCircularProvider(o model.OrbitDescriptor) (*CircularProvider, error) {
	if err := ValidateOrbit(o); err != nil {
		return nil, err
	}
	return &CircularProvider{
		radiusKm:  o.RadiusKm,
		periodSec: o.PeriodSeconds(),
	}, nil
}

// PositionAt returns the in-plane position at the given elapsed time.
func (p *CircularProvider) PositionAt(offsetSeconds float64) (Vec3, error) {
	theta := 2 * math.Pi * offsetSeconds / p.periodSec
	return Vec3{
		X: p.radiusKm * math.Cos(theta),
		Y: p.radiusKm * math.Sin(theta),
	}, nil
}

// SGP4Provider propagates a TLE with SGP4 for higher-fidelity positions.
// Positions are ECI kilometres; propagation resolution is one second, which
// is well below the sampling steps used for conjunction screening.
type SGP4Provider struct {
	sat   satellite.Satellite
	epoch time.Time
}

// NewSGP4Provider builds a provider from the orbit's TLE, seeded at its epoch.
func NewSGP4Provider(o model.OrbitDescriptor) (*SGP4Provider, error) {
	if err := ValidateOrbit(o); err != nil {
		return nil, err
	}
	if o.TLELine1 == "" || o.TLELine2 == "" {
		return nil, fmt.Errorf("%w: orbit %q has no TLE for SGP4 propagation", model.ErrInvalidOrbit, o.Name)
	}
	if o.Epoch.IsZero() {
		return nil, fmt.Errorf("%w: orbit %q needs an epoch for SGP4 propagation", model.ErrInvalidOrbit, o.Name)
	}
	sat := satellite.TLEToSat(o.TLELine1, o.TLELine2, satellite.GravityWGS72)
	return &SGP4Provider{sat: sat, epoch: o.Epoch}, nil
}

// PositionAt propagates the satellite to epoch+offset.
func (p *SGP4Provider) PositionAt(offsetSeconds float64) (Vec3, error) {
	t := p.epoch.Add(time.Duration(offsetSeconds * float64(time.Second))).UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	pos, _ := satellite.Propagate(p.sat, year, int(month), day, hour, min, sec)
	v := Vec3{X: pos.X, Y: pos.Y, Z: pos.Z}
	if !v.Finite() {
		return Vec3{}, fmt.Errorf("%w: SGP4 propagation produced non-finite position at offset %vs", model.ErrNumerical, offsetSeconds)
	}
	return v, nil
}

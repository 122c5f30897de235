package model

import (
	"math"
	"time"
)

// CentralBody describes the gravitational primary an orbit circles.
type CentralBody struct {
	Name string

	// GravParam is the standard gravitational parameter μ in km³/s².
	GravParam float64

	// SurfaceRadiusKm is the body's physical radius in kilometres. Orbits
	// at or below this radius are rejected as non-physical.
	SurfaceRadiusKm float64
}

// Earth with the mean radius and μ used throughout the simulator.
var Earth = CentralBody{
	Name:            "earth",
	GravParam:       398600.4418,
	SurfaceRadiusKm: 6371.0,
}

// OrbitDescriptor is a simplified circular, equatorial orbit around a
// central body. Immutable once constructed.
type OrbitDescriptor struct {
	Name string

	Body CentralBody

	// RadiusKm is the circular orbit radius measured from the body centre.
	RadiusKm float64

	// Epoch anchors the orbit's phase; offset zero corresponds to the
	// satellite sitting on the +X axis for the circular provider.
	Epoch time.Time

	// Optional TLE pair. When present the orbit can be propagated with
	// SGP4 instead of the circular closed form.
	TLELine1 string
	TLELine2 string
}

// PeriodSeconds returns the orbital period from Kepler's third law,
// T = 2π √(r³/μ). Zero is returned for non-positive radius or μ; callers
// validate those before sampling.
func (o OrbitDescriptor) PeriodSeconds() float64 {
	if o.RadiusKm <= 0 || o.Body.GravParam <= 0 {
		return 0
	}
	r := o.RadiusKm
	return 2 * math.Pi * math.Sqrt(r*r*r/o.Body.GravParam)
}

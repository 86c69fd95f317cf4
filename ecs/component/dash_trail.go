package component

import "image/color"

// DashTrail emits trail particles behind a dashing entity while the
// entity's dash bonus lasts.
type DashTrail struct {
	// Interval is the time between trail particles in seconds.
	Interval float64
	// Accum is the time since the last emitted particle.
	Accum float64
	// Active is set by a dash trail event and cleared once the bonus ends.
	Active bool

	Life   float64
	Radius float64
	Color  color.RGBA
}

var DashTrailComponent = NewComponent[DashTrail]("dash_trail")

// DashBurst describes the ring of particles spawned when a dash fires.
type DashBurst struct {
	Count  int
	Speed  float64
	Life   float64
	Radius float64
	Color  color.RGBA
}

var DashBurstComponent = NewComponent[DashBurst]("dash_burst")

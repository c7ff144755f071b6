package sim

import (
	"math"
	"time"
)

const (
	daylightStart = 6.0
	daylightEnd   = 18.0
)

// IrradianceFactor approximates sun intensity at a site as a dimensionless
// factor, roughly [0,1]. The site-local hour is the UTC hour shifted by
// longitude/15 — coarse on purpose, no timezone tables and no solar-position
// math. Latitude is accepted for symmetry with a real model but does not
// enter the approximation. Each call takes a fresh jitter draw, so two calls
// at the same instant differ.
//
// The jitter term can push the pre-seasonal factor slightly above 1; that
// overshoot is left unclamped.
func (c *Context) IrradianceFactor(latitude, longitude float64, now time.Time) float64 {
	localHour := math.Mod(float64(now.UTC().Hour())+longitude/15, 24)
	if localHour < 0 {
		localHour += 24
	}

	var factor float64
	if localHour >= daylightStart && localHour < daylightEnd {
		sunAngle := (localHour - daylightStart) / 12 * math.Pi
		factor = 0.8 * (1 + 0.5*c.Rand.Float64()) * math.Abs(math.Sin(sunAngle))
	}

	dayOfYear := float64(now.UTC().YearDay())
	seasonal := 0.8 + 0.4*math.Sin((dayOfYear-80)/365*2*math.Pi)

	return factor * seasonal
}

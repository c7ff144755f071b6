package sim

import (
	"math"
	"time"

	"solarfleet/internal/fleet"
)

const (
	maxIrradianceWM2 = 1200

	nominalDCVoltage = 600
	nominalACVoltage = 400
)

// Synthesizer derives telemetry readings from site state. All randomness
// flows through the shared Context.
type Synthesizer struct {
	ctx *Context
}

// NewSynthesizer returns a synthesizer drawing from ctx.
func NewSynthesizer(ctx *Context) *Synthesizer {
	return &Synthesizer{ctx: ctx}
}

// Derive computes one Reading for the site at now and advances the site's
// cumulative energy counter. The derivation chain is ordered: temperatures,
// irradiance, power, energy split, then status overrides, then bus voltages
// from the final power figure.
//
// kW, °C and V fields are rounded to one decimal and irradiance to a whole
// W/m² before the reading leaves this package; downstream consumers rely on
// that precision.
func (s *Synthesizer) Derive(site *fleet.Site, factor float64, tick time.Duration, now time.Time) Reading {
	rng := s.ctx.Rand

	baseTemp := 25 + (-10 + rng.Float64()*25)
	ambientTemp := baseTemp + (-5 + rng.Float64()*10)
	moduleTemp := ambientTemp + factor*(5+rng.Float64()*10)

	irradiance := factor * maxIrradianceWM2 * (0.8 + rng.Float64()*0.2)

	efficiency := 0.15 + rng.Float64()*0.07
	theoretical := site.Profile.CapacityKW * (irradiance / 1000) * efficiency
	power := theoretical * (0.85 + rng.Float64()*0.13)
	if power < 0 {
		power = 0
	}

	increment := power * tick.Seconds() / 3600
	site.State.EnergyGeneratedKWH += increment

	utilisation := 0.1 + rng.Float64()*0.2
	utilised := increment * utilisation
	exported := increment - utilised

	override := s.ctx.evaluateStatus(site.State, now)
	power *= override.powerScale
	if override.offline {
		power = 0
		irradiance = 0
	}

	var dcVoltage, acVoltage float64
	if power > 0 {
		dcVoltage = nominalDCVoltage + (-50 + rng.Float64()*100)
		acVoltage = nominalACVoltage + (-20 + rng.Float64()*40)
	}

	return Reading{
		Timestamp:          now,
		SiteID:             site.Profile.SiteID,
		AmbientTempC:       round1(ambientTemp),
		ModuleTempC:        round1(moduleTemp),
		IrradianceWM2:      math.Round(irradiance),
		EnergyGeneratedKWH: round1(site.State.EnergyGeneratedKWH),
		PowerOutputKW:      round1(power),
		EnergyUtilisedKWH:  round1(utilised),
		EnergyExportedKWH:  round1(exported),
		SystemStatus:       override.systemStatus,
		InverterStatus:     override.inverterStatus,
		StringFaults:       override.stringFaults,
		DCVoltageV:         round1(dcVoltage),
		ACVoltageV:         round1(acVoltage),
	}
}

// NewStaticDescriptor builds the retained descriptor for a site.
func NewStaticDescriptor(profile fleet.SiteProfile) StaticDescriptor {
	return StaticDescriptor{
		SiteID:           profile.SiteID,
		SiteName:         profile.Name,
		Latitude:         profile.Latitude,
		Longitude:        profile.Longitude,
		Country:          profile.Country,
		Timezone:         profile.Timezone,
		InstallationDate: profile.InstallationDate.Format("2006-01-02"),
		SystemCapacityKW: profile.CapacityKW,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

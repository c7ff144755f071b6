package sim

import (
	"time"

	"solarfleet/internal/fleet"
)

type faultClass int

const (
	systemFault faultClass = iota
	inverterFault
	stringFault
)

// faultOutcomes is resolved with a single uniform draw against cumulative
// weights, so the outcomes are mutually exclusive by construction: 30%
// system fault, then 35% inverter fault, then 35% string faults.
var faultOutcomes = []struct {
	cum   float64
	class faultClass
}{
	{0.30, systemFault},
	{0.65, inverterFault},
	{1.00, stringFault},
}

// Chance per tick of a healthy site entering maintenance.
const maintenanceStartProbability = 0.0001

// statusOverride is what the state machine hands back to the synthesizer.
// powerScale applies to the already derived power; offline zeroes power and
// irradiance outright.
type statusOverride struct {
	systemStatus   string
	inverterStatus string
	stringFaults   int
	powerScale     float64
	offline        bool
}

// evaluateStatus runs the fault/maintenance state machine for one site and
// one tick. Maintenance is sticky until its end time; fault outcomes are
// redrawn every tick and never persist. Maintenance can only begin on a tick
// where no fault fired.
func (c *Context) evaluateStatus(st *fleet.RuntimeState, now time.Time) statusOverride {
	out := statusOverride{
		systemStatus:   SystemOnline,
		inverterStatus: InverterHealthy,
		powerScale:     1,
	}

	if st.Maintenance {
		if !now.Before(st.MaintenanceEnd) {
			st.Maintenance = false
			st.MaintenanceEnd = time.Time{}
		} else {
			out.systemStatus = SystemOffline
			out.inverterStatus = InverterMaintenance
			out.offline = true
			return out
		}
	}

	if c.Rand.Float64() < st.FaultProbability {
		u := c.Rand.Float64()
		for _, o := range faultOutcomes {
			if u >= o.cum {
				continue
			}
			switch o.class {
			case systemFault:
				out.systemStatus = SystemFault
				out.powerScale = 0.1
			case inverterFault:
				out.inverterStatus = InverterFault
				out.powerScale = 0.7
			case stringFault:
				out.stringFaults = 1 + c.Rand.Intn(5)
				out.powerScale = 0.8 + c.Rand.Float64()*0.15
			}
			return out
		}
	}

	if c.Rand.Float64() < maintenanceStartProbability {
		st.Maintenance = true
		st.MaintenanceEnd = now.Add(time.Duration(3600+c.Rand.Intn(18001)) * time.Second)
		out.systemStatus = SystemOffline
		out.inverterStatus = InverterMaintenance
		out.offline = true
	}

	return out
}

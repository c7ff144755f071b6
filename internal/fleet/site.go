package fleet

import "time"

// SiteProfile describes a simulated generation site. Profiles are immutable
// after fleet generation.
type SiteProfile struct {
	SiteID           string
	Name             string
	Country          string
	Region           string
	Timezone         string
	Latitude         float64
	Longitude        float64
	InstallationDate time.Time
	CapacityKW       float64
}

// RuntimeState holds the mutable per-site simulation state. It is owned
// exclusively by the engine goroutine; nothing else reads or writes it.
type RuntimeState struct {
	// EnergyGeneratedKWH is a running total. It only ever grows.
	EnergyGeneratedKWH float64
	// FaultProbability is fixed at generation time, per tick.
	FaultProbability float64
	Maintenance      bool
	MaintenanceEnd   time.Time
}

// Site pairs a profile with its runtime state.
type Site struct {
	Profile SiteProfile
	State   *RuntimeState
}

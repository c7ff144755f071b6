package fleet

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrFleetSize is returned when a non-positive fleet size is requested.
var ErrFleetSize = errors.New("fleet: size must be positive")

const installWindowYears = 10

// Registry owns the simulated fleet: immutable profiles plus the runtime
// state the engine mutates every tick.
type Registry struct {
	sites []*Site
}

// NewRegistry generates n sites from the region catalogue. Site ids are
// site_001..site_NNN and unique by construction.
func NewRegistry(rng *rand.Rand, now time.Time, n int) (*Registry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrFleetSize, n)
	}

	sites := make([]*Site, 0, n)
	for i := 0; i < n; i++ {
		profile := generateProfile(rng, now, i+1)
		sites = append(sites, &Site{
			Profile: profile,
			State:   NewRuntimeState(rng, profile),
		})
	}
	return &Registry{sites: sites}, nil
}

// Sites returns the fleet in generation order.
func (r *Registry) Sites() []*Site {
	return r.sites
}

func generateProfile(rng *rand.Rand, now time.Time, seq int) SiteProfile {
	loc := regions[rng.Intn(len(regions))]

	latitude := loc.LatMin + rng.Float64()*(loc.LatMax-loc.LatMin)
	longitude := loc.LonMin + rng.Float64()*(loc.LonMax-loc.LonMin)

	// Day clamped to [1,28] so any month is valid.
	endYear := now.UTC().Year()
	year := endYear - installWindowYears + rng.Intn(installWindowYears+1)
	month := time.Month(1 + rng.Intn(12))
	day := 1 + rng.Intn(28)
	installed := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	tier := capacityTiers[rng.Intn(len(capacityTiers))]
	capacity := float64(tier[0] + rng.Intn(tier[1]-tier[0]+1))

	return SiteProfile{
		SiteID:           fmt.Sprintf("site_%03d", seq),
		Name:             fmt.Sprintf("%s %s %03d", loc.Region, nameParts[rng.Intn(len(nameParts))], seq),
		Country:          loc.Country,
		Region:           loc.Region,
		Timezone:         loc.Timezone,
		Latitude:         latitude,
		Longitude:        longitude,
		InstallationDate: installed,
		CapacityKW:       capacity,
	}
}

// NewRuntimeState seeds the mutable state for a freshly generated site. The
// energy counter starts mid-accumulation so a restarted simulator does not
// look like a brand new fleet.
func NewRuntimeState(rng *rand.Rand, profile SiteProfile) *RuntimeState {
	return &RuntimeState{
		EnergyGeneratedKWH: rng.Float64() * profile.CapacityKW * 8,
		FaultProbability:   0.001 + rng.Float64()*0.009,
	}
}

// Summary aggregates fleet-level figures for startup logging.
type Summary struct {
	Sites             int
	TotalCapacityKW   float64
	AverageCapacityKW float64
	Countries         []string
}

// Summary computes totals over the current fleet.
func (r *Registry) Summary() Summary {
	s := Summary{Sites: len(r.sites)}
	seen := make(map[string]struct{})
	for _, site := range r.sites {
		s.TotalCapacityKW += site.Profile.CapacityKW
		if _, ok := seen[site.Profile.Country]; !ok {
			seen[site.Profile.Country] = struct{}{}
			s.Countries = append(s.Countries, site.Profile.Country)
		}
	}
	if s.Sites > 0 {
		s.AverageCapacityKW = s.TotalCapacityKW / float64(s.Sites)
	}
	return s
}

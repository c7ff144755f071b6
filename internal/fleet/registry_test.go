package fleet

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func testClock() time.Time {
	return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func TestNewRegistryGeneratesUniqueSites(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	registry, err := NewRegistry(rng, testClock(), 150)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	sites := registry.Sites()
	if len(sites) != 150 {
		t.Fatalf("expected 150 sites, got %d", len(sites))
	}

	seen := make(map[string]struct{}, len(sites))
	for _, site := range sites {
		if _, dup := seen[site.Profile.SiteID]; dup {
			t.Fatalf("duplicate site id %s", site.Profile.SiteID)
		}
		seen[site.Profile.SiteID] = struct{}{}
	}
}

func TestNewRegistryRejectsNonPositiveSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, -1, -150} {
		if _, err := NewRegistry(rng, testClock(), n); !errors.Is(err, ErrFleetSize) {
			t.Fatalf("size %d: expected ErrFleetSize, got %v", n, err)
		}
	}
}

func TestGeneratedProfilesStayWithinRegionBounds(t *testing.T) {
	bounds := make(map[string]region, len(regions))
	for _, r := range regions {
		bounds[r.Country+"/"+r.Region] = r
	}

	rng := rand.New(rand.NewSource(7))
	registry, err := NewRegistry(rng, testClock(), 150)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	for _, site := range registry.Sites() {
		p := site.Profile
		r, ok := bounds[p.Country+"/"+p.Region]
		if !ok {
			t.Fatalf("site %s references unknown region %s/%s", p.SiteID, p.Country, p.Region)
		}
		if p.Latitude < r.LatMin || p.Latitude > r.LatMax {
			t.Errorf("site %s latitude %f outside [%f,%f]", p.SiteID, p.Latitude, r.LatMin, r.LatMax)
		}
		if p.Longitude < r.LonMin || p.Longitude > r.LonMax {
			t.Errorf("site %s longitude %f outside [%f,%f]", p.SiteID, p.Longitude, r.LonMin, r.LonMax)
		}
		if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
			t.Errorf("site %s has out-of-bounds coordinates %f,%f", p.SiteID, p.Latitude, p.Longitude)
		}
		if p.Timezone != r.Timezone {
			t.Errorf("site %s timezone %s, want %s", p.SiteID, p.Timezone, r.Timezone)
		}
	}
}

func TestGeneratedCapacitiesSpanTiers(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	registry, err := NewRegistry(rng, testClock(), 150)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	tiersHit := make(map[int]bool)
	for _, site := range registry.Sites() {
		capacity := site.Profile.CapacityKW
		if capacity <= 0 {
			t.Fatalf("site %s capacity %f not positive", site.Profile.SiteID, capacity)
		}
		matched := false
		for i, tier := range capacityTiers {
			if capacity >= float64(tier[0]) && capacity <= float64(tier[1]) {
				tiersHit[i] = true
				matched = true
				break
			}
		}
		if !matched {
			t.Fatalf("site %s capacity %f outside every tier", site.Profile.SiteID, capacity)
		}
	}

	if len(tiersHit) < 2 {
		t.Fatalf("expected capacities across at least two tiers, got %d", len(tiersHit))
	}
}

func TestInstallationDatesWithinWindow(t *testing.T) {
	now := testClock()
	rng := rand.New(rand.NewSource(5))
	registry, err := NewRegistry(rng, now, 150)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	for _, site := range registry.Sites() {
		installed := site.Profile.InstallationDate
		if installed.Day() < 1 || installed.Day() > 28 {
			t.Errorf("site %s installation day %d outside [1,28]", site.Profile.SiteID, installed.Day())
		}
		if installed.Year() < now.Year()-installWindowYears || installed.Year() > now.Year() {
			t.Errorf("site %s installation year %d outside window", site.Profile.SiteID, installed.Year())
		}
	}
}

func TestNewRuntimeStateSeeding(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	profile := SiteProfile{SiteID: "site_001", CapacityKW: 10000}

	for i := 0; i < 100; i++ {
		state := NewRuntimeState(rng, profile)
		if state.FaultProbability < 0.001 || state.FaultProbability > 0.01 {
			t.Fatalf("fault probability %f outside [0.001,0.01]", state.FaultProbability)
		}
		if state.EnergyGeneratedKWH < 0 || state.EnergyGeneratedKWH > profile.CapacityKW*8 {
			t.Fatalf("seed energy %f outside [0,%f]", state.EnergyGeneratedKWH, profile.CapacityKW*8)
		}
		if state.Maintenance {
			t.Fatal("fresh state must not start in maintenance")
		}
	}
}

func TestSummary(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	registry, err := NewRegistry(rng, testClock(), 50)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	summary := registry.Summary()
	if summary.Sites != 50 {
		t.Fatalf("expected 50 sites in summary, got %d", summary.Sites)
	}

	var total float64
	for _, site := range registry.Sites() {
		total += site.Profile.CapacityKW
	}
	if summary.TotalCapacityKW != total {
		t.Errorf("total capacity %f, want %f", summary.TotalCapacityKW, total)
	}
	if summary.AverageCapacityKW != total/50 {
		t.Errorf("average capacity %f, want %f", summary.AverageCapacityKW, total/50)
	}
	if len(summary.Countries) == 0 {
		t.Error("expected at least one country in summary")
	}
}

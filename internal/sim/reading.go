package sim

import "time"

// System and inverter status values carried on the wire.
const (
	SystemOnline  = "online"
	SystemOffline = "offline"
	SystemFault   = "fault"

	InverterHealthy     = "healthy"
	InverterFault       = "fault"
	InverterMaintenance = "maintenance"
)

// Reading is one telemetry record for one site at one tick. It is immutable
// once derived; field order matches the wire contract consumed downstream.
type Reading struct {
	Timestamp          time.Time `json:"timestamp"`
	SiteID             string    `json:"site_id"`
	AmbientTempC       float64   `json:"ambient_temperature_c"`
	ModuleTempC        float64   `json:"module_temperature_c"`
	IrradianceWM2      float64   `json:"irradiance_wm2"`
	EnergyGeneratedKWH float64   `json:"energy_generated_kwh"`
	PowerOutputKW      float64   `json:"power_output_kw"`
	EnergyUtilisedKWH  float64   `json:"energy_utilised_kwh"`
	EnergyExportedKWH  float64   `json:"energy_exported_kwh"`
	SystemStatus       string    `json:"system_status"`
	InverterStatus     string    `json:"inverter_status"`
	StringFaults       int       `json:"string_faults"`
	DCVoltageV         float64   `json:"dc_voltage_v"`
	ACVoltageV         float64   `json:"ac_voltage_v"`
}

// StaticDescriptor is the retained per-site record describing the
// installation itself rather than a moment in time.
type StaticDescriptor struct {
	SiteID           string  `json:"site_id"`
	SiteName         string  `json:"site_name"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Country          string  `json:"country"`
	Timezone         string  `json:"timezone"`
	InstallationDate string  `json:"installation_date"`
	SystemCapacityKW float64 `json:"system_capacity_kw"`
}

package fleet

// region bounds a geographic area sites are sampled from.
type region struct {
	Country  string
	Region   string
	Timezone string
	LatMin   float64
	LatMax   float64
	LonMin   float64
	LonMax   float64
}

var regions = []region{
	// North America
	{"United States", "California", "America/Los_Angeles", 32, 42, -124, -114},
	{"United States", "Texas", "America/Chicago", 25, 37, -107, -93},
	{"United States", "Arizona", "America/Phoenix", 31, 37, -115, -109},
	{"United States", "Nevada", "America/Los_Angeles", 35, 42, -120, -114},
	{"Canada", "Ontario", "America/Toronto", 42, 57, -95, -74},
	{"Mexico", "Sonora", "America/Hermosillo", 27, 32, -115, -108},

	// South America
	{"Brazil", "Minas Gerais", "America/Sao_Paulo", -22, -14, -51, -39},
	{"Chile", "Atacama", "America/Santiago", -29, -24, -71, -68},
	{"Argentina", "Mendoza", "America/Argentina/Mendoza", -37, -32, -70, -66},

	// Europe
	{"Spain", "Andalusia", "Europe/Madrid", 36, 38, -7, -1},
	{"Germany", "Bavaria", "Europe/Berlin", 47, 50, 9, 13},
	{"Italy", "Sicily", "Europe/Rome", 36, 38, 12, 16},
	{"France", "Provence", "Europe/Paris", 43, 45, 4, 7},
	{"Greece", "Crete", "Europe/Athens", 35, 36, 23, 26},

	// Africa
	{"South Africa", "Northern Cape", "Africa/Johannesburg", -33, -28, 16, 24},
	{"Morocco", "Ouarzazate", "Africa/Casablanca", 30, 32, -8, -6},
	{"Egypt", "Aswan", "Africa/Cairo", 24, 26, 32, 34},

	// Asia & Oceania
	{"India", "Rajasthan", "Asia/Kolkata", 24, 30, 69, 78},
	{"China", "Xinjiang", "Asia/Shanghai", 35, 49, 73, 96},
	{"Japan", "Kyushu", "Asia/Tokyo", 31, 34, 129, 132},
	{"Australia", "Queensland", "Australia/Brisbane", -29, -10, 138, 154},

	// Middle East
	{"United Arab Emirates", "Abu Dhabi", "Asia/Dubai", 22, 26, 51, 56},
	{"Saudi Arabia", "Riyadh", "Asia/Riyadh", 24, 27, 46, 48},
}

var nameParts = []string{
	"Solar Park", "Energy Farm", "Power Station", "Solar Plant", "Green Energy Hub",
	"Renewable Center", "Solar Complex", "Energy Station", "Power Farm", "Solar Field",
	"Clean Energy Park", "Photovoltaic Plant", "Solar Installation", "Energy Complex",
}

// capacityTiers are kW bands: small, medium, large, utility scale.
var capacityTiers = [][2]int{
	{1000, 5000},
	{5000, 25000},
	{25000, 100000},
	{100000, 500000},
}

package metar

// phenomenon describes a weather phenomenon code from the encoded METAR
// group: its base name, the icon suggested for it, and the descriptions
// selected by intensity/proximity qualifier.
type phenomenon struct {
	name     string
	icon     string
	variants map[string]variant
}

// variant is a qualifier entry. A plain description leaves icon empty
// and inherits the phenomenon's own icon; a storm variant carries its
// own icon.
type variant struct {
	text string
	icon string
}

func plain(text string) variant       { return variant{text: text} }
func storm(text, icon string) variant { return variant{text: text, icon: icon} }

// weatherConditions maps the two-character phenomenon codes (plus the
// special +FC tornado code) onto their qualified descriptions.
var weatherConditions = map[string]phenomenon{
	"DZ": {"Drizzle", "rain", map[string]variant{
		"":   plain("Moderate drizzle"),
		"-":  plain("Light drizzle"),
		"+":  plain("Heavy drizzle"),
		"VC": plain("Drizzle in the vicinity"),
		"MI": plain("Shallow drizzle"),
		"BC": plain("Patches of drizzle"),
		"PR": plain("Partial drizzle"),
		"TS": storm("Thunderstorm", "storm"),
		"BL": plain("Windy drizzle"),
		"SH": plain("Showers"),
		"DR": plain("Drifting drizzle"),
		"FZ": plain("Freezing drizzle"),
	}},
	"RA": {"Rain", "rain", map[string]variant{
		"":   plain("Moderate rain"),
		"-":  plain("Light rain"),
		"+":  plain("Heavy rain"),
		"VC": plain("Rain in the vicinity"),
		"MI": plain("Shallow rain"),
		"BC": plain("Patches of rain"),
		"PR": plain("Partial rainfall"),
		"TS": storm("Thunderstorm", "storm"),
		"BL": plain("Blowing rainfall"),
		"SH": plain("Rain showers"),
		"DR": plain("Drifting rain"),
		"FZ": plain("Freezing rain"),
	}},
	"SN": {"Snow", "snow", map[string]variant{
		"":   plain("Moderate snow"),
		"-":  plain("Light snow"),
		"+":  plain("Heavy snow"),
		"VC": plain("Snow in the vicinity"),
		"MI": plain("Shallow snow"),
		"BC": plain("Patches of snow"),
		"PR": plain("Partial snowfall"),
		"TS": storm("Snowstorm", "storm"),
		"BL": plain("Blowing snowfall"),
		"SH": plain("Snowfall showers"),
		"DR": plain("Drifting snow"),
		"FZ": plain("Freezing snow"),
	}},
	"SG": {"Snow grains", "snow", map[string]variant{
		"":   plain("Moderate snow grains"),
		"-":  plain("Light snow grains"),
		"+":  plain("Heavy snow grains"),
		"VC": plain("Snow grains in the vicinity"),
		"MI": plain("Shallow snow grains"),
		"BC": plain("Patches of snow grains"),
		"PR": plain("Partial snow grains"),
		"TS": storm("Snowstorm", "storm"),
		"BL": plain("Blowing snow grains"),
		"SH": plain("Snow grain showers"),
		"DR": plain("Drifting snow grains"),
		"FZ": plain("Freezing snow grains"),
	}},
	"IC": {"Ice crystals", "snow", map[string]variant{
		"":   plain("Moderate ice crystals"),
		"-":  plain("Few ice crystals"),
		"+":  plain("Heavy ice crystals"),
		"VC": plain("Ice crystals in the vicinity"),
		"BC": plain("Patches of ice crystals"),
		"PR": plain("Partial ice crystals"),
		"TS": storm("Ice crystal storm", "storm"),
		"BL": plain("Blowing ice crystals"),
		"SH": plain("Showers of ice crystals"),
		"DR": plain("Drifting ice crystals"),
		"FZ": plain("Freezing ice crystals"),
	}},
	"PE": {"Ice pellets", "snow", map[string]variant{
		"":   plain("Moderate ice pellets"),
		"-":  plain("Few ice pellets"),
		"+":  plain("Heavy ice pellets"),
		"VC": plain("Ice pellets in the vicinity"),
		"MI": plain("Shallow ice pellets"),
		"BC": plain("Patches of ice pellets"),
		"PR": plain("Partial ice pellets"),
		"TS": storm("Ice pellets storm", "storm"),
		"BL": plain("Blowing ice pellets"),
		"SH": plain("Showers of ice pellets"),
		"DR": plain("Drifting ice pellets"),
		"FZ": plain("Freezing ice pellets"),
	}},
	"GR": {"Hail", "rain", map[string]variant{
		"":   plain("Moderate hail"),
		"-":  plain("Light hail"),
		"+":  plain("Heavy hail"),
		"VC": plain("Hail in the vicinity"),
		"MI": plain("Shallow hail"),
		"BC": plain("Patches of hail"),
		"PR": plain("Partial hail"),
		"TS": storm("Hailstorm", "storm"),
		"BL": plain("Blowing hail"),
		"SH": plain("Hail showers"),
		"DR": plain("Drifting hail"),
		"FZ": plain("Freezing hail"),
	}},
	"GS": {"Small hail", "rain", map[string]variant{
		"":   plain("Moderate small hail"),
		"-":  plain("Light small hail"),
		"+":  plain("Heavy small hail"),
		"VC": plain("Small hail in the vicinity"),
		"MI": plain("Shallow small hail"),
		"BC": plain("Patches of small hail"),
		"PR": plain("Partial small hail"),
		"TS": storm("Small hailstorm", "storm"),
		"BL": plain("Blowing small hail"),
		"SH": plain("Showers of small hail"),
		"DR": plain("Drifting small hail"),
		"FZ": plain("Freezing small hail"),
	}},
	"UP": {"Precipitation", "rain", map[string]variant{
		"":   plain("Moderate precipitation"),
		"-":  plain("Light precipitation"),
		"+":  plain("Heavy precipitation"),
		"VC": plain("Precipitation in the vicinity"),
		"MI": plain("Shallow precipitation"),
		"BC": plain("Patches of precipitation"),
		"PR": plain("Partial precipitation"),
		"TS": storm("Unknown thunderstorm", "storm"),
		"BL": plain("Blowing precipitation"),
		"SH": plain("Showers, type unknown"),
		"DR": plain("Drifting precipitation"),
		"FZ": plain("Freezing precipitation"),
	}},
	"BR": {"Mist", "fog", map[string]variant{
		"":   plain("Moderate mist"),
		"-":  plain("Light mist"),
		"+":  plain("Thick mist"),
		"VC": plain("Mist in the vicinity"),
		"MI": plain("Shallow mist"),
		"BC": plain("Patches of mist"),
		"PR": plain("Partial mist"),
		"BL": plain("Mist with wind"),
		"DR": plain("Drifting mist"),
		"FZ": plain("Freezing mist"),
	}},
	"FG": {"Fog", "fog", map[string]variant{
		"":   plain("Moderate fog"),
		"-":  plain("Light fog"),
		"+":  plain("Thick fog"),
		"VC": plain("Fog in the vicinity"),
		"MI": plain("Shallow fog"),
		"BC": plain("Patches of fog"),
		"PR": plain("Partial fog"),
		"BL": plain("Fog with wind"),
		"DR": plain("Drifting fog"),
		"FZ": plain("Freezing fog"),
	}},
	"FU": {"Smoke", "fog", map[string]variant{
		"":   plain("Moderate smoke"),
		"-":  plain("Thin smoke"),
		"+":  plain("Thick smoke"),
		"VC": plain("Smoke in the vicinity"),
		"MI": plain("Shallow smoke"),
		"BC": plain("Patches of smoke"),
		"PR": plain("Partial smoke"),
		"TS": storm("Smoke w/ thunders", "storm"),
		"BL": plain("Smoke with wind"),
		"DR": plain("Drifting smoke"),
	}},
	"VA": {"Volcanic ash", "fog", map[string]variant{
		"":   plain("Moderate volcanic ash"),
		"+":  plain("Thick volcanic ash"),
		"VC": plain("Volcanic ash in the vicinity"),
		"MI": plain("Shallow volcanic ash"),
		"BC": plain("Patches of volcanic ash"),
		"PR": plain("Partial volcanic ash"),
		"TS": storm("Volcanic ash w/ thunders", "storm"),
		"BL": plain("Blowing volcanic ash"),
		"SH": plain("Showers of volcanic ash"),
		"DR": plain("Drifting volcanic ash"),
		"FZ": plain("Freezing volcanic ash"),
	}},
	"SA": {"Sand", "fog", map[string]variant{
		"":   plain("Moderate sand"),
		"-":  plain("Light sand"),
		"+":  plain("Heavy sand"),
		"VC": plain("Sand in the vicinity"),
		"BC": plain("Patches of sand"),
		"PR": plain("Partial sand"),
		"BL": plain("Blowing sand"),
		"DR": plain("Drifting sand"),
	}},
	"HZ": {"Haze", "fog", map[string]variant{
		"":   plain("Moderate haze"),
		"-":  plain("Light haze"),
		"+":  plain("Thick haze"),
		"VC": plain("Haze in the vicinity"),
		"MI": plain("Shallow haze"),
		"BC": plain("Patches of haze"),
		"PR": plain("Partial haze"),
		"BL": plain("Haze with wind"),
		"DR": plain("Drifting haze"),
		"FZ": plain("Freezing haze"),
	}},
	"PY": {"Sprays", "fog", map[string]variant{
		"":   plain("Moderate sprays"),
		"-":  plain("Light sprays"),
		"+":  plain("Heavy sprays"),
		"VC": plain("Sprays in the vicinity"),
		"MI": plain("Shallow sprays"),
		"BC": plain("Patches of sprays"),
		"PR": plain("Partial sprays"),
		"BL": plain("Blowing sprays"),
		"DR": plain("Drifting sprays"),
		"FZ": plain("Freezing sprays"),
	}},
	"DU": {"Dust", "fog", map[string]variant{
		"":   plain("Moderate dust"),
		"-":  plain("Light dust"),
		"+":  plain("Heavy dust"),
		"VC": plain("Dust in the vicinity"),
		"BC": plain("Patches of dust"),
		"PR": plain("Partial dust"),
		"BL": plain("Blowing dust"),
		"DR": plain("Drifting dust"),
	}},
	"SQ": {"Squall", "storm", map[string]variant{
		"":   plain("Moderate squall"),
		"-":  plain("Light squall"),
		"+":  plain("Heavy squall"),
		"VC": plain("Squall in the vicinity"),
		"PR": plain("Partial squall"),
		"TS": plain("Thunderous squall"),
		"BL": plain("Blowing squall"),
		"DR": plain("Drifting squall"),
		"FZ": plain("Freezing squall"),
	}},
	"SS": {"Sandstorm", "fog", map[string]variant{
		"":   plain("Moderate sandstorm"),
		"-":  plain("Light sandstorm"),
		"+":  plain("Heavy sandstorm"),
		"VC": plain("Sandstorm in the vicinity"),
		"MI": plain("Shallow sandstorm"),
		"PR": plain("Partial sandstorm"),
		"TS": storm("Thunderous sandstorm", "storm"),
		"BL": plain("Blowing sandstorm"),
		"DR": plain("Drifting sandstorm"),
		"FZ": plain("Freezing sandstorm"),
	}},
	"DS": {"Duststorm", "fog", map[string]variant{
		"":   plain("Moderate duststorm"),
		"-":  plain("Light duststorm"),
		"+":  plain("Heavy duststorm"),
		"VC": plain("Duststorm in the vicinity"),
		"MI": plain("Shallow duststorm"),
		"PR": plain("Partial duststorm"),
		"TS": storm("Thunderous duststorm", "storm"),
		"BL": plain("Blowing duststorm"),
		"DR": plain("Drifting duststorm"),
		"FZ": plain("Freezing duststorm"),
	}},
	"PO": {"Dustwhirls", "fog", map[string]variant{
		"":   plain("Moderate dustwhirls"),
		"-":  plain("Light dustwhirls"),
		"+":  plain("Heavy dustwhirls"),
		"VC": plain("Dustwhirls in the vicinity"),
		"MI": plain("Shallow dustwhirls"),
		"BC": plain("Patches of dustwhirls"),
		"PR": plain("Partial dustwhirls"),
		"BL": plain("Blowing dustwhirls"),
		"DR": plain("Drifting dustwhirls"),
	}},
	"+FC": {"Tornado", "storm", map[string]variant{
		"":   plain("Moderate tornado"),
		"+":  plain("Raging tornado"),
		"VC": plain("Tornado in the vicinity"),
		"PR": plain("Partial tornado"),
		"TS": plain("Thunderous tornado"),
		"BL": plain("Tornado"),
		"DR": plain("Drifting tornado"),
		"FZ": plain("Freezing tornado"),
	}},
	"FC": {"Funnel cloud", "fog", map[string]variant{
		"":   plain("Moderate funnel cloud"),
		"-":  plain("Light funnel cloud"),
		"+":  plain("Thick funnel cloud"),
		"VC": plain("Funnel cloud in the vicinity"),
		"MI": plain("Shallow funnel cloud"),
		"BC": plain("Patches of funnel cloud"),
		"PR": plain("Partial funnel cloud"),
		"BL": plain("Funnel cloud w/ wind"),
		"DR": plain("Drifting funnel cloud"),
	}},
}

// cloudTypes maps cloud type suffixes from the encoded report to their
// descriptive names.
var cloudTypes = map[string]string{
	"ACC":   "altocumulus castellanus",
	"ACSL":  "standing lenticular altocumulus",
	"CB":    "cumulonimbus",
	"CBMAM": "cumulonimbus mammatus",
	"CCSL":  "standing lenticular cirrocumulus",
	"CU":    "cumulus",
	"SCSL":  "standing lenticular stratocumulus",
	"SC":    "stratocumulus",
	"TCU":   "towering cumulus",
}

package domain

// Weather captures the current conditions at a location, as reported by
// the weather provider.
type Weather struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Condition   string  `json:"weather_condition"`
	IsDemo      bool    `json:"-"`
}

// WeatherAdvisory pairs current conditions with crop advice derived
// from them.
type WeatherAdvisory struct {
	Location         string   `json:"location"`
	Temperature      float64  `json:"temperature"`
	Humidity         float64  `json:"humidity"`
	WeatherCondition string   `json:"weather_condition"`
	CropAdvice       []string `json:"crop_advice"`
}

// Advisory thresholds, in degrees Celsius and percent relative humidity.
const (
	HighTemperatureThreshold = 35.0
	LowTemperatureThreshold  = 10.0
	HighHumidityThreshold    = 80.0
	LowHumidityThreshold     = 30.0
)

// RainCondition is the provider's condition string that triggers
// rainfall advice.
const RainCondition = "Rain"

// AdviceFor derives crop advice from current conditions. Rules are
// independent: temperature, humidity and rainfall each contribute their
// own lines, and the favorable fallback applies only when no rule
// fires. The result is never empty.
func AdviceFor(temperature, humidity float64, condition string) []string {
	advice := []string{}

	if temperature > HighTemperatureThreshold {
		advice = append(advice,
			"High temperature alert: Increase irrigation frequency",
			"Consider shade netting for sensitive crops")
	} else if temperature < LowTemperatureThreshold {
		advice = append(advice,
			"Low temperature warning: Protect crops from frost",
			"Consider mulching to retain soil warmth")
	}

	if humidity > HighHumidityThreshold {
		advice = append(advice,
			"High humidity: Monitor for fungal diseases",
			"Ensure good air circulation around plants")
	} else if humidity < LowHumidityThreshold {
		advice = append(advice, "Low humidity: Increase watering schedule")
	}

	if condition == RainCondition {
		advice = append(advice,
			"Rainfall detected: Check drainage systems",
			"Delay fertilizer application until after rain")
	}

	if len(advice) == 0 {
		advice = append(advice,
			"Weather conditions are favorable for crop growth",
			"Continue regular monitoring and care routine")
	}

	return advice
}

// AdvisoryFor builds the full advisory for the given conditions.
func AdvisoryFor(w Weather) WeatherAdvisory {
	return WeatherAdvisory{
		Location:         w.Location,
		Temperature:      w.Temperature,
		Humidity:         w.Humidity,
		WeatherCondition: w.Condition,
		CropAdvice:       AdviceFor(w.Temperature, w.Humidity, w.Condition),
	}
}

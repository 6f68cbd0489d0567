package domain

// WeatherReport is the current-conditions summary shown on the dashboard,
// temperatures in °F.
type WeatherReport struct {
	Temp      int    `json:"temp"`
	Code      int    `json:"code"` // WMO weather interpretation code
	Min       int    `json:"min"`
	Max       int    `json:"max"`
	Condition string `json:"condition"`
	Clothing  string `json:"clothing"`
}

// Condition buckets a WMO weather code into the four states the dashboard
// distinguishes: rain, snow, cloudy, clear.
func Condition(code int) string {
	switch {
	case code >= 51 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code > 2:
		return "cloudy"
	default:
		return "clear"
	}
}

// ClothingAdvice maps the current temperature to the household's
// what-to-wear line.
func ClothingAdvice(temp int) string {
	switch {
	case temp < 40:
		return "Winter coat, hat, and gloves!"
	case temp < 60:
		return "Jacket or heavy hoodie."
	case temp < 75:
		return "Long sleeves or light layer."
	default:
		return "Shorts and T-shirt weather!"
	}
}

// EnrichWeather fills the derived Condition and Clothing fields from the
// raw code and temperature.
func EnrichWeather(r WeatherReport) WeatherReport {
	r.Condition = Condition(r.Code)
	r.Clothing = ClothingAdvice(r.Temp)
	return r
}

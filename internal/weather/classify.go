package weather

// Classify maps a provider condition code to an icon identifier.
// Ranges are inclusive; any code outside them is cloudy.
func Classify(code int) Condition {
	switch {
	case code >= 200 && code <= 232:
		return ConditionStorm
	case code >= 300 && code <= 321:
		return ConditionDrizzle
	case code >= 500 && code <= 531:
		return ConditionRain
	case code >= 600 && code <= 622:
		return ConditionSnow
	case code >= 701 && code <= 781:
		return ConditionFog
	case code == 800:
		return ConditionClear
	case code >= 801 && code <= 804:
		return ConditionCloudy
	default:
		return ConditionCloudy
	}
}

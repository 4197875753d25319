package heizkurve

// IsNightHour reports whether hour falls inside the night setback window.
// The window may wrap midnight: with nightStart=22 and nightEnd=6 the hours
// 22..23 and 0..5 are night.
func IsNightHour(hour, nightStart, nightEnd int) bool {
	if nightStart > nightEnd {
		return hour >= nightStart || hour < nightEnd
	}
	return nightStart <= hour && hour < nightEnd
}

// RoomTarget selects the day or night room target temperature for an hour.
func RoomTarget(hour int, dayTarget, nightTarget float64, nightStart, nightEnd int) float64 {
	if IsNightHour(hour, nightStart, nightEnd) {
		return nightTarget
	}
	return dayTarget
}

// RoomTarget selects the day or night room target of c for an hour.
func (c *Config) RoomTarget(hour int) float64 {
	return RoomTarget(hour, c.RoomTargetDay, c.RoomTargetNight, c.NightStartHour, c.NightEndHour)
}

// IsNightHour reports whether hour is inside the night setback window of c.
func (c *Config) IsNightHour(hour int) bool {
	return IsNightHour(hour, c.NightStartHour, c.NightEndHour)
}

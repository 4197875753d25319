package heizkurve

// FlowTemperature evaluates the heating curve (Heizkennlinie) for a single
// outdoor temperature:
//
//	T_flow = base + slope*(roomTarget - outdoor), clamped to [min, max]
//
// Above the summer cutoff the heating is off and the result is Missing(),
// not an error.
func FlowTemperature(outdoor, roomTarget, slope, base, min, max, summerCutoff float64) float64 {
	if outdoor > summerCutoff {
		return Missing()
	}

	flow := base + slope*(roomTarget-outdoor)
	return clamp(flow, min, max)
}

// FlowTemperature evaluates the heating curve of c at the given outdoor
// temperature and room target.
func (c *Config) FlowTemperature(outdoor, roomTarget float64) float64 {
	return FlowTemperature(outdoor, roomTarget, c.Slope, c.BaseTemperature,
		c.FlowMin, c.FlowMax, c.SummerCutoff)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

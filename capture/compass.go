package capture

import "math"

// compass spans are 45 degrees wide, centred on each point's bearing.
// north owns the wraparound span (>337.5 or <=22.5)
var compassSpans = []struct {
	label    string
	from, to float64
}{
	{"NE", 22.5, 67.5},
	{"E", 67.5, 112.5},
	{"SE", 112.5, 157.5},
	{"S", 157.5, 202.5},
	{"SW", 202.5, 247.5},
	{"W", 247.5, 292.5},
	{"NW", 292.5, 337.5},
}

// DirectionFromDegrees maps a heading in degrees to the nearest of the
// 8 compass points. Input outside [0,360) is normalized first
func DirectionFromDegrees(degrees float64) string {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	if d > 337.5 || d <= 22.5 {
		return "N"
	}
	for _, span := range compassSpans {
		if d > span.from && d <= span.to {
			return span.label
		}
	}
	return "N"
}

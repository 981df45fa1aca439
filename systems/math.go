package systems

import "math"

// normalizeAngle wraps an angle to (-pi, pi].
func normalizeAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// NormalizeAngle wraps an angle to (-pi, pi].
func NormalizeAngle(a float32) float32 {
	return normalizeAngle(a)
}

func degrees(rad float32) float32 {
	return rad * 180 / math.Pi
}

func hypot(dx, dy float32) float32 {
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

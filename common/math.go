package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MoveTowards steps current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// MoveTowards2 steps a point toward a target by at most maxDelta.
func MoveTowards2(x, y, tx, ty, maxDelta float64) (float64, float64) {
	dx, dy := tx-x, ty-y
	dist := math.Hypot(dx, dy)
	if dist <= maxDelta || dist == 0 {
		return tx, ty
	}
	return x + dx/dist*maxDelta, y + dy/dist*maxDelta
}

func Approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// SmoothDamp is a critically damped spring toward target. velocity carries
// state between calls.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, maxSpeed, dt float64) float64 {
	if smoothTime < 0.0001 {
		smoothTime = 0.0001
	}
	if dt <= 0 {
		return current
	}
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	origTarget := target
	maxChange := maxSpeed * smoothTime
	change = Clamp(change, -maxChange, maxChange)
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	out := target + (change+temp)*exp

	// no overshoot
	if (origTarget-current > 0) == (out > origTarget) {
		out = origTarget
		*velocity = (out - origTarget) / dt
	}
	return out
}

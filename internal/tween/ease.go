package tween

// Ease maps linear progress in [0, 1] to eased progress in [0, 1].
type Ease func(t float32) float32

// Linear is the identity curve.
func Linear(t float32) float32 {
	return t
}

// Smoothstep is the cubic ease-in-out 3t² - 2t³.
func Smoothstep(t float32) float32 {
	return t * t * (3 - 2*t)
}

// EaseOutCubic decelerates towards the end.
func EaseOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseByName resolves a curve name as written in the viewer config.
func EaseByName(name string) (Ease, bool) {
	switch name {
	case "linear":
		return Linear, true
	case "smoothstep", "ease-in-out":
		return Smoothstep, true
	case "ease-out":
		return EaseOutCubic, true
	default:
		return nil, false
	}
}

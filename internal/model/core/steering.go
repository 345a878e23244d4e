package core

// SteeringSample maps a vehicle speed to a steering input multiplier.
type SteeringSample struct {
	Speed      float64 `json:"speed"`
	Multiplier float64 `json:"multiplier"`
}

// SteeringCurve scales steering sensitivity down as speed rises. Speeds are
// strictly increasing starting at 0; multipliers are clamped to [0,1] by the
// repair pass. The curve is applied by the runtime control path, not by the
// physics backend setup, so it has no backend conversion.
type SteeringCurve []SteeringSample

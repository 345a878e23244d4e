package physx

// EngineDefaults are the backend factory values for a new engine. The torque
// curve is already in normalized form.
type EngineDefaults struct {
	MOI                                     float64
	PeakTorque                              float64
	MaxOmega                                float64
	DampingRateFullThrottle                 float64
	DampingRateZeroThrottleClutchEngaged    float64
	DampingRateZeroThrottleClutchDisengaged float64
	TorqueCurve                             []CurvePoint
}

// Defaults is a snapshot of every factory default the authoring side needs
// to seed a drivetrain. It is a plain value: callers pass it explicitly so
// models can be constructed and tested without a live backend.
type Defaults struct {
	Engine     EngineDefaults
	Clutch     ClutchConfig
	Gears      GearsConfig
	AutoBox    AutoBoxConfig
	WheelCount int
}

// FactoryDefaults returns the backend's factory defaults for a generic
// four-wheeled vehicle with five forward gears.
func FactoryDefaults() Defaults {
	return Defaults{
		Engine: EngineDefaults{
			MOI:                                     1.0,
			PeakTorque:                              500.0,
			MaxOmega:                                600.0,
			DampingRateFullThrottle:                 0.15,
			DampingRateZeroThrottleClutchEngaged:    2.0,
			DampingRateZeroThrottleClutchDisengaged: 0.35,
			TorqueCurve: []CurvePoint{
				{X: 0.0, Y: 0.8},
				{X: 0.33, Y: 1.0},
				{X: 1.0, Y: 0.8},
			},
		},
		Clutch: ClutchConfig{Strength: 10.0},
		Gears: GearsConfig{
			SwitchTime: 0.5,
			FinalRatio: 4.0,
			// reverse, neutral, 1st..5th
			Ratios: []float64{-4.0, 0.0, 4.0, 2.0, 1.5, 1.1, 1.0},
		},
		AutoBox: AutoBoxConfig{
			UpRatios:   []float64{0.0, 0.15, 0.65, 0.65, 0.65, 0.65, 0.65},
			DownRatios: []float64{0.0, 0.0, 0.5, 0.5, 0.5, 0.5, 0.5},
			Latency:    2.0,
		},
		WheelCount: 4,
	}
}

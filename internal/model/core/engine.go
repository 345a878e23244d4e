// Package core holds the editor-facing drivetrain model in engineering
// units: RPM, Newton-metres, kg·m². These are the values a designer tunes;
// the convert package turns them into the backend's normalized form.
package core

// TorqueSample is one authored torque curve key.
type TorqueSample struct {
	RPM    float64 `json:"rpm"`
	Torque float64 `json:"torque"` // Nm
}

// TorqueCurve is an ordered sample set. RPM must be strictly increasing and
// torque non-negative; the parser enforces this on import.
type TorqueCurve []TorqueSample

// EngineData describes the engine in engineering units.
// MaxRPM must be positive before any conversion: it is used as a divisor.
type EngineData struct {
	MOI                                     float64     `json:"moi"` // kg·m²
	MaxRPM                                  float64     `json:"maxRpm"`
	DampingRateFullThrottle                 float64     `json:"dampingRateFullThrottle"`
	DampingRateZeroThrottleClutchEngaged    float64     `json:"dampingRateZeroThrottleClutchEngaged"`
	DampingRateZeroThrottleClutchDisengaged float64     `json:"dampingRateZeroThrottleClutchDisengaged"`
	TorqueCurve                             TorqueCurve `json:"torqueCurve"`
}

// FindPeakTorque returns the maximum torque over the curve, or 0 for an
// empty curve. Downstream normalization must treat a zero peak as a
// precondition failure rather than dividing by it.
func (e *EngineData) FindPeakTorque() float64 {
	peak := 0.0
	for _, s := range e.TorqueCurve {
		if s.Torque > peak {
			peak = s.Torque
		}
	}
	return peak
}

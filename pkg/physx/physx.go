// Package physx describes the native configuration surface of the vehicle
// physics backend. The authoring side writes these structures during vehicle
// setup and never retains them; the simulation owns them afterwards.
//
// Backend units differ from engineering units by a fixed linear scale shared
// by moment of inertia, torque and damping. Engine speed is angular velocity
// in rad/s rather than RPM, and torque curves are normalized so both axes are
// fractions in [0,1] of max RPM and peak torque respectively.
package physx

import "math"

const (
	// MaxTorqueCurveEntries is the maximum number of torque curve keys the
	// backend accepts in one engine configuration.
	MaxTorqueCurveEntries = 8

	// unitScale relates engineering units (kg·m², Nm) to backend units.
	unitScale = 100.0 * 100.0

	// radPerSecToRPM converts angular velocity to revolutions per minute.
	radPerSecToRPM = 60.0 / (2.0 * math.Pi)
)

// M2ToCm2 converts an engineering-unit value (moment of inertia, torque or
// damping) to backend units.
func M2ToCm2(v float64) float64 { return v * unitScale }

// Cm2ToM2 is the inverse of M2ToCm2.
func Cm2ToM2(v float64) float64 { return v / unitScale }

// RPMToOmega converts engine speed in RPM to backend angular velocity.
func RPMToOmega(rpm float64) float64 { return rpm / radPerSecToRPM }

// OmegaToRPM converts backend angular velocity to engine speed in RPM.
func OmegaToRPM(omega float64) float64 { return omega * radPerSecToRPM }

// CurvePoint is one key of a normalized backend curve.
type CurvePoint struct {
	X float64 // fraction of max RPM, in [0,1]
	Y float64 // fraction of peak torque, in [0,1]
}

// EngineConfig is the backend engine description, all values in backend units.
type EngineConfig struct {
	MOI                                     float64
	PeakTorque                              float64
	MaxOmega                                float64
	DampingRateFullThrottle                 float64
	DampingRateZeroThrottleClutchEngaged    float64
	DampingRateZeroThrottleClutchDisengaged float64
	TorqueCurve                             []CurvePoint
}

// DifferentialConfig marks which wheels receive engine torque. Index order
// matches the wheel index order used by the rest of the vehicle setup.
type DifferentialConfig struct {
	Driven []bool
}

// NewDifferentialConfig returns a differential config with storage for the
// given wheel count, all wheels undriven.
func NewDifferentialConfig(wheelCount int) DifferentialConfig {
	return DifferentialConfig{Driven: make([]bool, wheelCount)}
}

// SetDrivenWheel flags the wheel at index i as driven or not.
func (c *DifferentialConfig) SetDrivenWheel(i int, driven bool) {
	c.Driven[i] = driven
}

// WheelCount returns the number of wheel slots in the config.
func (c *DifferentialConfig) WheelCount() int { return len(c.Driven) }

// ClutchConfig holds the backend clutch description.
type ClutchConfig struct {
	Strength float64
}

// Gear table indices. Forward gears start at GearFirst.
const (
	GearReverse = 0
	GearNeutral = 1
	GearFirst   = 2
)

// GearsConfig holds the backend gear ratio table. Ratios is indexed by the
// gear constants above: reverse, neutral, then forward gears in order.
type GearsConfig struct {
	SwitchTime float64
	FinalRatio float64
	Ratios     []float64
}

// ForwardGearCount returns the number of forward gears in the table.
func (g *GearsConfig) ForwardGearCount() int {
	if len(g.Ratios) <= GearFirst {
		return 0
	}
	return len(g.Ratios) - GearFirst
}

// AutoBoxConfig holds the automatic gearbox shift thresholds, indexed like
// GearsConfig.Ratios. Values are RPM fractions in [0,1].
type AutoBoxConfig struct {
	UpRatios   []float64
	DownRatios []float64
	Latency    float64
}

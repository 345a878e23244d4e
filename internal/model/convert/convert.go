// Package convert translates the editor-facing drivetrain model to and from
// the physics backend representation. Engineering units go in one direction
// only: the backend stores curve axes as fractions of max RPM and peak
// torque, moments of inertia in its own scale, and rotation speeds in
// radians per second.
package convert

import (
	"errors"
	"fmt"

	"github.com/gearforge/drivetrain/internal/model/core"
	"github.com/gearforge/drivetrain/internal/util"
	"github.com/gearforge/drivetrain/pkg/physx"
)

var (
	// ErrNoPeakTorque is returned when the torque curve has no positive
	// sample, which would make the normalization divisor zero.
	ErrNoPeakTorque = errors.New("convert: torque curve has no positive peak")

	// ErrNoMaxRPM is returned when the engine's max RPM is not positive.
	ErrNoMaxRPM = errors.New("convert: engine max RPM must be positive")

	// ErrWheelCountMismatch is returned when the differential entry count
	// does not match the vehicle's wheel count.
	ErrWheelCountMismatch = errors.New("convert: differential entry count does not match wheel count")
)

// ToEngineConfig converts engine data to the backend engine setup. Curve keys
// are normalized to fractions of MaxRPM on the X axis, clamped to [0,1], and
// of the curve's peak torque on the Y axis. The backend caps the curve at
// physx.MaxTorqueCurveEntries keys; excess samples are dropped from the tail.
func ToEngineConfig(e *core.EngineData) (physx.EngineConfig, error) {
	peak := e.FindPeakTorque()
	if peak <= 0 {
		return physx.EngineConfig{}, ErrNoPeakTorque
	}
	if e.MaxRPM <= 0 {
		return physx.EngineConfig{}, ErrNoMaxRPM
	}

	// MOI, torque and damping all share the backend's unit scale.
	cfg := physx.EngineConfig{
		MOI:                                     physx.M2ToCm2(e.MOI),
		PeakTorque:                              physx.M2ToCm2(peak),
		MaxOmega:                                physx.RPMToOmega(e.MaxRPM),
		DampingRateFullThrottle:                 physx.M2ToCm2(e.DampingRateFullThrottle),
		DampingRateZeroThrottleClutchEngaged:    physx.M2ToCm2(e.DampingRateZeroThrottleClutchEngaged),
		DampingRateZeroThrottleClutchDisengaged: physx.M2ToCm2(e.DampingRateZeroThrottleClutchDisengaged),
	}

	n := len(e.TorqueCurve)
	if n > physx.MaxTorqueCurveEntries {
		n = physx.MaxTorqueCurveEntries
	}
	cfg.TorqueCurve = make([]physx.CurvePoint, 0, n)
	for _, s := range e.TorqueCurve[:n] {
		cfg.TorqueCurve = append(cfg.TorqueCurve, physx.CurvePoint{
			X: util.Clamp(s.RPM/e.MaxRPM, 0, 1),
			Y: s.Torque / peak,
		})
	}
	return cfg, nil
}

// TruncatedTorqueSamples reports how many authored samples would be dropped
// by ToEngineConfig. Callers use it to warn before a lossy export.
func TruncatedTorqueSamples(e *core.EngineData) int {
	if n := len(e.TorqueCurve) - physx.MaxTorqueCurveEntries; n > 0 {
		return n
	}
	return 0
}

// ToDifferentialConfig maps the per-wheel driven flags onto a backend
// differential of exactly wheelCount wheels.
func ToDifferentialConfig(entries []core.DifferentialEntry, wheelCount int) (physx.DifferentialConfig, error) {
	if len(entries) != wheelCount {
		return physx.DifferentialConfig{}, fmt.Errorf("%w: %d entries for %d wheels",
			ErrWheelCountMismatch, len(entries), wheelCount)
	}
	cfg := physx.NewDifferentialConfig(wheelCount)
	for i, e := range entries {
		cfg.SetDrivenWheel(i, e.IsDriven)
	}
	return cfg, nil
}

// ToTransmissionConfigs converts the gearbox data to the backend clutch,
// gears, and autobox setups. Ratios are dimensionless and copy through
// structurally; only the slot layout changes, with reverse and neutral
// occupying the first two gear slots.
func ToTransmissionConfigs(t *core.TransmissionData) (physx.ClutchConfig, physx.GearsConfig, physx.AutoBoxConfig) {
	clutch := physx.ClutchConfig{Strength: t.ClutchStrength}

	gears := physx.GearsConfig{
		SwitchTime: t.GearSwitchTime,
		FinalRatio: t.FinalDriveRatio,
		Ratios:     make([]float64, 0, physx.GearFirst+len(t.ForwardGears)),
	}
	gears.Ratios = append(gears.Ratios, -t.ReverseRatio, 0.0)

	auto := physx.AutoBoxConfig{
		UpRatios:   make([]float64, 0, physx.GearFirst+len(t.ForwardGears)),
		DownRatios: make([]float64, 0, physx.GearFirst+len(t.ForwardGears)),
		Latency:    t.AutoBoxLatency,
	}
	auto.UpRatios = append(auto.UpRatios, 0.0, t.NeutralUpRatio)
	auto.DownRatios = append(auto.DownRatios, 0.0, 0.0)

	for _, g := range t.ForwardGears {
		gears.Ratios = append(gears.Ratios, g.Ratio)
		auto.UpRatios = append(auto.UpRatios, g.UpRatio)
		auto.DownRatios = append(auto.DownRatios, g.DownRatio)
	}
	return clutch, gears, auto
}

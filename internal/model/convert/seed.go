package convert

import (
	"github.com/gearforge/drivetrain/internal/model/core"
	"github.com/gearforge/drivetrain/pkg/physx"
)

// FromBackendDefaults builds a fresh editor model from the backend's factory
// defaults, denormalizing every value into engineering units. The reverse
// gear ratio is stored positive; the backend's negative sign is restored on
// export.
func FromBackendDefaults(d physx.Defaults) core.DrivetrainData {
	maxRPM := physx.OmegaToRPM(d.Engine.MaxOmega)

	engine := core.EngineData{
		MOI:                                     d.Engine.MOI,
		MaxRPM:                                  maxRPM,
		DampingRateFullThrottle:                 d.Engine.DampingRateFullThrottle,
		DampingRateZeroThrottleClutchEngaged:    d.Engine.DampingRateZeroThrottleClutchEngaged,
		DampingRateZeroThrottleClutchDisengaged: d.Engine.DampingRateZeroThrottleClutchDisengaged,
		TorqueCurve:                             make(core.TorqueCurve, 0, len(d.Engine.TorqueCurve)),
	}
	for _, p := range d.Engine.TorqueCurve {
		engine.TorqueCurve = append(engine.TorqueCurve, core.TorqueSample{
			RPM:    p.X * maxRPM,
			Torque: p.Y * d.Engine.PeakTorque,
		})
	}

	trans := core.TransmissionData{
		ClutchStrength:  d.Clutch.Strength,
		GearSwitchTime:  d.Gears.SwitchTime,
		FinalDriveRatio: d.Gears.FinalRatio,
		AutoBoxLatency:  d.AutoBox.Latency,
		UseAutoBox:      true,
	}
	if len(d.Gears.Ratios) > physx.GearReverse {
		trans.ReverseRatio = -d.Gears.Ratios[physx.GearReverse]
	}
	if len(d.AutoBox.UpRatios) > physx.GearNeutral {
		trans.NeutralUpRatio = d.AutoBox.UpRatios[physx.GearNeutral]
	}
	for i := physx.GearFirst; i < len(d.Gears.Ratios); i++ {
		g := core.GearData{Ratio: d.Gears.Ratios[i]}
		if i < len(d.AutoBox.UpRatios) {
			g.UpRatio = d.AutoBox.UpRatios[i]
		}
		if i < len(d.AutoBox.DownRatios) {
			g.DownRatio = d.AutoBox.DownRatios[i]
		}
		trans.ForwardGears = append(trans.ForwardGears, g)
	}

	diff := make([]core.DifferentialEntry, d.WheelCount)
	for i := range diff {
		diff[i].IsDriven = true
	}

	return core.DrivetrainData{
		Engine:       engine,
		Transmission: trans,
		Differential: diff,
		SteeringCurve: core.SteeringCurve{
			{Speed: 0, Multiplier: 1.0},
			{Speed: 20, Multiplier: 0.9},
			{Speed: 60, Multiplier: 0.8},
			{Speed: 120, Multiplier: 0.7},
		},
		WheelCount:     d.WheelCount,
		IdleBrakeInput: 10.0,
	}
}

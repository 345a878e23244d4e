package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearforge/drivetrain/internal/model/core"
	"github.com/gearforge/drivetrain/pkg/physx"
)

func TestToEngineConfig(t *testing.T) {
	e := core.EngineData{
		MOI:                                     1.0,
		MaxRPM:                                  6000,
		DampingRateFullThrottle:                 0.15,
		DampingRateZeroThrottleClutchEngaged:    2.0,
		DampingRateZeroThrottleClutchDisengaged: 0.35,
		TorqueCurve: core.TorqueCurve{
			{RPM: 0, Torque: 400},
			{RPM: 1500, Torque: 500},
			{RPM: 6000, Torque: 400},
		},
	}

	cfg, err := ToEngineConfig(&e)
	require.NoError(t, err)

	// MOI, peak torque and damping all carry the backend unit scale.
	assert.InDelta(t, 10000.0, cfg.MOI, 1e-9)
	assert.InDelta(t, 5e6, cfg.PeakTorque, 1e-3)
	assert.InDelta(t, physx.RPMToOmega(6000), cfg.MaxOmega, 1e-9)
	assert.InDelta(t, 1500.0, cfg.DampingRateFullThrottle, 1e-9)
	assert.InDelta(t, 20000.0, cfg.DampingRateZeroThrottleClutchEngaged, 1e-9)
	assert.InDelta(t, 3500.0, cfg.DampingRateZeroThrottleClutchDisengaged, 1e-9)

	require.Len(t, cfg.TorqueCurve, 3)
	assert.InDelta(t, 0.0, cfg.TorqueCurve[0].X, 1e-9)
	assert.InDelta(t, 0.8, cfg.TorqueCurve[0].Y, 1e-9)
	assert.InDelta(t, 0.25, cfg.TorqueCurve[1].X, 1e-9)
	assert.InDelta(t, 1.0, cfg.TorqueCurve[1].Y, 1e-9)
	assert.InDelta(t, 1.0, cfg.TorqueCurve[2].X, 1e-9)
	assert.InDelta(t, 0.8, cfg.TorqueCurve[2].Y, 1e-9)
}

func TestToEngineConfigErrors(t *testing.T) {
	t.Run("empty curve", func(t *testing.T) {
		e := core.EngineData{MaxRPM: 6000}
		_, err := ToEngineConfig(&e)
		assert.ErrorIs(t, err, ErrNoPeakTorque)
	})

	t.Run("all-zero torque", func(t *testing.T) {
		e := core.EngineData{
			MaxRPM:      6000,
			TorqueCurve: core.TorqueCurve{{RPM: 0, Torque: 0}},
		}
		_, err := ToEngineConfig(&e)
		assert.ErrorIs(t, err, ErrNoPeakTorque)
	})

	t.Run("zero max RPM", func(t *testing.T) {
		e := core.EngineData{
			TorqueCurve: core.TorqueCurve{{RPM: 0, Torque: 100}},
		}
		_, err := ToEngineConfig(&e)
		assert.ErrorIs(t, err, ErrNoMaxRPM)
	})
}

func TestToEngineConfigTruncation(t *testing.T) {
	e := core.EngineData{MaxRPM: 10000}
	for i := 0; i < 12; i++ {
		e.TorqueCurve = append(e.TorqueCurve, core.TorqueSample{
			RPM:    float64(i * 500),
			Torque: 200 + float64(i),
		})
	}

	assert.Equal(t, 4, TruncatedTorqueSamples(&e))

	cfg, err := ToEngineConfig(&e)
	require.NoError(t, err)
	require.Len(t, cfg.TorqueCurve, physx.MaxTorqueCurveEntries)

	// The first eight samples survive in order; the tail is dropped.
	peak := e.FindPeakTorque()
	for i, p := range cfg.TorqueCurve {
		assert.InDelta(t, e.TorqueCurve[i].RPM/e.MaxRPM, p.X, 1e-9)
		assert.InDelta(t, e.TorqueCurve[i].Torque/peak, p.Y, 1e-9)
	}
}

func TestToEngineConfigClampsCurveX(t *testing.T) {
	e := core.EngineData{
		MaxRPM: 5000,
		TorqueCurve: core.TorqueCurve{
			{RPM: 0, Torque: 400},
			{RPM: 5000, Torque: 500},
			{RPM: 7000, Torque: 450},
		},
	}

	cfg, err := ToEngineConfig(&e)
	require.NoError(t, err)
	require.Len(t, cfg.TorqueCurve, 3)

	// a sample authored past MaxRPM must not emit an out-of-range curve key
	assert.InDelta(t, 0.0, cfg.TorqueCurve[0].X, 1e-9)
	assert.InDelta(t, 1.0, cfg.TorqueCurve[1].X, 1e-9)
	assert.InDelta(t, 1.0, cfg.TorqueCurve[2].X, 1e-9)
	assert.InDelta(t, 0.9, cfg.TorqueCurve[2].Y, 1e-9)
}

func TestToDifferentialConfig(t *testing.T) {
	entries := []core.DifferentialEntry{
		{IsDriven: true},
		{IsDriven: true},
		{IsDriven: false},
		{IsDriven: false},
	}

	cfg, err := ToDifferentialConfig(entries, 4)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false, false}, cfg.Driven)

	_, err = ToDifferentialConfig(entries, 6)
	assert.ErrorIs(t, err, ErrWheelCountMismatch)
}

func TestToTransmissionConfigs(t *testing.T) {
	trans := core.TransmissionData{
		ClutchStrength:  10,
		GearSwitchTime:  0.5,
		ReverseRatio:    4.0,
		FinalDriveRatio: 4.0,
		NeutralUpRatio:  0.15,
		AutoBoxLatency:  2.0,
		ForwardGears: []core.GearData{
			{Ratio: 4.0, UpRatio: 0.65, DownRatio: 0.5},
			{Ratio: 2.0, UpRatio: 0.65, DownRatio: 0.5},
			{Ratio: 1.5, UpRatio: 0.65, DownRatio: 0.5},
		},
	}

	clutch, gears, auto := ToTransmissionConfigs(&trans)

	assert.Equal(t, 10.0, clutch.Strength)
	assert.Equal(t, 0.5, gears.SwitchTime)
	assert.Equal(t, 4.0, gears.FinalRatio)
	assert.Equal(t, []float64{-4.0, 0.0, 4.0, 2.0, 1.5}, gears.Ratios)
	assert.Equal(t, 3, gears.ForwardGearCount())
	assert.Equal(t, []float64{0.0, 0.15, 0.65, 0.65, 0.65}, auto.UpRatios)
	assert.Equal(t, []float64{0.0, 0.0, 0.5, 0.5, 0.5}, auto.DownRatios)
	assert.Equal(t, 2.0, auto.Latency)
}

func TestSeedExportRoundTrip(t *testing.T) {
	defaults := physx.FactoryDefaults()
	data := FromBackendDefaults(defaults)

	require.Equal(t, 4, data.WheelCount)
	require.Len(t, data.Differential, 4)
	assert.Equal(t, 4, data.DrivenWheelCount())
	assert.Equal(t, 10.0, data.IdleBrakeInput)
	require.Len(t, data.SteeringCurve, 4)
	assert.Equal(t, core.SteeringSample{Speed: 0, Multiplier: 1.0}, data.SteeringCurve[0])
	assert.Equal(t, core.SteeringSample{Speed: 120, Multiplier: 0.7}, data.SteeringCurve[3])

	// Seeded engineering values come back out as the normalized defaults.
	// Torque gains the backend unit scale on export; the curve shape does not.
	cfg, err := ToEngineConfig(&data.Engine)
	require.NoError(t, err)
	assert.InDelta(t, defaults.Engine.MaxOmega, cfg.MaxOmega, 1e-9)
	assert.InDelta(t, physx.M2ToCm2(defaults.Engine.PeakTorque), cfg.PeakTorque, 1e-3)
	require.Len(t, cfg.TorqueCurve, len(defaults.Engine.TorqueCurve))
	for i, p := range defaults.Engine.TorqueCurve {
		assert.InDelta(t, p.X, cfg.TorqueCurve[i].X, 1e-9)
		assert.InDelta(t, p.Y, cfg.TorqueCurve[i].Y, 1e-9)
	}

	_, gears, auto := ToTransmissionConfigs(&data.Transmission)
	assert.InDelta(t, defaults.Gears.FinalRatio, gears.FinalRatio, 1e-9)
	require.Equal(t, len(defaults.Gears.Ratios), len(gears.Ratios))
	for i, r := range defaults.Gears.Ratios {
		assert.InDelta(t, r, gears.Ratios[i], 1e-9)
	}
	for i, r := range defaults.AutoBox.UpRatios {
		assert.InDelta(t, r, auto.UpRatios[i], 1e-9)
	}
	for i, r := range defaults.AutoBox.DownRatios {
		assert.InDelta(t, r, auto.DownRatios[i], 1e-9)
	}
}

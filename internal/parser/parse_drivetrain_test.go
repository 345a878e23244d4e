package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearforge/drivetrain/internal/model/core"
)

func TestParseEngine(t *testing.T) {
	p := newTestParser()

	engine, err := p.ParseEngine([]string{
		"1.0", "5729.58", "0.15", "2.0", "0.35",
		`"[[0,400],[1890,500],[5729,400]]"`,
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, engine.MOI)
	assert.Equal(t, 5729.58, engine.MaxRPM)
	assert.Equal(t, 0.15, engine.DampingRateFullThrottle)
	assert.Equal(t, 2.0, engine.DampingRateZeroThrottleClutchEngaged)
	assert.Equal(t, 0.35, engine.DampingRateZeroThrottleClutchDisengaged)
	require.Len(t, engine.TorqueCurve, 3)
	assert.Equal(t, core.TorqueSample{RPM: 1890, Torque: 500}, engine.TorqueCurve[1])
}

func TestParseEngineErrors(t *testing.T) {
	p := newTestParser()

	_, err := p.ParseEngine([]string{"1.0", "5729.58"})
	assert.Error(t, err)

	_, err = p.ParseEngine([]string{
		"abc", "5729.58", "0.15", "2.0", "0.35", "[[0,400]]",
	})
	assert.Error(t, err)
}

func TestParseTorqueCurveValidation(t *testing.T) {
	p := newTestParser()

	_, err := p.ParseTorqueCurve("[[0,400],[0,500]]")
	assert.Error(t, err, "rpm must be strictly increasing")

	_, err = p.ParseTorqueCurve("[[0,400],[1500,-10]]")
	assert.Error(t, err, "torque must be non-negative")

	curve, err := p.ParseTorqueCurve("[]")
	require.NoError(t, err)
	assert.Empty(t, curve)
}

func TestParseSteeringCurve(t *testing.T) {
	p := newTestParser()

	curve, err := p.ParseSteeringCurve("[[0,1],[20,0.9],[60,0.8],[120,0.7]]")
	require.NoError(t, err)
	require.Len(t, curve, 4)
	assert.Equal(t, core.SteeringSample{Speed: 60, Multiplier: 0.8}, curve[2])

	// Out-of-range multipliers parse fine; the repair pass clamps them.
	curve, err = p.ParseSteeringCurve("[[0,1.5]]")
	require.NoError(t, err)
	assert.Equal(t, 1.5, curve[0].Multiplier)

	_, err = p.ParseSteeringCurve("[[-5,1]]")
	assert.Error(t, err, "speeds must be non-negative")

	_, err = p.ParseSteeringCurve("[[0,1],[0,0.9]]")
	assert.Error(t, err, "speeds must be strictly increasing")
}

func TestParseDifferential(t *testing.T) {
	p := newTestParser()

	entries, wheelCount, err := p.ParseDifferential([]string{"4", `"[1,1,0,0]"`})
	require.NoError(t, err)
	assert.Equal(t, 4, wheelCount)
	require.Len(t, entries, 4)
	assert.True(t, entries[0].IsDriven)
	assert.True(t, entries[1].IsDriven)
	assert.False(t, entries[2].IsDriven)
	assert.False(t, entries[3].IsDriven)

	_, _, err = p.ParseDifferential([]string{"4"})
	assert.Error(t, err)
}

func TestParseTransmission(t *testing.T) {
	p := newTestParser()

	trans, err := p.ParseTransmission([]string{
		"10", "0.5", "4.0", "4.0", "0.15", "2.0", "1",
		`"[[4,0.65,0.5],[2,0.65,0.5],[1.5,0.65,0.5]]"`,
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, trans.ClutchStrength)
	assert.Equal(t, 0.5, trans.GearSwitchTime)
	assert.Equal(t, 4.0, trans.ReverseRatio)
	assert.Equal(t, 4.0, trans.FinalDriveRatio)
	assert.Equal(t, 0.15, trans.NeutralUpRatio)
	assert.Equal(t, 2.0, trans.AutoBoxLatency)
	assert.True(t, trans.UseAutoBox)
	require.Len(t, trans.ForwardGears, 3)
	assert.Equal(t, core.GearData{Ratio: 2.0, UpRatio: 0.65, DownRatio: 0.5}, trans.ForwardGears[1])
}

func TestParseTransmissionErrors(t *testing.T) {
	p := newTestParser()

	_, err := p.ParseTransmission([]string{"10"})
	assert.Error(t, err)

	_, err = p.ParseTransmission([]string{
		"10", "0.5", "4.0", "4.0", "0.15", "2.0", "1", "[[4,0.65]]",
	})
	assert.Error(t, err, "gear triples need three fields")
}

func TestParseDrivetrain(t *testing.T) {
	p := newTestParser()

	doc := `{
		"engine": {
			"moi": 1.0,
			"maxRpm": 5729.58,
			"torqueCurve": [{"rpm": 0, "torque": 400}, {"rpm": 1890, "torque": 500}]
		},
		"transmission": {
			"clutchStrength": 10,
			"forwardGears": [{"ratio": 4, "upRatio": 0.65, "downRatio": 0.5}]
		},
		"differential": [{"isDriven": true}, {"isDriven": true}, {"isDriven": false}, {"isDriven": false}],
		"steeringCurve": [{"speed": 0, "multiplier": 1}],
		"wheelCount": 4,
		"idleBrakeInput": 10
	}`

	name, d, err := p.ParseDrivetrain([]string{`"test_car"`, doc})
	require.NoError(t, err)
	assert.Equal(t, "test_car", name)
	assert.Equal(t, 4, d.WheelCount)
	assert.Equal(t, 2, d.DrivenWheelCount())
	require.Len(t, d.Engine.TorqueCurve, 2)
	assert.Equal(t, 500.0, d.Engine.FindPeakTorque())
}

func TestParseDrivetrainErrors(t *testing.T) {
	p := newTestParser()

	_, _, err := p.ParseDrivetrain([]string{`""`, `{}`})
	assert.Error(t, err, "empty name")

	_, _, err = p.ParseDrivetrain([]string{"car", `{not json`})
	assert.Error(t, err)

	_, _, err = p.ParseDrivetrain([]string{"car", `{"wheelCount": 0}`})
	assert.Error(t, err, "wheel count must be positive")
}

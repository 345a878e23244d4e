package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gearforge/drivetrain/internal/model/core"
	"github.com/gearforge/drivetrain/internal/util"
)

// ParseEngine parses engine data from raw args.
// Args: [moi, maxRpm, dampingFullThrottle, dampingClutchEngaged, dampingClutchDisengaged, torqueCurve]
func (p *Parser) ParseEngine(data []string) (core.EngineData, error) {
	var engine core.EngineData

	// fix received data
	cleanArgs(data)

	if len(data) != 6 {
		return engine, fmt.Errorf("engine data has %d args, want 6", len(data))
	}

	var err error
	if engine.MOI, err = parseFloat(data[0]); err != nil {
		return engine, fmt.Errorf("error converting moi to float: %w", err)
	}
	if engine.MaxRPM, err = parseFloat(data[1]); err != nil {
		return engine, fmt.Errorf("error converting maxRpm to float: %w", err)
	}
	if engine.DampingRateFullThrottle, err = parseFloat(data[2]); err != nil {
		return engine, fmt.Errorf("error converting dampingFullThrottle to float: %w", err)
	}
	if engine.DampingRateZeroThrottleClutchEngaged, err = parseFloat(data[3]); err != nil {
		return engine, fmt.Errorf("error converting dampingClutchEngaged to float: %w", err)
	}
	if engine.DampingRateZeroThrottleClutchDisengaged, err = parseFloat(data[4]); err != nil {
		return engine, fmt.Errorf("error converting dampingClutchDisengaged to float: %w", err)
	}

	curve, err := p.ParseTorqueCurve(data[5])
	if err != nil {
		return engine, err
	}
	engine.TorqueCurve = curve

	return engine, nil
}

// ParseTorqueCurve parses a torque curve like [[0,400],[1500,500],[5729,400]].
// RPM values must be strictly increasing and torques non-negative.
func (p *Parser) ParseTorqueCurve(s string) (core.TorqueCurve, error) {
	pairs, err := parsePairs(s)
	if err != nil {
		return nil, fmt.Errorf("error parsing torque curve: %w", err)
	}

	curve := make(core.TorqueCurve, 0, len(pairs))
	for i, pair := range pairs {
		if i > 0 && pair[0] <= curve[i-1].RPM {
			return nil, fmt.Errorf("torque curve rpm not increasing at sample %d", i)
		}
		if pair[1] < 0 {
			return nil, fmt.Errorf("torque curve has negative torque at sample %d", i)
		}
		curve = append(curve, core.TorqueSample{RPM: pair[0], Torque: pair[1]})
	}
	return curve, nil
}

// ParseSteeringCurve parses a steering curve like [[0,1],[20,0.9],[60,0.8]].
// Speeds must be non-negative and strictly increasing. Multipliers are not
// range checked here; the repair pass clamps them.
func (p *Parser) ParseSteeringCurve(s string) (core.SteeringCurve, error) {
	pairs, err := parsePairs(s)
	if err != nil {
		return nil, fmt.Errorf("error parsing steering curve: %w", err)
	}

	curve := make(core.SteeringCurve, 0, len(pairs))
	for i, pair := range pairs {
		if pair[0] < 0 {
			return nil, fmt.Errorf("steering curve has negative speed at sample %d", i)
		}
		if i > 0 && pair[0] <= curve[i-1].Speed {
			return nil, fmt.Errorf("steering curve speed not increasing at sample %d", i)
		}
		curve = append(curve, core.SteeringSample{Speed: pair[0], Multiplier: pair[1]})
	}
	return curve, nil
}

// ParseDifferential parses per-wheel driven flags from raw args.
// Args: [wheelCount, flags] where flags is like [1,1,0,0]
func (p *Parser) ParseDifferential(data []string) ([]core.DifferentialEntry, int, error) {
	// fix received data
	cleanArgs(data)

	if len(data) != 2 {
		return nil, 0, fmt.Errorf("differential data has %d args, want 2", len(data))
	}

	wheelCount, err := parseIntFromFloat(data[0])
	if err != nil {
		return nil, 0, fmt.Errorf("error converting wheelCount to int: %w", err)
	}

	flags, err := parseFlags(data[1])
	if err != nil {
		return nil, 0, fmt.Errorf("error parsing driven flags: %w", err)
	}

	entries := make([]core.DifferentialEntry, len(flags))
	for i, f := range flags {
		entries[i].IsDriven = f
	}
	return entries, wheelCount, nil
}

// ParseTransmission parses gearbox data from raw args.
// Args: [clutchStrength, gearSwitchTime, reverseRatio, finalDriveRatio,
//
//	neutralUpRatio, autoBoxLatency, useAutoBox, gears]
//
// where gears is like [[4,0.65,0.5],[2,0.65,0.5]] holding
// [ratio, upRatio, downRatio] per forward gear.
func (p *Parser) ParseTransmission(data []string) (core.TransmissionData, error) {
	var trans core.TransmissionData

	// fix received data
	cleanArgs(data)

	if len(data) != 8 {
		return trans, fmt.Errorf("transmission data has %d args, want 8", len(data))
	}

	var err error
	if trans.ClutchStrength, err = parseFloat(data[0]); err != nil {
		return trans, fmt.Errorf("error converting clutchStrength to float: %w", err)
	}
	if trans.GearSwitchTime, err = parseFloat(data[1]); err != nil {
		return trans, fmt.Errorf("error converting gearSwitchTime to float: %w", err)
	}
	if trans.ReverseRatio, err = parseFloat(data[2]); err != nil {
		return trans, fmt.Errorf("error converting reverseRatio to float: %w", err)
	}
	if trans.FinalDriveRatio, err = parseFloat(data[3]); err != nil {
		return trans, fmt.Errorf("error converting finalDriveRatio to float: %w", err)
	}
	if trans.NeutralUpRatio, err = parseFloat(data[4]); err != nil {
		return trans, fmt.Errorf("error converting neutralUpRatio to float: %w", err)
	}
	if trans.AutoBoxLatency, err = parseFloat(data[5]); err != nil {
		return trans, fmt.Errorf("error converting autoBoxLatency to float: %w", err)
	}
	if trans.UseAutoBox, err = parseBoolFlag(data[6]); err != nil {
		return trans, fmt.Errorf("error converting useAutoBox to bool: %w", err)
	}

	gears, err := parseGearTriples(data[7])
	if err != nil {
		return trans, err
	}
	trans.ForwardGears = gears

	return trans, nil
}

func parseGearTriples(s string) ([]core.GearData, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("parseGearTriples: %q is not a bracket array", s)
	}

	var gears []core.GearData
	for i, part := range util.SplitTopLevel(s[1 : len(s)-1]) {
		if len(part) < 2 || part[0] != '[' || part[len(part)-1] != ']' {
			return nil, fmt.Errorf("gear %d: %q is not a triple", i, part)
		}
		fields := strings.Split(part[1:len(part)-1], ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("gear %d has %d fields, want 3", i, len(fields))
		}
		var g core.GearData
		var err error
		if g.Ratio, err = parseFloat(fields[0]); err != nil {
			return nil, fmt.Errorf("gear %d ratio: %w", i, err)
		}
		if g.UpRatio, err = parseFloat(fields[1]); err != nil {
			return nil, fmt.Errorf("gear %d upRatio: %w", i, err)
		}
		if g.DownRatio, err = parseFloat(fields[2]); err != nil {
			return nil, fmt.Errorf("gear %d downRatio: %w", i, err)
		}
		gears = append(gears, g)
	}
	return gears, nil
}

// ParseDrivetrain parses a complete drivetrain document from raw args.
// Args: [name, documentJSON]
// Returns the asset name and parsed data. NO DB operations, NO cache
// resets, NO callbacks.
func (p *Parser) ParseDrivetrain(data []string) (string, core.DrivetrainData, error) {
	var d core.DrivetrainData

	// fix received data
	cleanArgs(data)

	if len(data) != 2 {
		return "", d, fmt.Errorf("drivetrain data has %d args, want 2", len(data))
	}
	name := data[0]
	if name == "" {
		return "", d, fmt.Errorf("drivetrain name is empty")
	}

	if err := json.Unmarshal([]byte(data[1]), &d); err != nil {
		return "", d, fmt.Errorf("error unmarshalling drivetrain data: %w", err)
	}

	if d.WheelCount <= 0 {
		return "", d, fmt.Errorf("drivetrain %q has invalid wheel count %d", name, d.WheelCount)
	}

	p.logger.Debug("Parsed drivetrain data",
		"name", name,
		"wheelCount", d.WheelCount,
		"torqueSamples", len(d.Engine.TorqueCurve))

	return name, d, nil
}

package convert

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/gearforge/drivetrain/internal/model"
	"github.com/gearforge/drivetrain/internal/model/core"
)

// ToGormAsset packs a drivetrain into its database row. Curves and the
// per-wheel flags are serialized into JSON columns.
func ToGormAsset(name string, d *core.DrivetrainData) (model.DrivetrainAsset, error) {
	torque, err := json.Marshal(d.Engine.TorqueCurve)
	if err != nil {
		return model.DrivetrainAsset{}, fmt.Errorf("marshal torque curve: %w", err)
	}
	gears, err := json.Marshal(d.Transmission.ForwardGears)
	if err != nil {
		return model.DrivetrainAsset{}, fmt.Errorf("marshal forward gears: %w", err)
	}
	driven := make([]bool, len(d.Differential))
	for i, e := range d.Differential {
		driven[i] = e.IsDriven
	}
	drivenJSON, err := json.Marshal(driven)
	if err != nil {
		return model.DrivetrainAsset{}, fmt.Errorf("marshal driven wheels: %w", err)
	}
	steering, err := json.Marshal(d.SteeringCurve)
	if err != nil {
		return model.DrivetrainAsset{}, fmt.Errorf("marshal steering curve: %w", err)
	}

	return model.DrivetrainAsset{
		Name:                                    name,
		EngineMOI:                               d.Engine.MOI,
		EngineMaxRPM:                            d.Engine.MaxRPM,
		DampingRateFullThrottle:                 d.Engine.DampingRateFullThrottle,
		DampingRateZeroThrottleClutchEngaged:    d.Engine.DampingRateZeroThrottleClutchEngaged,
		DampingRateZeroThrottleClutchDisengaged: d.Engine.DampingRateZeroThrottleClutchDisengaged,
		TorqueCurve:                             datatypes.JSON(torque),
		ClutchStrength:                          d.Transmission.ClutchStrength,
		GearSwitchTime:                          d.Transmission.GearSwitchTime,
		ReverseRatio:                            d.Transmission.ReverseRatio,
		FinalDriveRatio:                         d.Transmission.FinalDriveRatio,
		NeutralUpRatio:                          d.Transmission.NeutralUpRatio,
		AutoBoxLatency:                          d.Transmission.AutoBoxLatency,
		UseAutoBox:                              d.Transmission.UseAutoBox,
		ForwardGears:                            datatypes.JSON(gears),
		WheelCount:                              d.WheelCount,
		DrivenWheels:                            datatypes.JSON(drivenJSON),
		SteeringCurve:                           datatypes.JSON(steering),
		IdleBrakeInput:                          d.IdleBrakeInput,
	}, nil
}

// FromGormAsset unpacks a database row back into the editor model.
func FromGormAsset(a *model.DrivetrainAsset) (core.DrivetrainData, error) {
	d := core.DrivetrainData{
		Engine: core.EngineData{
			MOI:                                     a.EngineMOI,
			MaxRPM:                                  a.EngineMaxRPM,
			DampingRateFullThrottle:                 a.DampingRateFullThrottle,
			DampingRateZeroThrottleClutchEngaged:    a.DampingRateZeroThrottleClutchEngaged,
			DampingRateZeroThrottleClutchDisengaged: a.DampingRateZeroThrottleClutchDisengaged,
		},
		Transmission: core.TransmissionData{
			ClutchStrength:  a.ClutchStrength,
			GearSwitchTime:  a.GearSwitchTime,
			ReverseRatio:    a.ReverseRatio,
			FinalDriveRatio: a.FinalDriveRatio,
			NeutralUpRatio:  a.NeutralUpRatio,
			AutoBoxLatency:  a.AutoBoxLatency,
			UseAutoBox:      a.UseAutoBox,
		},
		WheelCount:     a.WheelCount,
		IdleBrakeInput: a.IdleBrakeInput,
	}

	if len(a.TorqueCurve) > 0 {
		if err := json.Unmarshal(a.TorqueCurve, &d.Engine.TorqueCurve); err != nil {
			return core.DrivetrainData{}, fmt.Errorf("unmarshal torque curve: %w", err)
		}
	}
	if len(a.ForwardGears) > 0 {
		if err := json.Unmarshal(a.ForwardGears, &d.Transmission.ForwardGears); err != nil {
			return core.DrivetrainData{}, fmt.Errorf("unmarshal forward gears: %w", err)
		}
	}
	var driven []bool
	if len(a.DrivenWheels) > 0 {
		if err := json.Unmarshal(a.DrivenWheels, &driven); err != nil {
			return core.DrivetrainData{}, fmt.Errorf("unmarshal driven wheels: %w", err)
		}
	}
	d.Differential = make([]core.DifferentialEntry, len(driven))
	for i, v := range driven {
		d.Differential[i].IsDriven = v
	}
	if len(a.SteeringCurve) > 0 {
		if err := json.Unmarshal(a.SteeringCurve, &d.SteeringCurve); err != nil {
			return core.DrivetrainData{}, fmt.Errorf("unmarshal steering curve: %w", err)
		}
	}
	return d, nil
}

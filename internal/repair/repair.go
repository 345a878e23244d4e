// Package repair normalizes drivetrain data after a property edit. Edits are
// never rejected: out-of-range values are pulled back into range so the
// model stays usable mid-edit. Every repair is idempotent.
package repair

import (
	"github.com/gearforge/drivetrain/internal/model/core"
)

// Field identifies the edited property that triggers a repair.
type Field string

const (
	FieldGearDownRatio Field = "DownRatio"
	FieldGearUpRatio   Field = "UpRatio"
	FieldSteeringCurve Field = "SteeringCurve"
)

// ParseField maps a property name to its repair field.
func ParseField(name string) (Field, bool) {
	switch Field(name) {
	case FieldGearDownRatio, FieldGearUpRatio, FieldSteeringCurve:
		return Field(name), true
	}
	return "", false
}

// Apply runs the repair for the edited field and reports whether any value
// changed. Unknown fields repair nothing.
func Apply(d *core.DrivetrainData, field Field) bool {
	switch field {
	case FieldGearDownRatio:
		return repairDownRatios(d.Transmission.ForwardGears)
	case FieldGearUpRatio:
		return repairUpRatios(d.Transmission.ForwardGears)
	case FieldSteeringCurve:
		return repairSteeringCurve(d.SteeringCurve)
	}
	return false
}

// All runs every repair, for use on freshly imported data.
func All(d *core.DrivetrainData) []Field {
	var touched []Field
	if repairDownRatios(d.Transmission.ForwardGears) {
		touched = append(touched, FieldGearDownRatio)
	}
	if repairUpRatios(d.Transmission.ForwardGears) {
		touched = append(touched, FieldGearUpRatio)
	}
	if repairSteeringCurve(d.SteeringCurve) {
		touched = append(touched, FieldSteeringCurve)
	}
	return touched
}

// A lowered down ratio wins: the up ratio follows it down so the shift
// window never inverts.
func repairDownRatios(gears []core.GearData) bool {
	changed := false
	for i := range gears {
		if gears[i].DownRatio > gears[i].UpRatio {
			gears[i].DownRatio = gears[i].UpRatio
			changed = true
		}
	}
	return changed
}

// A raised up ratio wins symmetrically.
func repairUpRatios(gears []core.GearData) bool {
	changed := false
	for i := range gears {
		if gears[i].UpRatio < gears[i].DownRatio {
			gears[i].UpRatio = gears[i].DownRatio
			changed = true
		}
	}
	return changed
}

// Multipliers are clamped to [0,1]; sample count and speeds are untouched.
func repairSteeringCurve(curve core.SteeringCurve) bool {
	changed := false
	for i := range curve {
		if curve[i].Multiplier < 0 {
			curve[i].Multiplier = 0
			changed = true
		} else if curve[i].Multiplier > 1 {
			curve[i].Multiplier = 1
			changed = true
		}
	}
	return changed
}

// FieldNames renders repair fields for logging and export records.
func FieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}

func (f Field) String() string {
	return string(f)
}

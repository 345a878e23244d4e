package core

// DrivetrainData is the complete editor-facing description of a vehicle
// drivetrain. WheelCount is authoritative: the differential collection must
// hold exactly that many entries.
type DrivetrainData struct {
	Engine         EngineData          `json:"engine"`
	Transmission   TransmissionData    `json:"transmission"`
	Differential   []DifferentialEntry `json:"differential"`
	SteeringCurve  SteeringCurve       `json:"steeringCurve"`
	WheelCount     int                 `json:"wheelCount"`
	IdleBrakeInput float64             `json:"idleBrakeInput"`
}

// DrivenWheelCount returns how many wheels receive engine torque.
func (d *DrivetrainData) DrivenWheelCount() int {
	n := 0
	for _, e := range d.Differential {
		if e.IsDriven {
			n++
		}
	}
	return n
}

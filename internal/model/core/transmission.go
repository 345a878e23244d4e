package core

// GearData is one forward gear. UpRatio and DownRatio are the RPM fractions
// at which the automatic gearbox shifts; the repair pass keeps
// DownRatio <= UpRatio.
type GearData struct {
	Ratio     float64 `json:"ratio"`
	UpRatio   float64 `json:"upRatio"`
	DownRatio float64 `json:"downRatio"`
}

// TransmissionData describes the gearbox. All ratios are dimensionless, so
// it is copied structurally into the backend with no unit conversion.
type TransmissionData struct {
	ClutchStrength  float64    `json:"clutchStrength"`
	GearSwitchTime  float64    `json:"gearSwitchTime"` // seconds
	ReverseRatio    float64    `json:"reverseRatio"`
	FinalDriveRatio float64    `json:"finalDriveRatio"`
	NeutralUpRatio  float64    `json:"neutralUpRatio"`
	AutoBoxLatency  float64    `json:"autoBoxLatency"` // seconds
	UseAutoBox      bool       `json:"useAutoBox"`
	ForwardGears    []GearData `json:"forwardGears"`
}

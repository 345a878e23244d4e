package core

// DifferentialEntry is the per-wheel differential setup. Entry order matches
// the wheel index order used by the rest of the vehicle configuration, and
// the collection length must always equal the vehicle's wheel count.
type DifferentialEntry struct {
	IsDriven bool `json:"isDriven"`
}

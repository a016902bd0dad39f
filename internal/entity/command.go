package entity

// Command type digits of the arm wire protocol.
const (
	CommandWhiteMove   byte = '1'
	CommandBlackMove   byte = '2'
	CommandRetraction  byte = '3'
	CommandCalibration byte = '4'
	CommandExtension   byte = '5'
)

// Command is a single instruction bound for the arm. For move commands the
// origin digit is that side's move ordinal; for retraction alerts it is the
// vacated cell.
type Command struct {
	Type   byte
	Origin int
	Target int
}

const (
	AnomalyRetraction = "retraction"
	AnomalyMultiCell  = "multi-cell"
	AnomalyNoise      = "noise-flicker"
)

// Anomaly reports an observation that violates the single-move invariant.
// It lives only for the cycle that raised it.
type Anomaly struct {
	Kind    string `json:"kind"`
	Origin  int    `json:"origin"`
	Target  int    `json:"target"`
	NewMark string `json:"new_mark,omitempty"`
	Changed []int  `json:"changed,omitempty"`
}

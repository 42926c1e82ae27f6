package replay

// Version is the replay format version
const Version = "2.0"

// Press is a recorded press in NDC
type Press struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// FrameInput records the presses drained on a single frame
type FrameInput struct {
	F int     `json:"f"` // Frame number
	P []Press `json:"p"` // Presses in push order
}

// ReplayData contains all data needed to replay a game session.
// Frames only lists frames that had presses.
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      uint64       `json:"seed"`
	Timed     bool         `json:"timed,omitempty"`
	DT        float64      `json:"dt"`
	StartTime string       `json:"startTime"`
	Length    int          `json:"length"`          // Total frames played
	Score     uint64       `json:"score,omitempty"` // Score at the end of recording
	Frames    []FrameInput `json:"frames"`
}

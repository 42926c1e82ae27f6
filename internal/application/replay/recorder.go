package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/tapgame/internal/domain/geom"
)

// Recorder collects presses for replay. It implements round.FrameRecorder.
type Recorder struct {
	data      ReplayData
	recording bool
}

// NewRecorder creates a new recorder with seed for deterministic replay
func NewRecorder(seed uint64, dt float64, timed bool) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			Seed:      seed,
			Timed:     timed,
			DT:        dt,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 256),
		},
		recording: true,
	}
}

// RecordFrame records the presses of one frame
func (r *Recorder) RecordFrame(frame int, presses []geom.Point) {
	if !r.recording {
		return
	}

	r.data.Length = frame + 1
	if len(presses) == 0 {
		return
	}

	fi := FrameInput{F: frame, P: make([]Press, len(presses))}
	for i, p := range presses {
		fi.P[i] = Press{X: p.X(), Y: p.Y()}
	}
	r.data.Frames = append(r.data.Frames, fi)
}

// SetScore stores the final score checked on playback
func (r *Recorder) SetScore(score uint64) {
	r.data.Score = score
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if r.data.Length == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return r.data.Length
}

// GetData returns a copy of the replay data recorded so far
func (r *Recorder) GetData() ReplayData {
	data := r.data
	data.Frames = append([]FrameInput(nil), r.data.Frames...)
	return data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}

package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/tapgame/internal/application/input"
	"github.com/younwookim/tapgame/internal/domain/geom"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
	next  int // index into data.Frames
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}

	return &data, nil
}

// GetInput returns the presses of the current frame and advances.
// It reports false once every recorded frame has been played.
func (r *Replayer) GetInput() ([]geom.Point, bool) {
	if r.frame >= r.data.Length {
		return nil, false
	}

	var presses []geom.Point
	for r.next < len(r.data.Frames) && r.data.Frames[r.next].F <= r.frame {
		fi := r.data.Frames[r.next]
		if fi.F == r.frame {
			for _, p := range fi.P {
				presses = append(presses, geom.NewPoint(p.X, p.Y))
			}
		}
		r.next++
	}
	r.frame++

	return presses, true
}

// Feed pushes the current frame's presses onto q and advances
func (r *Replayer) Feed(q *input.Queue) bool {
	presses, ok := r.GetInput()
	for _, p := range presses {
		q.Push(p)
	}
	return ok
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return r.data.Length
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() uint64 {
	return r.data.Seed
}

// Data returns the replay being played
func (r *Replayer) Data() ReplayData {
	return r.data
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.next = 0
}

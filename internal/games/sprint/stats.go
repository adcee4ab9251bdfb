package sprint

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Stats are the counters shown beside the board.
type Stats struct {
	ElapsedMs int64
	Pieces    int
	Inputs    int
	Holds     int
	Lines     int
}

// PPS returns pieces placed per second.
func (s Stats) PPS() float64 {
	if s.ElapsedMs <= 0 {
		return 0
	}
	return float64(s.Pieces) * 1000 / float64(s.ElapsedMs)
}

// KPP returns inputs per piece placed.
func (s Stats) KPP() float64 {
	if s.Pieces == 0 {
		return 0
	}
	return float64(s.Inputs) / float64(s.Pieces)
}

// Summary converts the counters to the platform record type.
func (s Stats) Summary() core.RunSummary {
	return core.RunSummary{
		ElapsedMs: s.ElapsedMs,
		Pieces:    s.Pieces,
		Inputs:    s.Inputs,
		Holds:     s.Holds,
		Lines:     s.Lines,
	}
}

// FormatTime renders milliseconds as m:ss.cc, or s.cc under a minute.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	cs := (ms / 10) % 100
	sec := (ms / 1000) % 60
	minutes := ms / 60000
	if minutes > 0 {
		return fmt.Sprintf("%d:%02d.%02d", minutes, sec, cs)
	}
	return fmt.Sprintf("%d.%02d", sec, cs)
}

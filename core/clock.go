package core

// FrameStats accumulates frame times and reports an average once per
// reporting interval.
type FrameStats struct {
	Interval float64

	start  float64
	last   float64
	frames int
	worst  float64
}

func NewFrameStats(interval float64) *FrameStats {
	return &FrameStats{Interval: interval, start: -1}
}

// Tick records a frame that ended at now (seconds). When the interval has
// elapsed it returns the average and worst frame time of the window and
// resets the window.
func (s *FrameStats) Tick(now float64) (avg, worst float64, ok bool) {
	if s.start < 0 {
		s.start, s.last = now, now
		return 0, 0, false
	}
	dt := now - s.last
	s.last = now
	s.frames++
	if dt > s.worst {
		s.worst = dt
	}
	elapsed := now - s.start
	if elapsed < s.Interval || s.frames == 0 {
		return 0, 0, false
	}
	avg, worst = elapsed/float64(s.frames), s.worst
	s.start, s.frames, s.worst = now, 0, 0
	return avg, worst, true
}

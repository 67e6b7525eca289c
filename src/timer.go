package main

// FrameTimer counts simulation frames. One Tick is one frame; nothing here
// reads a clock.
type FrameTimer struct {
	Total    uint32
	Current  uint32
	finished bool
}

func NewFrameTimer(total uint32) FrameTimer {
	if total == 0 {
		total = 1
	}
	return FrameTimer{Total: total}
}

// Tick advances one frame. It wraps instead of saturating, so a timer keeps
// looping until the owner resets or replaces it.
func (t *FrameTimer) Tick() {
	t.finished = false
	t.Current++
	if t.Current >= t.Total {
		t.Current = 0
		t.finished = true
	}
}

// Finished is true only for the tick on which the timer wrapped.
func (t *FrameTimer) Finished() bool {
	return t.finished
}

func (t *FrameTimer) Reset() {
	t.Current = 0
	t.finished = false
}

// AnimationProgress tracks which frame of an animation is playing.
// A character replaces it wholesale on every state change.
type AnimationProgress struct {
	Timer     FrameTimer
	Frame     uint32
	Durations []uint32
}

func NewAnimationProgress(durations []uint32) AnimationProgress {
	ap := AnimationProgress{Durations: durations}
	if len(durations) > 0 {
		ap.Timer = NewFrameTimer(durations[0])
	}
	return ap
}

// Tick advances the animation by one frame and reports whether it just
// played its last frame.
func (ap *AnimationProgress) Tick() bool {
	if ap.Done() {
		return true
	}
	ap.Timer.Tick()
	if !ap.Timer.Finished() {
		return false
	}
	ap.Frame++
	if ap.Done() {
		return true
	}
	ap.Timer = NewFrameTimer(ap.Durations[ap.Frame])
	return false
}

func (ap *AnimationProgress) Done() bool {
	return ap.Frame >= uint32(len(ap.Durations))
}

// Index is the frame to use for table lookups, kept in range once done.
func (ap *AnimationProgress) Index() int {
	if n := len(ap.Durations); int(ap.Frame) >= n {
		return n - 1
	}
	return int(ap.Frame)
}

// FrameStart is true on the first tick of the current frame.
func (ap *AnimationProgress) FrameStart() bool {
	return ap.Timer.Current == 0
}

func (ap *AnimationProgress) Restart() {
	ap.Frame = 0
	if len(ap.Durations) > 0 {
		ap.Timer = NewFrameTimer(ap.Durations[0])
	}
}

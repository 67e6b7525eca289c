package main

type AnimationId uint8

const (
	AnimNone AnimationId = iota
	AnimIdle
	AnimForwardRun
	AnimBackwardRun
	AnimLightAttack
	AnimMediumAttack
	AnimHeavyAttack
	AnimLightHitRecovery
	AnimCrouched
	AnimCrouching
	AnimBlocking
	AnimLightCrouchAttack
	AnimHeavyCrouchingAttack
	AnimLightKick
	AnimMediumKick
	AnimHeavyKick
	AnimForwardDash
	AnimBackwardDash
	AnimSpecial1
	AnimJump
	AnimParry
	AnimParried
	AnimWon
	AnimLost
	AnimFireball
	AnimHitSpark
	animationCount
)

// Names are used only when reading character sheets and printing.
var animationNames = [animationCount]string{
	AnimNone:                 "",
	AnimIdle:                 "Idle",
	AnimForwardRun:           "ForwardRun",
	AnimBackwardRun:          "BackwardRun",
	AnimLightAttack:          "LightAttack",
	AnimMediumAttack:         "MediumAttack",
	AnimHeavyAttack:          "HeavyAttack",
	AnimLightHitRecovery:     "LightHitRecovery",
	AnimCrouched:             "Crouched",
	AnimCrouching:            "Crouching",
	AnimBlocking:             "Blocking",
	AnimLightCrouchAttack:    "LightCrouchAttack",
	AnimHeavyCrouchingAttack: "HeavyCrouchingAttack",
	AnimLightKick:            "LightKick",
	AnimMediumKick:           "MediumKick",
	AnimHeavyKick:            "HeavyKick",
	AnimForwardDash:          "ForwardDash",
	AnimBackwardDash:         "BackwardDash",
	AnimSpecial1:             "Special1",
	AnimJump:                 "Jump",
	AnimParry:                "Parry",
	AnimParried:              "Parried",
	AnimWon:                  "Won",
	AnimLost:                 "Lost",
	AnimFireball:             "Fireball",
	AnimHitSpark:             "HitSpark",
}

var animationByName = func() map[string]AnimationId {
	m := make(map[string]AnimationId, animationCount)
	for id := AnimIdle; id < animationCount; id++ {
		m[animationNames[id]] = id
	}
	return m
}()

func AnimationIdFromName(name string) (AnimationId, bool) {
	id, ok := animationByName[name]
	return id, ok
}

func (id AnimationId) String() string {
	if id < animationCount {
		return animationNames[id]
	}
	return "?"
}

func (id AnimationId) Valid() bool {
	return id > AnimNone && id < animationCount
}

// Animation is the per-character timing and motion data of one animation.
type Animation struct {
	Image string
	// Ticks each frame stays on screen.
	Durations []uint32
	// Per-frame motion, right-facing. Only Jump reads it today.
	Displacements []Vec2
}

func (a *Animation) Length() int {
	return len(a.Durations)
}

// TotalTime is the number of ticks a full play-through takes.
func (a *Animation) TotalTime() uint32 {
	var sum uint32
	for _, d := range a.Durations {
		sum += d
	}
	return sum
}

func (a *Animation) Displacement(frame int) Vec2 {
	if frame < 0 || frame >= len(a.Displacements) {
		return Vec2{}
	}
	return a.Displacements[frame]
}

type AnimationTable [animationCount]*Animation

func (at *AnimationTable) Get(id AnimationId) *Animation {
	if id >= animationCount {
		return nil
	}
	return at[id]
}

// Progress starts a fresh play-through of id.
func (at *AnimationTable) Progress(id AnimationId) AnimationProgress {
	if a := at.Get(id); a != nil {
		return NewAnimationProgress(a.Durations)
	}
	return AnimationProgress{}
}

func (at *AnimationTable) validate() error {
	for id := AnimIdle; id < animationCount; id++ {
		a := at[id]
		path := joinPath("animations", id.String())
		if a == nil {
			return configErrorf(path, "missing animation")
		}
		if len(a.Durations) == 0 {
			return configErrorf(joinPath(path, "frame_lengths"), "no frames")
		}
		for i, d := range a.Durations {
			if d == 0 {
				return configErrorf(joinPath(path, "frame_lengths"), "frame %d has zero length", i)
			}
		}
		if n := len(a.Displacements); n != 0 && n != len(a.Durations) {
			return configErrorf(joinPath(path, "displacements"),
				"has %d entries, want %d", n, len(a.Durations))
		}
	}
	return nil
}

package main

// ProjectileData describes the one projectile archetype a character throws.
type ProjectileData struct {
	Anim       AnimationId
	Speed      Fixed
	SpawnFrame uint32
	// Spawn point relative to the thrower, right-facing.
	Offset  Vec2
	Damage  uint32
	HitStun uint32
	Hurtbox Rect
}

// GameData is everything the simulation reads but never writes. Both
// characters share one instance; it must not change once a match starts.
type GameData struct {
	Name        string
	Animations  AnimationTable
	Collisions  CollisionTable
	Commands    CommandList
	WalkBox     Rect
	MoveSpeed   Fixed
	DashSpeed   Fixed
	StartHealth uint32
	Projectile  ProjectileData
	Spark       AnimationId

	ParryDamage  uint32
	ParryHitStun uint32
	// Indexed by CharacterState.Strength.
	StrikeHitStun [4]uint32

	// Furthest a character's center may be from the arena center.
	StageBound Fixed
	// Projectiles past this distance from the center are removed.
	ArenaBound    Fixed
	MaxSeparation Fixed
	StartOffset   Fixed

	RoundTime uint32
	ResetTime uint32
	Wins      uint8
}

const (
	defaultParryDamage  = 5
	defaultParryHitStun = 6
)

var defaultStrikeHitStun = [4]uint32{3, 3, 6, 9}

// applyConfig copies the match and arena settings into gd.
func (gd *GameData) applyConfig(c *Config) {
	gd.RoundTime = uint32(c.Match.RoundTime)
	gd.ResetTime = uint32(c.Match.ResetTime)
	gd.Wins = uint8(c.Match.Wins)
	half := FromInt(c.Arena.Width) / 2
	gd.ArenaBound = half
	gd.StageBound = half - FromInt(c.Arena.FrameWidth)/2
	gd.MaxSeparation = FromInt(c.Arena.FrameWidth)
	gd.StartOffset = FromInt(c.Arena.StartOffset)
}

// Validate checks that every table the tick path reads is complete, so that
// Round.Advance never has to handle missing data.
func (gd *GameData) Validate() error {
	if err := gd.Animations.validate(); err != nil {
		return err
	}
	if err := gd.Collisions.validate(&gd.Animations); err != nil {
		return err
	}
	if err := gd.Commands.validate(); err != nil {
		return err
	}
	for s := CharacterState(0); s < stateCount; s++ {
		sa := stateAnimations[s]
		if !sa.Crouched.Valid() || !sa.Standing.Valid() {
			return configErrorf("", "state %v has no animation", s)
		}
	}
	if gd.WalkBox.Width() <= 0 {
		return configErrorf("walkbox", "empty")
	}
	if gd.StartHealth == 0 {
		return configErrorf("health", "must be positive")
	}
	if gd.MoveSpeed <= 0 || gd.DashSpeed <= 0 {
		return configErrorf("movespeed", "must be positive")
	}
	p := gd.Projectile
	if p.Speed <= 0 {
		return configErrorf("projectile.speed", "must be positive")
	}
	if int(p.SpawnFrame) >= gd.Animations[AnimSpecial1].Length() {
		return configErrorf("projectile.spawnframe", "%d is past the end of Special1", p.SpawnFrame)
	}
	if gd.RoundTime == 0 || gd.ResetTime == 0 {
		return configErrorf("Match", "round and reset time must be positive")
	}
	if gd.StageBound <= 0 || gd.MaxSeparation <= gd.WalkBox.Width() {
		return configErrorf("Arena", "arena too small")
	}
	if gd.StartOffset*2 > gd.MaxSeparation || gd.StartOffset > gd.StageBound {
		return configErrorf("Arena.StartOffset", "characters would start out of bounds")
	}
	if gd.Wins == 0 {
		return configErrorf("Match.Wins", "must be positive")
	}
	return nil
}

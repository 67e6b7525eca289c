package main

type Projectile struct {
	Pos      Vec2
	Vel      Vec2
	Side     Side
	Owner    uint8
	Progress AnimationProgress
}

func newProjectile(gd *GameData, owner int, c *Char) Projectile {
	pd := &gd.Projectile
	off := pd.Offset
	if c.Side == SideRight {
		off = off.MirrorX()
	}
	return Projectile{
		Pos:      c.Pos.Add(off),
		Vel:      Vec2{X: c.Side.Toward(pd.Speed)},
		Side:     c.Side,
		Owner:    uint8(owner),
		Progress: gd.Animations.Progress(pd.Anim),
	}
}

// update moves the projectile and loops its animation.
func (p *Projectile) update() {
	p.Pos = p.Pos.Add(p.Vel)
	if p.Progress.Tick() {
		p.Progress.Restart()
	}
}

func (p *Projectile) hurtbox(gd *GameData) Rect {
	return gd.Projectile.Hurtbox.World(p.Pos, p.Side)
}

func (p *Projectile) outside(gd *GameData) bool {
	return Abs(p.Pos.X) > gd.ArenaBound
}

// Effect is a hit spark. It plays its animation once and disappears.
type Effect struct {
	Pos      Vec2
	Side     Side
	Progress AnimationProgress
}

func newEffect(gd *GameData, pos Vec2, side Side) Effect {
	return Effect{Pos: pos, Side: side, Progress: gd.Animations.Progress(gd.Spark)}
}

// update reports whether the effect is still playing.
func (e *Effect) update() bool {
	return !e.Progress.Tick()
}

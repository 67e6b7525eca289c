package main

// Round is the whole mutable state of one round and the unit a rollback
// session saves and restores.
type Round struct {
	Chars       [2]Char
	Projectiles []Projectile
	Effects     []Effect
	// Number of Advance calls since the round started.
	Frame      int64
	RoundTimer FrameTimer
	ResetTimer FrameTimer
	HitStun    uint32
	RoundDone  bool
	// Match tally, carried from round to round.
	Number uint8
	Wins   [2]uint8
}

// NewRound places both characters symmetrically around the arena center,
// player 1 on the left.
func NewRound(gd *GameData) Round {
	return Round{
		Chars: [2]Char{
			newChar(gd, -gd.StartOffset, SideLeft),
			newChar(gd, gd.StartOffset, SideRight),
		},
		RoundTimer: NewFrameTimer(gd.RoundTime),
		ResetTimer: NewFrameTimer(gd.ResetTime),
		Number:     1,
	}
}

// Next starts the following round of the same match.
func (r *Round) Next(gd *GameData) Round {
	n := NewRound(gd)
	n.Number = r.Number + 1
	n.Wins = r.Wins
	return n
}

// Winner is the index of the character with strictly more health; ties go to
// player 2.
func (r *Round) Winner() int {
	if r.Chars[0].Health > r.Chars[1].Health {
		return 0
	}
	return 1
}

func (r *Round) Clone() Round {
	c := *r
	c.Projectiles = append([]Projectile(nil), r.Projectiles...)
	c.Effects = append([]Effect(nil), r.Effects...)
	return c
}

// Advance runs one frame. It does no I/O, reads no clock and uses no
// randomness, so the same inputs always produce the same Round.
func (r *Round) Advance(gd *GameData, inputs [2]InputBits) {
	r.Frame++
	if r.HitStun > 0 {
		r.HitStun--
		r.checkEnd()
		return
	}

	r.updateSides()

	for i := range r.Chars {
		if r.Chars[i].update(gd, inputs[i]) {
			r.Projectiles = append(r.Projectiles, newProjectile(gd, i, &r.Chars[i]))
		}
	}

	r.updateProjectiles(gd)
	r.updateEffects()

	if r.RoundDone {
		w := r.Winner()
		r.Chars[w].win(gd)
		r.Chars[1-w].lose(gd)
		r.ResetTimer.Tick()
		return
	}

	r.RoundTimer.Tick()

	for i := range r.Chars {
		r.move(gd, i)
	}

	if r.Chars[0].State.Damageable() && r.Chars[1].State.Damageable() {
		r.resolveStrikes(gd)
	}
	r.resolveProjectiles(gd)

	r.checkEnd()
}

// updateSides puts whoever is further right on SideRight. Exact ties keep the
// current sides.
func (r *Round) updateSides() {
	a, b := &r.Chars[0], &r.Chars[1]
	switch {
	case a.Pos.X > b.Pos.X:
		a.Side, b.Side = SideRight, SideLeft
	case a.Pos.X < b.Pos.X:
		a.Side, b.Side = SideLeft, SideRight
	}
}

func (r *Round) updateProjectiles(gd *GameData) {
	kept := r.Projectiles[:0]
	for _, p := range r.Projectiles {
		p.update()
		if !p.outside(gd) {
			kept = append(kept, p)
		}
	}
	r.Projectiles = kept
}

func (r *Round) updateEffects() {
	kept := r.Effects[:0]
	for _, e := range r.Effects {
		if e.update() {
			kept = append(kept, e)
		}
	}
	r.Effects = kept
}

// move applies velocity to character i. Walk boxes block each other on X
// only; a character jumping over the other is not stopped.
func (r *Round) move(gd *GameData, i int) {
	c, o := &r.Chars[i], &r.Chars[1-i]

	pos := c.Pos.Add(c.Vel)
	if pos.Y < 0 {
		pos.Y = 0
	}

	ob := o.walkBox(gd)
	if nb := gd.WalkBox.World(pos, c.Side); nb.Overlaps(ob) {
		// Push back out on our own side.
		if c.Side == SideLeft {
			pos.X -= nb.X1 - ob.X0
		} else {
			pos.X += ob.X1 - nb.X0
		}
	}

	pos.X = Clamp(pos.X, -gd.StageBound, gd.StageBound)
	if c.Side == SideLeft {
		pos.X = max(pos.X, o.Pos.X-gd.MaxSeparation)
	} else {
		pos.X = min(pos.X, o.Pos.X+gd.MaxSeparation)
	}
	c.Pos = pos
}

type strikeReport struct {
	attacker, target int
	contact          Vec2
}

// resolveStrikes handles character against character contact. The hit and
// parry boxes of one side are tested against the hurt boxes of the other;
// parry against hurt is a parry, hit against hurt is a strike. All parries
// are applied before any strike.
func (r *Round) resolveStrikes(gd *GameData) {
	var boxes [2][]worldBox
	for i := range r.Chars {
		boxes[i] = r.Chars[i].boxes(gd, nil)
	}

	// reports are collected attacker by attacker, player 1 first
	var parries, strikes []strikeReport
	for a := range r.Chars {
		b := 1 - a
		for _, ab := range boxes[a] {
			if ab.kind == KindHurt {
				continue
			}
			for _, bb := range boxes[b] {
				if bb.kind != KindHurt || !ab.rect.Overlaps(bb.rect) {
					continue
				}
				rep := strikeReport{a, b, bb.rect.ContactPoint(ab.rect)}
				if ab.kind == KindParry {
					parries = append(parries, rep)
				} else {
					strikes = append(strikes, rep)
				}
			}
		}
	}

	// struck marks a character hit earlier in this pass; it cannot answer
	// with its own parry or strike, so a trade goes to player 1.
	var struck, hitThisFrame [2]bool
	for _, p := range parries {
		atk, tgt := &r.Chars[p.attacker], &r.Chars[p.target]
		if atk.Connected || struck[p.attacker] || hitThisFrame[p.target] {
			continue
		}
		atk.Connected = true
		hitThisFrame[p.target] = true
		struck[p.target] = true
		tgt.takeDamage(gd, gd.ParryDamage, true)
		r.HitStun += gd.ParryHitStun
		r.Effects = append(r.Effects, newEffect(gd, p.contact, atk.Side))
	}

	hitThisFrame = [2]bool{}
	for _, s := range strikes {
		atk, tgt := &r.Chars[s.attacker], &r.Chars[s.target]
		if atk.Connected || struck[s.attacker] || hitThisFrame[s.target] {
			continue
		}
		strength := atk.State.Strength()
		atk.Connected = true
		hitThisFrame[s.target] = true
		struck[s.target] = true
		tgt.takeDamage(gd, atk.State.CurrentDamage(), false)
		r.HitStun += gd.StrikeHitStun[strength]
		r.Effects = append(r.Effects, newEffect(gd, s.contact, atk.Side))
	}
}

// resolveProjectiles lets each projectile hit the character that did not
// throw it. Any hit clears every projectile in flight.
func (r *Round) resolveProjectiles(gd *GameData) {
	hit := false
	var boxes []worldBox
	for _, p := range r.Projectiles {
		tgt := &r.Chars[1-int(p.Owner)]
		if !tgt.State.Damageable() {
			continue
		}
		pb := p.hurtbox(gd)
		boxes = tgt.boxes(gd, boxes[:0])
		for _, tb := range boxes {
			if tb.kind != KindHurt || !pb.Overlaps(tb.rect) {
				continue
			}
			tgt.takeDamage(gd, gd.Projectile.Damage, false)
			r.HitStun += gd.Projectile.HitStun
			r.Effects = append(r.Effects, newEffect(gd, pb.ContactPoint(tb.rect), p.Side))
			hit = true
			break
		}
	}
	if hit {
		r.Projectiles = r.Projectiles[:0]
	}
}

// checkEnd ends the round when someone is out of health or time runs out,
// and credits the winner.
func (r *Round) checkEnd() {
	if r.RoundDone {
		return
	}
	if r.Chars[0].Health == 0 || r.Chars[1].Health == 0 || r.RoundTimer.Finished() {
		r.RoundDone = true
		r.Wins[r.Winner()]++
	}
}

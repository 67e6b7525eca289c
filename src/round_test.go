package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// closeRound puts both characters within light punch range.
func closeRound(gd *GameData) Round {
	r := NewRound(gd)
	r.Chars[0].Pos.X = FromInt(-17)
	r.Chars[1].Pos.X = FromInt(17)
	return r
}

// lightPunch advances until player 1's light punch connects.
func lightPunch(t *testing.T, r *Round, gd *GameData) {
	t.Helper()
	health := r.Chars[1].Health
	r.Advance(gd, [2]InputBits{IB_LP, 0})
	require.Equal(t, CS_LightAttack, r.Chars[0].State)
	advanceN(r, gd, 7, [2]InputBits{})
	require.Equal(t, health, r.Chars[1].Health, "hit frame not reached yet")
	r.Advance(gd, [2]InputBits{})
}

func TestBasicStrike(t *testing.T) {
	gd := testGD
	r := closeRound(gd)
	lightPunch(t, &r, gd)

	b := &r.Chars[1]
	assert.Equal(t, gd.StartHealth-10, b.Health)
	assert.Equal(t, CS_LightHitRecovery, b.State)
	assert.Equal(t, uint32(3), r.HitStun)
	assert.True(t, r.Chars[0].Connected)
	assert.Len(t, r.Effects, 1, "hit spark")
}

func TestStrikeLandsOnce(t *testing.T) {
	gd := testGD
	r := closeRound(gd)
	lightPunch(t, &r, gd)
	// keep going through the rest of the active frame
	advanceN(&r, gd, 8, [2]InputBits{})
	assert.Equal(t, gd.StartHealth-10, r.Chars[1].Health)
}

func TestHitStunFreeze(t *testing.T) {
	gd := testGD
	r := closeRound(gd)
	lightPunch(t, &r, gd)
	require.Equal(t, uint32(3), r.HitStun)

	frozen := r.Clone()
	for i := 0; i < 3; i++ {
		r.Advance(gd, [2]InputBits{IB_R, IB_HP})
		assert.Equal(t, frozen.Chars, r.Chars, "characters move during hit-stun")
		assert.Equal(t, frozen.Frame+int64(i+1), r.Frame)
	}
	assert.Equal(t, uint32(0), r.HitStun)

	r.Advance(gd, [2]InputBits{})
	assert.NotEqual(t, frozen.Chars[1].Progress, r.Chars[1].Progress, "simulation resumes")
}

func TestParryBeatsStrike(t *testing.T) {
	gd := testGD
	r := closeRound(gd)
	r.Chars[0].setState(gd, CS_Parry)
	r.Chars[1].setState(gd, CS_LightAttack)
	// the punch becomes active on the same frame as the parry box
	for i := 0; i < 4; i++ {
		r.Chars[1].Progress.Tick()
	}
	advanceN(&r, gd, 3, [2]InputBits{})
	require.Equal(t, gd.StartHealth, r.Chars[1].Health, "nothing active yet")

	r.Advance(gd, [2]InputBits{})
	assert.Equal(t, CS_Parried, r.Chars[1].State)
	assert.Equal(t, gd.StartHealth-gd.ParryDamage, r.Chars[1].Health)
	assert.Equal(t, gd.ParryHitStun, r.HitStun)
	assert.Equal(t, CS_Parry, r.Chars[0].State)
	assert.Equal(t, gd.StartHealth, r.Chars[0].Health, "parried strike must not land")
}

func TestStrikeTradeGoesToPlayer1(t *testing.T) {
	gd := testGD
	r := closeRound(gd)
	r.Chars[0].setState(gd, CS_LightAttack)
	r.Chars[1].setState(gd, CS_LightAttack)
	advanceN(&r, gd, 8, [2]InputBits{})

	assert.Equal(t, gd.StartHealth, r.Chars[0].Health)
	assert.Equal(t, gd.StartHealth-10, r.Chars[1].Health)
	assert.Equal(t, CS_LightHitRecovery, r.Chars[1].State)
	assert.Equal(t, gd.StrikeHitStun[1], r.HitStun)
}

// hittingSpecial returns a copy of testGD whose Special1 has a hit box on
// every frame.
func hittingSpecial() *GameData {
	gd := *testGD
	frames := make([][]Hitbox, len(gd.Collisions[AnimSpecial1]))
	for i := range frames {
		frames[i] = []Hitbox{
			{KindHurt, RectXYWH(FromInt(-20), 0, FromInt(40), FromInt(100))},
			{KindHit, RectXYWH(0, FromInt(40), FromInt(60), FromInt(20))},
		}
	}
	gd.Collisions[AnimSpecial1] = frames
	return &gd
}

func TestZeroStrengthStrike(t *testing.T) {
	gd := hittingSpecial()
	r := closeRound(gd)
	r.Chars[0].setState(gd, CS_Special1)
	r.Advance(gd, [2]InputBits{})

	b := &r.Chars[1]
	assert.Equal(t, CS_LightHitRecovery, b.State, "contact still staggers")
	assert.Equal(t, gd.StartHealth, b.Health)
	assert.Equal(t, gd.StrikeHitStun[0], r.HitStun)
	assert.True(t, r.Chars[0].Connected)

	// through the freeze and one more frame of contact
	advanceN(&r, gd, 4, [2]InputBits{})
	assert.Zero(t, r.HitStun, "lands once")
	assert.Equal(t, gd.StartHealth, b.Health)
}

func TestTimeoutEndsRound(t *testing.T) {
	gd := shortMatch(10, 5)
	r := NewRound(gd)
	advanceN(&r, gd, 9, [2]InputBits{})
	assert.False(t, r.RoundDone)

	r.Advance(gd, [2]InputBits{})
	assert.True(t, r.RoundDone)
	assert.Equal(t, [2]uint8{0, 1}, r.Wins, "equal health goes to player 2")

	r.Advance(gd, [2]InputBits{})
	assert.Equal(t, CS_Lost, r.Chars[0].State)
	assert.Equal(t, CS_Won, r.Chars[1].State)
	assert.Equal(t, [2]uint8{0, 1}, r.Wins, "credited once")
}

func TestKOEndsRound(t *testing.T) {
	gd := testGD
	r := closeRound(gd)
	r.Chars[1].Health = 5
	lightPunch(t, &r, gd)
	assert.Equal(t, uint32(0), r.Chars[1].Health)
	assert.True(t, r.RoundDone)
	assert.Equal(t, 0, r.Winner())
	assert.Equal(t, [2]uint8{1, 0}, r.Wins)
}

func TestProjectileClearsOnHit(t *testing.T) {
	gd := testGD
	r := NewRound(gd)
	r.Projectiles = append(r.Projectiles, newProjectile(gd, 0, &r.Chars[0]))
	far := newProjectile(gd, 0, &r.Chars[0])
	far.Pos.X = FromInt(-300)
	r.Projectiles = append(r.Projectiles, far)
	assert.Equal(t, gd.Projectile.Speed, r.Projectiles[0].Vel.X)

	for i := 0; i < 20 && r.Chars[1].Health == gd.StartHealth; i++ {
		r.Advance(gd, [2]InputBits{})
	}
	assert.Equal(t, gd.StartHealth-gd.Projectile.Damage, r.Chars[1].Health)
	assert.Empty(t, r.Projectiles)
	assert.Equal(t, gd.Projectile.HitStun, r.HitStun)
}

func TestProjectileLeavesArena(t *testing.T) {
	gd := testGD
	r := NewRound(gd)
	p := newProjectile(gd, 1, &r.Chars[1])
	p.Pos.X = -gd.ArenaBound + FixedOne
	r.Projectiles = append(r.Projectiles, p)
	r.Advance(gd, [2]InputBits{})
	assert.Empty(t, r.Projectiles)
}

func TestSpecialSpawnsProjectile(t *testing.T) {
	gd := testGD
	r := NewRound(gd)
	seq := []InputBits{0, IB_D, 0, 0, IB_R, 0, 0, IB_LP}
	for _, in := range seq {
		r.Advance(gd, [2]InputBits{in, 0})
	}
	require.Equal(t, CS_Special1, r.Chars[0].State)
	assert.Zero(t, r.Chars[0].HistLen, "history cleared on completion")

	// frame 6 of four ticks each starts 24 frames after entering
	advanceN(&r, gd, 23, [2]InputBits{})
	assert.Empty(t, r.Projectiles)
	r.Advance(gd, [2]InputBits{})
	require.Len(t, r.Projectiles, 1)
	assert.Equal(t, uint8(0), r.Projectiles[0].Owner)
	assert.True(t, r.Projectiles[0].Vel.X > 0)

	r.Advance(gd, [2]InputBits{})
	assert.Len(t, r.Projectiles, 1, "spawns once")
}

func TestDashForward(t *testing.T) {
	gd := testGD
	r := NewRound(gd)
	for _, in := range []InputBits{0, IB_R, 0, 0, IB_R} {
		r.Advance(gd, [2]InputBits{in, 0})
	}
	assert.Equal(t, CS_ForwardDash, r.Chars[0].State)
	assert.Equal(t, gd.DashSpeed, r.Chars[0].Vel.X)
	assert.Zero(t, r.Chars[0].HistLen, "history cleared on completion")
}

func TestStageBounds(t *testing.T) {
	gd := testGD
	r := NewRound(gd)
	advanceN(&r, gd, 400, [2]InputBits{IB_L, IB_R})
	for i := range r.Chars {
		x := r.Chars[i].Pos.X
		assert.True(t, x >= -gd.StageBound && x <= gd.StageBound, "char %d at %v", i, x)
	}
	assert.True(t, r.Chars[1].Pos.X-r.Chars[0].Pos.X <= gd.MaxSeparation)
}

func TestWalkBoxesBlock(t *testing.T) {
	gd := testGD
	r := NewRound(gd)
	advanceN(&r, gd, 200, [2]InputBits{IB_R, IB_L})
	a, b := r.Chars[0].walkBox(gd), r.Chars[1].walkBox(gd)
	assert.False(t, a.Overlaps(b))
	assert.Equal(t, SideLeft, r.Chars[0].Side)
}

func randomInputs(t *rapid.T, label string) [][2]InputBits {
	raw := rapid.SliceOfN(rapid.Uint32(), 1, 300).Draw(t, label)
	out := make([][2]InputBits, len(raw))
	for i, v := range raw {
		out[i] = [2]InputBits{InputBits(v) & IB_mask, InputBits(v>>16) & IB_mask}
	}
	return out
}

func TestDeterminism(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		inputs := randomInputs(t, "inputs")
		a, b := NewRound(testGD), NewRound(testGD)
		for _, in := range inputs {
			a.Advance(testGD, in)
			b.Advance(testGD, in)
		}
		if !bytes.Equal(SaveRound(&a), SaveRound(&b)) {
			t.Fatalf("runs diverged after %d frames", len(inputs))
		}
	})
}

func TestSaveLoadResume(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		inputs := randomInputs(t, "inputs")
		at := rapid.IntRange(0, len(inputs)).Draw(t, "save at")

		straight := NewRound(testGD)
		resumed := NewRound(testGD)
		for i, in := range inputs {
			if i == at {
				r, err := LoadRound(SaveRound(&resumed))
				if err != nil {
					t.Fatalf("load: %v", err)
				}
				resumed = r
			}
			straight.Advance(testGD, in)
			resumed.Advance(testGD, in)
		}
		if !bytes.Equal(SaveRound(&straight), SaveRound(&resumed)) {
			t.Fatalf("resuming from frame %d diverged", at)
		}
	})
}

func TestMirrorSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		inputs := randomInputs(t, "inputs")
		a := NewRound(testGD)
		m := NewRound(testGD)
		for i := range m.Chars {
			m.Chars[i].Pos.X = -m.Chars[i].Pos.X
			m.Chars[i].Side = m.Chars[i].Side.Opposite()
		}
		for f, in := range inputs {
			a.Advance(testGD, in)
			m.Advance(testGD, [2]InputBits{in[0].Mirror(), in[1].Mirror()})
			for i := range a.Chars {
				ca, cm := &a.Chars[i], &m.Chars[i]
				if ca.Pos.X != -cm.Pos.X || ca.Pos.Y != cm.Pos.Y ||
					ca.Health != cm.Health || ca.State != cm.State || ca.Side != cm.Side.Opposite() {
					t.Fatalf("frame %d char %d: %v %v %d %v vs %v %v %d %v", f, i,
						ca.Pos, ca.Side, ca.Health, ca.State, cm.Pos, cm.Side, cm.Health, cm.State)
				}
			}
			if len(a.Projectiles) != len(m.Projectiles) {
				t.Fatalf("frame %d: %d projectiles vs %d", f, len(a.Projectiles), len(m.Projectiles))
			}
			for i := range a.Projectiles {
				if a.Projectiles[i].Pos != m.Projectiles[i].Pos.MirrorX() {
					t.Fatalf("frame %d: projectile %d at %v vs %v", f, i, a.Projectiles[i].Pos, m.Projectiles[i].Pos)
				}
			}
		}
	})
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTransitionTableTotal(t *testing.T) {
	for c := 0; c < 2; c++ {
		for s := CharacterState(0); s < stateCount; s++ {
			for a := CharacterAction(0); a < actionCount; a++ {
				tr := transitions[c][s][a]
				if !tr.enter {
					continue
				}
				assert.True(t, tr.next < stateCount, "%v + %v", s, a)
				assert.False(t, s.Terminal(), "%v must not leave on %v", s, a)
			}
		}
	}
}

func TestStateAnimationsComplete(t *testing.T) {
	for s := CharacterState(0); s < stateCount; s++ {
		for _, crouched := range []bool{false, true} {
			id := s.Animation(crouched)
			require.True(t, id.Valid(), "%v crouched=%v", s, crouched)
			assert.NotNil(t, testGD.Animations.Get(id), "%v", id)
		}
	}
}

func TestCharTransitions(t *testing.T) {
	gd := testGD
	tests := []struct {
		name     string
		from     CharacterState
		crouched bool
		action   CharacterAction
		want     CharacterState
		wantAnim AnimationId
	}{
		{"attack from idle", CS_Idle, false, CA_LightAttack, CS_LightAttack, AnimLightAttack},
		{"attack from crouch", CS_Idle, true, CA_LightAttack, CS_LightAttack, AnimLightCrouchAttack},
		{"heavy from crouch", CS_Crouching, true, CA_HeavyAttack, CS_HeavyAttack, AnimHeavyCrouchingAttack},
		{"no attack in the air", CS_Jump, false, CA_HeavyKick, CS_Jump, AnimJump},
		{"attack out of a dash", CS_ForwardDash, false, CA_MediumKick, CS_MediumKick, AnimMediumKick},
		{"no dash out of a dash", CS_ForwardDash, false, CA_DashBackward, CS_ForwardDash, AnimForwardDash},
		{"walk", CS_Idle, false, CA_MoveForward, CS_ForwardRun, AnimForwardRun},
		{"stop walking", CS_BackwardRun, false, CA_None, CS_Idle, AnimIdle},
		{"crouch", CS_Idle, false, CA_Crouch, CS_Crouching, AnimCrouching},
		{"stand up", CS_Idle, true, CA_None, CS_Idle, AnimIdle},
		{"won stays", CS_Won, false, CA_Special1, CS_Won, AnimWon},
		{"recovery ignores input", CS_LightHitRecovery, false, CA_Jump, CS_LightHitRecovery, AnimLightHitRecovery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChar(gd, 0, SideLeft)
			c.Crouched = tt.crouched
			c.setState(gd, tt.from)
			c.Act(gd, tt.action)
			assert.Equal(t, tt.want, c.State)
			assert.Equal(t, tt.wantAnim, c.Anim)
		})
	}
}

func TestCrouchAttackKeepsCrouch(t *testing.T) {
	c := newChar(testGD, 0, SideLeft)
	c.Act(testGD, CA_Crouch)
	require.True(t, c.Crouched)
	c.Act(testGD, CA_LightAttack)
	assert.True(t, c.Crouched)

	c.setState(testGD, CS_Idle)
	c.Act(testGD, CA_Jump)
	assert.False(t, c.Crouched, "jumping stands up")
}

func TestHealthFloor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := newChar(testGD, 0, SideLeft)
		c.Health = rapid.Uint32Range(0, 500).Draw(t, "health")
		hits := rapid.SliceOf(rapid.Uint32()).Draw(t, "hits")
		for _, h := range hits {
			before := c.Health
			dealt := c.takeDamage(testGD, h, rapid.Bool().Draw(t, "parry"))
			if dealt > before || c.Health != before-dealt {
				t.Fatalf("health %d - hit %d dealt %d left %d", before, h, dealt, c.Health)
			}
		}
	})
}

func TestBlocking(t *testing.T) {
	c := newChar(testGD, 0, SideLeft)
	c.Input = IB_L.Relative(SideLeft)
	dealt := c.takeDamage(testGD, 30, false)
	assert.Equal(t, uint32(3), dealt)
	assert.Equal(t, CS_Blocking, c.State)

	// still blocking on the next hit even without holding back
	c.Input = 0
	assert.Equal(t, uint32(2), c.takeDamage(testGD, 20, false))

	c.setState(testGD, CS_LightAttack)
	c.Input = IB_L.Relative(SideLeft)
	assert.Equal(t, uint32(10), c.takeDamage(testGD, 10, false), "attacking characters cannot block")
	assert.Equal(t, CS_LightHitRecovery, c.State)
}

func TestParriedState(t *testing.T) {
	c := newChar(testGD, 0, SideRight)
	c.takeDamage(testGD, testGD.ParryDamage, true)
	assert.Equal(t, CS_Parried, c.State)
	assert.False(t, c.State.Damageable())
	assert.Equal(t, testGD.StartHealth-testGD.ParryDamage, c.Health)
	assert.Equal(t, testGD.MoveSpeed.Halve(), c.velocity(testGD).X, "pushed back toward its own side")
}

func TestCurrentDamage(t *testing.T) {
	assert.Equal(t, uint32(10), CS_LightKick.CurrentDamage())
	assert.Equal(t, uint32(20), CS_MediumAttack.CurrentDamage())
	assert.Equal(t, uint32(30), CS_HeavyKick.CurrentDamage())
	assert.Equal(t, uint32(0), CS_Special1.CurrentDamage())
}

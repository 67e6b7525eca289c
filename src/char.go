package main

type CharacterState uint8

const (
	CS_Idle CharacterState = iota
	CS_ForwardRun
	CS_BackwardRun
	CS_Crouching
	CS_LightAttack
	CS_MediumAttack
	CS_HeavyAttack
	CS_LightKick
	CS_MediumKick
	CS_HeavyKick
	CS_LightHitRecovery
	CS_Blocking
	CS_ForwardDash
	CS_BackwardDash
	CS_Special1
	CS_Jump
	CS_Parry
	CS_Parried
	CS_Won
	CS_Lost
	stateCount
)

var stateNames = [stateCount]string{
	"Idle", "ForwardRun", "BackwardRun", "Crouching",
	"LightAttack", "MediumAttack", "HeavyAttack",
	"LightKick", "MediumKick", "HeavyKick",
	"LightHitRecovery", "Blocking", "ForwardDash", "BackwardDash",
	"Special1", "Jump", "Parry", "Parried", "Won", "Lost",
}

func (s CharacterState) String() string {
	if s < stateCount {
		return stateNames[s]
	}
	return "?"
}

// Neutral states accept movement as well as attacks.
func (s CharacterState) Neutral() bool {
	switch s {
	case CS_Idle, CS_ForwardRun, CS_BackwardRun, CS_Crouching:
		return true
	}
	return false
}

func (s CharacterState) CanAttack() bool {
	return s.Neutral() || s == CS_ForwardDash
}

// Damageable is false while recovering from a hit and once the round is decided.
func (s CharacterState) Damageable() bool {
	switch s {
	case CS_LightHitRecovery, CS_Parried, CS_Won, CS_Lost:
		return false
	}
	return true
}

func (s CharacterState) Terminal() bool {
	return s == CS_Won || s == CS_Lost
}

// keepsCrouch is true for states that may be played from a crouch.
func (s CharacterState) keepsCrouch() bool {
	switch s {
	case CS_Idle, CS_Crouching, CS_LightAttack, CS_MediumAttack, CS_HeavyAttack,
		CS_LightKick, CS_MediumKick, CS_HeavyKick,
		CS_LightHitRecovery, CS_Blocking, CS_Parried:
		return true
	}
	return false
}

// Strength is 1, 2 or 3 for light, medium and heavy strikes, 0 otherwise.
func (s CharacterState) Strength() int {
	switch s {
	case CS_LightAttack, CS_LightKick:
		return 1
	case CS_MediumAttack, CS_MediumKick:
		return 2
	case CS_HeavyAttack, CS_HeavyKick:
		return 3
	}
	return 0
}

// CurrentDamage is what a strike from this state deals.
func (s CharacterState) CurrentDamage() uint32 {
	return uint32(s.Strength()) * 10
}

type CharacterAction uint8

const (
	CA_None CharacterAction = iota
	CA_MoveForward
	CA_MoveBackward
	CA_DashForward
	CA_DashBackward
	CA_LightAttack
	CA_MediumAttack
	CA_HeavyAttack
	CA_LightKick
	CA_MediumKick
	CA_HeavyKick
	CA_Crouch
	CA_Jump
	CA_Special1
	CA_Parry
	actionCount
)

var actionNames = [actionCount]string{
	"None", "MoveForward", "MoveBackward", "DashForward", "DashBackward",
	"LightAttack", "MediumAttack", "HeavyAttack",
	"LightKick", "MediumKick", "HeavyKick",
	"Crouch", "Jump", "Special1", "Parry",
}

func (a CharacterAction) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "?"
}

// Input is true for actions that correspond to a single held button.
func (a CharacterAction) Input() bool {
	switch a {
	case CA_None, CA_DashForward, CA_DashBackward, CA_Special1, CA_Parry:
		return false
	}
	return a < actionCount
}

// attackStates maps each attacking action to the state it starts.
var attackStates = [actionCount]CharacterState{
	CA_LightAttack:  CS_LightAttack,
	CA_MediumAttack: CS_MediumAttack,
	CA_HeavyAttack:  CS_HeavyAttack,
	CA_LightKick:    CS_LightKick,
	CA_MediumKick:   CS_MediumKick,
	CA_HeavyKick:    CS_HeavyKick,
	CA_Special1:     CS_Special1,
	CA_Parry:        CS_Parry,
}

func (a CharacterAction) attack() (CharacterState, bool) {
	s := attackStates[a]
	return s, s != CS_Idle
}

type stateAnimation struct {
	Crouched, Standing AnimationId
}

func same(id AnimationId) stateAnimation { return stateAnimation{id, id} }

// stateAnimations selects the animation a state plays.
var stateAnimations = [stateCount]stateAnimation{
	CS_Idle:             {AnimCrouched, AnimIdle},
	CS_ForwardRun:       same(AnimForwardRun),
	CS_BackwardRun:      same(AnimBackwardRun),
	CS_Crouching:        same(AnimCrouching),
	CS_LightAttack:      {AnimLightCrouchAttack, AnimLightAttack},
	CS_MediumAttack:     {AnimLightCrouchAttack, AnimMediumAttack},
	CS_HeavyAttack:      {AnimHeavyCrouchingAttack, AnimHeavyAttack},
	CS_LightKick:        same(AnimLightKick),
	CS_MediumKick:       same(AnimMediumKick),
	CS_HeavyKick:        same(AnimHeavyKick),
	CS_LightHitRecovery: same(AnimLightHitRecovery),
	CS_Blocking:         same(AnimBlocking),
	CS_ForwardDash:      same(AnimForwardDash),
	CS_BackwardDash:     same(AnimBackwardDash),
	CS_Special1:         same(AnimSpecial1),
	CS_Jump:             same(AnimJump),
	CS_Parry:            same(AnimParry),
	CS_Parried:          same(AnimParried),
	CS_Won:              same(AnimWon),
	CS_Lost:             same(AnimLost),
}

func (s CharacterState) Animation(crouched bool) AnimationId {
	if crouched {
		return stateAnimations[s].Crouched
	}
	return stateAnimations[s].Standing
}

// finishStates is where a state goes when its animation completes.
var finishStates = [stateCount]CharacterState{
	CS_ForwardRun:  CS_ForwardRun,
	CS_BackwardRun: CS_BackwardRun,
	CS_Won:         CS_Won,
	CS_Lost:        CS_Lost,
	// everything else falls back to Idle
}

type crouchOp uint8

const (
	crouchKeep crouchOp = iota
	crouchSet
	crouchClear
)

// transition is one cell of the state machine. The zero value means stay in
// the current state without restarting its animation.
type transition struct {
	next   CharacterState
	enter  bool
	crouch crouchOp
}

func enterTo(s CharacterState) transition {
	t := transition{next: s, enter: true, crouch: crouchClear}
	if s.keepsCrouch() {
		t.crouch = crouchKeep
	}
	return t
}

// transitions is indexed by [crouched][state][action] and covers every pair.
var transitions = buildTransitions()

func buildTransitions() (t [2][stateCount][actionCount]transition) {
	for c := range t {
		for s := CharacterState(0); s < stateCount; s++ {
			for a := CharacterAction(0); a < actionCount; a++ {
				t[c][s][a] = nextTransition(s, a, c == 1)
			}
		}
	}
	return
}

func nextTransition(s CharacterState, a CharacterAction, crouched bool) transition {
	if s.Terminal() {
		return transition{}
	}
	if as, ok := a.attack(); ok {
		if s.CanAttack() {
			return enterTo(as)
		}
		return transition{}
	}
	if !s.Neutral() {
		return transition{}
	}
	switch a {
	case CA_DashForward:
		return enterTo(CS_ForwardDash)
	case CA_DashBackward:
		return enterTo(CS_BackwardDash)
	case CA_MoveForward:
		if s != CS_ForwardRun {
			return enterTo(CS_ForwardRun)
		}
	case CA_MoveBackward:
		if s != CS_BackwardRun {
			return enterTo(CS_BackwardRun)
		}
	case CA_Crouch:
		if !crouched {
			return transition{next: CS_Crouching, enter: true, crouch: crouchSet}
		}
	case CA_Jump:
		return enterTo(CS_Jump)
	case CA_None:
		switch {
		case s == CS_ForwardRun || s == CS_BackwardRun:
			return enterTo(CS_Idle)
		case s == CS_Idle && crouched:
			// stand up
			return transition{next: CS_Idle, enter: true, crouch: crouchClear}
		}
	}
	return transition{}
}

// Char is one fighter. It is a plain value owned by the Round; everything it
// references besides Progress.Durations is stored inline.
type Char struct {
	Pos       Vec2
	Vel       Vec2
	Health    uint32
	Side      Side
	State     CharacterState
	Anim      AnimationId
	Progress  AnimationProgress
	Crouched  bool
	Connected bool
	Input     ScreenRelativeInput
	History   [InputHistoryLength]ScreenRelativeInput
	HistLen   uint8
}

func newChar(gd *GameData, x Fixed, side Side) Char {
	c := Char{
		Pos:    Vec2{X: x},
		Health: gd.StartHealth,
		Side:   side,
	}
	c.setState(gd, CS_Idle)
	return c
}

// setState enters s, selecting its animation and restarting it.
func (c *Char) setState(gd *GameData, s CharacterState) {
	c.State = s
	c.Anim = s.Animation(c.Crouched)
	c.Progress = gd.Animations.Progress(c.Anim)
	c.Connected = false
}

func (c *Char) apply(gd *GameData, t transition) {
	if !t.enter {
		return
	}
	switch t.crouch {
	case crouchSet:
		c.Crouched = true
	case crouchClear:
		c.Crouched = false
	}
	c.setState(gd, t.next)
}

// Act feeds one resolved action through the state machine.
func (c *Char) Act(gd *GameData, a CharacterAction) {
	c.apply(gd, transitions[Btoi(c.Crouched)][c.State][a])
}

func (c *Char) history() []ScreenRelativeInput {
	return c.History[:c.HistLen]
}

func (c *Char) pushHistory(ri ScreenRelativeInput) {
	if int(c.HistLen) == len(c.History) {
		copy(c.History[:], c.History[1:])
		c.HistLen--
	}
	c.History[c.HistLen] = ri
	c.HistLen++
}

func (c *Char) clearHistory() {
	c.History = [InputHistoryLength]ScreenRelativeInput{}
	c.HistLen = 0
}

// resolveAction turns this frame's input into one intent. A completed command
// wins over raw buttons and clears the history.
func (c *Char) resolveAction(gd *GameData, ri ScreenRelativeInput) CharacterAction {
	c.Input = ri
	c.pushHistory(ri)
	if a, ok := gd.Commands.Match(c.history()); ok {
		c.clearHistory()
		return a
	}
	return rawAction(ri)
}

// update runs one character's share of a frame. It reports whether a
// projectile should be spawned.
func (c *Char) update(gd *GameData, in InputBits) bool {
	if c.Progress.Tick() {
		c.setState(gd, finishStates[c.State])
	}
	c.Act(gd, c.resolveAction(gd, in.Relative(c.Side)))
	c.Vel = c.velocity(gd)
	return c.State == CS_Special1 &&
		c.Progress.Frame == gd.Projectile.SpawnFrame && c.Progress.FrameStart()
}

func (c *Char) velocity(gd *GameData) Vec2 {
	switch c.State {
	case CS_ForwardRun:
		return Vec2{X: c.Side.Toward(gd.MoveSpeed)}
	case CS_BackwardRun, CS_LightHitRecovery:
		return Vec2{X: c.Side.Toward(-gd.MoveSpeed)}
	case CS_ForwardDash:
		return Vec2{X: c.Side.Toward(gd.DashSpeed)}
	case CS_BackwardDash:
		return Vec2{X: c.Side.Toward(-gd.DashSpeed)}
	case CS_Parried:
		return Vec2{X: c.Side.Toward(-gd.MoveSpeed.Halve())}
	case CS_Jump:
		d := gd.Animations.Get(c.Anim).Displacement(c.Progress.Index())
		return Vec2{X: c.Side.Toward(d.X), Y: d.Y}
	}
	return Vec2{}
}

// guarding is true when a hit landing now would be blocked.
func (c *Char) guarding() bool {
	return c.State == CS_Blocking || (c.State.Neutral() && c.Input.Has(RI_Backward))
}

// takeDamage applies a hit and returns the health actually removed.
func (c *Char) takeDamage(gd *GameData, amount uint32, parry bool) uint32 {
	switch {
	case c.guarding():
		amount /= 10
		c.setState(gd, CS_Blocking)
	case parry:
		c.setState(gd, CS_Parried)
	default:
		c.setState(gd, CS_LightHitRecovery)
	}
	if amount > c.Health {
		amount = c.Health
	}
	c.Health -= amount
	return amount
}

func (c *Char) walkBox(gd *GameData) Rect {
	return gd.WalkBox.World(c.Pos, c.Side)
}

func (c *Char) boxes(gd *GameData, dst []worldBox) []worldBox {
	return worldBoxes(dst, gd.Collisions.Boxes(c.Anim, c.Progress.Index()), c.Pos, c.Side)
}

func (c *Char) win(gd *GameData) {
	if c.State != CS_Won {
		c.Crouched = false
		c.setState(gd, CS_Won)
	}
}

func (c *Char) lose(gd *GameData) {
	if c.State != CS_Lost {
		c.Crouched = false
		c.setState(gd, CS_Lost)
	}
}

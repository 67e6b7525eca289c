package main

import "fmt"

// Number of past frames of input kept for combo recognition (half a second).
const InputHistoryLength = 30

// cmdElem watches a single step of a combo. It arms on the first frame the
// action is released, confirms on the next frame it is held, and is done once
// confirmed and released again. The last step of a combo is done as soon as
// it confirms.
type cmdElem struct {
	armed, confirmed bool
}

func (ce *cmdElem) step(held, final bool) bool {
	if !ce.armed && !held {
		ce.armed = true
		return false
	} else if ce.armed && held {
		ce.confirmed = true
		return final
	}
	return ce.armed && ce.confirmed && (final || !held)
}

type Command struct {
	Steps  []CharacterAction
	Result CharacterAction
}

func (c Command) String() string {
	return fmt.Sprintf("%v -> %v", c.Steps, c.Result)
}

type cmdProgress struct {
	step int
	elem cmdElem
}

func (cp *cmdProgress) feed(c *Command, ri ScreenRelativeInput) bool {
	final := cp.step == len(c.Steps)-1
	if !cp.elem.step(actionHeld(c.Steps[cp.step], ri), final) {
		return false
	}
	cp.step++
	cp.elem = cmdElem{}
	return cp.step == len(c.Steps)
}

// CommandList is the shared, read-only combo library. Order matters: when two
// commands complete on the same history entry the earlier one wins.
type CommandList struct {
	Commands []Command
}

func DefaultCommandList() CommandList {
	return CommandList{Commands: []Command{
		{Steps: []CharacterAction{CA_MoveForward, CA_MoveForward}, Result: CA_DashForward},
		{Steps: []CharacterAction{CA_MoveBackward, CA_MoveBackward}, Result: CA_DashBackward},
		{Steps: []CharacterAction{CA_Crouch, CA_MoveForward, CA_LightAttack}, Result: CA_Special1},
		{Steps: []CharacterAction{CA_MoveBackward, CA_MediumKick}, Result: CA_Parry},
	}}
}

// Match scans history from oldest to newest with fresh progress for every
// command. Progress is rebuilt on every call, so it only ever depends on the
// history it is given.
func (cl *CommandList) Match(history []ScreenRelativeInput) (CharacterAction, bool) {
	if len(cl.Commands) == 0 {
		return CA_None, false
	}
	progress := make([]cmdProgress, len(cl.Commands))
	for _, ri := range history {
		for i := range cl.Commands {
			if progress[i].feed(&cl.Commands[i], ri) {
				return cl.Commands[i].Result, true
			}
		}
	}
	return CA_None, false
}

func (cl *CommandList) validate() error {
	for i, c := range cl.Commands {
		if len(c.Steps) == 0 {
			return configErrorf(fmt.Sprintf("commands[%d]", i), "no steps")
		}
		for _, s := range c.Steps {
			if !s.Input() {
				return configErrorf(fmt.Sprintf("commands[%d]", i), "%v cannot be a step", s)
			}
		}
	}
	return nil
}

// actionHeld reports whether the button behind a raw action is down.
func actionHeld(a CharacterAction, ri ScreenRelativeInput) bool {
	switch a {
	case CA_MoveForward:
		return ri.Has(RI_Forward)
	case CA_MoveBackward:
		return ri.Has(RI_Backward)
	case CA_Crouch:
		return ri.Has(RI_Down)
	case CA_Jump:
		return ri.Has(RI_Jump)
	case CA_LightAttack:
		return ri.Has(RI_LP)
	case CA_MediumAttack:
		return ri.Has(RI_MP)
	case CA_HeavyAttack:
		return ri.Has(RI_HP)
	case CA_LightKick:
		return ri.Has(RI_LK)
	case CA_MediumKick:
		return ri.Has(RI_MK)
	case CA_HeavyKick:
		return ri.Has(RI_HK)
	}
	return false
}

// Highest priority first.
var rawActionPriority = [...]CharacterAction{
	CA_LightAttack, CA_MediumAttack, CA_HeavyAttack,
	CA_LightKick, CA_MediumKick, CA_HeavyKick,
	CA_Crouch, CA_Jump, CA_MoveForward, CA_MoveBackward,
}

func rawAction(ri ScreenRelativeInput) CharacterAction {
	for _, a := range rawActionPriority {
		if actionHeld(a, ri) {
			return a
		}
	}
	return CA_None
}

package main

import (
	"strings"
)

// InputBits is one player's buttons for one frame. The bit order is the wire
// protocol between peers and must never change:
//
//	bit 0 LightPunch   bit 5 HeavyPunch
//	bit 1 Left         bit 6 LightKick
//	bit 2 Right        bit 7 MediumKick
//	bit 3 Down         bit 8 Jump
//	bit 4 MediumPunch  bit 9 HeavyKick
//
// Bits 10-15 are reserved and dropped on decode.
type InputBits uint16

const (
	IB_LP InputBits = 1 << iota
	IB_L
	IB_R
	IB_D
	IB_MP
	IB_HP
	IB_LK
	IB_MK
	IB_J
	IB_HK
	IB_mask      = IB_LP | IB_L | IB_R | IB_D | IB_MP | IB_HP | IB_LK | IB_MK | IB_J | IB_HK
	IB_anybutton = IB_LP | IB_MP | IB_HP | IB_LK | IB_MK | IB_HK
)

// Size of one encoded InputBits on the wire.
const inputSize = 2

var inputBitNames = [...]struct {
	bit  InputBits
	name string
}{
	{IB_LP, "LP"}, {IB_L, "LEFT"}, {IB_R, "RIGHT"}, {IB_D, "DOWN"},
	{IB_MP, "MP"}, {IB_HP, "HP"}, {IB_LK, "LK"}, {IB_MK, "MK"},
	{IB_J, "JUMP"}, {IB_HK, "HK"},
}

// Save local inputs as input bits to send or record
func (ibit *InputBits) KeysToBits(lp, l, r, d, mp, hp, lk, mk, j, hk bool) {
	*ibit = InputBits(Btoi(lp) |
		Btoi(l)<<1 |
		Btoi(r)<<2 |
		Btoi(d)<<3 |
		Btoi(mp)<<4 |
		Btoi(hp)<<5 |
		Btoi(lk)<<6 |
		Btoi(mk)<<7 |
		Btoi(j)<<8 |
		Btoi(hk)<<9)
}

// Convert received input bits back into keys, in KeysToBits order.
func (ibit InputBits) BitsToKeys() [10]bool {
	var keys [10]bool
	for i := range keys {
		keys[i] = ibit&(1<<uint(i)) != 0
	}
	return keys
}

// Mirror swaps left and right.
func (ibit InputBits) Mirror() InputBits {
	out := ibit &^ (IB_L | IB_R)
	if ibit&IB_L != 0 {
		out |= IB_R
	}
	if ibit&IB_R != 0 {
		out |= IB_L
	}
	return out
}

func (ibit InputBits) String() string {
	var parts []string
	for _, b := range inputBitNames {
		if ibit&b.bit != 0 {
			parts = append(parts, b.name)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "+")
}

func writeU16(u16 uint16) []byte {
	return []byte{byte(u16), byte(u16 >> 8)}
}

func readU16(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func encodeInputs(inputs InputBits) []byte {
	return writeU16(uint16(inputs & IB_mask))
}

func decodeInputs(buffer [][]byte) []InputBits {
	var inputs = make([]InputBits, len(buffer))
	for i, b := range buffer {
		inputs[i] = InputBits(readU16(b)) & IB_mask
	}
	return inputs
}

type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Facing is +1 when the character looks toward positive X.
func (s Side) Facing() int32 {
	if s == SideRight {
		return -1
	}
	return 1
}

// Toward returns v pointing the way the side faces.
func (s Side) Toward(v Fixed) Fixed {
	if s == SideRight {
		return -v
	}
	return v
}

func (s Side) String() string {
	if s == SideRight {
		return "Right"
	}
	return "Left"
}

// ScreenRelativeInput replaces left/right with forward/backward so the rest of
// the simulation never needs to know which side a character stands on.
type ScreenRelativeInput uint16

const (
	RI_Forward ScreenRelativeInput = 1 << iota
	RI_Backward
	RI_Down
	RI_Jump
	RI_LP
	RI_MP
	RI_HP
	RI_LK
	RI_MK
	RI_HK
)

var relativeButtons = [...]struct {
	from InputBits
	to   ScreenRelativeInput
}{
	{IB_D, RI_Down}, {IB_J, RI_Jump},
	{IB_LP, RI_LP}, {IB_MP, RI_MP}, {IB_HP, RI_HP},
	{IB_LK, RI_LK}, {IB_MK, RI_MK}, {IB_HK, RI_HK},
}

// Relative maps absolute input to the view of a character standing on side.
// The character on the left faces right, so Right is forward for it.
func (ibit InputBits) Relative(side Side) ScreenRelativeInput {
	var ri ScreenRelativeInput
	fwd, back := IB_R, IB_L
	if side == SideRight {
		fwd, back = IB_L, IB_R
	}
	if ibit&fwd != 0 {
		ri |= RI_Forward
	}
	if ibit&back != 0 {
		ri |= RI_Backward
	}
	for _, b := range relativeButtons {
		if ibit&b.from != 0 {
			ri |= b.to
		}
	}
	return ri
}

func (ri ScreenRelativeInput) Has(flag ScreenRelativeInput) bool {
	return ri&flag != 0
}

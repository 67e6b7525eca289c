package main

import (
	_ "embed" // Support for go:embed resources
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

//go:embed resources/ai.lua
var defaultInputScript []byte

// Data handlers
func luaRegister(l *lua.LState, name string, f func(*lua.LState) int) {
	l.Register(name, f)
}
func strArg(l *lua.LState, argi int) string {
	if !lua.LVCanConvToString(l.Get(argi)) {
		l.RaiseError("\nArgument %v is not a string: %v\n", argi, l.Get(argi))
	}
	return l.ToString(argi)
}
func numArg(l *lua.LState, argi int) float64 {
	num, ok := l.Get(argi).(lua.LNumber)
	if !ok {
		l.RaiseError("\nArgument %v is not a number: %v\n", argi, l.Get(argi))
	}
	return float64(num)
}

var inputBitByName = map[string]InputBits{
	"LP": IB_LP, "LEFT": IB_L, "RIGHT": IB_R, "DOWN": IB_D, "MP": IB_MP,
	"HP": IB_HP, "LK": IB_LK, "MK": IB_MK, "JUMP": IB_J, "HK": IB_HK,
}

// Registers the input constants and helpers. Scripts run on Lua 5.1, which
// has no bitwise operators, so press and held do the bit work.
func inputScriptInit(l *lua.LState) {
	for name, b := range inputBitByName {
		l.SetGlobal(name, lua.LNumber(b))
	}
	// press("RIGHT", "LP") or press(RIGHT, LP)
	luaRegister(l, "press", func(l *lua.LState) int {
		var bits InputBits
		for i := 1; i <= l.GetTop(); i++ {
			if s, ok := l.Get(i).(lua.LString); ok {
				b, found := inputBitByName[strings.ToUpper(string(s))]
				if !found {
					l.RaiseError("\nUnknown input %q\n", string(s))
				}
				bits |= b
			} else {
				bits |= InputBits(uint16(numArg(l, i)))
			}
		}
		l.Push(lua.LNumber(bits & IB_mask))
		return 1
	})
	// held(bits, RIGHT)
	luaRegister(l, "held", func(l *lua.LState) int {
		bits := InputBits(uint16(numArg(l, 1)))
		flag := InputBits(uint16(numArg(l, 2)))
		l.Push(lua.LBool(bits&flag != 0))
		return 1
	})
	luaRegister(l, "mirror", func(l *lua.LState) int {
		l.Push(lua.LNumber(InputBits(uint16(numArg(l, 1))).Mirror()))
		return 1
	})
	luaRegister(l, "inputname", func(l *lua.LState) int {
		l.Push(lua.LString(InputBits(uint16(numArg(l, 1))).String()))
		return 1
	})
}

// LuaInputSource asks a script's global input(player, frame) for each input.
// Scripts must be deterministic for a frame so that sync tests and replays
// see the same inputs.
type LuaInputSource struct {
	l  *lua.LState
	fn *lua.LFunction
}

// NewLuaInputSource loads the script at path, or the built-in one when path
// is empty.
func NewLuaInputSource(path string) (*LuaInputSource, error) {
	l := lua.NewState(lua.Options{SkipOpenLibs: false})
	inputScriptInit(l)
	var err error
	if path == "" {
		err = l.DoString(string(defaultInputScript))
	} else {
		err = l.DoFile(path)
	}
	if err != nil {
		l.Close()
		return nil, fmt.Errorf("input script: %w", err)
	}
	fn, ok := l.GetGlobal("input").(*lua.LFunction)
	if !ok {
		l.Close()
		return nil, Error("input script: no global function input(player, frame)")
	}
	return &LuaInputSource{l: l, fn: fn}, nil
}

func (s *LuaInputSource) Input(player int, frame int64) (InputBits, error) {
	if err := s.l.CallByParam(lua.P{Fn: s.fn, NRet: 1, Protect: true},
		lua.LNumber(player), lua.LNumber(frame)); err != nil {
		return 0, err
	}
	ret := s.l.Get(-1)
	s.l.Pop(1)
	switch v := ret.(type) {
	case lua.LNumber:
		return InputBits(uint16(v)) & IB_mask, nil
	case *lua.LNilType:
		return 0, nil
	}
	return 0, fmt.Errorf("input script: input returned %s", ret.Type())
}

func (s *LuaInputSource) Close() {
	s.l.Close()
}

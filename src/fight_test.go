package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFightNextRound(t *testing.T) {
	gd := shortMatch(10, 5)
	f := NewFight(gd)

	for i := 0; i < 10; i++ {
		f.Advance([2]InputBits{})
	}
	require.True(t, f.Round.RoundDone)
	assert.Equal(t, uint8(1), f.Round.Number)

	for i := 0; i < 4; i++ {
		f.Advance([2]InputBits{})
	}
	assert.True(t, f.Round.RoundDone, "reset delay still running")

	f.Advance([2]InputBits{})
	assert.False(t, f.Round.RoundDone)
	assert.Equal(t, uint8(2), f.Round.Number)
	assert.Equal(t, [2]uint8{0, 1}, f.Round.Wins, "tally carried over")
	assert.Equal(t, int64(0), f.Round.Frame)
	assert.Equal(t, gd.StartHealth, f.Round.Chars[0].Health)
	assert.False(t, f.Over())
}

func TestFightOver(t *testing.T) {
	gd := shortMatch(10, 5)
	f := NewFight(gd)
	for i := 0; i < 25; i++ {
		f.Advance([2]InputBits{})
	}
	require.True(t, f.Over())
	assert.Equal(t, [2]uint8{0, 2}, f.Round.Wins)
	assert.False(t, matchFinished(f))

	for i := 0; i < 5; i++ {
		f.Advance([2]InputBits{})
	}
	assert.True(t, matchFinished(f))
	assert.Equal(t, uint8(2), f.Round.Number, "no round after the match is decided")
}

func TestFightSaveLoad(t *testing.T) {
	f := NewFight(testGD)
	for i := 0; i < 30; i++ {
		f.Advance([2]InputBits{IB_R, IB_LP})
	}
	gs := f.Save()
	assert.Equal(t, int64(30), gs.Frame)
	assert.Equal(t, Checksum(gs.Blob), gs.Checksum)
	assert.Equal(t, gs.Checksum, f.LiveChecksum())

	for i := 0; i < 10; i++ {
		f.Advance([2]InputBits{IB_J, 0})
	}
	assert.NotEqual(t, gs.Blob, SaveRound(&f.Round))

	require.NoError(t, f.Load(gs.Blob))
	assert.Equal(t, gs.Blob, SaveRound(&f.Round))
	assert.Error(t, f.Load(gs.Blob[:3]))
}

func TestRunOffline(t *testing.T) {
	gd := shortMatch(10, 5)
	log, err := runOffline(NewFight(gd), constantInput{IB_R, IB_L}, 0)
	require.NoError(t, err)
	assert.Len(t, log, 30)
	assert.Equal(t, [2]InputBits{IB_R, IB_L}, log[0])

	log, err = runOffline(NewFight(gd), constantInput{}, 7)
	require.NoError(t, err)
	assert.Len(t, log, 7)
}

func TestSoloInput(t *testing.T) {
	s := soloInput{constantInput{IB_LP, IB_HP}}
	in, err := s.Input(0, 3)
	require.NoError(t, err)
	assert.Equal(t, IB_LP, in)
	in, err = s.Input(1, 3)
	require.NoError(t, err)
	assert.Equal(t, InputBits(0), in)
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.rfr")
	frames := [][2]InputBits{{IB_R, IB_L}, {IB_LP | IB_HK, 0}, {0, IB_J | IB_D}}
	require.NoError(t, writeReplay(path, frames))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("RFRP\x01\x04\x00\x02\x00"), data[:9])
	assert.Len(t, data, 5+len(frames)*2*inputSize)

	rp, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, frames, rp.Frames)

	in, err := rp.Input(1, 2)
	require.NoError(t, err)
	assert.Equal(t, IB_J|IB_D, in)
	in, err = rp.Input(0, 3)
	require.NoError(t, err)
	assert.Equal(t, InputBits(0), in, "past the end")
}

func TestReplayErrors(t *testing.T) {
	_, err := ReadReplay(bytes.NewReader([]byte("RFR")))
	assert.EqualError(t, err, "replay: bad header")
	_, err = ReadReplay(bytes.NewReader([]byte("XXXX\x01")))
	assert.EqualError(t, err, "replay: bad header")
	_, err = ReadReplay(bytes.NewReader([]byte("RFRP\x02")))
	assert.EqualError(t, err, "replay: unsupported version 2")
	_, err = ReadReplay(bytes.NewReader([]byte("RFRP\x01\x01\x00\x02")))
	assert.EqualError(t, err, "replay: truncated frame")

	rp, err := ReadReplay(bytes.NewReader([]byte("RFRP\x01")))
	require.NoError(t, err)
	assert.Empty(t, rp.Frames)

	_, err = LoadReplay(filepath.Join(t.TempDir(), "missing.rfr"))
	assert.Error(t, err)
}

// A recorded match replays to the same final state.
func TestReplayReproducesMatch(t *testing.T) {
	src, err := NewLuaInputSource("")
	require.NoError(t, err)
	defer src.Close()
	frames, err := runOffline(NewFight(testGD), src, 900)
	require.NoError(t, err)
	want := playInputs(testGD, frames, nil).LiveChecksum()

	path := filepath.Join(t.TempDir(), "match.rfr")
	require.NoError(t, writeReplay(path, frames))
	rp, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, want, playInputs(testGD, rp.Frames, nil).LiveChecksum())
}

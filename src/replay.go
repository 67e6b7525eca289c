package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Replay files start with replayMagic and a version byte, followed by one
// record per frame: player 1 then player 2 input, each encoded as on the wire.
const (
	replayMagic   = "RFRP"
	replayVersion = 1
)

// InputSource produces the input of a player for a frame.
type InputSource interface {
	Input(player int, frame int64) (InputBits, error)
}

type ReplayWriter struct {
	f *os.File
	w *bufio.Writer
}

func CreateReplay(path string) (*ReplayWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	rw := &ReplayWriter{f: f, w: bufio.NewWriter(f)}
	rw.w.WriteString(replayMagic)
	rw.w.WriteByte(replayVersion)
	return rw, nil
}

func (rw *ReplayWriter) Write(inputs [2]InputBits) error {
	rw.w.Write(encodeInputs(inputs[0]))
	_, err := rw.w.Write(encodeInputs(inputs[1]))
	return err
}

func (rw *ReplayWriter) Close() error {
	if err := rw.w.Flush(); err != nil {
		rw.f.Close()
		return err
	}
	return rw.f.Close()
}

// Replay is a fully loaded input log. Frames past its end read as no input.
type Replay struct {
	Frames [][2]InputBits
}

func ReadReplay(r io.Reader) (*Replay, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	header := len(replayMagic) + 1
	if len(data) < header || !bytes.Equal(data[:len(replayMagic)], []byte(replayMagic)) {
		return nil, Error("replay: bad header")
	}
	if v := data[len(replayMagic)]; v != replayVersion {
		return nil, fmt.Errorf("replay: unsupported version %d", v)
	}
	body := data[header:]
	if len(body)%(2*inputSize) != 0 {
		return nil, Error("replay: truncated frame")
	}
	rp := &Replay{Frames: make([][2]InputBits, len(body)/(2*inputSize))}
	for i := range rp.Frames {
		rec := body[i*2*inputSize:]
		in := decodeInputs([][]byte{rec[:inputSize], rec[inputSize : 2*inputSize]})
		rp.Frames[i] = [2]InputBits{in[0], in[1]}
	}
	return rp, nil
}

func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadReplay(f)
}

func (rp *Replay) Input(player int, frame int64) (InputBits, error) {
	if frame < 0 || frame >= int64(len(rp.Frames)) {
		return 0, nil
	}
	return rp.Frames[frame][player], nil
}

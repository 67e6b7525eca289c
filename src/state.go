package main

import (
	"encoding/binary"
	"fmt"
)

const (
	ErrSnapshotTruncated = Error("snapshot: truncated")
	ErrSnapshotTrailing  = Error("snapshot: trailing bytes")
)

// GameState is one saved Round as handed to the rollback session.
type GameState struct {
	Frame    int64
	Blob     []byte
	Checksum uint64
}

func (gs *GameState) String() string {
	return fmt.Sprintf("frame %d, %d bytes, checksum %04x", gs.Frame, len(gs.Blob), gs.Checksum)
}

// Checksum is Fletcher-16 over the serialized bytes, widened for the session API.
func Checksum(data []byte) uint64 {
	var sum1, sum2 uint32
	for _, b := range data {
		sum1 = (sum1 + uint32(b)) % 255
		sum2 = (sum2 + sum1) % 255
	}
	return uint64(sum2<<8 | sum1)
}

// SaveRound serializes r. The layout is little-endian with a fixed field
// order; two peers with equal Rounds produce equal bytes.
func SaveRound(r *Round) []byte {
	w := stateWriter{buf: make([]byte, 0, 512)}
	w.i64(r.Frame)
	w.timer(r.RoundTimer)
	w.timer(r.ResetTimer)
	w.u32(r.HitStun)
	w.bool(r.RoundDone)
	w.u8(r.Number)
	w.u8(r.Wins[0])
	w.u8(r.Wins[1])
	for i := range r.Chars {
		w.char(&r.Chars[i])
	}
	w.u16(uint16(len(r.Projectiles)))
	for i := range r.Projectiles {
		p := &r.Projectiles[i]
		w.vec(p.Pos)
		w.vec(p.Vel)
		w.u8(uint8(p.Side))
		w.u8(p.Owner)
		w.progress(&p.Progress)
	}
	w.u16(uint16(len(r.Effects)))
	for i := range r.Effects {
		e := &r.Effects[i]
		w.vec(e.Pos)
		w.u8(uint8(e.Side))
		w.progress(&e.Progress)
	}
	return w.buf
}

// LoadRound is the exact inverse of SaveRound.
func LoadRound(blob []byte) (Round, error) {
	var r Round
	rd := stateReader{buf: blob}
	r.Frame = rd.i64()
	r.RoundTimer = rd.timer()
	r.ResetTimer = rd.timer()
	r.HitStun = rd.u32()
	r.RoundDone = rd.bool()
	r.Number = rd.u8()
	r.Wins[0] = rd.u8()
	r.Wins[1] = rd.u8()
	for i := range r.Chars {
		rd.char(&r.Chars[i])
	}
	if n := int(rd.u16()); n > 0 && rd.err == nil {
		r.Projectiles = make([]Projectile, n)
		for i := range r.Projectiles {
			p := &r.Projectiles[i]
			p.Pos = rd.vec()
			p.Vel = rd.vec()
			p.Side = Side(rd.u8())
			p.Owner = rd.u8()
			p.Progress = rd.progress()
		}
	}
	if n := int(rd.u16()); n > 0 && rd.err == nil {
		r.Effects = make([]Effect, n)
		for i := range r.Effects {
			e := &r.Effects[i]
			e.Pos = rd.vec()
			e.Side = Side(rd.u8())
			e.Progress = rd.progress()
		}
	}
	if rd.err != nil {
		return Round{}, rd.err
	}
	if len(rd.buf) != 0 {
		return Round{}, ErrSnapshotTrailing
	}
	return r, nil
}

type stateWriter struct {
	buf []byte
}

func (w *stateWriter) u8(v uint8)   { w.buf = append(w.buf, v) }
func (w *stateWriter) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *stateWriter) u32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *stateWriter) i64(v int64)  { w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v)) }
func (w *stateWriter) bool(v bool)  { w.u8(uint8(Btoi(v))) }

func (w *stateWriter) vec(v Vec2) {
	w.i64(int64(v.X))
	w.i64(int64(v.Y))
}

func (w *stateWriter) timer(t FrameTimer) {
	w.u32(t.Total)
	w.u32(t.Current)
	w.bool(t.finished)
}

func (w *stateWriter) progress(ap *AnimationProgress) {
	w.timer(ap.Timer)
	w.u32(ap.Frame)
	w.u16(uint16(len(ap.Durations)))
	for _, d := range ap.Durations {
		w.u32(d)
	}
}

func (w *stateWriter) char(c *Char) {
	w.vec(c.Pos)
	w.vec(c.Vel)
	w.u32(c.Health)
	w.u8(uint8(c.Side))
	w.u8(uint8(c.State))
	w.u8(uint8(c.Anim))
	w.progress(&c.Progress)
	w.bool(c.Crouched)
	w.bool(c.Connected)
	w.u16(uint16(c.Input))
	w.u8(c.HistLen)
	for _, ri := range c.history() {
		w.u16(uint16(ri))
	}
}

// stateReader keeps the first error and returns zero values after it.
type stateReader struct {
	buf []byte
	err error
}

func (r *stateReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf) < n {
		r.err = ErrSnapshotTruncated
		return nil
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b
}

func (r *stateReader) u8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *stateReader) u16() uint16 {
	if b := r.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (r *stateReader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (r *stateReader) i64() int64 {
	if b := r.take(8); b != nil {
		return int64(binary.LittleEndian.Uint64(b))
	}
	return 0
}

func (r *stateReader) bool() bool { return r.u8() != 0 }

func (r *stateReader) vec() Vec2 {
	x := Fixed(r.i64())
	return Vec2{x, Fixed(r.i64())}
}

func (r *stateReader) timer() FrameTimer {
	t := FrameTimer{Total: r.u32(), Current: r.u32()}
	t.finished = r.bool()
	return t
}

func (r *stateReader) progress() AnimationProgress {
	ap := AnimationProgress{Timer: r.timer(), Frame: r.u32()}
	n := int(r.u16())
	if n > 0 && r.err == nil {
		ap.Durations = make([]uint32, n)
		for i := range ap.Durations {
			ap.Durations[i] = r.u32()
		}
	}
	return ap
}

func (r *stateReader) char(c *Char) {
	c.Pos = r.vec()
	c.Vel = r.vec()
	c.Health = r.u32()
	c.Side = Side(r.u8())
	c.State = CharacterState(r.u8())
	c.Anim = AnimationId(r.u8())
	c.Progress = r.progress()
	c.Crouched = r.bool()
	c.Connected = r.bool()
	c.Input = ScreenRelativeInput(r.u16())
	n := r.u8()
	if int(n) > len(c.History) {
		if r.err == nil {
			r.err = fmt.Errorf("snapshot: input history of %d entries", n)
		}
		return
	}
	c.HistLen = n
	for i := 0; i < int(n); i++ {
		c.History[i] = ScreenRelativeInput(r.u16())
	}
	if c.State >= stateCount || !c.Anim.Valid() {
		if r.err == nil {
			r.err = fmt.Errorf("snapshot: bad state %d / animation %d", c.State, c.Anim)
		}
	}
}

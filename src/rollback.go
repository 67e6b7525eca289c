package main

import (
	"math"
	"time"
)

// RollbackSystem drives a Fight through a ggpo backend, one frame per loop.
type RollbackSystem struct {
	session    *RollbackSession
	source     InputSource
	maxFrames  int64
	ggpoInputs [2]InputBits
}

func NewRollbackSystem(session *RollbackSession, source InputSource, maxFrames int64) *RollbackSystem {
	return &RollbackSystem{session: session, source: source, maxFrames: maxFrames}
}

// matchFinished is true once the match is decided and the closing delay ran.
func matchFinished(f *Fight) bool {
	return f.Over() && f.Round.RoundDone && f.Round.ResetTimer.Finished()
}

func (rs *RollbackSystem) done() bool {
	if rs.maxFrames > 0 && rs.session.netTime >= rs.maxFrames {
		return true
	}
	return matchFinished(rs.session.fight)
}

// runMatch loops until the match ends, the frame limit is hit or the peer
// disconnects. Network sessions are paced at 60 frames per second; sync
// tests run as fast as possible.
func (rs *RollbackSystem) runMatch() error {
	defer rs.session.Close()
	for !rs.done() {
		rs.session.now = time.Now().UnixMilli()
		wait := 0
		if !rs.session.syncTest {
			wait = int(math.Max(0, float64(rs.session.next-rs.session.now-1)))
		}
		if err := rs.session.backend.Idle(wait); err != nil {
			return err
		}
		if err := rs.runFrame(); err != nil {
			return err
		}
		if rs.session.disconnected {
			return Error("rollback: peer disconnected")
		}
		rs.session.next = rs.session.now + 1000/60
	}
	return nil
}

// Called once per frame by runMatch.
// Responsible for collecting local inputs and driving the ggpo backend forward.
func (rs *RollbackSystem) runFrame() error {
	var ggpoerr error
	if rs.session.syncTest {
		for p := 0; p < 2 && ggpoerr == nil; p++ {
			buffer, err := rs.getInputs(p)
			if err != nil {
				return err
			}
			ggpoerr = rs.session.backend.AddLocalInput(rs.session.handles[p], buffer, len(buffer))
		}
	} else {
		buffer, err := rs.getInputs(rs.session.currentPlayer)
		if err != nil {
			return err
		}
		ggpoerr = rs.session.backend.AddLocalInput(rs.session.currentPlayerHandle, buffer, len(buffer))
	}
	// Not synchronized yet or too far ahead of the peer; try next loop.
	if ggpoerr != nil {
		return nil
	}

	disconnectFlags := 0
	values, ggpoerr := rs.session.backend.SyncInput(&disconnectFlags)
	if ggpoerr != nil {
		return nil
	}
	rs.ggpoInputs = rs.session.simulate(values)
	return rs.session.backend.AdvanceFrame(uint32(rs.session.fight.LiveChecksum()))
}

func (rs *RollbackSystem) getInputs(player int) ([]byte, error) {
	ib, err := rs.source.Input(player, rs.session.netTime)
	if err != nil {
		return nil, err
	}
	return encodeInputs(ib), nil
}

// runOffline plays a match without a rollback backend and returns the inputs
// it used.
func runOffline(f *Fight, source InputSource, maxFrames int64) ([][2]InputBits, error) {
	var log [][2]InputBits
	for frame := int64(0); !matchFinished(f) && (maxFrames <= 0 || frame < maxFrames); frame++ {
		var inputs [2]InputBits
		for p := range inputs {
			ib, err := source.Input(p, frame)
			if err != nil {
				return log, err
			}
			inputs[p] = ib
		}
		f.Advance(inputs)
		log = append(log, inputs)
	}
	return log, nil
}

// playInputs replays an input log on a fresh fight. When stats is not nil it
// observes every frame.
func playInputs(gd *GameData, frames [][2]InputBits, stats *statsRecorder) *Fight {
	f := NewFight(gd)
	if stats != nil {
		stats.log.startMatch(gd)
	}
	for _, in := range frames {
		f.Advance(in)
		if stats != nil {
			stats.observe(f)
		}
	}
	if stats != nil {
		stats.log.abortMatch()
	}
	return f
}

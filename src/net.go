package main

import (
	"fmt"
	"time"

	ggpo "github.com/assemblaj/ggpo"
)

// Saved states are kept in a ring. ggpo never asks for a state older than
// its prediction window, which is far below this.
const saveStateSlots = 128

// frameSyncer is the part of a ggpo backend that the AdvanceFrame callback
// uses while resimulating.
type frameSyncer interface {
	SyncInput(disconnectFlags *int) ([][]byte, error)
	AdvanceFrame(checksum uint32) error
}

type savedState struct {
	id      int
	valid   bool
	netTime int64
	state   GameState
}

type RollbackSession struct {
	backend             ggpo.Backend
	sync                frameSyncer
	fight               *Fight
	saveStates          [saveStateSlots]savedState
	now                 int64
	next                int64
	players             []ggpo.Player
	handles             []ggpo.PlayerHandle
	connected           bool
	syncProgress        int
	synchronized        bool
	syncTest            bool
	disconnected        bool
	netTime             int64
	inputLog            [][2]InputBits
	currentPlayer       int
	currentPlayerHandle ggpo.PlayerHandle
	config              RollbackProperties
}

func NewRollbackSession(config RollbackProperties, fight *Fight) RollbackSession {
	return RollbackSession{fight: fight, config: config}
}

func (r *RollbackSession) Close() {
	if r.backend != nil {
		r.backend.Close()
	}
}

func (r *RollbackSession) IsConnected() bool {
	return r.connected
}

func (r *RollbackSession) SetBackend(backend ggpo.Backend) {
	r.backend = backend
	r.sync = backend
}

func (r *RollbackSession) SaveGameState(stateID int) int {
	gs := r.fight.Save()
	r.saveStates[stateID%saveStateSlots] = savedState{id: stateID, valid: true, netTime: r.netTime, state: gs}
	return int(uint32(gs.Checksum))
}

func (r *RollbackSession) LoadGameState(stateID int) {
	s := &r.saveStates[stateID%saveStateSlots]
	if !s.valid || s.id != stateID {
		panic(Error(fmt.Sprintf("rollback: no saved state %d", stateID)))
	}
	chkEX(r.fight.Load(s.state.Blob), "rollback: ", true)
	r.netTime = s.netTime
}

func (r *RollbackSession) LogGameState(fileName string, buffer []byte, size int) {
	if r.config.LogsEnabled && sys.errLog != nil && size <= len(buffer) {
		sys.errLog.Printf("state %s: %d bytes checksum %#x", fileName, size, Checksum(buffer[:size]))
	}
}

// AdvanceFrame is called by ggpo while resimulating after a rollback.
func (r *RollbackSession) AdvanceFrame(flags int) {
	var disconnectFlags int
	values, result := r.sync.SyncInput(&disconnectFlags)
	if result != nil {
		return
	}
	r.simulate(values)
	if err := r.sync.AdvanceFrame(uint32(r.fight.LiveChecksum())); err != nil {
		panic(err)
	}
}

// simulate steps the fight with inputs as handed out by SyncInput and logs
// them under the session frame. A resimulated frame overwrites its entry, so
// once the match is over the log holds only confirmed inputs.
func (r *RollbackSession) simulate(values [][]byte) [2]InputBits {
	var inputs [2]InputBits
	copy(inputs[:], decodeInputs(values))
	r.fight.Advance(inputs)
	if r.netTime < int64(len(r.inputLog)) {
		r.inputLog[r.netTime] = inputs
	} else {
		r.inputLog = append(r.inputLog, inputs)
	}
	r.netTime++
	return inputs
}

func (r *RollbackSession) OnEvent(info *ggpo.Event) {
	switch info.Code {
	case ggpo.EventCodeConnectedToPeer:
		r.connected = true
	case ggpo.EventCodeSynchronizingWithPeer:
		if info.Total > 0 {
			r.syncProgress = 100 * info.Count / info.Total
		}
	case ggpo.EventCodeSynchronizedWithPeer:
		r.syncProgress = 100
		r.synchronized = true
	case ggpo.EventCodeRunning:
		sys.errLog.Println("rollback: running")
	case ggpo.EventCodeDisconnectedFromPeer:
		r.disconnected = true
		sys.errLog.Printf("rollback: player %d disconnected", info.Player)
	case ggpo.EventCodeTimeSync:
		time.Sleep(time.Millisecond * time.Duration(1000*info.FramesAhead/60))
	case ggpo.EventCodeConnectionInterrupted:
		sys.errLog.Println("rollback: connection interrupted")
	case ggpo.EventCodeConnectionResumed:
		sys.errLog.Println("rollback: connection resumed")
	}
}

func (r *RollbackSession) setLogging() {
	if r.config.LogsEnabled {
		ggpo.SetLogger(sys.errLog)
		ggpo.EnableLogs()
	} else {
		ggpo.DisableLogs()
	}
}

// addPlayers registers both players with the backend and keeps their handles
// in player order.
func (r *RollbackSession) addPlayers(backend ggpo.Backend) error {
	r.handles = r.handles[:0]
	for i := range r.players {
		var handle ggpo.PlayerHandle
		if err := backend.AddPlayer(&r.players[i], &handle); err != nil {
			return fmt.Errorf("rollback: add player %d: %w", i+1, err)
		}
		r.handles = append(r.handles, handle)
	}
	return nil
}

// initPeer sets up a two player network session where local is 0 or 1.
func (r *RollbackSession) initPeer(local int, localPort int, remotePort int, remoteIp string) error {
	r.setLogging()
	r.players = make([]ggpo.Player, 0, 2)
	for i := 0; i < 2; i++ {
		if i == local {
			r.players = append(r.players, ggpo.NewLocalPlayer(20, i+1))
		} else {
			r.players = append(r.players, ggpo.NewRemotePlayer(20, i+1, remoteIp, remotePort))
		}
	}

	peer := ggpo.NewPeer(r, localPort, 2, inputSize)
	r.SetBackend(&peer)

	peer.InitializeConnection()
	peer.Start()

	if err := r.addPlayers(&peer); err != nil {
		return err
	}
	r.currentPlayer = local
	r.currentPlayerHandle = r.handles[local]

	peer.SetFrameDelay(r.currentPlayerHandle, r.config.FrameDelay)
	peer.SetDisconnectTimeout(r.config.DisconnectTimeout)
	peer.SetDisconnectNotifyStart(r.config.DisconnectNotifyStart)
	return nil
}

// InitP1 hosts as player 1.
func (r *RollbackSession) InitP1(localPort int, remotePort int, remoteIp string) error {
	return r.initPeer(0, localPort, remotePort, remoteIp)
}

// InitP2 joins as player 2.
func (r *RollbackSession) InitP2(localPort int, remotePort int, remoteIp string) error {
	return r.initPeer(1, localPort, remotePort, remoteIp)
}

// InitSyncTest runs both players locally, rolling back every
// DesyncTestFrames frames and comparing checksums of the resimulation.
func (r *RollbackSession) InitSyncTest() error {
	r.syncTest = true
	r.setLogging()

	r.players = []ggpo.Player{ggpo.NewLocalPlayer(20, 1), ggpo.NewLocalPlayer(20, 2)}

	peer := ggpo.NewSyncTest(r, 2, r.config.DesyncTestFrames, inputSize, true)
	r.SetBackend(&peer)

	peer.InitializeConnection()
	peer.Start()

	if err := r.addPlayers(&peer); err != nil {
		return err
	}
	r.synchronized = true
	return nil
}

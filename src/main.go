package main

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

var Version = "development"
var BuildTime = "" // Set automatically by the release build

func createLog(p string) *os.File {
	f, err := os.Create(p)
	if err != nil {
		panic(err)
	}
	return f
}
func closeLog(f *os.File) {
	f.Close()
}

func main() {
	// Make save directories, if they don't exist
	os.Mkdir("save", os.ModeSticky|0755)
	os.Mkdir("save/replays", os.ModeSticky|0755)
	os.Mkdir("save/logs", os.ModeSticky|0755)

	processCommandLine()

	// Ensure cmdFlags exists even when there are no CLI args,
	// since we assign defaults below.
	if sys.cmdFlags == nil {
		sys.cmdFlags = make(map[string]string)
	}
	if p, ok := sys.cmdFlags["-log"]; ok {
		sys.openLog(p)
	}
	defer sys.shutdown()

	// Config file path
	if _, ok := sys.cmdFlags["-config"]; !ok {
		sys.cmdFlags["-config"] = "save/config.ini"
	}
	cfg, err := loadConfig(sys.cmdFlags["-config"])
	chk(err)
	sys.cfg = *cfg

	// Stats file path
	if _, ok := sys.cmdFlags["-stats"]; !ok {
		sys.cmdFlags["-stats"] = sys.cfg.Stats.File
	}

	gd, err := loadGameData(&sys.cfg)
	chk(err)
	sys.gameData = gd

	if p, ok := sys.cmdFlags["-replay"]; ok {
		rp, err := LoadReplay(p)
		chk(err)
		f := playInputs(gd, rp.Frames, nil)
		fmt.Printf("frame %d round %d checksum %#x\n", len(rp.Frames), f.Round.Number, f.LiveChecksum())
		return
	}

	source, err := sys.inputSource()
	chk(err)
	defer source.Close()

	var maxFrames int64
	if v, ok := sys.cmdFlags["-frames"]; ok {
		maxFrames, err = strconv.ParseInt(v, 10, 64)
		chkEX(err, "Invalid -frames value: ", true)
	}

	inputs, err := runMode(gd, source, maxFrames)
	chk(err)

	f := playInputs(gd, inputs, &statsRecorder{log: &sys.statsLog})
	fmt.Printf("frame %d round %d checksum %#x\n", len(inputs), f.Round.Number, f.LiveChecksum())

	if p, ok := sys.cmdFlags["-record"]; ok {
		chk(writeReplay(p, inputs))
	}
	if p := sys.cmdFlags["-stats"]; p != "" {
		chkEX(sys.statsLog.save(p), "Failed to save stats: ", false)
	}
}

// runMode plays one match in the mode picked on the command line and returns
// its confirmed inputs.
func runMode(gd *GameData, source InputSource, maxFrames int64) ([][2]InputBits, error) {
	f := NewFight(gd)
	_, host := sys.cmdFlags["-host"]
	remote, connect := sys.cmdFlags["-connect"]
	_, synctest := sys.cmdFlags["-synctest"]
	if !host && !connect && !synctest && !sys.cfg.Rollback.DesyncTest {
		return runOffline(f, source, maxFrames)
	}

	session := NewRollbackSession(sys.cfg.Rollback, f)
	var err error
	switch {
	case host:
		err = session.InitP1(sys.cfg.Netplay.ListenPort, sys.cfg.Netplay.RemotePort, sys.cfg.Netplay.RemoteIP)
	case connect:
		if remote == "" || remote == "true" {
			remote = sys.cfg.Netplay.RemoteIP
		}
		err = session.InitP2(sys.cfg.Netplay.ListenPort, sys.cfg.Netplay.RemotePort, remote)
	default:
		if !sys.cfg.Rollback.DesyncTestAI {
			source = soloInput{source}
		}
		err = session.InitSyncTest()
	}
	if err != nil {
		return nil, err
	}
	rs := NewRollbackSystem(&session, source, maxFrames)
	err = rs.runMatch()
	return session.inputLog, err
}

// soloInput feeds the source to player 1 only; player 2 stands still.
type soloInput struct {
	InputSource
}

func (s soloInput) Input(player int, frame int64) (InputBits, error) {
	if player != 0 {
		return 0, nil
	}
	return s.InputSource.Input(player, frame)
}

func writeReplay(path string, inputs [][2]InputBits) error {
	rw, err := CreateReplay(path)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if err := rw.Write(in); err != nil {
			rw.Close()
			return err
		}
	}
	return rw.Close()
}

func processCommandLine() {
	// If there are command line arguments
	if len(os.Args[1:]) > 0 {
		sys.cmdFlags = make(map[string]string)
		boolFlags := map[string]bool{
			"-synctest": true,
			"-host":     true,
		}
		key := ""
		r1, _ := regexp.Compile("^-[h%?]$")
		r2, _ := regexp.Compile("^-")
		// Loop through arguments
		for _, a := range os.Args[1:] {
			// Check if 'a' is a number (could be negative)
			_, err := strconv.ParseFloat(a, 64)
			isNumber := err == nil

			// If there was a flag 'key' expecting a value, and 'a' is a number or not a flag
			if key != "" && (isNumber || !r2.MatchString(a)) {
				sys.cmdFlags[key] = a
				key = ""
			} else if r2.MatchString(a) {
				// If getting help about command line options
				if r1.MatchString(a) {
					text := `Options (case sensitive):
-h -?                   Help
-config <path>          Loads config <path> (default save/config.ini)
-stats <path>           Saves match statistics to <path>
-log <logfile>          Mirrors the error log to <logfile>
-script <path>          Lua input script for both players
-frames <num>           Stops after <num> frames
-record <path>          Records the match inputs to <path>
-replay <path>          Plays back a recorded match and prints its checksum

Rollback Options:
-synctest               Runs a ggpo sync test with both players local
-host                   Hosts a match as player 1
-connect <ip>           Joins the match hosted at <ip> as player 2`
					fmt.Printf("rollfight %s %s\n\n%s\n", Version, BuildTime, text)
					os.Exit(0)
				}
				// If 'a' is a boolean flag, set its value to "true".
				if _, isBool := boolFlags[a]; isBool {
					sys.cmdFlags[a] = "true"
				} else {
					// 'a' is a value-expecting flag. Set its value to blank and store its name in 'key'.
					sys.cmdFlags[a] = ""
					key = a
				}
			}
		}
		// After the loop, if a key is still waiting for a value, set it to "true".
		if key != "" {
			sys.cmdFlags[key] = "true"
		}
	}
}

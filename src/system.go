package main

import (
	"io"
	"log"
	"os"
)

// sys
// The only instance of a System struct.
// Do not create more than 1.
var sys = System{
	errLog: log.New(NewLogWriter(), "", log.LstdFlags),
}

// System holds the process wide state of the runner. Nothing in the
// simulation reads it; Round and Fight only see their GameData.
type System struct {
	cfg      Config
	cmdFlags map[string]string
	errLog   *log.Logger
	logFile  *os.File
	gameData *GameData
	statsLog StatsLog
}

// Log writer implementation
func NewLogWriter() io.Writer {
	return os.Stderr
}

// openLog mirrors errLog into the file at p.
func (s *System) openLog(p string) {
	s.logFile = createLog(p)
	s.errLog = log.New(io.MultiWriter(NewLogWriter(), s.logFile), "", log.LstdFlags)
}

func (s *System) shutdown() {
	if s.logFile != nil {
		closeLog(s.logFile)
		s.logFile = nil
	}
}

// inputSource picks the script named on the command line, then the config.
func (s *System) inputSource() (*LuaInputSource, error) {
	path := s.cfg.Script.Input
	if p, ok := s.cmdFlags["-script"]; ok && p != "" && p != "true" {
		path = p
	}
	return NewLuaInputSource(path)
}

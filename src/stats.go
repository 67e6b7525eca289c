package main

import (
	"encoding/json"
	"math"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// StatsFighterState captures an end-of-round snapshot for a fighter on one side.
type StatsFighterState struct {
	Name    string `json:"name"`
	Health  uint32 `json:"health"`  // health remaining at round end
	Win     bool   `json:"win"`     // this fighter won the round
	WinKO   bool   `json:"winKO"`   // won by KO
	WinTime bool   `json:"winTime"` // won on time-out
	Perfect bool   `json:"perfect"` // won without taking damage
	KO      bool   `json:"ko"`      // this fighter was KO'd
}

// StatsRound stores all per-round stats.
// Indices: side 0 == P1, side 1 == P2.
type StatsRound struct {
	Index    uint8                `json:"index"`  // 1-based round number
	Frames   int64                `json:"frames"` // frames until the round was decided
	Winner   int                  `json:"winner"`
	Fighters [2]StatsFighterState `json:"fighters"`
}

// StatsMatch aggregates the entire fight between two sides.
type StatsMatch struct {
	MatchTime int64        `json:"matchTime"` // total match time in frames
	RoundTime uint32       `json:"roundTime"` // round time in frames
	WinSide   int          `json:"winSide"`   // 0 or 1, -1 while unfinished
	Wins      [2]uint8     `json:"wins"`
	Rounds    []StatsRound `json:"rounds"`
}

// StatsLog is a simple container for many matches.
type StatsLog struct {
	Matches []StatsMatch `json:"matches"`
}

// resets all gathered stats
func (s *StatsLog) reset() {
	s.Matches = nil
}

// startMatch begins a new match in the stats log.
func (s *StatsLog) startMatch(gd *GameData) {
	s.Matches = append(s.Matches, StatsMatch{RoundTime: gd.RoundTime, WinSide: -1})
}

// addRound appends a finished round to the most recent match.
func (s *StatsLog) addRound(gd *GameData, r *Round) {
	m := s.currentStatsMatch()
	if m == nil {
		s.startMatch(gd)
		m = s.currentStatsMatch()
	}
	w := r.Winner()
	sr := StatsRound{Index: r.Number, Frames: r.Frame, Winner: w}
	timeout := r.Chars[0].Health > 0 && r.Chars[1].Health > 0
	for i := range r.Chars {
		c := &r.Chars[i]
		sr.Fighters[i] = StatsFighterState{
			Name:    gd.Name,
			Health:  c.Health,
			Win:     i == w,
			WinKO:   i == w && !timeout,
			WinTime: i == w && timeout,
			Perfect: i == w && c.Health == gd.StartHealth,
			KO:      c.Health == 0,
		}
	}
	m.Rounds = append(m.Rounds, sr)
	m.MatchTime += r.Frame
	m.Wins = r.Wins
}

// finalizeMatch records the winner of the most recent match.
func (s *StatsLog) finalizeMatch() {
	m := s.currentStatsMatch()
	if m == nil {
		return
	}
	if m.Wins[0] > m.Wins[1] {
		m.WinSide = 0
	} else if m.Wins[1] > m.Wins[0] {
		m.WinSide = 1
	}
}

// currentStatsMatch returns a pointer to the active (most recently started) match.
func (s *StatsLog) currentStatsMatch() *StatsMatch {
	if len(s.Matches) == 0 {
		return nil
	}
	return &s.Matches[len(s.Matches)-1]
}

// abortMatch removes the most recent match if it has no rounds.
func (s *StatsLog) abortMatch() {
	if len(s.Matches) == 0 {
		return
	}
	if len(s.Matches[len(s.Matches)-1].Rounds) == 0 {
		s.Matches = s.Matches[:len(s.Matches)-1]
	}
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

// mergeStats folds the log into an existing stats document, keeping any keys
// it does not know about.
func (s *StatsLog) mergeStats(data []byte) ([]byte, error) {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		data = []byte(`{}`)
	}
	var frames int64
	var rounds int64
	var err error
	for _, m := range s.Matches {
		frames += m.MatchTime
		rounds += int64(len(m.Rounds))
		buf, merr := json.Marshal(m)
		if merr != nil {
			return nil, merr
		}
		if data, err = sjson.SetRawBytes(data, "matches.-1", buf); err != nil {
			return nil, err
		}
	}
	// playtime is in minutes, like the rest of the save files
	play := gjson.GetBytes(data, "playtime").Float()
	if data, err = sjson.SetBytes(data, "playtime", round2(play+float64(frames)/3600.0)); err != nil {
		return nil, err
	}
	total := gjson.GetBytes(data, "rounds").Int()
	if data, err = sjson.SetBytes(data, "rounds", total+rounds); err != nil {
		return nil, err
	}
	for side := 0; side < 2; side++ {
		path := "wins.p" + string(rune('1'+side))
		n := gjson.GetBytes(data, path).Int()
		for _, m := range s.Matches {
			if m.WinSide == side {
				n++
			}
		}
		if data, err = sjson.SetBytes(data, path, n); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// save merges the log into the stats file at path.
func (s *StatsLog) save(path string) error {
	data, _ := os.ReadFile(path)
	data, err := s.mergeStats(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// statsRecorder watches confirmed frames and records each round once.
type statsRecorder struct {
	log      *StatsLog
	recorded uint8
	finished bool
}

func (sr *statsRecorder) observe(f *Fight) {
	r := &f.Round
	if !r.RoundDone || r.Number == sr.recorded {
		return
	}
	sr.recorded = r.Number
	sr.log.addRound(f.gd, r)
	if f.Over() && !sr.finished {
		sr.finished = true
		sr.log.finalizeMatch()
	}
}

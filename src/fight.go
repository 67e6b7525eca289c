package main

// Fight drives a whole match: it advances the current Round and starts the
// next one once the reset delay after a finished round has run out.
type Fight struct {
	gd    *GameData
	Round Round
}

func NewFight(gd *GameData) *Fight {
	return &Fight{gd: gd, Round: NewRound(gd)}
}

func (f *Fight) GameData() *GameData {
	return f.gd
}

// Over is true once either side has won enough rounds.
func (f *Fight) Over() bool {
	return f.Round.Wins[0] >= f.gd.Wins || f.Round.Wins[1] >= f.gd.Wins
}

func (f *Fight) Advance(inputs [2]InputBits) {
	f.Round.Advance(f.gd, inputs)
	if f.Round.RoundDone && f.Round.ResetTimer.Finished() && !f.Over() {
		f.Round = f.Round.Next(f.gd)
	}
}

func (f *Fight) Save() GameState {
	blob := SaveRound(&f.Round)
	return GameState{Frame: f.Round.Frame, Blob: blob, Checksum: Checksum(blob)}
}

func (f *Fight) Load(blob []byte) error {
	r, err := LoadRound(blob)
	if err != nil {
		return err
	}
	f.Round = r
	return nil
}

// LiveChecksum checksums the current Round without keeping the blob.
func (f *Fight) LiveChecksum() uint64 {
	return Checksum(SaveRound(&f.Round))
}

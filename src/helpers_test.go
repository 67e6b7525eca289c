package main

// testGD is the built-in character with the default config.
var testGD = func() *GameData {
	cfg, err := loadConfig("")
	if err != nil {
		panic(err)
	}
	gd, err := loadGameData(cfg)
	if err != nil {
		panic(err)
	}
	return gd
}()

// shortMatch returns a copy of testGD with quick rounds.
func shortMatch(roundTime, resetTime uint32) *GameData {
	gd := *testGD
	gd.RoundTime = roundTime
	gd.ResetTime = resetTime
	return &gd
}

// advanceN runs n frames with the same inputs.
func advanceN(r *Round, gd *GameData, n int, inputs [2]InputBits) {
	for i := 0; i < n; i++ {
		r.Advance(gd, inputs)
	}
}

type constantInput [2]InputBits

func (c constantInput) Input(player int, frame int64) (InputBits, error) {
	return c[player], nil
}

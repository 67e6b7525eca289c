package main

import (
	_ "embed" // Support for go:embed resources
	"fmt"

	"gopkg.in/ini.v1"
)

//go:embed resources/defaultConfig.ini
var defaultConfig []byte

type RollbackProperties struct {
	FrameDelay            int  `ini:"FrameDelay"`
	DisconnectNotifyStart int  `ini:"DisconnectNotifyStart"`
	DisconnectTimeout     int  `ini:"DisconnectTimeout"`
	LogsEnabled           bool `ini:"LogsEnabled"`
	DesyncTest            bool `ini:"DesyncTest"`
	DesyncTestFrames      int  `ini:"DesyncTestFrames"`
	DesyncTestAI          bool `ini:"DesyncTestAI"`
}

type Config struct {
	Def     string    `ini:"-"`
	IniFile *ini.File `ini:"-"`
	Match   struct {
		RoundTime      int32  `ini:"RoundTime"`
		ResetTime      int32  `ini:"ResetTime"`
		Wins           int32  `ini:"Wins"`
		CharacterSheet string `ini:"CharacterSheet"`
	} `ini:"Match"`
	Arena struct {
		Width       int32 `ini:"Width"`
		FrameWidth  int32 `ini:"FrameWidth"`
		StartOffset int32 `ini:"StartOffset"`
	} `ini:"Arena"`
	Rollback RollbackProperties `ini:"Rollback"`
	Netplay  struct {
		ListenPort int    `ini:"ListenPort"`
		RemoteIP   string `ini:"RemoteIP"`
		RemotePort int    `ini:"RemotePort"`
	} `ini:"Netplay"`
	Script struct {
		Input string `ini:"Input"`
	} `ini:"Script"`
	Stats struct {
		File string `ini:"File"`
	} `ini:"Stats"`
}

// Loads and parses the INI file into a Config struct. The embedded defaults
// are always read first so a user file only needs the keys it changes.
func loadConfig(def string) (*Config, error) {
	options := ini.LoadOptions{
		Insensitive:                false,
		IgnoreInlineComment:        false,
		SkipUnrecognizableLines:    true,
		AllowShadows:               false,
		UnparseableSections:        []string{},
		AllowPythonMultilineValues: false,
	}

	var iniFile *ini.File
	var err error
	if fp := FileExist(def); len(fp) == 0 {
		iniFile, err = ini.LoadSources(options, defaultConfig)
	} else {
		iniFile, err = ini.LoadSources(options, defaultConfig, def)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %v", err)
	}
	var c Config
	if err := iniFile.MapTo(&c); err != nil {
		return nil, fmt.Errorf("failed to map config: %v", err)
	}
	c.Def = def
	c.IniFile = iniFile
	c.normalize()
	return &c, nil
}

// Normalize values
func (c *Config) normalize() {
	c.SetValueUpdate("Match", "RoundTime", &c.Match.RoundTime, Clamp(c.Match.RoundTime, 60, 99*60*60))
	c.SetValueUpdate("Match", "ResetTime", &c.Match.ResetTime, Clamp(c.Match.ResetTime, 1, 60*60))
	c.SetValueUpdate("Match", "Wins", &c.Match.Wins, Clamp(c.Match.Wins, 1, 9))
	c.SetValueUpdate("Arena", "Width", &c.Arena.Width, Clamp(c.Arena.Width, 320, 4096))
	c.SetValueUpdate("Arena", "FrameWidth", &c.Arena.FrameWidth, Clamp(c.Arena.FrameWidth, 64, c.Arena.Width/2))
	c.SetValueUpdate("Arena", "StartOffset", &c.Arena.StartOffset, Clamp(c.Arena.StartOffset, 0, c.Arena.FrameWidth/2))
	if c.Rollback.FrameDelay < 0 {
		c.Rollback.FrameDelay = 0
		c.IniFile.Section("Rollback").Key("FrameDelay").SetValue("0")
	}
	if c.Rollback.DesyncTestFrames < 1 {
		c.Rollback.DesyncTestFrames = 8
		c.IniFile.Section("Rollback").Key("DesyncTestFrames").SetValue("8")
	}
}

// SetValueUpdate stores v in the struct field and mirrors it into IniFile
// when it differs, so Save writes back what is actually used.
func (c *Config) SetValueUpdate(section, key string, field *int32, v int32) {
	if *field == v {
		return
	}
	fmt.Printf("Warning: [%s] %s = %d out of range, using %d\n", section, key, *field, v)
	*field = v
	c.IniFile.Section(section).Key(key).SetValue(fmt.Sprint(v))
}

// Save writes the current IniFile to disk, preserving comments.
func (c *Config) Save(file string) error {
	return c.IniFile.SaveTo(file)
}

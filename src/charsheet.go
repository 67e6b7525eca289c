package main

import (
	_ "embed" // Support for go:embed resources
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

//go:embed resources/character.json
var defaultCharacterSheet []byte

var actionByName = func() map[string]CharacterAction {
	m := make(map[string]CharacterAction, actionCount)
	for a := CharacterAction(0); a < actionCount; a++ {
		m[actionNames[a]] = a
	}
	return m
}()

// sheetReader collects the first error while walking a character sheet.
type sheetReader struct {
	err error
}

func (sr *sheetReader) fail(path, format string, args ...interface{}) {
	if sr.err == nil {
		sr.err = configErrorf(path, format, args...)
	}
}

func (sr *sheetReader) number(v gjson.Result, path string) gjson.Result {
	if !v.Exists() {
		sr.fail(path, "missing")
	} else if v.Type != gjson.Number {
		sr.fail(path, "not a number: %s", v.Raw)
	}
	return v
}

func (sr *sheetReader) fixed(v gjson.Result, path string) Fixed {
	return FromFloat(sr.number(v, path).Float())
}

func (sr *sheetReader) uint(v gjson.Result, path string) uint32 {
	n := sr.number(v, path).Int()
	if n < 0 || n > 1<<31 {
		sr.fail(path, "out of range: %d", n)
		return 0
	}
	return uint32(n)
}

func (sr *sheetReader) vec(v gjson.Result, path string) Vec2 {
	return Vec2{sr.fixed(v.Get("x"), path+".x"), sr.fixed(v.Get("y"), path+".y")}
}

func (sr *sheetReader) rect(v gjson.Result, path string) Rect {
	return RectXYWH(sr.fixed(v.Get("x"), path+".x"), sr.fixed(v.Get("y"), path+".y"),
		sr.fixed(v.Get("w"), path+".w"), sr.fixed(v.Get("h"), path+".h"))
}

func (sr *sheetReader) anim(v gjson.Result, path string) AnimationId {
	id, ok := AnimationIdFromName(v.String())
	if !ok {
		sr.fail(path, "unknown animation %q", v.String())
	}
	return id
}

func (sr *sheetReader) action(v gjson.Result, path string) CharacterAction {
	a, ok := actionByName[v.String()]
	if !ok {
		sr.fail(path, "unknown action %q", v.String())
	}
	return a
}

// LoadCharacterSheet reads a character sheet into GameData. Arena and round
// settings are left zero; see loadGameData.
func LoadCharacterSheet(data []byte) (*GameData, error) {
	if !gjson.ValidBytes(data) {
		return nil, configErrorf("", "character sheet is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	sr := &sheetReader{}
	gd := &GameData{
		Name:          doc.Get("name").String(),
		MoveSpeed:     sr.fixed(doc.Get("movespeed"), "movespeed"),
		StartHealth:   sr.uint(doc.Get("health"), "health"),
		WalkBox:       sr.rect(doc.Get("walkbox"), "walkbox"),
		ParryDamage:   defaultParryDamage,
		ParryHitStun:  defaultParryHitStun,
		StrikeHitStun: defaultStrikeHitStun,
		Spark:         AnimHitSpark,
	}
	if ds := doc.Get("dashspeed"); ds.Exists() {
		gd.DashSpeed = sr.fixed(ds, "dashspeed")
	} else {
		gd.DashSpeed = gd.MoveSpeed * 2
	}

	p := doc.Get("projectile")
	gd.Projectile = ProjectileData{
		Anim:       sr.anim(p.Get("animation"), "projectile.animation"),
		Speed:      sr.fixed(p.Get("speed"), "projectile.speed"),
		SpawnFrame: sr.uint(p.Get("spawnframe"), "projectile.spawnframe"),
		Offset:     sr.vec(p.Get("offset"), "projectile.offset"),
		Damage:     sr.uint(p.Get("damage"), "projectile.damage"),
		HitStun:    sr.uint(p.Get("hitstun"), "projectile.hitstun"),
		Hurtbox:    sr.rect(p.Get("hurtbox"), "projectile.hurtbox"),
	}
	if s := doc.Get("spark.animation"); s.Exists() {
		gd.Spark = sr.anim(s, "spark.animation")
	}
	if pr := doc.Get("parry"); pr.Exists() {
		gd.ParryDamage = sr.uint(pr.Get("damage"), "parry.damage")
		gd.ParryHitStun = sr.uint(pr.Get("hitstun"), "parry.hitstun")
	}
	if hs := doc.Get("hitstun"); hs.Exists() {
		arr := hs.Array()
		if len(arr) != len(gd.StrikeHitStun) {
			sr.fail("hitstun", "want %d entries, got %d", len(gd.StrikeHitStun), len(arr))
		}
		for i := 0; i < len(arr) && i < len(gd.StrikeHitStun); i++ {
			gd.StrikeHitStun[i] = sr.uint(arr[i], fmt.Sprintf("hitstun[%d]", i))
		}
	}

	if cmds := doc.Get("commands"); cmds.Exists() {
		for i, c := range cmds.Array() {
			path := fmt.Sprintf("commands[%d]", i)
			cmd := Command{Result: sr.action(c.Get("result"), path+".result")}
			for j, s := range c.Get("steps").Array() {
				cmd.Steps = append(cmd.Steps, sr.action(s, fmt.Sprintf("%s.steps[%d]", path, j)))
			}
			gd.Commands.Commands = append(gd.Commands.Commands, cmd)
		}
	} else {
		gd.Commands = DefaultCommandList()
	}

	seen := make(map[string]bool)
	doc.Get("animations").ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		path := joinPath("animations", name)
		id, ok := AnimationIdFromName(name)
		if !ok {
			sr.fail(path, "unknown animation")
			return false
		}
		seen[name] = true
		sr.readAnimation(gd, id, value, path)
		return sr.err == nil
	})
	if sr.err != nil {
		return nil, sr.err
	}

	missing := make(map[string]bool)
	for name := range animationByName {
		if !seen[name] {
			missing[name] = true
		}
	}
	if len(missing) > 0 {
		names := maps.Keys(missing)
		slices.Sort(names)
		return nil, configErrorf("animations", "missing %s", strings.Join(names, ", "))
	}
	return gd, nil
}

func (sr *sheetReader) readAnimation(gd *GameData, id AnimationId, v gjson.Result, path string) {
	a := &Animation{Image: v.Get("image_file_location").String()}
	for i, d := range v.Get("frame_lengths").Array() {
		a.Durations = append(a.Durations, sr.uint(d, fmt.Sprintf("%s.frame_lengths[%d]", path, i)))
	}
	for i, d := range v.Get("displacements").Array() {
		a.Displacements = append(a.Displacements, sr.vec(d, fmt.Sprintf("%s.displacements[%d]", path, i)))
	}
	boxes := v.Get("boxes")
	if !boxes.IsArray() {
		sr.fail(path+".boxes", "missing")
		return
	}
	frames := boxes.Array()
	gd.Collisions[id] = make([][]Hitbox, len(frames))
	for f, frame := range frames {
		for b, hb := range frame.Array() {
			bp := fmt.Sprintf("%s.boxes[%d][%d]", path, f, b)
			kind, ok := HitboxKindFromName(hb.Get("kind").String())
			if !ok {
				sr.fail(bp+".kind", "unknown kind %q", hb.Get("kind").String())
				return
			}
			gd.Collisions[id][f] = append(gd.Collisions[id][f], Hitbox{kind, sr.rect(hb, bp)})
		}
	}
	gd.Animations[id] = a
}

// loadGameData builds the validated GameData for a match from the config.
func loadGameData(c *Config) (*GameData, error) {
	data := defaultCharacterSheet
	if path := c.Match.CharacterSheet; path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read character sheet: %w", err)
		}
	}
	gd, err := LoadCharacterSheet(data)
	if err != nil {
		return nil, err
	}
	gd.applyConfig(c)
	if err := gd.Validate(); err != nil {
		return nil, err
	}
	return gd, nil
}

package main

import "fmt"

type HitboxKind uint8

const (
	KindHurt HitboxKind = iota
	KindHit
	KindParry
)

func (k HitboxKind) String() string {
	switch k {
	case KindHit:
		return "hit"
	case KindParry:
		return "parry"
	default:
		return "hurt"
	}
}

func HitboxKindFromName(s string) (HitboxKind, bool) {
	switch s {
	case "hurt":
		return KindHurt, true
	case "hit":
		return KindHit, true
	case "parry":
		return KindParry, true
	}
	return 0, false
}

// Rect is an axis aligned box. Y grows upward and the ground is at 0.
type Rect struct {
	X0, Y0, X1, Y1 Fixed
}

func RectXYWH(x, y, w, h Fixed) Rect {
	return Rect{x, y, x + w, y + h}
}

// Overlaps reports strict overlap; touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

func (r Rect) OverlapsY(o Rect) bool {
	return r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// World places a reference-pose rect at pos, reflecting X when facing left.
func (r Rect) World(pos Vec2, side Side) Rect {
	if side == SideRight {
		r.X0, r.X1 = -r.X1, -r.X0
	}
	return Rect{r.X0 + pos.X, r.Y0 + pos.Y, r.X1 + pos.X, r.Y1 + pos.Y}
}

func (r Rect) Offset(dx Fixed) Rect {
	return Rect{r.X0 + dx, r.Y0, r.X1 + dx, r.Y1}
}

func (r Rect) Width() Fixed { return r.X1 - r.X0 }

// Center of the overlap of two rects, used to place hit sparks.
func (r Rect) ContactPoint(o Rect) Vec2 {
	x0, x1 := max(r.X0, o.X0), min(r.X1, o.X1)
	y0, y1 := max(r.Y0, o.Y0), min(r.Y1, o.Y1)
	return Vec2{(x0 + x1).Halve(), (y0 + y1).Halve()}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v,%v %v,%v]", r.X0, r.Y0, r.X1, r.Y1)
}

type Hitbox struct {
	Kind HitboxKind
	Rect Rect
}

// CollisionTable holds every frame's boxes for one character archetype.
// It is built once and shared read-only by both characters.
type CollisionTable [animationCount][][]Hitbox

func (ct *CollisionTable) Boxes(id AnimationId, frame int) []Hitbox {
	if id >= animationCount {
		return nil
	}
	frames := ct[id]
	if frame < 0 || frame >= len(frames) {
		return nil
	}
	return frames[frame]
}

func (ct *CollisionTable) validate(at *AnimationTable) error {
	for id := AnimIdle; id < animationCount; id++ {
		a := at[id]
		if a == nil {
			continue
		}
		if len(ct[id]) != a.Length() {
			return configErrorf(joinPath("animations", id.String(), "boxes"),
				"has %d frames, want %d", len(ct[id]), a.Length())
		}
		for f, boxes := range ct[id] {
			for _, b := range boxes {
				if b.Rect.X1 <= b.Rect.X0 || b.Rect.Y1 <= b.Rect.Y0 {
					return configErrorf(fmt.Sprintf("animations.%v.boxes[%d]", id, f),
						"empty %v box %v", b.Kind, b.Rect)
				}
			}
		}
	}
	return nil
}

type worldBox struct {
	kind HitboxKind
	rect Rect
}

func worldBoxes(dst []worldBox, boxes []Hitbox, pos Vec2, side Side) []worldBox {
	for _, b := range boxes {
		dst = append(dst, worldBox{b.Kind, b.Rect.World(pos, side)})
	}
	return dst
}

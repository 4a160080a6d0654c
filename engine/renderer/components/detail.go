package components

import "github.com/spaghettifunk/patchview/engine/math"

// Detail is the coarseness bezier models are tessellated with.
type Detail struct {
	Level int
	Min   int
	Max   int
}

func NewDetail(min, max, initial int) *Detail {
	d := &Detail{Min: min, Max: max}
	d.Set(initial)
	return d
}

// Set moves to level, clamped to [Min, Max], and reports whether it changed.
func (d *Detail) Set(level int) bool {
	level = math.Clamp(level, d.Min, d.Max)
	if level == d.Level {
		return false
	}
	d.Level = level
	return true
}

func (d *Detail) Increase() bool { return d.Set(d.Level + 1) }
func (d *Detail) Decrease() bool { return d.Set(d.Level - 1) }

package game

import (
	"fmt"
	"strings"
)

// Direction is the horizontal facing of a lemming.
type Direction uint8

const (
	DirRight Direction = iota
	DirLeft
)

// Step returns the horizontal pixel delta for one step in this direction.
func (d Direction) Step() int32 {
	if d == DirLeft {
		return -1
	}
	return 1
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == DirLeft {
		return DirRight
	}
	return DirLeft
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection accepts "left" or "right" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return DirLeft, nil
	case "right", "r", "":
		return DirRight, nil
	default:
		return DirRight, fmt.Errorf("unknown direction %q", s)
	}
}

// offset moves v by delta pixels using unsigned wrap-around. A coordinate
// pushed below zero becomes a huge value that every bounds check rejects.
func offset(v uint32, delta int32) uint32 {
	return v + uint32(delta) // #nosec G115 -- wrap-around is intended
}

// ActionSet is a bitfield of the skills a lemming currently carries.
// Members are independent: Dig and Bridge may both be set.
type ActionSet uint8

const (
	ActionWalk ActionSet = 1 << iota
	ActionDig
	ActionBridge
)

var actionNames = []struct {
	flag ActionSet
	name string
}{
	{ActionWalk, "walk"},
	{ActionDig, "dig"},
	{ActionBridge, "bridge"},
}

// Has reports whether every flag in f is set.
func (a ActionSet) Has(f ActionSet) bool { return f != 0 && a&f == f }

// With returns a copy with f set.
func (a ActionSet) With(f ActionSet) ActionSet { return a | f }

// Without returns a copy with f cleared.
func (a ActionSet) Without(f ActionSet) ActionSet { return a &^ f }

// Toggle returns a copy with f flipped.
func (a ActionSet) Toggle(f ActionSet) ActionSet { return a ^ f }

func (a ActionSet) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	for _, an := range actionNames {
		if a&an.flag != 0 {
			parts = append(parts, an.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseActionSet parses names separated by '|', ',' or whitespace,
// e.g. "walk|dig". "none" and the empty string yield an empty set.
func ParseActionSet(s string) (ActionSet, error) {
	var out ActionSet
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '|' || r == ',' || r == ' ' || r == '\t'
	})
	for _, f := range fields {
		if f == "none" {
			continue
		}
		found := false
		for _, an := range actionNames {
			if an.name == f {
				out |= an.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown action %q", f)
		}
	}
	return out, nil
}

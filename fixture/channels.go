package fixture

import (
	"sort"
	"strings"
)

// Role is the semantic meaning of one fixture channel, resolved once when
// the profile loads so scene emission never re-matches channel names.
type Role int

const (
	RoleUnknown Role = iota
	RoleRed
	RoleGreen
	RoleBlue
	RoleLaser
	RoleMotor
	RoleStrobe
	RoleUV
	RoleWhite
	RoleReserved // control channel, pinned to 0
)

// Channel is one resolved fixture channel.
type Channel struct {
	Name   string
	Offset int
	Role   Role
	Laser  int // laser slot 0-3, valid when Role == RoleLaser
}

// ChannelValues is the semantic value set of one scene, before it is
// mapped onto a concrete fixture's offsets.
type ChannelValues struct {
	RGB    RGB
	Motor  uint8
	Lasers [4]uint8
	Strobe uint8
	UV     uint8
	White  uint8
}

// ChannelValue is a concrete (offset, value) pair for one fixture.
type ChannelValue struct {
	Offset int
	Value  uint8
}

// ResolveRoles classifies every channel in the map. A 3-entry map of
// exactly red/green/blue is treated as a simple RGB fixture.
func (f *Fixture) ResolveRoles() {
	_, r := f.ChannelMap["red"]
	_, g := f.ChannelMap["green"]
	_, b := f.ChannelMap["blue"]
	f.simpleRGB = len(f.ChannelMap) == 3 && r && g && b

	f.channels = f.channels[:0]
	laserSlot := 0
	names := make([]string, 0, len(f.ChannelMap))
	for name := range f.ChannelMap {
		names = append(names, name)
	}
	// Walk by offset so laser slots without an explicit number are
	// assigned in physical order.
	sort.Slice(names, func(i, j int) bool {
		return f.ChannelMap[names[i]] < f.ChannelMap[names[j]]
	})

	for _, name := range names {
		ch := Channel{Name: name, Offset: f.ChannelMap[name]}
		ch.Role, ch.Laser = classify(name, &laserSlot)
		f.channels = append(f.channels, ch)
	}
}

func classify(name string, laserSlot *int) (Role, int) {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "reserved"), strings.Contains(n, "control"),
		strings.Contains(n, "special"):
		return RoleReserved, 0
	case strings.Contains(n, "laser"):
		slot := laserDigit(n)
		if slot < 0 {
			slot = *laserSlot
		}
		if slot > 3 {
			slot = 3
		}
		*laserSlot++
		return RoleLaser, slot
	case strings.Contains(n, "motor"):
		return RoleMotor, 0
	case strings.Contains(n, "strobe"):
		return RoleStrobe, 0
	case strings.Contains(n, "uv"), strings.Contains(n, "violet"):
		return RoleUV, 0
	case strings.Contains(n, "white"):
		return RoleWhite, 0
	case strings.Contains(n, "red"):
		return RoleRed, 0
	case strings.Contains(n, "green"):
		return RoleGreen, 0
	case strings.Contains(n, "blue"):
		return RoleBlue, 0
	}
	return RoleUnknown, 0
}

// laserDigit pulls a 1-indexed laser number off names like "laser-2",
// returning the 0-based slot, or -1 if the name carries no number.
func laserDigit(name string) int {
	for i := len(name) - 1; i >= 0; i-- {
		c := name[i]
		if c >= '1' && c <= '9' {
			return int(c - '1')
		}
		if c != '-' && c != '_' && c != ' ' {
			break
		}
	}
	return -1
}

// Values maps semantic scene values onto this fixture's physical offsets.
// Simple RGB fixtures get a direct color passthrough; richer maps get one
// value per resolved channel, with unknown channels held at 0.
func (f *Fixture) Values(v ChannelValues) []ChannelValue {
	if f.simpleRGB {
		return []ChannelValue{
			{Offset: f.ChannelMap["red"], Value: v.RGB[0]},
			{Offset: f.ChannelMap["green"], Value: v.RGB[1]},
			{Offset: f.ChannelMap["blue"], Value: v.RGB[2]},
		}
	}

	out := make([]ChannelValue, 0, len(f.channels))
	for _, ch := range f.channels {
		val := uint8(0)
		switch ch.Role {
		case RoleRed:
			val = v.RGB[0]
		case RoleGreen:
			val = v.RGB[1]
		case RoleBlue:
			val = v.RGB[2]
		case RoleLaser:
			val = v.Lasers[ch.Laser]
		case RoleMotor:
			val = v.Motor
		case RoleStrobe:
			val = v.Strobe
		case RoleUV:
			val = v.UV
		case RoleWhite:
			val = v.White
		}
		out = append(out, ChannelValue{Offset: ch.Offset, Value: val})
	}
	return out
}

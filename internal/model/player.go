package model

import "strconv"

// Player identifies a participant that can be the originator of a death.
// Bots share the type with Human=false.
type Player struct {
	ID       uint64
	Name     string
	Human    bool
	Sleeping bool
	Location Location
}

// DisplayName returns the player name, or the numeric id when the name is blank.
func (p *Player) DisplayName() string {
	if p == nil {
		return "Unknown"
	}
	if p.Name != "" {
		return p.Name
	}
	return strconv.FormatUint(p.ID, 10)
}

// IsAwakeHuman reports whether p is a real, awake player.
func (p *Player) IsAwakeHuman() bool {
	return p != nil && p.Human && !p.Sleeping
}

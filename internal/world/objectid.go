package world

import (
	"sync/atomic"

	"github.com/udisondev/encounters/internal/model"
)

// IDGenerator generates unique entity ids for all world objects.
//
// ID ranges (convention):
//
//	0                          : invalid / none
//	0x0000_0001 - 0x0FFF_FFFF  : static geometry (colliders, structures)
//	0x1000_0000 - 0x1FFF_FFFF  : NPCs
//	0x2000_0000 - ...          : dynamic entities (crates, vehicles, markers, fire, smoke)
type IDGenerator struct {
	nextStatic  atomic.Uint64
	nextNpc     atomic.Uint64
	nextDynamic atomic.Uint64
}

const (
	staticBase  = 0
	npcBase     = 0x1000_0000
	dynamicBase = 0x2000_0000
)

// NewIDGenerator creates a new ID generator.
func NewIDGenerator() *IDGenerator {
	gen := &IDGenerator{}
	gen.nextStatic.Store(staticBase)
	gen.nextNpc.Store(npcBase)
	gen.nextDynamic.Store(dynamicBase)
	return gen
}

// NextStatic generates next static geometry id.
func (g *IDGenerator) NextStatic() model.EntityID {
	return model.EntityID(g.nextStatic.Add(1))
}

// NextNpc generates next NPC id.
func (g *IDGenerator) NextNpc() model.EntityID {
	return model.EntityID(g.nextNpc.Add(1))
}

// NextDynamic generates next dynamic entity id.
func (g *IDGenerator) NextDynamic() model.EntityID {
	return model.EntityID(g.nextDynamic.Add(1))
}

// IsNpcID reports whether id lies in the NPC range.
func IsNpcID(id model.EntityID) bool {
	return id > npcBase && id < dynamicBase
}

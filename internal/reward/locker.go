// Package reward hands finished objectives to winners and rolls crate loot.
package reward

import (
	"log/slog"

	"github.com/udisondev/encounters/internal/model"
)

// CrateLocks restricts crates to one player.
type CrateLocks interface {
	LockCrate(id model.EntityID, ownerID uint64) bool
}

// Locker implements the objective hand-off.
type Locker struct {
	crates CrateLocks
}

// NewLocker creates a locker over the host crates.
func NewLocker(crates CrateLocks) *Locker {
	return &Locker{crates: crates}
}

// LockObjectiveToPlayer locks the objective to a human winner.
// Bots and unknown winners leave the objective open.
func (l *Locker) LockObjectiveToPlayer(objective model.EntityID, player *model.Player) {
	if objective == 0 || !player.IsAwakeHuman() {
		return
	}
	if !l.crates.LockCrate(objective, player.ID) {
		slog.Warn("objective lock failed", "objective", objective, "player", player.ID)
		return
	}
	slog.Info("objective locked to player", "objective", objective, "player", player.DisplayName())
}

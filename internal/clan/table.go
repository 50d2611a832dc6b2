// Package clan keeps the clan tag registry used to decorate winner names.
package clan

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/udisondev/encounters/internal/config"
)

// Tag limits.
const (
	MinTagLen = 1
	MaxTagLen = 8
)

// Table errors.
var (
	ErrTagInvalid = errors.New("invalid clan tag")
	ErrTagTaken   = errors.New("clan tag already taken")
)

// Table maps players to clan tags.
// Thread-safe: protected by RWMutex.
type Table struct {
	mu sync.RWMutex

	// Member id -> tag.
	members map[uint64]string

	// Lowercase tag -> display tag.
	tags map[string]string
}

// NewTable creates a new clan table.
func NewTable() *Table {
	return &Table{
		members: make(map[uint64]string, 128),
		tags:    make(map[string]string, 32),
	}
}

// Load registers clans from the world configuration.
func (t *Table) Load(defs []config.ClanDef) error {
	for _, d := range defs {
		if err := t.Create(d.Tag); err != nil {
			return fmt.Errorf("load clan %q: %w", d.Tag, err)
		}
		for _, id := range d.Members {
			t.Join(d.Tag, id)
		}
	}
	slog.Info("clan table loaded", "clans", len(defs))
	return nil
}

// Create registers a tag. Tags are unique case-insensitively.
func (t *Table) Create(tag string) error {
	tag = strings.TrimSpace(tag)
	if n := len([]rune(tag)); n < MinTagLen || n > MaxTagLen {
		return fmt.Errorf("%w: %q", ErrTagInvalid, tag)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := strings.ToLower(tag)
	if _, ok := t.tags[key]; ok {
		return ErrTagTaken
	}
	t.tags[key] = tag
	return nil
}

// Join puts a player into the clan with the given tag, leaving any previous clan.
// Unknown tags are ignored.
func (t *Table) Join(tag string, playerID uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	display, ok := t.tags[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return false
	}
	t.members[playerID] = display
	return true
}

// Leave removes a player from their clan.
func (t *Table) Leave(playerID uint64) {
	t.mu.Lock()
	delete(t.members, playerID)
	t.mu.Unlock()
}

// ClanTag returns the tag of the player's clan.
func (t *Table) ClanTag(playerID uint64) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tag, ok := t.members[playerID]
	return tag, ok
}

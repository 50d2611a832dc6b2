package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/encounter"
	"github.com/udisondev/encounters/internal/model"
)

// maxCandidateTries bounds how many queued spawn points Start inspects.
const maxCandidateTries = 3

// SpawnPoints hands out validated spawn points. Zero means none available.
type SpawnPoints interface {
	Next() model.Location
}

// Submitter runs fn on the encounter loop goroutine.
type Submitter interface {
	Submit(fn func(*encounter.Engine)) bool
}

// Drops starts free-placement crate encounters.
type Drops struct {
	engine *encounter.Engine
	points SpawnPoints
	npcs   Readiness
	events []config.CrateEvent
	rng    *rand.Rand

	disabled bool
}

// NewDrops creates the drop trigger. rng may be nil for a random seed.
func NewDrops(engine *encounter.Engine, points SpawnPoints, npcs Readiness, events []config.CrateEvent, rng *rand.Rand) *Drops {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	cp := make([]config.CrateEvent, len(events))
	for i, ev := range events {
		cp[i] = ev.Clone()
	}
	return &Drops{
		engine: engine,
		points: points,
		npcs:   npcs,
		events: cp,
		rng:    rng,
	}
}

// Names returns the configured event names.
func (d *Drops) Names() []string {
	out := make([]string, len(d.events))
	for i, ev := range d.events {
		out[i] = ev.Name
	}
	return out
}

// Disabled reports whether drops switched themselves off after the guard
// spawner became unavailable.
func (d *Drops) Disabled() bool { return d.disabled }

// lookup finds an event by name (case-insensitive); blank picks a random one.
func (d *Drops) lookup(name string) (config.CrateEvent, error) {
	if len(d.events) == 0 {
		return config.CrateEvent{}, fmt.Errorf("no crate events configured: %w", encounter.ErrEventNotFound)
	}
	if strings.TrimSpace(name) == "" {
		return d.events[d.rng.IntN(len(d.events))], nil
	}
	for _, ev := range d.events {
		if strings.EqualFold(ev.Name, name) {
			return ev, nil
		}
	}
	return config.CrateEvent{}, fmt.Errorf("crate event %q: %w", name, encounter.ErrEventNotFound)
}

func (d *Drops) checkNpcs() error {
	if !d.npcs.Ready() {
		if !d.disabled {
			slog.Warn("npc spawn service unavailable, disabling crate drops")
		}
		d.disabled = true
		return encounter.ErrDependencyUnavailable
	}
	if d.disabled {
		slog.Info("npc spawn service available again, crate drops enabled")
		d.disabled = false
	}
	return nil
}

// Start launches the named event (random when blank) at the next spawn point.
func (d *Drops) Start(name string) (*encounter.Instance, error) {
	ev, err := d.lookup(name)
	if err != nil {
		return nil, err
	}
	if err := d.checkNpcs(); err != nil {
		return nil, fmt.Errorf("start %q: %w", ev.Name, err)
	}

	for range maxCandidateTries {
		pos := d.points.Next()
		if pos.IsZero() {
			break
		}
		if d.engine.HasIntersecting(pos) {
			slog.Debug("spawn point intersects an encounter, skipped", "pos", pos)
			continue
		}
		return d.engine.RegisterTrigger(pos, encounter.DropDefinition(ev))
	}

	slog.Warn("no spawn point available for crate event", "name", ev.Name)
	return nil, fmt.Errorf("start %q: %w", ev.Name, encounter.ErrSpawnPointExhausted)
}

// StartAt launches the named event at pos.
func (d *Drops) StartAt(name string, pos model.Location) (*encounter.Instance, error) {
	ev, err := d.lookup(name)
	if err != nil {
		return nil, err
	}
	if pos.IsZero() {
		return nil, fmt.Errorf("start %q: %w", ev.Name, encounter.ErrPositionInvalid)
	}
	if d.engine.HasIntersecting(pos) {
		return nil, fmt.Errorf("start %q at %s: %w", ev.Name, pos, encounter.ErrIntersecting)
	}
	if err := d.checkNpcs(); err != nil {
		return nil, fmt.Errorf("start %q: %w", ev.Name, err)
	}
	return d.engine.RegisterTrigger(pos, encounter.DropDefinition(ev))
}

// Stop ends every running crate encounter. Returns how many were stopped.
func (d *Drops) Stop() int {
	n := 0
	for _, inst := range d.engine.Active() {
		if inst.Kind() != encounter.KindDrop {
			continue
		}
		d.engine.ForceEnd(inst)
		n++
	}
	if n > 0 {
		slog.Info("crate encounters stopped", "count", n)
	}
	return n
}

// RunAutoStart starts a random crate event every interval until ctx is canceled.
func (d *Drops) RunAutoStart(ctx context.Context, loop Submitter, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("crate auto start enabled", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			ok := loop.Submit(func(*encounter.Engine) {
				d.autoStart()
			})
			if !ok {
				return encounter.ErrLoopStopped
			}
		}
	}
}

func (d *Drops) autoStart() {
	inst, err := d.Start("")
	switch {
	case err == nil:
		slog.Info("crate encounter auto started", "instanceID", inst.ID(), "name", inst.Name(), "anchor", inst.Anchor())
	case errors.Is(err, encounter.ErrDependencyUnavailable):
		// уже залогировано при отключении
	default:
		slog.Warn("crate auto start failed", "error", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/encounters/internal/clan"
	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/db"
	"github.com/udisondev/encounters/internal/encounter"
	"github.com/udisondev/encounters/internal/notify"
	"github.com/udisondev/encounters/internal/npc"
	"github.com/udisondev/encounters/internal/reward"
	"github.com/udisondev/encounters/internal/spawnpoint"
	"github.com/udisondev/encounters/internal/trigger"
	"github.com/udisondev/encounters/internal/world"
	"github.com/udisondev/encounters/internal/zone"
)

const ConfigPath = "config/encounters.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("ENCOUNTERS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadEncounters(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("encounterd starting",
		"log_level", cfg.LogLevel,
		"crate_events", len(cfg.CrateEvents),
		"monument_events", len(cfg.MonumentEvents))

	// Сообщения
	catalog, err := notify.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("loading message catalog: %w", err)
	}
	if err := catalog.Register(); err != nil {
		return fmt.Errorf("registering message catalog: %w", err)
	}
	broadcaster := notify.NewBroadcaster(cfg.Messages, catalog, cfg.Notify.Locale)
	hub := notify.NewHub()
	broadcaster.AddSink(hub)

	// Мир и сервисы
	w := world.New(cfg.World, cfg.Engine.FrameInterval)

	zones := zone.NewManager()
	if err := zones.Load(cfg.World.Zones); err != nil {
		return fmt.Errorf("loading zones: %w", err)
	}
	clans := clan.NewTable()
	if err := clans.Load(cfg.World.Clans); err != nil {
		return fmt.Errorf("loading clans: %w", err)
	}
	npcs := npc.NewService(cfg.Npc, w)

	g, gctx := errgroup.WithContext(ctx)

	// История исходов
	var (
		history encounter.HistoryRecorder
		writer  *db.HistoryWriter
	)
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		version, err := db.RunMigrations(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied", "version", version)

		writer = db.NewHistoryWriter(db.NewHistoryRepository(database.Pool()), cfg.Engine.HistoryQueue)
		history = writer
		g.Go(func() error {
			slog.Info("starting history writer", "queue", cfg.Engine.HistoryQueue)
			// Живёт дольше цикла: ShutdownAll пишет исходы уже после отмены gctx.
			return writer.Run(context.WithoutCancel(gctx))
		})
	}

	opts := encounter.DefaultOptions()
	opts.ThinkInterval = cfg.Engine.ThinkInterval
	opts.IntersectRadius = cfg.Engine.IntersectRadius
	opts.ClanTags = cfg.Messages.EnableClanTag

	engine := encounter.NewEngine(opts, encounter.Deps{
		Npcs:       npcs,
		World:      w,
		Rewards:    reward.NewLocker(w),
		Clans:      clans,
		Notifier:   broadcaster,
		Subscriber: w,
		History:    history,
		Loot:       reward.NewRoller(nil),
	})

	finder := spawnpoint.NewFinder(spawnpoint.OptionsFromConfig(&cfg), w, zones, nil)
	engine.AddStepper(w)
	engine.AddStepper(finder)
	finder.Start()

	monuments := trigger.NewMonuments(engine, w, npcs, cfg.MonumentEvents)
	monuments.Schedule(cfg.Engine.InitializeDelay)
	engine.Scheduler().After(cfg.Engine.InitializeDelay, nil, func() {
		spawnPatrols(w, monuments)
	})
	drops := trigger.NewDrops(engine, finder, npcs, cfg.CrateEvents, nil)

	w.SetHooks(world.Hooks{
		OnDeath:            engine.OnChildEntityTerminated,
		OnVehicleSpawned:   monuments.OnVehicleSpawned,
		OnVehicleDestroyed: monuments.OnVehicleDestroyed,
		CanAccessObjective: engine.CanAccessObjective,
	})

	loop := encounter.NewLoop(engine, cfg.Engine.FrameInterval)

	g.Go(func() error {
		err := loop.Run(gctx)
		if writer != nil {
			writer.Close()
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("encounter loop: %w", err)
		}
		return nil
	})

	if cfg.AutoStart.Enabled {
		g.Go(func() error {
			if err := drops.RunAutoStart(gctx, loop, cfg.AutoStart.Interval); err != nil {
				return fmt.Errorf("auto start: %w", err)
			}
			return nil
		})
	}

	// SIGHUP завершает все события с ящиками
	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-hup:
				loop.Submit(func(*encounter.Engine) {
					broadcaster.Broadcast("ClearEvents")
					drops.Stop()
				})
			}
		}
	})

	if cfg.Notify.Enabled {
		g.Go(func() error {
			slog.Info("starting notification hub", "addr", cfg.Notify.Addr)
			if err := hub.Run(gctx, cfg.Notify.Addr); err != nil {
				return fmt.Errorf("notification hub: %w", err)
			}
			return nil
		})
	}

	slog.Info("encounterd started")

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// spawnPatrols places a patrol vehicle in every monument zone.
func spawnPatrols(w *world.World, monuments *trigger.Monuments) {
	for _, mon := range w.Monuments() {
		pos := mon.Transform.Position
		tuning, ok := monuments.Tuning(pos)
		if !ok {
			continue
		}
		if _, err := w.SpawnVehicle("bradleyapc", pos, tuning.Health, tuning.Crates); err != nil {
			slog.Warn("spawn patrol vehicle", "prefab", mon.Prefab, "error", err)
		}
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

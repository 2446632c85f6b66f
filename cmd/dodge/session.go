package main

import (
	"github.com/charmbracelet/log"

	"github.com/plus3/dodge/internal/config"
	"github.com/plus3/dodge/internal/game"
	"github.com/plus3/dodge/internal/storage"
)

func sessionRecord(mode string, world *game.World) storage.SessionRecord {
	s := world.Session()
	return storage.SessionRecord{
		Mode:      mode,
		Seed:      s.Seed,
		Duration:  s.Elapsed,
		Frames:    s.Frames,
		Spawned:   s.Spawned,
		Despawned: s.Despawned,
		Contacts:  s.Contacts,
		PeakAlive: s.PeakAlive,
		Despawn:   string(world.Config.Enemy.Despawn),
	}
}

// saveSession stores the finished session. Failures are only logged.
func saveSession(logger *log.Logger, cfg config.Config, mode string, world *game.World) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		return
	}
	defer store.Close()

	record := sessionRecord(mode, world)
	id, err := store.SaveSession(record)
	if err != nil {
		logger.Warn("could not save session", "error", err)
		return
	}
	logger.Info("session saved", "id", id, "duration", record.Duration, "spawned", record.Spawned, "contacts", record.Contacts)
}

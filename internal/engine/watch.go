package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	applog "github.com/san-kum/mdconf/internal/log"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a configuration file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	log      zerolog.Logger
}

func NewWatcher(path string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		log:      applog.WithComponent("watch"),
	}
}

// Run loads the file once, then again after every burst of changes, and
// passes each result to fn. fn runs on the watcher goroutine. Run blocks
// until ctx is done.
func (w *Watcher) Run(ctx context.Context, fn func(*Config, error)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	// Watch the directory: editors that save by rename would drop a watch on
	// the file itself.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.log.Info().Str("event", "watch.started").Str("path", w.path).Msg("watching config file")

	fn(Load(w.path))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.log.Info().Str("event", "watch.stopped").Msg("config watcher stopped")
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.log.Debug().Str("event", "watch.changed").Str("op", ev.Op.String()).Msg("config file changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fn(Load(w.path))

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Str("event", "watch.error").Msg("config watcher error")
		}
	}
}

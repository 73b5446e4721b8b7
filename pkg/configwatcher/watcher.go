package configwatcher

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/markvl91/teammates/internal/config"
	"github.com/markvl91/teammates/pkg/logger"
	"go.uber.org/zap"
)

// Watcher reloads the configuration directory on file changes and hands
// the fresh config to the callback. Writes are debounced, editors tend
// to fire several events per save.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	onReload func(*config.Config)
}

func New(dir string, onReload func(*config.Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(absPath); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{dir: dir, watcher: fsw, onReload: onReload}, nil
}

func (w *Watcher) Run() {
	defer w.watcher.Close()

	timer := time.NewTimer(0)
	<-timer.C

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(1 * time.Second)
			}
		case <-timer.C:
			cfg, err := config.LoadConfig(w.dir)
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			w.onReload(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}

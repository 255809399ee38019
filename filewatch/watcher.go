package filewatch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/aguxez/mealfinder/config"
)

// ConfigWatcher reloads the config file whenever it changes on disk
type ConfigWatcher struct {
	path    string
	apply   func(*config.Config)
	watcher *fsnotify.Watcher
	log     *zap.Logger
}

// NewConfigWatcher watches the directory holding path so that editors which
// replace the file by rename are still noticed.
func NewConfigWatcher(path string, apply func(*config.Config), log *zap.Logger) (*ConfigWatcher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	return &ConfigWatcher{path: filepath.Clean(path), apply: apply, watcher: w, log: log}, nil
}

func (cw *ConfigWatcher) Watch() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				cw.log.Info("config file changed", zap.String("path", event.Name))
				cw.HandleFileChange()
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Error("watching config", zap.Error(err))
		}
	}
}

// HandleFileChange re-reads the config and applies it. A bad file is logged
// and the running config stays in place.
func (cw *ConfigWatcher) HandleFileChange() {
	cfg, err := config.Load(cw.path)
	if err != nil {
		cw.log.Error("reloading config", zap.String("path", cw.path), zap.Error(err))
		return
	}
	cw.apply(cfg)
}

func (cw *ConfigWatcher) Close() error {
	return cw.watcher.Close()
}

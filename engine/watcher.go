package engine

import (
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/vkpick/engine/core"
)

// ConfigWatcher reloads the configuration file when it changes on disk and
// applies the settings that can change at runtime. Only the log level is
// hot-applied; renderer settings need a restart.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve '%s'", path)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create config watcher")
	}
	// Editors often replace the file, so watch the directory.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "failed to watch '%s'", filepath.Dir(abs))
	}
	return &ConfigWatcher{
		path:    abs,
		watcher: w,
		done:    make(chan struct{}),
	}, nil
}

func (cw *ConfigWatcher) Start() {
	cw.wg.Add(1)
	go func() {
		defer cw.wg.Done()
		for {
			select {
			case event, ok := <-cw.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != cw.path {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					cw.reload()
				}
			case err, ok := <-cw.watcher.Errors:
				if !ok {
					return
				}
				core.LogWarn("config watcher: %v", err)
			case <-cw.done:
				return
			}
		}
	}()
}

func (cw *ConfigWatcher) reload() {
	config, err := LoadConfig(cw.path)
	if err != nil {
		core.LogWarn("Ignoring config change: %v", err)
		return
	}
	core.SetLogLevel(config.LogLevel)
	core.LogInfo("Config reloaded, log level is now '%s'.", config.LogLevel)
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_CONFIG_RELOADED, Data: config.LogLevel})
}

func (cw *ConfigWatcher) Close() error {
	close(cw.done)
	err := cw.watcher.Close()
	cw.wg.Wait()
	return err
}

package systems

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/naiad/engine/core"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

type waterConfigFile struct {
	Water metadata.WaterConfig `toml:"water"`
}

/**
 * @brief Loads the water configuration from a TOML file. Missing keys
 * keep their defaults; numeric values are clamped into range and an
 * unrecognized debug mode rejects the whole file.
 */
func LoadWaterConfig(path string) (*metadata.WaterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read water configuration '%s': %w", path, err)
	}
	file := waterConfigFile{Water: *metadata.DefaultWaterConfig()}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse water configuration '%s': %w", path, err)
	}
	cfg := file.Water
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid water configuration '%s': %w", path, err)
	}
	return &cfg, nil
}

/**
 * @brief Watches the water configuration file and fires
 * EVENT_CODE_WATER_CONFIG_CHANGED with the reloaded configuration on
 * every successful reload. A reload that fails to parse or validate is
 * logged and dropped; the previous configuration stays active.
 */
type WaterConfigWatcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	done     chan struct{}
}

func WatchWaterConfig(path string) (*WaterConfigWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files on save, which would
	// otherwise drop a watch on the file itself.
	if err := fsWatch.Add(filepath.Dir(path)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &WaterConfigWatcher{
		path:     path,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}
	go w.start()
	return w, nil
}

func (w *WaterConfigWatcher) start() {
	for {
		select {
		case event, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("water configuration watcher error: %s", err.Error())
		case <-w.done:
			return
		}
	}
}

func (w *WaterConfigWatcher) reload() {
	cfg, err := LoadWaterConfig(w.path)
	if err != nil {
		core.LogError("water configuration reload failed, keeping previous values: %s", err.Error())
		return
	}
	core.LogInfo("water configuration '%s' reloaded", w.path)
	core.EventFire(core.EVENT_CODE_WATER_CONFIG_CHANGED, w, core.EventContext{
		Type: core.EVENT_CODE_WATER_CONFIG_CHANGED,
		Data: cfg,
	})
}

func (w *WaterConfigWatcher) Close() error {
	close(w.done)
	return w.fsnotify.Close()
}

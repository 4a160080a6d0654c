package assets

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/patchview/engine/assets/loaders"
	"github.com/spaghettifunk/patchview/engine/core"
	"github.com/spaghettifunk/patchview/engine/resources"
)

var ErrClosed = errors.New("asset manager already shut down")

// reloadDelay coalesces the burst of writes editors produce on save.
const reloadDelay = 100 * time.Millisecond

type AssetInfo struct {
	Path       string
	Kind       loaders.Kind
	LastLoaded time.Time
}

// ReloadEvent reports a watched model that changed on disk. On failure Err is
// set and Model is nil; the previous model stays valid.
type ReloadEvent struct {
	Path  string
	Model *resources.Model
	Err   error
}

type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[loaders.Kind]Loader
	watched map[string]bool
	timers  map[string]*time.Timer

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	events   chan ReloadEvent
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[loaders.Kind]Loader),
		watched:  make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		fsnotify: fsWatch,
		events:   make(chan ReloadEvent, 8),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	am.registerLoader(loaders.KindBezier, BezierLoader{})
	am.registerLoader(loaders.KindWavefront, WavefrontLoader{})

	go am.start()
	return am, nil
}

// Register loaders for each model kind
func (am *AssetManager) registerLoader(kind loaders.Kind, loader Loader) {
	am.loaders[kind] = loader
}

// Load reads a model file, sniffing its kind from the content.
func (am *AssetManager) Load(path string) (*resources.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	kind, err := loaders.DetectKind(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	loader, ok := am.loaders[kind]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %v", path, loaders.ErrUnsupported, kind)
	}
	model, err := loader.Load(path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, Kind: kind, LastLoaded: time.Now()}
	am.mutex.Unlock()

	core.LogInfo("loaded %s", model)
	return model, nil
}

// Info returns what is known about a previously loaded path.
func (am *AssetManager) Info(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[path]
	return info, ok
}

// Watch reloads path whenever it changes and reports the result on Events.
// The containing directory is watched so that editors which replace the file
// on save are handled.
func (am *AssetManager) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return ErrClosed
	}
	am.watched[abs] = true
	am.mutex.Unlock()

	if err := am.fsnotify.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	core.LogDebug("watching %s for changes", abs)
	return nil
}

// Events delivers reloads of watched files. It is closed by Shutdown.
func (am *AssetManager) Events() <-chan ReloadEvent {
	return am.events
}

// Shutdown stops watching and closes the Events channel.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	for _, t := range am.timers {
		t.Stop()
	}
	am.mutex.Unlock()

	close(am.done)
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleFileEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("file watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			// Wait for in-flight reloads before closing the channel they send on.
			am.mutex.Lock()
			close(am.events)
			am.mutex.Unlock()
			return
		}
	}
}

// Handle the creation or modification of a watched file
func (am *AssetManager) handleFileEvent(e fsnotify.Event) {
	name := filepath.Clean(e.Name)

	am.mutex.Lock()
	defer am.mutex.Unlock()
	if !am.watched[name] || am.isClosed {
		return
	}

	switch {
	case e.Op&(fsnotify.Create|fsnotify.Write) != 0:
		if t, ok := am.timers[name]; ok {
			t.Reset(reloadDelay)
			return
		}
		am.timers[name] = time.AfterFunc(reloadDelay, func() { am.reload(name) })
	case e.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		core.LogWarn("%s was removed, keeping the last loaded model", name)
	}
}

func (am *AssetManager) reload(path string) {
	model, err := am.Load(path)
	if err != nil {
		core.LogError("reloading %s: %s", path, err)
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.timers, path)
	if am.isClosed {
		return
	}
	select {
	case am.events <- ReloadEvent{Path: path, Model: model, Err: err}:
	default:
		core.LogWarn("reload of %s dropped, consumer is behind", path)
	}
}

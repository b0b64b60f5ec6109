package prefabs

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/milk9111/gridhunt/ai"
)

const debounce = 100 * time.Millisecond

// Watcher reports prefab and script files that changed on disk. Bursts of
// events for the same file are collapsed.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes Events and Errors.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Forward resolves every change with Reload and sends the archetypes to out
// until ctx is done or the watcher closes. Sends give up when ctx is done, so
// a reader that stops draining out never pins the goroutine.
func (w *Watcher) Forward(ctx context.Context, out chan<- ai.Archetype) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("prefab watcher", "err", err)
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			archetypes, err := Reload(path)
			if err != nil {
				slog.Warn("prefab reload failed", "path", path, "err", err)
				continue
			}
			for _, a := range archetypes {
				select {
				case out <- a:
				case <-ctx.Done():
					return nil
				}
			}
			slog.Info("prefab reloaded", "path", path, "archetypes", len(archetypes))
		}
	}
}

// Reload resolves a changed file to the archetypes that must be re-applied.
// The tuning file affects every enemy prefab, a script affects the
// archetypes that name it, any other prefab only itself.
func Reload(path string) ([]ai.Archetype, error) {
	switch {
	case isScriptFile(path):
		script := PrefabName(path)
		var out []ai.Archetype
		for _, name := range EnemyPrefabs() {
			a, err := LoadArchetype(name)
			if err != nil {
				return nil, err
			}
			if PrefabName(a.GoalScript) == script {
				out = append(out, a)
			}
		}
		return out, nil
	case filepath.Base(path) == TuningFile:
		var out []ai.Archetype
		for _, name := range EnemyPrefabs() {
			a, err := LoadArchetype(name)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
		return out, nil
	case isSpecFile(path):
		spec, err := LoadEntityBuildSpec(filepath.Base(path))
		if err != nil {
			return nil, err
		}
		if _, ok := spec.Components["ai"]; !ok {
			return nil, nil
		}
		tuning, err := LoadTuning()
		if err != nil {
			return nil, err
		}
		a, err := ArchetypeFromSpec(path, spec, tuning)
		if err != nil {
			return nil, err
		}
		return []ai.Archetype{a}, nil
	}
	return nil, nil
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

package scenes

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind says which kind of file changed.
type ChangeKind int

const (
	SceneChanged ChangeKind = iota
	ScriptChanged
)

// Change is a debounced file change under a watched directory.
type Change struct {
	Path string
	Kind ChangeKind
}

// Name is the scene or script name the change refers to.
func (c Change) Name() string {
	base := filepath.Base(c.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Watcher reports edits to scene files and scripts so a running viewer can
// rebuild its graph.
type Watcher struct {
	watcher  *fsnotify.Watcher
	Changes  chan Change
	Errors   chan error
	debounce time.Duration
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
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
		watcher:  w,
		Changes:  make(chan Change, 16),
		Errors:   make(chan error, 1),
		debounce: 100 * time.Millisecond,
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
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
			kind, ok := changeKind(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, seen := last[event.Name]; seen && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Changes <- Change{Path: event.Name, Kind: kind}:
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

func changeKind(path string) (ChangeKind, bool) {
	switch {
	case isSceneFile(path):
		return SceneChanged, true
	case isScriptFile(path):
		return ScriptChanged, true
	default:
		return 0, false
	}
}

func isSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

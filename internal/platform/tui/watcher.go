package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
)

// reloadDebounce collapses the burst of events editors emit on save.
const reloadDebounce = 100 * time.Millisecond

// WorldChange is delivered after the watched world file changes.
// Err is set when the new contents could not be read or parsed, or when
// the underlying watch failed.
type WorldChange struct {
	Path  string
	World *world.Directory
	Err   error
}

// WorldWatcher re-parses a world file whenever it is written.
type WorldWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	Changes chan WorldChange
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchWorld starts watching the world file at path. The parent directory
// is watched so that editors which replace the file on save are followed.
func WatchWorld(path string) (*WorldWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch: %s: %w", filepath.Dir(abs), err)
	}

	w := &WorldWatcher{
		path:    abs,
		watcher: fw,
		Changes: make(chan WorldChange, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *WorldWatcher) Path() string {
	return w.path
}

// Close stops the watcher and closes its channels.
func (w *WorldWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Changes)
	})
	return err
}

func (w *WorldWatcher) run() {
	defer close(w.done)

	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			now := time.Now()
			if now.Sub(last) < reloadDebounce {
				continue
			}
			last = now

			// Let the writer finish before reading.
			select {
			case <-time.After(reloadDebounce):
			case <-w.closeCh:
				return
			}

			if !w.send(w.load()) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if !w.send(WorldChange{Path: w.path, Err: fmt.Errorf("watch: %w", err)}) {
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

// send delivers change unless the watcher is closing.
func (w *WorldWatcher) send(change WorldChange) bool {
	select {
	case w.Changes <- change:
		return true
	case <-w.closeCh:
		return false
	}
}

func (w *WorldWatcher) load() WorldChange {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return WorldChange{Path: w.path, Err: fmt.Errorf("watch: reading %s: %w", w.path, err)}
	}
	dir, err := world.Parse(string(data))
	if err != nil {
		return WorldChange{Path: w.path, Err: err}
	}
	return WorldChange{Path: w.path, World: dir}
}

// worldChangedMsg carries a WorldChange into the Bubble Tea loop.
type worldChangedMsg WorldChange

// waitForWorld returns a command that blocks until the next world change.
// It returns nil once the watcher is closed.
func waitForWorld(w *WorldWatcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-w.Changes
		if !ok {
			return nil
		}
		return worldChangedMsg(change)
	}
}

package catalog

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the catalog when the backing file changes on disk, so
// edits made outside the app show up in the game list.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch observes the manager's backing file and invokes onChange after
// each successful reload. The watch is placed on the directory rather
// than the file itself so editors that replace the file do not break it.
func Watch(manager *Manager, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create catalog watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(manager.Path())); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch catalog directory: %w", err)
	}

	watcher := &Watcher{watcher: fsWatcher, done: make(chan struct{})}
	target := filepath.Clean(manager.Path())

	go func() {
		defer close(watcher.done)
		for {
			select {
			case event, ok := <-fsWatcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				if err := manager.Reload(); err != nil {
					log.Printf("catalog reload: %v", err)
					continue
				}
				if onChange != nil {
					onChange()
				}
			case err, ok := <-fsWatcher.Errors:
				if !ok {
					return
				}
				log.Printf("catalog watcher: %v", err)
			}
		}
	}()

	return watcher, nil
}

// Close stops watching and waits for the event loop to drain.
func (watcher *Watcher) Close() error {
	err := watcher.watcher.Close()
	<-watcher.done
	return err
}

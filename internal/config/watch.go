package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher перечитывает файл настроек при изменении и отдаёт новые значения
// в канал Updates. Применять их нужно между кадрами.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Updates chan Config
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher следит за каталогом файла: редакторы часто заменяют файл целиком.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    filepath.Clean(path),
		Updates: make(chan Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	// Перечитываем после паузы в событиях: запись файла приходит несколькими событиями.
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				send(w.Errors, err, w.closeCh)
				continue
			}
			slog.Info("config reloaded", "path", w.path)
			send(w.Updates, cfg, w.closeCh)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			send(w.Errors, err, w.closeCh)
		case <-w.closeCh:
			return
		}
	}
}

// send не блокирует: старое непрочитанное значение заменяется новым.
func send[T any](ch chan T, v T, done <-chan struct{}) {
	for {
		select {
		case ch <- v:
			return
		case <-done:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

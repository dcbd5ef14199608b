/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long a burst of file events must settle before the
// file is read.
const DefaultDebounce = 100 * time.Millisecond

// Applier receives the file contents. *propconfig.Config satisfies it.
type Applier interface {
	ApplyJSONString(text string) error
}

// Event reports one attempt to apply the file.
type Event struct {
	Path string
	// Err is nil when the file was applied.
	Err error
	At  time.Time
}

type options struct {
	debounce time.Duration
	callback func(Event)
	initial  bool
}

// Option configures a Watcher.
type Option func(*options)

// WithDebounce sets the settle delay. Zero applies on every event.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithCallback registers fn to be called after every apply attempt.
func WithCallback(fn func(Event)) Option {
	return func(o *options) {
		o.callback = fn
	}
}

// WithInitialApply applies the file once when Run starts, if it exists.
func WithInitialApply() Option {
	return func(o *options) {
		o.initial = true
	}
}

// Watcher re-applies a JSON settings file whenever it is written or replaced.
type Watcher struct {
	cfg  Applier
	path string
	fsw  *fsnotify.Watcher
	opts options
}

// New prepares a Watcher for path. The file's directory is watched so that
// editors that replace the file by renaming are followed.
func New(cfg Applier, path string, opts ...Option) (*Watcher, error) {
	o := options{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{cfg: cfg, path: abs, fsw: fsw, opts: o}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run processes file events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	logger := zerolog.Ctx(ctx).With().Str("file", w.path).Logger()
	logger.Info().Msg("watching settings file")

	if w.opts.initial {
		if _, err := os.Stat(w.path); err == nil {
			w.apply(&logger)
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("stopped watching settings file")
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			logger.Debug().Str("op", ev.Op.String()).Msg("settings file changed")

			if w.opts.debounce <= 0 {
				w.apply(&logger)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.opts.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.apply(&logger)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("file watcher error")
			w.notify(Event{Path: w.path, Err: err, At: time.Now()})
		}
	}
}

func (w *Watcher) apply(logger *zerolog.Logger) {
	data, err := os.ReadFile(w.path)
	if err == nil {
		err = w.cfg.ApplyJSONString(string(data))
	}

	if err != nil {
		logger.Warn().Err(err).Msg("settings file not applied")
	} else {
		logger.Info().Msg("settings file applied")
	}
	w.notify(Event{Path: w.path, Err: err, At: time.Now()})
}

func (w *Watcher) notify(ev Event) {
	if w.opts.callback != nil {
		w.opts.callback(ev)
	}
}

// Watch watches path and applies it to cfg until ctx is done.
func Watch(ctx context.Context, cfg Applier, path string, opts ...Option) error {
	w, err := New(cfg, path, opts...)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

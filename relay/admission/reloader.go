// Copyright 2025 CrossRelay Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package admission

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/crossrelay/crossrelay/pkg/log"
	"github.com/crossrelay/crossrelay/pkg/metrics"
	"github.com/crossrelay/crossrelay/pkg/private/serrors"
)

const reloadDebounce = 500 * time.Millisecond

// ReloaderMetrics are the metrics of the config file watcher. A nil
// counter disables the metric.
type ReloaderMetrics struct {
	// Reloads counts successful filter reloads.
	Reloads metrics.Counter
	// ReloadErrors counts reload attempts that failed. A failed reload
	// keeps the previous policy in place.
	ReloadErrors metrics.Counter
}

// Reloader watches the configuration file and triggers a reload when it
// changes. The reload callback parses the file and swaps the filters
// atomically; if it fails, the previously active filters stay in effect.
type Reloader struct {
	watcher *fsnotify.Watcher
	path    string
	reload  func(context.Context) error
	metrics ReloaderMetrics
	logger  log.Logger
}

// NewReloader creates a watcher for the given config file. The reload
// callback is invoked, debounced, after the file is written or recreated;
// its context carries the reloader's logger, see log.FromCtx.
func NewReloader(path string, reload func(context.Context) error, m ReloaderMetrics,
	logger log.Logger) (*Reloader, error) {

	if logger == nil {
		logger = log.Root()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, serrors.Wrap("creating file watcher", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, serrors.Wrap("watching config file", err, "path", path)
	}
	return &Reloader{
		watcher: watcher,
		path:    path,
		reload:  reload,
		metrics: m,
		logger:  logger,
	}, nil
}

// Run watches for file changes and reloads the filters. It blocks until
// ctx is cancelled or the watcher is closed.
func (r *Reloader) Run(ctx context.Context) error {
	defer log.HandlePanic()
	defer r.watcher.Close()

	ctx = log.CtxWith(ctx, r.logger)

	// Editors and config management tools often produce several write
	// events in quick succession; reload only after they settle.
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() { r.doReload(ctx) })

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("Config file watcher error", "err", err)
		}
	}
}

func (r *Reloader) doReload(ctx context.Context) {
	defer log.HandlePanic()
	if err := r.reload(ctx); err != nil {
		metrics.CounterInc(r.metrics.ReloadErrors)
		r.logger.Error("Filter reload failed, previous policy stays active",
			"path", r.path, "err", err)
		return
	}
	metrics.CounterInc(r.metrics.Reloads)
	r.logger.Info("Filters reloaded", "path", r.path)
}

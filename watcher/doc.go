// Package watcher keeps a configuration in sync with a JSON settings file.
//
// Every write or replacement of the file triggers an atomic apply: a file
// holding an invalid document leaves the configuration as it was and is
// reported through the callback.
//
//	err := watcher.Watch(ctx, propconfig.Default(), "propconfig.json",
//	    watcher.WithInitialApply(),
//	    watcher.WithCallback(func(ev watcher.Event) { ... }))
package watcher

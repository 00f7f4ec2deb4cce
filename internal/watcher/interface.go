package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is called once new media has settled. Calls never overlap.
type EventHandler func(ctx context.Context) error

package queue

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownJob is returned for a job name with no registered handler.
var ErrUnknownJob = errors.New("no handler registered")

var (
	mu       sync.RWMutex
	handlers = make(map[string]Handler)
)

// Register binds a handler to a job name, replacing any previous one.
func Register(name string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[name] = handler
}

// GetHandler looks up the handler for a job name.
func GetHandler(name string) (Handler, error) {
	mu.RLock()
	defer mu.RUnlock()
	handler, ok := handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return handler, nil
}

// Registered lists the registered job names in order.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Sorted(maps.Keys(handlers))
}

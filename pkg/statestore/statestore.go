package statestore

import (
	"context"
	"sync"
)

// Store persists named JSON snapshots. Each namespace holds one blob, the
// full serialized state of whatever owns it (the cart, the order history),
// rewritten on every mutation and read back once at startup.
//
// Subscribe registers a callback fired after a successful Save or Delete of
// the namespace. Notifications are process-local; they exist so sibling
// components can observe mutations without holding a reference to the owner.
type Store interface {
	Load(ctx context.Context, namespace string, dest any) (bool, error)
	Save(ctx context.Context, namespace string, value any) error
	Delete(ctx context.Context, namespace string) error
	Subscribe(namespace string, fn func()) (cancel func())
}

// notifier implements the shared subscription bookkeeping for store
// implementations.
type notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[string]map[int]func()
}

func (n *notifier) subscribe(namespace string, fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.listeners == nil {
		n.listeners = map[string]map[int]func(){}
	}
	if n.listeners[namespace] == nil {
		n.listeners[namespace] = map[int]func(){}
	}
	id := n.nextID
	n.nextID++
	n.listeners[namespace][id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners[namespace], id)
	}
}

func (n *notifier) notify(namespace string) {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.listeners[namespace]))
	for _, fn := range n.listeners[namespace] {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

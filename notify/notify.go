// Package notify provides change notification for settings updates.
//
// The notifier implements an observer pattern keyed by field name.
// Delivery is synchronous: Notify returns after every matching observer has
// run, which keeps the model/widget synchronization protocol single-threaded
// and ordered.
package notify

import (
	"sync"
)

// Change represents a single field mutation.
type Change struct {
	// Field is the name of the changed field.
	Field string

	// OldValue is the previous value (may be nil).
	OldValue any

	// NewValue is the new value.
	NewValue any

	// Source identifies where the change came from (e.g. "model",
	// "widget", "reload").
	Source string
}

// Observer is called when a field changes.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	field    string
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages change subscriptions for one settings model.
type Notifier struct {
	mu sync.RWMutex

	// Global observers that receive all changes
	globalObservers map[uint64]Observer

	// Field-specific observers
	fieldObservers map[string]map[uint64]Observer

	// Next subscription ID
	nextID uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		globalObservers: make(map[uint64]Observer),
		fieldObservers:  make(map[string]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeField registers an observer for changes to a single field.
func (n *Notifier) SubscribeField(field string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.fieldObservers[field] == nil {
		n.fieldObservers[field] = make(map[uint64]Observer)
	}
	n.fieldObservers[field][id] = observer

	return &Subscription{id: id, field: field, notifier: n}
}

// Notify delivers a change to all matching observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()

	observers := make([]Observer, 0, len(n.globalObservers))
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}
	if fieldObs, ok := n.fieldObservers[change.Field]; ok {
		for _, obs := range fieldObs {
			observers = append(observers, obs)
		}
	}

	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(change)
	}
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for field, observers := range n.fieldObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.fieldObservers, field)
		}
	}
}

// Batch collects changes and delivers them as a group, used when a reload
// updates several fields at once.
type Batch struct {
	notifier *Notifier
	changes  []Change
}

// NewBatch creates a new batch for collecting changes.
func (n *Notifier) NewBatch() *Batch {
	return &Batch{notifier: n}
}

// Add adds a change to the batch.
func (b *Batch) Add(change Change) {
	b.changes = append(b.changes, change)
}

// Commit delivers all batched changes in order and clears the batch.
func (b *Batch) Commit() {
	changes := b.changes
	b.changes = nil

	for _, change := range changes {
		b.notifier.Notify(change)
	}
}

// Len returns the number of pending changes.
func (b *Batch) Len() int {
	return len(b.changes)
}

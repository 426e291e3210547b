// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observable provides by-name property change notification.
//
// # Description
//
// A Notifier keeps an ordered list of subscribers and delivers each
// PropertyChanged event to all of them synchronously, before Notify
// returns. Subscribers are called in subscription order.
//
// # Thread Safety
//
// Notifier is not safe for concurrent use. It is meant to be owned by a
// single view-model that is itself driven from one goroutine (a CLI
// command or a bubbletea event loop).
package observable

// Property names a notifying field.
type Property string

// PropertyChanged is delivered to subscribers when a property changes.
type PropertyChanged struct {
	// Source identifies the emitter (usually the view-model style).
	Source string

	// Property is the name of the field that changed.
	Property Property
}

// Handler receives property change events.
type Handler func(PropertyChanged)

// Notifier broadcasts PropertyChanged events to its subscribers.
//
// The zero value is ready to use.
type Notifier struct {
	source   string
	handlers []subscription
	nextID   int
	hook     func(Property)
}

type subscription struct {
	id      int
	handler Handler
}

// NewNotifier creates a Notifier whose events carry the given source.
func NewNotifier(source string) *Notifier {
	return &Notifier{source: source}
}

// Source returns the emitter name stamped on every event.
func (n *Notifier) Source() string {
	return n.source
}

// Subscribe registers h and returns a function that removes it again.
//
// Calling the returned function more than once is a no-op. A nil handler
// is ignored.
func (n *Notifier) Subscribe(h Handler) (unsubscribe func()) {
	if h == nil {
		return func() {}
	}
	n.nextID++
	id := n.nextID
	n.handlers = append(n.handlers, subscription{id: id, handler: h})

	return func() {
		for i, s := range n.handlers {
			if s.id == id {
				n.handlers = append(n.handlers[:i:i], n.handlers[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of registered handlers.
func (n *Notifier) Subscribers() int {
	return len(n.handlers)
}

// OnNotify installs a hook called once per emitted event, before the
// subscribers. Used for telemetry; pass nil to remove it.
func (n *Notifier) OnNotify(hook func(Property)) {
	n.hook = hook
}

// Notify emits a PropertyChanged event for each name, in order.
func (n *Notifier) Notify(names ...Property) {
	for _, name := range names {
		if n.hook != nil {
			n.hook(name)
		}
		if len(n.handlers) == 0 {
			continue
		}
		ev := PropertyChanged{Source: n.source, Property: name}
		// Handlers may unsubscribe while being called.
		snapshot := n.handlers
		for _, s := range snapshot {
			s.handler(ev)
		}
	}
}

// Set stores value into *field and reports whether it changed.
//
// When the value differs, name is emitted. Dependent notifications are
// the caller's job; Set only handles the primary field.
func Set[T comparable](n *Notifier, field *T, value T, name Property) bool {
	if *field == value {
		return false
	}
	*field = value
	n.Notify(name)
	return true
}

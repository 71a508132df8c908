// Package events provides typed publish/subscribe helpers used to observe a code generation session.
package events

import (
	"reflect"
	"sync"
)

// EventHandler is a callback invoked with published event data. Returning an error stops the publication.
type EventHandler[T any] func(T) error

// globalHandlers maps an event data type onto the handlers subscribed to every emitter of that type.
var globalHandlers = make(map[reflect.Type][]any)

// globalHandlersLock guards globalHandlers.
var globalHandlersLock sync.RWMutex

// SubscribeAny adds a handler which is invoked whenever any EventEmitter publishes an event of type T.
// Note: A handler subscribed here remains for the lifetime of the program.
func SubscribeAny[T any](handler EventHandler[T]) {
	eventType := reflect.TypeOf((*T)(nil)).Elem()

	globalHandlersLock.Lock()
	defer globalHandlersLock.Unlock()
	globalHandlers[eventType] = append(globalHandlers[eventType], handler)
}

// EventEmitter publishes events of type T to its own subscribers, then to every global subscriber of T. The zero
// value is ready to use.
type EventEmitter[T any] struct {
	handlers []EventHandler[T]
}

// Subscribe adds a handler which is invoked whenever this emitter publishes an event.
func (e *EventEmitter[T]) Subscribe(handler EventHandler[T]) {
	e.handlers = append(e.handlers, handler)
}

// Publish invokes every handler with the event, in subscription order. The first error returned by a handler is
// returned and the remaining handlers are skipped.
func (e *EventEmitter[T]) Publish(event T) error {
	for _, handler := range e.handlers {
		if err := handler(event); err != nil {
			return err
		}
	}

	globalHandlersLock.RLock()
	global := globalHandlers[reflect.TypeOf((*T)(nil)).Elem()]
	globalHandlersLock.RUnlock()

	for _, handler := range global {
		if err := handler.(EventHandler[T])(event); err != nil {
			return err
		}
	}
	return nil
}

// Copyright 2025 Observekit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package observable provides an in-process publish-subscribe registry for
// decoupled communication between components. Callers register handlers on
// named events and later trigger an event by name, running every registered
// handler in registration order with the caller-supplied arguments.
package observable

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Observable maps event names to ordered handler sequences. An event key
// exists only while it has at least one handler; removal of the last handler
// prunes the key.
//
// The internal map is guarded by a mutex so registration and triggering may
// happen from any goroutine. Triggering snapshots the handler sequence before
// dispatching, so handlers that mutate the registry for the event they are
// currently handling never change the dispatch set of the in-flight trigger
// call, only that of the next one.
type Observable struct {
	mu     sync.RWMutex
	events map[string][]*Handler
	log    zerolog.Logger
}

// Option configures an Observable.
type Option func(*Observable)

// WithLogger sets the logger used for debug output and for reporting
// failures of fire-and-forget async handlers. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Observable) {
		o.log = logger
	}
}

// New creates an empty Observable.
func New(opts ...Option) *Observable {
	o := &Observable{
		events: make(map[string][]*Handler),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// On appends the given handlers to the event's sequence, creating the event
// on first registration. Registration order is execution order. It never
// fails; registering zero handlers is a no-op.
func (o *Observable) On(event string, handlers ...*Handler) {
	if len(handlers) == 0 {
		return
	}
	o.mu.Lock()
	o.events[event] = append(o.events[event], handlers...)
	o.mu.Unlock()

	o.log.Debug().Str("event", event).Int("count", len(handlers)).Msg("handlers registered")
}

// Registrar returns a function that registers a single handler on the given
// event and passes it through. It covers the use case of preparing a
// registration before the handler exists:
//
//	register := obs.Registrar("ready")
//	...
//	h := register(observable.Func(onReady))
func (o *Observable) Registrar(event string) func(*Handler) *Handler {
	return func(h *Handler) *Handler {
		o.On(event, h)
		return h
	}
}

// Once wraps the supplied handlers in a single self-unregistering wrapper and
// registers it on the event. The wrapper removes itself from the event before
// invoking the wrapped handlers, so each Once registration fires at most once
// no matter how often the event is triggered, including reentrant triggers
// from inside the wrapped handlers themselves.
//
// The wrapper is returned so callers can Off it before it ever fires. It is
// async-capable iff any wrapped handler is. Calling Once with no handlers
// registers nothing and returns nil.
func (o *Observable) Once(event string, handlers ...*Handler) *Handler {
	if len(handlers) == 0 {
		return nil
	}
	w := o.onceWrapper(event, handlers)
	o.On(event, w)
	return w
}

// OnceRegistrar is the registrar form of Once. The returned function wraps
// one handler and registers the wrapper, returning the wrapper.
func (o *Observable) OnceRegistrar(event string) func(*Handler) *Handler {
	return func(h *Handler) *Handler {
		return o.Once(event, h)
	}
}

func (o *Observable) onceWrapper(event string, handlers []*Handler) *Handler {
	async := false
	for _, h := range handlers {
		if h.Async() {
			async = true
			break
		}
	}

	wrapped := append([]*Handler(nil), handlers...)
	var w *Handler
	run := func(ctx context.Context, args []any) error {
		// Removing the wrapper is the claim to run: only the invocation
		// that actually unregisters it proceeds. A failed removal means
		// another invocation won the claim (or the caller already removed
		// the wrapper), so this one must not fire. That keeps the wrapper
		// at-most-once even when fire-and-forget dispatch spawns it from
		// two back-to-back triggers before either goroutine has run.
		if err := o.Off(event, w); err != nil {
			return nil
		}
		for _, h := range wrapped {
			if err := h.invoke(ctx, args); err != nil {
				return err
			}
		}
		return nil
	}

	if async {
		w = AsyncFunc(func(ctx context.Context, args ...any) error {
			return run(ctx, args)
		})
	} else {
		w = Func(func(args ...any) error {
			return run(context.Background(), args)
		})
	}
	return w
}

// Off unregisters handlers from an event.
//
// With no handlers it removes the event and everything registered on it,
// returning an EventNotFoundError if the event has no registrations.
//
// With handlers it processes them one at a time in the order given: if the
// event is (or becomes) unregistered it returns an EventNotFoundError, if the
// handler has no occurrence in the event's sequence it returns a
// HandlerNotFoundError, otherwise it removes every occurrence of that
// handler. A failure partway through leaves the removals already made in
// place; there is no rollback.
//
// Removing the last handler of an event removes the event key itself.
func (o *Observable) Off(event string, handlers ...*Handler) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(handlers) == 0 {
		if _, ok := o.events[event]; !ok {
			return NewEventNotFoundError(event)
		}
		delete(o.events, event)
		o.log.Debug().Str("event", event).Msg("event removed")
		return nil
	}

	for _, h := range handlers {
		seq, ok := o.events[event]
		if !ok {
			return NewEventNotFoundError(event)
		}
		if !contains(seq, h) {
			return NewHandlerNotFoundError(event, h)
		}

		kept := make([]*Handler, 0, len(seq)-1)
		for _, cur := range seq {
			if cur != h {
				kept = append(kept, cur)
			}
		}
		if len(kept) == 0 {
			delete(o.events, event)
		} else {
			o.events[event] = kept
		}
	}
	return nil
}

// Clear unconditionally removes every event and handler.
func (o *Observable) Clear() {
	o.mu.Lock()
	o.events = make(map[string][]*Handler)
	o.mu.Unlock()

	o.log.Debug().Msg("registry cleared")
}

// Handlers returns an ordered snapshot of the event's handler sequence. The
// snapshot is a copy; mutating the registry afterwards does not affect it.
// Unknown events yield an empty slice.
func (o *Observable) Handlers(event string) []*Handler {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]*Handler(nil), o.events[event]...)
}

// AllHandlers returns a snapshot of the whole registry, mapping each event
// name to a copy of its ordered handler sequence.
func (o *Observable) AllHandlers() map[string][]*Handler {
	o.mu.RLock()
	defer o.mu.RUnlock()

	all := make(map[string][]*Handler, len(o.events))
	for event, seq := range o.events {
		all[event] = append([]*Handler(nil), seq...)
	}
	return all
}

// IsRegistered reports whether the handler has at least one occurrence in the
// event's current sequence.
func (o *Observable) IsRegistered(event string, h *Handler) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return contains(o.events[event], h)
}

// TriggerSync triggers all handlers registered on the event with the given
// arguments. It reports whether any handlers were registered at snapshot
// time.
//
// Synchronous handlers run inline in registration order; the first non-nil
// error aborts the remaining dispatch of this call and is returned.
// Async handlers are fire-and-forget: each runs on its own goroutine with ctx
// and the positional arguments, the call does not wait for them, and their
// errors and panics are logged and dropped.
//
// Supplying Fields while the snapshot contains an async handler is a
// programming error; TriggerSync panics with ErrAsyncFields when dispatch
// reaches that handler rather than dropping the named arguments.
func (o *Observable) TriggerSync(ctx context.Context, event string, args ...any) (bool, error) {
	snapshot := o.Handlers(event)
	if len(snapshot) == 0 {
		return false, nil
	}

	hasFields := trailingFields(args)
	for _, h := range snapshot {
		if h.Async() {
			if hasFields {
				panic(ErrAsyncFields)
			}
			o.dispatch(ctx, event, h, args)
			continue
		}
		if err := h.invoke(ctx, args); err != nil {
			return true, err
		}
	}
	return true, nil
}

// TriggerAsync triggers all handlers registered on the event strictly in
// registration order, waiting for each async handler to finish before moving
// on. Synchronous handlers run inline in their registered position. The first
// non-nil error aborts the remaining dispatch and is returned. It reports
// whether any handlers were registered at snapshot time.
//
// There is no timeout: a handler that never returns stalls this call. Cancel
// ctx to give async handlers a chance to bail out.
func (o *Observable) TriggerAsync(ctx context.Context, event string, args ...any) (bool, error) {
	snapshot := o.Handlers(event)
	if len(snapshot) == 0 {
		return false, nil
	}

	for _, h := range snapshot {
		if err := h.invoke(ctx, args); err != nil {
			return true, err
		}
	}
	return true, nil
}

// dispatch runs an async handler on its own goroutine. Failures are logged,
// never propagated; a panicking handler must not take the process down with
// it.
func (o *Observable) dispatch(ctx context.Context, event string, h *Handler, args []any) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				o.log.Error().Str("event", event).Any("panic", r).Msg("async handler panicked")
			}
		}()
		if err := h.invoke(ctx, args); err != nil {
			o.log.Error().Str("event", event).Err(err).Msg("async handler failed")
		}
	}()
}

func contains(seq []*Handler, h *Handler) bool {
	for _, cur := range seq {
		if cur == h {
			return true
		}
	}
	return false
}

// Copyright 2025 Observekit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package observable

import "context"

// A Handler is a callable registered on an Observable. Create one with Func
// or AsyncFunc; the kind is fixed at construction and decides how the
// registry dispatches it (see Observable.TriggerSync and
// Observable.TriggerAsync).
//
// Handlers are compared by identity: the *Handler value returned by the
// constructor is what On, Off and IsRegistered match on. Keep it around if
// you intend to unregister later. Registering the same *Handler twice on one
// event produces two occurrences; Off removes all of them at once.
type Handler struct {
	fn  func(args ...any) error
	afn func(ctx context.Context, args ...any) error
}

// Func wraps a synchronous function as a Handler. Synchronous handlers run
// inline on the triggering goroutine in both trigger modes; a non-nil error
// aborts the remaining dispatch of that trigger call.
//
// Func panics if fn is nil.
func Func(fn func(args ...any) error) *Handler {
	if fn == nil {
		panic("observable: Func called with nil function")
	}
	return &Handler{fn: fn}
}

// AsyncFunc wraps a context-aware function as an asynchronous-capable
// Handler. TriggerSync runs it on its own goroutine without waiting
// (best effort, errors are logged and dropped); TriggerAsync calls it in
// place and waits for it to finish before moving to the next handler.
//
// AsyncFunc panics if fn is nil.
func AsyncFunc(fn func(ctx context.Context, args ...any) error) *Handler {
	if fn == nil {
		panic("observable: AsyncFunc called with nil function")
	}
	return &Handler{afn: fn}
}

// Async reports whether the handler was created with AsyncFunc.
func (h *Handler) Async() bool {
	return h.afn != nil
}

// invoke runs the handler in place. Async handlers receive ctx, synchronous
// ones only the arguments.
func (h *Handler) invoke(ctx context.Context, args []any) error {
	if h.afn != nil {
		return h.afn(ctx, args...)
	}
	return h.fn(args...)
}

// Fields carries named (keyword-style) trigger arguments. Pass a Fields value
// as the final argument to a trigger call; handlers receive it as their final
// positional argument. TriggerSync refuses to forward Fields to an async
// handler and panics with ErrAsyncFields instead of dropping them silently.
type Fields map[string]any

// trailingFields reports whether the last trigger argument is a Fields value.
func trailingFields(args []any) bool {
	if len(args) == 0 {
		return false
	}
	_, ok := args[len(args)-1].(Fields)
	return ok
}

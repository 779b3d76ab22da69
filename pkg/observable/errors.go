// Copyright 2025 Observekit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package observable

import (
	"errors"
	"fmt"
)

// Common errors returned by registry operations.
var (
	// ErrEventNotFound is returned when an operation names an event with no
	// registrations.
	ErrEventNotFound = errors.New("event not found")

	// ErrHandlerNotFound is returned when a handler has no occurrence in the
	// named event's sequence.
	ErrHandlerNotFound = errors.New("handler not found")

	// ErrAsyncFields is the panic value raised by TriggerSync when named
	// arguments (Fields) are supplied while an async handler is registered.
	// Async handlers only receive positional arguments in synchronous mode,
	// so this combination is a caller programming error, not a domain error.
	ErrAsyncFields = errors.New("named arguments cannot be forwarded to an async handler in synchronous mode")
)

// EventNotFoundError wraps ErrEventNotFound with the event name.
type EventNotFoundError struct {
	Event string
}

// Error implements the error interface.
func (e *EventNotFoundError) Error() string {
	return fmt.Sprintf("event %q not found", e.Event)
}

// Unwrap returns the underlying error.
func (e *EventNotFoundError) Unwrap() error {
	return ErrEventNotFound
}

// Is checks if the error matches ErrEventNotFound.
func (e *EventNotFoundError) Is(target error) bool {
	return target == ErrEventNotFound
}

// HandlerNotFoundError wraps ErrHandlerNotFound with the event name and the
// handler that was not found.
type HandlerNotFoundError struct {
	Event   string
	Handler *Handler
}

// Error implements the error interface.
func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("handler not found for event %q", e.Event)
}

// Unwrap returns the underlying error.
func (e *HandlerNotFoundError) Unwrap() error {
	return ErrHandlerNotFound
}

// Is checks if the error matches ErrHandlerNotFound.
func (e *HandlerNotFoundError) Is(target error) bool {
	return target == ErrHandlerNotFound
}

// NewEventNotFoundError creates an EventNotFoundError.
func NewEventNotFoundError(event string) error {
	return &EventNotFoundError{Event: event}
}

// NewHandlerNotFoundError creates a HandlerNotFoundError.
func NewHandlerNotFoundError(event string, handler *Handler) error {
	return &HandlerNotFoundError{Event: event, Handler: handler}
}

// IsEventNotFound checks if an error is or wraps ErrEventNotFound.
func IsEventNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound)
}

// IsHandlerNotFound checks if an error is or wraps ErrHandlerNotFound.
func IsHandlerNotFound(err error) bool {
	return errors.Is(err, ErrHandlerNotFound)
}

package observable_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observekit/observable/pkg/observable"
)

func TestEventNotFoundError(t *testing.T) {
	err := observable.NewEventNotFoundError("startup")

	assert.Equal(t, `event "startup" not found`, err.Error())
	assert.True(t, errors.Is(err, observable.ErrEventNotFound))
	assert.True(t, observable.IsEventNotFound(err))
	assert.False(t, observable.IsHandlerNotFound(err))

	var enf *observable.EventNotFoundError
	require.ErrorAs(t, err, &enf)
	assert.Equal(t, "startup", enf.Event)
}

func TestHandlerNotFoundError(t *testing.T) {
	h := observable.Func(noop)
	err := observable.NewHandlerNotFoundError("startup", h)

	assert.Equal(t, `handler not found for event "startup"`, err.Error())
	assert.True(t, errors.Is(err, observable.ErrHandlerNotFound))
	assert.True(t, observable.IsHandlerNotFound(err))
	assert.False(t, observable.IsEventNotFound(err))

	var hnf *observable.HandlerNotFoundError
	require.ErrorAs(t, err, &hnf)
	assert.Equal(t, "startup", hnf.Event)
	assert.Same(t, h, hnf.Handler)
}

func TestWrappedErrorsStayMatchable(t *testing.T) {
	err := fmt.Errorf("unregister listener: %w", observable.NewEventNotFoundError("x"))

	assert.True(t, observable.IsEventNotFound(err))

	var enf *observable.EventNotFoundError
	require.ErrorAs(t, err, &enf)
	assert.Equal(t, "x", enf.Event)
}

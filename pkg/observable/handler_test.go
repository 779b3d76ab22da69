package observable_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observekit/observable/pkg/observable"
)

func TestFuncNilPanics(t *testing.T) {
	require.Panics(t, func() { observable.Func(nil) })
	require.Panics(t, func() { observable.AsyncFunc(nil) })
}

func TestHandlerAsync(t *testing.T) {
	sync := observable.Func(noop)
	async := observable.AsyncFunc(func(ctx context.Context, args ...any) error { return nil })

	assert.False(t, sync.Async())
	assert.True(t, async.Async())
}

func TestHandlerIdentityIsPerValue(t *testing.T) {
	obs := observable.New()

	// Two handlers built from the same function are distinct registrations.
	h1 := observable.Func(noop)
	h2 := observable.Func(noop)
	obs.On("e", h1, h2)

	require.NoError(t, obs.Off("e", h1))
	assert.False(t, obs.IsRegistered("e", h1))
	assert.True(t, obs.IsRegistered("e", h2))
}

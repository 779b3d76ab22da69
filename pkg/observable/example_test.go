package observable_test

import (
	"context"
	"fmt"

	"github.com/observekit/observable/pkg/observable"
)

func ExampleObservable_TriggerSync() {
	obs := observable.New()

	obs.On("user.created", observable.Func(func(args ...any) error {
		fmt.Println("welcome,", args[0])
		return nil
	}))

	obs.TriggerSync(context.Background(), "user.created", "ada")
	// Output: welcome, ada
}

func ExampleObservable_Once() {
	obs := observable.New()

	obs.Once("ready", observable.Func(func(args ...any) error {
		fmt.Println("fired")
		return nil
	}))

	obs.TriggerSync(context.Background(), "ready")
	obs.TriggerSync(context.Background(), "ready")
	// Output: fired
}

func ExampleObservable_TriggerAsync() {
	obs := observable.New()

	obs.On("job.done",
		observable.AsyncFunc(func(ctx context.Context, args ...any) error {
			fmt.Println("archive", args[0])
			return nil
		}),
		observable.Func(func(args ...any) error {
			fmt.Println("notify", args[0])
			return nil
		}),
	)

	// Async handlers are awaited in place, so output order is deterministic.
	obs.TriggerAsync(context.Background(), "job.done", 42)
	// Output:
	// archive 42
	// notify 42
}

func ExampleObservable_Registrar() {
	obs := observable.New()
	register := obs.Registrar("ping")

	register(observable.Func(func(args ...any) error {
		fmt.Println("pong")
		return nil
	}))

	obs.TriggerSync(context.Background(), "ping")
	// Output: pong
}

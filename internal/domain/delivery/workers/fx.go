package workers

import (
	"context"

	"go.uber.org/fx"
)

// Module provides workers for fx dependency injection
var Module = fx.Module("delivery-workers",
	fx.Provide(NewRetentionSweeper),
	fx.Invoke(registerRetentionSweeperLifecycle),
)

func registerRetentionSweeperLifecycle(lc fx.Lifecycle, sweeper *RetentionSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}

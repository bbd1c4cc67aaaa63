package main

import (
	"context"
	"fmt"

	"linewar-tracker/internal/constants"
	fxmodules "linewar-tracker/internal/fx"

	"go.uber.org/fx"
)

// withApp builds the dependency graph, fills targets, and runs fn between
// start and stop. Only the components targets depend on are constructed.
func withApp(ctx context.Context, fn func(ctx context.Context) error, targets ...any) error {
	app := fx.New(
		fxmodules.Module,
		fx.Populate(targets...),
		fx.NopLogger,
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	startCtx, cancel := context.WithTimeout(ctx, constants.ShutdownTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	runErr := fn(ctx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop application: %w", err)
	}
	return runErr
}

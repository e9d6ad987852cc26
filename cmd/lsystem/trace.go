package main

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	lsystem "github.com/htdebeer/virtual-botanical-laboratory-sub000"
)

const tracerName = "github.com/htdebeer/virtual-botanical-laboratory-sub000/cmd/lsystem"

// derive runs n steps of ls in an lsystem.derive span with one child span
// per step.
func derive(ctx context.Context, ls *lsystem.LSystem, n int, runID string) error {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "lsystem.derive", trace.WithAttributes(
		attribute.String("lsystem.name", ls.Parameters.Name),
		attribute.Int("lsystem.steps", n),
		attribute.String("lsystem.run_id", runID),
	))
	defer span.End()

	for i := 1; i <= n; i++ {
		_, step := tracer.Start(ctx, "lsystem.step", trace.WithAttributes(attribute.Int("lsystem.step", i)))
		current, err := ls.Derive(ctx, 1)
		if err != nil {
			step.RecordError(err)
			step.SetStatus(codes.Error, err.Error())
			step.End()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		step.SetAttributes(attribute.Int("lsystem.modules", current.Count()))
		step.End()
	}

	span.SetAttributes(attribute.Int("lsystem.modules", ls.Current().Count()))
	return nil
}

package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/knit/internal/adapters/telemetry"
)

func TestNoOpTracer_Start(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, newCtx)
	assert.NotNil(t, span)

	span.End()
}

func TestNoOpSpan(t *testing.T) {
	t.Parallel()

	_, span := telemetry.NewNoOpTracer().Start(context.Background(), "test")
	span.SetAttribute("key", "value")
	span.SetAttribute("int", 123)
	span.RecordError(errors.New("test error"))
	span.End()
}

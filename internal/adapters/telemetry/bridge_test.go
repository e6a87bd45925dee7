package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.trai.ch/knit/internal/adapters/telemetry"
	"go.trai.ch/knit/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_ReportsFinishedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	previous := otel.GetTracerProvider()
	tp := telemetry.Install(telemetry.NewBridge(logger))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(previous)
	})

	var infos, warns []string
	logger.EXPECT().Info(gomock.Any()).Do(func(msg string) { infos = append(infos, msg) })
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) { warns = append(warns, msg) })

	tracer := telemetry.NewOTelTracer("test")

	_, ok := tracer.Start(context.Background(), "registry.build")
	ok.End()

	_, failed := tracer.Start(context.Background(), "esbuild")
	failed.RecordError(errors.New("syntax error"))
	failed.End()

	require.Len(t, infos, 1)
	assert.True(t, strings.HasPrefix(infos[0], "trace: registry.build took "), infos[0])
	require.Len(t, warns, 1)
	assert.True(t, strings.HasPrefix(warns[0], "trace: esbuild failed after "), warns[0])
	assert.True(t, strings.HasSuffix(warns[0], ": syntax error"), warns[0])
}

func TestBridge_NilLogger(t *testing.T) {
	previous := otel.GetTracerProvider()
	tp := telemetry.Install(telemetry.NewBridge(nil))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(previous)
	})

	_, span := tp.Tracer("test").Start(context.Background(), "bundle")
	span.End()
}

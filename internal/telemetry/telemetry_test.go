package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imanshadilshan/work-ora/internal/config"
)

func TestNewWithoutEndpointInstallsNoop(t *testing.T) {
	p, err := New(context.Background(), config.Config{
		ServiceName: "work-ora-test",
		Environment: "test",
	}, zap.NewNop())
	require.NoError(t, err)
	require.Nil(t, p.tracerProvider)
	require.Equal(t, "work-ora-test", p.serviceName)
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNilProviderIsSafe(t *testing.T) {
	var p *Provider
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

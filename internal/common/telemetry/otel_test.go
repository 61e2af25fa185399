package telemetry

import (
	"context"
	"testing"

	"orders-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupProvider_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := SetupProvider(context.Background(), config.TelemetryConfig{ServiceName: "orders-api"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupProvider_WithEndpoint(t *testing.T) {
	// the gRPC client connects lazily, so no collector has to be listening
	shutdown, err := SetupProvider(context.Background(), config.TelemetryConfig{
		Endpoint:    "127.0.0.1:4317",
		Insecure:    true,
		ServiceName: "orders-api",
		Environment: "test",
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

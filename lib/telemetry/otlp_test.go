package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestSetupWithoutEndpoint(t *testing.T) {
	tel, err := Setup(context.Background(), "tabroom-cli", Config{})
	require.ErrorIs(t, err, ErrNoEndpoint)
	require.Nil(t, tel.Shutdown(context.Background()))
}

func TestTransport(t *testing.T) {
	kind, endpoint := OtlpConnConfig{GrpcEndpoint: "http://localhost:4317", HttpEndpoint: "http://localhost:4318"}.transport()
	require.Equal(t, "grpc", kind)
	require.Equal(t, "http://localhost:4317", endpoint)

	kind, endpoint = OtlpConnConfig{HttpEndpoint: "http://localhost:4318"}.transport()
	require.Equal(t, "http", kind)
	require.Equal(t, "http://localhost:4318", endpoint)

	require.False(t, OtlpConnConfig{}.configured())
}

func TestResourceAttributes(t *testing.T) {
	r, err := newResource("tabroom-cli", map[string]string{"deployment.environment": "dev"})
	require.Nil(t, err)

	for key, expected := range map[attribute.Key]string{
		"service.name":           "tabroom-cli",
		"service.namespace":      "tabroom",
		"deployment.environment": "dev",
	} {
		value, ok := r.Set().Value(key)
		require.True(t, ok, key)
		require.Equal(t, expected, value.AsString())
	}
}

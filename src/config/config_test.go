package config

import (
	"os"
	"path/filepath"
	"testing"

	"storefront-gateway/src/models"

	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

const validYAML = `
name: "TestGateway"
log_level: "debug"
port: 8090
grpc_host: "127.0.0.1"
grpc_port: 50051
streams:
  - name: "orders"
    kind: "orders"
    endpoint: "ws://localhost:8080/ws/orders"
    token: "tok"
    user_id: "u1"
    topics: ["vip_orders"]
  - name: "inventory"
    kind: "inventory"
    endpoint: "ws://localhost:8080/ws/inventory"
nats:
  servers: ["nats://localhost:4222"]
  client_id: "test-gateway"
  subject_prefix: "storefront"
  format: "json"
pricing:
  tolerance: "0.01"
  stale_after: "5m"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// -----------------------------------------------------------------------------

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validYAML))
	require.NoError(t, err)

	require.Equal(t, "TestGateway", cfg.Name)
	require.Equal(t, 8090, cfg.Port)
	require.Equal(t, 50051, cfg.GRPCPort)
	require.Len(t, cfg.Streams, 2)
	require.Equal(t, "orders", cfg.Streams[0].Kind)
	require.Equal(t, []string{"vip_orders"}, cfg.Streams[0].Topics)
	require.Equal(t, []string{"nats://localhost:4222"}, cfg.NATS.Servers)
	require.Equal(t, "0.01", cfg.Pricing.Tolerance)
	require.Equal(t, "5m", cfg.Pricing.StaleAfter)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config file")
}

func TestNewConfigInvalidYAML(t *testing.T) {
	_, err := NewConfig(writeConfig(t, "name: [unclosed"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config")
}

// -----------------------------------------------------------------------------

func baseConfig() *Config {
	return &Config{MConfig: &models.MConfig{
		Name:     "TestGateway",
		Port:     8090,
		GRPCPort: 50051,
		Streams: []*models.MStreamConfig{
			{Name: "orders", Kind: "orders", Endpoint: "ws://localhost/ws"},
		},
		NATS: models.MNATSConfig{Servers: []string{"nats://localhost:4222"}},
	}}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty name", func(c *Config) { c.Name = "" }, "name cannot be empty"},
		{"privileged port", func(c *Config) { c.Port = 80 }, "invalid application port"},
		{"port too high", func(c *Config) { c.Port = 70000 }, "invalid application port"},
		{"bad grpc port", func(c *Config) { c.GRPCPort = 0 }, "invalid gRPC port"},
		{"no streams", func(c *Config) { c.Streams = nil }, "at least one stream"},
		{"stream without name", func(c *Config) { c.Streams[0].Name = "" }, "name cannot be empty"},
		{"stream without kind", func(c *Config) { c.Streams[0].Kind = "" }, "kind cannot be empty"},
		{"stream without endpoint", func(c *Config) { c.Streams[0].Endpoint = "" }, "endpoint cannot be empty"},
		{
			"duplicate stream names",
			func(c *Config) {
				c.Streams = append(c.Streams, &models.MStreamConfig{
					Name: "orders", Kind: "inventory", Endpoint: "ws://localhost/ws2",
				})
			},
			"duplicate name",
		},
		{"no NATS servers", func(c *Config) { c.NATS.Servers = nil }, "NATS servers list cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// -----------------------------------------------------------------------------

func TestStreamLookups(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validYAML))
	require.NoError(t, err)

	orders := cfg.GetStreamByName("orders")
	require.NotNil(t, orders)
	require.Equal(t, "tok", orders.Token)

	require.Nil(t, cfg.GetStreamByName("missing"))

	byKind := cfg.GetStreamsByKind("inventory")
	require.Len(t, byKind, 1)
	require.Equal(t, "inventory", byKind[0].Name)

	require.Empty(t, cfg.GetStreamsByKind("notifications"))
}

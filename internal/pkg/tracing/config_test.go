package tracing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Enabled:      true,
		Endpoint:     "http://jaeger:4318",
		ServiceName:  DefaultServiceName,
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"выключен", func(c *Config) { *c = Config{} }, nil},
		{"валидный", func(*Config) {}, nil},
		{"нет endpoint", func(c *Config) { c.Endpoint = "" }, ErrTracingEndpointRequired},
		{"endpoint без host", func(c *Config) { c.Endpoint = "jaeger" }, ErrTracingEndpointInvalidFormat},
		{"нет service name", func(c *Config) { c.ServiceName = "" }, ErrTracingServiceNameRequired},
		{"нулевой timeout", func(c *Config) { c.Timeout = 0 }, ErrTracingTimeoutInvalid},
		{"rate больше 1", func(c *Config) { c.SamplingRate = 1.5 }, ErrTracingSamplingRateInvalid},
		{"отрицательный rate", func(c *Config) { c.SamplingRate = -0.1 }, ErrTracingSamplingRateInvalid},
		{"нулевой rate", func(c *Config) { c.SamplingRate = 0 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
	assert.Equal(t, 1.0, cfg.SamplingRate)
	assert.NoError(t, cfg.Validate())
}

package otel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/logging"
)

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), "jobboard", logging.New(&buf, time.UTC))
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"tracing_enabled":false`)
}

func TestInit_UnsupportedProtocol(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")

	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), "jobboard", logging.New(&buf, time.UTC))
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "tracing_init_failed")
	assert.Contains(t, buf.String(), "unsupported OTLP protocol")
}

func TestSampler(t *testing.T) {
	tests := []struct {
		name, arg, want string
	}{
		{"always_on", "", "AlwaysOnSampler"},
		{"always_off", "", "AlwaysOffSampler"},
		{"traceidratio", "0.5", "TraceIDRatioBased{0.5}"},
		// A ratio of 1 is collapsed into AlwaysOn by the SDK.
		{"traceidratio", "oops", "AlwaysOnSampler"},
		{"traceidratio", "-0.2", "AlwaysOnSampler"},
		{"parentbased_traceidratio", "0.25", "ParentBased{root:TraceIDRatioBased{0.25}"},
		{"parentbased_traceidratio", "2", "ParentBased{root:AlwaysOnSampler"},
		{"parentbased_always_off", "", "ParentBased{root:AlwaysOffSampler"},
		{"unknown", "", "ParentBased{root:AlwaysOnSampler"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			assert.Contains(t, sampler(tt.name, tt.arg).Description(), tt.want)
		})
	}
}

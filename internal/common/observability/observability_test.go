package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObservability_StartSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs, err := New("advisor-test",
		WithRegisterer(prometheus.NewRegistry()),
		WithSpanProcessor(recorder),
	)
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	ctx, parent := obs.StartSpan(context.Background(), "POST /chat")
	_, child := obs.StartSpan(ctx, "resolve", attribute.String("service", "student-chat"))
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "resolve", spans[0].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestObservability_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := New("advisor-test", WithRegisterer(reg))
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	obs.RecordRequest(context.Background(), "/chat", 200, 12*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "http_server_requests") {
			found = true
		}
	}
	assert.True(t, found, "request counter exported")
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	ctx, span := obs.StartSpan(context.Background(), "noop")
	assert.NotNil(t, ctx)
	span.End()
	obs.RecordRequest(context.Background(), "/", 200, time.Millisecond)
	assert.NoError(t, obs.Shutdown(context.Background()))
}

package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel"
)

func traced(provider *sdktrace.TracerProvider, fail error) (err error) {
	_, span := provider.Tracer("test").Start(context.Background(), "assign")
	scope := otel.NewScope(span)
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{"party_size": 4, "store.id": "store-1", "pinned": false})

	err = fail

	return err
}

func TestScope_TraceIfError(t *testing.T) {
	tests := []struct {
		name       string
		fail       error
		wantStatus codes.Code
	}{
		{name: "error assigned after defer is recorded", fail: errors.New("no seating available"), wantStatus: codes.Error},
		{name: "success leaves status unset", wantStatus: codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

			_ = traced(provider, tt.fail)

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantStatus, spans[0].Status().Code)
			assert.Len(t, spans[0].Attributes(), 3)
		})
	}
}

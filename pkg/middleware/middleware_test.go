package middleware

import (
	"context"
	"testing"

	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracing(t *testing.T) {
	tracer := mocktracer.New()
	prev := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(tracer)
	defer opentracing.SetGlobalTracer(prev)

	h := server.New()
	h.Use(Tracing())
	var inner opentracing.Span
	h.GET("/posts/:id", func(ctx context.Context, c *app.RequestContext) {
		inner = opentracing.SpanFromContext(ctx)
		c.String(consts.StatusOK, "ok")
	})

	w := ut.PerformRequest(h.Engine, consts.MethodGet, "/posts/1", nil)
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /posts/:id", spans[0].OperationName)
	assert.Equal(t, uint16(consts.StatusOK), spans[0].Tag("http.status_code"))
	assert.NotNil(t, inner)
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	assert.Len(t, rules, 5)
	for _, r := range rules {
		assert.Greater(t, r.Threshold, float64(0))
		assert.Equal(t, flow.Reject, r.ControlBehavior)
	}
}

func TestSentinelBlocks(t *testing.T) {
	if testing.Short() {
		t.Skip("sentinel writes its logs under the home directory")
	}
	require.NoError(t, InitSentinel([]*flow.Rule{{
		Resource:               "test:block",
		TokenCalculateStrategy: flow.Direct,
		ControlBehavior:        flow.Reject,
		Threshold:              1,
		StatIntervalInMs:       10000,
	}}))

	h := server.New()
	h.GET("/limited", Sentinel("test:block"), func(ctx context.Context, c *app.RequestContext) {
		c.String(consts.StatusOK, "ok")
	})

	first := ut.PerformRequest(h.Engine, consts.MethodGet, "/limited", nil)
	second := ut.PerformRequest(h.Engine, consts.MethodGet, "/limited", nil)
	assert.Equal(t, consts.StatusOK, first.Result().StatusCode())
	assert.Equal(t, consts.StatusTooManyRequests, second.Result().StatusCode())
}

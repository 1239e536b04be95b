package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// Tracing 为每个请求开一个 server span 并放进 ctx，gorm 的 opentracing 插件会挂在它下面
func Tracing() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		tracer := opentracing.GlobalTracer()

		carrier := opentracing.TextMapCarrier{}
		c.Request.Header.VisitAll(func(k, v []byte) {
			carrier.Set(string(k), string(v))
		})
		parent, _ := tracer.Extract(opentracing.TextMap, carrier)

		name := c.FullPath()
		if name == "" {
			name = string(c.Request.URI().Path())
		}
		span := tracer.StartSpan(string(c.Method())+" "+name, ext.RPCServerOption(parent))
		ext.HTTPMethod.Set(span, string(c.Method()))
		ext.HTTPUrl.Set(span, string(c.Request.URI().Path()))

		c.Next(opentracing.ContextWithSpan(ctx, span))

		status := c.Response.StatusCode()
		ext.HTTPStatusCode.Set(span, uint16(status))
		if status >= 500 {
			ext.Error.Set(span, true)
		}
		span.Finish()
	}
}

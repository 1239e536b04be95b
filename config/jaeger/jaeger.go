package jaeger

import (
	"io"

	"blog.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	jaegerclient "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitTracer 初始化jaeger并注册为opentracing全局tracer，gorm的opentracing插件和请求中间件都从全局tracer取span
func InitTracer(serviceName string) io.Closer {
	if config.ConfigInfo.Jaeger.AgentAddr == "" {
		hlog.Warn("jaeger agent address is empty, tracing disabled")
		return nopCloser{}
	}
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaegerclient.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: config.ConfigInfo.Jaeger.AgentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaegerclient.StdLogger))
	if err != nil {
		hlog.Errorf("init jaeger tracer failed: %v", err)
		return nopCloser{}
	}
	opentracing.SetGlobalTracer(tracer)
	return closer
}

package middleware

import (
	"context"

	"blog.com/pkg/errno"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// 限流资源名
const (
	ResourceLogin    = "auth:login"
	ResourceRegister = "auth:register"
	ResourceComment  = "comment:create"
	ResourceLike     = "like"
	ResourceDelete   = "user:delete"
)

// DefaultRules 每秒请求数上限，超出直接拒绝
func DefaultRules() []*flow.Rule {
	qps := map[string]float64{
		ResourceLogin:    50,
		ResourceRegister: 20,
		ResourceComment:  100,
		ResourceLike:     200,
		ResourceDelete:   5,
	}
	rules := make([]*flow.Rule, 0, len(qps))
	for res, threshold := range qps {
		rules = append(rules, &flow.Rule{
			Resource:               res,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              threshold,
			StatIntervalInMs:       1000,
		})
	}
	return rules
}

// InitSentinel 初始化 sentinel 并加载流控规则
func InitSentinel(rules []*flow.Rule) error {
	if err := sentinel.InitDefault(); err != nil {
		return err
	}
	_, err := flow.LoadRules(rules)
	return err
}

// Sentinel 以 resource 为资源名做入口流控，被拒绝时返回 429
func Sentinel(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		e, b := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if b != nil {
			hlog.CtxWarnf(ctx, "request to %s blocked by %s", resource, b.BlockType().String())
			Err := errno.TooManyRequestsErr
			c.AbortWithStatusJSON(errno.HTTPStatus(Err.ErrCode), map[string]interface{}{
				"code":    Err.ErrCode,
				"message": Err.ErrMsg,
				"data":    nil,
			})
			return
		}
		defer e.Exit()
		c.Next(ctx)
	}
}

package handlers

import (
	"context"
	"net/url"
	"strconv"

	jwt "blog.com/pkg"
	"blog.com/pkg/constants"
	"blog.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SendResponse pack response
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	c.JSON(errno.HTTPStatus(Err.ErrCode), Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

// SendError 记录错误根因和堆栈后返回
func SendError(ctx context.Context, c *app.RequestContext, err error) {
	Err := errno.ConvertErr(err)
	if Err.ErrCode >= errno.ServiceErrCode && errno.HTTPStatus(Err.ErrCode) >= 500 {
		hlog.CtxErrorf(ctx, "%s %s: %v\n%+v", c.Method(), c.Request.URI().Path(), errors.Cause(err), err)
	} else {
		hlog.CtxInfof(ctx, "%s %s: %v", c.Method(), c.Request.URI().Path(), err)
	}
	SendResponse(c, err, nil)
}

// BindParam 绑定并校验请求参数，失败时已经写好响应
func BindParam(ctx context.Context, c *app.RequestContext, req interface{}) bool {
	if err := c.BindAndValidate(req); err != nil {
		hlog.CtxInfof(ctx, "bind %T failed: %v", req, err)
		SendResponse(c, errno.ParamErr.WithMessage(err.Error()), nil)
		return false
	}
	return true
}

// QueryValues 查询串转成 url.Values，交给 query.Parse 处理 field[gte] 这类过滤条件
func QueryValues(c *app.RequestContext) url.Values {
	values := url.Values{}
	c.QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}

// ParamId 路径参数里的 id
func ParamId(c *app.RequestContext, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errno.ParamErr.WithMessage("Invalid " + name)
	}
	return id, nil
}

// SelfOrAdmin 只能操作自己的账号，管理员除外
func SelfOrAdmin(c *app.RequestContext, userId int64) (*jwt.Identity, error) {
	me, err := jwt.CurrentUser(c)
	if err != nil {
		return nil, err
	}
	if me.Id != userId && !me.HasRole(constants.RoleAdmin) {
		return nil, errno.ForbiddenErr
	}
	return me, nil
}

package errno

import (
	"errors"
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	SuccessCode                = 0
	ServiceErrCode             = 10001
	ParamErrCode               = 10002
	AuthorizationFailedErrCode = 10003
	TokenInvailedErrCode       = 10004
	ForbiddenErrCode           = 10005
	NotFoundErrCode            = 10006
	DuplicateErrCode           = 10007
	UserHasPostsErrCode        = 10008
	CascadeErrCode             = 10009
	PageErrCode                = 10010
	MysqlErrCode               = 10011
	OSSErrCode                 = 10012
	RequestErrCode             = 10013
	TooManyRequestsErrCode     = 10014
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	ServiceErr             = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	ParamErr               = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	AuthorizationFailedErr = NewErrNo(AuthorizationFailedErrCode, "Unauthorized")
	TokenInvailedErr       = NewErrNo(TokenInvailedErrCode, "Token is invalid or expired")
	ForbiddenErr           = NewErrNo(ForbiddenErrCode, "No access")
	NotFoundErr            = NewErrNo(NotFoundErrCode, "Not found")
	DuplicateErr           = NewErrNo(DuplicateErrCode, "Duplicate")
	UserHasPostsErr        = NewErrNo(UserHasPostsErrCode, "Forbidden.User has posts")
	CascadeErr             = NewErrNo(CascadeErrCode, "User removal partially failed")
	PageErr                = NewErrNo(PageErrCode, "PageError")
	MysqlErr               = NewErrNo(MysqlErrCode, "Database error")
	OSSErr                 = NewErrNo(OSSErrCode, "Image storage error")
	RequestErr             = NewErrNo(RequestErrCode, "Invalid request")
	TooManyRequestsErr     = NewErrNo(TooManyRequestsErrCode, "Too many requests")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}

	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}

// HTTPStatus 业务错误码到http状态码的映射
func HTTPStatus(code int64) int {
	switch code {
	case SuccessCode:
		return consts.StatusOK
	case ParamErrCode, PageErrCode, NotFoundErrCode, RequestErrCode, OSSErrCode:
		return consts.StatusBadRequest
	case AuthorizationFailedErrCode, TokenInvailedErrCode:
		return consts.StatusUnauthorized
	case ForbiddenErrCode, UserHasPostsErrCode:
		return consts.StatusForbidden
	case DuplicateErrCode:
		return consts.StatusConflict
	case TooManyRequestsErrCode:
		return consts.StatusTooManyRequests
	default:
		return consts.StatusInternalServerError
	}
}

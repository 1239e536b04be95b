package errno

import (
	"testing"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	t.Run("nil is success", func(t *testing.T) {
		assert.Equal(t, Success, ConvertErr(nil))
	})
	t.Run("wrapped errno keeps its code", func(t *testing.T) {
		err := errors.WithMessage(errors.Wrap(DuplicateErr.WithMessage("Duplicate title"), "create post"), "service")
		got := ConvertErr(err)
		assert.Equal(t, int64(DuplicateErrCode), got.ErrCode)
		assert.Equal(t, "Duplicate title", got.ErrMsg)
	})
	t.Run("plain error becomes service error", func(t *testing.T) {
		got := ConvertErr(errors.New("boom"))
		assert.Equal(t, int64(ServiceErrCode), got.ErrCode)
		assert.Equal(t, "boom", got.ErrMsg)
	})
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, consts.StatusOK, HTTPStatus(SuccessCode))
	assert.Equal(t, consts.StatusForbidden, HTTPStatus(UserHasPostsErrCode))
	assert.Equal(t, consts.StatusConflict, HTTPStatus(DuplicateErrCode))
	assert.Equal(t, consts.StatusBadRequest, HTTPStatus(PageErrCode))
	assert.Equal(t, consts.StatusUnauthorized, HTTPStatus(TokenInvailedErrCode))
	assert.Equal(t, consts.StatusInternalServerError, HTTPStatus(CascadeErrCode))
}

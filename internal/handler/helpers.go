package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/twidpay/intellisearch/internal/pkg/errcode"
	appErr "github.com/twidpay/intellisearch/internal/pkg/errors"
	"github.com/twidpay/intellisearch/internal/pkg/response"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	switch {
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrStoreUnavailable):
		response.Error(c, errcode.ErrStoreUnavailable, "document store unavailable")
	case errors.Is(err, appErr.ErrModelUnavailable):
		response.Error(c, errcode.ErrModelUnavailable, "classifier model unavailable")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}

// Package handlers implements the molgraph HTTP endpoints on gin.  Every API
// handler returns (data, error); wrapHandler turns that pair into the common
// APIResponse envelope and maps AppError codes to HTTP statuses.
package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molgraph/internal/interfaces/http/middleware"
	"github.com/turtacn/molgraph/pkg/errors"
	"github.com/turtacn/molgraph/pkg/types/common"
)

type handlerFunc func(c *gin.Context) (interface{}, error)

// wrapHandler adapts a handlerFunc to gin.
func wrapHandler(h handlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := h(c)
		if err != nil {
			writeAppError(c, err)
			return
		}
		resp := common.NewSuccessResponse[interface{}](data)
		resp.RequestID = middleware.GetRequestID(c)
		c.JSON(http.StatusOK, resp)
	}
}

// writeAppError writes err as an error envelope.  Errors that carry no
// AppError are reported as internal errors with a masked message, and server
// errors never expose their detail.
func writeAppError(c *gin.Context, err error) {
	_ = c.Error(err)

	code, message, detail := errors.ErrCodeInternal, errors.DefaultMessageForCode(errors.ErrCodeInternal), ""
	var ae *errors.AppError
	if errors.As(err, &ae) {
		code, message, detail = ae.Code, ae.Message, ae.Detail
	}
	if !errors.IsClientError(code) {
		detail = ""
	}

	resp := common.NewErrorResponse(code.String(), message, detail)
	resp.RequestID = middleware.GetRequestID(c)
	c.AbortWithStatusJSON(errors.HTTPStatusForCode(code), resp)
}

// bindJSON decodes the request body into dst.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Wrap(err, errors.ErrCodeBadRequest, "request body too large").
				WithDetailf("limit=%d", tooLarge.Limit)
		}
		return errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body").WithDetail(err.Error())
	}
	return nil
}

//Personal.AI order the ending

package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is rendered as the body of every failed request. The wrapped error is logged,
// never serialised.
type Err struct {
	HTTPStatusCode int    `json:"-"`
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ErrorText      string `json:"error,omitempty"`
	Err            error  `json:"-"`
}

func (e *Err) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(e.Message,
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, message string, err error) *Err {
	e := &Err{
		HTTPStatusCode: status,
		Message:        message,
		Err:            err,
	}
	if err != nil {
		e.ErrorText = err.Error()
	}
	return e
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, "invalid request", err)
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err.Error(), err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, "unauthorized", err)
}

func ErrWrongCredentials(err error) *Err {
	e := newErr(http.StatusUnauthorized, "wrong email or password", err)
	// The body must not reveal which of the two was wrong.
	e.ErrorText = ""
	return e
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, "permission denied", err)
}

func ErrInternalServerError(err error) *Err {
	e := newErr(http.StatusInternalServerError, "internal server error", err)
	e.ErrorText = ""
	return e
}

// ErrResourceNotFound is used when the missing resource is only known from a domain error.
func ErrResourceNotFound(err error) *Err {
	return newErr(http.StatusNotFound, err.Error(), err)
}

func ErrInvalidInput(err error) *Err {
	return newErr(http.StatusBadRequest, err.Error(), err)
}

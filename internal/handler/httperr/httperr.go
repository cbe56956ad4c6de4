package httperr

import (
	"net/http"

	"pos-terminal/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Response is the error envelope: {"error":{"message":...},"detail":...}.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError keeps err on the context for ErrorHandler and writes the envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusFor maps the error markers in errs onto HTTP statuses. Unmarked errors are 500.
func StatusFor(err error) int {
	switch {
	case errs.Is(err, errs.ErrSyncRejected):
		return http.StatusUnprocessableEntity
	case errs.Is(err, errs.ErrTransport):
		return http.StatusBadGateway
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCheckoutConflict):
		return http.StatusConflict
	case errs.Is(err, errs.ErrDomainValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package serializer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/securedoc-app/securedoc/internal/modules/service"
)

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// CheckLogin
func CheckLogin() Response {
	return Response{
		Code: http.StatusUnauthorized,
		Msg:  "please login first",
	}
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "storage error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// ServiceErr maps a service layer error onto an HTTP status and envelope.
func ServiceErr(err error) (int, Response) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ParamErr(verr.Reason, nil)
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, Err(http.StatusNotFound, "not found", nil)
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, Err(http.StatusConflict, "already exists", nil)
	case errors.Is(err, service.ErrGone):
		return http.StatusGone, Err(http.StatusGone, "no longer available", nil)
	default:
		return http.StatusInternalServerError, DBErr("", err)
	}
}

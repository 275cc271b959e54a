package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

// Respond traduz um erro de caso de uso na resposta HTTP.
// Erros que não são de negócio viram 500 com fallbackCode.
func Respond(c *gin.Context, err error, fallbackCode string) {
	be, ok := AsBusiness(err)
	if !ok {
		Internal(c, fallbackCode, "Erro interno.")
		return
	}

	msg := Message(be.Code)
	switch be.Kind {
	case KindNotFound:
		NotFound(c, be.Code, msg)
	case KindUnauthorized:
		Forbidden(c, be.Code, msg)
	case KindConflict:
		Conflict(c, be.Code, msg)
	default:
		BadRequest(c, be.Code, msg)
	}
}

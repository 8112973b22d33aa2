package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// App-level codes carried in the envelope:
//
//	0    success
//	1001 invalid request body / missing fields
//	1002 invalid identifier or range
//	4001 unauthorized
//	4004 not found
//	4009 conflict (already reviewed, duplicate slug)
//	5000 store or storage failure
//	5001 approval rolled back after progress write failure
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: msg, Data: data})
}

func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, Response{Code: code, Msg: msg})
}

// Package resp writes the JSON envelope every handler replies with:
// {"ok": true, "data": ...} or {"ok": false, "error": ..., "problems": [...]}.
package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CorrectionRequired heads a reply listing the fields a reporter must fix.
const CorrectionRequired = "CORRECTION REQUIRED"

type Envelope struct {
	OK       bool     `json:"ok"`
	Data     any      `json:"data,omitempty"`
	Error    string   `json:"error,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{OK: true, Data: data})
}

// Created answers a submission or upload; the report may still be unnotified,
// which data.outcome tells apart.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{OK: true, Data: data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Error: msg})
}

func BadRequest(c *gin.Context, msg string) { fail(c, http.StatusBadRequest, msg) }

// Invalid lists every broken rule at once; nothing was written.
func Invalid(c *gin.Context, problems []string) {
	c.JSON(http.StatusBadRequest, Envelope{Error: CorrectionRequired, Problems: problems})
}

func Unauthorized(c *gin.Context, msg string) { fail(c, http.StatusUnauthorized, msg) }
func Forbidden(c *gin.Context, msg string)    { fail(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)     { fail(c, http.StatusNotFound, msg) }

func ServerError(c *gin.Context, err error) {
	fail(c, http.StatusInternalServerError, err.Error())
}

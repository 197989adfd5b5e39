package controllers

import (
	"errors"

	"github.com/fabiomatricardi/cm-log-system/pkg/resp"
	"github.com/fabiomatricardi/cm-log-system/repository"
	"github.com/fabiomatricardi/cm-log-system/services"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto the response envelope.
func writeError(c *gin.Context, err error) {
	var verr *repository.ValidationError
	switch {
	case errors.As(err, &verr):
		resp.Invalid(c, verr.Problems)
	case errors.Is(err, repository.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUnknownDepartment):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmptyLog):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

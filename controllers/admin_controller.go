package controllers

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/fabiomatricardi/cm-log-system/entity"
	"github.com/fabiomatricardi/cm-log-system/pkg/resp"
	"github.com/fabiomatricardi/cm-log-system/repository"
	"github.com/fabiomatricardi/cm-log-system/services"

	"github.com/gin-gonic/gin"
)

type SaveRecipientsRequest struct {
	Content string `json:"content"`
}

type AdminController struct {
	recipients    *services.RecipientService
	exports       *services.ExportService
	notifications *repository.NotificationRepository
}

func NewAdminController(recipients *services.RecipientService, exports *services.ExportService, notifications *repository.NotificationRepository) *AdminController {
	return &AdminController{recipients: recipients, exports: exports, notifications: notifications}
}

// GET /admin/recipients/:dept
func (ac *AdminController) Recipients(c *gin.Context) {
	list, err := ac.recipients.Get(c.Param("dept"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, list)
}

// PUT /admin/recipients/:dept
func (ac *AdminController) SaveRecipients(c *gin.Context) {
	var req SaveRecipientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	list, msg, err := ac.recipients.Save(c.Param("dept"), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"list": list, "message": msg})
}

// GET /admin/export → spreadsheet download
func (ac *AdminController) Export(c *gin.Context) {
	path, n, err := ac.exports.Export()
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("X-Export-Count", strconv.Itoa(n))
	c.FileAttachment(path, filepath.Base(path))
}

// GET /admin/notifications?limit=&log=
func (ac *AdminController) Notifications(c *gin.Context) {
	var (
		items []entity.Notification
		err   error
	)
	if v := c.Query("log"); v != "" {
		id, perr := entity.ParseID(v)
		if perr != nil {
			resp.BadRequest(c, perr.Error())
			return
		}
		items, err = ac.notifications.ForLog(id)
	} else {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		items, err = ac.notifications.Recent(limit)
	}
	if err != nil {
		resp.ServerError(c, fmt.Errorf("load notifications: %w", err))
		return
	}
	resp.OK(c, gin.H{"items": items})
}

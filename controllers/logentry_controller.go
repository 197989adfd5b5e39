package controllers

import (
	"strconv"

	"github.com/fabiomatricardi/cm-log-system/entity"
	"github.com/fabiomatricardi/cm-log-system/pkg/resp"
	"github.com/fabiomatricardi/cm-log-system/repository"
	"github.com/fabiomatricardi/cm-log-system/services"

	"github.com/gin-gonic/gin"
)

type SubmitRequest struct {
	TagName     string `form:"tagname"`
	Description string `form:"description"`
	ReportedBy  string `form:"reported_by"`
}

type UpdateLogRequest struct {
	TagName     string `json:"tagName"`
	Description string `json:"description"`
	ReportedBy  string `json:"reportedBy"`
	Status      string `json:"status"`
}

type LogEntryController struct {
	logs        *services.LogService
	submissions *services.SubmissionService
}

func NewLogEntryController(logs *services.LogService, submissions *services.SubmissionService) *LogEntryController {
	return &LogEntryController{logs: logs, submissions: submissions}
}

// POST /logs/:dept → save the report, then email the department
func (lc *LogEntryController) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	form := services.SubmitForm{
		TagName:     req.TagName,
		Description: req.Description,
		ReportedBy:  req.ReportedBy,
	}
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		form.Files = mf.File["files"]
	}

	res, err := lc.submissions.Submit(c.Request.Context(), c.Param("dept"), form)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, res)
}

// GET /logs?q=&limit=
func (lc *LogEntryController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(repository.DefaultSearchLimit)))
	if limit <= 0 || limit > 500 {
		limit = repository.DefaultSearchLimit
	}
	resp.OK(c, gin.H{"rows": lc.logs.Rows(c.Query("q"), limit)})
}

// GET /logs/ids → options for the edit/delete picker
func (lc *LogEntryController) Options(c *gin.Context) {
	resp.OK(c, gin.H{"options": lc.logs.Options(), "statuses": entity.StatusNames()})
}

// GET /logs/:id (CM-00001 or 1)
func (lc *LogEntryController) Detail(c *gin.Context) {
	id, err := entity.ParseID(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	e, err := lc.logs.Find(id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, e)
}

// PATCH /logs/:id
func (lc *LogEntryController) Update(c *gin.Context) {
	id, err := entity.ParseID(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	var req UpdateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	e, err := lc.logs.Update(id, repository.UpdateInput{
		TagName:     req.TagName,
		Description: req.Description,
		ReportedBy:  req.ReportedBy,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"entry":   e,
		"message": "Log " + e.FormattedID() + " updated successfully (edited " + *e.LastEdited + ")",
	})
}

// DELETE /logs/:id → attachments stay on disk
func (lc *LogEntryController) Delete(c *gin.Context) {
	id, err := entity.ParseID(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	warning, err := lc.logs.Delete(id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"message": "Log " + entity.FormatID(id) + " DELETED from database",
		"warning": warning,
	})
}

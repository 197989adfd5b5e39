package controllers

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/fabiomatricardi/cm-log-system/configs"
	"github.com/fabiomatricardi/cm-log-system/entity"
	"github.com/fabiomatricardi/cm-log-system/pkg/resp"

	"github.com/gin-gonic/gin"
)

type InfoController struct {
	cfg         *configs.Config
	departments configs.Departments
	networkURL  string
}

func NewInfoController(cfg *configs.Config, departments configs.Departments, networkURL string) *InfoController {
	return &InfoController{cfg: cfg, departments: departments, networkURL: networkURL}
}

// GET /info → storage locations, routing and workflow summary
func (ic *InfoController) Info(c *gin.Context) {
	resp.OK(c, gin.H{
		"networkUrl":     ic.networkURL,
		"database":       ic.cfg.LogDBFile,
		"attachments":    ic.cfg.AttachmentsDir,
		"exports":        ic.cfg.ExportDir,
		"departments":    ic.departments.Items,
		"statuses":       entity.StatusNames(),
		"idFormat":       "CM-XXXXX",
		"maxAttachments": ic.cfg.MaxAttachments,
		"editPolicy":     "All fields editable except ID, timestamp, and attachments",
		"deletePolicy":   "Database entry removed only; attachments require manual cleanup in " + ic.cfg.AttachmentsDir,
	})
}

// GET /manual → the user manual as markdown
func (ic *InfoController) Manual(c *gin.Context) {
	b, err := os.ReadFile(ic.cfg.ManualFile)
	if errors.Is(err, fs.ErrNotExist) {
		resp.NotFound(c, "user manual not found: "+ic.cfg.ManualFile)
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", b)
}

package controllers

import (
	"fmt"
	"mime/multipart"

	"github.com/fabiomatricardi/cm-log-system/pkg/resp"
	"github.com/fabiomatricardi/cm-log-system/services"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	storage        *services.AttachmentStorage
	maxAttachments int
}

func NewUploadController(storage *services.AttachmentStorage, maxAttachments int) *UploadController {
	return &UploadController{storage: storage, maxAttachments: maxAttachments}
}

// POST /uploads → mobile capture page; files are stored without a log entry
func (uc *UploadController) Upload(c *gin.Context) {
	var files []*multipart.FileHeader
	var camera *multipart.FileHeader
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		files = mf.File["files"]
		if cams := mf.File["camera"]; len(cams) > 0 {
			camera = cams[0]
		}
	}
	dataURL := c.PostForm("camera_data")

	if len(files) == 0 && camera == nil && dataURL == "" {
		resp.BadRequest(c, "No files to save. Please upload documents or capture an image first.")
		return
	}
	if problems := services.CheckUploads(files, uc.maxAttachments); len(problems) > 0 {
		resp.Invalid(c, problems)
		return
	}

	saved, err := uc.storage.SaveCaptures(files, camera, dataURL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	paths := make([]string, 0, len(saved))
	for _, a := range saved {
		paths = append(paths, "attachments/"+a.StoredName)
	}
	resp.Created(c, gin.H{
		"message": fmt.Sprintf("Saved %d file(s)", len(saved)),
		"paths":   paths,
	})
}

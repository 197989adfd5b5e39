package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fabiomatricardi/cm-log-system/utils"

	"github.com/google/uuid"
)

// AllowedExtensions are the document and photo types accepted as attachments.
var AllowedExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".bmp", ".webp"}

var unsafeName = regexp.MustCompile(`[^\w\-.]`)

// StoredAttachment is a file copied into the attachments directory.
type StoredAttachment struct {
	Path         string `json:"path"`
	OriginalName string `json:"originalName"`
	StoredName   string `json:"storedName"`
}

// AttachmentStorage copies uploads into one directory under collision-free
// names. It never deletes what it stored.
type AttachmentStorage struct {
	dir string
	now func() time.Time
}

func NewAttachmentStorage(dir string) (*AttachmentStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &AttachmentStorage{dir: dir, now: time.Now}, nil
}

func (s *AttachmentStorage) Dir() string { return s.dir }

// SanitizeFilename replaces anything but letters, digits, _ - and . with _.
func SanitizeFilename(name string) string {
	return unsafeName.ReplaceAllString(filepath.Base(name), "_")
}

func AllowedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// CheckUploads returns one problem per broken rule: too many files, or a file
// type outside AllowedExtensions.
func CheckUploads(files []*multipart.FileHeader, limit int) []string {
	var problems []string
	if limit > 0 && len(files) > limit {
		problems = append(problems, fmt.Sprintf("Maximum %d files allowed", limit))
	}
	for _, f := range files {
		if !AllowedExtension(f.Filename) {
			problems = append(problems, fmt.Sprintf("File type not allowed: %s", filepath.Base(f.Filename)))
		}
	}
	return problems
}

// SaveAll stores every upload as <uuid>_<sanitized name>. On error the files
// written by this call are removed again.
func (s *AttachmentStorage) SaveAll(files []*multipart.FileHeader) ([]StoredAttachment, error) {
	out := make([]StoredAttachment, 0, len(files))
	for _, fh := range files {
		orig := filepath.Base(fh.Filename)
		stored := strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + SanitizeFilename(orig)
		path, err := s.copyUpload(fh, stored)
		if err != nil {
			s.remove(out)
			return nil, fmt.Errorf("file save error (%s): %w", orig, err)
		}
		out = append(out, StoredAttachment{Path: path, OriginalName: orig, StoredName: stored})
	}
	return out, nil
}

// SaveCaptures stores standalone uploads from the mobile page. Files are named
// <YYYYMMDD_HHMMSS>_<uuid8>_<name>; a camera capture, sent either as a file or
// as a data URL, is named webcam_<YYYYMMDD_HHMMSS>_<uuid8><ext>.
func (s *AttachmentStorage) SaveCaptures(files []*multipart.FileHeader, camera *multipart.FileHeader, cameraDataURL string) ([]StoredAttachment, error) {
	stamp := s.now().Format("20060102_150405")
	var out []StoredAttachment
	for _, fh := range files {
		orig := filepath.Base(fh.Filename)
		stored := fmt.Sprintf("%s_%s_%s", stamp, shortID(), SanitizeFilename(orig))
		path, err := s.copyUpload(fh, stored)
		if err != nil {
			return out, fmt.Errorf("error saving %s: %w", orig, err)
		}
		out = append(out, StoredAttachment{Path: path, OriginalName: orig, StoredName: stored})
	}

	if camera != nil {
		stored := fmt.Sprintf("webcam_%s_%s%s", stamp, shortID(), cameraExt(camera.Filename))
		path, err := s.copyUpload(camera, stored)
		if err != nil {
			return out, fmt.Errorf("camera image: %w", err)
		}
		out = append(out, StoredAttachment{Path: path, OriginalName: filepath.Base(camera.Filename), StoredName: stored})
	}

	if strings.TrimSpace(cameraDataURL) != "" {
		data, ext, err := utils.DecodeImageDataURL(cameraDataURL)
		if err != nil {
			return out, fmt.Errorf("camera image: %w", err)
		}
		stored := fmt.Sprintf("webcam_%s_%s%s", stamp, shortID(), ext)
		path := filepath.Join(s.dir, stored)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return out, fmt.Errorf("camera image: %w", err)
		}
		out = append(out, StoredAttachment{Path: path, OriginalName: stored, StoredName: stored})
	}
	return out, nil
}

// cameraExt keeps image extensions and maps anything else to .jpg.
func cameraExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".bmp", ".webp":
		return ext
	}
	return ".jpg"
}

func (s *AttachmentStorage) copyUpload(fh *multipart.FileHeader, stored string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(s.dir, stored)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (s *AttachmentStorage) remove(saved []StoredAttachment) {
	for _, a := range saved {
		_ = os.Remove(a.Path)
	}
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

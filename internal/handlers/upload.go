package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/it-helpdesk/internal/constants"
)

var errNotAnImage = errors.New("uploaded file is not an image")

// screenshotUpload returns the optional screenshot part of the request, or
// nil when none was sent.
func screenshotUpload(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("screenshot")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if file.Size == 0 {
		return nil, nil
	}
	if err := checkImage(file); err != nil {
		return nil, err
	}
	return file, nil
}

func checkImage(file *multipart.FileHeader) error {
	f, err := file.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return errNotAnImage
	}
	return nil
}

// saveScreenshot stores the upload under a random name and returns its path
// relative to the media root, using forward slashes.
func saveScreenshot(c *gin.Context, mediaRoot string, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	rel := path.Join(constants.TicketAttachmentDir, uuid.NewString()+ext)

	dst := filepath.Join(mediaRoot, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save screenshot: %w", err)
	}
	return rel, nil
}

package handlers

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadContext(t *testing.T, fileName string, content []byte) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("title", "x"))
	if fileName != "" {
		part, err := w.CreateFormFile("screenshot", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/employee/ticket/new/", &body)
	c.Request.Header.Set("Content-Type", w.FormDataContentType())
	return c
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func TestScreenshotUpload_Missing(t *testing.T) {
	file, err := screenshotUpload(uploadContext(t, "", nil))
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestScreenshotUpload_NotAnImage(t *testing.T) {
	_, err := screenshotUpload(uploadContext(t, "evil.png", []byte("#!/bin/sh\necho hi\n")))
	assert.ErrorIs(t, err, errNotAnImage)
}

func TestSaveScreenshot(t *testing.T) {
	root := t.TempDir()
	c := uploadContext(t, "capture.PNG", testPNG(t))

	file, err := screenshotUpload(c)
	require.NoError(t, err)
	require.NotNil(t, file)

	rel, err := saveScreenshot(c, root, file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "ticket_attachments/"))
	assert.Equal(t, ".png", filepath.Ext(rel))

	saved, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, testPNG(t), saved)

	other, err := saveScreenshot(c, root, file)
	require.NoError(t, err)
	assert.NotEqual(t, rel, other)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/uploads"
)

// UploadController handles standalone image uploads from the editor.
type UploadController struct {
	uploads *uploads.Service
}

func NewUploadController(uploadService *uploads.Service) *UploadController {
	return &UploadController{uploads: uploadService}
}

// Upload handles POST /api/upload with a multipart "image" field.
func (uc *UploadController) Upload(c *gin.Context) {
	limitBody(c, uploads.BodyLimit(uploads.Image))
	fh, err := c.FormFile("image")
	if err != nil {
		if bodyTooLarge(err) {
			respondPayloadError(c, err)
			return
		}
		respondBadRequest(c, "no file uploaded")
		return
	}

	url, err := uc.uploads.Save(c.Request.Context(), uploads.Image, fh, requestInfo(c))
	if err != nil {
		respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"imageUrl": url,
	})
}

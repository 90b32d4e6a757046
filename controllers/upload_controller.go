package controllers

import (
	"io"
	"net/http"

	"editorial/services"
	"editorial/utils"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	uploadService *services.UploadService
}

// NewUploadController accepts a nil host when no image host is configured.
func NewUploadController(host services.ImageHost, folder string) *UploadController {
	return &UploadController{
		uploadService: services.NewUploadService(host, folder),
	}
}

// Upload godoc
// @Summary Upload an image
// @Description Images wider than 1600px are downscaled before upload.
// @Tags upload
// @Security CookieAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Success 200 {object} models.UploadResult
// @Failure 400 {object} map[string]string
// @Router /admin/upload [post]
func (uc *UploadController) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxUploadSize+(1<<20))

	header, err := c.FormFile("file")
	if err != nil {
		fail(c, utils.NewValidationError("file is required", nil))
		return
	}
	if header.Size > services.MaxUploadSize {
		fail(c, utils.NewValidationError("File too large (max 10MB)", nil))
		return
	}

	file, err := header.Open()
	if err != nil {
		fail(c, utils.NewServerError("Failed to read upload", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		fail(c, utils.NewServerError("Failed to read upload", err))
		return
	}

	result, err := uc.uploadService.Upload(c.Request.Context(), data)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

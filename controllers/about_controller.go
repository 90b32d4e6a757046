package controllers

import (
	"net/http"

	"editorial/models"
	"editorial/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AboutController struct {
	aboutService *services.AboutService
}

func NewAboutController(db *gorm.DB) *AboutController {
	return &AboutController{
		aboutService: services.NewAboutService(db),
	}
}

// GetAbout godoc
// @Summary The About page
// @Tags about
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /about [get]
// @Router /admin/about [get]
func (ac *AboutController) GetAbout(c *gin.Context) {
	about, err := ac.aboutService.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"about": about})
}

// UpdateAbout godoc
// @Summary Replace fields of the About page
// @Tags about
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param body body models.UpdateAboutRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Router /admin/about [put]
func (ac *AboutController) UpdateAbout(c *gin.Context) {
	var req models.UpdateAboutRequest
	if !bindJSON(c, &req) {
		return
	}

	about, err := ac.aboutService.Update(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "about": about})
}

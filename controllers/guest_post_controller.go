package controllers

import (
	"net/http"

	"editorial/models"
	"editorial/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GuestPostController struct {
	guestPostService *services.GuestPostService
}

func NewGuestPostController(db *gorm.DB, authorID string, notifier services.Notifier) *GuestPostController {
	return &GuestPostController{
		guestPostService: services.NewGuestPostService(db, authorID, notifier),
	}
}

// SubmitGuestPost godoc
// @Summary Propose a guest post
// @Description The post is stored as a DRAFT until an admin publishes it.
// @Tags guest-posts
// @Accept json
// @Produce json
// @Param body body models.GuestPostRequest true "Proposal"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /guest-post [post]
func (gc *GuestPostController) SubmitGuestPost(c *gin.Context) {
	var req models.GuestPostRequest
	if !bindLooseJSON(c, &req) {
		return
	}

	post, err := gc.guestPostService.Submit(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "post": post})
}

// GetGuestPosts godoc
// @Summary Guest post moderation queue
// @Tags guest-posts
// @Security CookieAuth
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size, max 200"
// @Success 200 {object} map[string]interface{}
// @Router /admin/guest-posts [get]
func (gc *GuestPostController) GetGuestPosts(c *gin.Context) {
	items, page, limit, err := gc.guestPostService.List(c.Request.Context(),
		parsePositiveInt(c.Query("page"), 1),
		parsePositiveInt(c.Query("limit"), 50),
	)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "page": page, "limit": limit})
}

// UpdateGuestPostStatus godoc
// @Summary Set a guest post's status
// @Tags guest-posts
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path string true "Post id"
// @Param body body models.StatusRequest true "New status"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /admin/guest-posts/{id} [patch]
func (gc *GuestPostController) UpdateGuestPostStatus(c *gin.Context) {
	var req models.StatusRequest
	if !bindLooseJSON(c, &req) {
		return
	}

	if err := gc.guestPostService.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteGuestPost godoc
// @Summary Delete a guest post
// @Tags guest-posts
// @Security CookieAuth
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} map[string]bool
// @Router /admin/guest-posts/{id} [delete]
func (gc *GuestPostController) DeleteGuestPost(c *gin.Context) {
	if err := gc.guestPostService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

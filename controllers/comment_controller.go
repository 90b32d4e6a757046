package controllers

import (
	"net/http"

	"editorial/models"
	"editorial/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentController struct {
	commentService *services.CommentService
}

func NewCommentController(db *gorm.DB, notifier services.Notifier) *CommentController {
	return &CommentController{
		commentService: services.NewCommentService(db, notifier),
	}
}

// GetComments godoc
// @Summary Approved comments of a post
// @Tags comments
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{slug}/comments [get]
func (cc *CommentController) GetComments(c *gin.Context) {
	comments, err := cc.commentService.ListApproved(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// SubmitComment godoc
// @Summary Leave a comment; it stays hidden until approved
// @Tags comments
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param body body models.CreateCommentRequest true "Comment"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /posts/{slug}/comments [post]
func (cc *CommentController) SubmitComment(c *gin.Context) {
	var req models.CreateCommentRequest
	if !bindLooseJSON(c, &req) {
		return
	}

	if _, err := cc.commentService.Submit(c.Request.Context(), c.Param("slug"), &req); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetAllComments godoc
// @Summary Comment moderation queue
// @Tags comments
// @Security CookieAuth
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size, max 200"
// @Success 200 {object} map[string]interface{}
// @Router /admin/comments [get]
func (cc *CommentController) GetAllComments(c *gin.Context) {
	items, page, limit, err := cc.commentService.ListAll(c.Request.Context(),
		parsePositiveInt(c.Query("page"), 1),
		parsePositiveInt(c.Query("limit"), 50),
	)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "page": page, "limit": limit})
}

// UpdateCommentStatus godoc
// @Summary Approve or unapprove a comment
// @Tags comments
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path string true "Comment id"
// @Param body body models.StatusRequest true "APPROVED or PENDING"
// @Success 200 {object} map[string]bool
// @Router /admin/comments/{id} [patch]
func (cc *CommentController) UpdateCommentStatus(c *gin.Context) {
	var req models.StatusRequest
	if !bindLooseJSON(c, &req) {
		return
	}

	if err := cc.commentService.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Security CookieAuth
// @Produce json
// @Param id path string true "Comment id"
// @Success 200 {object} map[string]bool
// @Router /admin/comments/{id} [delete]
func (cc *CommentController) DeleteComment(c *gin.Context) {
	if err := cc.commentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

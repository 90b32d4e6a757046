package controllers

import (
	"net/http"

	"editorial/middleware"
	"editorial/models"
	"editorial/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostController struct {
	postService *services.PostService
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{
		postService: services.NewPostService(db),
	}
}

// GetPosts godoc
// @Summary Search posts
// @Tags admin-posts
// @Security CookieAuth
// @Produce json
// @Param q query string false "Title or content substring"
// @Param status query string false "DRAFT, PUBLISHED or SCHEDULED"
// @Success 200 {object} map[string]interface{}
// @Router /admin/posts [get]
func (pc *PostController) GetPosts(c *gin.Context) {
	posts, err := pc.postService.List(c.Request.Context(), c.Query("q"), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// CreatePost godoc
// @Summary Create a post
// @Tags admin-posts
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param body body models.CreatePostRequest true "Post"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Router /admin/posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := pc.postService.Create(c.Request.Context(), middleware.AdminIDFromContext(c), &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetPost godoc
// @Summary Get a post by id
// @Tags admin-posts
// @Security CookieAuth
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /admin/posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	post, err := pc.postService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// UpdatePost godoc
// @Summary Patch a post
// @Tags admin-posts
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path string true "Post id"
// @Param body body models.UpdatePostRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Router /admin/posts/{id} [patch]
func (pc *PostController) UpdatePost(c *gin.Context) {
	var req models.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := pc.postService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost godoc
// @Summary Delete a post and its comments
// @Tags admin-posts
// @Security CookieAuth
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} map[string]bool
// @Router /admin/posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	if err := pc.postService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetStats godoc
// @Summary Dashboard counters
// @Tags admin-posts
// @Security CookieAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/stats [get]
func (pc *PostController) GetStats(c *gin.Context) {
	stats, err := pc.postService.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
